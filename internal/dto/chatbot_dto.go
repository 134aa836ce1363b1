package dto

import (
	"time"
)

type ChatRequest struct {
	Message string `json:"message" validate:"max=2000"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

// ChatResult is what the pipeline decided for one message. Only Reply
// goes over the wire.
type ChatResult struct {
	Reply       string
	Intent      string
	Confidence  float64
	Language    string
	Vibe        string
	FromContext bool
	Position    string
}

type BannerResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	Version string `json:"version"`
}

type HealthResponse struct {
	Status           string   `json:"status"`
	CandidatesLoaded int      `json:"candidates_loaded"`
	TotalKapitan     int      `json:"total_kapitan"`
	TotalSK          int      `json:"total_sk"`
	TotalKagawad     int      `json:"total_kagawad"`
	LanguageSupport  []string `json:"language_support"`
	VibeDetection    string   `json:"vibe_detection"`
	ConversationalAI string   `json:"conversational_ai"`
	ActiveSessions   int      `json:"active_sessions"`
}

type StatsResponse struct {
	TotalCandidates    int            `json:"total_candidates"`
	Positions          []string       `json:"positions"`
	SupportedLanguages []string       `json:"supported_languages"`
	PatternCount       int            `json:"pattern_count"`
	IntentCount        int            `json:"intent_count"`
	VibeAware          bool           `json:"vibe_aware"`
	ContextAware       bool           `json:"context_aware"`
	ActiveSessions     int            `json:"active_sessions"`
	ActiveConnections  int            `json:"active_connections"`
	MessagesServed     int            `json:"messages_served"`
	IntentsServed      map[string]int `json:"intents_served"`
	LanguagesServed    map[string]int `json:"languages_served"`
	VibesServed        map[string]int `json:"vibes_served"`
}

// SessionResponse is the caller's conversational memory.
type SessionResponse struct {
	History           []string  `json:"history"`
	LastIntent        string    `json:"last_intent"`
	LastPosition      string    `json:"last_position"`
	TopicsDiscussed   []string  `json:"topics_discussed"`
	LanguagesUsed     []string  `json:"languages_preferred"`
	ConversationDepth int       `json:"conversation_depth"`
	UpdatedAt         time.Time `json:"updated_at"`
}
