package store

import (
	"sync"
	"time"
)

// Session is the conversational memory kept per user. Callers must hold
// the session lock while reading or writing its fields.
type Session struct {
	mu sync.Mutex

	UserID string `json:"user_id"`

	// Last messages, lowercased, oldest first
	History []string `json:"history"`

	LastIntent   string `json:"last_intent"`
	LastPosition string `json:"last_position"`

	// Insertion-ordered, no duplicates
	TopicsMentioned []string `json:"topics_mentioned"`
	LanguagesUsed   []string `json:"languages_used"`

	ConversationDepth int       `json:"conversation_depth"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func NewSession(userID string, now time.Time) *Session {
	return &Session{
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// Snapshot is a detached copy of a session, safe to hand out.
type Snapshot struct {
	UserID            string    `json:"user_id"`
	History           []string  `json:"history"`
	LastIntent        string    `json:"last_intent"`
	LastPosition      string    `json:"last_position"`
	TopicsMentioned   []string  `json:"topics_discussed"`
	LanguagesUsed     []string  `json:"languages_preferred"`
	ConversationDepth int       `json:"conversation_depth"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Snapshot copies the session. The caller must hold the lock.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		UserID:            s.UserID,
		History:           append([]string(nil), s.History...),
		LastIntent:        s.LastIntent,
		LastPosition:      s.LastPosition,
		TopicsMentioned:   append([]string(nil), s.TopicsMentioned...),
		LanguagesUsed:     append([]string(nil), s.LanguagesUsed...),
		ConversationDepth: s.ConversationDepth,
		UpdatedAt:         s.UpdatedAt,
	}
}
