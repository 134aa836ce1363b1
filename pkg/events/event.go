package events

import (
	"context"
	"time"
)

const (
	// ChatMessageProcessed is emitted once per answered chat message.
	ChatMessageProcessed = "CHAT_MESSAGE_PROCESSED"
	SessionCleared       = "SESSION_CLEARED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "CHAT_MESSAGE_PROCESSED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Publisher delivers events to a bus.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// ChatProcessed describes one answered message. UserID is the connection
// identifier the session is keyed by.
type ChatProcessed struct {
	UserID            string
	Intent            string
	Confidence        float64
	Language          string
	Vibe              string
	FromContext       bool
	ConversationDepth int
	OccurredAt        time.Time
}

func (e ChatProcessed) EventType() string {
	return ChatMessageProcessed
}

func (e ChatProcessed) Payload() map[string]interface{} {
	return map[string]interface{}{
		"user_id":            e.UserID,
		"intent":             e.Intent,
		"confidence":         e.Confidence,
		"language":           e.Language,
		"vibe":               e.Vibe,
		"from_context":       e.FromContext,
		"conversation_depth": e.ConversationDepth,
		"occurred_at":        e.OccurredAt.Format(time.RFC3339Nano),
	}
}

func (e ChatProcessed) Timestamp() time.Time {
	return e.OccurredAt
}
