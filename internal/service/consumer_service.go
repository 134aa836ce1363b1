package service

import (
	"context"
	"encoding/json"
	"sync"

	"election-assistant-be/internal/pkg/logger"
	"election-assistant-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	// Consume subscribes, then processes events in the background until
	// ctx is done.
	Consume(ctx context.Context) error
	Tally() UsageTally
}

// UsageTally counts answered messages by intent, language and vibe.
type UsageTally struct {
	Messages  int            `json:"messages"`
	Intents   map[string]int `json:"intents"`
	Languages map[string]int `json:"languages"`
	Vibes     map[string]int `json:"vibes"`
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	logger     logger.ILogger

	mu    sync.Mutex
	tally UsageTally
}

func NewConsumerService(subscriber message.Subscriber, topicName string, log logger.ILogger) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		logger:     log,
		tally:      newUsageTally(),
	}
}

func newUsageTally() UsageTally {
	return UsageTally{
		Intents:   make(map[string]int),
		Languages: make(map[string]int),
		Vibes:     make(map[string]int),
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	cs.logger.Info("EventConsumer", "Consuming chat events", map[string]interface{}{"topic": cs.topicName})
	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()
	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var env events.Envelope
	if err := json.Unmarshal(msg.Payload, &env); err != nil {
		cs.logger.Error("EventConsumer", "Failed to unmarshal message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		// Ack invalid messages to prevent infinite redelivery
		msg.Ack()
		return
	}

	if env.Type == events.ChatMessageProcessed {
		cs.mu.Lock()
		cs.tally.Messages++
		cs.tally.Intents[stringField(env.Data, "intent")]++
		cs.tally.Languages[stringField(env.Data, "language")]++
		cs.tally.Vibes[stringField(env.Data, "vibe")]++
		cs.mu.Unlock()
	}

	msg.Ack()
}

func (cs *consumerService) Tally() UsageTally {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	out := newUsageTally()
	out.Messages = cs.tally.Messages
	for k, v := range cs.tally.Intents {
		out.Intents[k] = v
	}
	for k, v := range cs.tally.Languages {
		out.Languages[k] = v
	}
	for k, v := range cs.tally.Vibes {
		out.Vibes[k] = v
	}
	return out
}

func stringField(data map[string]interface{}, key string) string {
	if s, ok := data[key].(string); ok && s != "" {
		return s
	}
	return "unknown"
}
