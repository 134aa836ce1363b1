package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelPublisher_Publish(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 4}, watermill.NopLogger{})
	defer pubSub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	messages, err := pubSub.Subscribe(ctx, "chat-events")
	require.NoError(t, err)

	occurred := time.Date(2025, 10, 27, 8, 0, 0, 0, time.UTC)
	pub := NewChannelPublisher(pubSub, "chat-events")
	require.NoError(t, pub.Publish(ctx, ChatProcessed{
		UserID:     "10.0.0.1",
		Intent:     "greeting",
		Confidence: 1,
		Language:   "english",
		Vibe:       "neutral",
		OccurredAt: occurred,
	}))

	select {
	case msg := <-messages:
		var env Envelope
		require.NoError(t, json.Unmarshal(msg.Payload, &env))
		assert.Equal(t, ChatMessageProcessed, env.Type)
		assert.Equal(t, "greeting", env.Data["intent"])
		assert.Equal(t, ChatMessageProcessed, msg.Metadata.Get("event_type"))
		assert.NotEmpty(t, msg.UUID)
		msg.Ack()
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
	}
}

type recordingPublisher struct {
	got []Event
	err error
}

func (r *recordingPublisher) Publish(_ context.Context, e Event) error {
	r.got = append(r.got, e)
	return r.err
}

func TestMulti_PublishesToAllAndJoinsErrors(t *testing.T) {
	ok := &recordingPublisher{}
	failing := &recordingPublisher{err: errors.New("nats down")}

	event := BaseEvent{Type: SessionCleared, OccurredAt: time.Now()}
	err := Multi{failing, ok}.Publish(context.Background(), event)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "nats down")
	assert.Len(t, ok.got, 1)
	assert.Len(t, failing.got, 1)

	assert.NoError(t, Nop{}.Publish(context.Background(), event))
}
