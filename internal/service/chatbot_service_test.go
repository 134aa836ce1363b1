package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"election-assistant-be/internal/pkg/logger"
	"election-assistant-be/internal/repository/memory"
	"election-assistant-be/pkg/chatbot/bank"
	"election-assistant-be/pkg/chatbot/catalog"
	"election-assistant-be/pkg/chatbot/followup"
	"election-assistant-be/pkg/chatbot/intent"
	"election-assistant-be/pkg/chatbot/language"
	"election-assistant-be/pkg/chatbot/response"
	"election-assistant-be/pkg/chatbot/session"
	"election-assistant-be/pkg/chatbot/vibe"
	"election-assistant-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type firstPicker struct{}

func (firstPicker) Intn(int) int { return 0 }

type capturePublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *capturePublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func newTestChatbot(t *testing.T, candidatesCSV string) (IChatbotService, *capturePublisher) {
	t.Helper()

	b, err := bank.Load()
	require.NoError(t, err)

	composer, err := response.NewComposer(b.Responses, firstPicker{})
	require.NoError(t, err)

	log := logger.NewNopLogger()
	src := catalog.NewCSVReaderSource("test", strings.NewReader(candidatesCSV))
	pub := &capturePublisher{}

	svc := NewChatbotService(ChatbotDeps{
		Classifier:   intent.NewClassifier(b.Patterns),
		Languages:    language.NewDetector(b.Vocabulary),
		Vibes:        vibe.NewDetector(b.Vibes),
		Resolver:     followup.NewResolver(),
		Composer:     composer,
		Catalog:      catalog.Load(context.Background(), src, log),
		Sessions:     session.NewManager(memory.NewSessionRepository(0), session.DefaultHistoryLimit),
		Publisher:    pub,
		EmptyMessage: b.EmptyMessage,
		Logger:       log,
	})
	return svc, pub
}

const oneKapitan = "Position,Candidate Name,Party\nBarangay Kapitan,Juan Dela Cruz,Partido A\n"

func TestChat_KapitanCandidates(t *testing.T) {
	svc, _ := newTestChatbot(t, oneKapitan)

	res, err := svc.Chat(context.Background(), "10.0.0.1", "Sino ang kandidato para sa kapitan?")
	require.NoError(t, err)

	assert.Equal(t, "kapitan_candidates", res.Intent)
	assert.Equal(t, "Barangay Kapitan", res.Position)
	assert.Contains(t, res.Reply, "Juan Dela Cruz (Partido A)")
	assert.Contains(t, res.Reply, "Kabuuang kandidato: 1")
}

func TestChat_EmptyPositionSaysNoCandidates(t *testing.T) {
	svc, _ := newTestChatbot(t, oneKapitan)

	res, err := svc.Chat(context.Background(), "10.0.0.1", "sk chairman")
	require.NoError(t, err)

	assert.Equal(t, "sk_candidates", res.Intent)
	assert.Contains(t, res.Reply, "Walang nahanap na kandidato para sa SK Chairman")
	assert.NotContains(t, res.Reply, "•")
}

func TestChat_EmptyMessageSkipsPipeline(t *testing.T) {
	svc, pub := newTestChatbot(t, oneKapitan)

	res, err := svc.Chat(context.Background(), "10.0.0.1", "   ")
	require.NoError(t, err)

	assert.Equal(t, "Walang mensahe. Ano ang gusto mong itanong? 😊", res.Reply)
	assert.Equal(t, 0, svc.Health().ActiveSessions)
	assert.Empty(t, pub.events)
}

func TestChat_FollowUpUsesSessionContext(t *testing.T) {
	svc, pub := newTestChatbot(t, oneKapitan)
	ctx := context.Background()

	_, err := svc.Chat(ctx, "10.0.0.1", "sino ang kapitan?")
	require.NoError(t, err)

	res, err := svc.Chat(ctx, "10.0.0.1", "paano po ang sa SK?")
	require.NoError(t, err)
	assert.Equal(t, "sk_candidates", res.Intent)
	assert.True(t, res.FromContext)

	// Another user has no context to follow
	other, err := svc.Chat(ctx, "10.0.0.2", "paano po ang sa SK?")
	require.NoError(t, err)
	assert.Equal(t, "unknown", other.Intent)
	assert.False(t, other.FromContext)

	snap, ok := svc.Session("10.0.0.1")
	require.True(t, ok)
	assert.Equal(t, []string{"sino ang kapitan?", "paano po ang sa sk?"}, snap.History)
	assert.Equal(t, "SK Chairman", snap.LastPosition)
	assert.Equal(t, 2, snap.ConversationDepth)

	require.Len(t, pub.events, 3)
	assert.Equal(t, events.ChatMessageProcessed, pub.events[1].EventType())
	assert.Equal(t, true, pub.events[1].Payload()["from_context"])
}

func TestChat_CandidateDetail(t *testing.T) {
	svc, _ := newTestChatbot(t, oneKapitan+"SK Chairman,Maria Santos,Independent\n")

	res, err := svc.Chat(context.Background(), "10.0.0.1", "Maria Santos")
	require.NoError(t, err)

	assert.Equal(t, "candidate_detail", res.Intent)
	assert.Contains(t, res.Reply, "**Maria Santos**")
	assert.Contains(t, res.Reply, "Posisyon: SK Chairman")
}

func TestChat_AllCandidates(t *testing.T) {
	svc, _ := newTestChatbot(t, oneKapitan)

	res, err := svc.Chat(context.Background(), "10.0.0.1", "show all candidates")
	require.NoError(t, err)

	assert.Equal(t, "all_candidates", res.Intent)
	assert.Contains(t, res.Reply, "Lahat ng Kandidato / All Candidates")
	assert.Contains(t, res.Reply, "Juan Dela Cruz (Partido A)")
	assert.Contains(t, res.Reply, "Walang nahanap na kandidato para sa Kagawad")
	assert.Equal(t, strings.TrimSpace(res.Reply), res.Reply)
}

func TestChat_GeneralIntentIsFramed(t *testing.T) {
	svc, _ := newTestChatbot(t, oneKapitan)

	res, err := svc.Chat(context.Background(), "10.0.0.1", "am i eligible")
	require.NoError(t, err)

	assert.Equal(t, "eligibility", res.Intent)
	assert.Equal(t, "english", res.Language)
	assert.True(t, strings.HasSuffix(res.Reply, "Would you like to know how to register next?"))
}

func TestChat_CancelledContext(t *testing.T) {
	svc, _ := newTestChatbot(t, oneKapitan)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Chat(ctx, "10.0.0.1", "hello")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResetSession(t *testing.T) {
	svc, pub := newTestChatbot(t, oneKapitan)
	ctx := context.Background()

	_, err := svc.Chat(ctx, "10.0.0.1", "hello")
	require.NoError(t, err)
	assert.Equal(t, 1, svc.Health().ActiveSessions)

	svc.ResetSession(ctx, "10.0.0.1")
	_, ok := svc.Session("10.0.0.1")
	assert.False(t, ok)
	assert.Equal(t, events.SessionCleared, pub.events[len(pub.events)-1].EventType())
}

type staticUsage struct{ tally UsageTally }

func (s staticUsage) Tally() UsageTally { return s.tally }

func TestHealthAndStats(t *testing.T) {
	svc, _ := newTestChatbot(t, oneKapitan+"Kagawad 1,Pedro Reyes,Partido A\n")

	health := svc.Health()
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, 2, health.CandidatesLoaded)
	assert.Equal(t, 1, health.TotalKapitan)
	assert.Equal(t, 0, health.TotalSK)
	assert.Equal(t, 1, health.TotalKagawad)

	stats := svc.Stats()
	assert.Equal(t, 2, stats.TotalCandidates)
	assert.Equal(t, []string{"Barangay Kapitan", "SK Chairman", "Kagawad"}, stats.Positions)
	assert.Equal(t, 20, stats.PatternCount)
	assert.Greater(t, stats.IntentCount, 10)
	assert.Zero(t, stats.MessagesServed)

	cs := svc.(*chatbotService)
	cs.Usage = staticUsage{tally: UsageTally{Messages: 3, Intents: map[string]int{"greeting": 3}}}
	assert.Equal(t, 3, svc.Stats().IntentsServed["greeting"])
}
