package service

import (
	"context"
	"strings"
	"time"

	"election-assistant-be/internal/constant"
	"election-assistant-be/internal/dto"
	"election-assistant-be/internal/pkg/logger"
	"election-assistant-be/pkg/chatbot/catalog"
	"election-assistant-be/pkg/chatbot/followup"
	"election-assistant-be/pkg/chatbot/intent"
	"election-assistant-be/pkg/chatbot/language"
	"election-assistant-be/pkg/chatbot/response"
	"election-assistant-be/pkg/chatbot/session"
	"election-assistant-be/pkg/chatbot/vibe"
	"election-assistant-be/pkg/events"
	"election-assistant-be/pkg/store"
)

type IChatbotService interface {
	// Chat answers one message for the given connection identifier.
	Chat(ctx context.Context, userID string, message string) (*dto.ChatResult, error)
	Session(userID string) (*dto.SessionResponse, bool)
	ResetSession(ctx context.Context, userID string)
	Health() *dto.HealthResponse
	Stats() *dto.StatsResponse
}

// Counter reports a live count, such as open chat sockets.
type Counter interface {
	Count() int
}

// UsageSource reports how many messages were served per category.
type UsageSource interface {
	Tally() UsageTally
}

// ChatbotDeps bundles the pipeline stages and stores the service runs on.
type ChatbotDeps struct {
	Classifier   *intent.Classifier
	Languages    *language.Detector
	Vibes        *vibe.Detector
	Resolver     *followup.Resolver
	Composer     *response.Composer
	Catalog      *catalog.Catalog
	Sessions     *session.Manager
	Publisher    events.Publisher
	Usage        UsageSource
	Connections  Counter
	EmptyMessage string
	Logger       logger.ILogger
}

type chatbotService struct {
	ChatbotDeps
}

func NewChatbotService(deps ChatbotDeps) IChatbotService {
	if deps.Publisher == nil {
		deps.Publisher = events.Nop{}
	}
	return &chatbotService{ChatbotDeps: deps}
}

func (cs *chatbotService) Chat(ctx context.Context, userID string, message string) (*dto.ChatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	msg := strings.TrimSpace(message)
	if msg == "" {
		return &dto.ChatResult{
			Reply:    cs.EmptyMessage,
			Intent:   intent.Unknown.String(),
			Language: string(language.English),
			Vibe:     string(vibe.Neutral),
		}, nil
	}

	classified := cs.Classifier.Classify(msg)
	lang := cs.Languages.Detect(msg)
	tone := cs.Vibes.Detect(msg, lang)

	var (
		result *dto.ChatResult
		depth  int
	)
	cs.Sessions.With(userID, func(s *store.Session) {
		resolved := classified.Intent
		if resolved == intent.Unknown {
			resolved = cs.Resolver.Resolve(msg, resolved, session.LastIntent(s))
		}

		result = cs.reply(msg, resolved, lang, tone)
		result.Confidence = classified.Confidence
		result.FromContext = resolved != classified.Intent

		cs.Sessions.Update(s, session.Turn{
			Message:  msg,
			Intent:   intent.Intent(result.Intent),
			Language: lang,
			Position: result.Position,
		})
		depth = s.ConversationDepth
	})

	cs.Logger.Debug("ChatbotService", "Message processed", map[string]interface{}{
		"user_id":      userID,
		"classified":   classified.Intent.String(),
		"intent":       result.Intent,
		"confidence":   classified.Confidence,
		"language":     result.Language,
		"vibe":         result.Vibe,
		"from_context": result.FromContext,
	})

	err := cs.Publisher.Publish(ctx, events.ChatProcessed{
		UserID:            userID,
		Intent:            result.Intent,
		Confidence:        result.Confidence,
		Language:          result.Language,
		Vibe:              result.Vibe,
		FromContext:       result.FromContext,
		ConversationDepth: depth,
		OccurredAt:        time.Now(),
	})
	if err != nil {
		cs.Logger.Warn("ChatbotService", "Failed to publish chat event", map[string]interface{}{"error": err.Error()})
	}

	return result, nil
}

// reply builds the answer text. Candidate lists and candidate cards get
// the same framing as template replies.
func (cs *chatbotService) reply(msg string, in intent.Intent, lang language.Language, tone vibe.Vibe) *dto.ChatResult {
	result := &dto.ChatResult{
		Intent:   in.String(),
		Language: string(lang),
		Vibe:     string(tone),
	}

	switch {
	case in == intent.AllCandidates:
		text := cs.Composer.ApplyVibe(cs.Composer.Frame(cs.Catalog.FormatAll(), in, lang), tone, lang)
		result.Reply = strings.TrimSpace(text)
		return result

	case in.IsCandidateQuery():
		pos, err := catalog.PositionFor(in)
		if err != nil {
			cs.Logger.Error("ChatbotService", "No position for candidate intent", map[string]interface{}{"error": err.Error()})
			break
		}
		result.Position = string(pos)
		result.Reply = cs.Composer.ApplyVibe(cs.Composer.Frame(cs.Catalog.Format(pos), in, lang), tone, lang)
		return result
	}

	if cand, pos, ok := cs.Catalog.FindByName(msg); ok {
		result.Intent = intent.CandidateDetail.String()
		result.Reply = cs.Composer.ApplyVibe(cs.Composer.Frame(catalog.FormatDetail(cand, pos), intent.CandidateDetail, lang), tone, lang)
		return result
	}

	result.Reply = cs.Composer.Compose(in, lang, tone)
	return result
}

func (cs *chatbotService) Session(userID string) (*dto.SessionResponse, bool) {
	snap, ok := cs.Sessions.Snapshot(userID)
	if !ok {
		return nil, false
	}
	return &dto.SessionResponse{
		History:           snap.History,
		LastIntent:        snap.LastIntent,
		LastPosition:      snap.LastPosition,
		TopicsDiscussed:   snap.TopicsMentioned,
		LanguagesUsed:     snap.LanguagesUsed,
		ConversationDepth: snap.ConversationDepth,
		UpdatedAt:         snap.UpdatedAt,
	}, true
}

func (cs *chatbotService) ResetSession(ctx context.Context, userID string) {
	cs.Sessions.Remove(userID)

	err := cs.Publisher.Publish(ctx, events.BaseEvent{
		Type:       events.SessionCleared,
		Data:       map[string]interface{}{"user_id": userID},
		OccurredAt: time.Now(),
	})
	if err != nil {
		cs.Logger.Warn("ChatbotService", "Failed to publish session event", map[string]interface{}{"error": err.Error()})
	}
}

func (cs *chatbotService) Health() *dto.HealthResponse {
	stats := cs.Catalog.Stats()
	return &dto.HealthResponse{
		Status:           constant.StatusHealthy,
		CandidatesLoaded: stats.Total,
		TotalKapitan:     stats.Kapitan,
		TotalSK:          stats.SKChairman,
		TotalKagawad:     stats.Kagawad,
		LanguageSupport:  constant.SupportedLanguages,
		VibeDetection:    constant.FeatureOn,
		ConversationalAI: constant.FeatureOn,
		ActiveSessions:   cs.Sessions.Count(),
	}
}

func (cs *chatbotService) Stats() *dto.StatsResponse {
	positions := make([]string, 0, len(catalog.Positions))
	for _, p := range catalog.Positions {
		positions = append(positions, string(p))
	}

	res := &dto.StatsResponse{
		TotalCandidates:    cs.Catalog.Stats().Total,
		Positions:          positions,
		SupportedLanguages: constant.SupportedLanguages,
		PatternCount:       cs.Classifier.PatternCount(),
		IntentCount:        len(cs.Classifier.Intents()),
		VibeAware:          true,
		ContextAware:       true,
		ActiveSessions:     cs.Sessions.Count(),
	}
	if cs.Connections != nil {
		res.ActiveConnections = cs.Connections.Count()
	}
	if cs.Usage != nil {
		tally := cs.Usage.Tally()
		res.MessagesServed = tally.Messages
		res.IntentsServed = tally.Intents
		res.LanguagesServed = tally.Languages
		res.VibesServed = tally.Vibes
	}
	return res
}
