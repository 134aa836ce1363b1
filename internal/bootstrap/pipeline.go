package bootstrap

import (
	"context"
	"fmt"

	"election-assistant-be/internal/config"
	"election-assistant-be/internal/pkg/logger"
	"election-assistant-be/internal/repository/implementation"
	"election-assistant-be/internal/repository/memory"
	"election-assistant-be/internal/service"
	"election-assistant-be/pkg/chatbot/bank"
	"election-assistant-be/pkg/chatbot/catalog"
	"election-assistant-be/pkg/chatbot/followup"
	"election-assistant-be/pkg/chatbot/intent"
	"election-assistant-be/pkg/chatbot/language"
	"election-assistant-be/pkg/chatbot/response"
	"election-assistant-be/pkg/chatbot/session"
	"election-assistant-be/pkg/chatbot/vibe"
	"election-assistant-be/pkg/database"

	"gorm.io/gorm"
)

// Pipeline holds the chat stages shared by the HTTP server and the local
// console. Close releases the database handle, if one was opened.
type Pipeline struct {
	Deps service.ChatbotDeps
	db   *gorm.DB
}

// NewPipeline loads the static banks and the candidate list. A bank that
// fails to load is an error; a candidate list that fails to load only
// leaves the catalog empty.
func NewPipeline(ctx context.Context, cfg *config.Config, log logger.ILogger) (*Pipeline, error) {
	b, err := bank.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load chat banks: %w", err)
	}

	composer, err := response.NewComposer(b.Responses, response.NewRandomPicker())
	if err != nil {
		return nil, fmt.Errorf("failed to build response composer: %w", err)
	}

	p := &Pipeline{}
	p.Deps = service.ChatbotDeps{
		Classifier:   intent.NewClassifier(b.Patterns),
		Languages:    language.NewDetector(b.Vocabulary),
		Vibes:        vibe.NewDetector(b.Vibes),
		Resolver:     followup.NewResolver(),
		Composer:     composer,
		Catalog:      p.loadCatalog(ctx, cfg, log),
		Sessions:     session.NewManager(memory.NewSessionRepository(cfg.Chat.SessionTTL), cfg.Chat.HistoryLimit),
		EmptyMessage: b.EmptyMessage,
		Logger:       log,
	}

	log.Info("Bootstrap", "Chat pipeline ready", map[string]interface{}{
		"patterns":    b.Patterns.Len(),
		"session_ttl": cfg.Chat.SessionTTL.String(),
	})
	return p, nil
}

func (p *Pipeline) loadCatalog(ctx context.Context, cfg *config.Config, log logger.ILogger) *catalog.Catalog {
	if cfg.Candidates.Source != config.CandidateSourceDB {
		return catalog.Load(ctx, catalog.NewCSVFileSource(cfg.Candidates.CSVPath), log)
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, !cfg.IsProduction())
	if err != nil {
		log.Error("Bootstrap", "Unable to connect to candidate database", map[string]interface{}{"error": err.Error()})
		return catalog.New()
	}
	p.db = db
	return catalog.Load(ctx, catalog.NewRepositorySource(implementation.NewCandidateRepository(db)), log)
}

func (p *Pipeline) Close() {
	if p.db == nil {
		return
	}
	if sqlDB, err := p.db.DB(); err == nil {
		sqlDB.Close()
	}
}
