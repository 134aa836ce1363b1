package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"election-assistant-be/internal/bootstrap"
	"election-assistant-be/internal/config"
	"election-assistant-be/internal/dto"
	"election-assistant-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	csvPath := filepath.Join(t.TempDir(), "candidates.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(
		"Position,Candidate Name,Party\nBarangay Kapitan,Juan Dela Cruz,Partido A\n"), 0o644))

	cfg := &config.Config{
		App: config.AppConfig{
			Port:               "0",
			Environment:        "test",
			CorsAllowedOrigins: "http://localhost:5173",
			EventsTopic:        "chat_events",
		},
		Candidates: config.CandidateConfig{Source: config.CandidateSourceCSV, CSVPath: csvPath},
		Chat: config.ChatConfig{
			HistoryLimit:        5,
			MaxMessageBodyBytes: 64 * 1024,
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	container, err := bootstrap.NewContainer(ctx, cfg, logger.NewNopLogger())
	require.NoError(t, err)

	require.NoError(t, container.ConsumerService.Consume(ctx))
	t.Cleanup(func() {
		cancel()
		container.Close()
	})

	return New(cfg, container)
}

func doJSON(t *testing.T, s *Server, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.GetApp().Test(req, 5000)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestRoot(t *testing.T) {
	s := newTestServer(t)
	resp, body := doJSON(t, s, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var banner dto.BannerResponse
	require.NoError(t, json.Unmarshal(body, &banner))
	assert.Equal(t, "online", banner.Status)
	assert.NotEmpty(t, banner.Version)
}

func TestChatEndpoint(t *testing.T) {
	s := newTestServer(t)

	resp, body := doJSON(t, s, http.MethodPost, "/chat", `{"message":"Sino ang kandidato para sa kapitan?"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res dto.ChatResponse
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Contains(t, res.Reply, "Juan Dela Cruz (Partido A)")
	assert.Contains(t, res.Reply, "Kabuuang kandidato: 1")

	resp, body = doJSON(t, s, http.MethodPost, "/chat", `{"message":""}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, "Walang mensahe. Ano ang gusto mong itanong? 😊", res.Reply)
}

func TestChatEndpoint_RejectsBadInput(t *testing.T) {
	s := newTestServer(t)

	resp, _ := doJSON(t, s, http.MethodPost, "/chat", `{"message":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	long := strings.Repeat("a", 2001)
	resp, _ = doJSON(t, s, http.MethodPost, "/chat", `{"message":"`+long+`"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSessionEndpoints(t *testing.T) {
	s := newTestServer(t)

	resp, _ := doJSON(t, s, http.MethodGet, "/chat/session", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	doJSON(t, s, http.MethodPost, "/chat", `{"message":"hello"}`)

	resp, body := doJSON(t, s, http.MethodGet, "/chat/session", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var envelope struct {
		Data dto.SessionResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	assert.Equal(t, []string{"hello"}, envelope.Data.History)
	assert.Equal(t, 1, envelope.Data.ConversationDepth)

	resp, _ = doJSON(t, s, http.MethodDelete, "/chat/session", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, s, http.MethodGet, "/chat/session", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealthAndStats(t *testing.T) {
	s := newTestServer(t)
	doJSON(t, s, http.MethodPost, "/chat", `{"message":"hello"}`)

	resp, body := doJSON(t, s, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var health dto.HealthResponse
	require.NoError(t, json.Unmarshal(body, &health))
	assert.Equal(t, 1, health.CandidatesLoaded)
	assert.Equal(t, 1, health.TotalKapitan)
	assert.Equal(t, 1, health.ActiveSessions)
	assert.Equal(t, []string{"English", "Tagalog"}, health.LanguageSupport)

	// The usage tally is fed asynchronously by the event consumer
	assert.Eventually(t, func() bool {
		resp, err := s.GetApp().Test(httptest.NewRequest(http.MethodGet, "/stats", nil))
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		var stats dto.StatsResponse
		if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
			return false
		}
		return stats.IntentsServed["greeting"] == 1 && stats.PatternCount == 20
	}, 2*time.Second, 20*time.Millisecond)
}
