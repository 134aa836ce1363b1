// Package session keeps per-user conversational memory. Each session has
// its own lock, so users never wait on each other.
package session

import (
	"strings"
	"time"

	"election-assistant-be/internal/repository/memory"
	"election-assistant-be/pkg/chatbot/intent"
	"election-assistant-be/pkg/chatbot/language"
	"election-assistant-be/pkg/store"
)

// DefaultHistoryLimit is also the most messages a session remembers.
const DefaultHistoryLimit = 5

// Turn is what one processed message contributes to a session.
type Turn struct {
	Message  string
	Intent   intent.Intent
	Language language.Language
	// Empty when the turn did not target a position
	Position string
}

type Manager struct {
	repo         *memory.SessionRepository
	historyLimit int
	now          func() time.Time
}

// NewManager keeps at most historyLimit messages per session, capped at
// DefaultHistoryLimit.
func NewManager(repo *memory.SessionRepository, historyLimit int) *Manager {
	if historyLimit <= 0 || historyLimit > DefaultHistoryLimit {
		historyLimit = DefaultHistoryLimit
	}
	return &Manager{repo: repo, historyLimit: historyLimit, now: time.Now}
}

// GetOrCreate returns the user's session, creating it on first use.
// Concurrent first calls for one user get the same session.
func (m *Manager) GetOrCreate(userID string) *store.Session {
	if s, found := m.repo.Get(userID); found {
		return s
	}
	s, _ := m.repo.Add(store.NewSession(userID, m.now()))
	return s
}

// With runs fn while holding the user's session lock and refreshes the
// session's expiry afterwards. If the session was removed while waiting
// for the lock, fn runs on the user's current session instead.
func (m *Manager) With(userID string, fn func(s *store.Session)) {
	s := m.lock(userID)
	defer s.Unlock()
	fn(s)
	m.repo.Touch(s)
}

// lock returns the user's stored session, locked.
func (m *Manager) lock(userID string) *store.Session {
	for {
		s := m.GetOrCreate(userID)
		s.Lock()
		if current, found := m.repo.Get(userID); found && current == s {
			return s
		}
		s.Unlock()
	}
}

// Update records a turn. The caller must hold the session lock.
func (m *Manager) Update(s *store.Session, turn Turn) {
	s.History = append(s.History, strings.ToLower(turn.Message))
	if over := len(s.History) - m.historyLimit; over > 0 {
		s.History = append(s.History[:0], s.History[over:]...)
	}

	s.LastIntent = turn.Intent.String()
	s.TopicsMentioned = appendUnique(s.TopicsMentioned, turn.Intent.String())
	s.LanguagesUsed = appendUnique(s.LanguagesUsed, string(turn.Language))
	s.ConversationDepth++

	if turn.Position != "" {
		s.LastPosition = turn.Position
	}
	s.UpdatedAt = m.now()
}

// LastIntent is the intent recorded by the previous turn, or Unknown.
func LastIntent(s *store.Session) intent.Intent {
	if s.LastIntent == "" {
		return intent.Unknown
	}
	return intent.Intent(s.LastIntent)
}

// Snapshot returns a copy of the user's session without creating one.
func (m *Manager) Snapshot(userID string) (store.Snapshot, bool) {
	s, found := m.repo.Get(userID)
	if !found {
		return store.Snapshot{}, false
	}
	s.Lock()
	defer s.Unlock()
	return s.Snapshot(), true
}

// Remove forgets the user's session. A turn already holding the old
// session finishes on it without bringing it back.
func (m *Manager) Remove(userID string) {
	m.repo.Delete(userID)
}

// Count is the number of live sessions.
func (m *Manager) Count() int {
	return m.repo.Count()
}

func appendUnique(list []string, v string) []string {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}
