package memory

import (
	"sync"
	"time"

	"election-assistant-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository stores sessions in go-cache. Writes that depend on the
// current entry (Add, Touch, Delete) are serialized so a deleted session
// cannot be written back.
type SessionRepository struct {
	mu    sync.Mutex
	cache *cache.Cache
}

// NewSessionRepository keeps sessions for ttl after their last write.
// A ttl of zero keeps them until deleted.
func NewSessionRepository(ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		return &SessionRepository{cache: cache.New(cache.NoExpiration, 0)}
	}
	// Purge expired items every tenth of the ttl, at least once a minute
	cleanup := ttl / 10
	if cleanup > time.Minute {
		cleanup = time.Minute
	}
	return &SessionRepository{cache: cache.New(ttl, cleanup)}
}

// Add stores the session unless one already exists for the user, in which
// case the existing one is returned.
func (r *SessionRepository) Add(session *store.Session) (*store.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, found := r.Get(session.UserID); found {
		return existing, false
	}
	r.cache.Set(session.UserID, session, cache.DefaultExpiration)
	return session, true
}

// Touch refreshes the expiry of session if it is still the one stored for
// its user. It reports whether it did.
func (r *SessionRepository) Touch(session *store.Session) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, found := r.Get(session.UserID); !found || current != session {
		return false
	}
	r.cache.Set(session.UserID, session, cache.DefaultExpiration)
	return true
}

func (r *SessionRepository) Get(userID string) (*store.Session, bool) {
	if x, found := r.cache.Get(userID); found {
		return x.(*store.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Delete(userID)
}

// Count is the number of unexpired sessions, including ones the janitor
// has not purged yet.
func (r *SessionRepository) Count() int {
	return len(r.cache.Items())
}
