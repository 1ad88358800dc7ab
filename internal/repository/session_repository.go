package repository

import (
	"sync"
	"time"

	"image-panel/internal/domain"
)

// MemorySessionRepository implements domain.SessionRepository in process memory.
// Display records only live as long as the browser session, so nothing is persisted.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	ttl      time.Duration
	now      func() time.Time
	logger   domain.Logger
}

// NewMemorySessionRepository creates a session store; ttl <= 0 keeps sessions forever
func NewMemorySessionRepository(ttl time.Duration, logger domain.Logger) *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[string]*domain.Session),
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
}

// Load returns a copy of the session, or a fresh one when unknown
func (r *MemorySessionRepository) Load(sessionID string) *domain.Session {
	r.mu.RLock()
	s, ok := r.sessions[sessionID]
	r.mu.RUnlock()

	if !ok {
		return &domain.Session{ID: sessionID}
	}
	return s.Clone()
}

// Save stores a copy of the session and refreshes its idle clock
func (r *MemorySessionRepository) Save(session *domain.Session) {
	cp := session.Clone()
	cp.UpdatedAt = r.now()

	r.mu.Lock()
	r.sessions[cp.ID] = cp
	r.mu.Unlock()
}

// Delete drops a session
func (r *MemorySessionRepository) Delete(sessionID string) {
	r.mu.Lock()
	delete(r.sessions, sessionID)
	r.mu.Unlock()
}

// Sweep evicts sessions idle for longer than the TTL and returns how many went
func (r *MemorySessionRepository) Sweep(now time.Time) int {
	if r.ttl <= 0 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, s := range r.sessions {
		if now.Sub(s.UpdatedAt) > r.ttl {
			delete(r.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		r.logger.Debug("Expired sessions evicted", "count", evicted, "remaining", len(r.sessions))
	}
	return evicted
}

// Len returns the number of live sessions
func (r *MemorySessionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
