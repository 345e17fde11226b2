// Package store provides the in-memory session store. Sessions are ephemeral
// by design: a process restart loses them and candidates restart from the
// beginning.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/skillgate/interviewd/internal/interview"
	"go.uber.org/zap"
)

const defaultTTL = 30 * time.Minute

// Memory keeps active sessions in a mutex-guarded map keyed by session id.
// Entries expire after the TTL has passed since the session's last activity;
// expiry is checked lazily on Get and eagerly by Sweep.
type Memory struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]*interview.Session
	now      func() time.Time
}

// NewMemory builds a store with the given TTL. Non-positive TTLs fall back to
// the default.
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Memory{
		ttl:      ttl,
		sessions: make(map[string]*interview.Session),
		now:      time.Now,
	}
}

// Create registers a new session. The id must be unique.
func (m *Memory) Create(session *interview.Session) error {
	if session == nil || session.ID == "" {
		return fmt.Errorf("session with a non-empty id is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[session.ID]; exists {
		return fmt.Errorf("session %s already exists", session.ID)
	}

	m.sessions[session.ID] = session
	return nil
}

// Get returns the live session for the id. Expired entries are removed and
// reported as not found.
func (m *Memory) Get(id string) (*interview.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil, interview.ErrSessionNotFound
	}

	if m.expired(session) {
		delete(m.sessions, id)
		return nil, interview.ErrSessionNotFound
	}

	return session, nil
}

// Delete removes the session if present.
func (m *Memory) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Sweep removes every expired session and returns how many were dropped.
func (m *Memory) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	dropped := 0
	for id, session := range m.sessions {
		if m.expired(session) {
			delete(m.sessions, id)
			dropped++
		}
	}
	return dropped
}

// Len reports the number of stored sessions, including not-yet-swept expired
// ones.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// RunSweeper periodically sweeps expired sessions until the context is done.
func (m *Memory) RunSweeper(ctx context.Context, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		interval = m.ttl / 2
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if dropped := m.Sweep(); dropped > 0 {
				logger.Info("expired sessions swept",
					zap.Int("dropped", dropped),
					zap.Int("remaining", m.Len()),
				)
			}
		}
	}
}

func (m *Memory) expired(session *interview.Session) bool {
	last := session.LastActivity
	if last.IsZero() {
		last = session.StartedAt
	}
	return !last.IsZero() && m.now().Sub(last) > m.ttl
}
