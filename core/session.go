package core

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// SessionManager is the single accessor for the client's session identity.
// The identifier scopes cart ownership without authentication and must be
// stable across process restarts, so it lives in a Memory store under a
// well-known key. Components never read the persisted value directly; the
// cart and order wiring ask this manager once at startup.
type SessionManager struct {
	store  Memory
	key    string
	logger Logger

	mu     sync.Mutex
	cached string

	// now is swappable for deterministic tests
	now func() time.Time
}

// NewSessionManager creates a session manager over the given store.
// An empty key falls back to "session_id".
func NewSessionManager(store Memory, key string, logger Logger) *SessionManager {
	if key == "" {
		key = "session_id"
	}
	if logger == nil {
		logger = &NoOpLogger{}
	}
	return &SessionManager{
		store:  store,
		key:    key,
		logger: logger,
		now:    time.Now,
	}
}

// Current returns the session identifier, creating and persisting
// "session-<unix-millis>" on first access. Subsequent calls reuse the stored
// value for the lifetime of the backing store.
func (s *SessionManager) Current(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != "" {
		return s.cached, nil
	}

	id, err := s.store.Get(ctx, s.key)
	if err != nil {
		return "", NewStoreError("session.Current", "session", err)
	}

	if id == "" {
		id = fmt.Sprintf("session-%d", s.now().UnixMilli())
		// No TTL: the identity outlives any single page view.
		if err := s.store.Set(ctx, s.key, id, 0); err != nil {
			return "", NewStoreError("session.Current", "session", err)
		}
		s.logger.Info("Created new session identity", map[string]interface{}{
			"operation":  "session_create",
			"session_id": id,
		})
	} else {
		s.logger.Debug("Reusing persisted session identity", map[string]interface{}{
			"operation":  "session_load",
			"session_id": id,
		})
	}

	s.cached = id
	return id, nil
}

// Reset discards the persisted identity. The next Current call mints a fresh
// one. Intended for tests and explicit "forget me" flows.
func (s *SessionManager) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cached = ""
	if err := s.store.Delete(ctx, s.key); err != nil {
		return NewStoreError("session.Reset", "session", err)
	}
	return nil
}
