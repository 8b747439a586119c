package core

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory implementation of the Memory interface
type MemoryStore struct {
	mu     sync.RWMutex
	store  map[string]memoryEntry
	logger Logger
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		store:  make(map[string]memoryEntry),
		logger: &NoOpLogger{},
	}
}

// SetLogger configures the logger for this memory store
func (m *MemoryStore) SetLogger(logger Logger) {
	if logger != nil {
		m.logger = logger
	}
}

// Get retrieves a value from memory. A missing or expired key returns ""
// with no error.
func (m *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, exists := m.store[key]
	if !exists {
		m.logger.Debug("Cache miss", map[string]interface{}{
			"operation": "cache_get",
			"key":       key,
		})
		return "", nil
	}

	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		m.logger.Debug("Cache entry expired", map[string]interface{}{
			"operation":  "cache_get",
			"key":        key,
			"expired_at": entry.expiresAt.Format(time.RFC3339),
		})
		return "", nil
	}

	return entry.value, nil
}

// Set stores a value with an optional TTL. A TTL of zero means no expiry.
func (m *MemoryStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	m.store[key] = entry

	return nil
}

// Delete removes a key
func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, key)
	return nil
}

// Exists reports whether a key is present and unexpired
func (m *MemoryStore) Exists(ctx context.Context, key string) (bool, error) {
	v, err := m.Get(ctx, key)
	if err != nil {
		return false, err
	}
	return v != "", nil
}
