package core

import "fmt"

// NewSessionStore builds the Memory backing session identity from the
// configured provider. The redis provider namespaces its keys under
// "storefront:session".
func NewSessionStore(cfg *Config, logger Logger) (Memory, error) {
	switch cfg.Session.Provider {
	case "redis":
		return NewRedisStore(RedisStoreOptions{
			RedisURL:  cfg.Session.RedisURL,
			Namespace: "storefront:session",
			Logger:    logger,
		})
	case "", "inmemory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown session provider %q: %w", cfg.Session.Provider, ErrInvalidConfiguration)
	}
}

// NewCacheStore builds the Memory backing the full-catalog snapshot cache
// from the configured provider. The redis provider namespaces its keys under
// "storefront:cache".
func NewCacheStore(cfg *Config, logger Logger) (Memory, error) {
	switch cfg.Cache.Provider {
	case "redis":
		return NewRedisStore(RedisStoreOptions{
			RedisURL:  cfg.Cache.RedisURL,
			Namespace: "storefront:cache",
			Logger:    logger,
		})
	case "", "inmemory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown cache provider %q: %w", cfg.Cache.Provider, ErrInvalidConfiguration)
	}
}
