// Package core provides the shared kernel for the storefront client: the
// domain model, gateway interfaces, error taxonomy, configuration, and the
// Memory implementations used for persisted client-side state.
//
// This file implements a Redis-backed Memory with key namespacing and
// connection management. It backs the two pieces of state that must outlive a
// single process: the session identifier and the full-catalog snapshot cache.
//
// Namespacing:
// All keys are automatically prefixed with the namespace, e.g.
// "storefront:session:*" and "storefront:cache:*", so the two concerns never
// collide on a shared Redis.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore provides a Redis-backed Memory implementation with namespacing
type RedisStore struct {
	client    *redis.Client
	namespace string
	logger    Logger // Optional logger
}

// RedisStoreOptions configures the Redis store
type RedisStoreOptions struct {
	RedisURL  string
	Namespace string // Key namespace for organization
	Logger    Logger // Optional logger
}

// NewRedisStore creates a new Redis store with specified options
func NewRedisStore(opts RedisStoreOptions) (*RedisStore, error) {
	if opts.Logger == nil {
		opts.Logger = &NoOpLogger{}
	}

	if opts.RedisURL == "" {
		opts.Logger.Error("Failed to initialize Redis store", map[string]interface{}{
			"error":      "Redis URL is required",
			"error_type": "ErrInvalidConfiguration",
		})
		return nil, fmt.Errorf("redis URL is required: %w", ErrInvalidConfiguration)
	}

	redisOpt, err := redis.ParseURL(opts.RedisURL)
	if err != nil {
		opts.Logger.Error("Failed to parse Redis URL", map[string]interface{}{
			"error":      err,
			"error_type": fmt.Sprintf("%T", err),
			"redis_url":  opts.RedisURL,
		})
		return nil, fmt.Errorf("invalid Redis URL: %w", ErrInvalidConfiguration)
	}

	client := redis.NewClient(redisOpt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		opts.Logger.Error("Failed to connect to Redis", map[string]interface{}{
			"error":      err,
			"error_type": fmt.Sprintf("%T", err),
			"namespace":  opts.Namespace,
		})
		return nil, fmt.Errorf("failed to connect to Redis: %w", ErrConnectionFailed)
	}

	rs := &RedisStore{
		client:    client,
		namespace: opts.Namespace,
		logger:    opts.Logger,
	}

	rs.logger.Info("Redis store connected", map[string]interface{}{
		"namespace": opts.Namespace,
	})

	return rs, nil
}

// Close closes the Redis connection
func (r *RedisStore) Close() error {
	err := r.client.Close()
	if err != nil {
		r.logger.Error("Failed to close Redis store", map[string]interface{}{
			"error":     err,
			"namespace": r.namespace,
		})
	}
	return err
}

// Namespace returns the namespace being used
func (r *RedisStore) Namespace() string {
	return r.namespace
}

// formatKey formats a key with the namespace
func (r *RedisStore) formatKey(key string) string {
	if r.namespace != "" {
		return fmt.Sprintf("%s:%s", r.namespace, key)
	}
	return key
}

// Get retrieves a value. A missing key returns "" with no error, matching
// MemoryStore semantics.
func (r *RedisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, r.formatKey(key)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, nil
}

// Set stores a value with an optional TTL. A TTL of zero means no expiry.
func (r *RedisStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, r.formatKey(key), value, ttl).Err()
}

// Delete removes keys
func (r *RedisStore) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.formatKey(key)).Err()
}

// Exists reports whether a key is present
func (r *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, r.formatKey(key)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists %s: %w", key, err)
	}
	return n > 0, nil
}

// HealthCheck verifies Redis connectivity
func (r *RedisStore) HealthCheck(ctx context.Context) error {
	err := r.client.Ping(ctx).Err()
	if err != nil {
		r.logger.Error("Redis health check failed", map[string]interface{}{
			"error":     err,
			"namespace": r.namespace,
		})
	}
	return err
}
