package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSetGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "key", "value", 0))

	got, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "value", got)
}

func TestMemoryStoreMissingKeyIsEmpty(t *testing.T) {
	store := NewMemoryStore()

	got, err := store.Get(context.Background(), "absent")
	require.NoError(t, err, "a miss is not an error")
	assert.Empty(t, got)
}

func TestMemoryStoreTTLExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "short", "v", 10*time.Millisecond))
	require.NoError(t, store.Set(ctx, "forever", "v", 0))

	got, err := store.Get(ctx, "short")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	time.Sleep(20 * time.Millisecond)

	got, err = store.Get(ctx, "short")
	require.NoError(t, err)
	assert.Empty(t, got, "expired entries read as absent")

	got, err = store.Get(ctx, "forever")
	require.NoError(t, err)
	assert.Equal(t, "v", got, "zero TTL never expires")
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "key", "value", 0))
	require.NoError(t, store.Delete(ctx, "key"))

	got, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.Empty(t, got)

	// Deleting an absent key is not an error.
	require.NoError(t, store.Delete(ctx, "key"))
}

func TestMemoryStoreExists(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	exists, err := store.Exists(ctx, "key")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.Set(ctx, "key", "value", 0))

	exists, err = store.Exists(ctx, "key")
	require.NoError(t, err)
	assert.True(t, exists)
}
