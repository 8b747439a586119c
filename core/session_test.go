package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionCurrentCreatesTimestampedIdentity(t *testing.T) {
	store := NewMemoryStore()
	mgr := NewSessionManager(store, "session_id", nil)
	mgr.now = func() time.Time { return time.UnixMilli(1714560000000) }

	id, err := mgr.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "session-1714560000000", id)

	// The identity is persisted under the well-known key.
	stored, err := store.Get(context.Background(), "session_id")
	require.NoError(t, err)
	assert.Equal(t, id, stored)
}

func TestSessionCurrentReusesPersistedIdentity(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "session_id", "session-111", 0))

	mgr := NewSessionManager(store, "session_id", nil)
	id, err := mgr.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "session-111", id)
}

func TestSessionCurrentIsStableAcrossCalls(t *testing.T) {
	store := NewMemoryStore()
	mgr := NewSessionManager(store, "", nil)
	ctx := context.Background()

	first, err := mgr.Current(ctx)
	require.NoError(t, err)

	second, err := mgr.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// A second manager over the same store sees the same identity, the way a
	// process restart would.
	other := NewSessionManager(store, "", nil)
	third, err := other.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, third)
}

func TestSessionResetMintsFreshIdentity(t *testing.T) {
	store := NewMemoryStore()
	mgr := NewSessionManager(store, "session_id", nil)
	ctx := context.Background()

	clock := time.UnixMilli(1714560000000)
	mgr.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	first, err := mgr.Current(ctx)
	require.NoError(t, err)

	require.NoError(t, mgr.Reset(ctx))

	second, err := mgr.Current(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
