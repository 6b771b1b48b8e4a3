package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionStore(t *testing.T) {
	store := NewMemorySessionStore(time.Minute)
	defer store.Close()

	ctx := context.Background()

	t.Run("CreateAndLookup", func(t *testing.T) {
		expiresAt := time.Now().UTC().Add(time.Hour)
		err := store.Create(ctx, "token-a", 7, expiresAt)
		require.NoError(t, err)

		entry, err := store.Lookup(ctx, "token-a")
		require.NoError(t, err)
		require.NotNil(t, entry)
		assert.Equal(t, uint(7), entry.UserID)
		assert.True(t, entry.ExpiresAt.Equal(expiresAt))
	})

	t.Run("LookupUnknownToken", func(t *testing.T) {
		entry, err := store.Lookup(ctx, "never-created")
		require.NoError(t, err)
		assert.Nil(t, entry)
	})

	t.Run("LookupExpiredToken", func(t *testing.T) {
		err := store.Create(ctx, "token-expired", 8, time.Now().UTC().Add(-time.Minute))
		require.NoError(t, err)

		entry, err := store.Lookup(ctx, "token-expired")
		require.NoError(t, err)
		assert.Nil(t, entry)
	})

	t.Run("Evict", func(t *testing.T) {
		err := store.Create(ctx, "token-b", 9, time.Now().UTC().Add(time.Hour))
		require.NoError(t, err)

		err = store.Evict(ctx, "token-b")
		require.NoError(t, err)

		entry, err := store.Lookup(ctx, "token-b")
		require.NoError(t, err)
		assert.Nil(t, entry)
	})
}

func TestMemorySessionStoreJanitor(t *testing.T) {
	store := NewMemorySessionStore(10 * time.Millisecond)
	defer store.Close()

	ctx := context.Background()

	err := store.Create(ctx, "token-sweep", 3, time.Now().UTC().Add(5*time.Millisecond))
	require.NoError(t, err)

	// Give the janitor a couple of sweep cycles
	time.Sleep(50 * time.Millisecond)

	entry, err := store.Lookup(ctx, "token-sweep")
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestMemorySessionStoreCloseIsIdempotent(t *testing.T) {
	store := NewMemorySessionStore(time.Minute)
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
}
