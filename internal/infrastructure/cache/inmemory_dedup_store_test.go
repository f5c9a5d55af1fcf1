package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryDedupStore_MarkSeen(t *testing.T) {
	store := NewInMemoryDedupStore()
	defer store.Close()

	ctx := context.Background()

	marked, err := store.MarkSeen(ctx, "key-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, marked)

	// second mark of the same key loses
	marked, err = store.MarkSeen(ctx, "key-1", time.Minute)
	require.NoError(t, err)
	assert.False(t, marked)

	seen, err := store.IsSeen(ctx, "key-1")
	require.NoError(t, err)
	assert.True(t, seen)

	seen, err = store.IsSeen(ctx, "key-2")
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestInMemoryDedupStore_Expiry(t *testing.T) {
	store := NewInMemoryDedupStore()
	defer store.Close()

	ctx := context.Background()

	marked, err := store.MarkSeen(ctx, "short", 10*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, marked)

	time.Sleep(20 * time.Millisecond)

	seen, err := store.IsSeen(ctx, "short")
	require.NoError(t, err)
	assert.False(t, seen)

	// expired keys can be marked again
	marked, err = store.MarkSeen(ctx, "short", time.Minute)
	require.NoError(t, err)
	assert.True(t, marked)
}

func TestInMemoryDedupStore_CloseIsIdempotent(t *testing.T) {
	store := NewInMemoryDedupStore()

	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
}
