package revocation

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	found, err := store.Exists(ctx, "tok-1")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Insert(ctx, "tok-1"))
	found, err = store.Exists(ctx, "tok-1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1, store.Len())

	// Insert is idempotent.
	require.NoError(t, store.Insert(ctx, "tok-1"))
	assert.Equal(t, 1, store.Len())

	require.NoError(t, store.Delete(ctx, "tok-1"))
	found, err = store.Exists(ctx, "tok-1")
	require.NoError(t, err)
	assert.False(t, found)

	// Delete on a missing key is a no-op.
	require.NoError(t, store.Delete(ctx, "missing"))
}

func TestMemoryStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := string(rune('a' + n%10))
			_ = store.Insert(ctx, key)
			_, _ = store.Exists(ctx, key)
			_ = store.Delete(ctx, key)
		}(i)
	}
	wg.Wait()
}
