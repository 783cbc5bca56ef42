package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStore(t *testing.T) {
	store := NewInMemoryStore()
	defer store.Close()

	ctx := context.Background()

	t.Run("get missing key", func(t *testing.T) {
		_, ok, err := store.Get(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "k1", []byte("value"), time.Hour))

		val, ok, err := store.Get(ctx, "k1")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte("value"), val)
	})

	t.Run("expired entry is a miss", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "k2", []byte("value"), 10*time.Millisecond))
		time.Sleep(20 * time.Millisecond)

		_, ok, err := store.Get(ctx, "k2")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("zero ttl never expires", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "k3", []byte("value"), 0))
		time.Sleep(20 * time.Millisecond)

		_, ok, err := store.Get(ctx, "k3")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "k4", []byte("value"), time.Hour))
		require.NoError(t, store.Delete(ctx, "k4"))

		_, ok, err := store.Get(ctx, "k4")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("stored value is copied", func(t *testing.T) {
		val := []byte("original")
		require.NoError(t, store.Set(ctx, "k5", val, time.Hour))
		val[0] = 'X'

		got, ok, err := store.Get(ctx, "k5")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []byte("original"), got)
	})
}
