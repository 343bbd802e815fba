package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("miss-then-hit", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		m := NewMemory()

		_, ok, err := m.Get(ctx, "k")
		require.NoError(err)
		assert.False(ok)

		require.NoError(m.Set(ctx, "k", []byte("v"), time.Minute))
		got, ok, err := m.Get(ctx, "k")
		require.NoError(err)
		require.True(ok)
		assert.Equal([]byte("v"), got)
	})
	t.Run("expired-entry-is-a-miss", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		m := NewMemory()
		now := time.Now()
		m.nowFunc = func() time.Time { return now }

		require.NoError(m.Set(ctx, "k", []byte("v"), time.Minute))

		now = now.Add(59 * time.Second)
		_, ok, err := m.Get(ctx, "k")
		require.NoError(err)
		assert.True(ok)

		now = now.Add(2 * time.Second)
		_, ok, err = m.Get(ctx, "k")
		require.NoError(err)
		assert.False(ok)

		// lazily evicted on the read past expiry
		m.mu.Lock()
		_, present := m.entries["k"]
		m.mu.Unlock()
		assert.False(present)
	})
	t.Run("zero-ttl-never-expires", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		m := NewMemory()
		now := time.Now()
		m.nowFunc = func() time.Time { return now }

		require.NoError(m.Set(ctx, "k", []byte("v"), 0))
		now = now.Add(24 * time.Hour)
		_, ok, err := m.Get(ctx, "k")
		require.NoError(err)
		assert.True(ok)
	})
	t.Run("overwrite", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		m := NewMemory()
		require.NoError(m.Set(ctx, "k", []byte("v1"), time.Minute))
		require.NoError(m.Set(ctx, "k", []byte("v2"), time.Minute))
		got, ok, err := m.Get(ctx, "k")
		require.NoError(err)
		require.True(ok)
		assert.Equal([]byte("v2"), got)
	})
}
