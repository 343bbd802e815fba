package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRedis(t *testing.T) (*miniredis.Miniredis, redis.UniversalClient) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestNewRedis(t *testing.T) {
	t.Parallel()
	require := require.New(t)
	_, err := NewRedis(nil)
	require.Error(err)
}

func TestRedis(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("miss-then-hit", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		_, client := testRedis(t)
		c, err := NewRedis(client)
		require.NoError(err)

		_, ok, err := c.Get(ctx, "k")
		require.NoError(err)
		assert.False(ok)

		require.NoError(c.Set(ctx, "k", []byte("v"), time.Minute))
		got, ok, err := c.Get(ctx, "k")
		require.NoError(err)
		require.True(ok)
		assert.Equal([]byte("v"), got)
	})
	t.Run("ttl-expiry", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		mr, client := testRedis(t)
		c, err := NewRedis(client)
		require.NoError(err)

		require.NoError(c.Set(ctx, "k", []byte("v"), time.Minute))
		mr.FastForward(61 * time.Second)

		_, ok, err := c.Get(ctx, "k")
		require.NoError(err)
		assert.False(ok)
	})
	t.Run("key-prefix", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		mr, client := testRedis(t)
		c, err := NewRedis(client, WithKeyPrefix("tenant1:"))
		require.NoError(err)

		require.NoError(c.Set(ctx, "k", []byte("v"), time.Minute))
		assert.True(mr.Exists("tenant1:k"))

		got, ok, err := c.Get(ctx, "k")
		require.NoError(err)
		require.True(ok)
		assert.Equal([]byte("v"), got)
	})
}
