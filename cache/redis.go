package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Cache backed by a Redis server, for deployments where multiple
// processes should share one JWKS cache. TTL precision and read-after-write
// consistency are delegated to the server.
type Redis struct {
	client    redis.UniversalClient
	keyPrefix string
}

// ensure that Redis implements the Cache interface
var _ Cache = (*Redis)(nil)

// NewRedis creates a Cache on top of an existing Redis client. The caller
// owns the client's lifecycle. Supported options: WithKeyPrefix.
func NewRedis(client redis.UniversalClient, opt ...Option) (*Redis, error) {
	const op = "cache.NewRedis"
	if client == nil {
		return nil, fmt.Errorf("%s: redis client is nil", op)
	}
	opts := getOpts(opt...)
	return &Redis{
		client:    client,
		keyPrefix: opts.withKeyPrefix,
	}, nil
}

// Get implements Cache.Get.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	const op = "Redis.Get"
	value, err := r.client.Get(ctx, r.keyPrefix+key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return value, true, nil
}

// Set implements Cache.Set.
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	const op = "Redis.Set"
	if ttl < 0 {
		ttl = 0
	}
	if err := r.client.Set(ctx, r.keyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// options is the set of available options for cache functions
type options struct {
	withKeyPrefix string
}

// Option defines a common functional options type for the cache package
type Option func(*options)

func getOpts(opt ...Option) options {
	var opts options
	for _, o := range opt {
		if o != nil {
			o(&opts)
		}
	}
	return opts
}

// WithKeyPrefix provides an optional prefix applied to every key, so one
// Redis database can be shared between tenants.
func WithKeyPrefix(prefix string) Option {
	return func(o *options) {
		o.withKeyPrefix = prefix
	}
}
