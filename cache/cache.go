// Package cache provides the key-value cache collaborator used to hold
// fetched JWKS documents between verifications. Values are opaque bytes so
// the same interface works for in-process and distributed backends.
package cache

import (
	"context"
	"time"
)

// Cache is a get/set-with-TTL key-value store keyed by opaque strings.
// Implementations are expected to treat an expired entry as a miss; no
// active eviction is required.
type Cache interface {
	// Get returns the value for key and true, or false when the key is
	// absent or expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key for the given ttl. A ttl of zero or less
	// stores the value without expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
