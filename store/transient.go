package store

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/hashicorp/go-uuid"
)

// TransientValueBytes is the entropy, in bytes, of values minted by
// Transient.Issue. The base64url encoding of 32 random bytes is 43
// characters, comfortably above the 16-byte floor needed to resist guessing
// within a login flow's time window.
const TransientValueBytes = 32

var (
	// ErrNilParameter is returned when a required parameter is nil.
	ErrNilParameter = errors.New("nil parameter")

	// ErrIDGeneratorFailed is returned when a random transient value could
	// not be generated.
	ErrIDGeneratorFailed = errors.New("id generation failed")
)

// Transient wraps a Store with a key prefix and consume-once reads. It is
// used to hold one-time CSRF/state/nonce values across a login redirect
// round-trip: every read through GetOnce or Verify removes the record, so a
// value can never be accepted twice.
//
// The consume-once guarantee assumes the single-writer session model of the
// underlying Store: two concurrent requests racing on the same session can
// both observe a value before either removes it. No compare-and-delete is
// provided.
type Transient struct {
	store  Store
	prefix string
}

// NewTransient creates a Transient over the given Store. All keys are
// namespaced with prefix, so several Transient instances can share one
// session store without colliding.
func NewTransient(s Store, prefix string) (*Transient, error) {
	const op = "store.NewTransient"
	if s == nil {
		return nil, fmt.Errorf("%s: store is nil: %w", op, ErrNilParameter)
	}
	return &Transient{
		store:  s,
		prefix: prefix,
	}, nil
}

// Store writes value under key, overwriting any existing value.
func (t *Transient) Store(key string, value string) {
	t.store.Set(t.prefix+key, value)
}

// Issue mints a new cryptographically random value, stores it under key and
// returns it. The value is base64url-encoded and safe for inclusion in a
// URL or query string.
func (t *Transient) Issue(key string) (string, error) {
	const op = "Transient.Issue"
	randomBytes, err := uuid.GenerateRandomBytes(TransientValueBytes)
	if err != nil {
		return "", fmt.Errorf("%s: unable to generate a transient value: %w", op, ErrIDGeneratorFailed)
	}
	value := base64.RawURLEncoding.EncodeToString(randomBytes)
	t.Store(key, value)
	return value, nil
}

// GetOnce returns the value stored under key and removes it. The second
// return value reports whether the key was present; absence is a normal
// outcome, never an error.
func (t *Transient) GetOnce(key string) (string, bool) {
	value, ok := t.store.Get(t.prefix + key)
	if !ok {
		return "", false
	}
	t.store.Remove(t.prefix + key)
	return value, true
}

// Verify consumes the value stored under key and reports whether it exactly
// matches expected. The record is removed whether or not the values match:
// a failed verification attempt still invalidates the stored value, so a
// replayed state can never succeed on a later try.
func (t *Transient) Verify(key string, expected string) bool {
	value, ok := t.GetOnce(key)
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(value), []byte(expected)) == 1
}

// IsSet reports whether a value is stored under key without consuming it.
func (t *Transient) IsSet(key string) bool {
	_, ok := t.store.Get(t.prefix + key)
	return ok
}
