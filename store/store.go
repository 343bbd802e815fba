// Package store provides the session key-value capability used during
// redirect-based login flows, and a Transient wrapper that guarantees a
// stored value can be consumed at most once.
package store

// Store is a generic session-scoped key-value store. The backing storage
// (cookie, server-side session, in-memory map) is supplied by the host
// environment; this package never reaches into a hidden global.
type Store interface {
	// Get returns the value for key and true, or false when the key is
	// absent. Absence is a normal outcome, not an error.
	Get(key string) (string, bool)

	// Set writes value under key, overwriting any existing value.
	Set(key string, value string)

	// Remove deletes key. Removing an absent key is a no-op.
	Remove(key string)
}
