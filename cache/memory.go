package cache

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process Cache backed by a mutex-guarded map. Expired
// entries are evicted lazily on the next Get; there is no background
// sweeper.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	nowFunc func() time.Time
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// ensure that Memory implements the Cache interface
var _ Cache = (*Memory)(nil)

// NewMemory creates an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{
		entries: map[string]memoryEntry{},
	}
}

func (m *Memory) now() time.Time {
	if m.nowFunc != nil {
		return m.nowFunc()
	}
	return time.Now()
}

// Get implements Cache.Get. A key past its TTL is deleted and reported as a
// miss.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !entry.expiresAt.IsZero() && entry.expiresAt.Before(m.now()) {
		delete(m.entries, key)
		return nil, false, nil
	}
	return entry.value, true, nil
}

// Set implements Cache.Set.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = m.now().Add(ttl)
	}
	m.entries[key] = memoryEntry{
		value:     value,
		expiresAt: expiresAt,
	}
	return nil
}
