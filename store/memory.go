package store

import "sync"

// Memory is a map-backed Store suitable for tests, CLIs and single-process
// servers. The mutex keeps individual operations safe for the race detector;
// it does not extend the Transient consume-once guarantee across concurrent
// sessions (see Transient).
type Memory struct {
	mu sync.Mutex
	m  map[string]string
}

// ensure that Memory implements the Store interface
var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory Store.
func NewMemory() *Memory {
	return &Memory{
		m: map[string]string{},
	}
}

// Get implements Store.Get.
func (s *Memory) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.m[key]
	return value, ok
}

// Set implements Store.Set.
func (s *Memory) Set(key string, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
}

// Remove implements Store.Remove.
func (s *Memory) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
}
