package revocation

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store implementation. Suitable for tests and
// single-process deployments; revocations do not survive a restart.
type MemoryStore struct {
	mu   sync.RWMutex
	keys map[string]struct{}
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{keys: make(map[string]struct{})}
}

// Exists reports whether the key is present. Never errors.
func (s *MemoryStore) Exists(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	_, ok := s.keys[key]
	s.mu.RUnlock()
	return ok, nil
}

// Insert adds the key. Idempotent.
func (s *MemoryStore) Insert(_ context.Context, key string) error {
	s.mu.Lock()
	s.keys[key] = struct{}{}
	s.mu.Unlock()
	return nil
}

// Delete removes the key. Idempotent - no error on miss.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.keys, key)
	s.mu.Unlock()
	return nil
}

// Len returns the number of revoked keys, for diagnostics.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys)
}

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)
