package store

import (
	"context"
	"sync"

	"github.com/layer-3/tidbit/ports"
)

// MemoryStore is an in-memory session slot, primarily for tests
type MemoryStore struct {
	token string
	mu    sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

var _ ports.SessionStore = (*MemoryStore)(nil)

// Save stores the token
func (s *MemoryStore) Save(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	return nil
}

// Read returns the stored token
func (s *MemoryStore) Read(ctx context.Context) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token, s.token != ""
}

// Clear forgets the token
func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	return nil
}
