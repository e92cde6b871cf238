// Package storage provides TokenStore implementations: in-memory for tests,
// file-based for a single process, Redis-backed when the token must be shared
// across processes.
package storage

import (
	"context"
	"sync"
)

// MemoryTokenStore holds the token in process memory. Primarily for tests.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Token(context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

func (s *MemoryTokenStore) Save(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryTokenStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
