// Package memkv implements storage.Adapter in process memory.
//
// Values do not outlive the process; it backs dry runs and tests.
package memkv

import (
	"context"
	"sync"

	"checklist/internal/storage"
)

// Store is a concurrency-safe map of key to text.
type Store struct {
	mu sync.RWMutex
	m  map[string]string
}

var _ storage.Adapter = (*Store)(nil)

// New returns an empty Store.
func New() *Store {
	return &Store{m: make(map[string]string)}
}

// Read implements storage.Adapter.
func (s *Store) Read(_ context.Context, key string) (string, bool, error) {
	if err := storage.ValidateKey(key); err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok, nil
}

// Write implements storage.Adapter.
func (s *Store) Write(_ context.Context, key, text string) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = text
	return nil
}
