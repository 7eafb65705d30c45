// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"checklist/internal/storage"
)

// FakeStorage is an in-memory storage.Adapter with error injection.
type FakeStorage struct {
	mu     sync.RWMutex
	values map[string]string

	// Error injection for testing
	ReadErr  error
	WriteErr error

	// Writes counts Write calls, including failed ones.
	Writes int
}

// NewFakeStorage creates an empty FakeStorage.
func NewFakeStorage() *FakeStorage {
	return &FakeStorage{values: make(map[string]string)}
}

// Put stores a raw value, bypassing error injection.
func (f *FakeStorage) Put(key, text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = text
}

// Get returns a raw value, bypassing error injection.
func (f *FakeStorage) Get(key string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.values[key]
	return v, ok
}

// Read implements storage.Adapter.
func (f *FakeStorage) Read(ctx context.Context, key string) (string, bool, error) {
	if f.ReadErr != nil {
		return "", false, storage.Unavailable("read", key, f.ReadErr)
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.values[key]
	return v, ok, nil
}

// Write implements storage.Adapter.
func (f *FakeStorage) Write(ctx context.Context, key, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Writes++
	if f.WriteErr != nil {
		return storage.Unavailable("write", key, f.WriteErr)
	}
	f.values[key] = text
	return nil
}
