// Package memory provides an in-memory domain.KVStore, used as the test
// double for the SQLite-backed store.
package memory

import (
	"context"
	"sync"

	"github.com/msomdec/spartan-directory/internal/domain"
)

// KVStore implements domain.KVStore with a mutex-guarded map.
type KVStore struct {
	mu   sync.Mutex
	data map[string]string
}

// NewKVStore creates an empty in-memory KVStore.
func NewKVStore() *KVStore {
	return &KVStore{data: make(map[string]string)}
}

func (s *KVStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.data[key]
	if !ok {
		return "", domain.ErrNotFound
	}
	return value, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
