// Package memory is an in-process CollectionStore for tests and
// ephemeral runs.
package memory

import (
	"context"
	"fmt"
	"sync"

	"budgetmaster/internal/storage"
)

type Store struct {
	mu    sync.Mutex
	items map[string][]byte
	saves int
}

func New() *Store {
	return &Store{items: make(map[string][]byte)}
}

// Load returns a copy of the stored payload.
func (s *Store) Load(_ context.Context, name string) ([]byte, bool, error) {
	if !storage.ValidName(name) {
		return nil, false, fmt.Errorf("%w: %s", storage.ErrUnknownCollection, name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[name]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), p...), true, nil
}

func (s *Store) Save(_ context.Context, name string, payload []byte) error {
	if !storage.ValidName(name) {
		return fmt.Errorf("%w: %s", storage.ErrUnknownCollection, name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[name] = append([]byte(nil), payload...)
	s.saves++
	return nil
}

// Saves returns how many successful saves the store has seen.
func (s *Store) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
