// Package file persists each collection as <name>.json in a data
// directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"budgetmaster/internal/storage"
)

type Store struct {
	mu  sync.RWMutex
	dir string
}

// New creates dir if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *Store) Load(_ context.Context, name string) ([]byte, bool, error) {
	if !storage.ValidName(name) {
		return nil, false, fmt.Errorf("%w: %s", storage.ErrUnknownCollection, name)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", name, err)
	}
	return data, true, nil
}

// Save writes to a temporary file and renames it into place so readers
// never observe a partial payload.
func (s *Store) Save(_ context.Context, name string, payload []byte) error {
	if !storage.ValidName(name) {
		return fmt.Errorf("%w: %s", storage.ErrUnknownCollection, name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.path(name)
	tmpPath := target + ".tmp"
	if err := os.WriteFile(tmpPath, payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename %s: %w", name, err)
	}
	return nil
}
