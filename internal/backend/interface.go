package backend

import (
	"context"
	"time"

	"budgetmaster/internal/storage"
)

// Publisher announces a rewritten collection to downstream consumers.
type Publisher interface {
	PublishCollectionChanged(ctx context.Context, collection string, payload []byte, savedAt time.Time) error
}

// CleanupFunc releases resources held by a backend.
type CleanupFunc func() error

// BackendResult bundles the persistence provider with its optional change
// publisher. Publisher is nil when AMQP is disabled.
type BackendResult struct {
	Store     storage.CollectionStore
	Publisher Publisher
	Cleanup   CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// file
	DataDirectory string

	// sqlite
	SQLiteDBPath string

	// optional change events
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// BackendType represents the type of backend
type BackendType string

const (
	MemoryBackend BackendType = "memory"
	FileBackend   BackendType = "file"
	SQLiteBackend BackendType = "sqlite"
)

func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, FileBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}
