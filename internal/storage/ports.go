package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Collection names, one per record type. They double as file names and
// table keys in the adapters.
const (
	Transactions          = "transactions"
	Budgets               = "budgets"
	Goals                 = "goals"
	RecurringTransactions = "recurringTransactions"
	Debts                 = "debts"
)

// Collections lists every collection name in load order.
var Collections = []string{Transactions, Budgets, Goals, RecurringTransactions, Debts}

var ErrUnknownCollection = errors.New("unknown collection")

// Ports for persistence adapters.
type (
	// CollectionStore persists whole collections as opaque JSON payloads.
	CollectionStore interface {
		// Load returns the stored payload. found is false when the
		// collection has never been saved.
		Load(ctx context.Context, name string) (payload []byte, found bool, err error)
		// Save replaces the stored payload.
		Save(ctx context.Context, name string, payload []byte) error
	}
)

// ValidName reports whether name is a known collection.
func ValidName(name string) bool {
	for _, c := range Collections {
		if c == name {
			return true
		}
	}
	return false
}

// LoadCollection loads and decodes a collection into a slice of records.
func LoadCollection[T any](ctx context.Context, s CollectionStore, name string) ([]T, bool, error) {
	payload, found, err := s.Load(ctx, name)
	if err != nil {
		return nil, false, fmt.Errorf("load %s: %w", name, err)
	}
	if !found {
		return nil, false, nil
	}
	var records []T
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, true, fmt.Errorf("decode %s: %w", name, err)
	}
	return records, true, nil
}

// SaveCollection encodes records as a JSON array, saves them and returns
// the stored payload. A nil slice is stored as an empty array.
func SaveCollection[T any](ctx context.Context, s CollectionStore, name string, records []T) ([]byte, error) {
	if records == nil {
		records = []T{}
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", name, err)
	}
	if err := s.Save(ctx, name, payload); err != nil {
		return nil, fmt.Errorf("save %s: %w", name, err)
	}
	return payload, nil
}
