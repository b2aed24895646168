package memory

import (
	"context"
	"errors"
	"testing"

	"budgetmaster/internal/core"
	"budgetmaster/internal/storage"
)

func TestLoadMissing(t *testing.T) {
	s := New()
	_, found, err := s.Load(context.Background(), storage.Budgets)
	if err != nil || found {
		t.Fatalf("expected not found, got found=%v err=%v", found, err)
	}
}

func TestSaveLoadCopies(t *testing.T) {
	ctx := context.Background()
	s := New()
	payload := []byte(`[{"id":"1"}]`)
	if err := s.Save(ctx, storage.Goals, payload); err != nil {
		t.Fatalf("save: %v", err)
	}
	payload[0] = 'x'
	got, found, err := s.Load(ctx, storage.Goals)
	if err != nil || !found {
		t.Fatalf("load: found=%v err=%v", found, err)
	}
	if string(got) != `[{"id":"1"}]` {
		t.Fatalf("stored payload aliased caller buffer: %s", got)
	}
	if s.Saves() != 1 {
		t.Fatalf("expected 1 save, got %d", s.Saves())
	}
}

func TestUnknownCollection(t *testing.T) {
	s := New()
	if err := s.Save(context.Background(), "accounts", nil); !errors.Is(err, storage.ErrUnknownCollection) {
		t.Fatalf("expected ErrUnknownCollection, got %v", err)
	}
	if _, _, err := s.Load(context.Background(), "accounts"); !errors.Is(err, storage.ErrUnknownCollection) {
		t.Fatalf("expected ErrUnknownCollection, got %v", err)
	}
}

func TestCollectionHelpers(t *testing.T) {
	ctx := context.Background()
	s := New()
	budgets := []core.Budget{
		{ID: "1", Category: "Food", Limit: core.Units(500), Spent: core.Units(150), Period: core.Monthly},
	}
	payload, err := storage.SaveCollection(ctx, s, storage.Budgets, budgets)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if stored, _, _ := s.Load(ctx, storage.Budgets); string(stored) != string(payload) {
		t.Fatalf("returned payload %s differs from stored %s", payload, stored)
	}
	got, found, err := storage.LoadCollection[core.Budget](ctx, s, storage.Budgets)
	if err != nil || !found {
		t.Fatalf("load: found=%v err=%v", found, err)
	}
	if len(got) != 1 || got[0] != budgets[0] {
		t.Fatalf("unexpected budgets %+v", got)
	}

	if _, err := storage.SaveCollection[core.Debt](ctx, s, storage.Debts, nil); err != nil {
		t.Fatalf("save empty: %v", err)
	}
	raw, _, _ := s.Load(ctx, storage.Debts)
	if string(raw) != "[]" {
		t.Fatalf("expected empty array, got %s", raw)
	}

	if err := s.Save(ctx, storage.Goals, []byte("{broken")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, found, err := storage.LoadCollection[core.Goal](ctx, s, storage.Goals); err == nil || !found {
		t.Fatalf("expected decode error with found=true, got found=%v err=%v", found, err)
	}
}
