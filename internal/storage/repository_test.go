package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestRepo(t *testing.T) (*SQLiteRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db", "budgetmaster.db")
	repo, err := NewSQLiteRepository(path)
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo, path
}

func TestSQLiteLoadSave(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	if _, found, err := repo.Load(ctx, Goals); err != nil || found {
		t.Fatalf("expected missing collection, got found=%v err=%v", found, err)
	}
	if err := repo.Save(ctx, Goals, []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Save(ctx, Goals, []byte(`[]`)); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, found, err := repo.Load(ctx, Goals)
	if err != nil || !found || string(got) != "[]" {
		t.Fatalf("expected upserted payload, got %q found=%v err=%v", got, found, err)
	}
}

func TestSQLiteUnknownCollection(t *testing.T) {
	repo, _ := newTestRepo(t)
	if err := repo.Save(context.Background(), "users", []byte("[]")); !errors.Is(err, ErrUnknownCollection) {
		t.Fatalf("expected ErrUnknownCollection, got %v", err)
	}
}

func TestRunMigrationsIdempotent(t *testing.T) {
	_, path := newTestRepo(t)
	version, err := RunMigrations(path)
	if err != nil {
		t.Fatalf("rerun migrations: %v", err)
	}
	if version != 1 {
		t.Fatalf("expected schema version 1, got %d", version)
	}
}

func TestSQLiteReopen(t *testing.T) {
	ctx := context.Background()
	repo, path := newTestRepo(t)
	if err := repo.Save(ctx, Debts, []byte(`[{"id":"d"}]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	repo.Close()

	reopened, err := NewSQLiteRepository(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	got, found, err := reopened.Load(ctx, Debts)
	if err != nil || !found || string(got) != `[{"id":"d"}]` {
		t.Fatalf("expected persisted payload, got %q found=%v err=%v", got, found, err)
	}
}
