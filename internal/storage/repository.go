package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRepository stores each collection as one row of the collections
// table.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens the database at dbPath, creating its directory,
// and applies pending migrations.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load implements CollectionStore.
func (r *SQLiteRepository) Load(ctx context.Context, name string) ([]byte, bool, error) {
	if !ValidName(name) {
		return nil, false, fmt.Errorf("%w: %s", ErrUnknownCollection, name)
	}
	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM collections WHERE name = ?`, name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query collection %s: %w", name, err)
	}
	return []byte(payload), true, nil
}

// Save implements CollectionStore.
func (r *SQLiteRepository) Save(ctx context.Context, name string, payload []byte) error {
	if !ValidName(name) {
		return fmt.Errorf("%w: %s", ErrUnknownCollection, name)
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO collections (name, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		name, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upsert collection %s: %w", name, err)
	}

	slog.DebugContext(ctx, "Collection saved to SQLite",
		"collection", name,
		"bytes", len(payload))
	return nil
}
