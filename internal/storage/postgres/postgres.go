package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"libraryapi/internal/storage"
)

// Snapshotter is a PostgreSQL implementation of storage.Snapshotter. Each key
// maps to one row in the checkpoints table; Save upserts, so the table holds
// only the latest blob per key. It uses database/sql with parameterized
// queries and contains no business logic.
type Snapshotter struct {
	db *sql.DB
}

// New creates a Postgres-backed Snapshotter over an open connection pool.
func New(db *sql.DB) *Snapshotter {
	return &Snapshotter{db: db}
}

var _ storage.Snapshotter = (*Snapshotter)(nil)

// EnsureSchema creates the checkpoints table if it does not exist yet.
func (s *Snapshotter) EnsureSchema(ctx context.Context) error {
	const q = `
		CREATE TABLE IF NOT EXISTS checkpoints (
			key        TEXT        PRIMARY KEY,
			data       BYTEA       NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	if _, err := s.db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("ensure checkpoints schema: %w", err)
	}
	return nil
}

// Save upserts the blob under key.
func (s *Snapshotter) Save(ctx context.Context, key string, data []byte) error {
	const q = `
		INSERT INTO checkpoints (key, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = now()
	`
	if _, err := s.db.ExecContext(ctx, q, key, data); err != nil {
		return fmt.Errorf("save checkpoint: %w", err)
	}
	return nil
}

// Load fetches the blob stored under key, or returns storage.ErrNotExist.
func (s *Snapshotter) Load(ctx context.Context, key string) ([]byte, error) {
	const q = `SELECT data FROM checkpoints WHERE key = $1`

	var data []byte
	if err := s.db.QueryRowContext(ctx, q, key).Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotExist
		}
		return nil, fmt.Errorf("load checkpoint: %w", err)
	}
	return data, nil
}

// Ping verifies database connectivity.
func (s *Snapshotter) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
