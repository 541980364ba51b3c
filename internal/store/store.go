// Package store keeps a Postgres ledger of render metadata. Journal text is
// never written.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Ping checks the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() {
	s.pool.Close()
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS journalviz_renders (
	id              UUID PRIMARY KEY,
	mode            TEXT NOT NULL,
	visual_standard TEXT NOT NULL,
	input_style     TEXT NOT NULL,
	item_count      INTEGER NOT NULL,
	summary_source  TEXT NOT NULL,
	program_bytes   INTEGER NOT NULL,
	rendered_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS journalviz_renders_rendered_at_idx ON journalviz_renders (rendered_at DESC);
`

// Migrate creates the ledger table when it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
