package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the subset of *pgxpool.Pool the repositories use.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const schema = `
CREATE TABLE IF NOT EXISTS plant_records (
	plant_name          TEXT PRIMARY KEY,
	data                JSONB NOT NULL,
	phytochemical_count INTEGER NOT NULL DEFAULT 0,
	scraped_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS failed_pages (
	id             BIGSERIAL PRIMARY KEY,
	url            TEXT NOT NULL UNIQUE,
	page_type      TEXT NOT NULL,
	plant_name     TEXT NOT NULL DEFAULT '',
	failure_reason TEXT NOT NULL DEFAULT '',
	last_attempt   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	retry_count    INTEGER NOT NULL DEFAULT 1
);

CREATE INDEX IF NOT EXISTS failed_pages_last_attempt_idx ON failed_pages (last_attempt DESC);
`

// Connect opens a pool and checks that the server answers.
func Connect(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// EnsureSchema creates the tables the repositories need.
func EnsureSchema(ctx context.Context, db DB) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
