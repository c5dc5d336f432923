// Package db provides PostgreSQL storage for the roster, the invited list and
// the history of generation runs.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Schema creates the tables used by DB. Statements are idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS employees (
	employee_id         BIGINT PRIMARY KEY,
	full_name           TEXT NOT NULL,
	gender              TEXT NOT NULL,
	job_title           TEXT NOT NULL DEFAULT '',
	post_responsibility TEXT NOT NULL DEFAULT '',
	work_location       TEXT NOT NULL DEFAULT '',
	division            TEXT NOT NULL DEFAULT '',
	city                TEXT NOT NULL DEFAULT '',
	roster_position     BIGSERIAL,
	updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS invited (
	position    INTEGER NOT NULL,
	employee_id BIGINT PRIMARY KEY REFERENCES employees(employee_id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_invited_position ON invited(position);

CREATE TABLE IF NOT EXISTS generation_runs (
	id          UUID PRIMARY KEY,
	status      TEXT NOT NULL,
	error       TEXT NOT NULL DEFAULT '',
	started_at  TIMESTAMPTZ NOT NULL,
	finished_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS generation_artifacts (
	run_id         UUID NOT NULL REFERENCES generation_runs(id) ON DELETE CASCADE,
	ordinal        INTEGER NOT NULL,
	city           TEXT NOT NULL,
	work_location  TEXT NOT NULL,
	division       TEXT NOT NULL,
	path           TEXT NOT NULL,
	members        INTEGER NOT NULL,
	responsible_id BIGINT,
	PRIMARY KEY (run_id, ordinal)
);
`

// Connect establishes a connection pool to the database and ensures the schema exists
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{pool: pool}
	if err := db.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates missing tables
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}
