// Package localstore keeps the roster, the invited list and the run history
// in a single SQLite file, for operators without a database server.
package localstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS employees (
	employee_id         INTEGER PRIMARY KEY,
	full_name           TEXT NOT NULL,
	gender              TEXT NOT NULL,
	job_title           TEXT NOT NULL DEFAULT '',
	post_responsibility TEXT NOT NULL DEFAULT '',
	work_location       TEXT NOT NULL DEFAULT '',
	division            TEXT NOT NULL DEFAULT '',
	city                TEXT NOT NULL DEFAULT '',
	roster_position     INTEGER NOT NULL,
	updated_at          DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS invited (
	position    INTEGER NOT NULL,
	employee_id INTEGER PRIMARY KEY REFERENCES employees(employee_id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_invited_position ON invited(position);

CREATE TABLE IF NOT EXISTS generation_runs (
	id          TEXT PRIMARY KEY,
	status      TEXT NOT NULL,
	error       TEXT NOT NULL DEFAULT '',
	started_at  TEXT NOT NULL,
	finished_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS generation_artifacts (
	run_id         TEXT NOT NULL REFERENCES generation_runs(id) ON DELETE CASCADE,
	ordinal        INTEGER NOT NULL,
	city           TEXT NOT NULL,
	work_location  TEXT NOT NULL,
	division       TEXT NOT NULL,
	path           TEXT NOT NULL,
	members        INTEGER NOT NULL,
	responsible_id INTEGER,
	PRIMARY KEY (run_id, ordinal)
);
`

// Store is a SQLite-backed repository. Writes are serialized.
type Store struct {
	db     *sql.DB
	mu     sync.Mutex
	dbPath string
}

// Open opens or creates the database file at path.
func Open(path string) (*Store, error) {
	// Ensure directory exists
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows one writer; a single connection also keeps PRAGMAs in effect.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, dbPath: path}
	if err := s.initialize(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initialize(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database.
func (s *Store) Close() {
	if s.db != nil {
		_ = s.db.Close()
	}
}
