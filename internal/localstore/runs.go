package localstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/invitation-letters/internal/letters"
)

// RecordRun stores a generation report and its artifacts.
func (s *Store) RecordRun(ctx context.Context, report *letters.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO generation_runs (id, status, error, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET status = excluded.status, error = excluded.error,
		     finished_at = excluded.finished_at`,
		report.RunID.String(), report.Status, report.Error,
		report.StartedAt.UTC().Format(time.RFC3339Nano), report.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", report.RunID, err)
	}

	for i, a := range report.Artifacts {
		var responsible sql.NullInt64
		if a.Responsible != 0 {
			responsible = sql.NullInt64{Int64: a.Responsible, Valid: true}
		}
		_, err = tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO generation_artifacts
			     (run_id, ordinal, city, work_location, division, path, members, responsible_id)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			report.RunID.String(), i, a.Key.City, a.Key.WorkLocation, a.Key.Division, a.Path, a.Members, responsible,
		)
		if err != nil {
			return fmt.Errorf("failed to save artifact %d of run %s: %w", i, report.RunID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// GetRun retrieves a generation run with its artifacts, or nil if unknown.
func (s *Store) GetRun(ctx context.Context, runID uuid.UUID) (*letters.Report, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, status, error, started_at, finished_at FROM generation_runs WHERE id = ?`,
		runID.String())
	report, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT city, work_location, division, path, members, responsible_id
		 FROM generation_artifacts WHERE run_id = ? ORDER BY ordinal`,
		runID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a letters.Artifact
		var responsible sql.NullInt64
		if err := rows.Scan(&a.Key.City, &a.Key.WorkLocation, &a.Key.Division, &a.Path, &a.Members, &responsible); err != nil {
			return nil, fmt.Errorf("failed to scan artifact: %w", err)
		}
		a.Responsible = responsible.Int64
		report.Artifacts = append(report.Artifacts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read artifacts: %w", err)
	}
	return report, nil
}

// ListRuns retrieves recent generation runs without their artifacts.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]letters.Report, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, status, error, started_at, finished_at
		 FROM generation_runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []letters.Report
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *r)
	}
	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*letters.Report, error) {
	var (
		r                 letters.Report
		id                string
		started, finished string
	)
	if err := row.Scan(&id, &r.Status, &r.Error, &started, &finished); err != nil {
		return nil, err
	}

	var err error
	if r.RunID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid run id %q: %w", id, err)
	}
	if r.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return nil, fmt.Errorf("invalid start time: %w", err)
	}
	if r.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
		return nil, fmt.Errorf("invalid finish time: %w", err)
	}
	return &r, nil
}
