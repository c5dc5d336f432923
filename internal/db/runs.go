package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/invitation-letters/internal/letters"
	"github.com/jonathan/invitation-letters/internal/types"
)

// RecordRun stores a generation report and its artifacts
func (db *DB) RecordRun(ctx context.Context, report *letters.Report) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO generation_runs (id, status, error, started_at, finished_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET status = $2, error = $3, finished_at = $5`,
		report.RunID, report.Status, report.Error, report.StartedAt, report.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", report.RunID, err)
	}

	for i, a := range report.Artifacts {
		var responsible *int64
		if a.Responsible != 0 {
			id := a.Responsible
			responsible = &id
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO generation_artifacts
			     (run_id, ordinal, city, work_location, division, path, members, responsible_id)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 ON CONFLICT (run_id, ordinal) DO NOTHING`,
			report.RunID, i, a.Key.City, a.Key.WorkLocation, a.Key.Division, a.Path, a.Members, responsible,
		)
		if err != nil {
			return fmt.Errorf("failed to save artifact %d of run %s: %w", i, report.RunID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// GetRun retrieves a generation run with its artifacts
func (db *DB) GetRun(ctx context.Context, runID uuid.UUID) (*letters.Report, error) {
	var report letters.Report
	err := db.pool.QueryRow(ctx,
		`SELECT id, status, error, started_at, finished_at FROM generation_runs WHERE id = $1`,
		runID,
	).Scan(&report.RunID, &report.Status, &report.Error, &report.StartedAt, &report.FinishedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT city, work_location, division, path, members, responsible_id
		 FROM generation_artifacts WHERE run_id = $1 ORDER BY ordinal`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a letters.Artifact
		var key types.GroupKey
		var responsible *int64
		if err := rows.Scan(&key.City, &key.WorkLocation, &key.Division, &a.Path, &a.Members, &responsible); err != nil {
			return nil, fmt.Errorf("failed to scan artifact: %w", err)
		}
		a.Key = key
		if responsible != nil {
			a.Responsible = *responsible
		}
		report.Artifacts = append(report.Artifacts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read artifacts: %w", err)
	}
	return &report, nil
}

// ListRuns retrieves recent generation runs without their artifacts
func (db *DB) ListRuns(ctx context.Context, limit int) ([]letters.Report, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, status, error, started_at, finished_at
		 FROM generation_runs ORDER BY started_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []letters.Report
	for rows.Next() {
		var r letters.Report
		if err := rows.Scan(&r.RunID, &r.Status, &r.Error, &r.StartedAt, &r.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
