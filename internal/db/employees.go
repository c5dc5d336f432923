package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/invitation-letters/internal/types"
)

const employeeColumns = `e.employee_id, e.full_name, e.gender, e.job_title, e.post_responsibility,
	e.work_location, e.division, e.city`

// ListEmployees returns the roster in import order
func (db *DB) ListEmployees(ctx context.Context) ([]types.Employee, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+employeeColumns+` FROM employees e ORDER BY e.roster_position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()
	return scanEmployees(rows)
}

// UpsertEmployees inserts or updates employees in one transaction
func (db *DB) UpsertEmployees(ctx context.Context, employees []types.Employee) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for _, e := range employees {
		batch.Queue(
			`INSERT INTO employees (employee_id, full_name, gender, job_title, post_responsibility,
			                        work_location, division, city)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 ON CONFLICT (employee_id) DO UPDATE SET
			     full_name = $2, gender = $3, job_title = $4, post_responsibility = $5,
			     work_location = $6, division = $7, city = $8, updated_at = NOW()`,
			e.ID, e.FullName, e.Gender.Honorific(), e.JobTitle, e.PostResponsibility,
			e.WorkLocation, e.Division, e.City,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to upsert employees: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit employees: %w", err)
	}
	return nil
}

// ListInvited returns the invited employees in list order
func (db *DB) ListInvited(ctx context.Context) ([]types.Employee, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+employeeColumns+`
		 FROM invited i JOIN employees e ON e.employee_id = i.employee_id
		 ORDER BY i.position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list invited: %w", err)
	}
	defer rows.Close()
	return scanEmployees(rows)
}

// SetInvited replaces the invited list
func (db *DB) SetInvited(ctx context.Context, ids []int64) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM invited`); err != nil {
		return fmt.Errorf("failed to clear invited: %w", err)
	}

	rowsToCopy := make([][]any, len(ids))
	for i, id := range ids {
		rowsToCopy[i] = []any{int32(i), id}
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"invited"},
		[]string{"position", "employee_id"},
		pgx.CopyFromRows(rowsToCopy),
	); err != nil {
		return fmt.Errorf("failed to store invited: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit invited: %w", err)
	}
	return nil
}

func scanEmployees(rows pgx.Rows) ([]types.Employee, error) {
	var employees []types.Employee
	for rows.Next() {
		var e types.Employee
		var gender string
		if err := rows.Scan(&e.ID, &e.FullName, &gender, &e.JobTitle, &e.PostResponsibility,
			&e.WorkLocation, &e.Division, &e.City); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		// An unrecognised honorific leaves GenderUnknown; grouping skips the record.
		e.Gender, _ = types.ParseHonorific(gender)
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employees: %w", err)
	}
	return employees, nil
}
