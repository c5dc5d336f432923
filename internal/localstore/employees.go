package localstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jonathan/invitation-letters/internal/types"
)

const employeeColumns = `e.employee_id, e.full_name, e.gender, e.job_title, e.post_responsibility,
	e.work_location, e.division, e.city`

// ListEmployees returns the roster in import order.
func (s *Store) ListEmployees(ctx context.Context) ([]types.Employee, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+employeeColumns+` FROM employees e ORDER BY e.roster_position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()
	return scanEmployees(rows)
}

// UpsertEmployees inserts new employees at the end of the roster and updates
// existing ones in place.
func (s *Store) UpsertEmployees(ctx context.Context, employees []types.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var next int64
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(roster_position), 0) FROM employees`).Scan(&next); err != nil {
		return fmt.Errorf("failed to read roster position: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO employees (employee_id, full_name, gender, job_title, post_responsibility,
		                        work_location, division, city, roster_position)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (employee_id) DO UPDATE SET
		     full_name = excluded.full_name, gender = excluded.gender,
		     job_title = excluded.job_title, post_responsibility = excluded.post_responsibility,
		     work_location = excluded.work_location, division = excluded.division,
		     city = excluded.city, updated_at = CURRENT_TIMESTAMP`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, e := range employees {
		next++
		if _, err := stmt.ExecContext(ctx, e.ID, e.FullName, e.Gender.Honorific(), e.JobTitle,
			e.PostResponsibility, e.WorkLocation, e.Division, e.City, next); err != nil {
			return fmt.Errorf("failed to upsert employee %d: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit employees: %w", err)
	}
	return nil
}

// ListInvited returns the invited employees in list order.
func (s *Store) ListInvited(ctx context.Context) ([]types.Employee, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+employeeColumns+`
		 FROM invited i JOIN employees e ON e.employee_id = i.employee_id
		 ORDER BY i.position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list invited: %w", err)
	}
	defer rows.Close()
	return scanEmployees(rows)
}

// SetInvited replaces the invited list.
func (s *Store) SetInvited(ctx context.Context, ids []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM invited`); err != nil {
		return fmt.Errorf("failed to clear invited: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO invited (position, employee_id) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, id := range ids {
		if _, err := stmt.ExecContext(ctx, i, id); err != nil {
			return fmt.Errorf("failed to store invited %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit invited: %w", err)
	}
	return nil
}

func scanEmployees(rows *sql.Rows) ([]types.Employee, error) {
	var employees []types.Employee
	for rows.Next() {
		var e types.Employee
		var gender string
		if err := rows.Scan(&e.ID, &e.FullName, &gender, &e.JobTitle, &e.PostResponsibility,
			&e.WorkLocation, &e.Division, &e.City); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		e.Gender, _ = types.ParseHonorific(gender)
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employees: %w", err)
	}
	return employees, nil
}
