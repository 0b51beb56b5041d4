package repository

import (
	"context"
	"fmt"

	"github.com/shiftboard/engine/pkg/model"
)

// EmployeeRepository implements store.EmployeeStore against the
// employees(id, name, rank, department) table.
type EmployeeRepository struct {
	db DB
}

// NewEmployeeRepository builds an EmployeeRepository over db.
func NewEmployeeRepository(db DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// List returns the full employee roster, ordered by ID for stable
// output across calls.
func (r *EmployeeRepository) List(ctx context.Context) ([]model.Employee, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, rank, department FROM employees ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	defer rows.Close()

	var employees []model.Employee
	for rows.Next() {
		var e model.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Rank, &e.Department); err != nil {
			return nil, fmt.Errorf("scanning employee row: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating employee rows: %w", err)
	}
	return employees, nil
}

// Save upserts every employee in the batch. Each row is written in
// its own statement rather than a transaction, matching the teacher's
// per-row ExecContext style; callers that need atomicity wrap the
// call themselves via the database package's Transaction helper.
func (r *EmployeeRepository) Save(ctx context.Context, employees []model.Employee) error {
	const upsert = `
		INSERT INTO employees (id, name, rank, department)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET name = $2, rank = $3, department = $4
	`
	for _, e := range employees {
		if _, err := r.db.ExecContext(ctx, upsert, e.ID, e.Name, e.Rank, e.Department); err != nil {
			return fmt.Errorf("saving employee %q: %w", e.ID, err)
		}
	}
	return nil
}
