package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/allowance"
	"github.com/cmlabs-hris/leave-ledger-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type allowanceRepository struct {
	db *database.DB
}

// Create implements allowance.AllowanceRepository.
func (r *allowanceRepository) Create(ctx context.Context, a allowance.Allowance) (allowance.Allowance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_allowances (
			employee_id, time_off_type, from_date, to_date, allowed_leaves, state
		) VALUES (
			$1, $2, $3, $4, $5, $6
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		a.EmployeeID,
		a.TimeOffType,
		a.FromDate,
		a.ToDate,
		a.AllowedLeaves,
		a.State,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)

	if err != nil {
		return allowance.Allowance{}, fmt.Errorf("failed to create leave allowance: %w", err)
	}

	return a, nil
}

// GetByID implements allowance.AllowanceRepository.
func (r *allowanceRepository) GetByID(ctx context.Context, id string) (allowance.Allowance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, time_off_type, from_date, to_date, allowed_leaves,
			   state, created_at, updated_at
		FROM leave_allowances
		WHERE id = $1
	`

	var a allowance.Allowance
	err := q.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.EmployeeID, &a.TimeOffType, &a.FromDate, &a.ToDate,
		&a.AllowedLeaves, &a.State, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return allowance.Allowance{}, allowance.ErrAllowanceNotFound
		}
		return allowance.Allowance{}, fmt.Errorf("failed to get leave allowance: %w", err)
	}

	return a, nil
}

// ListApprovedByEmployee implements allowance.AllowanceRepository.
func (r *allowanceRepository) ListApprovedByEmployee(ctx context.Context, employeeID string) ([]allowance.Allowance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, time_off_type, from_date, to_date, allowed_leaves,
			   state, created_at, updated_at
		FROM leave_allowances
		WHERE employee_id = $1
		  AND state = 'approved'
		ORDER BY from_date
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave allowances: %w", err)
	}
	defer rows.Close()

	allowances := make([]allowance.Allowance, 0)
	for rows.Next() {
		var a allowance.Allowance
		err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.TimeOffType, &a.FromDate, &a.ToDate,
			&a.AllowedLeaves, &a.State, &a.CreatedAt, &a.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave allowance: %w", err)
		}
		allowances = append(allowances, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leave allowances: %w", err)
	}

	return allowances, nil
}

// UpdateState implements allowance.AllowanceRepository.
func (r *allowanceRepository) UpdateState(ctx context.Context, id string, state allowance.State) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_allowances
		SET state = $2,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, state)
	if err != nil {
		return fmt.Errorf("failed to update leave allowance state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return allowance.ErrAllowanceNotFound
	}

	return nil
}

func NewAllowanceRepository(db *database.DB) allowance.AllowanceRepository {
	return &allowanceRepository{db: db}
}
