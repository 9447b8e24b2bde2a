package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/leave-ledger-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type adjustmentRepository struct {
	db *database.DB
}

// Create implements adjustment.AdjustmentRepository.
func (r *adjustmentRepository) Create(ctx context.Context, adj adjustment.Adjustment) (adjustment.Adjustment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_adjustments (
			employee_id, type, amount, reason, adjustment_date, state
		) VALUES (
			$1, $2, $3, $4, $5, $6
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		adj.EmployeeID,
		adj.Type,
		adj.Amount,
		adj.Reason,
		adj.AdjustmentDate,
		adj.State,
	).Scan(&adj.ID, &adj.CreatedAt, &adj.UpdatedAt)

	if err != nil {
		return adjustment.Adjustment{}, fmt.Errorf("failed to create leave adjustment: %w", err)
	}

	return adj, nil
}

// GetByID implements adjustment.AdjustmentRepository.
func (r *adjustmentRepository) GetByID(ctx context.Context, id string) (adjustment.Adjustment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, type, amount, reason, adjustment_date, state,
			   rejection_reason, created_at, updated_at
		FROM leave_adjustments
		WHERE id = $1
	`

	var adj adjustment.Adjustment
	err := q.QueryRow(ctx, query, id).Scan(
		&adj.ID, &adj.EmployeeID, &adj.Type, &adj.Amount, &adj.Reason,
		&adj.AdjustmentDate, &adj.State, &adj.RejectionReason,
		&adj.CreatedAt, &adj.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return adjustment.Adjustment{}, adjustment.ErrAdjustmentNotFound
		}
		return adjustment.Adjustment{}, fmt.Errorf("failed to get leave adjustment: %w", err)
	}

	return adj, nil
}

// GetByEmployeeID implements adjustment.AdjustmentRepository.
func (r *adjustmentRepository) GetByEmployeeID(ctx context.Context, employeeID string) ([]adjustment.Adjustment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, type, amount, reason, adjustment_date, state,
			   rejection_reason, created_at, updated_at
		FROM leave_adjustments
		WHERE employee_id = $1
		ORDER BY adjustment_date
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave adjustments: %w", err)
	}
	defer rows.Close()

	adjustments := make([]adjustment.Adjustment, 0)
	for rows.Next() {
		var adj adjustment.Adjustment
		err := rows.Scan(
			&adj.ID, &adj.EmployeeID, &adj.Type, &adj.Amount, &adj.Reason,
			&adj.AdjustmentDate, &adj.State, &adj.RejectionReason,
			&adj.CreatedAt, &adj.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave adjustment: %w", err)
		}
		adjustments = append(adjustments, adj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leave adjustments: %w", err)
	}

	return adjustments, nil
}

// UpdateState implements adjustment.AdjustmentRepository.
func (r *adjustmentRepository) UpdateState(ctx context.Context, id string, state adjustment.State, rejectionReason *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_adjustments
		SET state = $2,
			rejection_reason = $3,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, state, rejectionReason)
	if err != nil {
		return fmt.Errorf("failed to update leave adjustment state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return adjustment.ErrAdjustmentNotFound
	}

	return nil
}

func NewAdjustmentRepository(db *database.DB) adjustment.AdjustmentRepository {
	return &adjustmentRepository{db: db}
}
