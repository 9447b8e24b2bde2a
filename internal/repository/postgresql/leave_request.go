package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-ledger-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepository struct {
	db *database.DB
}

// Create implements leave.RequestRepository.
func (r *leaveRequestRepository) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			employee_id, start_date, end_date, reason, status
		) VALUES (
			$1, $2, $3, $4, $5
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.EmployeeID,
		req.StartDate,
		req.EndDate,
		req.Reason,
		req.Status,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)

	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return req, nil
}

// GetByID implements leave.RequestRepository.
func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, start_date, end_date, reason, status,
			   approved_by, approved_at, created_at, updated_at
		FROM leave_requests
		WHERE id = $1
	`

	var req leave.Request
	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.EmployeeID, &req.StartDate, &req.EndDate, &req.Reason,
		&req.Status, &req.ApprovedBy, &req.ApprovedAt, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Request{}, leave.ErrLeaveRequestNotFound
		}
		return leave.Request{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return req, nil
}

// GetByEmployeeID implements leave.RequestRepository.
func (r *leaveRequestRepository) GetByEmployeeID(ctx context.Context, employeeID string) ([]leave.Request, error) {
	query := `
		SELECT id, employee_id, start_date, end_date, reason, status,
			   approved_by, approved_at, created_at, updated_at
		FROM leave_requests
		WHERE employee_id = $1
		ORDER BY start_date
	`
	return r.queryRequests(ctx, query, employeeID)
}

// ListApprovedOverlapping implements leave.RequestRepository.
func (r *leaveRequestRepository) ListApprovedOverlapping(ctx context.Context, employeeID string, start, end time.Time) ([]leave.Request, error) {
	query := `
		SELECT id, employee_id, start_date, end_date, reason, status,
			   approved_by, approved_at, created_at, updated_at
		FROM leave_requests
		WHERE employee_id = $1
		  AND status = 'approved'
		  AND start_date <= $3
		  AND end_date >= $2
		ORDER BY start_date
	`
	return r.queryRequests(ctx, query, employeeID, start, end)
}

// UpdateStatus implements leave.RequestRepository.
func (r *leaveRequestRepository) UpdateStatus(ctx context.Context, id string, status leave.Status, approvedBy *string, approvedAt *time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2,
			approved_by = $3,
			approved_at = $4,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, status, approvedBy, approvedAt)
	if err != nil {
		return fmt.Errorf("failed to update leave request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}

	return nil
}

func (r *leaveRequestRepository) queryRequests(ctx context.Context, query string, args ...any) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	requests := make([]leave.Request, 0)
	for rows.Next() {
		var req leave.Request
		err := rows.Scan(
			&req.ID, &req.EmployeeID, &req.StartDate, &req.EndDate, &req.Reason,
			&req.Status, &req.ApprovedBy, &req.ApprovedAt, &req.CreatedAt, &req.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leave requests: %w", err)
	}

	return requests, nil
}

func NewLeaveRequestRepository(db *database.DB) leave.RequestRepository {
	return &leaveRequestRepository{db: db}
}
