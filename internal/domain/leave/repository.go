package leave

import (
	"context"
	"time"
)

// RequestRepository - interface for leave_requests storage
type RequestRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	GetByEmployeeID(ctx context.Context, employeeID string) ([]Request, error)
	// ListApprovedOverlapping returns approved requests for the employee
	// whose [StartDate, EndDate] interval overlaps [start, end].
	ListApprovedOverlapping(ctx context.Context, employeeID string, start, end time.Time) ([]Request, error)
	UpdateStatus(ctx context.Context, id string, status Status, approvedBy *string, approvedAt *time.Time) error
}
