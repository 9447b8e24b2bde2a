package adjustment

import "context"

// AdjustmentRepository - interface for leave_adjustments storage
type AdjustmentRepository interface {
	Create(ctx context.Context, adj Adjustment) (Adjustment, error)
	GetByID(ctx context.Context, id string) (Adjustment, error)
	GetByEmployeeID(ctx context.Context, employeeID string) ([]Adjustment, error)
	UpdateState(ctx context.Context, id string, state State, rejectionReason *string) error
}
