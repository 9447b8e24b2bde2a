package adjustment

import "context"

// Service runs the adjustment approval workflow. Approving an adjustment is
// what produces its ledger entry; an adjustment can produce at most one.
type Service interface {
	Create(ctx context.Context, req CreateAdjustmentRequest) (Adjustment, error)
	Submit(ctx context.Context, id string) error
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, req RejectAdjustmentRequest) error
	GetByEmployee(ctx context.Context, employeeID string) ([]Adjustment, error)
}
