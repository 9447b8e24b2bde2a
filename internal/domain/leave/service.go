package leave

import (
	"context"
	"time"
)

// Service runs the leave request workflow. Approval records the request's
// discrete ledger entry at the start date, covering the interval's working
// days.
type Service interface {
	Create(ctx context.Context, req CreateRequestRequest) (Request, error)
	Approve(ctx context.Context, id string, approvedBy string, now time.Time) error
	GetByEmployee(ctx context.Context, employeeID string) ([]Request, error)
}
