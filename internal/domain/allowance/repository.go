package allowance

import "context"

// AllowanceRepository - interface for leave_allowances storage
type AllowanceRepository interface {
	Create(ctx context.Context, a Allowance) (Allowance, error)
	GetByID(ctx context.Context, id string) (Allowance, error)
	// ListApprovedByEmployee returns every allowance currently in the
	// approved state for the employee.
	ListApprovedByEmployee(ctx context.Context, employeeID string) ([]Allowance, error)
	UpdateState(ctx context.Context, id string, state State) error
}
