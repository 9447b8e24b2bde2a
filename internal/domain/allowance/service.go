package allowance

import "context"

// Service runs the allowance approval workflow. Approving an allowance
// records its ledger entry at the allowance's from-date; resetting to draft
// removes that entry and re-baselines the chain.
type Service interface {
	Create(ctx context.Context, req CreateAllowanceRequest) (Allowance, error)
	Approve(ctx context.Context, id string) error
	ResetToDraft(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Allowance, error)
}
