package ledger

import (
	"context"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/allowance"
)

// AllowanceResolver sums the employee's currently approved allowances into a
// single allowed-leaves figure.
//
// Note the resolver deliberately ignores the ledger entry's historical date:
// an allowance approved later retroactively changes allowed_leaves on past
// entries at their next recompute. This mirrors how the allowance records
// are administered (they restate the employee's entitlement, not a dated
// grant).
type AllowanceResolver struct {
	allowanceRepo allowance.AllowanceRepository
}

func NewAllowanceResolver(allowanceRepo allowance.AllowanceRepository) *AllowanceResolver {
	return &AllowanceResolver{allowanceRepo: allowanceRepo}
}

// TotalApproved returns the sum of allowed leaves across approved allowance
// records. Never negative; 0 when no approved allowance exists.
func (r *AllowanceResolver) TotalApproved(ctx context.Context, employeeID string) (float64, error) {
	allowances, err := r.allowanceRepo.ListApprovedByEmployee(ctx, employeeID)
	if err != nil {
		return 0, err
	}

	total := 0.0
	for _, a := range allowances {
		total += a.AllowedLeaves
	}
	if total < 0 {
		total = 0
	}
	return total, nil
}
