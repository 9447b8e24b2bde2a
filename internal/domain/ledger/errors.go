package ledger

import "errors"

var (
	ErrEntryNotFound = errors.New("Ledger entry not found")

	// Uniqueness invariants: one entry per (employee, event_date,
	// is_monthly_summary), one entry per adjustment ref, one per allowance ref.
	ErrDuplicateEntry         = errors.New("Employee already has a ledger entry for this date")
	ErrDuplicateAdjustmentRef = errors.New("Adjustment already produced a ledger entry")
	ErrDuplicateAllowanceRef  = errors.New("Allowance already produced a ledger entry")

	// ErrCascadeIncomplete reports a recompute that failed partway. Entries
	// committed before the failure are consistent; the caller retries with
	// RecomputeFrom, which is idempotent.
	ErrCascadeIncomplete = errors.New("Cascade recompute incomplete")

	// ErrOrderingViolation means a post-recompute check found an opening
	// balance that does not match the prior closing balance. This indicates
	// a bug and must never be silently persisted.
	ErrOrderingViolation = errors.New("Ledger chain ordering violation")
)
