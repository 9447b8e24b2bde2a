package ledger

import (
	"context"
	"time"
)

// EntryRepository - ordered storage of ledger entries keyed by
// (employee_id, event_date, seq). Implementations must enforce the
// uniqueness invariants and return the matching domain errors.
type EntryRepository interface {
	// Create assigns ID and Seq and persists the entry. Returns
	// ErrDuplicateEntry / ErrDuplicateAdjustmentRef / ErrDuplicateAllowanceRef
	// on uniqueness violations.
	Create(ctx context.Context, entry Entry) (Entry, error)
	GetByID(ctx context.Context, id string) (Entry, error)

	// ListByEmployee returns the employee's active entries in ascending
	// chain order.
	ListByEmployee(ctx context.Context, employeeID string) ([]Entry, error)

	// ListAfter returns active entries strictly after pos, ascending.
	// With pos.Seq == -1 this includes entries on pos.EventDate itself.
	ListAfter(ctx context.Context, employeeID string, pos Position) ([]Entry, error)

	// LastBefore returns the last active entry strictly before pos in chain
	// order, or ok=false when the chain has no earlier entry.
	LastBefore(ctx context.Context, employeeID string, pos Position) (Entry, bool, error)

	// LastAsOf returns the last active entry whose event date is on or
	// before the given date.
	LastAsOf(ctx context.Context, employeeID string, date time.Time) (Entry, bool, error)

	// ListDiscreteInRange returns active non-summary entries with
	// ApprovedLeaves > 0 and event date within [start, end], ascending.
	ListDiscreteInRange(ctx context.Context, employeeID string, start, end time.Time) ([]Entry, error)

	// HasMonthlySummary reports whether the employee already has an active
	// monthly summary with event date within [start, end].
	HasMonthlySummary(ctx context.Context, employeeID string, start, end time.Time) (bool, error)

	// Update rewrites an entry's authored fields. Cascading is the caller's
	// concern; the repository never recomputes anything.
	Update(ctx context.Context, entry Entry) error

	// PersistComputed writes the derived fields (opening, allowed, approved,
	// absent, closing, remaining) of one recompute batch inside a single
	// commit. This is the recompute engine's write path and must never
	// trigger cascade logic.
	PersistComputed(ctx context.Context, entries []Entry) error

	Delete(ctx context.Context, id string) error

	// DeleteByAllowanceRef removes entries produced by the given allowance
	// and returns them so the caller can re-baseline the chain.
	DeleteByAllowanceRef(ctx context.Context, allowanceID string) ([]Entry, error)
}
