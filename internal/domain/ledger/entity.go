package ledger

import (
	"time"
)

// Entry is one row of an employee's leave balance ledger. Discrete entries
// record a single event (an approved leave, an adjustment, an allowance
// grant); monthly summary entries aggregate a whole calendar month.
type Entry struct {
	ID         string
	EmployeeID string

	// EventDate is the date the entry represents: the event date for
	// discrete entries, the last day of the month for monthly summaries.
	EventDate time.Time

	// Seq is the repository-assigned insertion sequence. Entries sharing an
	// EventDate are ordered by Seq, so the chain order is total.
	Seq int64

	IsMonthlySummary bool

	// OpeningLeaves carries in the previous entry's ClosingLeaves, or 0 for
	// the first entry of the chain.
	OpeningLeaves float64

	// LeaveAdjustment is the signed delta applied by an adjustment record.
	LeaveAdjustment float64

	// ApprovedLeaves counts approved-leave working days attributed to this
	// entry.
	ApprovedLeaves float64

	// AbsentDays counts unexcused absence working days. Monthly summaries
	// only; always 0 on discrete entries.
	AbsentDays float64

	// AllowedLeaves snapshots the employee's total approved allowance at
	// computation time.
	AllowedLeaves float64

	// ClosingLeaves and RemainingLeaves are derived by the recompute engine
	// and never authored directly:
	//   ClosingLeaves   = OpeningLeaves + LeaveAdjustment + ApprovedLeaves + AbsentDays
	//   RemainingLeaves = AllowedLeaves - ClosingLeaves
	ClosingLeaves   float64
	RemainingLeaves float64

	// AdjustmentRefID / AllowanceRefID point back at the originating record.
	// Each referenced record produces at most one entry.
	AdjustmentRefID *string
	AllowanceRefID  *string

	// Active soft-hides the entry: inactive entries drop out of chain
	// computation but stay queryable.
	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Position identifies a point in an employee's chain. Seq -1 sorts before
// every entry on the same date, so {date, -1} means "from this date on".
type Position struct {
	EventDate time.Time
	Seq       int64
}

// Before reports whether p sorts strictly before q in chain order.
func (p Position) Before(q Position) bool {
	if !p.EventDate.Equal(q.EventDate) {
		return p.EventDate.Before(q.EventDate)
	}
	return p.Seq < q.Seq
}

// Pos returns the entry's chain position.
func (e Entry) Pos() Position {
	return Position{EventDate: e.EventDate, Seq: e.Seq}
}

// Derive recomputes the derived totals from the authored fields.
func (e *Entry) Derive() {
	e.ClosingLeaves = e.OpeningLeaves + e.LeaveAdjustment + e.ApprovedLeaves + e.AbsentDays
	e.RemainingLeaves = e.AllowedLeaves - e.ClosingLeaves
}

// Balance is the computed balance exposed to reporting collaborators.
type Balance struct {
	AllowedLeaves   float64
	ClosingLeaves   float64
	RemainingLeaves float64
}

// BalanceOf extracts the entry's balance snapshot.
func (e Entry) BalanceOf() Balance {
	return Balance{
		AllowedLeaves:   e.AllowedLeaves,
		ClosingLeaves:   e.ClosingLeaves,
		RemainingLeaves: e.RemainingLeaves,
	}
}
