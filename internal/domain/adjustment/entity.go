package adjustment

import "time"

type State string

const (
	StateDraft     State = "draft"
	StateSubmitted State = "submitted"
	StateApproved  State = "approved"
	StateRejected  State = "rejected"
)

type Type string

const (
	// TypePositive adds to the closing balance (consumes leave headroom),
	// TypeNegative gives it back. The signed delta applied to the ledger is
	// derived from the type, never authored directly.
	TypePositive Type = "positive"
	TypeNegative Type = "negative"
)

// Adjustment is an ad-hoc leave balance correction subject to approval.
type Adjustment struct {
	ID              string
	EmployeeID      string
	Type            Type
	Amount          float64
	Reason          string
	AdjustmentDate  time.Time
	State           State
	RejectionReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Delta returns the signed value applied to the ledger entry.
func (a Adjustment) Delta() float64 {
	if a.Type == TypeNegative {
		return -a.Amount
	}
	return a.Amount
}
