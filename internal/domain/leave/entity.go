package leave

import "time"

type Status string

const (
	StatusWaitingApproval Status = "waiting_approval"
	StatusApproved        Status = "approved"
	StatusRejected        Status = "rejected"
	StatusCancelled       Status = "cancelled"
)

// Request is an employee leave request. Only approved requests feed the
// ledger: approval records a discrete ledger entry at StartDate covering the
// interval's working days.
type Request struct {
	ID         string
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
	Status     Status

	ApprovedBy *string
	ApprovedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
