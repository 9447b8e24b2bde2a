package allowance

import "time"

type State string

const (
	StateDraft    State = "draft"
	StateApproved State = "approved"
)

type TimeOffType string

const (
	TimeOffCA130      TimeOffType = "ca_130"
	TimeOffCA150      TimeOffType = "ca_150"
	TimeOffCA115      TimeOffType = "ca_115"
	TimeOffAnnualPerm TimeOffType = "annual_perm"
)

// Allowance grants an employee a number of allowed leave days. The allowance
// resolver sums all currently approved allowances per employee.
type Allowance struct {
	ID            string
	EmployeeID    string
	TimeOffType   TimeOffType
	FromDate      time.Time
	ToDate        *time.Time
	AllowedLeaves float64
	State         State

	CreatedAt time.Time
	UpdatedAt time.Time
}
