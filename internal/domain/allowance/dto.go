package allowance

import (
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/pkg/validator"
)

type CreateAllowanceRequest struct {
	EmployeeID    string
	TimeOffType   TimeOffType
	FromDate      time.Time
	ToDate        *time.Time
	AllowedLeaves float64
}

// AllowanceResponse is the HTTP shape of an allowance.
type AllowanceResponse struct {
	ID            string      `json:"id"`
	EmployeeID    string      `json:"employee_id"`
	TimeOffType   TimeOffType `json:"time_off_type"`
	FromDate      string      `json:"from_date"`
	ToDate        *string     `json:"to_date,omitempty"`
	AllowedLeaves float64     `json:"allowed_leaves"`
	State         State       `json:"state"`
}

func ToAllowanceResponse(a Allowance) AllowanceResponse {
	resp := AllowanceResponse{
		ID:            a.ID,
		EmployeeID:    a.EmployeeID,
		TimeOffType:   a.TimeOffType,
		FromDate:      a.FromDate.Format("2006-01-02"),
		AllowedLeaves: a.AllowedLeaves,
		State:         a.State,
	}
	if a.ToDate != nil {
		to := a.ToDate.Format("2006-01-02")
		resp.ToDate = &to
	}
	return resp
}

func (r CreateAllowanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	switch r.TimeOffType {
	case TimeOffCA130, TimeOffCA150, TimeOffCA115, TimeOffAnnualPerm:
	default:
		errs = append(errs, validator.ValidationError{Field: "time_off_type", Message: "is not a known time off type"})
	}
	if r.FromDate.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "from_date", Message: "is required"})
	}
	if r.ToDate != nil && r.ToDate.Before(r.FromDate) {
		errs = append(errs, validator.ValidationError{Field: "to_date", Message: "must not be before from_date"})
	}
	if r.AllowedLeaves < 0 {
		errs = append(errs, validator.ValidationError{Field: "allowed_leaves", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
