package leave

import (
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/pkg/validator"
)

type CreateRequestRequest struct {
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
}

// RequestResponse is the HTTP shape of a leave request.
type RequestResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Reason     string  `json:"reason"`
	Status     Status  `json:"status"`
	ApprovedBy *string `json:"approved_by,omitempty"`
}

func ToRequestResponse(req Request) RequestResponse {
	return RequestResponse{
		ID:         req.ID,
		EmployeeID: req.EmployeeID,
		StartDate:  req.StartDate.Format("2006-01-02"),
		EndDate:    req.EndDate.Format("2006-01-02"),
		Reason:     req.Reason,
		Status:     req.Status,
		ApprovedBy: req.ApprovedBy,
	}
}

func (r CreateRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if r.StartDate.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "is required"})
	}
	if r.EndDate.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "is required"})
	}
	if !r.StartDate.IsZero() && !r.EndDate.IsZero() && r.EndDate.Before(r.StartDate) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
