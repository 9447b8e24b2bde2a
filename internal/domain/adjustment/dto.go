package adjustment

import (
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/pkg/validator"
)

type CreateAdjustmentRequest struct {
	EmployeeID     string
	Type           Type
	Amount         float64
	Reason         string
	AdjustmentDate time.Time
}

func (r CreateAdjustmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if r.Type != TypePositive && r.Type != TypeNegative {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be positive or negative"})
	}
	if r.Amount <= 0 {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be greater than zero"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}
	if r.AdjustmentDate.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "adjustment_date", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AdjustmentResponse is the HTTP shape of an adjustment.
type AdjustmentResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	Type            Type    `json:"type"`
	Amount          float64 `json:"amount"`
	Reason          string  `json:"reason"`
	AdjustmentDate  string  `json:"adjustment_date"`
	State           State   `json:"state"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

func ToAdjustmentResponse(a Adjustment) AdjustmentResponse {
	return AdjustmentResponse{
		ID:              a.ID,
		EmployeeID:      a.EmployeeID,
		Type:            a.Type,
		Amount:          a.Amount,
		Reason:          a.Reason,
		AdjustmentDate:  a.AdjustmentDate.Format("2006-01-02"),
		State:           a.State,
		RejectionReason: a.RejectionReason,
	}
}

type RejectAdjustmentRequest struct {
	ID     string
	Reason string
}

func (r RejectAdjustmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "is required"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
