package ledger

import (
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/pkg/validator"
)

// CreateEntryRequest creates a ledger entry through the cascade trigger.
type CreateEntryRequest struct {
	EmployeeID       string
	EventDate        time.Time
	IsMonthlySummary bool
	LeaveAdjustment  float64
	ApprovedLeaves   float64
	AbsentDays       float64
	AdjustmentRefID  *string
	AllowanceRefID   *string
}

func (r CreateEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if r.EventDate.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "event_date", Message: "is required"})
	}
	if r.ApprovedLeaves < 0 {
		errs = append(errs, validator.ValidationError{Field: "approved_leaves", Message: "must not be negative"})
	}
	if r.AbsentDays < 0 {
		errs = append(errs, validator.ValidationError{Field: "absent_days", Message: "must not be negative"})
	}
	if !r.IsMonthlySummary && r.AbsentDays != 0 {
		errs = append(errs, validator.ValidationError{Field: "absent_days", Message: "only monthly summaries carry absences"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateEntryRequest mutates the authored fields of an entry. Derived fields
// are owned by the recompute engine and cannot be set here.
type UpdateEntryRequest struct {
	ID              string
	EventDate       *time.Time
	LeaveAdjustment *float64
	ApprovedLeaves  *float64
	AbsentDays      *float64
}

func (r UpdateEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "is required"})
	}
	if r.EventDate != nil && r.EventDate.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "event_date", Message: "must be a valid date"})
	}
	if r.ApprovedLeaves != nil && *r.ApprovedLeaves < 0 {
		errs = append(errs, validator.ValidationError{Field: "approved_leaves", Message: "must not be negative"})
	}
	if r.AbsentDays != nil && *r.AbsentDays < 0 {
		errs = append(errs, validator.ValidationError{Field: "absent_days", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// EntryResponse is the HTTP shape of a ledger entry.
type EntryResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	EventDate        string  `json:"event_date"`
	IsMonthlySummary bool    `json:"is_monthly_summary"`
	OpeningLeaves    float64 `json:"opening_leaves"`
	LeaveAdjustment  float64 `json:"leave_adjustment"`
	ApprovedLeaves   float64 `json:"approved_leaves"`
	AbsentDays       float64 `json:"absent_days"`
	AllowedLeaves    float64 `json:"allowed_leaves"`
	ClosingLeaves    float64 `json:"closing_leaves"`
	RemainingLeaves  float64 `json:"remaining_leaves"`
	Active           bool    `json:"active"`
}

func ToEntryResponse(e Entry) EntryResponse {
	return EntryResponse{
		ID:               e.ID,
		EmployeeID:       e.EmployeeID,
		EventDate:        e.EventDate.Format("2006-01-02"),
		IsMonthlySummary: e.IsMonthlySummary,
		OpeningLeaves:    e.OpeningLeaves,
		LeaveAdjustment:  e.LeaveAdjustment,
		ApprovedLeaves:   e.ApprovedLeaves,
		AbsentDays:       e.AbsentDays,
		AllowedLeaves:    e.AllowedLeaves,
		ClosingLeaves:    e.ClosingLeaves,
		RemainingLeaves:  e.RemainingLeaves,
		Active:           e.Active,
	}
}

// BalanceResponse is the HTTP shape of a computed balance.
type BalanceResponse struct {
	EmployeeID      string  `json:"employee_id"`
	AsOf            string  `json:"as_of"`
	AllowedLeaves   float64 `json:"allowed_leaves"`
	ClosingLeaves   float64 `json:"closing_leaves"`
	RemainingLeaves float64 `json:"remaining_leaves"`
}
