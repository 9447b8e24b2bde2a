package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/allowance"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/employee"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/holiday"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/ledger"
	"github.com/cmlabs-hris/leave-ledger-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Ledger domain errors
	case errors.Is(err, ledger.ErrEntryNotFound):
		NotFound(w, "Ledger entry not found")
	case errors.Is(err, ledger.ErrDuplicateEntry):
		Conflict(w, "Employee already has a ledger entry for this date")
	case errors.Is(err, ledger.ErrDuplicateAdjustmentRef):
		Conflict(w, "Adjustment already produced a ledger entry")
	case errors.Is(err, ledger.ErrDuplicateAllowanceRef):
		Conflict(w, "Allowance already produced a ledger entry")
	case errors.Is(err, ledger.ErrCascadeIncomplete):
		UnprocessableEntity(w, "Balance recomputation incomplete, retry the recompute")
	case errors.Is(err, ledger.ErrOrderingViolation):
		UnprocessableEntity(w, "Ledger chain ordering violation detected")

	// Adjustment domain errors
	case errors.Is(err, adjustment.ErrAdjustmentNotFound):
		NotFound(w, "Leave adjustment not found")
	case errors.Is(err, adjustment.ErrAdjustmentAlreadyProcessed):
		Conflict(w, "Leave adjustment already processed")

	// Allowance domain errors
	case errors.Is(err, allowance.ErrAllowanceNotFound):
		NotFound(w, "Leave allowance not found")
	case errors.Is(err, allowance.ErrAllowanceAlreadyProcessed):
		Conflict(w, "Leave allowance already processed")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrLeaveRequestNoWorkingDays):
		BadRequest(w, "Leave request covers no working days", nil)

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Public holiday not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
