package leave

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/ledger"
	ledgerService "github.com/cmlabs-hris/leave-ledger-go/internal/service/ledger"
)

type service struct {
	leaveRepo leave.RequestRepository
	ledgerSvc ledger.Service
	calendar  *ledgerService.CalendarService
}

func NewLeaveService(
	leaveRepo leave.RequestRepository,
	ledgerSvc ledger.Service,
	calendar *ledgerService.CalendarService,
) leave.Service {
	return &service{
		leaveRepo: leaveRepo,
		ledgerSvc: ledgerSvc,
		calendar:  calendar,
	}
}

// Create implements leave.Service.
func (s *service) Create(ctx context.Context, req leave.CreateRequestRequest) (leave.Request, error) {
	if err := req.Validate(); err != nil {
		return leave.Request{}, err
	}

	return s.leaveRepo.Create(ctx, leave.Request{
		EmployeeID: req.EmployeeID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Reason:     req.Reason,
		Status:     leave.StatusWaitingApproval,
	})
}

// Approve implements leave.Service. The approved interval becomes a
// discrete ledger entry at the start date whose approved_leaves is the
// interval's working day count. Leaves ending more than three months ago
// are approved without a ledger entry; those months are already summarized.
func (s *service) Approve(ctx context.Context, id string, approvedBy string, now time.Time) error {
	lr, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if lr.Status != leave.StatusWaitingApproval {
		return leave.ErrLeaveRequestAlreadyProcessed
	}

	approvedAt := now
	if err := s.leaveRepo.UpdateStatus(ctx, id, leave.StatusApproved, &approvedBy, &approvedAt); err != nil {
		return err
	}

	if lr.EndDate.Before(ledgerService.Day(now).AddDate(0, -3, 0)) {
		slog.Debug("Skipping ledger entry for old leave", "request_id", lr.ID)
		return nil
	}

	workDays, err := s.calendar.WorkingDays(ctx, lr.StartDate, lr.EndDate)
	if err != nil {
		return err
	}
	if len(workDays) == 0 {
		slog.Warn("Approved leave covers no working days, no ledger entry recorded",
			"request_id", lr.ID, "employee_id", lr.EmployeeID)
		return nil
	}

	_, err = s.ledgerSvc.CreateEntry(ctx, ledger.CreateEntryRequest{
		EmployeeID:     lr.EmployeeID,
		EventDate:      lr.StartDate,
		ApprovedLeaves: float64(len(workDays)),
	})
	if errors.Is(err, ledger.ErrDuplicateEntry) {
		// An identical discrete entry already exists for this date; nothing
		// new to record.
		slog.Warn("Discrete ledger entry already exists for leave start date",
			"request_id", lr.ID, "employee_id", lr.EmployeeID)
		return nil
	}
	if err != nil {
		return err
	}

	slog.Info("Leave request approved",
		"request_id", lr.ID,
		"employee_id", lr.EmployeeID,
		"working_days", len(workDays))
	return nil
}

// GetByEmployee implements leave.Service.
func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]leave.Request, error) {
	return s.leaveRepo.GetByEmployeeID(ctx, employeeID)
}
