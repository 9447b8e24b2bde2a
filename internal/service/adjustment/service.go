package adjustment

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/ledger"
)

type service struct {
	adjustmentRepo adjustment.AdjustmentRepository
	ledgerService  ledger.Service
}

func NewAdjustmentService(
	adjustmentRepo adjustment.AdjustmentRepository,
	ledgerService ledger.Service,
) adjustment.Service {
	return &service{
		adjustmentRepo: adjustmentRepo,
		ledgerService:  ledgerService,
	}
}

// Create implements adjustment.Service.
func (s *service) Create(ctx context.Context, req adjustment.CreateAdjustmentRequest) (adjustment.Adjustment, error) {
	if err := req.Validate(); err != nil {
		return adjustment.Adjustment{}, err
	}

	return s.adjustmentRepo.Create(ctx, adjustment.Adjustment{
		EmployeeID:     req.EmployeeID,
		Type:           req.Type,
		Amount:         req.Amount,
		Reason:         req.Reason,
		AdjustmentDate: req.AdjustmentDate,
		State:          adjustment.StateDraft,
	})
}

// Submit implements adjustment.Service.
func (s *service) Submit(ctx context.Context, id string) error {
	adj, err := s.adjustmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if adj.State != adjustment.StateDraft {
		return adjustment.ErrAdjustmentAlreadyProcessed
	}
	return s.adjustmentRepo.UpdateState(ctx, id, adjustment.StateSubmitted, nil)
}

// Approve implements adjustment.Service. Approval writes the adjustment's
// ledger entry; the signed delta comes from the adjustment type, and the
// ref uniqueness invariant guarantees a retried approval cannot write a
// second entry.
func (s *service) Approve(ctx context.Context, id string) error {
	adj, err := s.adjustmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if adj.State != adjustment.StateSubmitted {
		return adjustment.ErrAdjustmentAlreadyProcessed
	}

	if err := s.adjustmentRepo.UpdateState(ctx, id, adjustment.StateApproved, nil); err != nil {
		return err
	}

	_, err = s.ledgerService.CreateEntry(ctx, ledger.CreateEntryRequest{
		EmployeeID:      adj.EmployeeID,
		EventDate:       adj.AdjustmentDate,
		LeaveAdjustment: adj.Delta(),
		AdjustmentRefID: &adj.ID,
	})
	if err != nil {
		return err
	}

	slog.Info("Leave adjustment approved",
		"adjustment_id", adj.ID,
		"employee_id", adj.EmployeeID,
		"delta", adj.Delta())
	return nil
}

// Reject implements adjustment.Service.
func (s *service) Reject(ctx context.Context, req adjustment.RejectAdjustmentRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	adj, err := s.adjustmentRepo.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}
	if adj.State != adjustment.StateSubmitted {
		return adjustment.ErrAdjustmentAlreadyProcessed
	}
	return s.adjustmentRepo.UpdateState(ctx, req.ID, adjustment.StateRejected, &req.Reason)
}

// GetByEmployee implements adjustment.Service.
func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]adjustment.Adjustment, error) {
	return s.adjustmentRepo.GetByEmployeeID(ctx, employeeID)
}
