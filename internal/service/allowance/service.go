package allowance

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/allowance"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/ledger"
)

type service struct {
	allowanceRepo allowance.AllowanceRepository
	entryRepo     ledger.EntryRepository
	ledgerService ledger.Service
}

func NewAllowanceService(
	allowanceRepo allowance.AllowanceRepository,
	entryRepo ledger.EntryRepository,
	ledgerService ledger.Service,
) allowance.Service {
	return &service{
		allowanceRepo: allowanceRepo,
		entryRepo:     entryRepo,
		ledgerService: ledgerService,
	}
}

// Create implements allowance.Service.
func (s *service) Create(ctx context.Context, req allowance.CreateAllowanceRequest) (allowance.Allowance, error) {
	if err := req.Validate(); err != nil {
		return allowance.Allowance{}, err
	}

	return s.allowanceRepo.Create(ctx, allowance.Allowance{
		EmployeeID:    req.EmployeeID,
		TimeOffType:   req.TimeOffType,
		FromDate:      req.FromDate,
		ToDate:        req.ToDate,
		AllowedLeaves: req.AllowedLeaves,
		State:         allowance.StateDraft,
	})
}

// Approve implements allowance.Service. The ledger entry is created after
// the state flips to approved, so the allowance resolver already sees the
// new total when the entry and its downstream chain are computed.
func (s *service) Approve(ctx context.Context, id string) error {
	a, err := s.allowanceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a.State != allowance.StateDraft {
		return allowance.ErrAllowanceAlreadyProcessed
	}

	if err := s.allowanceRepo.UpdateState(ctx, id, allowance.StateApproved); err != nil {
		return err
	}

	_, err = s.ledgerService.CreateEntry(ctx, ledger.CreateEntryRequest{
		EmployeeID:     a.EmployeeID,
		EventDate:      a.FromDate,
		AllowanceRefID: &a.ID,
	})
	if err != nil {
		return err
	}

	slog.Info("Leave allowance approved",
		"allowance_id", a.ID,
		"employee_id", a.EmployeeID,
		"allowed_leaves", a.AllowedLeaves)
	return nil
}

// ResetToDraft implements allowance.Service. The allowance's ledger entry
// is removed and the remaining chain re-baselines from the earliest removed
// date.
func (s *service) ResetToDraft(ctx context.Context, id string) error {
	a, err := s.allowanceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.allowanceRepo.UpdateState(ctx, id, allowance.StateDraft); err != nil {
		return err
	}

	removed, err := s.entryRepo.DeleteByAllowanceRef(ctx, id)
	if err != nil {
		return err
	}
	if len(removed) == 0 {
		return nil
	}

	from := removed[0].EventDate
	for _, en := range removed[1:] {
		if en.EventDate.Before(from) {
			from = en.EventDate
		}
	}
	return s.ledgerService.RecomputeFrom(ctx, a.EmployeeID, from)
}

// GetByID implements allowance.Service.
func (s *service) GetByID(ctx context.Context, id string) (allowance.Allowance, error) {
	return s.allowanceRepo.GetByID(ctx, id)
}
