package ledger

import (
	"context"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/employee"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/ledger"
)

// service implements ledger.Service. Entry writes are the cascade trigger:
// the touched entry's own fields are computed inline, then the recompute
// engine propagates forward through every later entry of the same employee.
type service struct {
	entryRepo    ledger.EntryRepository
	employeeRepo employee.EmployeeRepository
	engine       *Engine
	attribution  *AttributionResolver
	locks        *employeeLocks
}

func NewLedgerService(
	entryRepo ledger.EntryRepository,
	employeeRepo employee.EmployeeRepository,
	engine *Engine,
	attribution *AttributionResolver,
) ledger.Service {
	return &service{
		entryRepo:    entryRepo,
		employeeRepo: employeeRepo,
		engine:       engine,
		attribution:  attribution,
		locks:        newEmployeeLocks(),
	}
}

// CreateEntry implements ledger.Service.
func (s *service) CreateEntry(ctx context.Context, req ledger.CreateEntryRequest) (ledger.Entry, error) {
	if err := req.Validate(); err != nil {
		return ledger.Entry{}, err
	}

	unlock := s.locks.Lock(req.EmployeeID)
	defer unlock()

	created, err := s.entryRepo.Create(ctx, ledger.Entry{
		EmployeeID:       req.EmployeeID,
		EventDate:        Day(req.EventDate),
		IsMonthlySummary: req.IsMonthlySummary,
		LeaveAdjustment:  req.LeaveAdjustment,
		ApprovedLeaves:   req.ApprovedLeaves,
		AbsentDays:       req.AbsentDays,
		AdjustmentRefID:  req.AdjustmentRefID,
		AllowanceRefID:   req.AllowanceRefID,
		Active:           true,
	})
	if err != nil {
		return ledger.Entry{}, err
	}

	// The new entry's own fields are computed inline rather than by a full
	// cascade from its date, so the cascade below only has to touch entries
	// strictly after it.
	opening := 0.0
	prev, ok, err := s.entryRepo.LastBefore(ctx, created.EmployeeID, created.Pos())
	if err != nil {
		return ledger.Entry{}, err
	}
	if ok {
		opening = prev.ClosingLeaves
	}

	computed, err := s.engine.ComputeEntry(ctx, created, opening)
	if err != nil {
		return ledger.Entry{}, err
	}
	if err := s.entryRepo.PersistComputed(ctx, []ledger.Entry{computed}); err != nil {
		return ledger.Entry{}, err
	}

	if err := s.engine.RecomputeAfter(ctx, computed.EmployeeID, computed.Pos()); err != nil {
		return ledger.Entry{}, err
	}
	return computed, nil
}

// UpdateEntry implements ledger.Service.
func (s *service) UpdateEntry(ctx context.Context, req ledger.UpdateEntryRequest) (ledger.Entry, error) {
	if err := req.Validate(); err != nil {
		return ledger.Entry{}, err
	}

	en, err := s.entryRepo.GetByID(ctx, req.ID)
	if err != nil {
		return ledger.Entry{}, err
	}

	unlock := s.locks.Lock(en.EmployeeID)
	defer unlock()

	// Reload under the lock: a cascade may have rewritten the entry since.
	en, err = s.entryRepo.GetByID(ctx, req.ID)
	if err != nil {
		return ledger.Entry{}, err
	}

	oldDate := en.EventDate
	cascade := false

	if req.EventDate != nil && !Day(*req.EventDate).Equal(en.EventDate) {
		en.EventDate = Day(*req.EventDate)
		cascade = true
	}
	if req.LeaveAdjustment != nil && *req.LeaveAdjustment != en.LeaveAdjustment {
		en.LeaveAdjustment = *req.LeaveAdjustment
		cascade = true
	}
	if req.ApprovedLeaves != nil && *req.ApprovedLeaves != en.ApprovedLeaves {
		en.ApprovedLeaves = *req.ApprovedLeaves
		cascade = true
	}
	if req.AbsentDays != nil && *req.AbsentDays != en.AbsentDays {
		en.AbsentDays = *req.AbsentDays
		cascade = true
	}

	if err := s.entryRepo.Update(ctx, en); err != nil {
		return ledger.Entry{}, err
	}

	if cascade {
		from := oldDate
		if en.EventDate.Before(from) {
			from = en.EventDate
		}
		if err := s.engine.RecomputeFrom(ctx, en.EmployeeID, from); err != nil {
			return ledger.Entry{}, err
		}
	}

	return s.entryRepo.GetByID(ctx, req.ID)
}

// DeleteEntry implements ledger.Service. The chain re-baselines on the
// nearest surviving preceding entry, or zero when none remains.
func (s *service) DeleteEntry(ctx context.Context, id string) error {
	en, err := s.entryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	unlock := s.locks.Lock(en.EmployeeID)
	defer unlock()

	if err := s.entryRepo.Delete(ctx, id); err != nil {
		return err
	}
	return s.engine.RecomputeFrom(ctx, en.EmployeeID, en.EventDate)
}

// ArchiveEntry implements ledger.Service.
func (s *service) ArchiveEntry(ctx context.Context, id string) error {
	en, err := s.entryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	unlock := s.locks.Lock(en.EmployeeID)
	defer unlock()

	en, err = s.entryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !en.Active {
		return nil
	}
	en.Active = false
	if err := s.entryRepo.Update(ctx, en); err != nil {
		return err
	}
	return s.engine.RecomputeFrom(ctx, en.EmployeeID, en.EventDate)
}

// GetBalanceAsOf implements ledger.Service. Zeros when the employee has no
// entry at or before the date.
func (s *service) GetBalanceAsOf(ctx context.Context, employeeID string, date time.Time) (ledger.Balance, error) {
	en, ok, err := s.entryRepo.LastAsOf(ctx, employeeID, Day(date))
	if err != nil {
		return ledger.Balance{}, err
	}
	if !ok {
		return ledger.Balance{}, nil
	}
	return en.BalanceOf(), nil
}

// GetLedgerHistory implements ledger.Service.
func (s *service) GetLedgerHistory(ctx context.Context, employeeID string) ([]ledger.Entry, error) {
	return s.entryRepo.ListByEmployee(ctx, employeeID)
}

// RecomputeFrom implements ledger.Service. Also the repair path after a
// cascade-incomplete failure.
func (s *service) RecomputeFrom(ctx context.Context, employeeID string, from time.Time) error {
	unlock := s.locks.Lock(employeeID)
	defer unlock()

	return s.engine.RecomputeFrom(ctx, employeeID, from)
}
