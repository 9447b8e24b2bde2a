package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/ledger"
	"github.com/google/uuid"
)

// ledgerEntryRepositoryImpl keeps the ledger in memory. It enforces the
// same uniqueness invariants the postgres schema enforces with its unique
// indexes, so the recompute engine behaves identically on either backend.
type ledgerEntryRepositoryImpl struct {
	mu      sync.RWMutex
	entries map[string]ledger.Entry
	nextSeq int64
}

func NewLedgerEntryRepository() ledger.EntryRepository {
	return &ledgerEntryRepositoryImpl{entries: make(map[string]ledger.Entry)}
}

// Create implements ledger.EntryRepository.
func (r *ledgerEntryRepositoryImpl) Create(ctx context.Context, entry ledger.Entry) (ledger.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkUnique(entry, ""); err != nil {
		return ledger.Entry{}, err
	}

	now := time.Now()
	entry.ID = uuid.NewString()
	entry.Seq = r.nextSeq
	r.nextSeq++
	entry.CreatedAt = now
	entry.UpdatedAt = now

	r.entries[entry.ID] = entry
	return entry, nil
}

// GetByID implements ledger.EntryRepository.
func (r *ledgerEntryRepositoryImpl) GetByID(ctx context.Context, id string) (ledger.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	en, ok := r.entries[id]
	if !ok {
		return ledger.Entry{}, ledger.ErrEntryNotFound
	}
	return en, nil
}

// ListByEmployee implements ledger.EntryRepository.
func (r *ledgerEntryRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]ledger.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(en ledger.Entry) bool {
		return en.EmployeeID == employeeID && en.Active
	}), nil
}

// ListAfter implements ledger.EntryRepository.
func (r *ledgerEntryRepositoryImpl) ListAfter(ctx context.Context, employeeID string, pos ledger.Position) ([]ledger.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(en ledger.Entry) bool {
		return en.EmployeeID == employeeID && en.Active && pos.Before(en.Pos())
	}), nil
}

// LastBefore implements ledger.EntryRepository.
func (r *ledgerEntryRepositoryImpl) LastBefore(ctx context.Context, employeeID string, pos ledger.Position) (ledger.Entry, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	candidates := r.collect(func(en ledger.Entry) bool {
		return en.EmployeeID == employeeID && en.Active && en.Pos().Before(pos)
	})
	if len(candidates) == 0 {
		return ledger.Entry{}, false, nil
	}
	return candidates[len(candidates)-1], true, nil
}

// LastAsOf implements ledger.EntryRepository.
func (r *ledgerEntryRepositoryImpl) LastAsOf(ctx context.Context, employeeID string, date time.Time) (ledger.Entry, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	candidates := r.collect(func(en ledger.Entry) bool {
		return en.EmployeeID == employeeID && en.Active && !en.EventDate.After(date)
	})
	if len(candidates) == 0 {
		return ledger.Entry{}, false, nil
	}
	return candidates[len(candidates)-1], true, nil
}

// ListDiscreteInRange implements ledger.EntryRepository.
func (r *ledgerEntryRepositoryImpl) ListDiscreteInRange(ctx context.Context, employeeID string, start, end time.Time) ([]ledger.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(en ledger.Entry) bool {
		return en.EmployeeID == employeeID && en.Active &&
			!en.IsMonthlySummary && en.ApprovedLeaves > 0 &&
			!en.EventDate.Before(start) && !en.EventDate.After(end)
	}), nil
}

// HasMonthlySummary implements ledger.EntryRepository.
func (r *ledgerEntryRepositoryImpl) HasMonthlySummary(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, en := range r.entries {
		if en.EmployeeID == employeeID && en.Active && en.IsMonthlySummary &&
			!en.EventDate.Before(start) && !en.EventDate.After(end) {
			return true, nil
		}
	}
	return false, nil
}

// Update implements ledger.EntryRepository.
func (r *ledgerEntryRepositoryImpl) Update(ctx context.Context, entry ledger.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.entries[entry.ID]
	if !ok {
		return ledger.ErrEntryNotFound
	}
	if err := r.checkUnique(entry, entry.ID); err != nil {
		return err
	}

	entry.Seq = stored.Seq
	entry.CreatedAt = stored.CreatedAt
	entry.UpdatedAt = time.Now()
	r.entries[entry.ID] = entry
	return nil
}

// PersistComputed implements ledger.EntryRepository. The whole batch is
// applied atomically: a missing entry fails the batch before any write.
func (r *ledgerEntryRepositoryImpl) PersistComputed(ctx context.Context, entries []ledger.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, en := range entries {
		if _, ok := r.entries[en.ID]; !ok {
			return ledger.ErrEntryNotFound
		}
	}

	now := time.Now()
	for _, en := range entries {
		stored := r.entries[en.ID]
		stored.OpeningLeaves = en.OpeningLeaves
		stored.AllowedLeaves = en.AllowedLeaves
		stored.ApprovedLeaves = en.ApprovedLeaves
		stored.AbsentDays = en.AbsentDays
		stored.ClosingLeaves = en.ClosingLeaves
		stored.RemainingLeaves = en.RemainingLeaves
		stored.UpdatedAt = now
		r.entries[en.ID] = stored
	}
	return nil
}

// Delete implements ledger.EntryRepository.
func (r *ledgerEntryRepositoryImpl) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return ledger.ErrEntryNotFound
	}
	delete(r.entries, id)
	return nil
}

// DeleteByAllowanceRef implements ledger.EntryRepository.
func (r *ledgerEntryRepositoryImpl) DeleteByAllowanceRef(ctx context.Context, allowanceID string) ([]ledger.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed []ledger.Entry
	for id, en := range r.entries {
		if en.AllowanceRefID != nil && *en.AllowanceRefID == allowanceID {
			removed = append(removed, en)
			delete(r.entries, id)
		}
	}
	sortEntries(removed)
	return removed, nil
}

// checkUnique enforces the uniqueness invariants, ignoring the entry with
// selfID (for updates). Inactive rows still occupy their slots, matching
// the postgres unique indexes.
func (r *ledgerEntryRepositoryImpl) checkUnique(entry ledger.Entry, selfID string) error {
	for id, en := range r.entries {
		if id == selfID {
			continue
		}
		if en.EmployeeID == entry.EmployeeID &&
			en.EventDate.Equal(entry.EventDate) &&
			en.IsMonthlySummary == entry.IsMonthlySummary {
			return ledger.ErrDuplicateEntry
		}
		if entry.AdjustmentRefID != nil && en.AdjustmentRefID != nil &&
			*en.AdjustmentRefID == *entry.AdjustmentRefID {
			return ledger.ErrDuplicateAdjustmentRef
		}
		if entry.AllowanceRefID != nil && en.AllowanceRefID != nil &&
			*en.AllowanceRefID == *entry.AllowanceRefID {
			return ledger.ErrDuplicateAllowanceRef
		}
	}
	return nil
}

func (r *ledgerEntryRepositoryImpl) collect(keep func(ledger.Entry) bool) []ledger.Entry {
	result := make([]ledger.Entry, 0)
	for _, en := range r.entries {
		if keep(en) {
			result = append(result, en)
		}
	}
	sortEntries(result)
	return result
}

func sortEntries(entries []ledger.Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Pos().Before(entries[j].Pos())
	})
}
