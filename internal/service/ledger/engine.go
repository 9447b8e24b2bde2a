package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/ledger"
)

// Engine rederives ledger entries in chain order. It is the only writer of
// derived fields (opening, allowed, approved, absent, closing, remaining)
// and writes them through EntryRepository.PersistComputed, a path no
// cascade trigger observes, so a recompute can never re-trigger itself.
type Engine struct {
	entryRepo   ledger.EntryRepository
	allowance   *AllowanceResolver
	attribution *AttributionResolver
	batchSize   int
}

func NewEngine(
	entryRepo ledger.EntryRepository,
	allowance *AllowanceResolver,
	attribution *AttributionResolver,
	batchSize int,
) *Engine {
	if batchSize < 1 {
		batchSize = 50
	}
	return &Engine{
		entryRepo:   entryRepo,
		allowance:   allowance,
		attribution: attribution,
		batchSize:   batchSize,
	}
}

// RecomputeFrom rederives every active entry with an event date at or after
// from, in ascending chain order, committing batches of at most batchSize
// entries. It is idempotent: rerunning it with no intervening data change
// rewrites identical values.
//
// Callers must hold the employee's cascade lock.
func (e *Engine) RecomputeFrom(ctx context.Context, employeeID string, from time.Time) error {
	return e.RecomputeAfter(ctx, employeeID, ledger.Position{EventDate: Day(from), Seq: -1})
}

// RecomputeAfter rederives every active entry strictly after pos. The entry
// at pos (when one exists) supplies the first opening balance.
func (e *Engine) RecomputeAfter(ctx context.Context, employeeID string, pos ledger.Position) error {
	entries, err := e.entryRepo.ListAfter(ctx, employeeID, pos)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	// Baseline: the nearest surviving entry at or before pos, zero when the
	// chain starts here.
	baselinePos := ledger.Position{EventDate: pos.EventDate, Seq: pos.Seq + 1}
	prev, ok, err := e.entryRepo.LastBefore(ctx, employeeID, baselinePos)
	if err != nil {
		return err
	}
	opening := 0.0
	if ok {
		opening = prev.ClosingLeaves
	}

	batch := make([]ledger.Entry, 0, e.batchSize)
	committed := 0
	for _, en := range entries {
		en, err = e.ComputeEntry(ctx, en, opening)
		if err != nil {
			return e.incomplete(employeeID, pos, committed, err)
		}
		opening = en.ClosingLeaves

		batch = append(batch, en)
		if len(batch) >= e.batchSize {
			// Commit boundary: bounds transaction size on long chains and
			// leaves a consistent prefix if the next batch fails.
			if err := e.entryRepo.PersistComputed(ctx, batch); err != nil {
				return e.incomplete(employeeID, pos, committed, err)
			}
			committed += len(batch)
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if err := e.entryRepo.PersistComputed(ctx, batch); err != nil {
			return e.incomplete(employeeID, pos, committed, err)
		}
		committed += len(batch)
	}

	slog.Debug("Ledger cascade recomputed",
		"employee_id", employeeID,
		"from", pos.EventDate.Format("2006-01-02"),
		"entries", committed)

	return e.VerifyChain(ctx, employeeID)
}

// ComputeEntry rederives one entry's fields given its opening balance.
// Authored fields (adjustment, and approved leaves on discrete entries) are
// left untouched; monthly summaries get approved/absent reattributed.
func (e *Engine) ComputeEntry(ctx context.Context, en ledger.Entry, opening float64) (ledger.Entry, error) {
	en.OpeningLeaves = opening

	allowed, err := e.allowance.TotalApproved(ctx, en.EmployeeID)
	if err != nil {
		return en, err
	}
	en.AllowedLeaves = allowed

	if en.IsMonthlySummary {
		approved, err := e.attribution.ApprovedLeaveDays(ctx, en.EmployeeID, en.EventDate)
		if err != nil {
			return en, err
		}
		absent, err := e.attribution.AbsentDays(ctx, en.EmployeeID, en.EventDate)
		if err != nil {
			return en, err
		}
		en.ApprovedLeaves = approved
		en.AbsentDays = absent
	}

	en.Derive()
	return en, nil
}

// VerifyChain checks the full chain invariants after a recompute: every
// opening balance equals the prior closing balance (zero for the first
// entry) and the derived totals match their inputs. A failure here is a
// bug, not an expected condition.
func (e *Engine) VerifyChain(ctx context.Context, employeeID string) error {
	entries, err := e.entryRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return err
	}

	prevClosing := 0.0
	for _, en := range entries {
		if en.OpeningLeaves != prevClosing {
			return fmt.Errorf("%w: employee %s entry %s opening %.2f != prior closing %.2f",
				ledger.ErrOrderingViolation, employeeID, en.ID, en.OpeningLeaves, prevClosing)
		}
		wantClosing := en.OpeningLeaves + en.LeaveAdjustment + en.ApprovedLeaves + en.AbsentDays
		if en.ClosingLeaves != wantClosing {
			return fmt.Errorf("%w: employee %s entry %s closing %.2f != derived %.2f",
				ledger.ErrOrderingViolation, employeeID, en.ID, en.ClosingLeaves, wantClosing)
		}
		if en.RemainingLeaves != en.AllowedLeaves-en.ClosingLeaves {
			return fmt.Errorf("%w: employee %s entry %s remaining %.2f != allowed-closing",
				ledger.ErrOrderingViolation, employeeID, en.ID, en.RemainingLeaves)
		}
		prevClosing = en.ClosingLeaves
	}
	return nil
}

// incomplete wraps a mid-cascade failure. The committed prefix stays
// consistent; the caller retries with RecomputeFrom, which is safe because
// recomputation is idempotent.
func (e *Engine) incomplete(employeeID string, pos ledger.Position, committed int, err error) error {
	slog.Error("Ledger cascade failed partway",
		"employee_id", employeeID,
		"from", pos.EventDate.Format("2006-01-02"),
		"committed", committed,
		"error", err)
	return fmt.Errorf("%w: employee %s from %s after %d entries: %v",
		ledger.ErrCascadeIncomplete, employeeID, pos.EventDate.Format("2006-01-02"), committed, err)
}
