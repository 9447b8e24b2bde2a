package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/ledger"
	"github.com/cmlabs-hris/leave-ledger-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const ledgerEntryColumns = `
	id, employee_id, event_date, seq, is_monthly_summary,
	opening_leaves, leave_adjustment, approved_leaves, absent_days,
	allowed_leaves, closing_leaves, remaining_leaves,
	adjustment_ref_id, allowance_ref_id, active, created_at, updated_at
`

type ledgerEntryRepository struct {
	db *database.DB
}

// Create implements ledger.EntryRepository.
func (r *ledgerEntryRepository) Create(ctx context.Context, entry ledger.Entry) (ledger.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_ledger_entries (
			employee_id, event_date, is_monthly_summary,
			opening_leaves, leave_adjustment, approved_leaves, absent_days,
			allowed_leaves, closing_leaves, remaining_leaves,
			adjustment_ref_id, allowance_ref_id, active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		) RETURNING id, seq, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		entry.EmployeeID,
		entry.EventDate,
		entry.IsMonthlySummary,
		entry.OpeningLeaves,
		entry.LeaveAdjustment,
		entry.ApprovedLeaves,
		entry.AbsentDays,
		entry.AllowedLeaves,
		entry.ClosingLeaves,
		entry.RemainingLeaves,
		entry.AdjustmentRefID,
		entry.AllowanceRefID,
		entry.Active,
	).Scan(&entry.ID, &entry.Seq, &entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return ledger.Entry{}, mapped
		}
		return ledger.Entry{}, fmt.Errorf("failed to create ledger entry: %w", err)
	}

	return entry, nil
}

// GetByID implements ledger.EntryRepository.
func (r *ledgerEntryRepository) GetByID(ctx context.Context, id string) (ledger.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + ledgerEntryColumns + ` FROM leave_ledger_entries WHERE id = $1`

	entry, err := scanLedgerEntry(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return ledger.Entry{}, ledger.ErrEntryNotFound
		}
		return ledger.Entry{}, fmt.Errorf("failed to get ledger entry: %w", err)
	}

	return entry, nil
}

// ListByEmployee implements ledger.EntryRepository.
func (r *ledgerEntryRepository) ListByEmployee(ctx context.Context, employeeID string) ([]ledger.Entry, error) {
	query := `
		SELECT ` + ledgerEntryColumns + `
		FROM leave_ledger_entries
		WHERE employee_id = $1
		  AND active
		ORDER BY event_date, seq
	`
	return r.queryEntries(ctx, query, employeeID)
}

// ListAfter implements ledger.EntryRepository.
func (r *ledgerEntryRepository) ListAfter(ctx context.Context, employeeID string, pos ledger.Position) ([]ledger.Entry, error) {
	query := `
		SELECT ` + ledgerEntryColumns + `
		FROM leave_ledger_entries
		WHERE employee_id = $1
		  AND active
		  AND (event_date > $2 OR (event_date = $2 AND seq > $3))
		ORDER BY event_date, seq
	`
	return r.queryEntries(ctx, query, employeeID, pos.EventDate, pos.Seq)
}

// LastBefore implements ledger.EntryRepository.
func (r *ledgerEntryRepository) LastBefore(ctx context.Context, employeeID string, pos ledger.Position) (ledger.Entry, bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + ledgerEntryColumns + `
		FROM leave_ledger_entries
		WHERE employee_id = $1
		  AND active
		  AND (event_date < $2 OR (event_date = $2 AND seq < $3))
		ORDER BY event_date DESC, seq DESC
		LIMIT 1
	`

	entry, err := scanLedgerEntry(q.QueryRow(ctx, query, employeeID, pos.EventDate, pos.Seq))
	if err != nil {
		if err == pgx.ErrNoRows {
			return ledger.Entry{}, false, nil
		}
		return ledger.Entry{}, false, fmt.Errorf("failed to get preceding ledger entry: %w", err)
	}

	return entry, true, nil
}

// LastAsOf implements ledger.EntryRepository.
func (r *ledgerEntryRepository) LastAsOf(ctx context.Context, employeeID string, date time.Time) (ledger.Entry, bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + ledgerEntryColumns + `
		FROM leave_ledger_entries
		WHERE employee_id = $1
		  AND active
		  AND event_date <= $2
		ORDER BY event_date DESC, seq DESC
		LIMIT 1
	`

	entry, err := scanLedgerEntry(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return ledger.Entry{}, false, nil
		}
		return ledger.Entry{}, false, fmt.Errorf("failed to get ledger entry as of date: %w", err)
	}

	return entry, true, nil
}

// ListDiscreteInRange implements ledger.EntryRepository.
func (r *ledgerEntryRepository) ListDiscreteInRange(ctx context.Context, employeeID string, start, end time.Time) ([]ledger.Entry, error) {
	query := `
		SELECT ` + ledgerEntryColumns + `
		FROM leave_ledger_entries
		WHERE employee_id = $1
		  AND active
		  AND NOT is_monthly_summary
		  AND approved_leaves > 0
		  AND event_date BETWEEN $2 AND $3
		ORDER BY event_date, seq
	`
	return r.queryEntries(ctx, query, employeeID, start, end)
}

// HasMonthlySummary implements ledger.EntryRepository.
func (r *ledgerEntryRepository) HasMonthlySummary(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_ledger_entries
			WHERE employee_id = $1
			  AND active
			  AND is_monthly_summary
			  AND event_date BETWEEN $2 AND $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check monthly summary: %w", err)
	}
	return exists, nil
}

// Update implements ledger.EntryRepository.
func (r *ledgerEntryRepository) Update(ctx context.Context, entry ledger.Entry) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_ledger_entries
		SET event_date = $2,
			is_monthly_summary = $3,
			opening_leaves = $4,
			leave_adjustment = $5,
			approved_leaves = $6,
			absent_days = $7,
			allowed_leaves = $8,
			closing_leaves = $9,
			remaining_leaves = $10,
			adjustment_ref_id = $11,
			allowance_ref_id = $12,
			active = $13,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		entry.ID,
		entry.EventDate,
		entry.IsMonthlySummary,
		entry.OpeningLeaves,
		entry.LeaveAdjustment,
		entry.ApprovedLeaves,
		entry.AbsentDays,
		entry.AllowedLeaves,
		entry.ClosingLeaves,
		entry.RemainingLeaves,
		entry.AdjustmentRefID,
		entry.AllowanceRefID,
		entry.Active,
	)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to update ledger entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ledger.ErrEntryNotFound
	}

	return nil
}

// PersistComputed implements ledger.EntryRepository. The batch is written
// inside one transaction so a crash mid-batch leaves the previous commit
// boundary intact.
func (r *ledgerEntryRepository) PersistComputed(ctx context.Context, entries []ledger.Entry) error {
	query := `
		UPDATE leave_ledger_entries
		SET opening_leaves = $2,
			allowed_leaves = $3,
			approved_leaves = $4,
			absent_days = $5,
			closing_leaves = $6,
			remaining_leaves = $7,
			updated_at = NOW()
		WHERE id = $1
	`

	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		for _, entry := range entries {
			tag, err := tx.Exec(ctx, query,
				entry.ID,
				entry.OpeningLeaves,
				entry.AllowedLeaves,
				entry.ApprovedLeaves,
				entry.AbsentDays,
				entry.ClosingLeaves,
				entry.RemainingLeaves,
			)
			if err != nil {
				return fmt.Errorf("failed to persist computed entry %s: %w", entry.ID, err)
			}
			if tag.RowsAffected() == 0 {
				return ledger.ErrEntryNotFound
			}
		}
		return nil
	})
}

// Delete implements ledger.EntryRepository.
func (r *ledgerEntryRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leave_ledger_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete ledger entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ledger.ErrEntryNotFound
	}

	return nil
}

// DeleteByAllowanceRef implements ledger.EntryRepository.
func (r *ledgerEntryRepository) DeleteByAllowanceRef(ctx context.Context, allowanceID string) ([]ledger.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM leave_ledger_entries
		WHERE allowance_ref_id = $1
		RETURNING ` + ledgerEntryColumns

	rows, err := q.Query(ctx, query, allowanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete allowance ledger entries: %w", err)
	}
	defer rows.Close()

	return collectLedgerEntries(rows)
}

func (r *ledgerEntryRepository) queryEntries(ctx context.Context, query string, args ...any) ([]ledger.Entry, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	defer rows.Close()

	return collectLedgerEntries(rows)
}

func scanLedgerEntry(row pgx.Row) (ledger.Entry, error) {
	var entry ledger.Entry
	err := row.Scan(
		&entry.ID, &entry.EmployeeID, &entry.EventDate, &entry.Seq, &entry.IsMonthlySummary,
		&entry.OpeningLeaves, &entry.LeaveAdjustment, &entry.ApprovedLeaves, &entry.AbsentDays,
		&entry.AllowedLeaves, &entry.ClosingLeaves, &entry.RemainingLeaves,
		&entry.AdjustmentRefID, &entry.AllowanceRefID, &entry.Active, &entry.CreatedAt, &entry.UpdatedAt,
	)
	return entry, err
}

func collectLedgerEntries(rows pgx.Rows) ([]ledger.Entry, error) {
	entries := make([]ledger.Entry, 0)
	for rows.Next() {
		entry, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ledger entries: %w", err)
	}
	return entries, nil
}

// mapUniqueViolation translates unique index violations into the domain
// sentinels the services branch on. Returns nil for anything else.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" { // unique_violation
		return nil
	}
	switch pgErr.ConstraintName {
	case "unique_employee_event_date":
		return ledger.ErrDuplicateEntry
	case "unique_adjustment_ref":
		return ledger.ErrDuplicateAdjustmentRef
	case "unique_allowance_ref":
		return ledger.ErrDuplicateAllowanceRef
	default:
		return ledger.ErrDuplicateEntry
	}
}

func NewLedgerEntryRepository(db *database.DB) ledger.EntryRepository {
	return &ledgerEntryRepository{db: db}
}
