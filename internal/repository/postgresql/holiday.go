package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/holiday"
	"github.com/cmlabs-hris/leave-ledger-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type holidayRepository struct {
	db *database.DB
}

// Create implements holiday.HolidayRepository.
func (r *holidayRepository) Create(ctx context.Context, h holiday.PublicHoliday) (holiday.PublicHoliday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO public_holidays (
			name, date, state
		) VALUES (
			$1, $2, $3
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, h.Name, h.Date, h.State).Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return holiday.PublicHoliday{}, fmt.Errorf("failed to create public holiday: %w", err)
	}

	return h, nil
}

// GetByID implements holiday.HolidayRepository.
func (r *holidayRepository) GetByID(ctx context.Context, id string) (holiday.PublicHoliday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, date, state, created_at, updated_at
		FROM public_holidays
		WHERE id = $1
	`

	var h holiday.PublicHoliday
	err := q.QueryRow(ctx, query, id).Scan(&h.ID, &h.Name, &h.Date, &h.State, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return holiday.PublicHoliday{}, holiday.ErrHolidayNotFound
		}
		return holiday.PublicHoliday{}, fmt.Errorf("failed to get public holiday: %w", err)
	}

	return h, nil
}

// List implements holiday.HolidayRepository.
func (r *holidayRepository) List(ctx context.Context) ([]holiday.PublicHoliday, error) {
	query := `
		SELECT id, name, date, state, created_at, updated_at
		FROM public_holidays
		ORDER BY date
	`
	return r.queryHolidays(ctx, query)
}

// ListApprovedInRange implements holiday.HolidayRepository.
func (r *holidayRepository) ListApprovedInRange(ctx context.Context, start, end time.Time) ([]holiday.PublicHoliday, error) {
	query := `
		SELECT id, name, date, state, created_at, updated_at
		FROM public_holidays
		WHERE state = 'approved'
		  AND date BETWEEN $1 AND $2
		ORDER BY date
	`
	return r.queryHolidays(ctx, query, start, end)
}

// UpdateState implements holiday.HolidayRepository.
func (r *holidayRepository) UpdateState(ctx context.Context, id string, state holiday.State) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE public_holidays
		SET state = $2,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, state)
	if err != nil {
		return fmt.Errorf("failed to update public holiday state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}

	return nil
}

func (r *holidayRepository) queryHolidays(ctx context.Context, query string, args ...any) ([]holiday.PublicHoliday, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list public holidays: %w", err)
	}
	defer rows.Close()

	holidays := make([]holiday.PublicHoliday, 0)
	for rows.Next() {
		var h holiday.PublicHoliday
		if err := rows.Scan(&h.ID, &h.Name, &h.Date, &h.State, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan public holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read public holidays: %w", err)
	}

	return holidays, nil
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepository{db: db}
}
