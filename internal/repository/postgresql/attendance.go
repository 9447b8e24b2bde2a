package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/attendance"
	"github.com/cmlabs-hris/leave-ledger-go/internal/pkg/database"
)

type checkInRepository struct {
	db *database.DB
}

// Create implements attendance.CheckInRepository.
func (r *checkInRepository) Create(ctx context.Context, c attendance.CheckIn) (attendance.CheckIn, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_check_ins (
			employee_id, check_in
		) VALUES (
			$1, $2
		) RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, c.EmployeeID, c.CheckIn).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return attendance.CheckIn{}, fmt.Errorf("failed to create check-in: %w", err)
	}

	return c, nil
}

// ListDatesInRange implements attendance.CheckInRepository. Dates come back
// truncated to the day so the attribution resolver can use them as set keys.
func (r *checkInRepository) ListDatesInRange(ctx context.Context, employeeID string, start, end time.Time) ([]time.Time, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT date_trunc('day', check_in AT TIME ZONE 'UTC')
		FROM attendance_check_ins
		WHERE employee_id = $1
		  AND check_in >= $2
		  AND check_in < $3 + INTERVAL '1 day'
		ORDER BY 1
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list check-in dates: %w", err)
	}
	defer rows.Close()

	dates := make([]time.Time, 0)
	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("failed to scan check-in date: %w", err)
		}
		dates = append(dates, time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read check-in dates: %w", err)
	}

	return dates, nil
}

func NewCheckInRepository(db *database.DB) attendance.CheckInRepository {
	return &checkInRepository{db: db}
}
