package attendance

import (
	"context"
	"time"
)

// CheckInRepository - interface for attendance check-in storage
type CheckInRepository interface {
	Create(ctx context.Context, c CheckIn) (CheckIn, error)
	// ListDatesInRange returns the distinct check-in dates for the employee
	// within [start, end], normalized to midnight UTC.
	ListDatesInRange(ctx context.Context, employeeID string, start, end time.Time) ([]time.Time, error)
}
