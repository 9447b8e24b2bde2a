package holiday

import (
	"context"
	"time"
)

// HolidayRepository - interface for public holiday storage
type HolidayRepository interface {
	Create(ctx context.Context, h PublicHoliday) (PublicHoliday, error)
	GetByID(ctx context.Context, id string) (PublicHoliday, error)
	List(ctx context.Context) ([]PublicHoliday, error)
	// ListApprovedInRange returns approved holidays with dates within
	// [start, end].
	ListApprovedInRange(ctx context.Context, start, end time.Time) ([]PublicHoliday, error)
	UpdateState(ctx context.Context, id string, state State) error
}
