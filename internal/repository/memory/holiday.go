package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/holiday"
	"github.com/google/uuid"
)

type holidayRepositoryImpl struct {
	mu       sync.RWMutex
	holidays map[string]holiday.PublicHoliday
}

func NewHolidayRepository() holiday.HolidayRepository {
	return &holidayRepositoryImpl{holidays: make(map[string]holiday.PublicHoliday)}
}

// Create implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, h holiday.PublicHoliday) (holiday.PublicHoliday, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	h.ID = uuid.NewString()
	h.CreatedAt = now
	h.UpdatedAt = now
	r.holidays[h.ID] = h
	return h, nil
}

// GetByID implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) GetByID(ctx context.Context, id string) (holiday.PublicHoliday, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.holidays[id]
	if !ok {
		return holiday.PublicHoliday{}, holiday.ErrHolidayNotFound
	}
	return h, nil
}

// List implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) List(ctx context.Context) ([]holiday.PublicHoliday, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]holiday.PublicHoliday, 0, len(r.holidays))
	for _, h := range r.holidays {
		result = append(result, h)
	}
	sortHolidays(result)
	return result, nil
}

// ListApprovedInRange implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) ListApprovedInRange(ctx context.Context, start, end time.Time) ([]holiday.PublicHoliday, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]holiday.PublicHoliday, 0)
	for _, h := range r.holidays {
		if h.State == holiday.StateApproved && !h.Date.Before(start) && !h.Date.After(end) {
			result = append(result, h)
		}
	}
	sortHolidays(result)
	return result, nil
}

// UpdateState implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) UpdateState(ctx context.Context, id string, state holiday.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.holidays[id]
	if !ok {
		return holiday.ErrHolidayNotFound
	}
	h.State = state
	h.UpdatedAt = time.Now()
	r.holidays[id] = h
	return nil
}

func sortHolidays(holidays []holiday.PublicHoliday) {
	sort.Slice(holidays, func(i, j int) bool {
		return holidays[i].Date.Before(holidays[j].Date)
	})
}
