package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/attendance"
	"github.com/google/uuid"
)

type checkInRepositoryImpl struct {
	mu       sync.RWMutex
	checkIns map[string]attendance.CheckIn
}

func NewCheckInRepository() attendance.CheckInRepository {
	return &checkInRepositoryImpl{checkIns: make(map[string]attendance.CheckIn)}
}

// Create implements attendance.CheckInRepository.
func (r *checkInRepositoryImpl) Create(ctx context.Context, c attendance.CheckIn) (attendance.CheckIn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c.ID = uuid.NewString()
	c.CreatedAt = time.Now()
	r.checkIns[c.ID] = c
	return c, nil
}

// ListDatesInRange implements attendance.CheckInRepository.
func (r *checkInRepositoryImpl) ListDatesInRange(ctx context.Context, employeeID string, start, end time.Time) ([]time.Time, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[time.Time]struct{})
	for _, c := range r.checkIns {
		if c.EmployeeID != employeeID {
			continue
		}
		day := time.Date(c.CheckIn.Year(), c.CheckIn.Month(), c.CheckIn.Day(), 0, 0, 0, 0, time.UTC)
		if day.Before(start) || day.After(end) {
			continue
		}
		seen[day] = struct{}{}
	}

	dates := make([]time.Time, 0, len(seen))
	for day := range seen {
		dates = append(dates, day)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}
