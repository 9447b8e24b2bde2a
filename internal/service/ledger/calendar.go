package ledger

import (
	"context"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/holiday"
)

// Day normalizes a timestamp to its calendar date at midnight UTC. Every
// date the ledger stores or compares goes through this.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthBounds returns the first and last day of the month containing t.
func MonthBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// CalendarService classifies working days: Monday through Friday, minus
// approved public holidays. It is pure with respect to the ledger.
type CalendarService struct {
	holidayRepo holiday.HolidayRepository
}

func NewCalendarService(holidayRepo holiday.HolidayRepository) *CalendarService {
	return &CalendarService{holidayRepo: holidayRepo}
}

// WorkingDays returns the ordered working dates within [start, end]. A start
// after end yields an empty set, not an error.
func (c *CalendarService) WorkingDays(ctx context.Context, start, end time.Time) ([]time.Time, error) {
	start, end = Day(start), Day(end)
	if start.After(end) {
		return []time.Time{}, nil
	}

	holidays, err := c.holidayRepo.ListApprovedInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	holidayDates := make(map[time.Time]struct{}, len(holidays))
	for _, h := range holidays {
		holidayDates[Day(h.Date)] = struct{}{}
	}

	var days []time.Time
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 0, 1) {
		if cur.Weekday() == time.Saturday || cur.Weekday() == time.Sunday {
			continue
		}
		if _, ok := holidayDates[cur]; ok {
			continue
		}
		days = append(days, cur)
	}
	return days, nil
}

// WorkingDaySet returns the same dates as WorkingDays keyed for membership
// tests.
func (c *CalendarService) WorkingDaySet(ctx context.Context, start, end time.Time) (map[time.Time]struct{}, error) {
	days, err := c.WorkingDays(ctx, start, end)
	if err != nil {
		return nil, err
	}
	set := make(map[time.Time]struct{}, len(days))
	for _, d := range days {
		set[d] = struct{}{}
	}
	return set, nil
}
