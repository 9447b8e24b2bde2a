package ledger

import (
	"context"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/attendance"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/ledger"
)

// AttributionResolver decides which calendar days a monthly summary may
// count, so a working day never contributes to both a discrete event entry
// and the month's aggregate.
type AttributionResolver struct {
	entryRepo   ledger.EntryRepository
	leaveRepo   leave.RequestRepository
	checkInRepo attendance.CheckInRepository
	calendar    *CalendarService
}

func NewAttributionResolver(
	entryRepo ledger.EntryRepository,
	leaveRepo leave.RequestRepository,
	checkInRepo attendance.CheckInRepository,
	calendar *CalendarService,
) *AttributionResolver {
	return &AttributionResolver{
		entryRepo:   entryRepo,
		leaveRepo:   leaveRepo,
		checkInRepo: checkInRepo,
		calendar:    calendar,
	}
}

// ApprovedLeaveDays computes a monthly summary's approved_leaves for the
// month containing monthDate.
//
// Discrete event entries in the month claim their working days first: each
// is expanded forward from its event date, consuming its approved_leaves
// count of working days and stopping at month end. Approved leave intervals
// then contribute only working days not already claimed.
func (r *AttributionResolver) ApprovedLeaveDays(ctx context.Context, employeeID string, monthDate time.Time) (float64, error) {
	monthStart, monthEnd := MonthBounds(monthDate)

	workdays, err := r.calendar.WorkingDaySet(ctx, monthStart, monthEnd)
	if err != nil {
		return 0, err
	}

	claimed, err := r.claimedDates(ctx, employeeID, monthStart, monthEnd, workdays)
	if err != nil {
		return 0, err
	}

	leaves, err := r.leaveRepo.ListApprovedOverlapping(ctx, employeeID, monthStart, monthEnd)
	if err != nil {
		return 0, err
	}

	total := 0.0
	for _, lv := range leaves {
		start := maxDate(Day(lv.StartDate), monthStart)
		end := minDate(Day(lv.EndDate), monthEnd)
		for cur := start; !cur.After(end); cur = cur.AddDate(0, 0, 1) {
			if _, ok := workdays[cur]; !ok {
				continue
			}
			if _, ok := claimed[cur]; ok {
				continue
			}
			total++
		}
	}
	return total, nil
}

// claimedDates reconstructs the specific working dates already attributed to
// discrete entries within the month. An entry whose approved_leaves count
// outruns the month's remaining working days simply stops at month end.
func (r *AttributionResolver) claimedDates(ctx context.Context, employeeID string, monthStart, monthEnd time.Time, workdays map[time.Time]struct{}) (map[time.Time]struct{}, error) {
	events, err := r.entryRepo.ListDiscreteInRange(ctx, employeeID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	claimed := make(map[time.Time]struct{})
	for _, ev := range events {
		remaining := int(ev.ApprovedLeaves)
		for cur := Day(ev.EventDate); remaining > 0 && !cur.After(monthEnd); cur = cur.AddDate(0, 0, 1) {
			if _, ok := workdays[cur]; ok {
				claimed[cur] = struct{}{}
				remaining--
			}
		}
	}
	return claimed, nil
}

// AbsentDays counts the month's working days with neither a check-in nor an
// approved leave interval covering them.
func (r *AttributionResolver) AbsentDays(ctx context.Context, employeeID string, monthDate time.Time) (float64, error) {
	monthStart, monthEnd := MonthBounds(monthDate)

	workdays, err := r.calendar.WorkingDaySet(ctx, monthStart, monthEnd)
	if err != nil {
		return 0, err
	}

	leaves, err := r.leaveRepo.ListApprovedOverlapping(ctx, employeeID, monthStart, monthEnd)
	if err != nil {
		return 0, err
	}
	// Leave intervals excuse every day they cover, weekend or not.
	leaveDates := make(map[time.Time]struct{})
	for _, lv := range leaves {
		start := maxDate(Day(lv.StartDate), monthStart)
		end := minDate(Day(lv.EndDate), monthEnd)
		for cur := start; !cur.After(end); cur = cur.AddDate(0, 0, 1) {
			leaveDates[cur] = struct{}{}
		}
	}

	attendedList, err := r.checkInRepo.ListDatesInRange(ctx, employeeID, monthStart, monthEnd)
	if err != nil {
		return 0, err
	}
	attended := make(map[time.Time]struct{}, len(attendedList))
	for _, d := range attendedList {
		attended[Day(d)] = struct{}{}
	}

	absent := 0.0
	for d := range workdays {
		if _, ok := attended[d]; ok {
			continue
		}
		if _, ok := leaveDates[d]; ok {
			continue
		}
		absent++
	}
	return absent, nil
}

func maxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
