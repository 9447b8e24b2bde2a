package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/holiday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayNormalizesToMidnightUTC(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	ts := time.Date(2025, time.June, 3, 15, 42, 9, 120, loc)
	assert.Equal(t, d(2025, time.June, 3), Day(ts))
}

func TestMonthBounds(t *testing.T) {
	start, end := MonthBounds(d(2025, time.February, 14))
	assert.Equal(t, d(2025, time.February, 1), start)
	assert.Equal(t, d(2025, time.February, 28), end)

	start, end = MonthBounds(d(2024, time.February, 1))
	assert.Equal(t, d(2024, time.February, 1), start)
	assert.Equal(t, d(2024, time.February, 29), end)
}

func TestWorkingDaysExcludesWeekendsAndApprovedHolidays(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 50)

	// June 2 2025 is a Monday. June 4 becomes an approved holiday, June 5
	// only a draft one.
	_, err := f.holidayRepo.Create(ctx, holiday.PublicHoliday{
		Name: "Founders Day", Date: d(2025, time.June, 4), State: holiday.StateApproved,
	})
	require.NoError(t, err)
	_, err = f.holidayRepo.Create(ctx, holiday.PublicHoliday{
		Name: "Pending Day", Date: d(2025, time.June, 5), State: holiday.StateDraft,
	})
	require.NoError(t, err)

	days, err := f.calendar.WorkingDays(ctx, d(2025, time.June, 2), d(2025, time.June, 8))
	require.NoError(t, err)

	assert.Equal(t, []time.Time{
		d(2025, time.June, 2),
		d(2025, time.June, 3),
		d(2025, time.June, 5),
		d(2025, time.June, 6),
	}, days)
}

func TestWorkingDaysEmptyWhenStartAfterEnd(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 50)

	days, err := f.calendar.WorkingDays(ctx, d(2025, time.June, 10), d(2025, time.June, 2))
	require.NoError(t, err)
	assert.Empty(t, days)
}
