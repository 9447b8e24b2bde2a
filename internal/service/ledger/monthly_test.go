package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMonthlyAggregationCreatesSummaryForAbsences(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 50)
	f.grantAllowance(t, testEmployeeID, 12)

	// No check-ins at all in June 2025: every one of its 21 working days is
	// absent.
	now := d(2025, time.July, 10)
	require.NoError(t, f.svc.RunMonthlyAggregation(ctx, now))

	entries := f.chain(t, testEmployeeID)
	require.Len(t, entries, 1)
	summary := entries[0]
	assert.True(t, summary.IsMonthlySummary)
	assert.Equal(t, d(2025, time.June, 30), summary.EventDate)
	assert.Equal(t, 21.0, summary.AbsentDays)
	assert.Equal(t, 0.0, summary.ApprovedLeaves)
	assert.Equal(t, 21.0, summary.ClosingLeaves)
	assert.Equal(t, -9.0, summary.RemainingLeaves)
}

func TestRunMonthlyAggregationIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 50)

	now := d(2025, time.July, 10)
	require.NoError(t, f.svc.RunMonthlyAggregation(ctx, now))
	require.NoError(t, f.svc.RunMonthlyAggregation(ctx, now))

	entries := f.chain(t, testEmployeeID)
	assert.Len(t, entries, 1)
}

func TestRunMonthlyAggregationSkipsFullAttendance(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 50)

	workdays, err := f.calendar.WorkingDays(ctx, d(2025, time.June, 1), d(2025, time.June, 30))
	require.NoError(t, err)
	for _, day := range workdays {
		f.checkIn(t, testEmployeeID, day)
	}

	require.NoError(t, f.svc.RunMonthlyAggregation(ctx, d(2025, time.July, 10)))

	entries := f.chain(t, testEmployeeID)
	assert.Empty(t, entries)
}

func TestRunMonthlyAggregationSkipsInactiveEmployees(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 50)

	_, err := f.employeeRepo.Create(ctx, employee.Employee{
		ID:       "emp-gone",
		FullName: "Former Employee",
		Active:   false,
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.RunMonthlyAggregation(ctx, d(2025, time.July, 10)))

	entries := f.chain(t, "emp-gone")
	assert.Empty(t, entries)
}

func TestMonthlySummaryAttributesLeavesAndAbsences(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 50)
	f.grantAllowance(t, testEmployeeID, 12)

	// June 2025: leave approved for Jun 3..4, check-ins on everything else.
	f.approvedLeave(t, testEmployeeID, d(2025, time.June, 3), d(2025, time.June, 4))
	workdays, err := f.calendar.WorkingDays(ctx, d(2025, time.June, 1), d(2025, time.June, 30))
	require.NoError(t, err)
	skip := map[time.Time]struct{}{
		d(2025, time.June, 3): {},
		d(2025, time.June, 4): {},
		d(2025, time.June, 5): {},
	}
	for _, day := range workdays {
		if _, ok := skip[day]; ok {
			continue
		}
		f.checkIn(t, testEmployeeID, day)
	}

	require.NoError(t, f.svc.RunMonthlyAggregation(ctx, d(2025, time.July, 10)))

	entries := f.chain(t, testEmployeeID)
	require.Len(t, entries, 1)
	summary := entries[0]
	assert.True(t, summary.IsMonthlySummary)
	// Jun 3 and 4 come from the leave interval, Jun 5 is the unexcused
	// absence.
	assert.Equal(t, 2.0, summary.ApprovedLeaves)
	assert.Equal(t, 1.0, summary.AbsentDays)
	assert.Equal(t, 3.0, summary.ClosingLeaves)
	assert.Equal(t, 9.0, summary.RemainingLeaves)
}
