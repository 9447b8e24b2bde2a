package leave

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/holiday"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/ledger"
	"github.com/cmlabs-hris/leave-ledger-go/internal/repository/memory"
	ledgerService "github.com/cmlabs-hris/leave-ledger-go/internal/service/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	leaveRepo   leave.RequestRepository
	entryRepo   ledger.EntryRepository
	holidayRepo holiday.HolidayRepository
	svc         leave.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	entryRepo := memory.NewLedgerEntryRepository()
	allowanceRepo := memory.NewAllowanceRepository()
	leaveRepo := memory.NewLeaveRequestRepository()
	checkInRepo := memory.NewCheckInRepository()
	holidayRepo := memory.NewHolidayRepository()
	employeeRepo := memory.NewEmployeeRepository()

	calendar := ledgerService.NewCalendarService(holidayRepo)
	attribution := ledgerService.NewAttributionResolver(entryRepo, leaveRepo, checkInRepo, calendar)
	engine := ledgerService.NewEngine(entryRepo, ledgerService.NewAllowanceResolver(allowanceRepo), attribution, 50)
	ledgerSvc := ledgerService.NewLedgerService(entryRepo, employeeRepo, engine, attribution)

	return &testEnv{
		leaveRepo:   leaveRepo,
		entryRepo:   entryRepo,
		holidayRepo: holidayRepo,
		svc:         NewLeaveService(leaveRepo, ledgerSvc, calendar),
	}
}

func d(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestApproveLeaveRecordsDiscreteEntry(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	// Tue Jun 3 through Sun Jun 8 2025: four working days.
	req, err := env.svc.Create(ctx, leave.CreateRequestRequest{
		EmployeeID: "emp-1",
		StartDate:  d(2025, time.June, 3),
		EndDate:    d(2025, time.June, 8),
		Reason:     "family event",
	})
	require.NoError(t, err)
	assert.Equal(t, leave.StatusWaitingApproval, req.Status)

	require.NoError(t, env.svc.Approve(ctx, req.ID, "manager-1", d(2025, time.June, 2)))

	stored, err := env.leaveRepo.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, stored.Status)
	require.NotNil(t, stored.ApprovedBy)
	assert.Equal(t, "manager-1", *stored.ApprovedBy)

	entries, err := env.entryRepo.ListByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, d(2025, time.June, 3), entries[0].EventDate)
	assert.Equal(t, 4.0, entries[0].ApprovedLeaves)
	assert.False(t, entries[0].IsMonthlySummary)
}

func TestApproveLeaveExcludesHolidays(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.holidayRepo.Create(ctx, holiday.PublicHoliday{
		Name: "Founders Day", Date: d(2025, time.June, 4), State: holiday.StateApproved,
	})
	require.NoError(t, err)

	req, err := env.svc.Create(ctx, leave.CreateRequestRequest{
		EmployeeID: "emp-1",
		StartDate:  d(2025, time.June, 3),
		EndDate:    d(2025, time.June, 6),
		Reason:     "trip",
	})
	require.NoError(t, err)
	require.NoError(t, env.svc.Approve(ctx, req.ID, "manager-1", d(2025, time.June, 2)))

	entries, err := env.entryRepo.ListByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 3.0, entries[0].ApprovedLeaves)
}

func TestApproveLeaveTwiceRejected(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	req, err := env.svc.Create(ctx, leave.CreateRequestRequest{
		EmployeeID: "emp-1",
		StartDate:  d(2025, time.June, 3),
		EndDate:    d(2025, time.June, 4),
		Reason:     "trip",
	})
	require.NoError(t, err)
	require.NoError(t, env.svc.Approve(ctx, req.ID, "manager-1", d(2025, time.June, 2)))

	err = env.svc.Approve(ctx, req.ID, "manager-1", d(2025, time.June, 2))
	assert.True(t, errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed))
}

func TestApproveWeekendOnlyLeaveWritesNoEntry(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	// Sat Jun 7 and Sun Jun 8 2025.
	req, err := env.svc.Create(ctx, leave.CreateRequestRequest{
		EmployeeID: "emp-1",
		StartDate:  d(2025, time.June, 7),
		EndDate:    d(2025, time.June, 8),
		Reason:     "weekend",
	})
	require.NoError(t, err)
	require.NoError(t, env.svc.Approve(ctx, req.ID, "manager-1", d(2025, time.June, 6)))

	stored, err := env.leaveRepo.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, stored.Status)

	entries, err := env.entryRepo.ListByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestApproveStaleLeaveSkipsLedger(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	// The interval ended more than three months before the approval; its
	// month has long been summarized, so no entry is written.
	req, err := env.svc.Create(ctx, leave.CreateRequestRequest{
		EmployeeID: "emp-1",
		StartDate:  d(2025, time.January, 6),
		EndDate:    d(2025, time.January, 10),
		Reason:     "late paperwork",
	})
	require.NoError(t, err)
	require.NoError(t, env.svc.Approve(ctx, req.ID, "manager-1", d(2025, time.July, 10)))

	stored, err := env.leaveRepo.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, stored.Status)

	entries, err := env.entryRepo.ListByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
