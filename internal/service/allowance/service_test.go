package allowance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/allowance"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/ledger"
	"github.com/cmlabs-hris/leave-ledger-go/internal/repository/memory"
	ledgerService "github.com/cmlabs-hris/leave-ledger-go/internal/service/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	allowanceRepo allowance.AllowanceRepository
	entryRepo     ledger.EntryRepository
	svc           allowance.Service
	ledgerSvc     ledger.Service
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
		allowanceRepo: allowanceRepo,
		entryRepo:     entryRepo,
		svc:           NewAllowanceService(allowanceRepo, entryRepo, ledgerSvc),
		ledgerSvc:     ledgerSvc,
	}
}

func createRequest(allowed float64) allowance.CreateAllowanceRequest {
	return allowance.CreateAllowanceRequest{
		EmployeeID:    "emp-1",
		TimeOffType:   allowance.TimeOffAnnualPerm,
		FromDate:      time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		AllowedLeaves: allowed,
	}
}

func TestApproveAllowanceRecordsEntryWithNewTotal(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	a, err := env.svc.Create(ctx, createRequest(12))
	require.NoError(t, err)
	assert.Equal(t, allowance.StateDraft, a.State)

	require.NoError(t, env.svc.Approve(ctx, a.ID))

	entries, err := env.entryRepo.ListByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	en := entries[0]
	require.NotNil(t, en.AllowanceRefID)
	assert.Equal(t, a.ID, *en.AllowanceRefID)
	// The state flips before the entry is computed, so the new total is
	// already visible.
	assert.Equal(t, 12.0, en.AllowedLeaves)
	assert.Equal(t, 0.0, en.ClosingLeaves)
	assert.Equal(t, 12.0, en.RemainingLeaves)
}

func TestApproveAllowanceTwiceRejected(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	a, err := env.svc.Create(ctx, createRequest(12))
	require.NoError(t, err)
	require.NoError(t, env.svc.Approve(ctx, a.ID))

	err = env.svc.Approve(ctx, a.ID)
	assert.True(t, errors.Is(err, allowance.ErrAllowanceAlreadyProcessed))
}

func TestApprovedAllowanceRetroactivelyRaisesRemaining(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	// A pre-existing entry computed with no allowance.
	_, err := env.ledgerSvc.CreateEntry(ctx, ledger.CreateEntryRequest{
		EmployeeID:      "emp-1",
		EventDate:       time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC),
		LeaveAdjustment: 2,
	})
	require.NoError(t, err)

	a, err := env.svc.Create(ctx, createRequest(12))
	require.NoError(t, err)
	require.NoError(t, env.svc.Approve(ctx, a.ID))

	// The allowance entry lands before the existing one and cascades, so
	// the old entry's allowed leaves are restated.
	entries, err := env.entryRepo.ListByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 12.0, entries[1].AllowedLeaves)
	assert.Equal(t, 10.0, entries[1].RemainingLeaves)
}

func TestResetToDraftRemovesEntryAndRecomputes(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	a, err := env.svc.Create(ctx, createRequest(12))
	require.NoError(t, err)
	require.NoError(t, env.svc.Approve(ctx, a.ID))

	_, err = env.ledgerSvc.CreateEntry(ctx, ledger.CreateEntryRequest{
		EmployeeID:     "emp-1",
		EventDate:      time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC),
		ApprovedLeaves: 3,
	})
	require.NoError(t, err)

	require.NoError(t, env.svc.ResetToDraft(ctx, a.ID))

	stored, err := env.allowanceRepo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, allowance.StateDraft, stored.State)

	entries, err := env.entryRepo.ListByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	// With the allowance back in draft the remaining chain re-derives
	// against a zero entitlement.
	assert.Equal(t, 0.0, entries[0].AllowedLeaves)
	assert.Equal(t, 3.0, entries[0].ClosingLeaves)
	assert.Equal(t, -3.0, entries[0].RemainingLeaves)
}

func TestResetToDraftWithoutEntryIsNoop(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	a, err := env.svc.Create(ctx, createRequest(12))
	require.NoError(t, err)

	require.NoError(t, env.svc.ResetToDraft(ctx, a.ID))

	entries, err := env.entryRepo.ListByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
