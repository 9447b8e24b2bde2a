package adjustment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/ledger"
	"github.com/cmlabs-hris/leave-ledger-go/internal/repository/memory"
	ledgerService "github.com/cmlabs-hris/leave-ledger-go/internal/service/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	adjustmentRepo adjustment.AdjustmentRepository
	entryRepo      ledger.EntryRepository
	svc            adjustment.Service
	ledgerSvc      ledger.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	entryRepo := memory.NewLedgerEntryRepository()
	adjustmentRepo := memory.NewAdjustmentRepository()
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
		adjustmentRepo: adjustmentRepo,
		entryRepo:      entryRepo,
		svc:            NewAdjustmentService(adjustmentRepo, ledgerSvc),
		ledgerSvc:      ledgerSvc,
	}
}

func createRequest(typ adjustment.Type, amount float64) adjustment.CreateAdjustmentRequest {
	return adjustment.CreateAdjustmentRequest{
		EmployeeID:     "emp-1",
		Type:           typ,
		Amount:         amount,
		Reason:         "manual correction",
		AdjustmentDate: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestAdjustmentApprovalWritesLedgerEntry(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	adj, err := env.svc.Create(ctx, createRequest(adjustment.TypePositive, 2.5))
	require.NoError(t, err)
	assert.Equal(t, adjustment.StateDraft, adj.State)

	require.NoError(t, env.svc.Submit(ctx, adj.ID))
	require.NoError(t, env.svc.Approve(ctx, adj.ID))

	stored, err := env.adjustmentRepo.GetByID(ctx, adj.ID)
	require.NoError(t, err)
	assert.Equal(t, adjustment.StateApproved, stored.State)

	entries, err := env.entryRepo.ListByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 2.5, entries[0].LeaveAdjustment)
	assert.Equal(t, 2.5, entries[0].ClosingLeaves)
	require.NotNil(t, entries[0].AdjustmentRefID)
	assert.Equal(t, adj.ID, *entries[0].AdjustmentRefID)
}

func TestNegativeAdjustmentCarriesNegativeDelta(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	adj, err := env.svc.Create(ctx, createRequest(adjustment.TypeNegative, 2))
	require.NoError(t, err)
	require.NoError(t, env.svc.Submit(ctx, adj.ID))
	require.NoError(t, env.svc.Approve(ctx, adj.ID))

	entries, err := env.entryRepo.ListByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, -2.0, entries[0].LeaveAdjustment)
	assert.Equal(t, -2.0, entries[0].ClosingLeaves)
}

func TestApproveRequiresSubmittedState(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	adj, err := env.svc.Create(ctx, createRequest(adjustment.TypePositive, 1))
	require.NoError(t, err)

	err = env.svc.Approve(ctx, adj.ID)
	assert.True(t, errors.Is(err, adjustment.ErrAdjustmentAlreadyProcessed))
}

func TestRejectedAdjustmentWritesNoEntry(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	adj, err := env.svc.Create(ctx, createRequest(adjustment.TypePositive, 1))
	require.NoError(t, err)
	require.NoError(t, env.svc.Submit(ctx, adj.ID))

	err = env.svc.Reject(ctx, adjustment.RejectAdjustmentRequest{ID: adj.ID, Reason: "not justified"})
	require.NoError(t, err)

	stored, err := env.adjustmentRepo.GetByID(ctx, adj.ID)
	require.NoError(t, err)
	assert.Equal(t, adjustment.StateRejected, stored.State)
	require.NotNil(t, stored.RejectionReason)

	entries, err := env.entryRepo.ListByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAdjustmentCannotProduceTwoEntries(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	adj, err := env.svc.Create(ctx, createRequest(adjustment.TypePositive, 1))
	require.NoError(t, err)
	require.NoError(t, env.svc.Submit(ctx, adj.ID))
	require.NoError(t, env.svc.Approve(ctx, adj.ID))

	// Even if the state machine is bypassed, the ref uniqueness invariant
	// blocks a second entry.
	require.NoError(t, env.adjustmentRepo.UpdateState(ctx, adj.ID, adjustment.StateSubmitted, nil))
	err = env.svc.Approve(ctx, adj.ID)
	assert.True(t, errors.Is(err, ledger.ErrDuplicateAdjustmentRef))

	entries, err := env.entryRepo.ListByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
