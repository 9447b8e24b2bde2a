package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/allowance"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/attendance"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/employee"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/holiday"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/ledger"
	"github.com/cmlabs-hris/leave-ledger-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEmployeeID = "emp-1"

type fixture struct {
	entryRepo     ledger.EntryRepository
	allowanceRepo allowance.AllowanceRepository
	leaveRepo     leave.RequestRepository
	checkInRepo   attendance.CheckInRepository
	holidayRepo   holiday.HolidayRepository
	employeeRepo  employee.EmployeeRepository

	calendar *CalendarService
	engine   *Engine
	svc      ledger.Service
}

func newFixture(t *testing.T, batchSize int) *fixture {
	t.Helper()

	f := &fixture{
		entryRepo:     memory.NewLedgerEntryRepository(),
		allowanceRepo: memory.NewAllowanceRepository(),
		leaveRepo:     memory.NewLeaveRequestRepository(),
		checkInRepo:   memory.NewCheckInRepository(),
		holidayRepo:   memory.NewHolidayRepository(),
		employeeRepo:  memory.NewEmployeeRepository(),
	}
	f.calendar = NewCalendarService(f.holidayRepo)
	attribution := NewAttributionResolver(f.entryRepo, f.leaveRepo, f.checkInRepo, f.calendar)
	f.engine = NewEngine(f.entryRepo, NewAllowanceResolver(f.allowanceRepo), attribution, batchSize)
	f.svc = NewLedgerService(f.entryRepo, f.employeeRepo, f.engine, attribution)

	_, err := f.employeeRepo.Create(context.Background(), employee.Employee{
		ID:       testEmployeeID,
		FullName: "Test Employee",
		Active:   true,
	})
	require.NoError(t, err)

	return f
}

func (f *fixture) grantAllowance(t *testing.T, employeeID string, allowed float64) {
	t.Helper()
	_, err := f.allowanceRepo.Create(context.Background(), allowance.Allowance{
		EmployeeID:    employeeID,
		TimeOffType:   allowance.TimeOffAnnualPerm,
		FromDate:      d(2025, time.January, 1),
		AllowedLeaves: allowed,
		State:         allowance.StateApproved,
	})
	require.NoError(t, err)
}

func (f *fixture) chain(t *testing.T, employeeID string) []ledger.Entry {
	t.Helper()
	entries, err := f.entryRepo.ListByEmployee(context.Background(), employeeID)
	require.NoError(t, err)
	return entries
}

func d(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestChainLinksAcrossOutOfOrderInserts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 50)
	f.grantAllowance(t, testEmployeeID, 12)

	_, err := f.svc.CreateEntry(ctx, ledger.CreateEntryRequest{
		EmployeeID:      testEmployeeID,
		EventDate:       d(2025, time.January, 5),
		LeaveAdjustment: 2,
	})
	require.NoError(t, err)

	_, err = f.svc.CreateEntry(ctx, ledger.CreateEntryRequest{
		EmployeeID:     testEmployeeID,
		EventDate:      d(2025, time.January, 10),
		ApprovedLeaves: 3,
	})
	require.NoError(t, err)

	// Inserted between the two existing entries: the downstream entry must
	// re-link to the new closing balance.
	_, err = f.svc.CreateEntry(ctx, ledger.CreateEntryRequest{
		EmployeeID:      testEmployeeID,
		EventDate:       d(2025, time.January, 7),
		LeaveAdjustment: 1,
	})
	require.NoError(t, err)

	entries := f.chain(t, testEmployeeID)
	require.Len(t, entries, 3)

	assert.Equal(t, []float64{0, 2, 3}, openings(entries))
	assert.Equal(t, []float64{2, 3, 6}, closings(entries))
	assert.Equal(t, []float64{10, 9, 6}, remainings(entries))
	for _, en := range entries {
		assert.Equal(t, 12.0, en.AllowedLeaves)
	}
}

func TestRecomputeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 50)
	f.grantAllowance(t, testEmployeeID, 10)

	for day, adj := range map[int]float64{3: 1, 9: 2, 17: -1} {
		_, err := f.svc.CreateEntry(ctx, ledger.CreateEntryRequest{
			EmployeeID:      testEmployeeID,
			EventDate:       d(2025, time.February, day),
			LeaveAdjustment: adj,
		})
		require.NoError(t, err)
	}

	before := f.chain(t, testEmployeeID)
	require.NoError(t, f.svc.RecomputeFrom(ctx, testEmployeeID, d(2025, time.January, 1)))
	after := f.chain(t, testEmployeeID)

	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].OpeningLeaves, after[i].OpeningLeaves)
		assert.Equal(t, before[i].ClosingLeaves, after[i].ClosingLeaves)
		assert.Equal(t, before[i].RemainingLeaves, after[i].RemainingLeaves)
	}
}

func TestRecomputeCommitsInBatches(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 2)
	f.grantAllowance(t, testEmployeeID, 20)

	for day := 1; day <= 7; day++ {
		_, err := f.svc.CreateEntry(ctx, ledger.CreateEntryRequest{
			EmployeeID:      testEmployeeID,
			EventDate:       d(2025, time.March, day),
			LeaveAdjustment: 1,
		})
		require.NoError(t, err)
	}

	entries := f.chain(t, testEmployeeID)
	require.Len(t, entries, 7)
	for i, en := range entries {
		assert.Equal(t, float64(i), en.OpeningLeaves)
		assert.Equal(t, float64(i+1), en.ClosingLeaves)
	}
}

func TestVerifyChainFlagsCorruption(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 50)

	created, err := f.svc.CreateEntry(ctx, ledger.CreateEntryRequest{
		EmployeeID:      testEmployeeID,
		EventDate:       d(2025, time.April, 1),
		LeaveAdjustment: 1,
	})
	require.NoError(t, err)

	// Corrupt a derived field behind the engine's back.
	created.OpeningLeaves = 99
	require.NoError(t, f.entryRepo.PersistComputed(ctx, []ledger.Entry{created}))

	err = f.engine.VerifyChain(ctx, testEmployeeID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ledger.ErrOrderingViolation))
}

// failingEntryRepo fails PersistComputed after a set number of successful
// calls, simulating a crash between commit boundaries.
type failingEntryRepo struct {
	ledger.EntryRepository
	allowed int
	calls   int
}

func (r *failingEntryRepo) PersistComputed(ctx context.Context, entries []ledger.Entry) error {
	r.calls++
	if r.calls > r.allowed {
		return errors.New("storage unavailable")
	}
	return r.EntryRepository.PersistComputed(ctx, entries)
}

func TestInterruptedCascadeIsRepairable(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 2)
	f.grantAllowance(t, testEmployeeID, 20)

	for day := 1; day <= 6; day++ {
		_, err := f.svc.CreateEntry(ctx, ledger.CreateEntryRequest{
			EmployeeID:      testEmployeeID,
			EventDate:       d(2025, time.May, day),
			LeaveAdjustment: 1,
		})
		require.NoError(t, err)
	}

	// An engine whose storage dies after the first committed batch.
	failing := &failingEntryRepo{EntryRepository: f.entryRepo, allowed: 1}
	attribution := NewAttributionResolver(failing, f.leaveRepo, f.checkInRepo, f.calendar)
	brokenEngine := NewEngine(failing, NewAllowanceResolver(f.allowanceRepo), attribution, 2)

	err := brokenEngine.RecomputeFrom(ctx, testEmployeeID, d(2025, time.May, 1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ledger.ErrCascadeIncomplete))

	// Retrying on healthy storage restores the full chain.
	require.NoError(t, f.engine.RecomputeFrom(ctx, testEmployeeID, d(2025, time.May, 1)))
	entries := f.chain(t, testEmployeeID)
	require.Len(t, entries, 6)
	for i, en := range entries {
		assert.Equal(t, float64(i), en.OpeningLeaves)
		assert.Equal(t, float64(i+1), en.ClosingLeaves)
	}
}

func openings(entries []ledger.Entry) []float64 {
	out := make([]float64, len(entries))
	for i, en := range entries {
		out[i] = en.OpeningLeaves
	}
	return out
}

func closings(entries []ledger.Entry) []float64 {
	out := make([]float64, len(entries))
	for i, en := range entries {
		out[i] = en.ClosingLeaves
	}
	return out
}

func remainings(entries []ledger.Entry) []float64 {
	out := make([]float64, len(entries))
	for i, en := range entries {
		out[i] = en.RemainingLeaves
	}
	return out
}
