package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func mustCreate(t *testing.T, repo ledger.EntryRepository, en ledger.Entry) ledger.Entry {
	t.Helper()
	en.Active = true
	created, err := repo.Create(context.Background(), en)
	require.NoError(t, err)
	return created
}

func TestCreateAssignsMonotonicSeq(t *testing.T) {
	repo := NewLedgerEntryRepository()

	a := mustCreate(t, repo, ledger.Entry{EmployeeID: "emp-1", EventDate: d(2025, time.January, 5)})
	b := mustCreate(t, repo, ledger.Entry{EmployeeID: "emp-1", EventDate: d(2025, time.January, 3)})

	assert.NotEmpty(t, a.ID)
	assert.Less(t, a.Seq, b.Seq)
}

func TestUniquenessPerEmployeeDateAndKind(t *testing.T) {
	ctx := context.Background()
	repo := NewLedgerEntryRepository()

	mustCreate(t, repo, ledger.Entry{EmployeeID: "emp-1", EventDate: d(2025, time.January, 5)})

	_, err := repo.Create(ctx, ledger.Entry{EmployeeID: "emp-1", EventDate: d(2025, time.January, 5), Active: true})
	assert.True(t, errors.Is(err, ledger.ErrDuplicateEntry))

	// Same date works for a different employee and for a monthly summary.
	mustCreate(t, repo, ledger.Entry{EmployeeID: "emp-2", EventDate: d(2025, time.January, 5)})
	mustCreate(t, repo, ledger.Entry{EmployeeID: "emp-1", EventDate: d(2025, time.January, 5), IsMonthlySummary: true})
}

func TestRefUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewLedgerEntryRepository()

	adjRef := "adj-1"
	allowRef := "allow-1"
	mustCreate(t, repo, ledger.Entry{EmployeeID: "emp-1", EventDate: d(2025, time.January, 5), AdjustmentRefID: &adjRef})
	mustCreate(t, repo, ledger.Entry{EmployeeID: "emp-1", EventDate: d(2025, time.January, 6), AllowanceRefID: &allowRef})

	_, err := repo.Create(ctx, ledger.Entry{EmployeeID: "emp-1", EventDate: d(2025, time.January, 7), AdjustmentRefID: &adjRef, Active: true})
	assert.True(t, errors.Is(err, ledger.ErrDuplicateAdjustmentRef))

	_, err = repo.Create(ctx, ledger.Entry{EmployeeID: "emp-1", EventDate: d(2025, time.January, 8), AllowanceRefID: &allowRef, Active: true})
	assert.True(t, errors.Is(err, ledger.ErrDuplicateAllowanceRef))
}

func TestListOrderingUsesDateThenSeq(t *testing.T) {
	ctx := context.Background()
	repo := NewLedgerEntryRepository()

	// A monthly summary sharing its date with a discrete entry ties on the
	// date; insertion order breaks the tie.
	first := mustCreate(t, repo, ledger.Entry{EmployeeID: "emp-1", EventDate: d(2025, time.January, 10)})
	second := mustCreate(t, repo, ledger.Entry{EmployeeID: "emp-1", EventDate: d(2025, time.January, 10), IsMonthlySummary: true})
	earlier := mustCreate(t, repo, ledger.Entry{EmployeeID: "emp-1", EventDate: d(2025, time.January, 2)})

	entries, err := repo.ListByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, []string{earlier.ID, first.ID, second.ID}, ids(entries))
}

func TestListAfterAndLastBefore(t *testing.T) {
	ctx := context.Background()
	repo := NewLedgerEntryRepository()

	a := mustCreate(t, repo, ledger.Entry{EmployeeID: "emp-1", EventDate: d(2025, time.January, 2)})
	b := mustCreate(t, repo, ledger.Entry{EmployeeID: "emp-1", EventDate: d(2025, time.January, 10)})
	c := mustCreate(t, repo, ledger.Entry{EmployeeID: "emp-1", EventDate: d(2025, time.January, 20)})

	after, err := repo.ListAfter(ctx, "emp-1", b.Pos())
	require.NoError(t, err)
	assert.Equal(t, []string{c.ID}, ids(after))

	// Seq -1 sorts before anything on the date, so entries on the date
	// itself are included.
	after, err = repo.ListAfter(ctx, "emp-1", ledger.Position{EventDate: d(2025, time.January, 10), Seq: -1})
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID, c.ID}, ids(after))

	prev, ok, err := repo.LastBefore(ctx, "emp-1", b.Pos())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, a.ID, prev.ID)

	_, ok, err = repo.LastBefore(ctx, "emp-1", a.Pos())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLastAsOfPicksLatestEntry(t *testing.T) {
	ctx := context.Background()
	repo := NewLedgerEntryRepository()

	mustCreate(t, repo, ledger.Entry{EmployeeID: "emp-1", EventDate: d(2025, time.January, 2)})
	b := mustCreate(t, repo, ledger.Entry{EmployeeID: "emp-1", EventDate: d(2025, time.January, 10)})

	en, ok, err := repo.LastAsOf(ctx, "emp-1", d(2025, time.January, 15))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, b.ID, en.ID)

	_, ok, err = repo.LastAsOf(ctx, "emp-1", d(2025, time.January, 1))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPersistComputedWritesDerivedFieldsOnly(t *testing.T) {
	ctx := context.Background()
	repo := NewLedgerEntryRepository()

	en := mustCreate(t, repo, ledger.Entry{
		EmployeeID:      "emp-1",
		EventDate:       d(2025, time.January, 2),
		LeaveAdjustment: 1,
	})

	en.OpeningLeaves = 3
	en.ClosingLeaves = 4
	en.RemainingLeaves = 8
	en.AllowedLeaves = 12
	en.LeaveAdjustment = 99 // must NOT be persisted by this path
	require.NoError(t, repo.PersistComputed(ctx, []ledger.Entry{en}))

	stored, err := repo.GetByID(ctx, en.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.0, stored.OpeningLeaves)
	assert.Equal(t, 4.0, stored.ClosingLeaves)
	assert.Equal(t, 1.0, stored.LeaveAdjustment)
}

func TestDeleteByAllowanceRef(t *testing.T) {
	ctx := context.Background()
	repo := NewLedgerEntryRepository()

	allowRef := "allow-1"
	en := mustCreate(t, repo, ledger.Entry{EmployeeID: "emp-1", EventDate: d(2025, time.January, 2), AllowanceRefID: &allowRef})
	keep := mustCreate(t, repo, ledger.Entry{EmployeeID: "emp-1", EventDate: d(2025, time.January, 10)})

	removed, err := repo.DeleteByAllowanceRef(ctx, allowRef)
	require.NoError(t, err)
	require.Len(t, removed, 1)
	assert.Equal(t, en.ID, removed[0].ID)

	entries, err := repo.ListByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, []string{keep.ID}, ids(entries))
}

func ids(entries []ledger.Entry) []string {
	out := make([]string, len(entries))
	for i, en := range entries {
		out[i] = en.ID
	}
	return out
}
