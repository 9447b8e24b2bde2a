package ledger

import (
	"context"
	"time"
)

// Service is the ledger's external surface: entry writes go through the
// cascade trigger, reads expose computed balances, and RecomputeFrom is the
// administrative repair operation.
type Service interface {
	CreateEntry(ctx context.Context, req CreateEntryRequest) (Entry, error)
	UpdateEntry(ctx context.Context, req UpdateEntryRequest) (Entry, error)
	DeleteEntry(ctx context.Context, id string) error
	// ArchiveEntry soft-hides an entry: it leaves the chain but stays
	// queryable by ID.
	ArchiveEntry(ctx context.Context, id string) error

	GetBalanceAsOf(ctx context.Context, employeeID string, date time.Time) (Balance, error)
	GetLedgerHistory(ctx context.Context, employeeID string) ([]Entry, error)

	RecomputeFrom(ctx context.Context, employeeID string, from time.Time) error
	// RunMonthlyAggregation builds the previous month's summary entry for
	// every active employee with unexcused absences.
	RunMonthlyAggregation(ctx context.Context, now time.Time) error
}
