package employee

import "time"

// Employee is the minimal employee record the ledger needs: an identity to
// key chains by and an active flag for the monthly aggregation sweep.
type Employee struct {
	ID       string
	FullName string
	Active   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
