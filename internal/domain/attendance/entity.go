package attendance

import "time"

// CheckIn is one attendance check-in. The ledger only cares about which
// dates have a check-in: a working day with one is never counted absent.
type CheckIn struct {
	ID         string
	EmployeeID string
	CheckIn    time.Time

	CreatedAt time.Time
}
