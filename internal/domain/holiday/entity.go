package holiday

import "time"

type State string

const (
	StateDraft    State = "draft"
	StateApproved State = "approved"
)

// PublicHoliday marks a calendar date as a non-working day once approved.
type PublicHoliday struct {
	ID    string
	Name  string
	Date  time.Time
	State State

	CreatedAt time.Time
	UpdatedAt time.Time
}
