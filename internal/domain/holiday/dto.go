package holiday

import (
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/pkg/validator"
)

type CreateHolidayRequest struct {
	Name string
	Date time.Time
}

// HolidayResponse is the HTTP shape of a public holiday.
type HolidayResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Date  string `json:"date"`
	State State  `json:"state"`
}

func ToHolidayResponse(h PublicHoliday) HolidayResponse {
	return HolidayResponse{
		ID:    h.ID,
		Name:  h.Name,
		Date:  h.Date.Format("2006-01-02"),
		State: h.State,
	}
}

func (r CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if r.Date.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
