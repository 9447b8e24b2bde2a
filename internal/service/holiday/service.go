package holiday

import (
	"context"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/holiday"
)

type service struct {
	holidayRepo holiday.HolidayRepository
}

func NewHolidayService(holidayRepo holiday.HolidayRepository) holiday.Service {
	return &service{holidayRepo: holidayRepo}
}

// Create implements holiday.Service.
func (s *service) Create(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.PublicHoliday, error) {
	if err := req.Validate(); err != nil {
		return holiday.PublicHoliday{}, err
	}

	return s.holidayRepo.Create(ctx, holiday.PublicHoliday{
		Name:  req.Name,
		Date:  req.Date,
		State: holiday.StateDraft,
	})
}

// Approve implements holiday.Service.
func (s *service) Approve(ctx context.Context, id string) error {
	if _, err := s.holidayRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.holidayRepo.UpdateState(ctx, id, holiday.StateApproved)
}

// List implements holiday.Service.
func (s *service) List(ctx context.Context) ([]holiday.PublicHoliday, error) {
	return s.holidayRepo.List(ctx)
}
