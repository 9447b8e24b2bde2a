package holiday

import "context"

// Service manages public holidays. Only approved holidays affect working
// day classification.
type Service interface {
	Create(ctx context.Context, req CreateHolidayRequest) (PublicHoliday, error)
	Approve(ctx context.Context, id string) error
	List(ctx context.Context) ([]PublicHoliday, error)
}
