package ledger

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/ledger"
)

// RunMonthlyAggregation implements ledger.Service. For every active
// employee it builds the previous month's summary entry, skipping employees
// that already have one and employees without unexcused absences. Each
// entry goes through CreateEntry, so approved leaves get reattributed with
// double-count avoidance and the chain cascades as usual.
func (s *service) RunMonthlyAggregation(ctx context.Context, now time.Time) error {
	thisMonthStart, _ := MonthBounds(Day(now))
	monthStart, monthEnd := MonthBounds(thisMonthStart.AddDate(0, 0, -1))

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return err
	}

	createdCount := 0
	for _, emp := range employees {
		exists, err := s.entryRepo.HasMonthlySummary(ctx, emp.ID, monthStart, monthEnd)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		absent, err := s.attribution.AbsentDays(ctx, emp.ID, monthStart)
		if err != nil {
			slog.Error("Monthly aggregation: absence computation failed",
				"employee_id", emp.ID, "month", monthStart.Format("2006-01"), "error", err)
			continue
		}
		if absent <= 0 {
			continue
		}

		_, err = s.CreateEntry(ctx, ledger.CreateEntryRequest{
			EmployeeID:       emp.ID,
			EventDate:        monthEnd,
			IsMonthlySummary: true,
			AbsentDays:       absent,
		})
		if err != nil {
			slog.Error("Monthly aggregation: summary creation failed",
				"employee_id", emp.ID, "month", monthStart.Format("2006-01"), "error", err)
			continue
		}
		createdCount++
	}

	slog.Info("Monthly aggregation completed",
		"month", monthStart.Format("2006-01"), "created", createdCount)
	return nil
}
