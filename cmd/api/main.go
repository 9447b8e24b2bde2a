package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/config"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/allowance"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/attendance"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/employee"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/holiday"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/ledger"
	appHTTP "github.com/cmlabs-hris/leave-ledger-go/internal/handler/http"
	"github.com/cmlabs-hris/leave-ledger-go/internal/pkg/cron"
	"github.com/cmlabs-hris/leave-ledger-go/internal/pkg/database"
	"github.com/cmlabs-hris/leave-ledger-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/leave-ledger-go/internal/repository/memory"
	"github.com/cmlabs-hris/leave-ledger-go/internal/repository/postgresql"
	adjustmentService "github.com/cmlabs-hris/leave-ledger-go/internal/service/adjustment"
	allowanceService "github.com/cmlabs-hris/leave-ledger-go/internal/service/allowance"
	holidayService "github.com/cmlabs-hris/leave-ledger-go/internal/service/holiday"
	leaveService "github.com/cmlabs-hris/leave-ledger-go/internal/service/leave"
	ledgerService "github.com/cmlabs-hris/leave-ledger-go/internal/service/ledger"
)

type repositories struct {
	entry      ledger.EntryRepository
	adjustment adjustment.AdjustmentRepository
	allowance  allowance.AllowanceRepository
	leave      leave.RequestRepository
	checkIn    attendance.CheckInRepository
	holiday    holiday.HolidayRepository
	employee   employee.EmployeeRepository
}

func buildRepositories(cfg *config.Config) (repositories, error) {
	if cfg.Ledger.StorageDriver == "memory" {
		return repositories{
			entry:      memory.NewLedgerEntryRepository(),
			adjustment: memory.NewAdjustmentRepository(),
			allowance:  memory.NewAllowanceRepository(),
			leave:      memory.NewLeaveRequestRepository(),
			checkIn:    memory.NewCheckInRepository(),
			holiday:    memory.NewHolidayRepository(),
			employee:   memory.NewEmployeeRepository(),
		}, nil
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return repositories{}, fmt.Errorf("connect to database: %w", err)
	}

	return repositories{
		entry:      postgresql.NewLedgerEntryRepository(db),
		adjustment: postgresql.NewAdjustmentRepository(db),
		allowance:  postgresql.NewAllowanceRepository(db),
		leave:      postgresql.NewLeaveRequestRepository(db),
		checkIn:    postgresql.NewCheckInRepository(db),
		holiday:    postgresql.NewHolidayRepository(db),
		employee:   postgresql.NewEmployeeRepository(db),
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	repos, err := buildRepositories(cfg)
	if err != nil {
		log.Fatal(err)
	}

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	calendar := ledgerService.NewCalendarService(repos.holiday)
	allowanceResolver := ledgerService.NewAllowanceResolver(repos.allowance)
	attribution := ledgerService.NewAttributionResolver(repos.entry, repos.leave, repos.checkIn, calendar)
	engine := ledgerService.NewEngine(repos.entry, allowanceResolver, attribution, cfg.Ledger.RecomputeBatchSize)
	ledgerSvc := ledgerService.NewLedgerService(repos.entry, repos.employee, engine, attribution)

	adjustmentSvc := adjustmentService.NewAdjustmentService(repos.adjustment, ledgerSvc)
	allowanceSvc := allowanceService.NewAllowanceService(repos.allowance, repos.entry, ledgerSvc)
	leaveSvc := leaveService.NewLeaveService(repos.leave, ledgerSvc, calendar)
	holidaySvc := holidayService.NewHolidayService(repos.holiday)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("monthly_leave_summaries", 24*time.Hour, func(ctx context.Context) error {
		return ledgerSvc.RunMonthlyAggregation(ctx, time.Now().UTC())
	})
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		jwtSvc,
		appHTTP.NewLedgerHandler(ledgerSvc),
		appHTTP.NewAdjustmentHandler(adjustmentSvc),
		appHTTP.NewAllowanceHandler(allowanceSvc),
		appHTTP.NewLeaveHandler(leaveSvc),
		appHTTP.NewHolidayHandler(holidaySvc),
		appHTTP.NewAttendanceHandler(repos.checkIn),
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Listening on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal(err)
	}
}
