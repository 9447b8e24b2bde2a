package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/leave-ledger-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/leave-ledger-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	jwtService jwt.Service,
	ledgerHandler LedgerHandler,
	adjustmentHandler AdjustmentHandler,
	allowanceHandler AllowanceHandler,
	leaveHandler LeaveHandler,
	holidayHandler HolidayHandler,
	attendanceHandler AttendanceHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "leave-ledger"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees/{id}", func(r chi.Router) {
				r.Get("/balance", ledgerHandler.GetBalance)
				r.Get("/ledger", ledgerHandler.GetLedger)
				r.Get("/adjustments", adjustmentHandler.ListByEmployee)
				r.Get("/leaves", leaveHandler.ListByEmployee)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/ledger/recompute", ledgerHandler.Recompute)
				})
			})

			// Admin only
			r.Route("/ledger/entries/{id}", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Put("/", ledgerHandler.UpdateEntry)
				r.Delete("/", ledgerHandler.DeleteEntry)
				r.Post("/archive", ledgerHandler.ArchiveEntry)
			})

			r.Route("/adjustments", func(r chi.Router) {
				r.Post("/", adjustmentHandler.Create)
				r.Post("/{id}/submit", adjustmentHandler.Submit)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/{id}/approve", adjustmentHandler.Approve)
					r.Post("/{id}/reject", adjustmentHandler.Reject)
				})
			})

			r.Route("/allowances", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/", allowanceHandler.Create)
				r.Get("/{id}", allowanceHandler.Get)
				r.Post("/{id}/approve", allowanceHandler.Approve)
				r.Post("/{id}/reset", allowanceHandler.Reset)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", leaveHandler.Create)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/{id}/approve", leaveHandler.Approve)
				})
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", holidayHandler.List)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", holidayHandler.Create)
					r.Post("/{id}/approve", holidayHandler.Approve)
				})
			})

			r.Post("/attendance/check-in", attendanceHandler.CheckIn)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	return r
}
