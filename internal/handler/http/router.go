package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/vetanpay/payroll-backend-go/internal/handler/http/middleware"
	"github.com/vetanpay/payroll-backend-go/internal/pkg/jwt"
)

type RouterConfig struct {
	JWTService        jwt.Service
	AuthHandler       AuthHandler
	EmployeeHandler   EmployeeHandler
	AttendanceHandler AttendanceHandler
	LedgerHandler     LedgerHandler
	StatutoryHandler  StatutoryHandler
	PayrollHandler    PayrollHandler
	ArrearHandler     ArrearHandler

	AppName        string
	AppEnv         string
	AllowedOrigins []string
}

func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.AppName),
		slog.String("env", cfg.AppEnv),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
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

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", cfg.AuthHandler.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(cfg.JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(cfg.JWTService.JWTAuth()))

			r.Get("/auth/me", cfg.AuthHandler.Me)
			r.With(middleware.RequireAdmin).Post("/auth/register", cfg.AuthHandler.Register)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", cfg.EmployeeHandler.List)
				r.Post("/", cfg.EmployeeHandler.Upsert)
				r.Post("/import", cfg.EmployeeHandler.BulkImport)
				r.Get("/{id}", cfg.EmployeeHandler.Get)
				r.With(middleware.RequireAdmin).Delete("/{id}", cfg.EmployeeHandler.Delete)
			})

			r.Route("/attendance/{year}/{month}", func(r chi.Router) {
				r.Post("/", cfg.AttendanceHandler.Save)
				r.Get("/", cfg.AttendanceHandler.List)
				r.Get("/{employeeID}", cfg.AttendanceHandler.Get)
			})

			r.Route("/ledgers", func(r chi.Router) {
				r.Route("/leave/{employeeID}", func(r chi.Router) {
					r.Get("/", cfg.LedgerHandler.GetLeaveLedger)
					r.Put("/", cfg.LedgerHandler.UpdateLeaveLedger)
				})
				r.Route("/advance", func(r chi.Router) {
					r.Get("/", cfg.LedgerHandler.ListAdvanceLedgers)
					r.Get("/{employeeID}", cfg.LedgerHandler.GetAdvanceLedger)
					r.Put("/{employeeID}", cfg.LedgerHandler.UpdateAdvanceLedger)
				})
				r.Route("/fines/{year}/{month}", func(r chi.Router) {
					r.Get("/", cfg.LedgerHandler.ListFines)
					r.Post("/", cfg.LedgerHandler.SaveFine)
				})
			})

			r.Route("/statutory", func(r chi.Router) {
				r.Get("/config", cfg.StatutoryHandler.GetConfig)
				r.Get("/leave-policy", cfg.StatutoryHandler.GetLeavePolicy)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Put("/config", cfg.StatutoryHandler.UpdateConfig)
					r.Put("/leave-policy", cfg.StatutoryHandler.UpdateLeavePolicy)
				})
			})

			r.Route("/payroll/{year}/{month}", func(r chi.Router) {
				r.Post("/run", cfg.PayrollHandler.RunBatch)
				r.Get("/results", cfg.PayrollHandler.ListResults)
				r.Get("/results/{employeeID}", cfg.PayrollHandler.GetResult)
				r.Get("/status", cfg.PayrollHandler.PeriodStatus)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/freeze", cfg.PayrollHandler.Freeze)
					r.Post("/unlock", cfg.PayrollHandler.Unlock)
				})
			})

			r.Route("/arrears", func(r chi.Router) {
				r.Get("/", cfg.ArrearHandler.List)
				r.Post("/", cfg.ArrearHandler.CreateDraft)
				r.Get("/{id}", cfg.ArrearHandler.Get)
				r.Post("/{id}/recompute", cfg.ArrearHandler.Recompute)
				r.With(middleware.RequireAdmin).Post("/{id}/finalize", cfg.ArrearHandler.Finalize)
			})
		})
	})
	return r
}
