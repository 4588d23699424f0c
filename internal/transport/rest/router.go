package rest

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/employee-records/internal/employee"
	"github.com/frahmantamala/employee-records/internal/transport/middleware"
	"github.com/frahmantamala/employee-records/internal/transport/swagger"
	"github.com/go-chi/chi"
)

type RouterOptions struct {
	Health          *HealthHandler
	EmployeeHandler *employee.Handler
	SwaggerEnabled  bool
	Logger          *slog.Logger
}

func RegisterAllRoutes(router *chi.Mux, opts RouterOptions) {
	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(opts.Logger))
	router.Use(middleware.LoggingMiddleware(opts.Logger))

	if opts.EmployeeHandler != nil {
		router.Get("/", opts.EmployeeHandler.Index)
	}

	if opts.SwaggerEnabled {
		router.Method(http.MethodGet, swagger.SpecPath, swagger.SpecHandler())
		router.Handle("/swagger/*", swagger.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		if opts.Health != nil {
			r.Get("/health", opts.Health.healthCheckHandler)
			r.Get("/ping", opts.Health.pingHandler)
		}

		if opts.EmployeeHandler != nil {
			r.Route("/employees", func(er chi.Router) {
				er.Get("/", opts.EmployeeHandler.ListEmployees)              // GET /employees
				er.Get("/export.xlsx", opts.EmployeeHandler.ExportEmployees) // GET /employees/export.xlsx
				er.Get("/{id}", opts.EmployeeHandler.GetEmployee)            // GET /employees/:id
			})
		}
	})
}
