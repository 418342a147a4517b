package rest

import (
	"log/slog"

	"github.com/frahmantamala/payroll-report/internal/payroll"
	"github.com/frahmantamala/payroll-report/internal/report"
	"github.com/frahmantamala/payroll-report/internal/transport/middleware"
	"github.com/frahmantamala/payroll-report/internal/transport/swagger"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

func RegisterAllRoutes(router *chi.Mux, loader payroll.Loader, reportHandler *report.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(loader)

	// Apply global middleware
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get(swagger.SpecPath, swagger.SpecHandler)
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if reportHandler != nil {
			r.Get("/units", reportHandler.ListUnits)
			r.Get("/units/{unit}", reportHandler.GetUnit)
			r.Get("/company", reportHandler.GetCompany)
			r.Get("/export", reportHandler.Export)
		}
	})
}
