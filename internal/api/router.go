// Package api provides the HTTP API for TollGrid.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/tollgrid/tollgrid/internal/api/handler"
	"github.com/tollgrid/tollgrid/internal/api/middleware"
	"github.com/tollgrid/tollgrid/internal/auth"
	"github.com/tollgrid/tollgrid/internal/dataset"
	"github.com/tollgrid/tollgrid/internal/pipeline"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version       string
	BuildTime     string
	Logger        zerolog.Logger
	ServiceName   string
	Metrics       *middleware.Metrics
	TokenService  *auth.TokenService
	Pipeline      *pipeline.Service
	DatasetSource *dataset.Source
	Importer      dataset.Importer
	Repository    dataset.Repository
	DB            handler.Pinger
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "tollgrid-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.DB)
	distanceHandler := handler.NewDistanceHandler(cfg.Pipeline)
	tollHandler := handler.NewTollHandler(cfg.Pipeline)
	coverageHandler := handler.NewCoverageHandler(cfg.Pipeline)
	analysisHandler := handler.NewAnalysisHandler(cfg.Pipeline)

	// Create rate limit middleware for different endpoint categories
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
		})

		// Distance endpoints - matrix building is the expensive path
		r.Route("/distance", func(r chi.Router) {
			r.Use(expensiveRateLimit)
			r.Get("/matrix", distanceHandler.Matrix)
			r.Get("/unrolled", distanceHandler.Unrolled)
			r.Get("/nearby", distanceHandler.Nearby)
		})

		// Toll endpoints
		r.Route("/toll", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/rates", tollHandler.Rates)
			r.Post("/rates:schedule", tollHandler.ScheduleRates)
		})

		// Coverage endpoint
		r.With(standardRateLimit).Get("/coverage", coverageHandler.Report)

		// Vehicle count analysis endpoints
		r.Route("/analysis", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/car-matrix", analysisHandler.CarMatrix)
			r.Get("/car-types", analysisHandler.CarTypes)
			r.Get("/bus-outliers", analysisHandler.BusOutliers)
			r.Get("/truck-routes", analysisHandler.TruckRoutes)
		})

		// Admin endpoints (authenticated) - for internal operations
		if cfg.TokenService != nil && cfg.DatasetSource != nil {
			adminHandler := handler.NewAdminHandler(cfg.DatasetSource, cfg.Importer, cfg.Repository, cfg.Logger)
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.Auth(cfg.TokenService))
				r.Use(middleware.RateLimitByOperator(middleware.AdminRateLimit))
				r.Post("/datasets/reload", adminHandler.ReloadDatasets)
			})
		}
	})

	return r
}
