package routes

import (
	"context"
	"net/http"
	"time"

	"openpilotlog/nightlog/internal/api"
	"openpilotlog/nightlog/internal/config"
	"openpilotlog/nightlog/internal/jobs"
	"openpilotlog/nightlog/internal/logging"
	"openpilotlog/nightlog/internal/metrics"
	"openpilotlog/nightlog/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// RegisterRoutes builds the HTTP router and starts the scheduled jobs, which
// stop when ctx is cancelled.
func RegisterRoutes(ctx context.Context, cfg *config.Config, deps *api.Dependencies, metricsReg *metrics.MetricsRegistry, upSince time.Time) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(metricsReg))
	if cfg.AppEnv != "production" {
		r.Use(middleware.Logging)
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:8081"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	logging.Info("Router initialized with metrics and logging middleware")
	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(deps.SQL, deps.Redis, upSince))

	nightTimeJob := jobs.InitializeJobs(ctx, deps.Services.FlightTimes, cfg.RecomputeInterval)

	RegisterAPIRoutes(r, cfg, deps, nightTimeJob)

	return r
}
