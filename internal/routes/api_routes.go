package routes

import (
	"openpilotlog/nightlog/internal/api"
	"openpilotlog/nightlog/internal/config"
	"openpilotlog/nightlog/internal/jobs"
	"openpilotlog/nightlog/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
func RegisterAPIRoutes(r chi.Router, cfg *config.Config, deps *api.Dependencies, nightTimeJob *jobs.NightTimeJob) {
	nightTime := api.NewNightTimeHandler(deps.Services.FlightTimes)
	settings := api.NewSettingsHandler(deps.Repo.Settings, nightTimeJob)
	jobsHandler := api.NewJobsHandler(nightTimeJob, deps.Services.FlightTimes)
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	r.Route("/api/v1", func(v1 chi.Router) {
		// public calculation endpoints, rate limited per client
		v1.Group(func(public chi.Router) {
			public.Use(limiter.Middleware)
			public.Get("/night-time", nightTime.ComputeNightTime())
			public.Get("/is-night", nightTime.IsNight())
			public.Get("/distance", nightTime.Distance())
			public.Get("/settings/night-angle", settings.GetNightAngle())
			public.Get("/airports/stats", api.AirportStatsHandler(deps.Services.AirportLoader))
		})

		// admin endpoints require a signed bearer token
		v1.Route("/admin", func(admin chi.Router) {
			admin.Use(middleware.AdminAuthMiddleware(deps.Services.Tokens))
			admin.Put("/settings/night-angle", settings.UpdateNightAngle())
			admin.Post("/jobs/night-times", jobsHandler.TriggerNightTimeRecompute())
			admin.Get("/jobs/night-times", jobsHandler.LastNightTimeRecompute())
			admin.Post("/aircraft/{id}/time-categories", jobsHandler.TriggerTimeCategoryRecompute())
			admin.Post("/airports/import", api.ImportAirportsHandler(deps.Services.AirportLoader))
		})
	})
}
