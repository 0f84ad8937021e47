package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"openpilotlog/nightlog/internal/constants"
	"openpilotlog/nightlog/internal/models/entities"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// HealthCheckHandler handles GET /healthCheck
//
// redisClient is nil when the in-memory cache is in use.
func HealthCheckHandler(db *sqlx.DB, redisClient *redis.Client, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		services := make(map[string]entities.ServiceStatus)

		dbStatus := "ok"
		dbDetails := "Database Connected"
		var one int
		if err := db.GetContext(ctx, &one, constants.PingQuery); err != nil {
			dbStatus = "down"
			dbDetails = err.Error()
		}
		services["database"] = entities.ServiceStatus{
			Status:  dbStatus,
			Details: dbDetails,
		}

		if redisClient != nil {
			redisStatus := "ok"
			redisDetails := "Redis Connected"
			if err := redisClient.Ping(ctx).Err(); err != nil {
				redisStatus = "down"
				redisDetails = err.Error()
			}
			services["redis"] = entities.ServiceStatus{
				Status:  redisStatus,
				Details: redisDetails,
			}
		}

		overallStatus := "ok"
		for _, svc := range services {
			if svc.Status != "ok" {
				overallStatus = "down"
				break
			}
		}

		resp := entities.HealthCheckResponse{
			Services: services,
			Status:   overallStatus,
			UpSince:  upSince,
			Uptime:   time.Since(upSince).Round(time.Second).String(),
		}

		w.Header().Set("Content-Type", "application/json")
		if overallStatus != "ok" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}
