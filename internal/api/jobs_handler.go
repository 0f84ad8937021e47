package api

import (
	"net/http"
	"strconv"
	"time"

	"openpilotlog/nightlog/internal/auth"
	"openpilotlog/nightlog/internal/constants"
	"openpilotlog/nightlog/internal/jobs"
	"openpilotlog/nightlog/internal/logging"
	"openpilotlog/nightlog/internal/models/dtos/responses"
	"openpilotlog/nightlog/internal/services"

	"github.com/go-chi/chi/v5"
)

// JobsHandler handles manual job triggering endpoints
type JobsHandler struct {
	nightTimeJob *jobs.NightTimeJob
	svc          *services.FlightTimesService
}

// NewJobsHandler creates a new jobs handler
func NewJobsHandler(nightTimeJob *jobs.NightTimeJob, svc *services.FlightTimesService) *JobsHandler {
	return &JobsHandler{
		nightTimeJob: nightTimeJob,
		svc:          svc,
	}
}

// TriggerNightTimeRecompute handles POST /api/v1/admin/jobs/night-times
func (h *JobsHandler) TriggerNightTimeRecompute() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logging.Info("Night time recompute manually triggered", "triggered_by", triggeredBy(r))

		result, err := h.nightTimeJob.Run(r.Context())
		if err != nil {
			logging.Error("Manual night time recompute failed", "error", err)
			respondWithDomainError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, toRecomputeResponse(result, nil))
	}
}

// LastNightTimeRecompute handles GET /api/v1/admin/jobs/night-times
func (h *JobsHandler) LastNightTimeRecompute() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, startedAt := h.nightTimeJob.LastResult()
		if result == nil {
			respondWithError(w, http.StatusNotFound, "No night time recompute has completed yet")
			return
		}
		respondWithSuccess(w, http.StatusOK, toRecomputeResponse(result, &startedAt))
	}
}

// TriggerTimeCategoryRecompute handles POST /api/v1/admin/aircraft/{id}/time-categories
func (h *JobsHandler) TriggerTimeCategoryRecompute() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id == 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid aircraft id")
			return
		}

		logging.Info("Time category recompute manually triggered",
			"aircraft_id", id,
			"triggered_by", triggeredBy(r),
		)

		result, err := h.svc.RecomputeTimeCategories(r.Context(), uint(id))
		if err != nil {
			if statusForError(err) == http.StatusNotFound {
				respondWithError(w, http.StatusNotFound, constants.MsgAircraftNotFound)
				return
			}
			logging.Error("Time category recompute failed", "aircraft_id", id, "error", err)
			respondWithDomainError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, toRecomputeResponse(result, nil))
	}
}

func triggeredBy(r *http.Request) string {
	if claims := auth.GetAdminClaims(r.Context()); claims != nil {
		return claims.Subject
	}
	return ""
}

func toRecomputeResponse(result *services.RecomputeResult, startedAt *time.Time) *responses.RecomputeResponse {
	resp := &responses.RecomputeResponse{
		Job:        string(result.Job),
		Visited:    result.Visited,
		Updated:    result.Updated,
		Failed:     result.Failed,
		DurationMS: result.Duration.Milliseconds(),
	}
	if startedAt != nil {
		resp.StartedAt = startedAt.UTC()
	}
	return resp
}
