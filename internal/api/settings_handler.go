package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"openpilotlog/nightlog/internal/constants"
	"openpilotlog/nightlog/internal/db/repositories"
	"openpilotlog/nightlog/internal/jobs"
	"openpilotlog/nightlog/internal/logging"
	"openpilotlog/nightlog/internal/models/dtos/requests"
	"openpilotlog/nightlog/internal/models/dtos/responses"
)

// NightAngleStore reads and writes the night angle setting
type NightAngleStore interface {
	ReadNightAngle(ctx context.Context) (float64, error)
	WriteNightAngle(ctx context.Context, angle float64) error
}

type SettingsHandler struct {
	settings NightAngleStore
	job      *jobs.NightTimeJob
}

func NewSettingsHandler(settings NightAngleStore, job *jobs.NightTimeJob) *SettingsHandler {
	return &SettingsHandler{settings: settings, job: job}
}

// GetNightAngle handles GET /api/v1/settings/night-angle
func (h *SettingsHandler) GetNightAngle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		angle, err := h.settings.ReadNightAngle(r.Context())
		if err != nil {
			logging.Error("Failed to read night angle", "error", err)
			respondWithDomainError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, &responses.NightAngleResponse{NightAngle: angle})
	}
}

// UpdateNightAngle handles PUT /api/v1/admin/settings/night-angle. Every
// stored night time depends on the angle, so the logbook is recomputed
// before responding.
func (h *SettingsHandler) UpdateNightAngle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req requests.NightAngleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.NightAngle == nil {
			respondWithError(w, http.StatusBadRequest, constants.MsgInvalidRequestBody)
			return
		}

		if err := repositories.ValidateNightAngle(*req.NightAngle); err != nil {
			respondWithError(w, http.StatusBadRequest, constants.MsgInvalidNightAngle)
			return
		}

		if err := h.settings.WriteNightAngle(r.Context(), *req.NightAngle); err != nil {
			logging.Error("Failed to write night angle", "error", err)
			respondWithDomainError(w, err)
			return
		}

		logging.Info("Night angle updated", "night_angle", *req.NightAngle, "triggered_by", triggeredBy(r))

		resp := &responses.NightAngleUpdateResponse{NightAngle: *req.NightAngle}

		result, err := h.job.Run(r.Context())
		switch {
		case errors.Is(err, jobs.ErrJobRunning):
			// the running pass may have read the old angle; the next one will pick it up
			logging.Warn("Night time recompute already running after night angle update")
			respondWithSuccess(w, http.StatusAccepted, resp)
			return
		case err != nil:
			respondWithError(w, http.StatusInternalServerError, constants.MsgRecomputeFailed)
			return
		}

		resp.Recompute = toRecomputeResponse(result, nil)
		respondWithSuccess(w, http.StatusOK, resp)
	}
}
