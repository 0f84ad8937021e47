package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"openpilotlog/nightlog/internal/auth"
	"openpilotlog/nightlog/internal/calc"
	"openpilotlog/nightlog/internal/constants"
	"openpilotlog/nightlog/internal/logging"
	"openpilotlog/nightlog/internal/models/dtos/responses"
	"openpilotlog/nightlog/internal/services"
)

// NightTimeHandler serves the public calculation endpoints
type NightTimeHandler struct {
	svc *services.FlightTimesService
}

func NewNightTimeHandler(svc *services.FlightTimesService) *NightTimeHandler {
	return &NightTimeHandler{svc: svc}
}

// ComputeNightTime handles GET /api/v1/night-time
//
// Query: dept, dest, date (YYYY-MM-DD), tofb (930, 0930, 9:30 or 09:30) and
// either tonb (same formats, may be past midnight) or block (minutes).
func (h *NightTimeHandler) ComputeNightTime() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		dept, dest := strings.TrimSpace(q.Get("dept")), strings.TrimSpace(q.Get("dest"))
		if dept == "" || dest == "" {
			respondWithError(w, http.StatusBadRequest, "dept and dest are required")
			return
		}

		tofb, err := calc.TimeOfDayMinutes(q.Get("tofb"))
		if err != nil {
			respondWithError(w, http.StatusBadRequest, constants.MsgInvalidTime+": tofb")
			return
		}

		blockMinutes, err := blockMinutesFromQuery(tofb, q.Get("tonb"), q.Get("block"))
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		blockOff, err := calc.BlockOffUTC(q.Get("date"), tofb)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, constants.MsgInvalidTime+": date")
			return
		}

		values, err := h.svc.ComputeNightTime(r.Context(), dept, dest, blockOff, blockMinutes)
		if err != nil {
			logging.WithRequest(auth.GetRequestID(r.Context()), r.URL.Path).
				Infow("Night time computation failed", "dept", dept, "dest", dest, "error", err)
			respondWithDomainError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, &responses.NightTimeResponse{
			Dept:         strings.ToUpper(dept),
			Dest:         strings.ToUpper(dest),
			BlockOff:     blockOff,
			BlockMinutes: values.BlockMinutes,
			NightMinutes: values.NightMinutes,
			NightTime:    calc.MinutesToString(values.NightMinutes),
			TakeOffNight: values.TakeOffNight,
			LandingNight: values.LandingNight,
		})
	}
}

func blockMinutesFromQuery(tofb int, tonbParam, blockParam string) (int, error) {
	switch {
	case tonbParam != "":
		tonb, err := calc.TimeOfDayMinutes(tonbParam)
		if err != nil {
			return 0, errInvalidParam("tonb")
		}
		return calc.BlockMinutes(tofb, tonb), nil
	case blockParam != "":
		block, err := strconv.Atoi(blockParam)
		if err != nil || block < 0 || block > calc.MaxBlockMinutes {
			return 0, errInvalidParam("block")
		}
		return block, nil
	default:
		return 0, errInvalidParam("tonb or block")
	}
}

// IsNight handles GET /api/v1/is-night?airport=EDDF&at=2021-12-21T00:00:00Z
// at defaults to now.
func (h *NightTimeHandler) IsNight() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		airport := strings.TrimSpace(r.URL.Query().Get("airport"))
		if airport == "" {
			respondWithError(w, http.StatusBadRequest, "airport is required")
			return
		}

		at := time.Now().UTC()
		if raw := r.URL.Query().Get("at"); raw != "" {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				respondWithError(w, http.StatusBadRequest, constants.MsgInvalidTime+": at")
				return
			}
			at = parsed.UTC()
		}

		night, err := h.svc.IsNightAt(r.Context(), airport, at)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, &responses.IsNightResponse{
			Airport: strings.ToUpper(airport),
			At:      at,
			IsNight: night,
		})
	}
}

// Distance handles GET /api/v1/distance?dept=KJFK&dest=EGLL
func (h *NightTimeHandler) Distance() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		dept, dest := strings.TrimSpace(q.Get("dept")), strings.TrimSpace(q.Get("dest"))
		if dept == "" || dest == "" {
			respondWithError(w, http.StatusBadRequest, "dept and dest are required")
			return
		}

		nm, err := h.svc.DistanceBetweenAirports(r.Context(), dept, dest)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, &responses.DistanceResponse{
			Dept:       strings.ToUpper(dept),
			Dest:       strings.ToUpper(dest),
			DistanceNM: nm,
		})
	}
}
