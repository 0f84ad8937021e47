package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"openpilotlog/nightlog/internal/calc"
	"openpilotlog/nightlog/internal/common"
	"openpilotlog/nightlog/internal/constants"
	"openpilotlog/nightlog/internal/db/repositories"
	"openpilotlog/nightlog/internal/jobs"
	"openpilotlog/nightlog/internal/models/dtos/responses"
)

func respondWithSuccess[T any](w http.ResponseWriter, statusCode int, data *T) {
	resp := responses.APIResponse[T]{
		Status:    string(constants.APIStatusOk),
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	w.Header().Set("Content-Type", "application/json")

	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	resp := responses.APIResponse[any]{
		Status:    string(constants.APIStatusError),
		Timestamp: time.Now().UTC(),
		Error:     message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	_ = json.NewEncoder(w).Encode(resp)
}

// statusForError maps domain errors onto HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, repositories.ErrAirportNotFound),
		errors.Is(err, repositories.ErrAircraftNotFound):
		return http.StatusNotFound
	case errors.Is(err, calc.ErrInvalidTime),
		errors.Is(err, calc.ErrNegativeDuration),
		errors.Is(err, calc.ErrBlockTooLong),
		errors.Is(err, calc.ErrInvalidCoordinate),
		errors.Is(err, repositories.ErrInvalidSetting),
		errors.Is(err, common.ErrNoAirports):
		return http.StatusBadRequest
	case errors.Is(err, jobs.ErrJobRunning):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondWithDomainError hides internal error text behind a generic message for 5xx
func respondWithDomainError(w http.ResponseWriter, err error) {
	code := statusForError(err)
	if code == http.StatusInternalServerError {
		respondWithError(w, code, "Internal server error")
		return
	}
	respondWithError(w, code, err.Error())
}
