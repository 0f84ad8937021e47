package api

import (
	"net/http"

	"openpilotlog/nightlog/internal/common"
	"openpilotlog/nightlog/internal/constants"
	"openpilotlog/nightlog/internal/logging"
	"openpilotlog/nightlog/internal/models/dtos/responses"
)

// maxAirportDocumentBytes bounds the upload; the full mwgg document is ~8 MB
const maxAirportDocumentBytes = 64 << 20

// ImportAirportsHandler handles POST /api/v1/admin/airports/import
// The request body is an airports JSON document keyed by ICAO code.
func ImportAirportsHandler(airportLoader *common.AirportLoaderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := http.MaxBytesReader(w, r.Body, maxAirportDocumentBytes)

		count, err := airportLoader.LoadFromJSON(r.Context(), body)
		if err != nil {
			logging.Error("Airport import failed", "triggered_by", triggeredBy(r), "error", err)
			if statusForError(err) == http.StatusInternalServerError {
				respondWithError(w, http.StatusBadRequest, constants.MsgAirportImportFailed)
				return
			}
			respondWithDomainError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, &responses.AirportImportResponse{Imported: count})
	}
}

// AirportStatsHandler handles GET /api/v1/airports/stats
func AirportStatsHandler(airportLoader *common.AirportLoaderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := airportLoader.GetStats(r.Context())
		if err != nil {
			logging.Error("Failed to read airport stats", "error", err)
			respondWithDomainError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, &stats)
	}
}
