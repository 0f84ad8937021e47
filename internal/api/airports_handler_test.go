package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"openpilotlog/nightlog/internal/common"
	"openpilotlog/nightlog/internal/db"
	"openpilotlog/nightlog/internal/db/repositories"
	"openpilotlog/nightlog/internal/models/dtos/responses"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	orm, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	sqlDB, _ := orm.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.Migrate(orm); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return orm
}

const testAirportsJSON = `{
	"EDDF": {"icao": "EDDF", "iata": "FRA", "name": "Frankfurt am Main Airport", "country": "DE", "lat": 50.0333, "lon": 8.5706, "tz": "Europe/Berlin"},
	"EGLL": {"icao": "EGLL", "iata": "LHR", "name": "London Heathrow Airport", "country": "GB", "lat": 51.4706, "lon": -0.4619, "tz": "Europe/London"}
}`

func TestImportAirportsHandler(t *testing.T) {
	orm := setupTestDB(t)
	loader := common.NewAirportLoaderService(repositories.NewAirportRepository(orm), nil)

	req := httptest.NewRequest("POST", "/api/v1/admin/airports/import", strings.NewReader(testAirportsJSON))
	rr := httptest.NewRecorder()
	ImportAirportsHandler(loader).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var imported responses.APIResponse[responses.AirportImportResponse]
	if err := json.NewDecoder(rr.Body).Decode(&imported); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if imported.Data.Imported != 2 {
		t.Errorf("Expected 2 airports imported, got %d", imported.Data.Imported)
	}

	req = httptest.NewRequest("GET", "/api/v1/airports/stats", nil)
	rr = httptest.NewRecorder()
	AirportStatsHandler(loader).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	var stats responses.APIResponse[map[string]interface{}]
	if err := json.NewDecoder(rr.Body).Decode(&stats); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if total, _ := (*stats.Data)["total_airports"].(float64); total != 2 {
		t.Errorf("Expected total_airports 2, got %v", (*stats.Data)["total_airports"])
	}
}

func TestImportAirportsHandler_InvalidDocument(t *testing.T) {
	orm := setupTestDB(t)
	loader := common.NewAirportLoaderService(repositories.NewAirportRepository(orm), nil)

	for _, body := range []string{`not json`, `{}`, `{"X": {"icao": "X", "name": ""}}`} {
		req := httptest.NewRequest("POST", "/api/v1/admin/airports/import", strings.NewReader(body))
		rr := httptest.NewRecorder()
		ImportAirportsHandler(loader).ServeHTTP(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for %q, got %d", body, rr.Code)
		}
	}
}
