package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"openpilotlog/nightlog/internal/db"
	"openpilotlog/nightlog/internal/models/entities"
)

func TestHealthCheckHandler(t *testing.T) {
	orm := setupTestDB(t)
	sqlxDB, err := db.WrapORM(orm)
	if err != nil {
		t.Fatalf("Failed to wrap database: %v", err)
	}

	upSince := time.Now().Add(-time.Hour)
	req := httptest.NewRequest("GET", "/healthCheck", nil)
	rr := httptest.NewRecorder()
	HealthCheckHandler(sqlxDB, nil, upSince).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp entities.HealthCheckResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Status != "ok" || resp.Services["database"].Status != "ok" {
		t.Errorf("Expected healthy database, got %+v", resp)
	}
	if _, ok := resp.Services["redis"]; ok {
		t.Error("Expected no redis entry without a redis client")
	}
}

func TestHealthCheckHandler_DatabaseDown(t *testing.T) {
	orm := setupTestDB(t)
	sqlxDB, err := db.WrapORM(orm)
	if err != nil {
		t.Fatalf("Failed to wrap database: %v", err)
	}
	sqlxDB.Close()

	req := httptest.NewRequest("GET", "/healthCheck", nil)
	rr := httptest.NewRecorder()
	HealthCheckHandler(sqlxDB, nil, time.Now()).ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", rr.Code)
	}
}
