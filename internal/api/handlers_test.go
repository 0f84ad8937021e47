package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"openpilotlog/nightlog/internal/calc"
	"openpilotlog/nightlog/internal/db/repositories"
	"openpilotlog/nightlog/internal/jobs"
	"openpilotlog/nightlog/internal/models/dtos/responses"
	gormModels "openpilotlog/nightlog/internal/models/gorm"
	"openpilotlog/nightlog/internal/services"

	"github.com/go-chi/chi/v5"
)

// Mock CoordinateResolver
type mockResolver struct{}

func (mockResolver) Resolve(ctx context.Context, ident string) (calc.GeoCoordinate, error) {
	switch strings.ToUpper(ident) {
	case "OMDB":
		return calc.GeoCoordinate{Latitude: 25.2528, Longitude: 55.3644}, nil
	case "RJTT":
		return calc.GeoCoordinate{Latitude: 35.5523, Longitude: 139.7800}, nil
	case "KJFK":
		return calc.GeoCoordinate{Latitude: 40.6413, Longitude: -73.7781}, nil
	case "EGLL":
		return calc.GeoCoordinate{Latitude: 51.4706, Longitude: -0.4619}, nil
	}
	return calc.GeoCoordinate{}, repositories.ErrAirportNotFound
}

// Mock FlightStore
type mockFlightStore struct {
	flights []gormModels.Flight
}

func (m *mockFlightStore) ForEachFlight(ctx context.Context, visit repositories.FlightVisitor) error {
	for i := range m.flights {
		if err := visit(ctx, &m.flights[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockFlightStore) ForEachFlightUsingAircraft(ctx context.Context, aircraftID uint, visit repositories.FlightVisitor) error {
	for i := range m.flights {
		if m.flights[i].AircraftID == aircraftID {
			if err := visit(ctx, &m.flights[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *mockFlightStore) Commit(ctx context.Context, flight *gormModels.Flight) error {
	return nil
}

// Mock AircraftStore
type mockAircraftStore struct{}

func (mockAircraftStore) FindByID(ctx context.Context, id uint) (*gormModels.Aircraft, error) {
	if id == 7 {
		return &gormModels.Aircraft{ID: 7, Registration: "D-EFLY"}, nil
	}
	return nil, repositories.ErrAircraftNotFound
}

// Mock settings, implements both SettingsProvider and NightAngleStore
type mockSettings struct {
	angle float64
}

func (m *mockSettings) ReadNightAngle(ctx context.Context) (float64, error) {
	return m.angle, nil
}

func (m *mockSettings) WriteNightAngle(ctx context.Context, angle float64) error {
	m.angle = angle
	return nil
}

type testEnv struct {
	router   chi.Router
	flights  *mockFlightStore
	settings *mockSettings
	job      *jobs.NightTimeJob
}

func newTestEnv() *testEnv {
	flights := &mockFlightStore{flights: []gormModels.Flight{
		{ID: 1, DOFT: "2021-01-15", Dept: "KJFK", Dest: "EGLL", TOFB: 1410, TBLK: 420, AircraftID: 7},
	}}
	settings := &mockSettings{angle: -6}
	svc := services.NewFlightTimesService(mockResolver{}, flights, mockAircraftStore{}, settings, nil, nil)
	job := jobs.NewNightTimeJob(svc)

	nightTime := NewNightTimeHandler(svc)
	settingsHandler := NewSettingsHandler(settings, job)
	jobsHandler := NewJobsHandler(job, svc)

	r := chi.NewRouter()
	r.Get("/api/v1/night-time", nightTime.ComputeNightTime())
	r.Get("/api/v1/is-night", nightTime.IsNight())
	r.Get("/api/v1/distance", nightTime.Distance())
	r.Get("/api/v1/settings/night-angle", settingsHandler.GetNightAngle())
	r.Put("/api/v1/admin/settings/night-angle", settingsHandler.UpdateNightAngle())
	r.Post("/api/v1/admin/jobs/night-times", jobsHandler.TriggerNightTimeRecompute())
	r.Get("/api/v1/admin/jobs/night-times", jobsHandler.LastNightTimeRecompute())
	r.Post("/api/v1/admin/aircraft/{id}/time-categories", jobsHandler.TriggerTimeCategoryRecompute())

	return &testEnv{router: r, flights: flights, settings: settings, job: job}
}

func (e *testEnv) do(method, target string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func decodeData[T any](t *testing.T, rr *httptest.ResponseRecorder) (*responses.APIResponse[T], *T) {
	t.Helper()
	var response responses.APIResponse[T]
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return &response, response.Data
}

func TestComputeNightTimeHandler_Success(t *testing.T) {
	env := newTestEnv()

	// DXB 16:45 to HND 02:30 next day UTC
	rr := env.do("GET", "/api/v1/night-time?dept=omdb&dest=RJTT&date=2019-12-01&tofb=1645&tonb=02:30", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	response, data := decodeData[responses.NightTimeResponse](t, rr)
	if response.Status != "ok" {
		t.Errorf("Expected status ok, got %s", response.Status)
	}
	if data.BlockMinutes != 585 || data.NightMinutes != 388 || data.NightTime != "06:28" {
		t.Errorf("Unexpected night time %+v", data)
	}
	if !data.TakeOffNight || data.LandingNight {
		t.Errorf("Expected night takeoff and day landing, got %+v", data)
	}
	if data.Dept != "OMDB" {
		t.Errorf("Expected normalised dept, got %s", data.Dept)
	}
}

func TestComputeNightTimeHandler_BlockParam(t *testing.T) {
	env := newTestEnv()

	rr := env.do("GET", "/api/v1/night-time?dept=KJFK&dest=EGLL&date=2021-01-15&tofb=2330&block=420", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	_, data := decodeData[responses.NightTimeResponse](t, rr)
	if data.NightMinutes != 420 {
		t.Errorf("Expected all night, got %d", data.NightMinutes)
	}
}

func TestComputeNightTimeHandler_Errors(t *testing.T) {
	env := newTestEnv()

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"missing dest", "dept=KJFK&date=2021-01-15&tofb=2330&block=60", http.StatusBadRequest},
		{"bad tofb", "dept=KJFK&dest=EGLL&date=2021-01-15&tofb=2460&block=60", http.StatusBadRequest},
		{"no duration", "dept=KJFK&dest=EGLL&date=2021-01-15&tofb=2330", http.StatusBadRequest},
		{"negative block", "dept=KJFK&dest=EGLL&date=2021-01-15&tofb=2330&block=-5", http.StatusBadRequest},
		{"block over a week", "dept=KJFK&dest=EGLL&date=2021-01-15&tofb=2330&block=10081", http.StatusBadRequest},
		{"block overflowing int", "dept=KJFK&dest=EGLL&date=2021-01-15&tofb=2330&block=9223372036854775807", http.StatusBadRequest},
		{"bad date", "dept=KJFK&dest=EGLL&date=15.01.2021&tofb=2330&block=60", http.StatusBadRequest},
		{"unknown airport", "dept=KJFK&dest=ZZZZ&date=2021-01-15&tofb=2330&block=60", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do("GET", "/api/v1/night-time?"+tt.query, nil)
			if rr.Code != tt.want {
				t.Errorf("Expected status %d, got %d", tt.want, rr.Code)
			}
			response, _ := decodeData[any](t, rr)
			if response.Status != "error" || response.Error == "" {
				t.Errorf("Expected error envelope, got %+v", response)
			}
		})
	}
}

func TestIsNightHandler(t *testing.T) {
	env := newTestEnv()

	rr := env.do("GET", "/api/v1/is-night?airport=EGLL&at=2021-12-21T00:00:00Z", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	_, data := decodeData[responses.IsNightResponse](t, rr)
	if !data.IsNight {
		t.Error("Expected midnight at Heathrow to be night")
	}

	if rr := env.do("GET", "/api/v1/is-night?airport=EGLL&at=yesterday", nil); rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for bad time, got %d", rr.Code)
	}
	if rr := env.do("GET", "/api/v1/is-night?airport=ZZZZ", nil); rr.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown airport, got %d", rr.Code)
	}
}

func TestDistanceHandler(t *testing.T) {
	env := newTestEnv()

	rr := env.do("GET", "/api/v1/distance?dept=KJFK&dest=EGLL", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	_, data := decodeData[responses.DistanceResponse](t, rr)
	if data.DistanceNM < 2950 || data.DistanceNM > 3050 {
		t.Errorf("Expected about 3000 nm, got %f", data.DistanceNM)
	}
}

func TestNightAngleHandlers(t *testing.T) {
	env := newTestEnv()
	env.settings.angle = -0.833

	rr := env.do("GET", "/api/v1/settings/night-angle", nil)
	_, angle := decodeData[responses.NightAngleResponse](t, rr)
	if angle.NightAngle != -0.833 {
		t.Errorf("Expected -0.833, got %f", angle.NightAngle)
	}

	rr = env.do("PUT", "/api/v1/admin/settings/night-angle", []byte(`{"night_angle": -6}`))
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	_, update := decodeData[responses.NightAngleUpdateResponse](t, rr)
	if update.NightAngle != -6 || update.Recompute == nil || update.Recompute.Updated != 1 {
		t.Errorf("Expected update with recompute, got %+v", update)
	}
	if env.settings.angle != -6 {
		t.Errorf("Expected stored angle -6, got %f", env.settings.angle)
	}
	if env.flights.flights[0].TNight != 420 {
		t.Errorf("Expected flight recomputed, got %d night minutes", env.flights.flights[0].TNight)
	}

	for _, body := range []string{`{"night_angle": 120}`, `{}`, `nope`} {
		if rr := env.do("PUT", "/api/v1/admin/settings/night-angle", []byte(body)); rr.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for %s, got %d", body, rr.Code)
		}
	}
}

func TestJobsHandler_NightTimes(t *testing.T) {
	env := newTestEnv()

	if rr := env.do("GET", "/api/v1/admin/jobs/night-times", nil); rr.Code != http.StatusNotFound {
		t.Errorf("Expected 404 before any run, got %d", rr.Code)
	}

	rr := env.do("POST", "/api/v1/admin/jobs/night-times", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	_, result := decodeData[responses.RecomputeResponse](t, rr)
	if result.Job != "recompute_night_times" || result.Updated != 1 {
		t.Errorf("Unexpected result %+v", result)
	}

	rr = env.do("GET", "/api/v1/admin/jobs/night-times", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	_, last := decodeData[responses.RecomputeResponse](t, rr)
	if last.StartedAt.IsZero() || time.Since(last.StartedAt) > time.Minute {
		t.Errorf("Expected recent start time, got %s", last.StartedAt)
	}
}

func TestJobsHandler_TimeCategories(t *testing.T) {
	env := newTestEnv()

	rr := env.do("POST", "/api/v1/admin/aircraft/7/time-categories", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if !env.flights.flights[0].TSPSE.Valid || env.flights.flights[0].TSPSE.Int64 != 420 {
		t.Errorf("Expected single pilot single engine time, got %+v", env.flights.flights[0].TSPSE)
	}

	if rr := env.do("POST", "/api/v1/admin/aircraft/8/time-categories", nil); rr.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown aircraft, got %d", rr.Code)
	}
	if rr := env.do("POST", "/api/v1/admin/aircraft/abc/time-categories", nil); rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for bad id, got %d", rr.Code)
	}
}
