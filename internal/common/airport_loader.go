package common

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"openpilotlog/nightlog/internal/calc"
	"openpilotlog/nightlog/internal/db/repositories"
	"openpilotlog/nightlog/internal/logging"
	"openpilotlog/nightlog/internal/models/gorm"
)

var ErrNoAirports = errors.New("no valid airports found")

// AirportLoaderService replaces the airport reference table from a JSON document
type AirportLoaderService struct {
	repo     *repositories.AirportRepository
	resolver *CoordinateResolver
}

// RawAirportData represents the structure of airport data from JSON
type RawAirportData struct {
	ICAO      string     `json:"icao"`
	IATA      string     `json:"iata"`
	Name      string     `json:"name"`
	City      string     `json:"city"`
	State     string     `json:"state"`
	Country   string     `json:"country"`
	Elevation RoundedInt `json:"elevation"`
	Lat       float64    `json:"lat"`
	Lon       float64    `json:"lon"`
	TZ        string     `json:"tz"`
}

// NewAirportLoaderService creates a new airport loader service. resolver may be
// nil; when set its cache is dropped after every successful import.
func NewAirportLoaderService(repo *repositories.AirportRepository, resolver *CoordinateResolver) *AirportLoaderService {
	return &AirportLoaderService{
		repo:     repo,
		resolver: resolver,
	}
}

// LoadFromJSON loads airports from a JSON reader
// Expected format: object with airport data as values
// Example: {"KJFK": {"icao": "KJFK", "name": "John F. Kennedy...", ...}}
func (s *AirportLoaderService) LoadFromJSON(ctx context.Context, reader io.Reader) (int, error) {
	var rawData map[string]RawAirportData
	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&rawData); err != nil {
		return 0, fmt.Errorf("failed to decode JSON: %w", err)
	}

	logging.Info("Decoded airport document", "records", len(rawData))

	airports := make([]gorm.Airport, 0, len(rawData))
	skipped := 0
	for _, rawAirport := range rawData {
		airport, ok := toAirport(rawAirport)
		if !ok {
			skipped++
			continue
		}
		airports = append(airports, airport)
	}

	if len(airports) == 0 {
		return 0, ErrNoAirports
	}

	logging.Info("Parsed airports", "valid", len(airports), "skipped", skipped)

	if err := s.repo.DeleteAll(ctx); err != nil {
		return 0, fmt.Errorf("failed to delete existing airports: %w", err)
	}

	if err := s.repo.BatchInsert(ctx, airports); err != nil {
		return 0, fmt.Errorf("failed to insert airports: %w", err)
	}

	if s.resolver != nil {
		s.resolver.Invalidate()
	}

	logging.Info("Successfully imported airports", "count", len(airports))

	return len(airports), nil
}

// GetStats returns statistics about loaded airports
func (s *AirportLoaderService) GetStats(ctx context.Context) (map[string]interface{}, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	stats := map[string]interface{}{
		"total_airports": count,
	}

	return stats, nil
}

func toAirport(raw RawAirportData) (gorm.Airport, bool) {
	timezone := raw.TZ
	if timezone == "" && raw.State != "" {
		timezone = raw.State
	}

	var elevation sql.NullInt64
	if raw.Elevation != 0 {
		elevation = sql.NullInt64{Int64: int64(raw.Elevation), Valid: true}
	}

	airport := gorm.Airport{
		ICAO:      strings.ToUpper(strings.TrimSpace(raw.ICAO)),
		IATA:      strings.ToUpper(strings.TrimSpace(raw.IATA)),
		Name:      strings.TrimSpace(raw.Name),
		City:      strings.TrimSpace(raw.City),
		Country:   strings.TrimSpace(raw.Country),
		Elevation: elevation,
		Latitude:  raw.Lat,
		Longitude: raw.Lon,
		Timezone:  timezone,
	}

	if airport.ICAO == "" || airport.Name == "" || len(airport.ICAO) > 4 || len(airport.IATA) > 3 {
		return gorm.Airport{}, false
	}
	if _, err := calc.NewGeoCoordinate(raw.Lat, raw.Lon); err != nil {
		return gorm.Airport{}, false
	}
	return airport, true
}
