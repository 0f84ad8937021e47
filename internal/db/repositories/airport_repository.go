package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"openpilotlog/nightlog/internal/calc"
	"openpilotlog/nightlog/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

var ErrAirportNotFound = errors.New("airport not found")

// AirportRepository handles airport table operations
type AirportRepository struct {
	db *gormlib.DB
}

// NewAirportRepository creates a new airport repository
func NewAirportRepository(db *gormlib.DB) *AirportRepository {
	return &AirportRepository{db: db}
}

// FindByICAO finds an airport by ICAO code (case-insensitive)
func (r *AirportRepository) FindByICAO(ctx context.Context, icao string) (*gorm.Airport, error) {
	return r.findBy(ctx, "icao", icao)
}

// FindByIATA finds an airport by IATA code (case-insensitive)
func (r *AirportRepository) FindByIATA(ctx context.Context, iata string) (*gorm.Airport, error) {
	return r.findBy(ctx, "iata", iata)
}

func (r *AirportRepository) findBy(ctx context.Context, column, code string) (*gorm.Airport, error) {
	var airport gorm.Airport

	err := r.db.WithContext(ctx).
		Where("UPPER("+column+") = UPPER(?)", strings.TrimSpace(code)).
		First(&airport).Error

	if err != nil {
		if errors.Is(err, gormlib.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &airport, nil
}

// Resolve looks up the coordinates of an airport by ICAO code, falling back
// to IATA for three letter identifiers.
func (r *AirportRepository) Resolve(ctx context.Context, ident string) (calc.GeoCoordinate, error) {
	ident = strings.ToUpper(strings.TrimSpace(ident))
	if ident == "" {
		return calc.GeoCoordinate{}, fmt.Errorf("%w: empty identifier", ErrAirportNotFound)
	}

	airport, err := r.FindByICAO(ctx, ident)
	if err != nil {
		return calc.GeoCoordinate{}, fmt.Errorf("failed to fetch airport %s: %w", ident, err)
	}
	if airport == nil && len(ident) == 3 {
		airport, err = r.FindByIATA(ctx, ident)
		if err != nil {
			return calc.GeoCoordinate{}, fmt.Errorf("failed to fetch airport %s: %w", ident, err)
		}
	}
	if airport == nil {
		return calc.GeoCoordinate{}, fmt.Errorf("%w: %s", ErrAirportNotFound, ident)
	}

	coord, err := calc.NewGeoCoordinate(airport.Latitude, airport.Longitude)
	if err != nil {
		return calc.GeoCoordinate{}, fmt.Errorf("airport %s: %w", ident, err)
	}
	return coord, nil
}

// BatchInsert inserts multiple airports
func (r *AirportRepository) BatchInsert(ctx context.Context, airports []gorm.Airport) error {
	return r.db.WithContext(ctx).
		CreateInBatches(airports, 100).Error
}

// DeleteAll deletes all airports (useful for re-importing)
func (r *AirportRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&gorm.Airport{}).Error
}

// Count returns total number of airports
func (r *AirportRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&gorm.Airport{}).Count(&count).Error
	return count, err
}
