package repositories

import (
	"context"
	"fmt"

	gormModels "openpilotlog/nightlog/internal/models/gorm"

	"gorm.io/gorm"
)

// flightBatchSize bounds how many flights are held in memory during a pass
const flightBatchSize = 200

// FlightVisitor is called once per flight. Returning an error stops the iteration.
type FlightVisitor func(ctx context.Context, flight *gormModels.Flight) error

type FlightRepository struct {
	db *gorm.DB
}

// NewFlightRepository creates a new GORM-based flight repository
func NewFlightRepository(db *gorm.DB) *FlightRepository {
	return &FlightRepository{db: db}
}

// ForEachFlight visits every flight in the logbook in primary key order
func (r *FlightRepository) ForEachFlight(ctx context.Context, visit FlightVisitor) error {
	return r.forEach(ctx, r.db.WithContext(ctx), visit)
}

// ForEachFlightUsingAircraft visits every flight logged on the given aircraft
func (r *FlightRepository) ForEachFlightUsingAircraft(ctx context.Context, aircraftID uint, visit FlightVisitor) error {
	return r.forEach(ctx, r.db.WithContext(ctx).Where("acft = ?", aircraftID), visit)
}

func (r *FlightRepository) forEach(ctx context.Context, query *gorm.DB, visit FlightVisitor) error {
	var batch []gormModels.Flight

	result := query.FindInBatches(&batch, flightBatchSize, func(tx *gorm.DB, _ int) error {
		for i := range batch {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := visit(ctx, &batch[i]); err != nil {
				return err
			}
		}
		return nil
	})

	if result.Error != nil {
		return fmt.Errorf("failed to iterate flights: %w", result.Error)
	}
	return nil
}

// Commit writes back every column of the flight
func (r *FlightRepository) Commit(ctx context.Context, flight *gormModels.Flight) error {
	if err := r.db.WithContext(ctx).Save(flight).Error; err != nil {
		return fmt.Errorf("failed to commit flight %d: %w", flight.ID, err)
	}
	return nil
}

// Create inserts a new flight
func (r *FlightRepository) Create(ctx context.Context, flight *gormModels.Flight) error {
	if err := r.db.WithContext(ctx).Create(flight).Error; err != nil {
		return fmt.Errorf("failed to create flight: %w", err)
	}
	return nil
}

// GetByID fetches a single flight
func (r *FlightRepository) GetByID(ctx context.Context, id uint) (*gormModels.Flight, error) {
	var flight gormModels.Flight
	if err := r.db.WithContext(ctx).First(&flight, "flight_id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch flight %d: %w", id, err)
	}
	return &flight, nil
}
