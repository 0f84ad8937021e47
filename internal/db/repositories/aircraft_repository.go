package repositories

import (
	"context"
	"errors"
	"fmt"

	gormModels "openpilotlog/nightlog/internal/models/gorm"

	"gorm.io/gorm"
)

var ErrAircraftNotFound = errors.New("aircraft not found")

type AircraftRepository struct {
	db *gorm.DB
}

// NewAircraftRepository creates a new GORM-based aircraft (tails) repository
func NewAircraftRepository(db *gorm.DB) *AircraftRepository {
	return &AircraftRepository{db: db}
}

// FindByID fetches a single aircraft
func (r *AircraftRepository) FindByID(ctx context.Context, id uint) (*gormModels.Aircraft, error) {
	var aircraft gormModels.Aircraft

	err := r.db.WithContext(ctx).
		Where("tail_id = ?", id).
		First(&aircraft).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrAircraftNotFound, id)
		}
		return nil, fmt.Errorf("failed to fetch aircraft: %w", err)
	}

	return &aircraft, nil
}

// Create inserts a new aircraft
func (r *AircraftRepository) Create(ctx context.Context, aircraft *gormModels.Aircraft) error {
	if err := r.db.WithContext(ctx).Create(aircraft).Error; err != nil {
		return fmt.Errorf("failed to create aircraft: %w", err)
	}
	return nil
}
