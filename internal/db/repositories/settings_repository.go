package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"openpilotlog/nightlog/internal/calc"
	"openpilotlog/nightlog/internal/constants"

	"github.com/jmoiron/sqlx"
)

var ErrInvalidSetting = errors.New("invalid setting value")

// SettingsRepo reads and writes the key/value settings table with plain SQL.
// Queries are written with '?' placeholders and rebound for the driver in use.
type SettingsRepo struct {
	db *sqlx.DB
}

func NewSettingsRepo(db *sqlx.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// Get returns the raw value of a setting and whether it exists
func (r *SettingsRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.GetContext(ctx, &value, r.db.Rebind(constants.GetSettingByKey), key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return value, true, nil
}

// Set inserts or replaces a setting
func (r *SettingsRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(constants.UpsertSetting), key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write setting %s: %w", key, err)
	}
	return nil
}

// ReadNightAngle returns the configured night angle, or calc.DefaultNightAngle when unset
func (r *SettingsRepo) ReadNightAngle(ctx context.Context) (float64, error) {
	raw, found, err := r.Get(ctx, constants.SettingNightAngle)
	if err != nil {
		return 0, err
	}
	if !found || strings.TrimSpace(raw) == "" {
		return calc.DefaultNightAngle, nil
	}

	angle, err := parseNightAngle(raw)
	if err != nil {
		return 0, err
	}
	return angle, nil
}

// WriteNightAngle stores a new night angle after validating it
func (r *SettingsRepo) WriteNightAngle(ctx context.Context, angle float64) error {
	if err := ValidateNightAngle(angle); err != nil {
		return err
	}
	return r.Set(ctx, constants.SettingNightAngle, strconv.FormatFloat(angle, 'f', -1, 64))
}

// ValidateNightAngle accepts solar elevation angles between -90 and 90 degrees
func ValidateNightAngle(angle float64) error {
	if math.IsNaN(angle) || angle < -90 || angle > 90 {
		return fmt.Errorf("%w: night angle %v outside [-90, 90]", ErrInvalidSetting, angle)
	}
	return nil
}

func parseNightAngle(raw string) (float64, error) {
	angle, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: night angle %q", ErrInvalidSetting, raw)
	}
	if err := ValidateNightAngle(angle); err != nil {
		return 0, err
	}
	return angle, nil
}
