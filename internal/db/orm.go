package db

import (
	"fmt"

	"openpilotlog/nightlog/internal/config"
	"openpilotlog/nightlog/internal/logging"
	gormModels "openpilotlog/nightlog/internal/models/gorm"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitORM opens the logbook database for the configured driver and migrates the schema
func InitORM(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.PostgresDSN())
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.DBDriver, err)
	}

	if cfg.DBDriver == config.DriverSQLite {
		// sqlite only allows a single writer
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	logging.Info("Connected to logbook database via GORM", "driver", cfg.DBDriver)
	return db, nil
}

// Migrate creates or updates the logbook tables
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&gormModels.Airport{},
		&gormModels.Aircraft{},
		&gormModels.Flight{},
		&gormModels.Setting{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
