package db

import (
	"fmt"
	"time"

	"openpilotlog/nightlog/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"gorm.io/gorm"
)

// InitSQLX returns a sqlx handle for the raw settings queries and health checks.
// Postgres gets its own lib/pq connection; sqlite shares the GORM pool.
func InitSQLX(cfg *config.Config, orm *gorm.DB) (*sqlx.DB, error) {
	if cfg.DBDriver != config.DriverPostgres {
		return WrapORM(orm)
	}

	var (
		db  *sqlx.DB
		err error
	)
	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("postgres", cfg.PostgresDSN())
		if err == nil {
			return db, nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return nil, fmt.Errorf("failed to connect to postgres: %w", err)
}

// WrapORM exposes the connection pool behind a GORM sqlite handle to sqlx
func WrapORM(orm *gorm.DB) (*sqlx.DB, error) {
	sqlDB, err := orm.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlx.NewDb(sqlDB, "sqlite3"), nil
}
