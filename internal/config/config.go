// Package config reads service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	AppEnv   string
	HTTPAddr string

	DBDriver   string
	SQLitePath string
	PGHost     string
	PGPort     string
	PGUser     string
	PGDB       string
	PGPassword string

	// RedisHost empty means the in-memory coordinate cache is used
	RedisHost     string
	RedisPort     string
	RedisPassword string
	CacheTTL      time.Duration

	AdminTokenSecret string

	// RecomputeInterval of 0 disables the scheduled night-time recompute
	RecomputeInterval time.Duration

	RateLimitRPS   float64
	RateLimitBurst int
}

// Load builds a Config from the environment, applying defaults for anything unset
func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		DBDriver:         getEnv("DB_DRIVER", DriverSQLite),
		SQLitePath:       getEnv("SQLITE_PATH", "logbook.db"),
		PGHost:           getEnv("PG_HOST", "localhost"),
		PGPort:           getEnv("PG_PORT", "5432"),
		PGUser:           os.Getenv("PG_USER"),
		PGDB:             os.Getenv("PG_DB"),
		PGPassword:       os.Getenv("PG_PASSWORD"),
		RedisHost:        os.Getenv("REDIS_HOST"),
		RedisPort:        getEnv("REDIS_PORT", "6379"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		AdminTokenSecret: os.Getenv("ADMIN_TOKEN_SECRET"),
	}

	var err error
	if cfg.CacheTTL, err = getSeconds("CACHE_TTL_SECONDS", 3600); err != nil {
		return nil, err
	}
	if cfg.RecomputeInterval, err = getDuration("RECOMPUTE_INTERVAL", 0); err != nil {
		return nil, err
	}
	if cfg.RateLimitRPS, err = getFloat("RATE_LIMIT_RPS", 5); err != nil {
		return nil, err
	}
	burst, err := getFloat("RATE_LIMIT_BURST", 10)
	if err != nil {
		return nil, err
	}
	cfg.RateLimitBurst = int(burst)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the combination of settings
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH must be set for the sqlite driver")
		}
	case DriverPostgres:
		if c.PGUser == "" || c.PGDB == "" {
			return errors.New("PG_USER and PG_DB must be set for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if c.RecomputeInterval < 0 {
		return errors.New("RECOMPUTE_INTERVAL must not be negative")
	}
	return nil
}

// PostgresDSN returns the connection string for the postgres driver
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGDB)
}

// RedisAddr returns host:port of the redis cache
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getSeconds(key string, fallback int) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return time.Duration(fallback) * time.Second, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return time.Duration(n) * time.Second, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
