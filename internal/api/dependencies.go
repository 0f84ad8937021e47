package api

import (
	"time"

	"openpilotlog/nightlog/internal/auth"
	"openpilotlog/nightlog/internal/common"
	"openpilotlog/nightlog/internal/config"
	"openpilotlog/nightlog/internal/db/repositories"
	"openpilotlog/nightlog/internal/logging"
	"openpilotlog/nightlog/internal/metrics"
	"openpilotlog/nightlog/internal/services"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Repositories struct {
	Airports *repositories.AirportRepository
	Flights  *repositories.FlightRepository
	Aircraft *repositories.AircraftRepository
	Settings *repositories.SettingsRepo
}

type Services struct {
	Cache         common.CacheInterface
	Resolver      *common.CoordinateResolver
	FlightTimes   *services.FlightTimesService
	AirportLoader *common.AirportLoaderService
	Tokens        *auth.TokenService
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services

	SQL   *sqlx.DB
	Redis *redis.Client // nil without REDIS_HOST
}

// InitDependencies wires repositories and services. The coordinate cache is
// redis when REDIS_HOST is set and reachable, in-process otherwise.
func InitDependencies(cfg *config.Config, orm *gorm.DB, sqlDB *sqlx.DB, metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {
	repos := &Repositories{
		Airports: repositories.NewAirportRepository(orm),
		Flights:  repositories.NewFlightRepository(orm),
		Aircraft: repositories.NewAircraftRepository(orm),
		Settings: repositories.NewSettingsRepo(sqlDB),
	}

	deps := &Dependencies{Repo: repos, SQL: sqlDB}

	var cache common.CacheInterface
	if cfg.RedisHost != "" {
		client := common.NewRedisClient(cfg)
		redisCache, err := common.NewRedisCacheService(client)
		if err != nil {
			logging.Warn("Redis unavailable, falling back to in-memory coordinate cache", "error", err)
			client.Close()
		} else {
			deps.Redis = client
			cache = redisCache
		}
	}
	if cache == nil {
		cache = common.NewCacheService(cfg.CacheTTL, 10*time.Minute)
	}

	resolver := common.NewCoordinateResolver(repos.Airports, cache, cfg.CacheTTL, metricsReg)

	deps.Services = &Services{
		Cache:    cache,
		Resolver: resolver,
		FlightTimes: services.NewFlightTimesService(
			resolver,
			repos.Flights,
			repos.Aircraft,
			repos.Settings,
			metricsReg,
			logging.GetLogger(),
		),
		AirportLoader: common.NewAirportLoaderService(repos.Airports, resolver),
		Tokens:        auth.NewTokenService([]byte(cfg.AdminTokenSecret)),
	}

	return deps, nil
}

// Close releases the cache connection
func (d *Dependencies) Close() error {
	return d.Services.Cache.Close()
}
