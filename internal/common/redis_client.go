package common

import (
	"context"
	"time"

	"openpilotlog/nightlog/internal/config"
	"openpilotlog/nightlog/internal/logging"

	"github.com/redis/go-redis/v9"
)

func NewRedisClient(cfg *config.Config) *redis.Client {
	redisDB := 0 // Default DB

	addr := cfg.RedisAddr()
	logging.Info("Initializing Redis client", "addr", addr, "db", redisDB)

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.RedisPassword,
		DB:           redisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logging.Warn("Failed to ping Redis", "error", err)
		return client // Still return the client, connection pool will try to reconnect
	}

	logging.Info("Successfully connected to Redis")
	return client
}
