// Command recompute runs a batch recompute against the logbook database and
// exits. Configuration is read from the same environment as the server.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"openpilotlog/nightlog/internal/api"
	"openpilotlog/nightlog/internal/config"
	"openpilotlog/nightlog/internal/db"
	"openpilotlog/nightlog/internal/logging"
	"openpilotlog/nightlog/internal/services"
)

func main() {
	airportsFile := flag.String("airports", "", "airports JSON document to import before recomputing")
	aircraftID := flag.Uint("aircraft", 0, "recompute time categories for this aircraft instead of night times")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	orm, err := db.InitORM(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to open database (GORM): %v", err)
	}
	sqlDB, err := db.InitSQLX(cfg, orm)
	if err != nil {
		log.Fatalf("❌ Failed to open database (sqlx): %v", err)
	}

	deps, err := api.InitDependencies(cfg, orm, sqlDB, nil)
	if err != nil {
		log.Fatalf("❌ Failed to initialize dependencies: %v", err)
	}
	defer deps.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *airportsFile != "" {
		f, err := os.Open(*airportsFile)
		if err != nil {
			log.Fatalf("❌ Failed to open airports file: %v", err)
		}
		count, err := deps.Services.AirportLoader.LoadFromJSON(ctx, f)
		f.Close()
		if err != nil {
			log.Fatalf("❌ Airport import failed: %v", err)
		}
		logging.Info("Airports imported", "count", count, "file", *airportsFile)
	}

	var result *services.RecomputeResult
	if *aircraftID != 0 {
		result, err = deps.Services.FlightTimes.RecomputeTimeCategories(ctx, *aircraftID)
	} else {
		result, err = deps.Services.FlightTimes.RecomputeNightTimes(ctx)
	}
	if result != nil {
		logging.Info("Recompute finished",
			"job", result.Job,
			"visited", result.Visited,
			"updated", result.Updated,
			"failed", result.Failed,
			"duration_ms", result.Duration.Milliseconds(),
		)
	}
	if err != nil {
		logging.Error("Recompute failed", "error", err)
		logging.Close()
		os.Exit(1)
	}
	if result.Failed > 0 {
		logging.Close()
		os.Exit(2)
	}
}
