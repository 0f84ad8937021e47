package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"openpilotlog/nightlog/internal/api"
	"openpilotlog/nightlog/internal/config"
	"openpilotlog/nightlog/internal/db"
	"openpilotlog/nightlog/internal/logging"
	"openpilotlog/nightlog/internal/metrics"
	"openpilotlog/nightlog/internal/routes"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Night log service starting up",
		"environment", cfg.AppEnv,
		"db_driver", cfg.DBDriver,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	orm, err := db.InitORM(cfg)
	if err != nil {
		logging.Error("Failed to open database (GORM)", "driver", cfg.DBDriver, "error", err.Error())
		log.Fatalf("❌ Failed to open database (GORM): %v", err)
	}
	logging.Info("Connected to database (GORM)", "driver", cfg.DBDriver)

	sqlDB, err := db.InitSQLX(cfg, orm)
	if err != nil {
		logging.Error("Failed to open database (sqlx)", "driver", cfg.DBDriver, "error", err.Error())
		log.Fatalf("❌ Failed to open database (sqlx): %v", err)
	}
	logging.Info("Connected to database (sqlx)")

	metricsReg := metrics.NewMetricsRegistry()
	logging.Info("Prometheus metrics registry initialized")

	deps, err := api.InitDependencies(cfg, orm, sqlDB, metricsReg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize dependencies: %v", err)
	}
	defer deps.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	upSince := time.Now()
	router := routes.RegisterRoutes(ctx, cfg, deps, metricsReg, upSince)

	// Setup metrics endpoint outside of Chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router)
	logging.Info("Prometheus metrics endpoint registered at /metrics")

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logging.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.Error("Server shutdown failed", "error", err)
		}
	}()

	logging.Info("Server starting",
		"addr", cfg.HTTPAddr,
		"environment", cfg.AppEnv,
	)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("❌ Server failed: %v", err)
	}
	logging.Info("Server stopped")
}
