package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/funmap-service/internal/config"
	"github.com/funmap-service/internal/infrastructure/overpass"
	"github.com/funmap-service/internal/pkg/logger"
	"github.com/funmap-service/internal/repository/cache"
	"github.com/funmap-service/internal/repository/postgres"
	"github.com/funmap-service/internal/usecase"
	"github.com/funmap-service/internal/worker"
	"github.com/funmap-service/internal/worker/refresh"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Funmap Refresh Worker")
	log.Info("Configuration loaded",
		zap.Duration("refresh_interval", cfg.Worker.RefreshInterval),
		zap.Int("retry_rounds", cfg.Worker.RetryRounds),
		zap.Duration("retry_delay", cfg.Worker.RetryDelay),
		zap.Float64("drop_threshold", cfg.Worker.DropThreshold))

	// 3. Build the Overpass query up front, fail fast on bad configuration
	query, err := overpass.NewQueryBuilder().
		Regions(cfg.Query.Regions...).
		Rules(overpass.RulesFromConfig(&cfg.Query)...).
		Timeout(cfg.Overpass.RequestTimeout).
		Build()
	if err != nil {
		log.Fatal("Invalid query configuration", zap.Error(err))
	}

	// 4. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 5. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 6. Initialize repositories
	overpassRepo := overpass.NewOverpassClient(&cfg.Overpass, log)
	venueRepo := postgres.NewVenueRepository(db)
	snapshotRepo := postgres.NewSnapshotRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)

	// 7. Initialize use cases
	snapshotUC := usecase.NewSnapshotUseCase(
		overpassRepo,
		venueRepo,
		snapshotRepo,
		cacheRepo,
		log,
		usecase.SnapshotConfig{
			Query:         query,
			DropThreshold: cfg.Worker.DropThreshold,
			GeoJSONTTL:    cfg.Cache.GeoJSONCacheTTL,
		},
	)

	// 8. Initialize workers
	refreshWorker := refresh.NewRefreshWorker(
		snapshotUC,
		refresh.Config{
			Interval:    cfg.Worker.RefreshInterval,
			RetryRounds: cfg.Worker.RetryRounds,
			RetryDelay:  cfg.Worker.RetryDelay,
		},
		log,
	)

	// 9. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(refreshWorker)

	// 10. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
