package main

// @title Funmap Service API
// @version 1.0.0
// @description Сервис карты семейных развлечений на данных OpenStreetMap. Загружает через Overpass API зоопарки, аквапарки, аттракционы и спортивные площадки в настроенных регионах и отдаёт их в виде GeoJSON точек.
// @description
// @description Основные возможности:
// @description - Полная выгрузка площадок в формате GeoJSON FeatureCollection
// @description - Поиск площадок в радиусе от точки с сортировкой по дистанции
// @description - Распределение площадок по категориям и видам
// @description - Ручной запуск обновления данных из Overpass
// @description - Метаданные снимков и статистика

// @contact.name API Support
// @contact.email support@funmap-service.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/funmap-service/docs/swagger"
	"github.com/funmap-service/internal/config"
	httpDelivery "github.com/funmap-service/internal/delivery/http"
	"github.com/funmap-service/internal/delivery/http/handler"
	"github.com/funmap-service/internal/infrastructure/overpass"
	"github.com/funmap-service/internal/pkg/logger"
	"github.com/funmap-service/internal/repository/cache"
	"github.com/funmap-service/internal/repository/postgres"
	"github.com/funmap-service/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Funmap Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Build the Overpass query up front: a broken region or filter
	// configuration must fail here, not on the first fetch
	query, err := overpass.NewQueryBuilder().
		Regions(cfg.Query.Regions...).
		Rules(overpass.RulesFromConfig(&cfg.Query)...).
		Timeout(cfg.Overpass.RequestTimeout).
		Build()
	if err != nil {
		log.Fatal("Invalid query configuration", zap.Error(err))
	}
	log.Info("Overpass query prepared",
		zap.Int64s("regions", cfg.Query.Regions),
		zap.Int("timeout", cfg.Overpass.RequestTimeout))

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
	log.Info("PostgreSQL connected")

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
	log.Info("Redis connected")

	// 6. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 7. Initialize Repositories
	overpassRepo := overpass.NewOverpassClient(&cfg.Overpass, log)
	venueRepo := postgres.NewVenueRepository(db)
	snapshotRepo := postgres.NewSnapshotRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)

	log.Info("Repositories initialized")

	// 8. Initialize Use Cases
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

	venueUC := usecase.NewVenueUseCase(
		venueRepo,
		snapshotRepo,
		cacheRepo,
		log,
		cfg.Cache.GeoJSONCacheTTL,
	)

	statsUC := usecase.NewStatsUseCase(
		venueRepo,
		snapshotRepo,
		cacheRepo,
		log,
		cfg.Cache.StatsCacheTTL,
	)

	log.Info("Use cases initialized")

	// 9. Initialize HTTP Handlers
	venueHandler := handler.NewVenueHandler(venueUC, log)
	snapshotHandler := handler.NewSnapshotHandler(venueUC, snapshotUC, log)
	statsHandler := handler.NewStatsHandler(statsUC, log)

	log.Info("HTTP handlers initialized")

	// 10. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		venueHandler,
		snapshotHandler,
		statsHandler,
	)

	log.Info("HTTP server initialized")

	// 11. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 12. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
