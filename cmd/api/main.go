package main

// @title Saved Places Service API
// @version 1.0.0
// @description Service for saving points of interest from the places provider into trips and querying them by proximity.
// @description
// @description Main capabilities:
// @description - Ingest provider place payloads into a user's trips
// @description - Cache derived place attributes with a bounded retention window
// @description - Find saved places near a position, nearest first
// @description - Manage saved-place status (WISHLIST / VISITED / SKIPPED) and notes
// @description - Statistics over stored data

// @contact.name API Support
// @contact.email support@saved-places-service.com

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

	_ "github.com/saved-places-service/docs/swagger"
	"github.com/saved-places-service/internal/config"
	httpDelivery "github.com/saved-places-service/internal/delivery/http"
	"github.com/saved-places-service/internal/delivery/http/handler"
	"github.com/saved-places-service/internal/pkg/logger"
	"github.com/saved-places-service/internal/repository/cache"
	"github.com/saved-places-service/internal/repository/postgres"
	redisrepo "github.com/saved-places-service/internal/repository/redis"
	"github.com/saved-places-service/internal/usecase"
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

	log.Info("Starting Saved Places Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.Duration("place_cache_retention", cfg.Cache.PlaceRetention),
	)

	// 3. Connect to PostgreSQL
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

	// 4. Connect to Redis
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

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize Repositories
	placeRepo := postgres.NewPlaceRepository(db)
	savedRepo := postgres.NewSavedPlaceRepository(db)
	tripRepo := postgres.NewTripRepository(db)
	statsRepo := postgres.NewStatsRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisrepo.NewStreamRepository(redisClient.Client(), log)

	log.Info("Repositories initialized")

	// 7. Initialize Use Cases
	ingestUC := usecase.NewIngestUseCase(savedRepo, tripRepo, log)

	nearbyUC := usecase.NewNearbyUseCase(
		savedRepo,
		placeRepo,
		streamRepo,
		cfg.Cache.PlaceRetention,
		log,
	)

	savedUC := usecase.NewSavedPlaceUseCase(
		savedRepo,
		placeRepo,
		cfg.Cache.PlaceRetention,
		log,
	)

	placeUC := usecase.NewPlaceUseCase(
		placeRepo,
		cacheRepo,
		cfg.Cache.PlaceRetention,
		cfg.Cache.PlaceListTTL,
		log,
	)

	statsUC := usecase.NewStatsUseCase(
		statsRepo,
		cacheRepo,
		cfg.Cache.PlaceRetention,
		cfg.Cache.StatsTTL,
		log,
	)

	log.Info("Use cases initialized")

	// 8. Initialize Handlers
	placeHandler := handler.NewPlaceHandler(ingestUC, placeUC, log)
	savedHandler := handler.NewSavedPlaceHandler(savedUC, nearbyUC, log)
	statsHandler := handler.NewStatsHandler(statsUC, log)

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		placeHandler,
		savedHandler,
		statsHandler,
	)

	// 10. Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Saved Places Service started successfully")

	// 11. Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutdown signal received")

	// 12. Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Saved Places Service stopped")
}
