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

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/srgjo27/flight_booking/internal/adapter/apiclient"
	"github.com/srgjo27/flight_booking/internal/adapter/handler"
	"github.com/srgjo27/flight_booking/internal/adapter/repository/postgres"
	"github.com/srgjo27/flight_booking/internal/adapter/repository/redisstore"
	"github.com/srgjo27/flight_booking/internal/core/ports"
	"github.com/srgjo27/flight_booking/internal/core/services"
	"github.com/srgjo27/flight_booking/internal/platform/config"
	"github.com/srgjo27/flight_booking/internal/platform/database"
	"github.com/srgjo27/flight_booking/internal/platform/logger"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zl.Sync()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	zl.Info("connecting to redis", zap.String("addr", cfg.RedisAddr))
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		zl.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()
	zl.Info("redis connected")

	var favoriteStore ports.FavoriteRepository
	if cfg.FavoritesStore == config.FavoritesPostgres {
		db, err := database.NewPostgresDB(ctx, database.Config{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			DBName:   cfg.DBName,
		}, zl)
		if err != nil {
			zl.Fatal("failed to connect to db after retries", zap.Error(err))
		}
		defer db.Close()

		repo := postgres.NewFavoriteRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			zl.Fatal("failed to prepare schema", zap.Error(err))
		}
		favoriteStore = redisstore.NewFavoriteCache(redisClient, repo, cfg.FavoritesCacheTTL, zl)
	} else {
		favoriteStore = redisstore.NewFavoriteCache(redisClient, nil, 0, zl)
	}

	tokens := redisstore.NewTokenStore(redisClient, cfg.TokenTTL)

	client, err := apiclient.New(apiclient.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.APITimeout,
		Tokens:  tokens,
		Logger:  zl,
	})
	if err != nil {
		zl.Fatal("failed to build api client", zap.Error(err))
	}

	sessions := services.NewSessionManager(services.SessionManagerConfig{
		NewBackend: func(sessionID string) services.Backend {
			sc := client.ForSession(sessionID)
			return services.Backend{Flights: sc, Destinations: sc, Bookings: sc, Users: sc}
		},
		Favorites: favoriteStore,
		Tokens:    tokens,
		Validate:  validator.New(),
		IdleTTL:   cfg.SessionTTL,
		Logger:    zl,
	})

	go sessions.RunBackgroundCleanup(ctx)

	limiter := handler.NewRateLimiter(cfg.RateLimitPerMin, cfg.RateLimitBurst, cfg.SessionTTL, zl)
	go limiter.RunCleanup(ctx)
	router := handler.NewRouter(handler.NewHandler(sessions, limiter, zl))

	server := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		zl.Info("server starting", zap.String("addr", server.Addr), zap.String("api", cfg.APIBaseURL))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server startup failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	zl.Info("shutting down server")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zl.Fatal("server forced to shutdown", zap.Error(err))
	}

	zl.Info("server exiting")
}
