package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"calendar-be/internal/cache"
	"calendar-be/internal/config"
	"calendar-be/internal/controllers"
	"calendar-be/internal/database"
	"calendar-be/internal/jwt"
	"calendar-be/internal/repository"
	"calendar-be/internal/server"
	"calendar-be/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Logging)
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()
	logger.Info().Msg("connected to database")

	if err := database.RunMigrations(ctx, db); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Initialize Redis cache (optional - continue if Redis is unavailable)
	var eventCache cache.EventCache
	if cfg.RedisURL != "" {
		eventCache, err = cache.NewRedisCache(ctx, cfg.RedisURL, cfg.EventCacheTTL)
		if err != nil {
			logger.Warn().Err(err).Msg("continuing without event cache")
			eventCache = nil
		} else {
			defer eventCache.Close()
			logger.Info().Msg("connected to Redis cache")
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewCachedEventRepository(repository.NewEventRepository(db), eventCache, logger)

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWTSecret, cfg.JWTTTL)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	eventService := service.NewEventService(eventRepo)

	// Initialize controllers
	authController := controllers.NewAuthController(authService)
	eventController := controllers.NewEventController(eventService)

	router := server.NewRouter(logger, jwtService, authController, eventController)

	if err := server.Run(ctx, logger, ":"+cfg.Port, router); err != nil {
		logger.Error().Err(err).Msg("server stopped")
		return
	}
	logger.Info().Msg("shutdown complete")
}
