package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"spendly-api/internal/api"
	"spendly-api/internal/auth"
	"spendly-api/internal/config"
	"spendly-api/internal/ratelimit"
	"spendly-api/internal/storage/mongo"
	"spendly-api/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Initialize JWT with config
	auth.InitJWT(cfg)

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := mongo.New(ctx, cfg.Mongo.URI, cfg.Mongo.DBName)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close(context.Background())
	slog.Info("Storage initialized", "database", cfg.Mongo.DBName)

	var limiter *ratelimit.RateLimiter
	if cfg.Redis.URL != "" {
		limiter, err = ratelimit.NewRateLimiter(cfg.Redis.URL)
		if err != nil {
			slog.Error("Failed to initialize rate limiter", "error", err)
			os.Exit(1)
		}
		defer limiter.Close()
	} else {
		slog.Warn("REDIS_URL not set, rate limiting disabled")
	}

	router := api.SetupRouter(store, limiter)

	addr := ":" + cfg.Server.Port
	slog.Info("Server listening", "addr", addr)
	if err := router.Run(addr); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
