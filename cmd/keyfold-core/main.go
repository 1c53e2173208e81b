package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/keyfold/keyfold-core/internal/adapters/driven/auth"
	"github.com/keyfold/keyfold-core/internal/adapters/driven/memory"
	"github.com/keyfold/keyfold-core/internal/adapters/driven/postgres"
	redisadapter "github.com/keyfold/keyfold-core/internal/adapters/driven/redis"
	httpadapter "github.com/keyfold/keyfold-core/internal/adapters/driving/http"
	"github.com/keyfold/keyfold-core/internal/config"
	"github.com/keyfold/keyfold-core/internal/core/ports/driven"
	"github.com/keyfold/keyfold-core/internal/core/services"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	logger.Info("keyfold-core starting", "version", version, "store", cfg.StoreBackend)

	ctx := context.Background()

	// ===== User store =====
	var store driven.UserStore
	switch cfg.StoreBackend {
	case config.StorePostgres:
		db, err := postgres.Connect(ctx, postgres.DefaultConfig(cfg.DatabaseURL))
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := db.InitSchema(ctx); err != nil {
			log.Fatalf("failed to initialize schema: %v", err)
		}
		store = postgres.NewUserStore(db)
		logger.Info("postgres connected")

	case config.StoreRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to parse Redis URL: %v", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatalf("failed to connect to Redis: %v", err)
		}
		defer client.Close()

		store = redisadapter.NewUserStore(client)
		logger.Info("redis connected")

	default:
		store = memory.NewUserStore()
		logger.Warn("using in-memory store; users do not survive restarts")
	}

	// ===== Engine =====
	hasher := auth.NewArgon2idHasher(cfg.PasswordSalt)
	signer := auth.NewJWTSigner(cfg.TokenSecret, cfg.TokenIssuer, cfg.TokenLifetime)
	authService := services.NewAuthService(store, hasher, signer)

	// ===== HTTP server =====
	srv := httpadapter.NewServer(httpadapter.Config{
		Host: cfg.Host,
		Port: cfg.Port,
	}, authService, logger)

	if err := srv.Start(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
