package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/api"
	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/core/service"
	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/infrastructure/config"
	mongodb "github.com/Rakibul29h/LocalChefBazaar-Server/internal/infrastructure/db/mongo"
	redisdb "github.com/Rakibul29h/LocalChefBazaar-Server/internal/infrastructure/db/redis"
	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/infrastructure/queue"
	"github.com/Rakibul29h/LocalChefBazaar-Server/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	// --- Stores ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index bootstrap failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Core wiring ---
	userRepo := mongodb.NewUserRepository(db)
	requestRepo := mongodb.NewRequestRepository(db)
	roleCache := redisdb.NewRoleCache(rdb, userRepo)

	sessions := service.NewSessionService(cfg.JWTSecret, 24*time.Hour)
	users := service.NewUserService(userRepo, roleCache, log)
	allocator := service.NewChefIDAllocator(userRepo)
	requests := service.NewRequestService(requestRepo, userRepo, allocator, roleCache, log)

	dispatcher := queue.NewDispatcher(0, users, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(api.Deps{
		Sessions:       sessions,
		Users:          users,
		Requests:       requests,
		Roles:          roleCache,
		Touch:          dispatcher.Enqueue,
		AllowedOrigins: cfg.AllowedOrigins,
		DB:             db,
		RDB:            rdb,
		Log:            log,
	})

	// --- Serve until signalled ---
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
}
