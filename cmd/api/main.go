// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Vidora HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis when configured.
//  5. Run database migrations (idempotent).
//  6. Select the media store (S3 or local disk).
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/vidora/internal/api"
	"github.com/taibuivan/vidora/internal/core/comment"
	"github.com/taibuivan/vidora/internal/core/dashboard"
	"github.com/taibuivan/vidora/internal/core/like"
	"github.com/taibuivan/vidora/internal/core/playlist"
	"github.com/taibuivan/vidora/internal/core/subscription"
	"github.com/taibuivan/vidora/internal/core/tweet"
	"github.com/taibuivan/vidora/internal/core/video"
	"github.com/taibuivan/vidora/internal/platform/config"
	"github.com/taibuivan/vidora/internal/platform/constants"
	"github.com/taibuivan/vidora/internal/platform/migration"
	pgstore "github.com/taibuivan/vidora/internal/platform/postgres"
	redisstore "github.com/taibuivan/vidora/internal/platform/redis"
	"github.com/taibuivan/vidora/internal/platform/sec"
	"github.com/taibuivan/vidora/internal/platform/storage"
	"github.com/taibuivan/vidora/internal/users/account"
	"github.com/taibuivan/vidora/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("object_storage", cfg.UsesObjectStorage()),
		slog.Bool("stats_cache", cfg.RedisURL != ""),
	)

	// Startup deadline so misconfiguration fails fast instead of hanging.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis (optional) ───────────────────────────────────────────────
	var rdb *goredis.Client
	if cfg.RedisURL != "" {
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()
	}

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, cfg.Debug, log), "run migrations")

	// ── 6. Media Store ────────────────────────────────────────────────────
	var media storage.MediaStore
	var uploads http.Handler
	if cfg.UsesObjectStorage() {
		media, err = storage.NewS3Store(startupCtx, storage.S3Options{
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			Endpoint:      cfg.S3Endpoint,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
		must(log, err, "configure object storage")
	} else {
		local, err := storage.NewLocalStore(cfg.UploadDir, cfg.PublicBaseURL)
		must(log, err, "prepare upload directory")
		media = local
		uploads = http.FileServer(http.Dir(local.Root()))
	}

	// ── 7. Health handlers ────────────────────────────────────────────────
	dependencies := api.HealthDependencies{
		CheckDatabase: func(context context.Context) error { return pgstore.Ping(context, pool) },
	}
	if rdb != nil {
		dependencies.CheckCache = func(context context.Context) error { return redisstore.Ping(context, rdb) }
	}
	liveness, readiness := api.NewHealthHandlers(dependencies, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	tokens := sec.NewTokenIssuer(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, constants.AuthIssuer)

	authService := auth.NewService(auth.NewUserRepository(pool), tokens, media, log)
	accountService := account.NewService(account.NewAccountRepository(pool), media, log)
	videoService := video.NewService(video.NewPostgresRepository(pool), media, log)

	var statsCache dashboard.StatsCache
	if rdb != nil {
		statsCache = dashboard.NewRedisStatsCache(rdb, cfg.StatsCacheTTL)
	}
	dashboardService := dashboard.NewService(dashboard.NewPostgresRepository(pool), videoService, statsCache, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Uploads:   uploads,
		Auth: auth.NewHandler(authService, auth.CookieConfig{
			Secure:     cfg.CookieSecure,
			AccessTTL:  cfg.AccessTokenTTL,
			RefreshTTL: cfg.RefreshTokenTTL,
		}),
		Account:      account.NewHandler(accountService),
		Video:        video.NewHandler(videoService),
		Comment:      comment.NewHandler(comment.NewService(comment.NewPostgresRepository(pool), log)),
		Tweet:        tweet.NewHandler(tweet.NewService(tweet.NewPostgresRepository(pool), log)),
		Like:         like.NewHandler(like.NewService(like.NewPostgresRepository(pool), log)),
		Subscription: subscription.NewHandler(subscription.NewService(subscription.NewPostgresRepository(pool), log)),
		Playlist:     playlist.NewHandler(playlist.NewService(playlist.NewPostgresRepository(pool), log)),
		Dashboard:    dashboard.NewHandler(dashboardService),
	}

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	serverCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	server := api.NewServer(serverCtx, cfg, log, tokens, authService, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// newLogger builds the JSON logger and installs it as the process default.
func newLogger(level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName), slog.String("version", constants.AppVersion))
	slog.SetDefault(logger)
	return logger
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
