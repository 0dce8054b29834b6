// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Tasklist HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis when REDIS_URL is set.
//  5. Run database migrations (idempotent).
//  6. Build token, hashing and avatar infrastructure.
//  7. Wire services, metrics and HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/tasklist/data"
	"github.com/taibuivan/tasklist/internal/api"
	"github.com/taibuivan/tasklist/internal/auth"
	"github.com/taibuivan/tasklist/internal/platform/config"
	"github.com/taibuivan/tasklist/internal/platform/constants"
	"github.com/taibuivan/tasklist/internal/platform/metrics"
	"github.com/taibuivan/tasklist/internal/platform/migration"
	pgstore "github.com/taibuivan/tasklist/internal/platform/postgres"
	redisstore "github.com/taibuivan/tasklist/internal/platform/redis"
	"github.com/taibuivan/tasklist/internal/platform/sec"
	"github.com/taibuivan/tasklist/internal/tasks"
	"github.com/taibuivan/tasklist/internal/users"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("redis", cfg.RedisURL != ""),
		slog.Bool("s3_avatars", cfg.UsesS3()),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
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
	} else {
		log.Warn("redis_disabled_login_throttle_off")
	}

	// ── 5. Migrations ─────────────────────────────────────────────────────
	migrations := migration.Embedded(data.Migrations, data.MigrationsDir)
	if cfg.MigrationPath != "" {
		migrations = migration.Dir(cfg.MigrationPath)
	}
	must(log, migration.RunUp(cfg.DatabaseURL, migrations, cfg.Debug, log), "run migrations")

	// ── 6. Security & Storage ─────────────────────────────────────────────
	tokenService, err := sec.NewTokenService(cfg.TokenConfig())
	must(log, err, "initialize token service")

	hasher := sec.NewPasswordHasher(cfg.BcryptCost)

	var (
		avatarStorage users.AvatarStorage
		filesHandler  http.Handler
	)
	if cfg.UsesS3() {
		settings := users.S3Settings{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		}
		client, err := users.NewS3Client(startupCtx, settings)
		must(log, err, "initialize s3 client")
		avatarStorage = users.NewS3AvatarStorage(client, settings)
	} else {
		local, err := users.NewLocalAvatarStorage(cfg.AvatarDir, api.FilesPrefix)
		must(log, err, "initialize avatar directory")
		avatarStorage = local
		filesHandler = http.FileServer(http.Dir(local.Dir()))
	}

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	health := api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
	}
	if rdb != nil {
		health.CheckCache = func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		}
	}
	liveness, readiness := api.NewHealthHandlers(health, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	throttle := auth.Throttle{MaxAttempts: int64(cfg.LoginMaxAttempts)}
	if rdb != nil {
		throttle.Limiter = auth.NewRedisAttemptLimiter(rdb, cfg.LoginAttemptWindow)
	}

	instruments := metrics.New()

	authService, err := auth.NewService(auth.NewPostgresCredentialRepository(pool), hasher, tokenService, throttle,
		auth.WithObserver(instruments))
	must(log, err, "initialize auth service")

	userService := users.NewService(users.NewPostgresRepository(pool), hasher, avatarStorage, cfg.AvatarMaxBytes)
	taskService := tasks.NewService(tasks.NewPostgresRepository(pool))

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Users:     users.NewHandler(userService),
		Tasks:     tasks.NewHandler(taskService),
		Files:     filesHandler,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	server := api.NewServer(ctx, api.Settings{
		Port:    cfg.ServerPort,
		Origins: cfg,
		Metrics: instruments,
	}, log, tokenService, handlers)

	// ── 10. Serve until SIGTERM/SIGINT, then drain ────────────────────────
	if err := server.Run(ctx); err != nil {
		log.Error("server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// newLogger builds the JSON logger tagged with the app name.
func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
