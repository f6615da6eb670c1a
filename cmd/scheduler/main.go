package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agencyhunter_backend/internal/leads/snapshot"
	"agencyhunter_backend/internal/scheduler"
	"agencyhunter_backend/migrations"
	"agencyhunter_backend/platform/config"
	"agencyhunter_backend/platform/db"
	"agencyhunter_backend/platform/logger"
	"agencyhunter_backend/platform/redisconn"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env)

	if cfg.SnapshotBackupBackend == "" {
		log.Warn("SNAPSHOT_BACKUP_BACKEND not configured; nothing to schedule")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pool *pgxpool.Pool
	if cfg.SnapshotBackend == config.SnapshotBackendPostgres || cfg.SnapshotBackupBackend == config.SnapshotBackendPostgres {
		if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
			return db.RunMigrations(ctx, cfg, migrations.FS, ".")
		}); err != nil {
			log.Error("failed to run database migrations", "error", err)
			panic("failed to run database migrations: " + err.Error())
		}

		if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
			p, err := db.NewPool(ctx, cfg)
			if err != nil {
				return err
			}
			pool = p
			return nil
		}); err != nil {
			log.Error("failed to connect to database", "error", err)
			panic("failed to connect to database: " + err.Error())
		}
		defer pool.Close()
	}

	var redisClient *redis.Client
	if cfg.SnapshotBackend == config.SnapshotBackendRedis || cfg.SnapshotBackupBackend == config.SnapshotBackendRedis {
		if err := withRetry(ctx, log, "redis connection", 5, 2*time.Second, func() error {
			c, err := redisconn.NewClient(ctx, cfg)
			if err != nil {
				return err
			}
			redisClient = c
			return nil
		}); err != nil {
			log.Error("failed to connect to redis", "error", err)
			panic("failed to connect to redis: " + err.Error())
		}
		defer redisClient.Close()
	}

	primary, err := newSnapshotStore(cfg.SnapshotBackend, cfg.SnapshotNamespace, pool, redisClient)
	if err != nil {
		log.Error("failed to initialize primary snapshot store", "error", err)
		panic("failed to initialize primary snapshot store: " + err.Error())
	}

	backup, err := newSnapshotStore(cfg.SnapshotBackupBackend, cfg.SnapshotNamespace, pool, redisClient)
	if err != nil {
		log.Error("failed to initialize backup snapshot store", "error", err)
		panic("failed to initialize backup snapshot store: " + err.Error())
	}

	dispatcher, err := scheduler.NewBackupDispatcher(cfg, log)
	if err != nil {
		log.Error("failed to initialize backup dispatcher", "error", err)
		panic("failed to initialize backup dispatcher: " + err.Error())
	}
	defer func() { _ = dispatcher.Close() }()
	go dispatcher.Run(ctx)

	worker, err := scheduler.NewWorker(cfg, primary, backup, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	worker.Run(ctx)
}

func newSnapshotStore(backend, namespace string, pool *pgxpool.Pool, redisClient *redis.Client) (snapshot.Store, error) {
	switch backend {
	case config.SnapshotBackendRedis:
		return snapshot.NewRedisStore(redisClient, namespace), nil
	case config.SnapshotBackendPostgres:
		return snapshot.NewPostgresStore(pool, namespace), nil
	case config.SnapshotBackendMemory:
		return snapshot.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown snapshot backend %q", backend)
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return fmt.Errorf("%s: %w", name, lastErr)
}
