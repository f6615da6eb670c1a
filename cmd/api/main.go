package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agencyhunter_backend/internal/discovery"
	"agencyhunter_backend/internal/events"
	apphttp "agencyhunter_backend/internal/http"
	"agencyhunter_backend/internal/http/router"
	"agencyhunter_backend/internal/leads"
	"agencyhunter_backend/internal/leads/snapshot"
	"agencyhunter_backend/internal/pipeline"
	"agencyhunter_backend/internal/telemetry"
	"agencyhunter_backend/migrations"
	"agencyhunter_backend/platform/config"
	"agencyhunter_backend/platform/db"
	"agencyhunter_backend/platform/logger"
	"agencyhunter_backend/platform/redisconn"
	"agencyhunter_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	var pool *pgxpool.Pool
	if cfg.SnapshotBackend == config.SnapshotBackendPostgres || cfg.SnapshotBackupBackend == config.SnapshotBackendPostgres {
		if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
			return db.RunMigrations(ctx, cfg, migrations.FS, ".")
		}); err != nil {
			log.Error("failed to run database migrations", "error", err)
			panic("failed to run database migrations: " + err.Error())
		}
		log.Info("database migrations complete")

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
		log.Info("database connection established")
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
		log.Info("redis connection established")
	}

	snapshotStore, err := newSnapshotStore(cfg.SnapshotBackend, cfg.SnapshotNamespace, pool, redisClient)
	if err != nil {
		log.Error("failed to initialize snapshot store", "error", err)
		panic("failed to initialize snapshot store: " + err.Error())
	}
	log.Info("snapshot store initialized", "backend", cfg.SnapshotBackend, "namespace", cfg.SnapshotNamespace)

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)
	telemetry.RegisterHandlers(eventBus)

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	leadsModule, err := leads.NewModule(ctx, snapshotStore, eventBus, val, cfg, log)
	if err != nil {
		log.Error("failed to initialize leads module", "error", err)
		panic("failed to initialize leads module: " + err.Error())
	}

	pipelineModule, err := pipeline.NewModule(ctx, leadsModule.Service(), eventBus, val, cfg, log)
	if err != nil {
		log.Error("failed to initialize pipeline module", "error", err)
		panic("failed to initialize pipeline module: " + err.Error())
	}

	discoveryModule := discovery.NewModule(cfg, leadsModule.Service(), log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:     cfg,
		Logger:     log,
		Durability: leadsModule.Service(),
		Modules: []apphttp.Module{
			leadsModule,
			pipelineModule,
			discoveryModule,
		},
	}

	engine := router.New(app)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: engine,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, gracefully shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		panic("server error: " + err.Error())
	}

	// Drain optimistic move confirmations before exiting.
	pipelineModule.Stop()
	log.Info("server stopped")
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
