// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides Postgres connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// RedisConfig provides Redis connection settings.
type RedisConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
}

// SnapshotConfig provides settings for the lead snapshot store.
type SnapshotConfig interface {
	GetSnapshotBackend() string
	GetSnapshotNamespace() string
	GetSnapshotBackupBackend() string
}

// DedupConfig provides settings for the lead identity resolver.
type DedupConfig interface {
	GetDedupNormalize() bool
}

// DiscoveryConfig provides settings for the discovery provider client.
type DiscoveryConfig interface {
	GetDiscoveryBaseURL() string
	GetDiscoveryAPIKey() string
	GetDiscoveryTimeout() time.Duration
	GetDiscoveryRatePerSecond() float64
	GetDiscoveryBurst() int
}

// PipelineConfig provides settings for the pipeline board engine.
type PipelineConfig interface {
	GetPipelineBackend() string
	GetPipelineSyncBaseURL() string
	GetPipelineSyncTimeout() time.Duration
	GetPipelineReconcileInterval() time.Duration
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
	GetRateLimitPerSecond() float64
	GetRateLimitBurst() int
}

// SchedulerConfig provides settings for the asynq scheduler and worker.
type SchedulerConfig interface {
	RedisConfig
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
	GetSnapshotBackupInterval() time.Duration
}

// PhoneConfig provides settings for phone number formatting.
type PhoneConfig interface {
	GetPhoneDefaultRegion() string
}

// =============================================================================
// Config
// =============================================================================

// Snapshot backend identifiers accepted by SNAPSHOT_BACKEND.
const (
	SnapshotBackendRedis    = "redis"
	SnapshotBackendPostgres = "postgres"
	SnapshotBackendMemory   = "memory"
)

// Pipeline backend identifiers accepted by PIPELINE_BACKEND.
const (
	PipelineBackendLocal  = "local"
	PipelineBackendRemote = "remote"
)

// Config holds all application configuration loaded from the environment.
type Config struct {
	Env      string
	HTTPAddr string

	DatabaseURL      string
	RedisURL         string
	RedisTLSInsecure bool

	SnapshotBackend       string
	SnapshotNamespace     string
	SnapshotBackupBackend string

	DedupNormalize bool

	DiscoveryBaseURL       string
	DiscoveryAPIKey        string
	DiscoveryTimeout       time.Duration
	DiscoveryRatePerSecond float64
	DiscoveryBurst         int

	PipelineBackend           string
	PipelineSyncBaseURL       string
	PipelineSyncTimeout       time.Duration
	PipelineReconcileInterval time.Duration

	CORSAllowAll       bool
	CORSOrigins        []string
	CORSAllowCreds     bool
	RateLimitPerSecond float64
	RateLimitBurst     int

	AsynqQueueName         string
	AsynqConcurrency       int
	SnapshotBackupInterval time.Duration

	PhoneDefaultRegion string
}

// Load reads configuration from the environment, applying defaults and
// validating required combinations.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:      getEnv("APP_ENV", "development"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),

		DatabaseURL:      getEnv("DATABASE_URL", ""),
		RedisURL:         getEnv("REDIS_URL", ""),
		RedisTLSInsecure: strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),

		SnapshotBackend:       strings.ToLower(getEnv("SNAPSHOT_BACKEND", SnapshotBackendRedis)),
		SnapshotNamespace:     getEnv("SNAPSHOT_NAMESPACE", "agency_hunter:leads"),
		SnapshotBackupBackend: strings.ToLower(getEnv("SNAPSHOT_BACKUP_BACKEND", "")),

		DedupNormalize: strings.EqualFold(getEnv("DEDUP_NORMALIZE", "false"), "true"),

		DiscoveryBaseURL:       getEnv("DISCOVERY_BASE_URL", ""),
		DiscoveryAPIKey:        getEnv("DISCOVERY_API_KEY", ""),
		DiscoveryTimeout:       mustDuration(getEnv("DISCOVERY_TIMEOUT", "10s")),
		DiscoveryRatePerSecond: mustFloat(getEnv("DISCOVERY_RATE_PER_SECOND", "2")),
		DiscoveryBurst:         mustInt(getEnv("DISCOVERY_BURST", "4")),

		PipelineBackend:           strings.ToLower(getEnv("PIPELINE_BACKEND", PipelineBackendLocal)),
		PipelineSyncBaseURL:       getEnv("PIPELINE_SYNC_BASE_URL", ""),
		PipelineSyncTimeout:       mustDuration(getEnv("PIPELINE_SYNC_TIMEOUT", "5s")),
		PipelineReconcileInterval: mustDuration(getEnv("PIPELINE_RECONCILE_INTERVAL", "5m")),

		CORSAllowAll:       corsAllowAll,
		CORSOrigins:        corsOrigins,
		CORSAllowCreds:     strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		RateLimitPerSecond: mustFloat(getEnv("RATE_LIMIT_PER_SECOND", "20")),
		RateLimitBurst:     mustInt(getEnv("RATE_LIMIT_BURST", "40")),

		AsynqQueueName:         getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:       mustInt(getEnv("ASYNQ_CONCURRENCY", "10")),
		SnapshotBackupInterval: mustDuration(getEnv("SNAPSHOT_BACKUP_INTERVAL", "15m")),

		PhoneDefaultRegion: getEnv("PHONE_DEFAULT_REGION", "FI"),
	}

	switch cfg.SnapshotBackend {
	case SnapshotBackendRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL is required when SNAPSHOT_BACKEND is redis")
		}
	case SnapshotBackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when SNAPSHOT_BACKEND is postgres")
		}
	case SnapshotBackendMemory:
	default:
		return nil, fmt.Errorf("unknown SNAPSHOT_BACKEND %q", cfg.SnapshotBackend)
	}

	switch cfg.SnapshotBackupBackend {
	case "":
	case SnapshotBackendRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL is required when SNAPSHOT_BACKUP_BACKEND is redis")
		}
	case SnapshotBackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when SNAPSHOT_BACKUP_BACKEND is postgres")
		}
	default:
		return nil, fmt.Errorf("unknown SNAPSHOT_BACKUP_BACKEND %q", cfg.SnapshotBackupBackend)
	}
	if cfg.SnapshotBackupBackend != "" && cfg.SnapshotBackupBackend == cfg.SnapshotBackend {
		return nil, fmt.Errorf("SNAPSHOT_BACKUP_BACKEND must differ from SNAPSHOT_BACKEND")
	}

	switch cfg.PipelineBackend {
	case PipelineBackendLocal:
	case PipelineBackendRemote:
		if cfg.PipelineSyncBaseURL == "" {
			return nil, fmt.Errorf("PIPELINE_SYNC_BASE_URL is required when PIPELINE_BACKEND is remote")
		}
	default:
		return nil, fmt.Errorf("unknown PIPELINE_BACKEND %q", cfg.PipelineBackend)
	}

	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

// =============================================================================
// Interface implementations
// =============================================================================

func (c *Config) GetDatabaseURL() string    { return c.DatabaseURL }
func (c *Config) GetRedisURL() string       { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool { return c.RedisTLSInsecure }

func (c *Config) GetSnapshotBackend() string       { return c.SnapshotBackend }
func (c *Config) GetSnapshotNamespace() string     { return c.SnapshotNamespace }
func (c *Config) GetSnapshotBackupBackend() string { return c.SnapshotBackupBackend }

func (c *Config) GetDedupNormalize() bool { return c.DedupNormalize }

func (c *Config) GetDiscoveryBaseURL() string        { return c.DiscoveryBaseURL }
func (c *Config) GetDiscoveryAPIKey() string         { return c.DiscoveryAPIKey }
func (c *Config) GetDiscoveryTimeout() time.Duration { return c.DiscoveryTimeout }
func (c *Config) GetDiscoveryRatePerSecond() float64 { return c.DiscoveryRatePerSecond }
func (c *Config) GetDiscoveryBurst() int             { return c.DiscoveryBurst }

func (c *Config) GetPipelineBackend() string                  { return c.PipelineBackend }
func (c *Config) GetPipelineSyncBaseURL() string              { return c.PipelineSyncBaseURL }
func (c *Config) GetPipelineSyncTimeout() time.Duration       { return c.PipelineSyncTimeout }
func (c *Config) GetPipelineReconcileInterval() time.Duration { return c.PipelineReconcileInterval }

func (c *Config) GetHTTPAddr() string            { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool          { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string       { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool        { return c.CORSAllowCreds }
func (c *Config) GetRateLimitPerSecond() float64 { return c.RateLimitPerSecond }
func (c *Config) GetRateLimitBurst() int         { return c.RateLimitBurst }

func (c *Config) GetAsynqQueueName() string                { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int                 { return c.AsynqConcurrency }
func (c *Config) GetSnapshotBackupInterval() time.Duration { return c.SnapshotBackupInterval }

func (c *Config) GetPhoneDefaultRegion() string { return c.PhoneDefaultRegion }

// =============================================================================
// Helpers
// =============================================================================

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}

func mustFloat(value string) float64 {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}
