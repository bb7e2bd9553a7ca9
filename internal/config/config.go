package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress         string
	DatabaseURI        string
	TokenSecret        string
	TokenTTL           time.Duration
	RedisAddress       string
	CatalogCacheTTL    time.Duration
	KafkaBrokers       []string
	PendingOrderTTL    time.Duration
	ExpirePollInterval time.Duration
	ExpireBatchSize    int
	WorkerPoolSize     int
	ShutdownTimeout    time.Duration
}

const (
	defaultRunAddress         = ":8080"
	defaultTokenSecret        = "change-me-in-production"
	defaultTokenTTL           = 24 * time.Hour
	defaultCatalogCacheTTL    = 30 * time.Second
	defaultExpirePollInterval = time.Minute
	defaultExpireBatchSize    = 16
	defaultWorkerPoolSize     = 4
	defaultShutdownTimeout    = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:         getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:        getString(lookup, "DATABASE_URI", ""),
		TokenSecret:        getString(lookup, "TOKEN_SECRET", defaultTokenSecret),
		TokenTTL:           getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		RedisAddress:       getString(lookup, "REDIS_ADDRESS", ""),
		CatalogCacheTTL:    getDuration(lookup, "CATALOG_CACHE_TTL", defaultCatalogCacheTTL),
		PendingOrderTTL:    getDuration(lookup, "PENDING_ORDER_TTL", 0),
		ExpirePollInterval: getDuration(lookup, "EXPIRE_POLL_INTERVAL", defaultExpirePollInterval),
		ExpireBatchSize:    getInt(lookup, "EXPIRE_BATCH_SIZE", defaultExpireBatchSize),
		WorkerPoolSize:     getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:    getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("zone", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		brokersStr            = getString(lookup, "KAFKA_BROKERS", "")
		cacheTTLStr           = cfg.CatalogCacheTTL.String()
		pendingTTLStr         = cfg.PendingOrderTTL.String()
		expirePollIntervalStr = cfg.ExpirePollInterval.String()
		shutdownTimeoutStr    = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.TokenSecret, "token-secret", cfg.TokenSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.RedisAddress, "redis", cfg.RedisAddress, "Redis address for the catalog cache (empty disables caching)")
	fs.StringVar(&brokersStr, "kafka-brokers", brokersStr, "Comma-separated Kafka brokers for order events (empty disables publishing)")
	fs.StringVar(&cacheTTLStr, "cache-ttl", cacheTTLStr, "Catalog cache entry lifetime")
	fs.StringVar(&pendingTTLStr, "pending-ttl", pendingTTLStr, "Age after which unpaid pending orders are cancelled (0 disables)")
	fs.StringVar(&expirePollIntervalStr, "expire-poll-interval", expirePollIntervalStr, "Interval between expiry scans")
	fs.IntVar(&cfg.ExpireBatchSize, "expire-batch", cfg.ExpireBatchSize, "Maximum orders per expiry scan")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent expiry workers")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.CatalogCacheTTL, err = time.ParseDuration(cacheTTLStr); err != nil {
		return nil, fmt.Errorf("invalid cache ttl: %w", err)
	}

	if cfg.PendingOrderTTL, err = time.ParseDuration(pendingTTLStr); err != nil {
		return nil, fmt.Errorf("invalid pending order ttl: %w", err)
	}

	if cfg.ExpirePollInterval, err = time.ParseDuration(expirePollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid expire poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("TOKEN_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read token secret file: %w", err)
		}
		cfg.TokenSecret = strings.TrimSpace(string(content))
	}

	if brokersStr != "" {
		for _, broker := range strings.Split(brokersStr, ",") {
			if broker = strings.TrimSpace(broker); broker != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, broker)
			}
		}
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.ExpireBatchSize <= 0 {
		cfg.ExpireBatchSize = defaultExpireBatchSize
	}

	if cfg.ExpirePollInterval <= 0 {
		cfg.ExpirePollInterval = defaultExpirePollInterval
	}

	if cfg.CatalogCacheTTL <= 0 {
		cfg.CatalogCacheTTL = defaultCatalogCacheTTL
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.PendingOrderTTL < 0 {
		cfg.PendingOrderTTL = 0
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
