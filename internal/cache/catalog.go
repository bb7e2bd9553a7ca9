package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/model"
)

const generationKey = "catalog:gen"

// Key identifies one cached catalog listing.
type Key struct {
	Category    string
	InStockOnly bool
}

// Store is the catalog cache surface. Lookups are best-effort: any backend
// failure reads as a miss and writes are fire-and-forget.
type Store interface {
	Get(ctx context.Context, key Key) ([]model.Product, bool)
	Put(ctx context.Context, key Key, products []model.Product)
	// Invalidate makes every cached listing unreachable by bumping the
	// generation counter embedded in entry keys.
	Invalidate(ctx context.Context)
}

// KV is the key/value subset of redis the catalog cache needs.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Incr(ctx context.Context, key string) error
}

// Catalog caches catalog listings in redis with a TTL. Entry keys embed a
// generation counter, so invalidation is one INCR instead of a key scan.
type Catalog struct {
	kv     KV
	ttl    time.Duration
	logger *slog.Logger
}

// NewCatalog builds a catalog cache over the provided KV backend.
func NewCatalog(kv KV, ttl time.Duration, logger *slog.Logger) *Catalog {
	return &Catalog{kv: kv, ttl: ttl, logger: logger}
}

func (c *Catalog) entryKey(ctx context.Context, key Key) string {
	gen, ok, err := c.kv.Get(ctx, generationKey)
	if err != nil {
		c.logger.Warn("catalog cache generation lookup failed", slog.String("error", err.Error()))
		gen = "0"
	} else if !ok {
		gen = "0"
	}
	return fmt.Sprintf("catalog:%s:%s:%t", gen, key.Category, key.InStockOnly)
}

// Get returns the cached listing for key, or reports a miss.
func (c *Catalog) Get(ctx context.Context, key Key) ([]model.Product, bool) {
	value, ok, err := c.kv.Get(ctx, c.entryKey(ctx, key))
	if err != nil {
		c.logger.Warn("catalog cache get failed", slog.String("error", err.Error()))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var products []model.Product
	if err := json.Unmarshal([]byte(value), &products); err != nil {
		c.logger.Warn("catalog cache decode failed", slog.String("error", err.Error()))
		return nil, false
	}
	return products, true
}

// Put stores the listing for key with the configured TTL.
func (c *Catalog) Put(ctx context.Context, key Key, products []model.Product) {
	payload, err := json.Marshal(products)
	if err != nil {
		c.logger.Warn("catalog cache encode failed", slog.String("error", err.Error()))
		return
	}
	if err := c.kv.Set(ctx, c.entryKey(ctx, key), string(payload), c.ttl); err != nil {
		c.logger.Warn("catalog cache set failed", slog.String("error", err.Error()))
	}
}

// Invalidate bumps the generation counter.
func (c *Catalog) Invalidate(ctx context.Context) {
	if err := c.kv.Incr(ctx, generationKey); err != nil {
		c.logger.Warn("catalog cache invalidation failed", slog.String("error", err.Error()))
	}
}

// redisKV adapts *redis.Client to the KV port.
type redisKV struct {
	client *redis.Client
}

func (r redisKV) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (r redisKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r redisKV) Incr(ctx context.Context, key string) error {
	return r.client.Incr(ctx, key).Err()
}

// Noop serves a deployment without redis: every lookup misses.
type Noop struct{}

func (Noop) Get(context.Context, Key) ([]model.Product, bool) { return nil, false }
func (Noop) Put(context.Context, Key, []model.Product)        {}
func (Noop) Invalidate(context.Context)                       {}
