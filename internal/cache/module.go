package cache

import (
	"context"
	"log/slog"

	"github.com/go-redis/redis/v8"
	"go.uber.org/fx"

	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/config"
)

// Module wires the catalog cache; without a redis address it degrades to a
// no-op store.
var Module = fx.Provide(newStore)

type storeParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newStore(p storeParams) Store {
	if p.Config.RedisAddress == "" {
		return Noop{}
	}

	client := redis.NewClient(&redis.Options{Addr: p.Config.RedisAddress})
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})

	return NewCatalog(redisKV{client: client}, p.Config.CatalogCacheTTL, p.Logger)
}
