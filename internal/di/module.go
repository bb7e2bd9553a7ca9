package di

import (
	"go.uber.org/fx"

	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/app"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/cache"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/config"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/events"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/logger"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/pkg/auth"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/server/http/handlers"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/server/http/router"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/storage/postgres"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		cache.Module,
		events.Module,
		usecase.Module,
		fx.Provide(func(facade *app.StorefrontFacade) handlers.StorefrontFacade { return facade }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
