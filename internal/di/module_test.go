package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/app"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/config"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/repository"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/storage/postgres"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:         ":0",
		DatabaseURI:        "postgres://stub",
		TokenSecret:        "secret",
		TokenTTL:           time.Hour,
		ExpirePollInterval: time.Millisecond,
		ExpireBatchSize:    1,
		WorkerPoolSize:     1,
		ShutdownTimeout:    time.Millisecond,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	userRepo := test.NewUserRepositoryStub()
	productRepo := &test.ProductRepositoryStub{}
	customerRepo := &test.CustomerRepositoryStub{}
	orderRepo := &test.OrderRepositoryStub{}

	var facade *app.StorefrontFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.UserRepository(userRepo)),
			fx.Replace(repository.ProductRepository(productRepo)),
			fx.Replace(repository.CustomerRepository(customerRepo)),
			fx.Replace(repository.OrderRepository(orderRepo)),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected storefront facade instance")
	}
}
