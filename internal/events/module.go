package events

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/config"
)

// Module wires the order event publisher; without brokers it degrades to a
// no-op publisher.
var Module = fx.Provide(newPublisher)

type publisherParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newPublisher(p publisherParams) (Publisher, error) {
	if len(p.Config.KafkaBrokers) == 0 {
		return Noop{}, nil
	}

	publisher, err := NewKafkaPublisher(p.Config.KafkaBrokers, p.Logger)
	if err != nil {
		return nil, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return publisher.Close()
		},
	})
	return publisher, nil
}
