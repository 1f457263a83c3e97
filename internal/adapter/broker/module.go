package broker

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/worker"
)

// Module provides the event publisher: RabbitMQ when a URL is configured,
// otherwise the log.
var Module = fx.Provide(newPublisher)

type publisherParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

var dial = Dial

func newPublisher(p publisherParams) (worker.Publisher, error) {
	if p.Config.RabbitMQURL == "" {
		p.Logger.Info("rabbitmq url not set, events go to the log")
		return NewLogPublisher(p.Logger), nil
	}

	pool, err := dial(p.Config.RabbitMQURL, p.Config.EventsQueue, p.Config.ChannelPoolSize, p.Logger)
	if err != nil {
		return nil, err
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			pool.Close()
			return nil
		},
	})
	return NewPublisher(pool, p.Config.EventsQueue, p.Logger), nil
}
