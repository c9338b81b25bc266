package components

import (
	"context"
	"log/slog"

	"field-rental/internal/infra/broker"
	"field-rental/internal/infra/cache"
	"field-rental/internal/pkg/config"
	"field-rental/internal/pkg/metrics"
	"field-rental/internal/pkg/obs"
	"field-rental/internal/usecase/commands"
	"field-rental/internal/usecase/queries"
	"field-rental/internal/worker"

	"go.uber.org/fx"
)

var InfraModule = fx.Module("infra",
	fx.Provide(
		metrics.NewDefault,
		NewAvailabilityCache,
		NewEventPublisher,
	),
	fx.Invoke(StartTracing),
)

type AvailabilityCacheResult struct {
	fx.Out

	Cache       queries.AvailabilityCache
	Invalidator commands.AvailabilityInvalidator
}

// NewAvailabilityCache uses Redis when REDIS_ADDR is set and caches nothing otherwise.
func NewAvailabilityCache(lc fx.Lifecycle, cfg config.Config, m *metrics.Metrics, logger *slog.Logger) AvailabilityCacheResult {
	if cfg.Redis.Addr == "" {
		logger.Info("availability cache disabled")
		return AvailabilityCacheResult{Cache: cache.Noop{}, Invalidator: cache.Noop{}}
	}

	client := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	c := cache.NewAvailabilityCache(client, cfg.Booking.AvailabilityTTL, m)
	return AvailabilityCacheResult{Cache: c, Invalidator: c}
}

// NewEventPublisher publishes to RabbitMQ when RABBITMQ_URL is set and logs events otherwise.
func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (worker.Publisher, error) {
	if cfg.Rabbit.URL == "" {
		logger.Info("broker disabled, domain events are logged")
		return broker.NewLogPublisher(logger), nil
	}

	pub, err := broker.NewPublisher(cfg.Rabbit.URL, cfg.Rabbit.EventsExchange)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return pub.Close()
		},
	})
	return pub, nil
}

func StartTracing(lc fx.Lifecycle, cfg config.Config) error {
	shutdown, err := obs.InitTracer(context.Background(), cfg.Tracing)
	if err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStop: shutdown,
	})
	return nil
}
