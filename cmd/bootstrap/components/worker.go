package components

import (
	"context"
	"log/slog"

	"field-rental/internal/infra/broker"
	"field-rental/internal/pkg/clock"
	"field-rental/internal/pkg/config"
	"field-rental/internal/pkg/metrics"
	"field-rental/internal/usecase/commands"
	"field-rental/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		NewRelay,
	),
	fx.Invoke(
		StartRelay,
		StartTopUpConsumer,
	),
)

func NewRelay(store worker.OutboxStore, pub worker.Publisher, clk clock.Clock, m *metrics.Metrics, cfg config.Config) *worker.Relay {
	rc := worker.DefaultRelayConfig()
	if cfg.Booking.OutboxPollInterval > 0 {
		rc.Interval = cfg.Booking.OutboxPollInterval
	}
	if cfg.Booking.OutboxBatchSize > 0 {
		rc.BatchSize = cfg.Booking.OutboxBatchSize
	}
	return worker.NewRelay(store, pub, clk, m, rc)
}

func StartRelay(lc fx.Lifecycle, relay *worker.Relay) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				relay.Run(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}

// StartTopUpConsumer credits wallets from payment-provider messages. It needs RabbitMQ.
func StartTopUpConsumer(lc fx.Lifecycle, cfg config.Config, wallets commands.WalletCommands, logger *slog.Logger) {
	if cfg.Rabbit.URL == "" {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	var consumer *broker.Consumer
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			var err error
			consumer, err = broker.NewConsumer(broker.ConsumerConfig{
				URL:      cfg.Rabbit.URL,
				Exchange: cfg.Rabbit.PaymentExchange,
				Queue:    cfg.Rabbit.TopUpQueue,
				Bindings: []string{worker.RoutingKeyTopUpConfirmed},
			})
			if err != nil {
				return err
			}
			go func() {
				if err := worker.NewTopUpConsumer(consumer, wallets).Run(ctx); err != nil {
					logger.Error("top-up consumer stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			if consumer == nil {
				return nil
			}
			return consumer.Close()
		},
	})
}
