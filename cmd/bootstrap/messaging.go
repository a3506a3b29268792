package bootstrap

import (
	"context"
	"log/slog"

	"appointment-booking/internal/infra/messaging"
	"appointment-booking/internal/infra/payment"
	"appointment-booking/internal/pkg/config"
	"appointment-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var MessagingModule = fx.Module("messaging",
	fx.Provide(
		NewEventPublisher,
		NewPaymentProvider,
	),
)

// Without AMQP_URL the outbox is still drained, but events only go to the log.
func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.EventPublisher, error) {
	if cfg.AMQP.URL == "" {
		logger.Info("AMQP_URL not set, relaying outbox to the log")
		return messaging.NewLogPublisher(logger), nil
	}

	pub, err := messaging.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
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

func NewPaymentProvider(cfg config.Config, logger *slog.Logger) shared.PaymentProvider {
	return payment.NewRetryingProvider(
		payment.NewMockProvider(),
		cfg.Payment.ProviderTimeout,
		cfg.Payment.MaxRetries,
		cfg.Payment.RetryBaseDelay,
		logger,
	)
}
