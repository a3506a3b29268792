package bootstrap

import (
	"appointment-booking/internal/domain/payment"
	"appointment-booking/internal/pkg/config"
	"appointment-booking/internal/usecase/commands"
	"appointment-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		NewBookingPolicy,
		NewPaymentPolicy,
		NewRelayPolicy,
	),
)

func NewBookingPolicy(cfg config.Config) (shared.BookingPolicy, error) {
	loc, err := cfg.Booking.Location()
	if err != nil {
		return shared.BookingPolicy{}, err
	}
	return shared.BookingPolicy{
		Capacity:       cfg.Booking.SlotCapacity,
		Location:       loc,
		PendingTimeout: cfg.Booking.PendingTimeout,
		SweepBatch:     cfg.Booking.SweepBatchSize,
		IdempotencyTTL: cfg.Booking.IdempotencyTTL,
	}, nil
}

func NewPaymentPolicy(cfg config.Config) payment.Policy {
	return payment.Policy{
		Currency:          cfg.Payment.Currency,
		TaxRatePercent:    int64(cfg.Payment.TaxRatePercent),
		DefaultPriceMinor: cfg.Payment.DefaultPriceMinor,
	}
}

// Failed deliveries back off in multiples of the relay interval.
func NewRelayPolicy(cfg config.Config) commands.RelayPolicy {
	return commands.RelayPolicy{
		BatchSize:   cfg.AMQP.RelayBatch,
		MaxAttempts: cfg.AMQP.MaxAttempts,
		RetryBase:   cfg.AMQP.RelayInterval,
	}
}
