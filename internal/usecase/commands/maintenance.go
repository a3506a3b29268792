package commands

//go:generate mockgen -source=maintenance.go -destination=../../../tests/mock/commands/maintenance.go -package=commands

import (
	"context"
	"log/slog"
	"time"

	"appointment-booking/internal/domain/appointment"
	"appointment-booking/internal/pkg/backoff"
	"appointment-booking/internal/pkg/clock"
	"appointment-booking/internal/usecase/shared"
)

const sweepCancelReason = "payment window expired"

// RelayPolicy bounds outbox delivery.
type RelayPolicy struct {
	BatchSize   int
	MaxAttempts int
	RetryBase   time.Duration
}

type MaintenanceCommands interface {
	SweepExpiredPending(ctx context.Context) (int, error)
	RelayOutbox(ctx context.Context) (int, error)
	CleanupIdempotency(ctx context.Context) (int64, error)
}

type maintenanceUseCaseImpl struct {
	uow       shared.UnitOfWork
	publisher shared.EventPublisher
	booking   shared.BookingPolicy
	relay     RelayPolicy
	metrics   shared.Metrics
	clock     clock.Clock
	logger    *slog.Logger
}

func NewMaintenanceUseCase(
	uow shared.UnitOfWork,
	publisher shared.EventPublisher,
	booking shared.BookingPolicy,
	relay RelayPolicy,
	metrics shared.Metrics,
	clk clock.Clock,
	logger *slog.Logger,
) MaintenanceCommands {
	if relay.MaxAttempts < 1 {
		relay.MaxAttempts = 1
	}
	return &maintenanceUseCaseImpl{
		uow:       uow,
		publisher: publisher,
		booking:   booking,
		relay:     relay,
		metrics:   metrics,
		clock:     clk,
		logger:    logger,
	}
}

// SweepExpiredPending cancels pending appointments older than the pending
// timeout and fails their initiated payments.
func (uc *maintenanceUseCaseImpl) SweepExpiredPending(ctx context.Context) (int, error) {
	now := uc.clock.Now()
	cutoff := now.Add(-uc.booking.PendingTimeout)

	var swept int
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		swept = 0
		expired, err := tx.Appointments().ClaimExpiredPending(ctx, tx.DB(), cutoff, uc.booking.SweepBatch)
		if err != nil {
			return err
		}
		for _, appt := range expired {
			if err := appt.TransitionTo(appointment.StatusCancelled, sweepCancelReason, now); err != nil {
				return err
			}
			if err := tx.Appointments().UpdateStatus(ctx, tx.DB(), appt); err != nil {
				return err
			}
			if err := afterTransition(ctx, tx, appt, appointment.StatusPending, nil, now); err != nil {
				return err
			}
			swept++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if swept > 0 {
		uc.metrics.PendingSwept(swept)
		for range swept {
			uc.metrics.StatusChanged(appointment.StatusPending.String(), appointment.StatusCancelled.String())
		}
		uc.logger.InfoContext(ctx, "expired pending appointments cancelled",
			"count", swept,
			"cutoff", cutoff)
	}
	return swept, nil
}

// RelayOutbox publishes due outbox jobs. Delivery is at-least-once: a crash
// after publishing but before commit re-sends the batch.
func (uc *maintenanceUseCaseImpl) RelayOutbox(ctx context.Context) (int, error) {
	var sent, failed, retried int
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		sent, failed, retried = 0, 0, 0
		now := uc.clock.Now()
		jobs, err := tx.Notifications().ClaimDue(ctx, tx.DB(), now, uc.relay.BatchSize)
		if err != nil {
			return err
		}

		for _, job := range jobs {
			job.Attempts++
			if pubErr := uc.publisher.Publish(ctx, job.Topic, job.Payload); pubErr != nil {
				msg := pubErr.Error()
				job.LastError = &msg
				if job.Attempts >= uc.relay.MaxAttempts {
					job.Status = shared.JobStatusFailed
					failed++
					uc.logger.ErrorContext(ctx, "outbox job abandoned",
						"job_id", job.ID,
						"topic", job.Topic,
						"attempts", job.Attempts,
						"error", msg)
				} else {
					job.RunAt = now.Add(backoff.Jittered(job.Attempts-1, uc.relay.RetryBase))
					retried++
				}
			} else {
				job.Status = shared.JobStatusSent
				job.LastError = nil
				sent++
			}
			if err := tx.Notifications().SaveResult(ctx, tx.DB(), job, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	uc.metrics.OutboxRelayed(shared.JobStatusSent, sent)
	uc.metrics.OutboxRelayed(shared.JobStatusFailed, failed)
	uc.metrics.OutboxRelayed("retry", retried)
	if sent+failed+retried > 0 {
		uc.logger.DebugContext(ctx, "outbox relayed",
			"sent", sent,
			"failed", failed,
			"retried", retried)
	}
	return sent, nil
}

func (uc *maintenanceUseCaseImpl) CleanupIdempotency(ctx context.Context) (int64, error) {
	var removed int64
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		removed, err = tx.Idempotency().DeleteExpired(ctx, tx.DB(), uc.clock.Now())
		return err
	})
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		uc.logger.InfoContext(ctx, "expired idempotency keys removed", "count", removed)
	}
	return removed, nil
}
