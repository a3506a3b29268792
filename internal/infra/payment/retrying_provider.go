package payment

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"appointment-booking/internal/pkg/backoff"
	"appointment-booking/internal/usecase/shared"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("appointment-booking/infra/payment")

// RetryingProvider bounds each provider call by timeout and retries transient
// failures (including per-attempt timeouts) up to maxRetries times.
type RetryingProvider struct {
	next       shared.PaymentProvider
	timeout    time.Duration
	maxRetries int
	base       time.Duration
	logger     *slog.Logger
}

func NewRetryingProvider(next shared.PaymentProvider, timeout time.Duration, maxRetries int, base time.Duration, logger *slog.Logger) *RetryingProvider {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &RetryingProvider{
		next:       next,
		timeout:    timeout,
		maxRetries: maxRetries,
		base:       base,
		logger:     logger,
	}
}

func (p *RetryingProvider) Charge(ctx context.Context, req shared.ChargeRequest) (shared.ChargeResult, error) {
	ctx, span := tracer.Start(ctx, "payment.provider.charge")
	defer span.End()
	span.SetAttributes(
		attribute.String("payment.id", req.PaymentID.String()),
		attribute.Int64("payment.amount", req.Amount),
		attribute.String("payment.currency", req.Currency),
	)

	var lastErr error
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		span.SetAttributes(attribute.Int("payment.attempts", attempt+1))

		res, err := p.chargeOnce(ctx, req)
		if err == nil {
			return res, nil
		}
		lastErr = err

		if !isTransient(err) || ctx.Err() != nil {
			break
		}
		if attempt == p.maxRetries {
			break
		}

		wait := backoff.Jittered(attempt, p.base)
		p.logger.WarnContext(ctx, "retrying payment provider",
			"payment_id", req.PaymentID,
			"attempt", attempt+1,
			"wait_ms", wait.Milliseconds(),
			"error", err.Error())
		if sleepErr := backoff.Sleep(ctx, wait); sleepErr != nil {
			break
		}
	}

	span.RecordError(lastErr)
	span.SetStatus(codes.Error, "provider charge failed")
	return shared.ChargeResult{}, lastErr
}

func (p *RetryingProvider) chargeOnce(ctx context.Context, req shared.ChargeRequest) (shared.ChargeResult, error) {
	if p.timeout <= 0 {
		return p.next.Charge(ctx, req)
	}
	attemptCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.next.Charge(attemptCtx, req)
}

func isTransient(err error) bool {
	return errors.Is(err, shared.ErrProviderTransient) || errors.Is(err, context.DeadlineExceeded)
}
