package commands

//go:generate mockgen -source=payment.go -destination=../../../tests/mock/commands/payment.go -package=commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"appointment-booking/internal/domain/appointment"
	"appointment-booking/internal/domain/payment"
	"appointment-booking/internal/infra"
	"appointment-booking/internal/pkg/clock"
	"appointment-booking/internal/pkg/errs"
	"appointment-booking/internal/usecase/queries"
	"appointment-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var (
	ErrPaymentNotFound     = queries.ErrPaymentNotFound
	ErrBookingNotFound     = queries.ErrBookingNotFound
	ErrBookingNotPayable   = errs.Mark(errs.New("only pending bookings can be paid"), errs.ErrConflict)
	ErrPaymentExists       = errs.Mark(errs.New("booking already has an active payment"), errs.ErrConflict)
	ErrCurrencyMismatch    = errs.Mark(errs.New("currency does not match the quoted currency"), errs.ErrValidation)
	ErrPaymentTokenMissing = errs.Mark(errs.New("payment token is required"), errs.ErrValidation)
	ErrPaymentFailed       = errs.Mark(errs.New("payment provider could not complete the charge"), errs.ErrPaymentProvider)
	ErrChargeNeedsRefund   = errs.Mark(errs.New("charge captured after the payment was closed, refund requested"), errs.ErrConflict)
)

type InitPaymentInput struct {
	BookingID uuid.UUID
	Amount    *int64
	Currency  string
	Provider  string
}

type PaymentCommands interface {
	Init(ctx context.Context, in InitPaymentInput) (*queries.PaymentView, error)
	MarkSuccess(ctx context.Context, id uuid.UUID, providerRef string) (*queries.PaymentView, error)
	MarkFailure(ctx context.Context, id uuid.UUID, reason string) (*queries.PaymentView, error)
	Confirm(ctx context.Context, id uuid.UUID, token string) (*queries.PaymentView, error)
}

type paymentUseCaseImpl struct {
	uow      shared.UnitOfWork
	provider shared.PaymentProvider
	policy   payment.Policy
	metrics  shared.Metrics
	clock    clock.Clock
	logger   *slog.Logger
}

func NewPaymentUseCase(
	uow shared.UnitOfWork,
	provider shared.PaymentProvider,
	policy payment.Policy,
	metrics shared.Metrics,
	clk clock.Clock,
	logger *slog.Logger,
) PaymentCommands {
	return &paymentUseCaseImpl{
		uow:      uow,
		provider: provider,
		policy:   policy,
		metrics:  metrics,
		clock:    clk,
		logger:   logger,
	}
}

func (uc *paymentUseCaseImpl) Init(ctx context.Context, in InitPaymentInput) (*queries.PaymentView, error) {
	provider, err := payment.NewProvider(in.Provider)
	if err != nil {
		return nil, err
	}
	if in.Currency != "" {
		currency, err := payment.NewCurrency(in.Currency)
		if err != nil {
			return nil, err
		}
		if currency != uc.policy.Currency {
			return nil, errs.Wrapf(ErrCurrencyMismatch, "expected %s", uc.policy.Currency)
		}
	}

	var created *payment.Payment
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		appt, err := tx.Reads().AppointmentForUpdate(ctx, in.BookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if appt.Status() != appointment.StatusPending {
			return errs.Wrapf(ErrBookingNotPayable, "booking is %s", appt.Status())
		}

		if _, err := tx.Reads().LivePaymentForBooking(ctx, appt.ID()); err == nil {
			return ErrPaymentExists
		} else if !infra.IsKind(err, infra.KindNotFound) {
			return err
		}

		svc, err := tx.Reads().ServiceByID(ctx, appt.ServiceID())
		if err != nil {
			return err
		}
		quote, err := uc.policy.QuoteFor(svc.PriceMinor())
		if err != nil {
			return err
		}
		if err := quote.Matches(in.Amount); err != nil {
			return errs.Wrapf(err, "expected %d %s", quote.Total, quote.Currency)
		}

		p := payment.NewPayment(appt.ID(), quote, provider, uc.clock.Now())
		if err := tx.Payments().Create(ctx, tx.DB(), p); err != nil {
			// the partial unique index on live payments catches concurrent inits
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrPaymentExists
			}
			return err
		}
		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.InfoContext(ctx, "payment initiated",
		"payment_id", created.ID(),
		"booking_id", created.BookingID(),
		"amount", created.Quote().Total)
	return toPaymentView(created), nil
}

func (uc *paymentUseCaseImpl) MarkSuccess(ctx context.Context, id uuid.UUID, providerRef string) (*queries.PaymentView, error) {
	var out *payment.Payment
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := lockPayment(ctx, tx, id)
		if err != nil {
			return err
		}
		now := uc.clock.Now()
		changed, err := p.MarkSucceeded(providerRef, now)
		if err != nil {
			return err
		}
		out = p
		if !changed {
			return nil
		}
		if err := tx.Payments().UpdateStatus(ctx, tx.DB(), p); err != nil {
			return err
		}
		if err := enqueueEvent(ctx, tx, TopicPaymentSucceeded, paymentEvent(p, "", now), now); err != nil {
			return err
		}
		return uc.settleBooking(ctx, tx, p, appointment.StatusConfirmed, "", now)
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.PaymentOutcome(payment.StatusSucceeded.String())
	return toPaymentView(out), nil
}

func (uc *paymentUseCaseImpl) MarkFailure(ctx context.Context, id uuid.UUID, reason string) (*queries.PaymentView, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "payment failed"
	}

	var out *payment.Payment
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := lockPayment(ctx, tx, id)
		if err != nil {
			return err
		}
		now := uc.clock.Now()
		changed, err := p.MarkFailed(reason, now)
		if err != nil {
			return err
		}
		out = p
		if !changed {
			return nil
		}
		if err := tx.Payments().UpdateStatus(ctx, tx.DB(), p); err != nil {
			return err
		}
		if err := enqueueEvent(ctx, tx, TopicPaymentFailed, paymentEvent(p, reason, now), now); err != nil {
			return err
		}
		return uc.settleBooking(ctx, tx, p, appointment.StatusCancelled, reason, now)
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.PaymentOutcome(payment.StatusFailed.String())
	return toPaymentView(out), nil
}

// Confirm charges through the provider outside any transaction and records the
// outcome afterwards. Exhausted retries cancel the booking.
func (uc *paymentUseCaseImpl) Confirm(ctx context.Context, id uuid.UUID, token string) (*queries.PaymentView, error) {
	ctx, span := tracer.Start(ctx, "payment.confirm")
	defer span.End()
	span.SetAttributes(attribute.String("payment.id", id.String()))

	if strings.TrimSpace(token) == "" {
		return nil, ErrPaymentTokenMissing
	}

	var p *payment.Payment
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		p, err = lockPayment(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	switch p.Status() {
	case payment.StatusSucceeded:
		return toPaymentView(p), nil
	case payment.StatusFailed:
		return nil, errs.Wrapf(payment.ErrInvalidTransition, "%s -> %s", p.Status(), payment.StatusSucceeded)
	}

	res, chargeErr := uc.provider.Charge(ctx, shared.ChargeRequest{
		PaymentID: p.ID(),
		Amount:    p.Quote().Total,
		Currency:  p.Quote().Currency,
		Token:     token,
	})
	if chargeErr == nil {
		view, err := uc.MarkSuccess(ctx, id, res.Reference)
		if err != nil && errs.Is(err, payment.ErrInvalidTransition) {
			return nil, uc.flagCapturedCharge(ctx, id, res.Reference, err)
		}
		return view, err
	}

	span.RecordError(chargeErr)
	span.SetStatus(codes.Error, "charge failed")
	uc.logger.WarnContext(ctx, "payment charge failed",
		"payment_id", id,
		"error", chargeErr.Error())

	// the request context may already be done after a provider timeout
	settleCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if _, err := uc.MarkFailure(settleCtx, id, chargeErr.Error()); err != nil {
		return nil, errs.Wrap(err, "record provider failure")
	}
	return nil, errs.Wrap(ErrPaymentFailed, chargeErr.Error())
}

// flagCapturedCharge records a refund for money the provider took after the
// payment was closed, typically by a cancel or sweep racing the charge.
func (uc *paymentUseCaseImpl) flagCapturedCharge(ctx context.Context, id uuid.UUID, ref string, cause error) error {
	uc.logger.ErrorContext(ctx, "charge captured for closed payment",
		"payment_id", id,
		"provider_ref", ref,
		"error", cause.Error())

	settleCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	err := uc.uow.Within(settleCtx, func(ctx context.Context, tx shared.Tx) error {
		p, err := lockPayment(ctx, tx, id)
		if err != nil {
			return err
		}
		now := uc.clock.Now()
		ev := paymentEvent(p, "charge captured after payment closed", now)
		ev.ProviderRef = ref
		return enqueueEvent(ctx, tx, TopicPaymentRefundRequired, ev, now)
	})
	if err != nil {
		return errs.Wrapf(err, "record refund for provider_ref %s", ref)
	}
	uc.metrics.PaymentOutcome("refund_required")
	return errs.Wrapf(ErrChargeNeedsRefund, "provider_ref %s", ref)
}

// settleBooking moves a pending booking to match its payment. A payment that
// succeeds after the booking was swept is flagged for refund instead.
func (uc *paymentUseCaseImpl) settleBooking(ctx context.Context, tx shared.Tx, p *payment.Payment, to appointment.Status, reason string, now time.Time) error {
	appt, err := tx.Reads().AppointmentForUpdate(ctx, p.BookingID())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrBookingNotFound
		}
		return err
	}

	from := appt.Status()
	if from != appointment.StatusPending {
		if to == appointment.StatusConfirmed && from == appointment.StatusCancelled {
			uc.logger.WarnContext(ctx, "payment succeeded for cancelled booking",
				"payment_id", p.ID(),
				"booking_id", appt.ID())
			return enqueueEvent(ctx, tx, TopicPaymentRefundRequired, paymentEvent(p, "booking already cancelled", now), now)
		}
		return nil
	}

	if err := appt.TransitionTo(to, reason, now); err != nil {
		return err
	}
	if err := tx.Appointments().UpdateStatus(ctx, tx.DB(), appt); err != nil {
		return err
	}
	uc.metrics.StatusChanged(from.String(), to.String())
	return enqueueEvent(ctx, tx, TopicAppointmentStatusChanged, appointmentEvent(appt, from, nil, now), now)
}

func lockPayment(ctx context.Context, tx shared.Tx, id uuid.UUID) (*payment.Payment, error) {
	p, err := tx.Reads().PaymentForUpdate(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return p, nil
}

func toPaymentView(p *payment.Payment) *queries.PaymentView {
	q := p.Quote()
	return &queries.PaymentView{
		ID:            p.ID(),
		BookingID:     p.BookingID(),
		BaseAmount:    q.Base,
		TaxAmount:     q.Tax,
		Amount:        q.Total,
		Currency:      q.Currency,
		Provider:      p.Provider().String(),
		ProviderRef:   p.ProviderRef(),
		Status:        p.Status().String(),
		FailureReason: p.FailureReason(),
		PaidAt:        p.PaidAt(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}
