package commands

//go:generate mockgen -source=lifecycle.go -destination=../../../tests/mock/commands/lifecycle.go -package=commands

import (
	"context"
	"log/slog"
	"time"

	"appointment-booking/internal/domain/appointment"
	"appointment-booking/internal/domain/payment"
	"appointment-booking/internal/domain/user"
	"appointment-booking/internal/infra"
	"appointment-booking/internal/pkg/clock"
	"appointment-booking/internal/pkg/errs"
	"appointment-booking/internal/usecase/queries"
	"appointment-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrAppointmentNotFound   = queries.ErrAppointmentNotFound
	ErrStatusChangeForbidden = errs.Mark(errs.New("not allowed to change this appointment's status"), errs.ErrForbidden)
)

type UpdateStatusInput struct {
	Status string
	Reason string
}

type LifecycleCommands interface {
	UpdateStatus(ctx context.Context, id uuid.UUID, in UpdateStatusInput, actor *shared.Actor) (*queries.AppointmentView, error)
}

type lifecycleUseCaseImpl struct {
	uow     shared.UnitOfWork
	views   AppointmentViewReader
	metrics shared.Metrics
	clock   clock.Clock
	logger  *slog.Logger
}

func NewLifecycleUseCase(
	uow shared.UnitOfWork,
	views AppointmentViewReader,
	metrics shared.Metrics,
	clk clock.Clock,
	logger *slog.Logger,
) LifecycleCommands {
	return &lifecycleUseCaseImpl{
		uow:     uow,
		views:   views,
		metrics: metrics,
		clock:   clk,
		logger:  logger,
	}
}

func (uc *lifecycleUseCaseImpl) UpdateStatus(ctx context.Context, id uuid.UUID, in UpdateStatusInput, actor *shared.Actor) (*queries.AppointmentView, error) {
	to, err := appointment.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}

	var from appointment.Status
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		appt, err := tx.Reads().AppointmentForUpdate(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrAppointmentNotFound
			}
			return err
		}
		if !canChangeStatus(actor, appt, to) {
			return ErrStatusChangeForbidden
		}

		from = appt.Status()
		now := uc.clock.Now()
		if err := appt.TransitionTo(to, in.Reason, now); err != nil {
			return err
		}
		if err := tx.Appointments().UpdateStatus(ctx, tx.DB(), appt); err != nil {
			return err
		}
		return afterTransition(ctx, tx, appt, from, actor, now)
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.StatusChanged(from.String(), to.String())
	uc.logger.InfoContext(ctx, "appointment status changed",
		"appointment_id", id,
		"from", from,
		"to", to)

	view, err := uc.views.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Wrap(err, "reload appointment")
	}
	return view, nil
}

// afterTransition settles payments and writes the outbox events that follow a
// status change. It runs in the transaction that persisted the change.
func afterTransition(ctx context.Context, tx shared.Tx, appt *appointment.Appointment, from appointment.Status, actor *shared.Actor, now time.Time) error {
	if appt.Status() == appointment.StatusCancelled {
		switch from {
		case appointment.StatusPending:
			if _, err := tx.Payments().FailInitiatedForBooking(ctx, tx.DB(), appt.ID(), "booking cancelled", now); err != nil {
				return err
			}
		case appointment.StatusConfirmed:
			if err := requestRefund(ctx, tx, appt, now); err != nil {
				return err
			}
		}
	}
	return enqueueEvent(ctx, tx, TopicAppointmentStatusChanged, appointmentEvent(appt, from, actor, now), now)
}

// requestRefund flags a succeeded payment for manual reconciliation. The
// payment row itself is never rewritten once it has succeeded.
func requestRefund(ctx context.Context, tx shared.Tx, appt *appointment.Appointment, now time.Time) error {
	p, err := tx.Reads().LivePaymentForBooking(ctx, appt.ID())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil
		}
		return err
	}
	if p.Status() != payment.StatusSucceeded {
		return nil
	}
	return enqueueEvent(ctx, tx, TopicPaymentRefundRequired, paymentEvent(p, "booking cancelled after payment", now), now)
}

func canChangeStatus(actor *shared.Actor, appt *appointment.Appointment, to appointment.Status) bool {
	switch {
	case actor == nil:
		return false
	case actor.IsAdmin():
		return true
	case actor.Is(user.RoleOrganiser):
		return appt.OrganiserID() == actor.UserID
	case actor.Is(user.RoleCustomer):
		return to == appointment.StatusCancelled && appt.IsCustomer(actor.UserID)
	default:
		return false
	}
}
