package commands

//go:generate mockgen -source=booking.go -destination=../../../tests/mock/commands/booking.go -package=commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"appointment-booking/internal/domain/appointment"
	"appointment-booking/internal/domain/schedule"
	"appointment-booking/internal/domain/slot"
	"appointment-booking/internal/domain/user"
	"appointment-booking/internal/infra"
	"appointment-booking/internal/pkg/clock"
	"appointment-booking/internal/pkg/errs"
	"appointment-booking/internal/usecase/queries"
	"appointment-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const createBookingEndpoint = "POST /api/bookings"

var tracer = otel.Tracer("appointment-booking/usecase/commands")

var (
	ErrStartTimeRequired    = errs.Mark(errs.New("start_time is required"), errs.ErrValidation)
	ErrIdempotencyKeyLength = errs.Mark(errs.New("Idempotency-Key must be at most 255 characters"), errs.ErrValidation)
	ErrInvalidSlot          = errs.Mark(errs.New("start_time does not match an open future slot"), errs.ErrInvalidSlot)
	ErrSlotFull             = errs.Mark(errs.New("this slot has reached capacity"), errs.ErrSlotFull)
	ErrIdempotencyKeyReused = errs.Mark(errs.New("Idempotency-Key was already used for a different request"), errs.ErrConflict)
)

type CreateBookingInput struct {
	ServiceID      uuid.UUID
	StartTime      time.Time
	CustomerName   string
	CustomerEmail  string
	IdempotencyKey string
}

type CreateBookingResult struct {
	Appointment *queries.AppointmentView
	IsReplayed  bool
}

// AppointmentViewReader loads the stored appointment for idempotent replays.
type AppointmentViewReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*queries.AppointmentView, error)
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, in CreateBookingInput, actor *shared.Actor) (*CreateBookingResult, error)
}

type bookingUseCaseImpl struct {
	uow     shared.UnitOfWork
	views   AppointmentViewReader
	policy  shared.BookingPolicy
	metrics shared.Metrics
	clock   clock.Clock
	logger  *slog.Logger
}

func NewBookingUseCase(
	uow shared.UnitOfWork,
	views AppointmentViewReader,
	policy shared.BookingPolicy,
	metrics shared.Metrics,
	clk clock.Clock,
	logger *slog.Logger,
) BookingCommands {
	return &bookingUseCaseImpl{
		uow:     uow,
		views:   views,
		policy:  policy,
		metrics: metrics,
		clock:   clk,
		logger:  logger,
	}
}

func (uc *bookingUseCaseImpl) CreateBooking(ctx context.Context, in CreateBookingInput, actor *shared.Actor) (result *CreateBookingResult, err error) {
	ctx, span := tracer.Start(ctx, "booking.create")
	defer span.End()
	span.SetAttributes(
		attribute.String("booking.service_id", in.ServiceID.String()),
		attribute.String("booking.start_time", in.StartTime.UTC().Format(time.RFC3339)),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "create booking failed")
			uc.metrics.BookingRejected(rejectReason(err))
		}
	}()

	customer, err := appointment.NewCustomer(in.CustomerName, in.CustomerEmail, customerUserID(actor))
	if err != nil {
		return nil, err
	}
	if in.StartTime.IsZero() {
		return nil, ErrStartTimeRequired
	}
	key := strings.TrimSpace(in.IdempotencyKey)
	if len(key) > 255 {
		return nil, ErrIdempotencyKeyLength
	}

	requestHash := bookingRequestHash(in, customer)
	now := uc.clock.Now()

	var expired bool
	if key != "" {
		replay, isExpired, rerr := uc.checkReplay(ctx, key, requestHash, now)
		if rerr != nil {
			return nil, rerr
		}
		if replay != nil {
			span.SetAttributes(attribute.Bool("booking.replayed", true))
			return &CreateBookingResult{Appointment: replay, IsReplayed: true}, nil
		}
		expired = isExpired
	}

	var view *queries.AppointmentView
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		svc, err := tx.Reads().ServiceByID(ctx, in.ServiceID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrServiceNotFound
			}
			return err
		}
		if !svc.Bookable() {
			return ErrServiceNotFound
		}
		organiserID := *svc.OrganiserID()

		interval, err := uc.resolveSlot(ctx, tx.Reads(), organiserID, svc.Duration(), in.StartTime, now)
		if err != nil {
			return err
		}

		lockStart := time.Now()
		if err := tx.Appointments().LockSlot(ctx, tx.DB(), organiserID, interval.Start); err != nil {
			return err
		}
		uc.metrics.SlotLockWait(time.Since(lockStart))

		booked, err := tx.Appointments().CountActiveAt(ctx, tx.DB(), organiserID, interval.Start)
		if err != nil {
			return err
		}
		if booked >= uc.policy.Capacity {
			return errs.Wrapf(ErrSlotFull, "%d/%d booked", booked, uc.policy.Capacity)
		}

		appt, err := appointment.NewAppointment(svc.ID(), organiserID, customer, interval.Start, interval.End, now)
		if err != nil {
			return err
		}
		if err := tx.Appointments().Create(ctx, tx.DB(), appt); err != nil {
			return err
		}

		if key != "" {
			if err := uc.recordKey(ctx, tx, key, requestHash, appt.ID(), expired, now); err != nil {
				return err
			}
		}

		if err := enqueueEvent(ctx, tx, TopicAppointmentCreated, appointmentEvent(appt, "", actor, now), now); err != nil {
			return err
		}

		view = appointmentToView(appt, svc.Name())
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.BookingCreated()
	span.SetAttributes(attribute.String("booking.appointment_id", view.ID.String()))
	uc.logger.InfoContext(ctx, "appointment booked",
		"appointment_id", view.ID,
		"organiser_id", view.OrganiserID,
		"start_time", view.StartTime)
	return &CreateBookingResult{Appointment: view}, nil
}

// checkReplay returns the original appointment for a live key with a matching
// request. A live key with another request is a conflict.
func (uc *bookingUseCaseImpl) checkReplay(ctx context.Context, key, requestHash string, now time.Time) (*queries.AppointmentView, bool, error) {
	rec, err := uc.uow.CommandReads().IdempotencyByKey(ctx, key, createBookingEndpoint)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if !rec.ExpiresAt.After(now) {
		return nil, true, nil
	}
	if rec.RequestHash != requestHash {
		return nil, false, ErrIdempotencyKeyReused
	}

	view, err := uc.views.FindByID(ctx, rec.AppointmentID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, false, queries.ErrAppointmentNotFound
		}
		return nil, false, err
	}
	return view, false, nil
}

func (uc *bookingUseCaseImpl) recordKey(ctx context.Context, tx shared.Tx, key, requestHash string, appointmentID uuid.UUID, expired bool, now time.Time) error {
	if expired {
		if _, err := tx.Idempotency().DeleteExpired(ctx, tx.DB(), now); err != nil {
			return err
		}
	}
	inserted, err := tx.Idempotency().Insert(ctx, tx.DB(), shared.IdempotencyRecord{
		Key:           key,
		Endpoint:      createBookingEndpoint,
		RequestHash:   requestHash,
		AppointmentID: appointmentID,
		ExpiresAt:     now.Add(uc.policy.IdempotencyTTL),
	}, now)
	if err != nil {
		return err
	}
	if !inserted {
		// Another request claimed the key between the replay check and now.
		return ErrIdempotencyKeyReused
	}
	return nil
}

// resolveSlot re-derives the plan from persisted schedule data; the slot cache
// is deliberately not consulted on the write path.
func (uc *bookingUseCaseImpl) resolveSlot(ctx context.Context, reads shared.CommandReads, organiserID uuid.UUID, duration time.Duration, start, now time.Time) (slot.Interval, error) {
	if !start.After(now) {
		return slot.Interval{}, errs.Wrap(ErrInvalidSlot, "start_time is not in the future")
	}
	local := start.In(uc.policy.Location)
	date := schedule.DateOf(local)

	week, err := reads.WeekFor(ctx, organiserID)
	if err != nil {
		return slot.Interval{}, err
	}
	overridden, err := reads.HasOverride(ctx, organiserID, date)
	if err != nil {
		return slot.Interval{}, err
	}
	intervals, err := slot.Plan(week, date, overridden, duration, uc.policy.Location)
	if err != nil {
		return slot.Interval{}, err
	}
	interval, ok := slot.Find(intervals, start)
	if !ok {
		return slot.Interval{}, errs.Wrapf(ErrInvalidSlot, "%s on %s", local.Format("15:04"), date)
	}
	return interval, nil
}

func customerUserID(actor *shared.Actor) *uuid.UUID {
	if actor == nil || actor.Role != user.RoleCustomer {
		return nil
	}
	id := actor.UserID
	return &id
}

func bookingRequestHash(in CreateBookingInput, c appointment.Customer) string {
	h := sha256.New()
	_, _ = fmt.Fprintf(h, "%s|%d|%s|%s", in.ServiceID, in.StartTime.Unix(), c.Name(), strings.ToLower(c.Email()))
	return hex.EncodeToString(h.Sum(nil))
}

func rejectReason(err error) string {
	switch {
	case errs.Is(err, errs.ErrSlotFull):
		return "slot_full"
	case errs.Is(err, errs.ErrInvalidSlot):
		return "invalid_slot"
	case errs.Is(err, errs.ErrValidation):
		return "validation"
	case errs.Is(err, errs.ErrNotFound):
		return "not_found"
	case errs.Is(err, errs.ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}

func appointmentToView(a *appointment.Appointment, serviceName string) *queries.AppointmentView {
	return &queries.AppointmentView{
		ID:             a.ID(),
		ServiceID:      a.ServiceID(),
		ServiceName:    serviceName,
		OrganiserID:    a.OrganiserID(),
		CustomerName:   a.Customer().Name(),
		CustomerEmail:  a.Customer().Email(),
		CustomerUserID: a.Customer().UserID(),
		StartTime:      a.Start(),
		EndTime:        a.End(),
		Status:         a.Status().String(),
		CancelReason:   a.CancelReason(),
		CreatedAt:      a.CreatedAt(),
		UpdatedAt:      a.UpdatedAt(),
	}
}
