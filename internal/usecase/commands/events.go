package commands

import (
	"context"
	"encoding/json"
	"time"

	"appointment-booking/internal/domain/appointment"
	"appointment-booking/internal/domain/payment"
	"appointment-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// Outbox topics. They double as AMQP routing keys.
const (
	TopicAppointmentCreated       = "appointment.created"
	TopicAppointmentStatusChanged = "appointment.status_changed"
	TopicPaymentSucceeded         = "payment.succeeded"
	TopicPaymentFailed            = "payment.failed"
	TopicPaymentRefundRequired    = "payment.refund_required"

	jobKindEvent = "event"
)

type AppointmentEvent struct {
	AppointmentID uuid.UUID  `json:"appointment_id"`
	ServiceID     uuid.UUID  `json:"service_id"`
	OrganiserID   uuid.UUID  `json:"organiser_id"`
	CustomerEmail string     `json:"customer_email"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       time.Time  `json:"end_time"`
	FromStatus    string     `json:"from_status,omitempty"`
	Status        string     `json:"status"`
	Reason        string     `json:"reason,omitempty"`
	ActorID       *uuid.UUID `json:"actor_id,omitempty"`
	OccurredAt    time.Time  `json:"occurred_at"`
}

type PaymentEvent struct {
	PaymentID     uuid.UUID `json:"payment_id"`
	AppointmentID uuid.UUID `json:"appointment_id"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	ProviderRef   string    `json:"provider_ref,omitempty"`
	Reason        string    `json:"reason,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func appointmentEvent(a *appointment.Appointment, from appointment.Status, actor *shared.Actor, now time.Time) AppointmentEvent {
	ev := AppointmentEvent{
		AppointmentID: a.ID(),
		ServiceID:     a.ServiceID(),
		OrganiserID:   a.OrganiserID(),
		CustomerEmail: a.Customer().Email(),
		StartTime:     a.Start(),
		EndTime:       a.End(),
		FromStatus:    from.String(),
		Status:        a.Status().String(),
		OccurredAt:    now,
	}
	if r := a.CancelReason(); r != nil {
		ev.Reason = *r
	}
	if actor != nil {
		id := actor.UserID
		ev.ActorID = &id
	}
	return ev
}

func paymentEvent(p *payment.Payment, reason string, now time.Time) PaymentEvent {
	ev := PaymentEvent{
		PaymentID:     p.ID(),
		AppointmentID: p.BookingID(),
		Amount:        p.Quote().Total,
		Currency:      p.Quote().Currency,
		Status:        p.Status().String(),
		Reason:        reason,
		OccurredAt:    now,
	}
	if ref := p.ProviderRef(); ref != nil {
		ev.ProviderRef = *ref
	}
	return ev
}

// enqueueEvent writes an outbox job in the caller's transaction.
func enqueueEvent(ctx context.Context, tx shared.Tx, topic string, payload any, now time.Time) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return tx.Notifications().Enqueue(ctx, tx.DB(), shared.NotificationJob{
		Kind:    jobKindEvent,
		Topic:   topic,
		Payload: body,
		RunAt:   now,
	}, now)
}
