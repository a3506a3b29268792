//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"appointment-booking/internal/domain/appointment"
	"appointment-booking/internal/domain/payment"
	"appointment-booking/internal/pkg/errs"
	"appointment-booking/internal/usecase/commands"
	"appointment-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    []appointment.Status
		to      string
		wantErr error
	}{
		{name: "pending to confirmed", to: "confirmed"},
		{name: "pending to cancelled", to: "cancelled"},
		{name: "confirmed to completed", from: []appointment.Status{appointment.StatusConfirmed}, to: "completed"},
		{name: "confirmed to cancelled", from: []appointment.Status{appointment.StatusConfirmed}, to: "cancelled"},
		{name: "pending to completed", to: "completed", wantErr: appointment.ErrInvalidTransition},
		{name: "completed is terminal", from: []appointment.Status{appointment.StatusConfirmed, appointment.StatusCompleted}, to: "cancelled", wantErr: appointment.ErrInvalidTransition},
		{name: "cancelled is terminal", from: []appointment.Status{appointment.StatusCancelled}, to: "confirmed", wantErr: appointment.ErrInvalidTransition},
		{name: "unknown status", to: "archived", wantErr: appointment.ErrInvalidStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			a := f.book(t, tuesdayNine)
			for _, s := range tt.from {
				require.NoError(t, a.TransitionTo(s, "", baseNow))
			}
			f.store.PutAppointment(a)
			before := a.Status()
			jobsBefore := len(f.store.Jobs())

			view, err := f.lifecycleUseCase().UpdateStatus(context.Background(), a.ID(),
				commands.UpdateStatusInput{Status: tt.to}, f.actor(f.admin))

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				stored, _ := f.store.Appointment(a.ID())
				assert.Equal(t, before, stored.Status(), "failed transition must not mutate")
				assert.Len(t, f.store.Jobs(), jobsBefore)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, view.Status)
			assert.Equal(t, commands.TopicAppointmentStatusChanged, f.store.Topics()[len(f.store.Topics())-1])
			assert.Equal(t, 1, f.metrics.Transitions[before.String()+"->"+tt.to])
		})
	}
}

func TestUpdateStatusAuthorization(t *testing.T) {
	tests := []struct {
		name    string
		actor   func(f *fixture, a *appointment.Appointment) *shared.Actor
		to      string
		allowed bool
	}{
		{name: "anonymous", actor: func(*fixture, *appointment.Appointment) *shared.Actor { return nil }, to: "cancelled"},
		{name: "owning organiser confirms", actor: func(f *fixture, _ *appointment.Appointment) *shared.Actor { return f.actor(f.organiser) }, to: "confirmed", allowed: true},
		{name: "other organiser", actor: func(*fixture, *appointment.Appointment) *shared.Actor {
			return &shared.Actor{UserID: uuid.New(), Role: "organiser"}
		}, to: "confirmed"},
		{name: "owning customer cancels", actor: func(f *fixture, _ *appointment.Appointment) *shared.Actor { return f.actor(f.customer) }, to: "cancelled", allowed: true},
		{name: "owning customer cannot confirm", actor: func(f *fixture, _ *appointment.Appointment) *shared.Actor { return f.actor(f.customer) }, to: "confirmed"},
		{name: "other customer cannot cancel", actor: func(*fixture, *appointment.Appointment) *shared.Actor {
			return &shared.Actor{UserID: uuid.New(), Role: "customer"}
		}, to: "cancelled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			res, err := f.bookingUseCase().CreateBooking(context.Background(), f.bookingInput(tuesdayNine), f.actor(f.customer))
			require.NoError(t, err)
			a, _ := f.store.Appointment(res.Appointment.ID)

			_, err = f.lifecycleUseCase().UpdateStatus(context.Background(), a.ID(),
				commands.UpdateStatusInput{Status: tt.to, Reason: "changed plans"}, tt.actor(f, a))

			if tt.allowed {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, commands.ErrStatusChangeForbidden)
			assert.True(t, errs.Is(err, errs.ErrForbidden))
			stored, _ := f.store.Appointment(a.ID())
			assert.Equal(t, appointment.StatusPending, stored.Status())
		})
	}
}

func TestUpdateStatusSideEffects(t *testing.T) {
	t.Run("unknown appointment", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.lifecycleUseCase().UpdateStatus(context.Background(), uuid.New(),
			commands.UpdateStatusInput{Status: "confirmed"}, f.actor(f.admin))
		require.ErrorIs(t, err, commands.ErrAppointmentNotFound)
	})

	t.Run("cancel records the reason", func(t *testing.T) {
		f := newFixture(t)
		a := f.book(t, tuesdayNine)

		view, err := f.lifecycleUseCase().UpdateStatus(context.Background(), a.ID(),
			commands.UpdateStatusInput{Status: "cancelled", Reason: " sick "}, f.actor(f.organiser))
		require.NoError(t, err)
		require.NotNil(t, view.CancelReason)
		assert.Equal(t, "sick", *view.CancelReason)
	})

	t.Run("cancelling a pending booking fails its initiated payment", func(t *testing.T) {
		f := newFixture(t)
		a := f.book(t, tuesdayNine)
		q, err := payment.NewQuote(1000, 10, "INR")
		require.NoError(t, err)
		p := payment.NewPayment(a.ID(), q, payment.ProviderMock, baseNow)
		f.store.PutPayment(p)

		_, err = f.lifecycleUseCase().UpdateStatus(context.Background(), a.ID(),
			commands.UpdateStatusInput{Status: "cancelled"}, f.actor(f.admin))
		require.NoError(t, err)

		stored, _ := f.store.Payment(p.ID())
		assert.Equal(t, payment.StatusFailed, stored.Status())
		assert.NotContains(t, f.store.Topics(), commands.TopicPaymentRefundRequired)
	})

	t.Run("cancelling a paid booking requests a refund", func(t *testing.T) {
		f := newFixture(t)
		a := f.confirmed(t, tuesdayNine)
		q, err := payment.NewQuote(1000, 10, "INR")
		require.NoError(t, err)
		p := payment.NewPayment(a.ID(), q, payment.ProviderMock, baseNow)
		_, err = p.MarkSucceeded("mock_ref", baseNow.Add(time.Minute))
		require.NoError(t, err)
		f.store.PutPayment(p)

		_, err = f.lifecycleUseCase().UpdateStatus(context.Background(), a.ID(),
			commands.UpdateStatusInput{Status: "cancelled"}, f.actor(f.admin))
		require.NoError(t, err)

		stored, _ := f.store.Payment(p.ID())
		assert.Equal(t, payment.StatusSucceeded, stored.Status(), "succeeded payments are immutable")
		assert.Contains(t, f.store.Topics(), commands.TopicPaymentRefundRequired)
	})

	t.Run("a rolled back transaction leaves no event", func(t *testing.T) {
		f := newFixture(t)
		a := f.book(t, tuesdayNine)
		jobsBefore := len(f.store.Jobs())
		f.store.FailCommit = assert.AnError

		_, err := f.lifecycleUseCase().UpdateStatus(context.Background(), a.ID(),
			commands.UpdateStatusInput{Status: "confirmed"}, f.actor(f.admin))
		require.ErrorIs(t, err, assert.AnError)

		stored, _ := f.store.Appointment(a.ID())
		assert.Equal(t, appointment.StatusPending, stored.Status())
		assert.Len(t, f.store.Jobs(), jobsBefore)
	})
}
