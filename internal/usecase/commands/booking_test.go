//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"appointment-booking/internal/domain/appointment"
	"appointment-booking/internal/domain/schedule"
	"appointment-booking/internal/domain/user"
	"appointment-booking/internal/pkg/errs"
	"appointment-booking/internal/usecase/commands"
	"appointment-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBooking(t *testing.T) {
	t.Run("creates a pending appointment and an outbox event", func(t *testing.T) {
		f := newFixture(t)

		res, err := f.bookingUseCase().CreateBooking(context.Background(), f.bookingInput(tuesdayNine), nil)
		require.NoError(t, err)

		assert.False(t, res.IsReplayed)
		assert.Equal(t, "pending", res.Appointment.Status)
		assert.Equal(t, f.service.Name(), res.Appointment.ServiceName)
		assert.Equal(t, f.organiser.ID(), res.Appointment.OrganiserID)
		assert.True(t, res.Appointment.StartTime.Equal(tuesdayNine))
		assert.True(t, res.Appointment.EndTime.Equal(tuesdayNine.Add(30*time.Minute)))
		assert.Nil(t, res.Appointment.CustomerUserID)
		assert.Equal(t, []string{commands.TopicAppointmentCreated}, f.store.Topics())
		assert.Equal(t, 1, f.metrics.Created)
		assert.Equal(t, 1, f.metrics.LockWaits)
	})

	t.Run("links the appointment to an authenticated customer", func(t *testing.T) {
		f := newFixture(t)

		res, err := f.bookingUseCase().CreateBooking(context.Background(), f.bookingInput(tuesdayNine), f.actor(f.customer))
		require.NoError(t, err)
		require.NotNil(t, res.Appointment.CustomerUserID)
		assert.Equal(t, f.customer.ID(), *res.Appointment.CustomerUserID)
	})

	t.Run("input validation", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*commands.CreateBookingInput)
			errIs  error
		}{
			{name: "blank name", mutate: func(in *commands.CreateBookingInput) { in.CustomerName = "  " }, errIs: appointment.ErrInvalidCustomerName},
			{name: "bad email", mutate: func(in *commands.CreateBookingInput) { in.CustomerEmail = "nope" }, errIs: user.ErrInvalidEmail},
			{name: "missing start", mutate: func(in *commands.CreateBookingInput) { in.StartTime = time.Time{} }, errIs: commands.ErrStartTimeRequired},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newFixture(t)
				in := f.bookingInput(tuesdayNine)
				tt.mutate(&in)

				_, err := f.bookingUseCase().CreateBooking(context.Background(), in, nil)
				require.ErrorIs(t, err, tt.errIs)
				assert.True(t, errs.Is(err, errs.ErrValidation))
				assert.Empty(t, f.store.Appointments())
				assert.Equal(t, 1, f.metrics.Rejected["validation"])
			})
		}
	})

	t.Run("service must be bookable", func(t *testing.T) {
		tests := []struct {
			name  string
			build func(f *fixture) uuid.UUID
		}{
			{name: "missing", build: func(*fixture) uuid.UUID { return uuid.New() }},
			{name: "unpublished", build: func(f *fixture) uuid.UUID {
				svc := builder.NewServiceBuilder(f.organiser.ID()).Unpublished().BuildDomain()
				f.store.PutService(svc)
				return svc.ID()
			}},
			{name: "organiser removed", build: func(f *fixture) uuid.UUID {
				svc := builder.NewServiceBuilder(f.organiser.ID()).WithoutOrganiser().BuildDomain()
				f.store.PutService(svc)
				return svc.ID()
			}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newFixture(t)
				in := f.bookingInput(tuesdayNine)
				in.ServiceID = tt.build(f)

				_, err := f.bookingUseCase().CreateBooking(context.Background(), in, nil)
				require.ErrorIs(t, err, commands.ErrServiceNotFound)
				assert.True(t, errs.Is(err, errs.ErrNotFound))
			})
		}
	})

	t.Run("start time must match a future slot", func(t *testing.T) {
		tests := []struct {
			name  string
			start time.Time
			setup func(f *fixture, t *testing.T)
		}{
			{name: "off the slot grid", start: tuesdayNine.Add(10 * time.Minute)},
			{name: "outside the working window", start: tuesdayNine.Add(3 * time.Hour)},
			{name: "last partial slot", start: time.Date(2025, 3, 11, 11, 45, 0, 0, time.UTC)},
			{name: "weekend", start: time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC)},
			{name: "in the past", start: time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)},
			{name: "already started today", start: baseNow},
			{name: "override date", start: tuesdayNine, setup: func(f *fixture, t *testing.T) {
				d, err := schedule.ParseDate("2025-03-11")
				require.NoError(t, err)
				o, err := schedule.NewOverride(f.organiser.ID(), d, "conference", baseNow)
				require.NoError(t, err)
				f.store.PutOverride(o)
			}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newFixture(t)
				if tt.setup != nil {
					tt.setup(f, t)
				}

				_, err := f.bookingUseCase().CreateBooking(context.Background(), f.bookingInput(tt.start), nil)
				require.ErrorIs(t, err, commands.ErrInvalidSlot)
				assert.True(t, errs.Is(err, errs.ErrInvalidSlot))
				assert.Empty(t, f.store.Appointments())
			})
		}
	})

	t.Run("rejects bookings beyond capacity", func(t *testing.T) {
		f := newFixture(t)
		for range f.policy.Capacity {
			f.book(t, tuesdayNine)
		}

		_, err := f.bookingUseCase().CreateBooking(context.Background(), f.bookingInput(tuesdayNine), nil)
		require.ErrorIs(t, err, commands.ErrSlotFull)
		assert.True(t, errs.Is(err, errs.ErrSlotFull))
		assert.Len(t, f.store.Appointments(), f.policy.Capacity)
		assert.Equal(t, 1, f.metrics.Rejected["slot_full"])

		// the next slot is independent
		f.book(t, tuesdayNine.Add(30*time.Minute))
	})

	t.Run("cancelled bookings release capacity", func(t *testing.T) {
		f := newFixture(t)
		f.policy.Capacity = 1
		a := f.book(t, tuesdayNine)
		require.NoError(t, a.TransitionTo(appointment.StatusCancelled, "", baseNow))
		f.store.PutAppointment(a)

		f.book(t, tuesdayNine)
	})

	t.Run("concurrent requests never exceed capacity", func(t *testing.T) {
		f := newFixture(t)
		uc := f.bookingUseCase()

		const callers = 20
		var (
			wg              sync.WaitGroup
			mu              sync.Mutex
			succeeded, full int
		)
		for range callers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := uc.CreateBooking(context.Background(), f.bookingInput(tuesdayNine), nil)
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					succeeded++
				case errs.Is(err, errs.ErrSlotFull):
					full++
				default:
					t.Errorf("unexpected error: %v", err)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, f.policy.Capacity, succeeded)
		assert.Equal(t, callers-f.policy.Capacity, full)
		assert.Len(t, f.store.Appointments(), f.policy.Capacity)
	})
}

func TestCreateBookingIdempotency(t *testing.T) {
	t.Run("replays the original appointment", func(t *testing.T) {
		f := newFixture(t)
		in := f.bookingInput(tuesdayNine)
		in.IdempotencyKey = "key-1"

		first, err := f.bookingUseCase().CreateBooking(context.Background(), in, nil)
		require.NoError(t, err)
		second, err := f.bookingUseCase().CreateBooking(context.Background(), in, nil)
		require.NoError(t, err)

		assert.True(t, second.IsReplayed)
		assert.Equal(t, first.Appointment.ID, second.Appointment.ID)
		assert.Len(t, f.store.Appointments(), 1)
		assert.Equal(t, 1, f.store.IdempotencyKeys())
	})

	t.Run("email case does not change the request", func(t *testing.T) {
		f := newFixture(t)
		in := f.bookingInput(tuesdayNine)
		in.IdempotencyKey = "key-1"
		_, err := f.bookingUseCase().CreateBooking(context.Background(), in, nil)
		require.NoError(t, err)

		in.CustomerEmail = "CHRIS@example.com"
		res, err := f.bookingUseCase().CreateBooking(context.Background(), in, nil)
		require.NoError(t, err)
		assert.True(t, res.IsReplayed)
	})

	t.Run("rejects the key for a different request", func(t *testing.T) {
		f := newFixture(t)
		in := f.bookingInput(tuesdayNine)
		in.IdempotencyKey = "key-1"
		_, err := f.bookingUseCase().CreateBooking(context.Background(), in, nil)
		require.NoError(t, err)

		in.StartTime = tuesdayNine.Add(30 * time.Minute)
		_, err = f.bookingUseCase().CreateBooking(context.Background(), in, nil)
		require.ErrorIs(t, err, commands.ErrIdempotencyKeyReused)
		assert.True(t, errs.Is(err, errs.ErrConflict))
		assert.Len(t, f.store.Appointments(), 1)
	})

	t.Run("an expired key books again", func(t *testing.T) {
		f := newFixture(t)
		in := f.bookingInput(tuesdayNine)
		in.IdempotencyKey = "key-1"
		first, err := f.bookingUseCase().CreateBooking(context.Background(), in, nil)
		require.NoError(t, err)

		f.clock.Add(f.policy.IdempotencyTTL)
		in.StartTime = time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)
		second, err := f.bookingUseCase().CreateBooking(context.Background(), in, nil)
		require.NoError(t, err)

		assert.False(t, second.IsReplayed)
		assert.NotEqual(t, first.Appointment.ID, second.Appointment.ID)
		assert.Equal(t, 1, f.store.IdempotencyKeys())
	})

	t.Run("a failed booking does not consume the key", func(t *testing.T) {
		f := newFixture(t)
		f.policy.Capacity = 1
		f.book(t, tuesdayNine)

		in := f.bookingInput(tuesdayNine)
		in.IdempotencyKey = "key-1"
		_, err := f.bookingUseCase().CreateBooking(context.Background(), in, nil)
		require.ErrorIs(t, err, commands.ErrSlotFull)
		assert.Zero(t, f.store.IdempotencyKeys())
	})
}
