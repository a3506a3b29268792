//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"appointment-booking/internal/domain/appointment"
	"appointment-booking/internal/domain/payment"
	"appointment-booking/internal/domain/service"
	"appointment-booking/internal/domain/user"
	"appointment-booking/internal/pkg/clock"
	"appointment-booking/internal/usecase/commands"
	"appointment-booking/internal/usecase/shared"
	"appointment-booking/tests/common/builder"
	"appointment-booking/tests/common/fakes"

	"github.com/stretchr/testify/require"
)

// Monday 2025-03-10 08:00 UTC.
var baseNow = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

// Tuesday 09:00, the first slot of an open weekday.
var tuesdayNine = time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC)

type fixture struct {
	store     *fakes.Store
	clock     *clock.MockClock
	metrics   *fakes.Metrics
	cache     *fakes.SlotCache
	policy    shared.BookingPolicy
	organiser *user.User
	customer  *user.User
	admin     *user.User
	service   *service.Service
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	organiser, err := builder.NewUserBuilder().BuildDomain()
	require.NoError(t, err)
	customer, err := builder.NewUserBuilder().AsCustomer().BuildDomain()
	require.NoError(t, err)
	admin, err := builder.NewUserBuilder().AsAdmin().BuildDomain()
	require.NoError(t, err)

	week, err := builder.NewWeekBuilder(organiser.ID()).Weekdays("09:00", "12:00").Build()
	require.NoError(t, err)
	svc := builder.NewServiceBuilder(organiser.ID()).WithPrice(100000).BuildDomain()

	store := fakes.NewStore()
	store.PutUser(organiser)
	store.PutUser(customer)
	store.PutUser(admin)
	store.PutWeek(week)
	store.PutService(svc)

	return &fixture{
		store:   store,
		clock:   clock.NewMockClock(baseNow),
		metrics: fakes.NewMetrics(),
		cache:   fakes.NewSlotCache(),
		policy: shared.BookingPolicy{
			Capacity:       3,
			Location:       time.UTC,
			PendingTimeout: 15 * time.Minute,
			SweepBatch:     100,
			IdempotencyTTL: 24 * time.Hour,
		},
		organiser: organiser,
		customer:  customer,
		admin:     admin,
		service:   svc,
	}
}

func (f *fixture) actor(u *user.User) *shared.Actor {
	return &shared.Actor{UserID: u.ID(), Role: u.Role()}
}

func (f *fixture) bookingUseCase() commands.BookingCommands {
	return commands.NewBookingUseCase(f.store, f.store, f.policy, f.metrics, f.clock, discardLogger())
}

func (f *fixture) lifecycleUseCase() commands.LifecycleCommands {
	return commands.NewLifecycleUseCase(f.store, f.store, f.metrics, f.clock, discardLogger())
}

func (f *fixture) paymentUseCase(provider shared.PaymentProvider) commands.PaymentCommands {
	policy := payment.Policy{Currency: "INR", TaxRatePercent: 10, DefaultPriceMinor: 50000}
	return commands.NewPaymentUseCase(f.store, provider, policy, f.metrics, f.clock, discardLogger())
}

func (f *fixture) bookingInput(start time.Time) commands.CreateBookingInput {
	return commands.CreateBookingInput{
		ServiceID:     f.service.ID(),
		StartTime:     start,
		CustomerName:  "Chris Customer",
		CustomerEmail: "chris@example.com",
	}
}

// book creates a pending appointment through the booking use case.
func (f *fixture) book(t *testing.T, start time.Time) *appointment.Appointment {
	t.Helper()
	res, err := f.bookingUseCase().CreateBooking(context.Background(), f.bookingInput(start), nil)
	require.NoError(t, err)
	a, ok := f.store.Appointment(res.Appointment.ID)
	require.True(t, ok)
	return a
}

func (f *fixture) confirmed(t *testing.T, start time.Time) *appointment.Appointment {
	t.Helper()
	a := f.book(t, start)
	require.NoError(t, a.TransitionTo(appointment.StatusConfirmed, "", f.clock.Now()))
	f.store.PutAppointment(a)
	return a
}
