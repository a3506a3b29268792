//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"appointment-booking/internal/domain/appointment"
	"appointment-booking/internal/domain/payment"
	"appointment-booking/internal/usecase/commands"
	"appointment-booking/internal/usecase/shared"
	"appointment-booking/tests/common/fakes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) maintenanceUseCase(pub shared.EventPublisher, maxAttempts int) commands.MaintenanceCommands {
	relay := commands.RelayPolicy{BatchSize: 50, MaxAttempts: maxAttempts, RetryBase: time.Second}
	return commands.NewMaintenanceUseCase(f.store, pub, f.policy, relay, f.metrics, f.clock, discardLogger())
}

func TestSweepExpiredPending(t *testing.T) {
	f := newFixture(t)
	stale := f.book(t, tuesdayNine)
	q, err := payment.NewQuote(1000, 10, "INR")
	require.NoError(t, err)
	p := payment.NewPayment(stale.ID(), q, payment.ProviderMock, baseNow)
	f.store.PutPayment(p)

	staleConfirmed := f.confirmed(t, tuesdayNine.Add(30*time.Minute))

	f.clock.Add(10 * time.Minute)
	fresh := f.book(t, tuesdayNine.Add(time.Hour))

	f.clock.Add(6 * time.Minute)
	n, err := f.maintenanceUseCase(&fakes.Publisher{}, 3).SweepExpiredPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, _ := f.store.Appointment(stale.ID())
	assert.Equal(t, appointment.StatusCancelled, got.Status())
	require.NotNil(t, got.CancelReason())
	got, _ = f.store.Appointment(fresh.ID())
	assert.Equal(t, appointment.StatusPending, got.Status())
	got, _ = f.store.Appointment(staleConfirmed.ID())
	assert.Equal(t, appointment.StatusConfirmed, got.Status())

	gotPayment, _ := f.store.Payment(p.ID())
	assert.Equal(t, payment.StatusFailed, gotPayment.Status())
	assert.Equal(t, 1, f.metrics.Swept)
	assert.Contains(t, f.store.Topics(), commands.TopicAppointmentStatusChanged)

	n, err = f.maintenanceUseCase(&fakes.Publisher{}, 3).SweepExpiredPending(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRelayOutbox(t *testing.T) {
	t.Run("publishes queued jobs once", func(t *testing.T) {
		f := newFixture(t)
		f.book(t, tuesdayNine)
		f.book(t, tuesdayNine.Add(30*time.Minute))
		pub := &fakes.Publisher{}
		uc := f.maintenanceUseCase(pub, 3)

		sent, err := uc.RelayOutbox(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, sent)
		require.Len(t, pub.Messages, 2)
		assert.Equal(t, commands.TopicAppointmentCreated, pub.Messages[0].Topic)
		assert.JSONEq(t, string(f.store.Jobs()[0].Payload), string(pub.Messages[0].Body))

		sent, err = uc.RelayOutbox(context.Background())
		require.NoError(t, err)
		assert.Zero(t, sent)
		for _, j := range f.store.Jobs() {
			assert.Equal(t, shared.JobStatusSent, j.Status)
		}
	})

	t.Run("backs off and gives up after max attempts", func(t *testing.T) {
		f := newFixture(t)
		f.book(t, tuesdayNine)
		pub := &fakes.Publisher{FailTimes: 10}
		uc := f.maintenanceUseCase(pub, 2)

		_, err := uc.RelayOutbox(context.Background())
		require.NoError(t, err)
		job := f.store.Jobs()[0]
		assert.Equal(t, shared.JobStatusQueued, job.Status)
		assert.Equal(t, 1, job.Attempts)
		require.NotNil(t, job.LastError)
		assert.True(t, job.RunAt.After(f.clock.Now()))

		// not due yet
		_, err = uc.RelayOutbox(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, f.store.Jobs()[0].Attempts)

		f.clock.Add(time.Minute)
		_, err = uc.RelayOutbox(context.Background())
		require.NoError(t, err)
		job = f.store.Jobs()[0]
		assert.Equal(t, shared.JobStatusFailed, job.Status)
		assert.Equal(t, 2, job.Attempts)
		assert.Equal(t, 1, f.metrics.Relayed[shared.JobStatusFailed])
	})
}

func TestCleanupIdempotency(t *testing.T) {
	f := newFixture(t)
	in := f.bookingInput(tuesdayNine)
	in.IdempotencyKey = "key-1"
	_, err := f.bookingUseCase().CreateBooking(context.Background(), in, nil)
	require.NoError(t, err)
	uc := f.maintenanceUseCase(&fakes.Publisher{}, 3)

	removed, err := uc.CleanupIdempotency(context.Background())
	require.NoError(t, err)
	assert.Zero(t, removed)

	f.clock.Add(f.policy.IdempotencyTTL)
	removed, err = uc.CleanupIdempotency(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	assert.Zero(t, f.store.IdempotencyKeys())
}
