//go:build unit

package appointment_test

import (
	"testing"
	"time"

	"appointment-booking/internal/domain/appointment"
	"appointment-booking/internal/domain/user"
	"appointment-booking/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func newPending(t *testing.T) *appointment.Appointment {
	t.Helper()
	customer, err := appointment.NewCustomer("Ada Lovelace", "ada@example.com", nil)
	require.NoError(t, err)
	start := now.Add(time.Hour)
	a, err := appointment.NewAppointment(uuid.New(), uuid.New(), customer, start, start.Add(30*time.Minute), now)
	require.NoError(t, err)
	return a
}

func TestTransitionTable(t *testing.T) {
	all := appointment.AllStatuses()
	allowed := map[[2]appointment.Status]bool{
		{appointment.StatusPending, appointment.StatusConfirmed}:   true,
		{appointment.StatusPending, appointment.StatusCancelled}:   true,
		{appointment.StatusConfirmed, appointment.StatusCompleted}: true,
		{appointment.StatusConfirmed, appointment.StatusCancelled}: true,
	}
	for _, from := range all {
		for _, to := range all {
			want := allowed[[2]appointment.Status{from, to}]
			assert.Equal(t, want, appointment.CanTransition(from, to), "%s -> %s", from, to)
		}
	}
	assert.True(t, appointment.StatusCompleted.IsTerminal())
	assert.True(t, appointment.StatusCancelled.IsTerminal())
	assert.False(t, appointment.StatusPending.IsTerminal())
}

func TestTransitionTo(t *testing.T) {
	t.Run("pending to confirmed to completed", func(t *testing.T) {
		a := newPending(t)
		require.NoError(t, a.TransitionTo(appointment.StatusConfirmed, "", now))
		require.NoError(t, a.TransitionTo(appointment.StatusCompleted, "", now))
		assert.Equal(t, appointment.StatusCompleted, a.Status())
	})

	t.Run("cancel keeps reason", func(t *testing.T) {
		a := newPending(t)
		require.NoError(t, a.TransitionTo(appointment.StatusCancelled, " customer request ", now))
		require.NotNil(t, a.CancelReason())
		assert.Equal(t, "customer request", *a.CancelReason())
	})

	t.Run("invalid transition leaves state untouched", func(t *testing.T) {
		a := newPending(t)
		before := a.UpdatedAt()
		err := a.TransitionTo(appointment.StatusCompleted, "", now.Add(time.Minute))
		require.ErrorIs(t, err, appointment.ErrInvalidTransition)
		assert.True(t, errs.Is(err, errs.ErrInvalidTransition))
		assert.Equal(t, appointment.StatusPending, a.Status())
		assert.Equal(t, before, a.UpdatedAt())
	})

	t.Run("terminal states reject everything", func(t *testing.T) {
		a := newPending(t)
		require.NoError(t, a.TransitionTo(appointment.StatusCancelled, "", now))
		for _, to := range appointment.AllStatuses() {
			assert.ErrorIs(t, a.TransitionTo(to, "", now), appointment.ErrInvalidTransition)
		}
	})
}

func TestParseStatus(t *testing.T) {
	s, err := appointment.ParseStatus("confirmed")
	require.NoError(t, err)
	assert.Equal(t, appointment.StatusConfirmed, s)

	_, err = appointment.ParseStatus("done")
	assert.ErrorIs(t, err, appointment.ErrInvalidStatus)
}

func TestNewCustomer(t *testing.T) {
	_, err := appointment.NewCustomer("", "ada@example.com", nil)
	assert.ErrorIs(t, err, appointment.ErrInvalidCustomerName)

	_, err = appointment.NewCustomer("Ada", "not-an-email", nil)
	assert.ErrorIs(t, err, user.ErrInvalidEmail)

	c, err := appointment.NewCustomer("Ada", "ADA@example.com", nil)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", c.Email())
}

func TestExpiredAt(t *testing.T) {
	a := newPending(t)
	assert.False(t, a.ExpiredAt(now.Add(14*time.Minute), 15*time.Minute))
	assert.True(t, a.ExpiredAt(now.Add(15*time.Minute), 15*time.Minute))

	require.NoError(t, a.TransitionTo(appointment.StatusConfirmed, "", now))
	assert.False(t, a.ExpiredAt(now.Add(time.Hour), 15*time.Minute))
}

func TestNewAppointmentRejectsEmptyRange(t *testing.T) {
	customer, _ := appointment.NewCustomer("Ada", "ada@example.com", nil)
	_, err := appointment.NewAppointment(uuid.New(), uuid.New(), customer, now, now, now)
	assert.ErrorIs(t, err, appointment.ErrInvalidTimeRange)
}
