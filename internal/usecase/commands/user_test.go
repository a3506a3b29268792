//go:build unit

package commands_test

import (
	"context"
	"testing"

	"appointment-booking/internal/domain/user"
	"appointment-booking/internal/pkg/errs"
	"appointment-booking/internal/usecase/commands"
	"appointment-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) userUseCase() commands.UserCommands {
	return commands.NewUserUseCase(f.store, f.cache, f.clock, discardLogger())
}

func TestRegisterUser(t *testing.T) {
	valid := commands.RegisterUserInput{Email: "New@Example.com", FullName: "Nina New", Role: "organiser"}

	t.Run("admin provisions a user", func(t *testing.T) {
		f := newFixture(t)
		id := uuid.New()
		in := valid
		in.ID = &id

		view, err := f.userUseCase().Register(context.Background(), in, f.actor(f.admin))
		require.NoError(t, err)
		assert.Equal(t, id, view.ID)
		assert.Equal(t, "new@example.com", view.Email)
		assert.True(t, f.store.HasUser(id))
	})

	tests := []struct {
		name    string
		actor   func(f *fixture) *shared.Actor
		mutate  func(*commands.RegisterUserInput)
		wantErr error
	}{
		{name: "organiser is not allowed", actor: func(f *fixture) *shared.Actor { return f.actor(f.organiser) }, wantErr: commands.ErrUserAdminOnly},
		{name: "anonymous is not allowed", actor: func(*fixture) *shared.Actor { return nil }, wantErr: commands.ErrUserAdminOnly},
		{name: "bad email", mutate: func(in *commands.RegisterUserInput) { in.Email = "x" }, wantErr: user.ErrInvalidEmail},
		{name: "bad role", mutate: func(in *commands.RegisterUserInput) { in.Role = "root" }, wantErr: user.ErrInvalidRole},
		{name: "email taken", mutate: func(in *commands.RegisterUserInput) { in.Email = "organiser@example.com" }, wantErr: commands.ErrUserExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			in := valid
			if tt.mutate != nil {
				tt.mutate(&in)
			}
			actor := f.actor(f.admin)
			if tt.actor != nil {
				actor = tt.actor(f)
			}

			_, err := f.userUseCase().Register(context.Background(), in, actor)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDeleteUser(t *testing.T) {
	t.Run("refuses while referenced", func(t *testing.T) {
		f := newFixture(t)

		err := f.userUseCase().Delete(context.Background(), f.organiser.ID(), false, f.actor(f.admin))
		require.ErrorIs(t, err, commands.ErrUserHasDependents)
		assert.True(t, errs.Is(err, errs.ErrConflict))
		assert.Contains(t, err.Error(), "services=1")
		assert.True(t, f.store.HasUser(f.organiser.ID()))
	})

	t.Run("deletes an unreferenced user", func(t *testing.T) {
		f := newFixture(t)

		err := f.userUseCase().Delete(context.Background(), f.customer.ID(), false, f.actor(f.admin))
		require.NoError(t, err)
		assert.False(t, f.store.HasUser(f.customer.ID()))
	})

	t.Run("force removes a customer's bookings", func(t *testing.T) {
		f := newFixture(t)
		res, err := f.bookingUseCase().CreateBooking(context.Background(), f.bookingInput(tuesdayNine), f.actor(f.customer))
		require.NoError(t, err)

		err = f.userUseCase().Delete(context.Background(), f.customer.ID(), true, f.actor(f.admin))
		require.NoError(t, err)
		_, found := f.store.Appointment(res.Appointment.ID)
		assert.False(t, found)
	})

	t.Run("force detaches an organiser's services and keeps history", func(t *testing.T) {
		f := newFixture(t)
		a := f.book(t, tuesdayNine)

		err := f.userUseCase().Delete(context.Background(), f.organiser.ID(), true, f.actor(f.admin))
		require.NoError(t, err)

		assert.False(t, f.store.HasUser(f.organiser.ID()))
		assert.Zero(t, f.store.ScheduleDays(f.organiser.ID()))
		svc, ok := f.store.Service(f.service.ID())
		require.True(t, ok)
		assert.Nil(t, svc.OrganiserID())
		assert.False(t, svc.IsPublished())
		_, found := f.store.Appointment(a.ID())
		assert.True(t, found)
		assert.Equal(t, 1, f.cache.Invalidations[f.organiser.ID()])
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newFixture(t)
		err := f.userUseCase().Delete(context.Background(), uuid.New(), true, f.actor(f.admin))
		require.ErrorIs(t, err, commands.ErrUserNotFound)
	})

	t.Run("admin only", func(t *testing.T) {
		f := newFixture(t)
		err := f.userUseCase().Delete(context.Background(), f.customer.ID(), true, f.actor(f.customer))
		require.ErrorIs(t, err, commands.ErrUserAdminOnly)
	})
}
