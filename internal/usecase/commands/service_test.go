//go:build unit

package commands_test

import (
	"context"
	"testing"

	"appointment-booking/internal/domain/service"
	"appointment-booking/internal/pkg/errs"
	"appointment-booking/internal/pkg/ptr"
	"appointment-booking/internal/usecase/commands"
	"appointment-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) serviceUseCase() commands.ServiceCommands {
	return commands.NewServiceUseCase(f.store, f.clock)
}

func TestCreateService(t *testing.T) {
	t.Run("organiser creates with defaults", func(t *testing.T) {
		f := newFixture(t)
		other := uuid.New()

		view, err := f.serviceUseCase().Create(context.Background(), commands.CreateServiceInput{
			OrganiserID: &other,
			Name:        "Massage",
		}, f.actor(f.organiser))
		require.NoError(t, err)

		require.NotNil(t, view.OrganiserID)
		assert.Equal(t, f.organiser.ID(), *view.OrganiserID, "organisers always create for themselves")
		assert.Equal(t, service.DefaultDuration, view.DurationMinutes)
		assert.True(t, view.IsPublished)
		assert.Nil(t, view.PriceMinor)
	})

	tests := []struct {
		name    string
		actor   func(f *fixture) *shared.Actor
		in      commands.CreateServiceInput
		wantErr error
	}{
		{name: "customer", actor: func(f *fixture) *shared.Actor { return f.actor(f.customer) }, in: commands.CreateServiceInput{Name: "X"}, wantErr: commands.ErrServiceForbidden},
		{name: "admin without organiser", actor: func(f *fixture) *shared.Actor { return f.actor(f.admin) }, in: commands.CreateServiceInput{Name: "X"}, wantErr: commands.ErrServiceForbidden},
		{name: "admin for missing organiser", actor: func(f *fixture) *shared.Actor { return f.actor(f.admin) }, in: commands.CreateServiceInput{Name: "X", OrganiserID: ptr.To(uuid.New())}, wantErr: commands.ErrOrganiserNotFound},
		{name: "zero duration", actor: func(f *fixture) *shared.Actor { return f.actor(f.organiser) }, in: commands.CreateServiceInput{Name: "X", DurationMinutes: ptr.To(0)}, wantErr: service.ErrInvalidDuration},
		{name: "blank name", actor: func(f *fixture) *shared.Actor { return f.actor(f.organiser) }, in: commands.CreateServiceInput{Name: " "}, wantErr: service.ErrInvalidName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.serviceUseCase().Create(context.Background(), tt.in, tt.actor(f))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUpdateService(t *testing.T) {
	f := newFixture(t)
	uc := f.serviceUseCase()

	view, err := uc.Update(context.Background(), f.service.ID(), commands.ServicePatch{
		Name:        ptr.To("Deep consultation"),
		IsPublished: ptr.To(false),
	}, f.actor(f.organiser))
	require.NoError(t, err)
	assert.Equal(t, "Deep consultation", view.Name)
	assert.False(t, view.IsPublished)
	assert.Equal(t, f.service.DurationMinutes(), view.DurationMinutes)
	require.NotNil(t, view.PriceMinor)

	view, err = uc.Update(context.Background(), f.service.ID(), commands.ServicePatch{ClearPrice: true}, f.actor(f.admin))
	require.NoError(t, err)
	assert.Nil(t, view.PriceMinor)

	_, err = uc.Update(context.Background(), f.service.ID(), commands.ServicePatch{}, &shared.Actor{UserID: uuid.New(), Role: "organiser"})
	require.ErrorIs(t, err, commands.ErrServiceForbidden)

	_, err = uc.Update(context.Background(), uuid.New(), commands.ServicePatch{}, f.actor(f.admin))
	require.ErrorIs(t, err, commands.ErrServiceNotFound)
}

func TestDeleteService(t *testing.T) {
	t.Run("refused while appointments reference it", func(t *testing.T) {
		f := newFixture(t)
		f.book(t, tuesdayNine)

		err := f.serviceUseCase().Delete(context.Background(), f.service.ID(), f.actor(f.organiser))
		require.ErrorIs(t, err, commands.ErrServiceInUse)
		assert.True(t, errs.Is(err, errs.ErrConflict))
	})

	t.Run("deletes an unused service", func(t *testing.T) {
		f := newFixture(t)

		require.NoError(t, f.serviceUseCase().Delete(context.Background(), f.service.ID(), f.actor(f.organiser)))
		_, ok := f.store.Service(f.service.ID())
		assert.False(t, ok)
	})
}
