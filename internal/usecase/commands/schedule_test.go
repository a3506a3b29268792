//go:build unit

package commands_test

import (
	"context"
	"testing"

	"appointment-booking/internal/domain/schedule"
	"appointment-booking/internal/pkg/errs"
	"appointment-booking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) scheduleUseCase() commands.ScheduleCommands {
	return commands.NewScheduleUseCase(f.store, f.cache, f.clock, discardLogger())
}

func TestBulkSetSchedule(t *testing.T) {
	t.Run("replaces the week and invalidates cached slots", func(t *testing.T) {
		f := newFixture(t)

		view, err := f.scheduleUseCase().BulkSet(context.Background(), f.organiser.ID(), []commands.ScheduleEntryInput{
			{DayOfWeek: 2, StartTime: "13:00", EndTime: "17:00"},
			{DayOfWeek: 0, StartTime: "09:00", EndTime: "12:00"},
			{DayOfWeek: 6, IsUnavailable: true},
		}, f.actor(f.organiser))
		require.NoError(t, err)

		require.Len(t, view.Days, 3)
		assert.Equal(t, 0, view.Days[0].DayOfWeek)
		assert.Equal(t, "13:00", view.Days[1].StartTime)
		assert.True(t, view.Days[2].IsUnavailable)
		assert.Equal(t, 3, f.store.ScheduleDays(f.organiser.ID()))
		assert.Equal(t, 1, f.cache.Invalidations[f.organiser.ID()])
	})

	tests := []struct {
		name    string
		entries []commands.ScheduleEntryInput
		wantErr error
	}{
		{name: "duplicate day", entries: []commands.ScheduleEntryInput{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"},
			{DayOfWeek: 1, StartTime: "11:00", EndTime: "12:00"},
		}, wantErr: schedule.ErrDuplicateWeekday},
		{name: "inverted window", entries: []commands.ScheduleEntryInput{
			{DayOfWeek: 1, StartTime: "12:00", EndTime: "09:00"},
		}, wantErr: schedule.ErrStartNotBeforeEnd},
		{name: "day out of range", entries: []commands.ScheduleEntryInput{
			{DayOfWeek: 7, StartTime: "09:00", EndTime: "10:00"},
		}, wantErr: schedule.ErrInvalidWeekday},
		{name: "malformed time", entries: []commands.ScheduleEntryInput{
			{DayOfWeek: 1, StartTime: "9am", EndTime: "10:00"},
		}, wantErr: schedule.ErrInvalidTimeOfDay},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.scheduleUseCase().BulkSet(context.Background(), f.organiser.ID(), tt.entries, f.actor(f.organiser))
			require.ErrorIs(t, err, tt.wantErr)
			assert.True(t, errs.Is(err, errs.ErrValidation))
			assert.Equal(t, 5, f.store.ScheduleDays(f.organiser.ID()), "week must be untouched")
			assert.Zero(t, f.cache.Invalidations[f.organiser.ID()])
		})
	}

	t.Run("other organisers are forbidden", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.scheduleUseCase().BulkSet(context.Background(), uuid.New(), nil, f.actor(f.organiser))
		require.ErrorIs(t, err, commands.ErrScheduleForbidden)
	})

	t.Run("admin on a missing organiser", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.scheduleUseCase().BulkSet(context.Background(), uuid.New(), nil, f.actor(f.admin))
		require.ErrorIs(t, err, commands.ErrOrganiserNotFound)
	})
}

func TestScheduleDaysAndOverrides(t *testing.T) {
	f := newFixture(t)
	uc := f.scheduleUseCase()
	ctx := context.Background()
	org := f.organiser.ID()
	actor := f.actor(f.organiser)

	require.NoError(t, uc.UpsertDay(ctx, org, commands.ScheduleEntryInput{DayOfWeek: 5, StartTime: "10:00", EndTime: "14:00"}, actor))
	assert.Equal(t, 6, f.store.ScheduleDays(org))

	require.NoError(t, uc.DeleteDay(ctx, org, 5, actor))
	assert.Equal(t, 5, f.store.ScheduleDays(org))
	require.ErrorIs(t, uc.DeleteDay(ctx, org, 5, actor), commands.ErrScheduleDayNotFound)

	view, err := uc.AddOverride(ctx, org, "2025-03-11", " holiday ", actor)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-11", view.Date)
	assert.Equal(t, "holiday", view.Reason)

	_, err = uc.AddOverride(ctx, org, "2025-03-11", "", actor)
	require.ErrorIs(t, err, commands.ErrOverrideExists)
	_, err = uc.AddOverride(ctx, org, "11/03/2025", "", actor)
	require.ErrorIs(t, err, schedule.ErrInvalidDate)

	// the override closes the day for booking
	_, err = f.bookingUseCase().CreateBooking(ctx, f.bookingInput(tuesdayNine), nil)
	require.ErrorIs(t, err, commands.ErrInvalidSlot)

	require.NoError(t, uc.RemoveOverride(ctx, org, "2025-03-11", actor))
	require.ErrorIs(t, uc.RemoveOverride(ctx, org, "2025-03-11", actor), commands.ErrOverrideNotFound)
	f.book(t, tuesdayNine)

	assert.Equal(t, 4, f.cache.Invalidations[org])
}
