//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"appointment-booking/internal/domain/schedule"
	"appointment-booking/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "09:00", want: 540},
		{in: "00:00", want: 0},
		{in: "23:59", want: 1439},
		{in: "17:30:00", want: 1050},
		{in: "24:00", wantErr: true},
		{in: "9:00", wantErr: true},
		{in: "09:60", wantErr: true},
		{in: "09:00:30", wantErr: true},
		{in: "nine", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := schedule.ParseTimeOfDay(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, schedule.ErrInvalidTimeOfDay)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Minutes())
		})
	}
}

func TestWeekdayOfStartsOnMonday(t *testing.T) {
	monday := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, schedule.Monday, schedule.WeekdayOf(monday))
	assert.Equal(t, schedule.Sunday, schedule.WeekdayOf(monday.AddDate(0, 0, 6)))

	d, err := schedule.ParseDate("2025-03-16")
	require.NoError(t, err)
	assert.Equal(t, schedule.Sunday, d.Weekday())
	assert.Equal(t, "2025-03-17", d.AddDays(1).String())
}

func TestParseDate(t *testing.T) {
	_, err := schedule.ParseDate("10/03/2025")
	assert.ErrorIs(t, err, schedule.ErrInvalidDate)
	assert.True(t, errs.Is(err, errs.ErrValidation))

	d, err := schedule.ParseDate("2025-03-10")
	require.NoError(t, err)
	loc := time.FixedZone("IST", 5*3600+1800)
	assert.Equal(t, time.Date(2025, 3, 10, 9, 30, 0, 0, loc), d.At(570, loc))
}

func TestNewEntry(t *testing.T) {
	t.Run("valid window", func(t *testing.T) {
		e, err := schedule.NewEntry(0, "09:00", "17:00", false)
		require.NoError(t, err)
		assert.Equal(t, schedule.Monday, e.Day())
		assert.True(t, e.IsBookable())
	})

	t.Run("start equal to end is rejected", func(t *testing.T) {
		_, err := schedule.NewEntry(1, "09:00", "09:00", false)
		require.ErrorIs(t, err, schedule.ErrStartNotBeforeEnd)
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})

	t.Run("start after end is rejected", func(t *testing.T) {
		_, err := schedule.NewEntry(1, "18:00", "09:00", false)
		require.ErrorIs(t, err, schedule.ErrStartNotBeforeEnd)
	})

	t.Run("unavailable day skips ordering check", func(t *testing.T) {
		e, err := schedule.NewEntry(6, "00:00", "00:00", true)
		require.NoError(t, err)
		assert.False(t, e.IsBookable())
	})

	t.Run("day out of range", func(t *testing.T) {
		_, err := schedule.NewEntry(7, "09:00", "10:00", false)
		require.ErrorIs(t, err, schedule.ErrInvalidWeekday)
	})

	t.Run("malformed time", func(t *testing.T) {
		_, err := schedule.NewEntry(2, "9am", "10:00", false)
		require.ErrorIs(t, err, schedule.ErrInvalidTimeOfDay)
	})
}

func TestNewWeek(t *testing.T) {
	orgID := uuid.New()
	mon, _ := schedule.NewEntry(0, "09:00", "10:00", false)
	wed, _ := schedule.NewEntry(2, "13:00", "15:00", false)
	monAgain, _ := schedule.NewEntry(0, "11:00", "12:00", false)

	t.Run("entries are sorted by day", func(t *testing.T) {
		w, err := schedule.NewWeek(orgID, []schedule.Entry{wed, mon})
		require.NoError(t, err)
		entries := w.Entries()
		require.Len(t, entries, 2)
		assert.Equal(t, schedule.Monday, entries[0].Day())
		assert.Equal(t, schedule.Wednesday, entries[1].Day())
	})

	t.Run("duplicate weekday rejected", func(t *testing.T) {
		_, err := schedule.NewWeek(orgID, []schedule.Entry{mon, monAgain})
		require.ErrorIs(t, err, schedule.ErrDuplicateWeekday)
	})

	t.Run("empty week is allowed", func(t *testing.T) {
		w, err := schedule.NewWeek(orgID, nil)
		require.NoError(t, err)
		assert.Empty(t, w.Entries())
	})
}

func TestWindowOn(t *testing.T) {
	mon, _ := schedule.NewEntry(0, "09:00", "10:00", false)
	tue, _ := schedule.NewEntry(1, "09:00", "10:00", true)
	w, err := schedule.NewWeek(uuid.New(), []schedule.Entry{mon, tue})
	require.NoError(t, err)

	monday, _ := schedule.ParseDate("2025-03-10")
	tuesday := monday.AddDays(1)
	wednesday := monday.AddDays(2)

	start, end, ok := w.WindowOn(monday, false)
	assert.True(t, ok)
	assert.Equal(t, "09:00", start.String())
	assert.Equal(t, "10:00", end.String())

	_, _, ok = w.WindowOn(monday, true)
	assert.False(t, ok, "override closes the day")

	_, _, ok = w.WindowOn(tuesday, false)
	assert.False(t, ok, "unavailable entry closes the day")

	_, _, ok = w.WindowOn(wednesday, false)
	assert.False(t, ok, "no entry means no slots")
}

func TestNewOverride(t *testing.T) {
	d, _ := schedule.ParseDate("2025-12-25")
	o, err := schedule.NewOverride(uuid.New(), d, "  holiday ", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "holiday", o.Reason())

	long := make([]rune, schedule.MaxReasonLength+1)
	for i := range long {
		long[i] = 'x'
	}
	_, err = schedule.NewOverride(uuid.New(), d, string(long), time.Now())
	require.ErrorIs(t, err, schedule.ErrReasonTooLong)
}
