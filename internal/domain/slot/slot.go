package slot

import (
	"time"

	"appointment-booking/internal/domain/schedule"
	"appointment-booking/internal/pkg/errs"
)

var ErrInvalidDuration = errs.Mark(errs.New("service duration must be positive"), errs.ErrValidation)

type Interval struct {
	Start time.Time
	End   time.Time
}

// Partition splits [start, end) on date into consecutive intervals of length
// d. A trailing remainder shorter than d is dropped.
func Partition(date schedule.Date, start, end schedule.TimeOfDay, d time.Duration, loc *time.Location) ([]Interval, error) {
	if d <= 0 {
		return nil, ErrInvalidDuration
	}
	windowStart := date.At(start, loc)
	windowEnd := date.At(end, loc)

	var out []Interval
	for s := windowStart; !s.Add(d).After(windowEnd); s = s.Add(d) {
		out = append(out, Interval{Start: s, End: s.Add(d)})
	}
	return out, nil
}

// Plan resolves the candidate intervals for a date from a week and its override flag.
func Plan(week *schedule.Week, date schedule.Date, overridden bool, d time.Duration, loc *time.Location) ([]Interval, error) {
	if d <= 0 {
		return nil, ErrInvalidDuration
	}
	start, end, ok := week.WindowOn(date, overridden)
	if !ok {
		return nil, nil
	}
	return Partition(date, start, end, d, loc)
}

// Find returns the interval beginning exactly at start.
func Find(intervals []Interval, start time.Time) (Interval, bool) {
	for _, iv := range intervals {
		if iv.Start.Equal(start) {
			return iv, true
		}
	}
	return Interval{}, false
}

type Slot struct {
	Start    time.Time
	End      time.Time
	Booked   int
	Capacity int
}

func (s Slot) IsAvailable() bool { return s.Booked < s.Capacity }

// Counts maps an interval start (unix seconds) to its non-cancelled bookings.
type Counts map[int64]int

func (c Counts) At(t time.Time) int { return c[t.Unix()] }

// Resolve attaches booking counts and drops intervals that do not start
// strictly after now.
func Resolve(intervals []Interval, counts Counts, capacity int, now time.Time) []Slot {
	out := make([]Slot, 0, len(intervals))
	for _, iv := range intervals {
		if !iv.Start.After(now) {
			continue
		}
		out = append(out, Slot{
			Start:    iv.Start,
			End:      iv.End,
			Booked:   counts.At(iv.Start),
			Capacity: capacity,
		})
	}
	return out
}
