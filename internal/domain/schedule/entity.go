package schedule

import (
	"slices"
	"strings"
	"time"

	"appointment-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrStartNotBeforeEnd = errs.Mark(errs.New("start_time must be before end_time"), errs.ErrValidation)
	ErrDuplicateWeekday  = errs.Mark(errs.New("duplicate day_of_week in schedule"), errs.ErrValidation)
	ErrReasonTooLong     = errs.Mark(errs.New("override reason must be at most 500 characters"), errs.ErrValidation)
)

const MaxReasonLength = 500

// Entry is the availability window for one weekday.
type Entry struct {
	day         Weekday
	start       TimeOfDay
	end         TimeOfDay
	unavailable bool
}

// NewEntry validates start < end only for available days; an unavailable day
// keeps whatever times were submitted.
func NewEntry(day int, start, end string, unavailable bool) (Entry, error) {
	wd, err := NewWeekday(day)
	if err != nil {
		return Entry{}, err
	}
	st, err := ParseTimeOfDay(start)
	if err != nil {
		return Entry{}, errs.Wrapf(err, "start_time %q", start)
	}
	et, err := ParseTimeOfDay(end)
	if err != nil {
		return Entry{}, errs.Wrapf(err, "end_time %q", end)
	}
	if !unavailable && st >= et {
		return Entry{}, errs.Wrapf(ErrStartNotBeforeEnd, "%s %s-%s", wd, st, et)
	}
	return Entry{day: wd, start: st, end: et, unavailable: unavailable}, nil
}

func ReconstructEntry(day Weekday, start, end TimeOfDay, unavailable bool) Entry {
	return Entry{day: day, start: start, end: end, unavailable: unavailable}
}

func (e Entry) Day() Weekday        { return e.day }
func (e Entry) Start() TimeOfDay    { return e.start }
func (e Entry) End() TimeOfDay      { return e.end }
func (e Entry) IsUnavailable() bool { return e.unavailable }
func (e Entry) IsBookable() bool    { return !e.unavailable && e.start < e.end }

// Week is an organiser's full recurring schedule, at most one entry per weekday.
type Week struct {
	organiserID uuid.UUID
	entries     []Entry
}

func NewWeek(organiserID uuid.UUID, entries []Entry) (*Week, error) {
	seen := make(map[Weekday]struct{}, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.day]; dup {
			return nil, errs.Wrapf(ErrDuplicateWeekday, "%s", e.day)
		}
		seen[e.day] = struct{}{}
	}
	sorted := slices.Clone(entries)
	slices.SortFunc(sorted, func(a, b Entry) int { return int(a.day) - int(b.day) })
	return &Week{organiserID: organiserID, entries: sorted}, nil
}

func (w *Week) OrganiserID() uuid.UUID { return w.organiserID }
func (w *Week) Entries() []Entry       { return slices.Clone(w.entries) }

func (w *Week) EntryFor(day Weekday) (Entry, bool) {
	for _, e := range w.entries {
		if e.day == day {
			return e, true
		}
	}
	return Entry{}, false
}

// WindowOn resolves the bookable window for a date. An override, a missing
// entry, or an unavailable entry all close the day.
func (w *Week) WindowOn(date Date, overridden bool) (start, end TimeOfDay, ok bool) {
	if overridden {
		return 0, 0, false
	}
	e, found := w.EntryFor(date.Weekday())
	if !found || !e.IsBookable() {
		return 0, 0, false
	}
	return e.start, e.end, true
}

// Override blocks a whole date for an organiser.
type Override struct {
	organiserID uuid.UUID
	date        Date
	reason      string
	createdAt   time.Time
}

func NewOverride(organiserID uuid.UUID, date Date, reason string, now time.Time) (*Override, error) {
	if date.IsZero() {
		return nil, ErrInvalidDate
	}
	reason = strings.TrimSpace(reason)
	if len([]rune(reason)) > MaxReasonLength {
		return nil, ErrReasonTooLong
	}
	return &Override{organiserID: organiserID, date: date, reason: reason, createdAt: now}, nil
}

func (o *Override) OrganiserID() uuid.UUID { return o.organiserID }
func (o *Override) Date() Date             { return o.date }
func (o *Override) Reason() string         { return o.reason }
func (o *Override) CreatedAt() time.Time   { return o.createdAt }

func ReconstructOverride(organiserID uuid.UUID, date Date, reason string, createdAt time.Time) *Override {
	return &Override{organiserID: organiserID, date: date, reason: reason, createdAt: createdAt}
}
