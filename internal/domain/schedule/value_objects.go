package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"appointment-booking/internal/pkg/errs"
)

var (
	ErrInvalidTimeOfDay = errs.Mark(errs.New("time must be HH:MM between 00:00 and 23:59"), errs.ErrValidation)
	ErrInvalidWeekday   = errs.Mark(errs.New("day_of_week must be between 0 (Monday) and 6 (Sunday)"), errs.ErrValidation)
	ErrInvalidDate      = errs.Mark(errs.New("date must be formatted as YYYY-MM-DD"), errs.ErrValidation)
)

const minutesPerDay = 24 * 60

// TimeOfDay is a wall-clock time expressed in minutes after midnight.
type TimeOfDay int

// ParseTimeOfDay accepts "HH:MM" and "HH:MM:SS" (seconds must be zero).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, ErrInvalidTimeOfDay
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 || len(parts[0]) != 2 {
		return 0, ErrInvalidTimeOfDay
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 || len(parts[1]) != 2 {
		return 0, ErrInvalidTimeOfDay
	}
	if len(parts) == 3 && parts[2] != "00" {
		return 0, ErrInvalidTimeOfDay
	}
	return TimeOfDay(h*60 + m), nil
}

func NewTimeOfDay(minutes int) (TimeOfDay, error) {
	if minutes < 0 || minutes >= minutesPerDay {
		return 0, ErrInvalidTimeOfDay
	}
	return TimeOfDay(minutes), nil
}

func (t TimeOfDay) Minutes() int { return int(t) }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Weekday numbers days from 0 (Monday) to 6 (Sunday).
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

func NewWeekday(v int) (Weekday, error) {
	if v < int(Monday) || v > int(Sunday) {
		return 0, ErrInvalidWeekday
	}
	return Weekday(v), nil
}

func WeekdayOf(t time.Time) Weekday {
	return Weekday((int(t.Weekday()) + 6) % 7)
}

func (d Weekday) Int() int { return int(d) }

func (d Weekday) String() string {
	return [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}[d]
}

// Date is a calendar day without a zone; At places it in a location.
type Date struct {
	year  int
	month time.Month
	day   int
}

const dateLayout = "2006-01-02"

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return DateOf(t), nil
}

// DateOf takes the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

func (d Date) IsZero() bool { return d.year == 0 && d.month == 0 && d.day == 0 }

func (d Date) Weekday() Weekday {
	return WeekdayOf(time.Date(d.year, d.month, d.day, 12, 0, 0, 0, time.UTC))
}

// At returns the instant at the given wall-clock time on this date in loc.
func (d Date) At(t TimeOfDay, loc *time.Location) time.Time {
	return time.Date(d.year, d.month, d.day, int(t)/60, int(t)%60, 0, 0, loc)
}

// UTCMidnight is the representation stored in DATE columns.
func (d Date) UTCMidnight() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.UTCMidnight().AddDate(0, 0, n))
}

func (d Date) Before(o Date) bool { return d.UTCMidnight().Before(o.UTCMidnight()) }

func (d Date) String() string {
	return d.UTCMidnight().Format(dateLayout)
}
