package queries

//go:generate mockgen -source=schedule.go -destination=../../../tests/mock/queries/schedule.go -package=queries

import (
	"context"

	"appointment-booking/internal/domain/schedule"
	"appointment-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInvalidDateRange = errs.Mark(errs.New("from date must not be after to date"), errs.ErrValidation)

type ScheduleReadStore interface {
	FindWeek(ctx context.Context, organiserID uuid.UUID) (*schedule.Week, error)
	HasOverride(ctx context.Context, organiserID uuid.UUID, date schedule.Date) (bool, error)
	FindOverrides(ctx context.Context, organiserID uuid.UUID, from, to *schedule.Date) ([]*OverrideView, error)
}

type ScheduleQueries interface {
	GetWeeklySchedule(ctx context.Context, organiserID uuid.UUID) (*WeeklyScheduleView, error)
	// ListOverrides accepts optional YYYY-MM-DD bounds; empty means unbounded.
	ListOverrides(ctx context.Context, organiserID uuid.UUID, from, to string) ([]*OverrideView, error)
}

type scheduleQueriesImpl struct {
	repo ScheduleReadStore
}

func NewScheduleQueries(repo ScheduleReadStore) ScheduleQueries {
	return &scheduleQueriesImpl{repo: repo}
}

func (q *scheduleQueriesImpl) GetWeeklySchedule(ctx context.Context, organiserID uuid.UUID) (*WeeklyScheduleView, error) {
	week, err := q.repo.FindWeek(ctx, organiserID)
	if err != nil {
		return nil, err
	}
	return ToWeeklyScheduleView(week), nil
}

func (q *scheduleQueriesImpl) ListOverrides(ctx context.Context, organiserID uuid.UUID, from, to string) ([]*OverrideView, error) {
	fromDate, err := optionalDate(from)
	if err != nil {
		return nil, err
	}
	toDate, err := optionalDate(to)
	if err != nil {
		return nil, err
	}
	if fromDate != nil && toDate != nil && toDate.Before(*fromDate) {
		return nil, ErrInvalidDateRange
	}
	return q.repo.FindOverrides(ctx, organiserID, fromDate, toDate)
}

func ToWeeklyScheduleView(week *schedule.Week) *WeeklyScheduleView {
	entries := week.Entries()
	view := &WeeklyScheduleView{
		OrganiserID: week.OrganiserID(),
		Days:        make([]ScheduleDayView, len(entries)),
	}
	for i, e := range entries {
		view.Days[i] = ScheduleDayView{
			DayOfWeek:     e.Day().Int(),
			StartTime:     e.Start().String(),
			EndTime:       e.End().String(),
			IsUnavailable: e.IsUnavailable(),
		}
	}
	return view
}

func optionalDate(s string) (*schedule.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := schedule.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
