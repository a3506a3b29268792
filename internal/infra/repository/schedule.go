package repository

import (
	"context"
	"time"

	"appointment-booking/internal/domain/schedule"
	"appointment-booking/internal/infra"
	"appointment-booking/internal/infra/repository/converter"
	"appointment-booking/internal/infra/sqlstore"
	"appointment-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ScheduleWriteQueries interface {
	DeleteWeeklySchedule(ctx context.Context, db sqlstore.DBTX, organiserID uuid.UUID) (int64, error)
	UpsertWeeklyScheduleDay(ctx context.Context, db sqlstore.DBTX, arg sqlstore.UpsertWeeklyScheduleDayParams) error
	DeleteWeeklyScheduleDay(ctx context.Context, db sqlstore.DBTX, arg sqlstore.DeleteWeeklyScheduleDayParams) (int64, error)
	CreateScheduleOverride(ctx context.Context, db sqlstore.DBTX, arg sqlstore.CreateScheduleOverrideParams) error
	DeleteScheduleOverride(ctx context.Context, db sqlstore.DBTX, arg sqlstore.DeleteScheduleOverrideParams) (int64, error)
	DeleteScheduleOverridesByOrganiser(ctx context.Context, db sqlstore.DBTX, organiserID uuid.UUID) (int64, error)
}

type ScheduleRepository struct {
	queries ScheduleWriteQueries
}

func NewScheduleRepository(queries ScheduleWriteQueries) *ScheduleRepository {
	return &ScheduleRepository{queries: queries}
}

// ReplaceWeek deletes every stored day and inserts the given entries. Must run in a transaction.
func (r *ScheduleRepository) ReplaceWeek(ctx context.Context, tx sqlstore.DBTX, week *schedule.Week, now time.Time) error {
	if _, err := r.queries.DeleteWeeklySchedule(ctx, tx, week.OrganiserID()); err != nil {
		return infra.WrapRepoErr("failed to clear weekly schedule", err)
	}
	for _, e := range week.Entries() {
		if err := r.queries.UpsertWeeklyScheduleDay(ctx, tx, converter.EntryToInfra(week.OrganiserID(), e, now)); err != nil {
			return infra.WrapRepoErr("failed to insert weekly schedule day", err)
		}
	}
	return nil
}

func (r *ScheduleRepository) UpsertDay(ctx context.Context, tx sqlstore.DBTX, organiserID uuid.UUID, entry schedule.Entry, now time.Time) error {
	if err := r.queries.UpsertWeeklyScheduleDay(ctx, tx, converter.EntryToInfra(organiserID, entry, now)); err != nil {
		return infra.WrapRepoErr("failed to upsert weekly schedule day", err)
	}
	return nil
}

func (r *ScheduleRepository) DeleteDay(ctx context.Context, tx sqlstore.DBTX, organiserID uuid.UUID, day schedule.Weekday) error {
	n, err := r.queries.DeleteWeeklyScheduleDay(ctx, tx, sqlstore.DeleteWeeklyScheduleDayParams{
		OrganiserID: organiserID,
		DayOfWeek:   int16(day.Int()),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to delete weekly schedule day", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("weekly schedule day not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ScheduleRepository) AddOverride(ctx context.Context, tx sqlstore.DBTX, o *schedule.Override) error {
	if err := r.queries.CreateScheduleOverride(ctx, tx, converter.OverrideToInfra(o)); err != nil {
		return infra.WrapRepoErr("failed to create schedule override", err)
	}
	return nil
}

func (r *ScheduleRepository) RemoveOverride(ctx context.Context, tx sqlstore.DBTX, organiserID uuid.UUID, date schedule.Date) error {
	n, err := r.queries.DeleteScheduleOverride(ctx, tx, sqlstore.DeleteScheduleOverrideParams{
		OrganiserID: organiserID,
		Date:        pgconv.DateToPgtype(date.UTCMidnight()),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to delete schedule override", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("schedule override not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ScheduleRepository) DeleteAllForOrganiser(ctx context.Context, tx sqlstore.DBTX, organiserID uuid.UUID) error {
	if _, err := r.queries.DeleteWeeklySchedule(ctx, tx, organiserID); err != nil {
		return infra.WrapRepoErr("failed to delete weekly schedule", err)
	}
	if _, err := r.queries.DeleteScheduleOverridesByOrganiser(ctx, tx, organiserID); err != nil {
		return infra.WrapRepoErr("failed to delete schedule overrides", err)
	}
	return nil
}
