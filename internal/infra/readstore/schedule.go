package readstore

import (
	"context"

	"appointment-booking/internal/domain/schedule"
	"appointment-booking/internal/infra"
	"appointment-booking/internal/infra/repository/converter"
	"appointment-booking/internal/infra/sqlstore"
	"appointment-booking/internal/pkg/pgconv"
	"appointment-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ScheduleReadQueries interface {
	ListWeeklySchedule(ctx context.Context, db sqlstore.DBTX, organiserID uuid.UUID) ([]sqlstore.WeeklySchedules, error)
	ScheduleOverrideExists(ctx context.Context, db sqlstore.DBTX, arg sqlstore.ScheduleOverrideExistsParams) (bool, error)
	ListScheduleOverrides(ctx context.Context, db sqlstore.DBTX, arg sqlstore.ListScheduleOverridesParams) ([]sqlstore.ScheduleOverrides, error)
}

type ScheduleReadStore struct {
	queries ScheduleReadQueries
	db      sqlstore.DBTX
}

func NewScheduleReadStore(queries ScheduleReadQueries, db sqlstore.DBTX) *ScheduleReadStore {
	return &ScheduleReadStore{
		queries: queries,
		db:      db,
	}
}

func (s *ScheduleReadStore) FindWeek(ctx context.Context, organiserID uuid.UUID) (*schedule.Week, error) {
	rows, err := s.queries.ListWeeklySchedule(ctx, s.db, organiserID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list weekly schedule", err)
	}
	week, err := converter.WeekFromInfra(organiserID, rows)
	if err != nil {
		return nil, infra.WrapRepoErr("stored weekly schedule is inconsistent", err, infra.KindDBFailure)
	}
	return week, nil
}

func (s *ScheduleReadStore) HasOverride(ctx context.Context, organiserID uuid.UUID, date schedule.Date) (bool, error) {
	exists, err := s.queries.ScheduleOverrideExists(ctx, s.db, sqlstore.ScheduleOverrideExistsParams{
		OrganiserID: organiserID,
		Date:        pgconv.DateToPgtype(date.UTCMidnight()),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to check schedule override", err)
	}
	return exists, nil
}

func (s *ScheduleReadStore) FindOverrides(ctx context.Context, organiserID uuid.UUID, from, to *schedule.Date) ([]*queries.OverrideView, error) {
	rows, err := s.queries.ListScheduleOverrides(ctx, s.db, sqlstore.ListScheduleOverridesParams{
		OrganiserID: organiserID,
		FromDate:    optionalDate(from),
		ToDate:      optionalDate(to),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list schedule overrides", err)
	}

	result := make([]*queries.OverrideView, len(rows))
	for i, row := range rows {
		o := converter.OverrideFromInfra(row)
		result[i] = &queries.OverrideView{
			OrganiserID: o.OrganiserID(),
			Date:        o.Date().String(),
			Reason:      o.Reason(),
			CreatedAt:   o.CreatedAt(),
		}
	}
	return result, nil
}

func optionalDate(d *schedule.Date) pgtype.Date {
	if d == nil {
		return pgtype.Date{}
	}
	return pgconv.DateToPgtype(d.UTCMidnight())
}
