package converter

import (
	"time"

	"appointment-booking/internal/domain/schedule"
	"appointment-booking/internal/infra/sqlstore"
	"appointment-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

func EntryToInfra(organiserID uuid.UUID, e schedule.Entry, now time.Time) sqlstore.UpsertWeeklyScheduleDayParams {
	return sqlstore.UpsertWeeklyScheduleDayParams{
		OrganiserID:   organiserID,
		DayOfWeek:     int16(e.Day().Int()),
		StartTime:     pgconv.MinutesToPgTime(e.Start().Minutes()),
		EndTime:       pgconv.MinutesToPgTime(e.End().Minutes()),
		IsUnavailable: e.IsUnavailable(),
		UpdatedAt:     pgconv.TimeToPgtype(now),
	}
}

func EntryFromInfra(row sqlstore.WeeklySchedules) (schedule.Entry, error) {
	day, err := schedule.NewWeekday(int(row.DayOfWeek))
	if err != nil {
		return schedule.Entry{}, err
	}
	start, err := schedule.NewTimeOfDay(pgconv.MinutesFromPgTime(row.StartTime))
	if err != nil {
		return schedule.Entry{}, err
	}
	end, err := schedule.NewTimeOfDay(pgconv.MinutesFromPgTime(row.EndTime))
	if err != nil {
		return schedule.Entry{}, err
	}
	return schedule.ReconstructEntry(day, start, end, row.IsUnavailable), nil
}

func WeekFromInfra(organiserID uuid.UUID, rows []sqlstore.WeeklySchedules) (*schedule.Week, error) {
	entries := make([]schedule.Entry, 0, len(rows))
	for _, row := range rows {
		e, err := EntryFromInfra(row)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return schedule.NewWeek(organiserID, entries)
}

func OverrideToInfra(o *schedule.Override) sqlstore.CreateScheduleOverrideParams {
	return sqlstore.CreateScheduleOverrideParams{
		OrganiserID: o.OrganiserID(),
		Date:        pgconv.DateToPgtype(o.Date().UTCMidnight()),
		Reason:      o.Reason(),
		CreatedAt:   pgconv.TimeToPgtype(o.CreatedAt()),
	}
}

func OverrideFromInfra(row sqlstore.ScheduleOverrides) *schedule.Override {
	return schedule.ReconstructOverride(
		row.OrganiserID,
		schedule.DateOf(pgconv.DateFromPgtype(row.Date)),
		row.Reason,
		pgconv.TimeFromPgtype(row.CreatedAt),
	)
}
