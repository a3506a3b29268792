package sqlstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const listWeeklySchedule = `-- name: ListWeeklySchedule :many
SELECT organiser_id, day_of_week, start_time, end_time, is_unavailable, created_at, updated_at
FROM weekly_schedules
WHERE organiser_id = $1
ORDER BY day_of_week
`

func (q *Queries) ListWeeklySchedule(ctx context.Context, db DBTX, organiserID uuid.UUID) ([]WeeklySchedules, error) {
	rows, err := db.Query(ctx, listWeeklySchedule, organiserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []WeeklySchedules
	for rows.Next() {
		var i WeeklySchedules
		if err := rows.Scan(
			&i.OrganiserID,
			&i.DayOfWeek,
			&i.StartTime,
			&i.EndTime,
			&i.IsUnavailable,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteWeeklySchedule = `-- name: DeleteWeeklySchedule :execrows
DELETE FROM weekly_schedules WHERE organiser_id = $1
`

func (q *Queries) DeleteWeeklySchedule(ctx context.Context, db DBTX, organiserID uuid.UUID) (int64, error) {
	result, err := db.Exec(ctx, deleteWeeklySchedule, organiserID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const upsertWeeklyScheduleDay = `-- name: UpsertWeeklyScheduleDay :exec
INSERT INTO weekly_schedules (organiser_id, day_of_week, start_time, end_time, is_unavailable, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)
ON CONFLICT (organiser_id, day_of_week) DO UPDATE
SET start_time = EXCLUDED.start_time,
    end_time = EXCLUDED.end_time,
    is_unavailable = EXCLUDED.is_unavailable,
    updated_at = EXCLUDED.updated_at
`

type UpsertWeeklyScheduleDayParams struct {
	OrganiserID   uuid.UUID          `json:"organiser_id"`
	DayOfWeek     int16              `json:"day_of_week"`
	StartTime     pgtype.Time        `json:"start_time"`
	EndTime       pgtype.Time        `json:"end_time"`
	IsUnavailable bool               `json:"is_unavailable"`
	UpdatedAt     pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpsertWeeklyScheduleDay(ctx context.Context, db DBTX, arg UpsertWeeklyScheduleDayParams) error {
	_, err := db.Exec(ctx, upsertWeeklyScheduleDay,
		arg.OrganiserID,
		arg.DayOfWeek,
		arg.StartTime,
		arg.EndTime,
		arg.IsUnavailable,
		arg.UpdatedAt,
	)
	return err
}

const deleteWeeklyScheduleDay = `-- name: DeleteWeeklyScheduleDay :execrows
DELETE FROM weekly_schedules WHERE organiser_id = $1 AND day_of_week = $2
`

type DeleteWeeklyScheduleDayParams struct {
	OrganiserID uuid.UUID `json:"organiser_id"`
	DayOfWeek   int16     `json:"day_of_week"`
}

func (q *Queries) DeleteWeeklyScheduleDay(ctx context.Context, db DBTX, arg DeleteWeeklyScheduleDayParams) (int64, error) {
	result, err := db.Exec(ctx, deleteWeeklyScheduleDay, arg.OrganiserID, arg.DayOfWeek)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const createScheduleOverride = `-- name: CreateScheduleOverride :exec
INSERT INTO schedule_overrides (organiser_id, date, reason, created_at)
VALUES ($1, $2, $3, $4)
`

type CreateScheduleOverrideParams struct {
	OrganiserID uuid.UUID          `json:"organiser_id"`
	Date        pgtype.Date        `json:"date"`
	Reason      string             `json:"reason"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateScheduleOverride(ctx context.Context, db DBTX, arg CreateScheduleOverrideParams) error {
	_, err := db.Exec(ctx, createScheduleOverride,
		arg.OrganiserID,
		arg.Date,
		arg.Reason,
		arg.CreatedAt,
	)
	return err
}

const deleteScheduleOverride = `-- name: DeleteScheduleOverride :execrows
DELETE FROM schedule_overrides WHERE organiser_id = $1 AND date = $2
`

type DeleteScheduleOverrideParams struct {
	OrganiserID uuid.UUID   `json:"organiser_id"`
	Date        pgtype.Date `json:"date"`
}

func (q *Queries) DeleteScheduleOverride(ctx context.Context, db DBTX, arg DeleteScheduleOverrideParams) (int64, error) {
	result, err := db.Exec(ctx, deleteScheduleOverride, arg.OrganiserID, arg.Date)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteScheduleOverridesByOrganiser = `-- name: DeleteScheduleOverridesByOrganiser :execrows
DELETE FROM schedule_overrides WHERE organiser_id = $1
`

func (q *Queries) DeleteScheduleOverridesByOrganiser(ctx context.Context, db DBTX, organiserID uuid.UUID) (int64, error) {
	result, err := db.Exec(ctx, deleteScheduleOverridesByOrganiser, organiserID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const scheduleOverrideExists = `-- name: ScheduleOverrideExists :one
SELECT EXISTS (
    SELECT 1 FROM schedule_overrides WHERE organiser_id = $1 AND date = $2
)
`

type ScheduleOverrideExistsParams struct {
	OrganiserID uuid.UUID   `json:"organiser_id"`
	Date        pgtype.Date `json:"date"`
}

func (q *Queries) ScheduleOverrideExists(ctx context.Context, db DBTX, arg ScheduleOverrideExistsParams) (bool, error) {
	row := db.QueryRow(ctx, scheduleOverrideExists, arg.OrganiserID, arg.Date)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const listScheduleOverrides = `-- name: ListScheduleOverrides :many
SELECT organiser_id, date, reason, created_at
FROM schedule_overrides
WHERE organiser_id = $1
  AND ($2::date IS NULL OR date >= $2::date)
  AND ($3::date IS NULL OR date <= $3::date)
ORDER BY date
`

type ListScheduleOverridesParams struct {
	OrganiserID uuid.UUID   `json:"organiser_id"`
	FromDate    pgtype.Date `json:"from_date"`
	ToDate      pgtype.Date `json:"to_date"`
}

func (q *Queries) ListScheduleOverrides(ctx context.Context, db DBTX, arg ListScheduleOverridesParams) ([]ScheduleOverrides, error) {
	rows, err := db.Query(ctx, listScheduleOverrides, arg.OrganiserID, arg.FromDate, arg.ToDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ScheduleOverrides
	for rows.Next() {
		var i ScheduleOverrides
		if err := rows.Scan(
			&i.OrganiserID,
			&i.Date,
			&i.Reason,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
