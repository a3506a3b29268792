package sqlstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const createUser = `-- name: CreateUser :one
INSERT INTO users (id, email, full_name, role, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $5)
RETURNING id, email, full_name, role, created_at, updated_at
`

type CreateUserParams struct {
	ID        uuid.UUID          `json:"id"`
	Email     string             `json:"email"`
	FullName  string             `json:"full_name"`
	Role      string             `json:"role"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateUser(ctx context.Context, db DBTX, arg CreateUserParams) (Users, error) {
	row := db.QueryRow(ctx, createUser,
		arg.ID,
		arg.Email,
		arg.FullName,
		arg.Role,
		arg.CreatedAt,
	)
	var i Users
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.FullName,
		&i.Role,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getUserByID = `-- name: GetUserByID :one
SELECT id, email, full_name, role, created_at, updated_at
FROM users
WHERE id = $1
`

func (q *Queries) GetUserByID(ctx context.Context, db DBTX, id uuid.UUID) (Users, error) {
	row := db.QueryRow(ctx, getUserByID, id)
	var i Users
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.FullName,
		&i.Role,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listUsers = `-- name: ListUsers :many
SELECT id, email, full_name, role, created_at, updated_at
FROM users
WHERE ($1::text IS NULL OR role = $1::text)
ORDER BY created_at, id
`

func (q *Queries) ListUsers(ctx context.Context, db DBTX, role pgtype.Text) ([]Users, error) {
	rows, err := db.Query(ctx, listUsers, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Users
	for rows.Next() {
		var i Users
		if err := rows.Scan(
			&i.ID,
			&i.Email,
			&i.FullName,
			&i.Role,
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

const deleteUser = `-- name: DeleteUser :execrows
DELETE FROM users WHERE id = $1
`

func (q *Queries) DeleteUser(ctx context.Context, db DBTX, id uuid.UUID) (int64, error) {
	result, err := db.Exec(ctx, deleteUser, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const countUserDependents = `-- name: CountUserDependents :one
SELECT
    (SELECT count(*) FROM appointments a WHERE a.customer_user_id = $1)::bigint AS customer_appointments,
    (SELECT count(*) FROM appointments a WHERE a.organiser_id = $1)::bigint AS organiser_appointments,
    (SELECT count(*) FROM services s WHERE s.organiser_id = $1)::bigint AS services,
    (SELECT count(*) FROM weekly_schedules w WHERE w.organiser_id = $1)::bigint AS schedule_days
`

type CountUserDependentsRow struct {
	CustomerAppointments  int64 `json:"customer_appointments"`
	OrganiserAppointments int64 `json:"organiser_appointments"`
	Services              int64 `json:"services"`
	ScheduleDays          int64 `json:"schedule_days"`
}

func (q *Queries) CountUserDependents(ctx context.Context, db DBTX, id uuid.UUID) (CountUserDependentsRow, error) {
	row := db.QueryRow(ctx, countUserDependents, id)
	var i CountUserDependentsRow
	err := row.Scan(
		&i.CustomerAppointments,
		&i.OrganiserAppointments,
		&i.Services,
		&i.ScheduleDays,
	)
	return i, err
}
