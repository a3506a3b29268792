package sqlstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const serviceColumns = `id, organiser_id, name, description, duration_minutes, price_minor, is_published, created_at, updated_at`

func scanService(row rowScanner) (Services, error) {
	var i Services
	err := row.Scan(
		&i.ID,
		&i.OrganiserID,
		&i.Name,
		&i.Description,
		&i.DurationMinutes,
		&i.PriceMinor,
		&i.IsPublished,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createService = `-- name: CreateService :exec
INSERT INTO services (id, organiser_id, name, description, duration_minutes, price_minor, is_published, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
`

type CreateServiceParams struct {
	ID              uuid.UUID          `json:"id"`
	OrganiserID     pgtype.UUID        `json:"organiser_id"`
	Name            string             `json:"name"`
	Description     string             `json:"description"`
	DurationMinutes int32              `json:"duration_minutes"`
	PriceMinor      pgtype.Int8        `json:"price_minor"`
	IsPublished     bool               `json:"is_published"`
	CreatedAt       pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateService(ctx context.Context, db DBTX, arg CreateServiceParams) error {
	_, err := db.Exec(ctx, createService,
		arg.ID,
		arg.OrganiserID,
		arg.Name,
		arg.Description,
		arg.DurationMinutes,
		arg.PriceMinor,
		arg.IsPublished,
		arg.CreatedAt,
	)
	return err
}

const getServiceByID = `-- name: GetServiceByID :one
SELECT ` + serviceColumns + `
FROM services
WHERE id = $1
`

func (q *Queries) GetServiceByID(ctx context.Context, db DBTX, id uuid.UUID) (Services, error) {
	return scanService(db.QueryRow(ctx, getServiceByID, id))
}

const getServiceByIDForUpdate = `-- name: GetServiceByIDForUpdate :one
SELECT ` + serviceColumns + `
FROM services
WHERE id = $1
FOR UPDATE
`

func (q *Queries) GetServiceByIDForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (Services, error) {
	return scanService(db.QueryRow(ctx, getServiceByIDForUpdate, id))
}

const updateService = `-- name: UpdateService :execrows
UPDATE services
SET name = $2,
    description = $3,
    duration_minutes = $4,
    price_minor = $5,
    is_published = $6,
    updated_at = $7
WHERE id = $1
`

type UpdateServiceParams struct {
	ID              uuid.UUID          `json:"id"`
	Name            string             `json:"name"`
	Description     string             `json:"description"`
	DurationMinutes int32              `json:"duration_minutes"`
	PriceMinor      pgtype.Int8        `json:"price_minor"`
	IsPublished     bool               `json:"is_published"`
	UpdatedAt       pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateService(ctx context.Context, db DBTX, arg UpdateServiceParams) (int64, error) {
	result, err := db.Exec(ctx, updateService,
		arg.ID,
		arg.Name,
		arg.Description,
		arg.DurationMinutes,
		arg.PriceMinor,
		arg.IsPublished,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteService = `-- name: DeleteService :execrows
DELETE FROM services WHERE id = $1
`

func (q *Queries) DeleteService(ctx context.Context, db DBTX, id uuid.UUID) (int64, error) {
	result, err := db.Exec(ctx, deleteService, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const listServices = `-- name: ListServices :many
SELECT ` + serviceColumns + `
FROM services
WHERE ($1::uuid IS NULL OR organiser_id = $1::uuid)
  AND ($2::boolean OR is_published)
ORDER BY name, id
`

type ListServicesParams struct {
	OrganiserID        pgtype.UUID `json:"organiser_id"`
	IncludeUnpublished bool        `json:"include_unpublished"`
}

func (q *Queries) ListServices(ctx context.Context, db DBTX, arg ListServicesParams) ([]Services, error) {
	rows, err := db.Query(ctx, listServices, arg.OrganiserID, arg.IncludeUnpublished)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Services
	for rows.Next() {
		i, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countAppointmentsByService = `-- name: CountAppointmentsByService :one
SELECT count(*) FROM appointments WHERE service_id = $1
`

func (q *Queries) CountAppointmentsByService(ctx context.Context, db DBTX, serviceID uuid.UUID) (int64, error) {
	row := db.QueryRow(ctx, countAppointmentsByService, serviceID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const unlinkServicesByOrganiser = `-- name: UnlinkServicesByOrganiser :execrows
UPDATE services
SET organiser_id = NULL,
    is_published = false,
    updated_at = $2
WHERE organiser_id = $1
`

type UnlinkServicesByOrganiserParams struct {
	OrganiserID uuid.UUID          `json:"organiser_id"`
	UpdatedAt   pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UnlinkServicesByOrganiser(ctx context.Context, db DBTX, arg UnlinkServicesByOrganiserParams) (int64, error) {
	result, err := db.Exec(ctx, unlinkServicesByOrganiser, arg.OrganiserID, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
