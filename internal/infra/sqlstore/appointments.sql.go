package sqlstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const appointmentColumns = `a.id, a.service_id, a.organiser_id, a.customer_name, a.customer_email, a.customer_user_id,
    a.start_time, a.end_time, a.status, a.cancel_reason, a.created_at, a.updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAppointment(row rowScanner) (Appointments, error) {
	var i Appointments
	err := row.Scan(
		&i.ID,
		&i.ServiceID,
		&i.OrganiserID,
		&i.CustomerName,
		&i.CustomerEmail,
		&i.CustomerUserID,
		&i.StartTime,
		&i.EndTime,
		&i.Status,
		&i.CancelReason,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

// AppointmentDetailRow is an appointment joined with its service name.
type AppointmentDetailRow struct {
	Appointments
	ServiceName string `json:"service_name"`
}

func scanAppointmentDetail(row rowScanner) (AppointmentDetailRow, error) {
	var i AppointmentDetailRow
	err := row.Scan(
		&i.ID,
		&i.ServiceID,
		&i.OrganiserID,
		&i.CustomerName,
		&i.CustomerEmail,
		&i.CustomerUserID,
		&i.StartTime,
		&i.EndTime,
		&i.Status,
		&i.CancelReason,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.ServiceName,
	)
	return i, err
}

const acquireSlotLock = `-- name: AcquireSlotLock :exec
SELECT pg_advisory_xact_lock(
    hashtextextended($1::uuid::text || '|' || extract(epoch FROM $2::timestamptz)::bigint::text, 0)
)
`

type AcquireSlotLockParams struct {
	OrganiserID uuid.UUID          `json:"organiser_id"`
	StartTime   pgtype.Timestamptz `json:"start_time"`
}

// AcquireSlotLock blocks until the transaction owns the (organiser, start) key.
// The lock is released at commit or rollback.
func (q *Queries) AcquireSlotLock(ctx context.Context, db DBTX, arg AcquireSlotLockParams) error {
	_, err := db.Exec(ctx, acquireSlotLock, arg.OrganiserID, arg.StartTime)
	return err
}

const countActiveAppointmentsAt = `-- name: CountActiveAppointmentsAt :one
SELECT count(*)
FROM appointments
WHERE organiser_id = $1
  AND start_time = $2
  AND status <> 'cancelled'
`

type CountActiveAppointmentsAtParams struct {
	OrganiserID uuid.UUID          `json:"organiser_id"`
	StartTime   pgtype.Timestamptz `json:"start_time"`
}

func (q *Queries) CountActiveAppointmentsAt(ctx context.Context, db DBTX, arg CountActiveAppointmentsAtParams) (int64, error) {
	row := db.QueryRow(ctx, countActiveAppointmentsAt, arg.OrganiserID, arg.StartTime)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const countActiveAppointmentsInRange = `-- name: CountActiveAppointmentsInRange :many
SELECT start_time, count(*)::bigint AS booked
FROM appointments
WHERE organiser_id = $1
  AND start_time >= $2
  AND start_time < $3
  AND status <> 'cancelled'
GROUP BY start_time
`

type CountActiveAppointmentsInRangeParams struct {
	OrganiserID uuid.UUID          `json:"organiser_id"`
	FromTime    pgtype.Timestamptz `json:"from_time"`
	ToTime      pgtype.Timestamptz `json:"to_time"`
}

type CountActiveAppointmentsInRangeRow struct {
	StartTime pgtype.Timestamptz `json:"start_time"`
	Booked    int64              `json:"booked"`
}

func (q *Queries) CountActiveAppointmentsInRange(ctx context.Context, db DBTX, arg CountActiveAppointmentsInRangeParams) ([]CountActiveAppointmentsInRangeRow, error) {
	rows, err := db.Query(ctx, countActiveAppointmentsInRange, arg.OrganiserID, arg.FromTime, arg.ToTime)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CountActiveAppointmentsInRangeRow
	for rows.Next() {
		var i CountActiveAppointmentsInRangeRow
		if err := rows.Scan(&i.StartTime, &i.Booked); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createAppointment = `-- name: CreateAppointment :exec
INSERT INTO appointments (
    id, service_id, organiser_id, customer_name, customer_email, customer_user_id,
    start_time, end_time, status, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
`

type CreateAppointmentParams struct {
	ID             uuid.UUID          `json:"id"`
	ServiceID      uuid.UUID          `json:"service_id"`
	OrganiserID    uuid.UUID          `json:"organiser_id"`
	CustomerName   string             `json:"customer_name"`
	CustomerEmail  string             `json:"customer_email"`
	CustomerUserID pgtype.UUID        `json:"customer_user_id"`
	StartTime      pgtype.Timestamptz `json:"start_time"`
	EndTime        pgtype.Timestamptz `json:"end_time"`
	Status         string             `json:"status"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateAppointment(ctx context.Context, db DBTX, arg CreateAppointmentParams) error {
	_, err := db.Exec(ctx, createAppointment,
		arg.ID,
		arg.ServiceID,
		arg.OrganiserID,
		arg.CustomerName,
		arg.CustomerEmail,
		arg.CustomerUserID,
		arg.StartTime,
		arg.EndTime,
		arg.Status,
		arg.CreatedAt,
	)
	return err
}

const getAppointmentForUpdate = `-- name: GetAppointmentForUpdate :one
SELECT ` + appointmentColumns + `
FROM appointments a
WHERE a.id = $1
FOR UPDATE
`

func (q *Queries) GetAppointmentForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (Appointments, error) {
	return scanAppointment(db.QueryRow(ctx, getAppointmentForUpdate, id))
}

const getAppointmentDetail = `-- name: GetAppointmentDetail :one
SELECT ` + appointmentColumns + `, s.name AS service_name
FROM appointments a
JOIN services s ON s.id = a.service_id
WHERE a.id = $1
`

func (q *Queries) GetAppointmentDetail(ctx context.Context, db DBTX, id uuid.UUID) (AppointmentDetailRow, error) {
	return scanAppointmentDetail(db.QueryRow(ctx, getAppointmentDetail, id))
}

const updateAppointmentStatus = `-- name: UpdateAppointmentStatus :execrows
UPDATE appointments
SET status = $2,
    cancel_reason = $3,
    updated_at = $4
WHERE id = $1
`

type UpdateAppointmentStatusParams struct {
	ID           uuid.UUID          `json:"id"`
	Status       string             `json:"status"`
	CancelReason pgtype.Text        `json:"cancel_reason"`
	UpdatedAt    pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateAppointmentStatus(ctx context.Context, db DBTX, arg UpdateAppointmentStatusParams) (int64, error) {
	result, err := db.Exec(ctx, updateAppointmentStatus,
		arg.ID,
		arg.Status,
		arg.CancelReason,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const listAppointments = `-- name: ListAppointments :many
SELECT ` + appointmentColumns + `, s.name AS service_name
FROM appointments a
JOIN services s ON s.id = a.service_id
WHERE ($1::uuid IS NULL OR a.organiser_id = $1::uuid)
  AND ($2::text IS NULL OR a.status = $2::text)
  AND ($3::uuid IS NULL OR a.service_id = $3::uuid)
  AND ($4::timestamptz IS NULL OR a.start_time >= $4::timestamptz)
  AND ($5::timestamptz IS NULL OR a.start_time < $5::timestamptz)
  AND ($6::timestamptz IS NULL OR (a.start_time, a.id) > ($6::timestamptz, $7::uuid))
ORDER BY a.start_time, a.id
LIMIT $8
`

type ListAppointmentsParams struct {
	OrganiserID pgtype.UUID        `json:"organiser_id"`
	Status      pgtype.Text        `json:"status"`
	ServiceID   pgtype.UUID        `json:"service_id"`
	FromTime    pgtype.Timestamptz `json:"from_time"`
	ToTime      pgtype.Timestamptz `json:"to_time"`
	AfterStart  pgtype.Timestamptz `json:"after_start"`
	AfterID     pgtype.UUID        `json:"after_id"`
	Limit       int32              `json:"limit"`
}

func (q *Queries) ListAppointments(ctx context.Context, db DBTX, arg ListAppointmentsParams) ([]AppointmentDetailRow, error) {
	rows, err := db.Query(ctx, listAppointments,
		arg.OrganiserID,
		arg.Status,
		arg.ServiceID,
		arg.FromTime,
		arg.ToTime,
		arg.AfterStart,
		arg.AfterID,
		arg.Limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []AppointmentDetailRow
	for rows.Next() {
		i, err := scanAppointmentDetail(rows)
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

const countAppointmentsByStatus = `-- name: CountAppointmentsByStatus :many
SELECT a.status, count(*)::bigint AS total
FROM appointments a
WHERE ($1::uuid IS NULL OR a.organiser_id = $1::uuid)
  AND ($2::uuid IS NULL OR a.service_id = $2::uuid)
  AND ($3::timestamptz IS NULL OR a.start_time >= $3::timestamptz)
  AND ($4::timestamptz IS NULL OR a.start_time < $4::timestamptz)
GROUP BY a.status
`

type CountAppointmentsByStatusParams struct {
	OrganiserID pgtype.UUID        `json:"organiser_id"`
	ServiceID   pgtype.UUID        `json:"service_id"`
	FromTime    pgtype.Timestamptz `json:"from_time"`
	ToTime      pgtype.Timestamptz `json:"to_time"`
}

type CountAppointmentsByStatusRow struct {
	Status string `json:"status"`
	Total  int64  `json:"total"`
}

func (q *Queries) CountAppointmentsByStatus(ctx context.Context, db DBTX, arg CountAppointmentsByStatusParams) ([]CountAppointmentsByStatusRow, error) {
	rows, err := db.Query(ctx, countAppointmentsByStatus,
		arg.OrganiserID,
		arg.ServiceID,
		arg.FromTime,
		arg.ToTime,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CountAppointmentsByStatusRow
	for rows.Next() {
		var i CountAppointmentsByStatusRow
		if err := rows.Scan(&i.Status, &i.Total); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listAppointmentsByCustomer = `-- name: ListAppointmentsByCustomer :many
SELECT ` + appointmentColumns + `, s.name AS service_name
FROM appointments a
JOIN services s ON s.id = a.service_id
WHERE a.customer_user_id = $1
ORDER BY a.start_time DESC, a.id DESC
LIMIT $2
`

type ListAppointmentsByCustomerParams struct {
	CustomerUserID uuid.UUID `json:"customer_user_id"`
	Limit          int32     `json:"limit"`
}

func (q *Queries) ListAppointmentsByCustomer(ctx context.Context, db DBTX, arg ListAppointmentsByCustomerParams) ([]AppointmentDetailRow, error) {
	rows, err := db.Query(ctx, listAppointmentsByCustomer, arg.CustomerUserID, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []AppointmentDetailRow
	for rows.Next() {
		i, err := scanAppointmentDetail(rows)
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

const listExpiredPendingAppointments = `-- name: ListExpiredPendingAppointments :many
SELECT ` + appointmentColumns + `
FROM appointments a
WHERE a.status = 'pending'
  AND a.created_at <= $1
ORDER BY a.created_at
LIMIT $2
FOR UPDATE SKIP LOCKED
`

type ListExpiredPendingAppointmentsParams struct {
	CreatedBefore pgtype.Timestamptz `json:"created_before"`
	Limit         int32              `json:"limit"`
}

func (q *Queries) ListExpiredPendingAppointments(ctx context.Context, db DBTX, arg ListExpiredPendingAppointmentsParams) ([]Appointments, error) {
	rows, err := db.Query(ctx, listExpiredPendingAppointments, arg.CreatedBefore, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Appointments
	for rows.Next() {
		i, err := scanAppointment(rows)
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

const deleteAppointmentsByCustomer = `-- name: DeleteAppointmentsByCustomer :execrows
DELETE FROM appointments WHERE customer_user_id = $1
`

func (q *Queries) DeleteAppointmentsByCustomer(ctx context.Context, db DBTX, customerUserID uuid.UUID) (int64, error) {
	result, err := db.Exec(ctx, deleteAppointmentsByCustomer, customerUserID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
