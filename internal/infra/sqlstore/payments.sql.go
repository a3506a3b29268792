package sqlstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const paymentColumns = `p.id, p.booking_id, p.base_amount, p.tax_amount, p.amount, p.currency, p.provider,
    p.provider_ref, p.status, p.failure_reason, p.paid_at, p.created_at, p.updated_at`

func scanPayment(row rowScanner) (Payments, error) {
	var i Payments
	err := row.Scan(
		&i.ID,
		&i.BookingID,
		&i.BaseAmount,
		&i.TaxAmount,
		&i.Amount,
		&i.Currency,
		&i.Provider,
		&i.ProviderRef,
		&i.Status,
		&i.FailureReason,
		&i.PaidAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createPayment = `-- name: CreatePayment :exec
INSERT INTO payments (
    id, booking_id, base_amount, tax_amount, amount, currency, provider, status, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
`

type CreatePaymentParams struct {
	ID         uuid.UUID          `json:"id"`
	BookingID  uuid.UUID          `json:"booking_id"`
	BaseAmount int64              `json:"base_amount"`
	TaxAmount  int64              `json:"tax_amount"`
	Amount     int64              `json:"amount"`
	Currency   string             `json:"currency"`
	Provider   string             `json:"provider"`
	Status     string             `json:"status"`
	CreatedAt  pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreatePayment(ctx context.Context, db DBTX, arg CreatePaymentParams) error {
	_, err := db.Exec(ctx, createPayment,
		arg.ID,
		arg.BookingID,
		arg.BaseAmount,
		arg.TaxAmount,
		arg.Amount,
		arg.Currency,
		arg.Provider,
		arg.Status,
		arg.CreatedAt,
	)
	return err
}

const getPaymentByID = `-- name: GetPaymentByID :one
SELECT ` + paymentColumns + `
FROM payments p
WHERE p.id = $1
`

func (q *Queries) GetPaymentByID(ctx context.Context, db DBTX, id uuid.UUID) (Payments, error) {
	return scanPayment(db.QueryRow(ctx, getPaymentByID, id))
}

const getPaymentForUpdate = `-- name: GetPaymentForUpdate :one
SELECT ` + paymentColumns + `
FROM payments p
WHERE p.id = $1
FOR UPDATE
`

func (q *Queries) GetPaymentForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (Payments, error) {
	return scanPayment(db.QueryRow(ctx, getPaymentForUpdate, id))
}

const getLivePaymentByBooking = `-- name: GetLivePaymentByBooking :one
SELECT ` + paymentColumns + `
FROM payments p
WHERE p.booking_id = $1
  AND p.status <> 'failed'
`

func (q *Queries) GetLivePaymentByBooking(ctx context.Context, db DBTX, bookingID uuid.UUID) (Payments, error) {
	return scanPayment(db.QueryRow(ctx, getLivePaymentByBooking, bookingID))
}

const updatePaymentStatus = `-- name: UpdatePaymentStatus :execrows
UPDATE payments
SET status = $2,
    provider_ref = $3,
    failure_reason = $4,
    paid_at = $5,
    updated_at = $6
WHERE id = $1
`

type UpdatePaymentStatusParams struct {
	ID            uuid.UUID          `json:"id"`
	Status        string             `json:"status"`
	ProviderRef   pgtype.Text        `json:"provider_ref"`
	FailureReason pgtype.Text        `json:"failure_reason"`
	PaidAt        pgtype.Timestamptz `json:"paid_at"`
	UpdatedAt     pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdatePaymentStatus(ctx context.Context, db DBTX, arg UpdatePaymentStatusParams) (int64, error) {
	result, err := db.Exec(ctx, updatePaymentStatus,
		arg.ID,
		arg.Status,
		arg.ProviderRef,
		arg.FailureReason,
		arg.PaidAt,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const failInitiatedPaymentsByBooking = `-- name: FailInitiatedPaymentsByBooking :execrows
UPDATE payments
SET status = 'failed',
    failure_reason = $2,
    updated_at = $3
WHERE booking_id = $1
  AND status = 'initiated'
`

type FailInitiatedPaymentsByBookingParams struct {
	BookingID     uuid.UUID          `json:"booking_id"`
	FailureReason pgtype.Text        `json:"failure_reason"`
	UpdatedAt     pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) FailInitiatedPaymentsByBooking(ctx context.Context, db DBTX, arg FailInitiatedPaymentsByBookingParams) (int64, error) {
	result, err := db.Exec(ctx, failInitiatedPaymentsByBooking, arg.BookingID, arg.FailureReason, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getCheckoutByBooking = `-- name: GetCheckoutByBooking :one
SELECT a.id, a.status, a.customer_name, a.customer_email, a.start_time, a.end_time,
    s.id AS service_id, s.name AS service_name, s.price_minor
FROM appointments a
JOIN services s ON s.id = a.service_id
WHERE a.id = $1
`

type GetCheckoutByBookingRow struct {
	ID            uuid.UUID          `json:"id"`
	Status        string             `json:"status"`
	CustomerName  string             `json:"customer_name"`
	CustomerEmail string             `json:"customer_email"`
	StartTime     pgtype.Timestamptz `json:"start_time"`
	EndTime       pgtype.Timestamptz `json:"end_time"`
	ServiceID     uuid.UUID          `json:"service_id"`
	ServiceName   string             `json:"service_name"`
	PriceMinor    pgtype.Int8        `json:"price_minor"`
}

func (q *Queries) GetCheckoutByBooking(ctx context.Context, db DBTX, bookingID uuid.UUID) (GetCheckoutByBookingRow, error) {
	row := db.QueryRow(ctx, getCheckoutByBooking, bookingID)
	var i GetCheckoutByBookingRow
	err := row.Scan(
		&i.ID,
		&i.Status,
		&i.CustomerName,
		&i.CustomerEmail,
		&i.StartTime,
		&i.EndTime,
		&i.ServiceID,
		&i.ServiceName,
		&i.PriceMinor,
	)
	return i, err
}

const getPaymentReceipt = `-- name: GetPaymentReceipt :one
SELECT ` + paymentColumns + `,
    a.customer_name, a.customer_email, a.start_time, a.end_time,
    s.id AS service_id, s.name AS service_name
FROM payments p
JOIN appointments a ON a.id = p.booking_id
JOIN services s ON s.id = a.service_id
WHERE p.id = $1
`

type GetPaymentReceiptRow struct {
	Payments
	CustomerName  string             `json:"customer_name"`
	CustomerEmail string             `json:"customer_email"`
	StartTime     pgtype.Timestamptz `json:"start_time"`
	EndTime       pgtype.Timestamptz `json:"end_time"`
	ServiceID     uuid.UUID          `json:"service_id"`
	ServiceName   string             `json:"service_name"`
}

func (q *Queries) GetPaymentReceipt(ctx context.Context, db DBTX, id uuid.UUID) (GetPaymentReceiptRow, error) {
	row := db.QueryRow(ctx, getPaymentReceipt, id)
	var i GetPaymentReceiptRow
	err := row.Scan(
		&i.ID,
		&i.BookingID,
		&i.BaseAmount,
		&i.TaxAmount,
		&i.Amount,
		&i.Currency,
		&i.Provider,
		&i.ProviderRef,
		&i.Status,
		&i.FailureReason,
		&i.PaidAt,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.CustomerName,
		&i.CustomerEmail,
		&i.StartTime,
		&i.EndTime,
		&i.ServiceID,
		&i.ServiceName,
	)
	return i, err
}
