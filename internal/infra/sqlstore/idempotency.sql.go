package sqlstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const insertIdempotencyKey = `-- name: InsertIdempotencyKey :execrows
INSERT INTO idempotency_keys (key, endpoint, request_hash, appointment_id, expires_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (key, endpoint) DO NOTHING
`

type InsertIdempotencyKeyParams struct {
	Key           string             `json:"key"`
	Endpoint      string             `json:"endpoint"`
	RequestHash   string             `json:"request_hash"`
	AppointmentID uuid.UUID          `json:"appointment_id"`
	ExpiresAt     pgtype.Timestamptz `json:"expires_at"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
}

// InsertIdempotencyKey reports 0 rows when another request already owns the key.
func (q *Queries) InsertIdempotencyKey(ctx context.Context, db DBTX, arg InsertIdempotencyKeyParams) (int64, error) {
	result, err := db.Exec(ctx, insertIdempotencyKey,
		arg.Key,
		arg.Endpoint,
		arg.RequestHash,
		arg.AppointmentID,
		arg.ExpiresAt,
		arg.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getIdempotencyKey = `-- name: GetIdempotencyKey :one
SELECT key, endpoint, request_hash, appointment_id, expires_at, created_at
FROM idempotency_keys
WHERE key = $1 AND endpoint = $2
`

type GetIdempotencyKeyParams struct {
	Key      string `json:"key"`
	Endpoint string `json:"endpoint"`
}

func (q *Queries) GetIdempotencyKey(ctx context.Context, db DBTX, arg GetIdempotencyKeyParams) (IdempotencyKeys, error) {
	row := db.QueryRow(ctx, getIdempotencyKey, arg.Key, arg.Endpoint)
	var i IdempotencyKeys
	err := row.Scan(
		&i.Key,
		&i.Endpoint,
		&i.RequestHash,
		&i.AppointmentID,
		&i.ExpiresAt,
		&i.CreatedAt,
	)
	return i, err
}

const deleteIdempotencyKey = `-- name: DeleteIdempotencyKey :exec
DELETE FROM idempotency_keys WHERE key = $1 AND endpoint = $2
`

func (q *Queries) DeleteIdempotencyKey(ctx context.Context, db DBTX, arg GetIdempotencyKeyParams) error {
	_, err := db.Exec(ctx, deleteIdempotencyKey, arg.Key, arg.Endpoint)
	return err
}

const deleteExpiredIdempotencyKeys = `-- name: DeleteExpiredIdempotencyKeys :execrows
DELETE FROM idempotency_keys WHERE expires_at <= $1
`

func (q *Queries) DeleteExpiredIdempotencyKeys(ctx context.Context, db DBTX, now pgtype.Timestamptz) (int64, error) {
	result, err := db.Exec(ctx, deleteExpiredIdempotencyKeys, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
