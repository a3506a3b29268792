package repository

import (
	"context"
	"time"

	"appointment-booking/internal/infra"
	"appointment-booking/internal/infra/sqlstore"
	"appointment-booking/internal/pkg/pgconv"
	"appointment-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgtype"
)

type IdempotencyWriteQueries interface {
	InsertIdempotencyKey(ctx context.Context, db sqlstore.DBTX, arg sqlstore.InsertIdempotencyKeyParams) (int64, error)
	DeleteExpiredIdempotencyKeys(ctx context.Context, db sqlstore.DBTX, now pgtype.Timestamptz) (int64, error)
}

type IdempotencyRepository struct {
	queries IdempotencyWriteQueries
}

func NewIdempotencyRepository(queries IdempotencyWriteQueries) *IdempotencyRepository {
	return &IdempotencyRepository{queries: queries}
}

func (r *IdempotencyRepository) Insert(ctx context.Context, tx sqlstore.DBTX, rec shared.IdempotencyRecord, now time.Time) (bool, error) {
	n, err := r.queries.InsertIdempotencyKey(ctx, tx, sqlstore.InsertIdempotencyKeyParams{
		Key:           rec.Key,
		Endpoint:      rec.Endpoint,
		RequestHash:   rec.RequestHash,
		AppointmentID: rec.AppointmentID,
		ExpiresAt:     pgconv.TimeToPgtype(rec.ExpiresAt),
		CreatedAt:     pgconv.TimeToPgtype(now),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to insert idempotency key", err)
	}
	return n == 1, nil
}

func (r *IdempotencyRepository) DeleteExpired(ctx context.Context, tx sqlstore.DBTX, now time.Time) (int64, error) {
	count, err := r.queries.DeleteExpiredIdempotencyKeys(ctx, tx, pgconv.TimeToPgtype(now))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired idempotency keys", err)
	}
	return count, nil
}
