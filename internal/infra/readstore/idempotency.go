package readstore

import (
	"context"

	"appointment-booking/internal/infra"
	"appointment-booking/internal/infra/sqlstore"
	"appointment-booking/internal/pkg/pgconv"
	"appointment-booking/internal/usecase/shared"
)

type IdempotencyReadQueries interface {
	GetIdempotencyKey(ctx context.Context, db sqlstore.DBTX, arg sqlstore.GetIdempotencyKeyParams) (sqlstore.IdempotencyKeys, error)
}

type IdempotencyReadStore struct {
	queries IdempotencyReadQueries
	db      sqlstore.DBTX
}

func NewIdempotencyReadStore(queries IdempotencyReadQueries, db sqlstore.DBTX) *IdempotencyReadStore {
	return &IdempotencyReadStore{
		queries: queries,
		db:      db,
	}
}

// Get returns the stored record even when expired. Callers compare ExpiresAt with their clock.
func (r *IdempotencyReadStore) Get(ctx context.Context, key, endpoint string) (*shared.IdempotencyRecord, error) {
	params := sqlstore.GetIdempotencyKeyParams{
		Key:      key,
		Endpoint: endpoint,
	}

	row, err := r.queries.GetIdempotencyKey(ctx, r.db, params)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}

	return &shared.IdempotencyRecord{
		Key:           row.Key,
		Endpoint:      row.Endpoint,
		RequestHash:   row.RequestHash,
		AppointmentID: row.AppointmentID,
		ExpiresAt:     pgconv.TimeFromPgtype(row.ExpiresAt),
	}, nil
}
