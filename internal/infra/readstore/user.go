package readstore

import (
	"context"

	"appointment-booking/internal/infra"
	"appointment-booking/internal/infra/sqlstore"
	"appointment-booking/internal/pkg/pgconv"
	"appointment-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type UserReadQueries interface {
	GetUserByID(ctx context.Context, db sqlstore.DBTX, id uuid.UUID) (sqlstore.Users, error)
	ListUsers(ctx context.Context, db sqlstore.DBTX, role pgtype.Text) ([]sqlstore.Users, error)
}

type UserReadStore struct {
	queries UserReadQueries
	db      sqlstore.DBTX
}

func NewUserReadStore(queries UserReadQueries, db sqlstore.DBTX) *UserReadStore {
	return &UserReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	row, err := r.queries.GetUserByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return toUserView(row), nil
}

func (r *UserReadStore) List(ctx context.Context, role *string) ([]*queries.UserView, error) {
	rows, err := r.queries.ListUsers(ctx, r.db, pgconv.StringPtrToPgtype(role))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list users", err)
	}

	result := make([]*queries.UserView, len(rows))
	for i, row := range rows {
		result[i] = toUserView(row)
	}
	return result, nil
}

func toUserView(row sqlstore.Users) *queries.UserView {
	return &queries.UserView{
		ID:        row.ID,
		Email:     row.Email,
		FullName:  row.FullName,
		Role:      row.Role,
		CreatedAt: pgconv.TimeFromPgtype(row.CreatedAt),
	}
}
