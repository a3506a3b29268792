package repository

import (
	"context"

	"appointment-booking/internal/domain/user"
	"appointment-booking/internal/infra"
	"appointment-booking/internal/infra/repository/converter"
	"appointment-booking/internal/infra/sqlstore"

	"github.com/google/uuid"
)

type UserWriteQueries interface {
	CreateUser(ctx context.Context, db sqlstore.DBTX, arg sqlstore.CreateUserParams) (sqlstore.Users, error)
	DeleteUser(ctx context.Context, db sqlstore.DBTX, id uuid.UUID) (int64, error)
	CountUserDependents(ctx context.Context, db sqlstore.DBTX, id uuid.UUID) (sqlstore.CountUserDependentsRow, error)
}

type UserRepository struct {
	queries UserWriteQueries
}

func NewUserRepository(queries UserWriteQueries) *UserRepository {
	return &UserRepository{
		queries: queries,
	}
}

func (r *UserRepository) Create(ctx context.Context, tx sqlstore.DBTX, u *user.User) error {
	if _, err := r.queries.CreateUser(ctx, tx, converter.UserToInfra(u)); err != nil {
		return infra.WrapRepoErr("failed to create user", err)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, tx sqlstore.DBTX, id uuid.UUID) error {
	n, err := r.queries.DeleteUser(ctx, tx, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete user", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *UserRepository) CountDependents(ctx context.Context, tx sqlstore.DBTX, id uuid.UUID) (user.Dependents, error) {
	row, err := r.queries.CountUserDependents(ctx, tx, id)
	if err != nil {
		return user.Dependents{}, infra.WrapRepoErr("failed to count user dependents", err)
	}
	return user.Dependents{
		CustomerAppointments:  row.CustomerAppointments,
		OrganiserAppointments: row.OrganiserAppointments,
		Services:              row.Services,
		ScheduleDays:          row.ScheduleDays,
	}, nil
}
