package queries

//go:generate mockgen -source=user.go -destination=../../../tests/mock/queries/user.go -package=queries

import (
	"context"

	"appointment-booking/internal/domain/user"
	"appointment-booking/internal/infra"
	"appointment-booking/internal/pkg/errs"
	"appointment-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrUserNotFound = errs.Mark(errs.New("user not found"), errs.ErrNotFound)

type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*UserView, error)
	List(ctx context.Context, role *string) ([]*UserView, error)
}

type UserQueries interface {
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserView, error)
	List(ctx context.Context, role string, actor *shared.Actor) ([]*UserView, error)
}

type userQueriesImpl struct {
	readStore UserReadStore
}

func NewUserQueries(readStore UserReadStore) UserQueries {
	return &userQueriesImpl{
		readStore: readStore,
	}
}

func (q *userQueriesImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserView, error) {
	u, err := q.readStore.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (q *userQueriesImpl) List(ctx context.Context, role string, actor *shared.Actor) ([]*UserView, error) {
	if !actor.IsAdmin() {
		return nil, ErrAccessDenied
	}
	if role == "" {
		return q.readStore.List(ctx, nil)
	}
	r, err := user.NewRole(role)
	if err != nil {
		return nil, err
	}
	s := r.String()
	return q.readStore.List(ctx, &s)
}
