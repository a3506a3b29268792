package queries

//go:generate mockgen -source=service.go -destination=../../../tests/mock/queries/service.go -package=queries

import (
	"context"

	"appointment-booking/internal/infra"
	"appointment-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type ServiceReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ServiceView, error)
	List(ctx context.Context, organiserID *uuid.UUID, includeUnpublished bool) ([]*ServiceView, error)
}

type ServiceQueries interface {
	Get(ctx context.Context, id uuid.UUID, actor *shared.Actor) (*ServiceView, error)
	ListPublished(ctx context.Context, organiserID *uuid.UUID) ([]*ServiceView, error)
	ListMine(ctx context.Context, actor *shared.Actor) ([]*ServiceView, error)
}

type serviceQueriesImpl struct {
	repo ServiceReadStore
}

func NewServiceQueries(repo ServiceReadStore) ServiceQueries {
	return &serviceQueriesImpl{repo: repo}
}

// Get hides unpublished services from everyone except their organiser and admins.
func (q *serviceQueriesImpl) Get(ctx context.Context, id uuid.UUID, actor *shared.Actor) (*ServiceView, error) {
	svc, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	if !svc.IsPublished && !actor.IsAdmin() && (svc.OrganiserID == nil || !actor.ActsFor(*svc.OrganiserID)) {
		return nil, ErrServiceNotFound
	}
	return svc, nil
}

func (q *serviceQueriesImpl) ListPublished(ctx context.Context, organiserID *uuid.UUID) ([]*ServiceView, error) {
	return q.repo.List(ctx, organiserID, false)
}

func (q *serviceQueriesImpl) ListMine(ctx context.Context, actor *shared.Actor) ([]*ServiceView, error) {
	if actor == nil {
		return nil, ErrAccessDenied
	}
	return q.repo.List(ctx, &actor.UserID, true)
}
