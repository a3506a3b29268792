package commands

//go:generate mockgen -source=service.go -destination=../../../tests/mock/commands/service.go -package=commands

import (
	"context"

	"appointment-booking/internal/domain/service"
	"appointment-booking/internal/domain/user"
	"appointment-booking/internal/infra"
	"appointment-booking/internal/pkg/clock"
	"appointment-booking/internal/pkg/errs"
	"appointment-booking/internal/pkg/patch"
	"appointment-booking/internal/usecase/queries"
	"appointment-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrServiceNotFound  = queries.ErrServiceNotFound
	ErrServiceForbidden = errs.Mark(errs.New("only the owning organiser or an admin may manage this service"), errs.ErrForbidden)
	ErrServiceInUse     = errs.Mark(errs.New("service has appointments; unpublish it instead"), errs.ErrConflict)
)

type CreateServiceInput struct {
	// OrganiserID is honoured for admins only; organisers always create for themselves.
	OrganiserID     *uuid.UUID
	Name            string
	Description     string
	DurationMinutes *int
	PriceMinor      *int64
	IsPublished     *bool
}

type ServicePatch struct {
	Name            *string
	Description     *string
	DurationMinutes *int
	PriceMinor      *int64
	ClearPrice      bool
	IsPublished     *bool
}

type ServiceCommands interface {
	Create(ctx context.Context, in CreateServiceInput, actor *shared.Actor) (*queries.ServiceView, error)
	Update(ctx context.Context, id uuid.UUID, p ServicePatch, actor *shared.Actor) (*queries.ServiceView, error)
	Delete(ctx context.Context, id uuid.UUID, actor *shared.Actor) error
}

type serviceUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewServiceUseCase(uow shared.UnitOfWork, clk clock.Clock) ServiceCommands {
	return &serviceUseCaseImpl{uow: uow, clock: clk}
}

func (uc *serviceUseCaseImpl) Create(ctx context.Context, in CreateServiceInput, actor *shared.Actor) (*queries.ServiceView, error) {
	var organiserID uuid.UUID
	switch {
	case actor.Is(user.RoleOrganiser):
		organiserID = actor.UserID
	case actor.IsAdmin() && in.OrganiserID != nil:
		organiserID = *in.OrganiserID
	default:
		return nil, ErrServiceForbidden
	}

	svc, err := service.NewService(
		organiserID,
		in.Name,
		in.Description,
		patch.Coalesce(in.DurationMinutes, service.DefaultDuration),
		in.PriceMinor,
		patch.Coalesce(in.IsPublished, true),
		uc.clock.Now(),
	)
	if err != nil {
		return nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return translateOrganiserErr(tx.Services().Create(ctx, tx.DB(), svc))
	})
	if err != nil {
		return nil, err
	}
	return toServiceView(svc), nil
}

func (uc *serviceUseCaseImpl) Update(ctx context.Context, id uuid.UUID, p ServicePatch, actor *shared.Actor) (*queries.ServiceView, error) {
	var updated *service.Service
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		svc, err := tx.Reads().ServiceForUpdate(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrServiceNotFound
			}
			return err
		}
		if !canManageService(actor, svc) {
			return ErrServiceForbidden
		}

		price := patch.CoalescePtr(p.PriceMinor, svc.PriceMinor())
		if p.ClearPrice {
			price = nil
		}
		err = svc.Update(
			patch.Coalesce(p.Name, svc.Name()),
			patch.Coalesce(p.Description, svc.Description()),
			patch.Coalesce(p.DurationMinutes, svc.DurationMinutes()),
			price,
			patch.Coalesce(p.IsPublished, svc.IsPublished()),
			uc.clock.Now(),
		)
		if err != nil {
			return err
		}
		if err := tx.Services().Update(ctx, tx.DB(), svc); err != nil {
			return err
		}
		updated = svc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toServiceView(updated), nil
}

func (uc *serviceUseCaseImpl) Delete(ctx context.Context, id uuid.UUID, actor *shared.Actor) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		svc, err := tx.Reads().ServiceForUpdate(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrServiceNotFound
			}
			return err
		}
		if !canManageService(actor, svc) {
			return ErrServiceForbidden
		}

		n, err := tx.Services().CountAppointments(ctx, tx.DB(), id)
		if err != nil {
			return err
		}
		if n > 0 {
			return errs.Wrapf(ErrServiceInUse, "%d appointments", n)
		}

		err = tx.Services().Delete(ctx, tx.DB(), id)
		if infra.IsKind(err, infra.KindForeignKeyViolated) {
			return ErrServiceInUse
		}
		return err
	})
}

// Unlinked services (organiser deleted) are admin-only.
func canManageService(actor *shared.Actor, svc *service.Service) bool {
	return actor.IsAdmin() || (actor.Is(user.RoleOrganiser) && svc.OwnedBy(actor.UserID))
}

func toServiceView(s *service.Service) *queries.ServiceView {
	return &queries.ServiceView{
		ID:              s.ID(),
		OrganiserID:     s.OrganiserID(),
		Name:            s.Name(),
		Description:     s.Description(),
		DurationMinutes: s.DurationMinutes(),
		PriceMinor:      s.PriceMinor(),
		IsPublished:     s.IsPublished(),
		CreatedAt:       s.CreatedAt(),
		UpdatedAt:       s.UpdatedAt(),
	}
}
