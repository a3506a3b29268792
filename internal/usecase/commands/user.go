package commands

//go:generate mockgen -source=user.go -destination=../../../tests/mock/commands/user.go -package=commands

import (
	"context"
	"log/slog"

	"appointment-booking/internal/domain/user"
	"appointment-booking/internal/infra"
	"appointment-booking/internal/pkg/clock"
	"appointment-booking/internal/pkg/errs"
	"appointment-booking/internal/usecase/queries"
	"appointment-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound      = queries.ErrUserNotFound
	ErrUserAdminOnly     = errs.Mark(errs.New("only admins may manage users"), errs.ErrForbidden)
	ErrUserExists        = errs.Mark(errs.New("a user with this id or email already exists"), errs.ErrConflict)
	ErrUserHasDependents = errs.Mark(errs.New("user is still referenced; retry with force=true"), errs.ErrConflict)
)

type RegisterUserInput struct {
	// ID is the identity provider's subject. A new id is generated when nil.
	ID       *uuid.UUID
	Email    string
	FullName string
	Role     string
}

type UserCommands interface {
	Register(ctx context.Context, in RegisterUserInput, actor *shared.Actor) (*queries.UserView, error)
	Delete(ctx context.Context, id uuid.UUID, force bool, actor *shared.Actor) error
}

type userUseCaseImpl struct {
	uow    shared.UnitOfWork
	cache  shared.SlotCache
	clock  clock.Clock
	logger *slog.Logger
}

func NewUserUseCase(uow shared.UnitOfWork, cache shared.SlotCache, clk clock.Clock, logger *slog.Logger) UserCommands {
	return &userUseCaseImpl{uow: uow, cache: cache, clock: clk, logger: logger}
}

func (uc *userUseCaseImpl) Register(ctx context.Context, in RegisterUserInput, actor *shared.Actor) (*queries.UserView, error) {
	if !actor.IsAdmin() {
		return nil, ErrUserAdminOnly
	}
	email, err := user.NewEmail(in.Email)
	if err != nil {
		return nil, err
	}
	name, err := user.NewFullName(in.FullName)
	if err != nil {
		return nil, err
	}
	role, err := user.NewRole(in.Role)
	if err != nil {
		return nil, err
	}
	id := uuid.New()
	if in.ID != nil {
		id = *in.ID
	}

	u := user.NewUser(id, email, name, role, uc.clock.Now())
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Users().Create(ctx, tx.DB(), u); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrUserExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.InfoContext(ctx, "user provisioned", "user_id", u.ID(), "role", u.Role())
	return &queries.UserView{
		ID:        u.ID(),
		Email:     u.Email().Value(),
		FullName:  u.FullName().Value(),
		Role:      u.Role().String(),
		CreatedAt: u.CreatedAt(),
	}, nil
}

// Delete removes a user. Without force it refuses while anything references
// the user. With force, customer bookings go, organiser schedules go, and
// services are detached so their booking history survives.
func (uc *userUseCaseImpl) Delete(ctx context.Context, id uuid.UUID, force bool, actor *shared.Actor) error {
	if !actor.IsAdmin() {
		return ErrUserAdminOnly
	}

	var wasOrganiser bool
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		u, err := tx.Reads().UserByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		wasOrganiser = u.Role() == user.RoleOrganiser

		deps, err := tx.Users().CountDependents(ctx, tx.DB(), id)
		if err != nil {
			return err
		}
		if deps.Any() && !force {
			return errs.Wrapf(ErrUserHasDependents,
				"customer_appointments=%d organiser_appointments=%d services=%d schedule_days=%d",
				deps.CustomerAppointments, deps.OrganiserAppointments, deps.Services, deps.ScheduleDays)
		}

		if deps.CustomerAppointments > 0 {
			if _, err := tx.Appointments().DeleteByCustomer(ctx, tx.DB(), id); err != nil {
				return err
			}
		}
		if err := tx.Schedules().DeleteAllForOrganiser(ctx, tx.DB(), id); err != nil {
			return err
		}
		if deps.Services > 0 {
			if _, err := tx.Services().UnlinkOrganiser(ctx, tx.DB(), id, uc.clock.Now()); err != nil {
				return err
			}
		}
		if err := tx.Users().Delete(ctx, tx.DB(), id); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	if wasOrganiser {
		if err := uc.cache.InvalidateOrganiser(ctx, id); err != nil {
			uc.logger.WarnContext(ctx, "slot cache invalidation failed", "organiser_id", id, "error", err.Error())
		}
	}
	uc.logger.InfoContext(ctx, "user deleted", "user_id", id, "force", force)
	return nil
}
