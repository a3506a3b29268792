package commands

//go:generate mockgen -source=schedule.go -destination=../../../tests/mock/commands/schedule.go -package=commands

import (
	"context"
	"log/slog"

	"appointment-booking/internal/domain/schedule"
	"appointment-booking/internal/domain/user"
	"appointment-booking/internal/infra"
	"appointment-booking/internal/pkg/clock"
	"appointment-booking/internal/pkg/errs"
	"appointment-booking/internal/usecase/queries"
	"appointment-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrScheduleForbidden   = errs.Mark(errs.New("only the organiser or an admin may change this schedule"), errs.ErrForbidden)
	ErrOrganiserNotFound   = errs.Mark(errs.New("organiser not found"), errs.ErrNotFound)
	ErrScheduleDayNotFound = errs.Mark(errs.New("no schedule entry for that day"), errs.ErrNotFound)
	ErrOverrideNotFound    = errs.Mark(errs.New("no override for that date"), errs.ErrNotFound)
	ErrOverrideExists      = errs.Mark(errs.New("an override already exists for that date"), errs.ErrConflict)
)

type ScheduleEntryInput struct {
	DayOfWeek     int
	StartTime     string
	EndTime       string
	IsUnavailable bool
}

type ScheduleCommands interface {
	// BulkSet replaces the whole week; days not listed are left without an entry.
	BulkSet(ctx context.Context, organiserID uuid.UUID, entries []ScheduleEntryInput, actor *shared.Actor) (*queries.WeeklyScheduleView, error)
	UpsertDay(ctx context.Context, organiserID uuid.UUID, entry ScheduleEntryInput, actor *shared.Actor) error
	DeleteDay(ctx context.Context, organiserID uuid.UUID, day int, actor *shared.Actor) error
	AddOverride(ctx context.Context, organiserID uuid.UUID, date, reason string, actor *shared.Actor) (*queries.OverrideView, error)
	RemoveOverride(ctx context.Context, organiserID uuid.UUID, date string, actor *shared.Actor) error
}

type scheduleUseCaseImpl struct {
	uow    shared.UnitOfWork
	cache  shared.SlotCache
	clock  clock.Clock
	logger *slog.Logger
}

func NewScheduleUseCase(uow shared.UnitOfWork, cache shared.SlotCache, clk clock.Clock, logger *slog.Logger) ScheduleCommands {
	return &scheduleUseCaseImpl{uow: uow, cache: cache, clock: clk, logger: logger}
}

func (uc *scheduleUseCaseImpl) BulkSet(ctx context.Context, organiserID uuid.UUID, inputs []ScheduleEntryInput, actor *shared.Actor) (*queries.WeeklyScheduleView, error) {
	if !canManageSchedule(actor, organiserID) {
		return nil, ErrScheduleForbidden
	}

	entries := make([]schedule.Entry, 0, len(inputs))
	for _, in := range inputs {
		e, err := toEntry(in)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	week, err := schedule.NewWeek(organiserID, entries)
	if err != nil {
		return nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Schedules().ReplaceWeek(ctx, tx.DB(), week, uc.clock.Now()); err != nil {
			return translateOrganiserErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.invalidate(ctx, organiserID)
	return queries.ToWeeklyScheduleView(week), nil
}

func (uc *scheduleUseCaseImpl) UpsertDay(ctx context.Context, organiserID uuid.UUID, in ScheduleEntryInput, actor *shared.Actor) error {
	if !canManageSchedule(actor, organiserID) {
		return ErrScheduleForbidden
	}
	entry, err := toEntry(in)
	if err != nil {
		return err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Schedules().UpsertDay(ctx, tx.DB(), organiserID, entry, uc.clock.Now()); err != nil {
			return translateOrganiserErr(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	uc.invalidate(ctx, organiserID)
	return nil
}

func (uc *scheduleUseCaseImpl) DeleteDay(ctx context.Context, organiserID uuid.UUID, day int, actor *shared.Actor) error {
	if !canManageSchedule(actor, organiserID) {
		return ErrScheduleForbidden
	}
	wd, err := schedule.NewWeekday(day)
	if err != nil {
		return err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		err := tx.Schedules().DeleteDay(ctx, tx.DB(), organiserID, wd)
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrScheduleDayNotFound
		}
		return err
	})
	if err != nil {
		return err
	}
	uc.invalidate(ctx, organiserID)
	return nil
}

func (uc *scheduleUseCaseImpl) AddOverride(ctx context.Context, organiserID uuid.UUID, date, reason string, actor *shared.Actor) (*queries.OverrideView, error) {
	if !canManageSchedule(actor, organiserID) {
		return nil, ErrScheduleForbidden
	}
	d, err := schedule.ParseDate(date)
	if err != nil {
		return nil, err
	}
	o, err := schedule.NewOverride(organiserID, d, reason, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		err := tx.Schedules().AddOverride(ctx, tx.DB(), o)
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return ErrOverrideExists
		}
		return translateOrganiserErr(err)
	})
	if err != nil {
		return nil, err
	}

	uc.invalidate(ctx, organiserID)
	return &queries.OverrideView{
		OrganiserID: organiserID,
		Date:        o.Date().String(),
		Reason:      o.Reason(),
		CreatedAt:   o.CreatedAt(),
	}, nil
}

func (uc *scheduleUseCaseImpl) RemoveOverride(ctx context.Context, organiserID uuid.UUID, date string, actor *shared.Actor) error {
	if !canManageSchedule(actor, organiserID) {
		return ErrScheduleForbidden
	}
	d, err := schedule.ParseDate(date)
	if err != nil {
		return err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		err := tx.Schedules().RemoveOverride(ctx, tx.DB(), organiserID, d)
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrOverrideNotFound
		}
		return err
	})
	if err != nil {
		return err
	}
	uc.invalidate(ctx, organiserID)
	return nil
}

// invalidate runs after commit. A failure only leaves stale candidates until the TTL.
func (uc *scheduleUseCaseImpl) invalidate(ctx context.Context, organiserID uuid.UUID) {
	if err := uc.cache.InvalidateOrganiser(ctx, organiserID); err != nil {
		uc.logger.WarnContext(ctx, "slot cache invalidation failed", "organiser_id", organiserID, "error", err)
	}
}

func canManageSchedule(actor *shared.Actor, organiserID uuid.UUID) bool {
	return actor.IsAdmin() || (actor.Is(user.RoleOrganiser) && actor.UserID == organiserID)
}

func toEntry(in ScheduleEntryInput) (schedule.Entry, error) {
	start, end := in.StartTime, in.EndTime
	if in.IsUnavailable {
		if start == "" {
			start = "00:00"
		}
		if end == "" {
			end = "00:00"
		}
	}
	return schedule.NewEntry(in.DayOfWeek, start, end, in.IsUnavailable)
}

func translateOrganiserErr(err error) error {
	if infra.IsKind(err, infra.KindForeignKeyViolated) {
		return ErrOrganiserNotFound
	}
	return err
}
