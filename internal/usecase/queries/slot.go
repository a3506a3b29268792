package queries

//go:generate mockgen -source=slot.go -destination=../../../tests/mock/queries/slot.go -package=queries

import (
	"context"
	"log/slog"
	"time"

	"appointment-booking/internal/domain/schedule"
	"appointment-booking/internal/domain/slot"
	"appointment-booking/internal/infra"
	"appointment-booking/internal/pkg/clock"
	"appointment-booking/internal/pkg/errs"
	"appointment-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrServiceNotFound = errs.Mark(errs.New("service not found"), errs.ErrNotFound)

type SlotCountStore interface {
	CountActiveInRange(ctx context.Context, organiserID uuid.UUID, from, to time.Time) (slot.Counts, error)
}

type SlotQueries interface {
	// ListSlots returns the future slots of serviceID on date (YYYY-MM-DD, business timezone).
	ListSlots(ctx context.Context, serviceID uuid.UUID, date string) ([]*SlotView, error)
}

type slotQueriesImpl struct {
	services  ServiceReadStore
	schedules ScheduleReadStore
	counts    SlotCountStore
	cache     shared.SlotCache
	metrics   shared.Metrics
	policy    shared.BookingPolicy
	clock     clock.Clock
	logger    *slog.Logger
}

func NewSlotQueries(
	services ServiceReadStore,
	schedules ScheduleReadStore,
	counts SlotCountStore,
	cache shared.SlotCache,
	metrics shared.Metrics,
	policy shared.BookingPolicy,
	clk clock.Clock,
	logger *slog.Logger,
) SlotQueries {
	return &slotQueriesImpl{
		services:  services,
		schedules: schedules,
		counts:    counts,
		cache:     cache,
		metrics:   metrics,
		policy:    policy,
		clock:     clk,
		logger:    logger,
	}
}

func (q *slotQueriesImpl) ListSlots(ctx context.Context, serviceID uuid.UUID, dateStr string) ([]*SlotView, error) {
	date, err := schedule.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	svc, err := q.services.FindByID(ctx, serviceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	if svc.OrganiserID == nil {
		return nil, ErrServiceNotFound
	}
	organiserID := *svc.OrganiserID

	intervals, err := q.candidates(ctx, organiserID, svc.DurationMinutes, date)
	if err != nil {
		return nil, err
	}
	if len(intervals) == 0 {
		return []*SlotView{}, nil
	}

	loc := q.policy.Location
	dayStart := date.At(0, loc)
	counts, err := q.counts.CountActiveInRange(ctx, organiserID, dayStart, date.AddDays(1).At(0, loc))
	if err != nil {
		return nil, err
	}

	slots := slot.Resolve(intervals, counts, q.policy.Capacity, q.clock.Now())
	views := make([]*SlotView, len(slots))
	for i, s := range slots {
		views[i] = &SlotView{
			StartTime:            s.Start.In(loc),
			EndTime:              s.End.In(loc),
			CurrentBookingsCount: s.Booked,
			Capacity:             s.Capacity,
			IsAvailable:          s.IsAvailable(),
		}
	}
	return views, nil
}

// candidates returns the schedule-derived intervals, from cache when possible.
// Cache failures degrade to a direct computation.
func (q *slotQueriesImpl) candidates(ctx context.Context, organiserID uuid.UUID, durationMinutes int, date schedule.Date) ([]slot.Interval, error) {
	entry, cacheErr := q.cache.Get(ctx, organiserID, durationMinutes, date)
	if cacheErr != nil {
		q.logger.WarnContext(ctx, "slot cache read failed", "organiser_id", organiserID, "error", cacheErr)
	}
	q.metrics.SlotCacheResult(entry.Hit)
	if entry.Hit {
		return entry.Intervals, nil
	}

	week, err := q.schedules.FindWeek(ctx, organiserID)
	if err != nil {
		return nil, err
	}
	overridden, err := q.schedules.HasOverride(ctx, organiserID, date)
	if err != nil {
		return nil, err
	}
	intervals, err := slot.Plan(week, date, overridden, time.Duration(durationMinutes)*time.Minute, q.policy.Location)
	if err != nil {
		return nil, err
	}

	// without a generation the write could outlive a concurrent invalidation
	if cacheErr != nil {
		return intervals, nil
	}
	if err := q.cache.Set(ctx, organiserID, entry.Generation, durationMinutes, date, intervals); err != nil {
		q.logger.WarnContext(ctx, "slot cache write failed", "organiser_id", organiserID, "error", err)
	}
	return intervals, nil
}
