package shared

import (
	"context"
	"time"

	"appointment-booking/internal/domain/schedule"
	"appointment-booking/internal/domain/slot"
	"appointment-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

// SlotCacheEntry is the result of a cache read. Generation is handed back to
// Set, so intervals computed before an invalidation are never served after it.
type SlotCacheEntry struct {
	Intervals  []slot.Interval
	Generation int64
	Hit        bool
}

// SlotCache stores schedule-derived candidate intervals. Booking counts never go here.
type SlotCache interface {
	Get(ctx context.Context, organiserID uuid.UUID, durationMinutes int, date schedule.Date) (SlotCacheEntry, error)
	Set(ctx context.Context, organiserID uuid.UUID, generation int64, durationMinutes int, date schedule.Date, intervals []slot.Interval) error
	InvalidateOrganiser(ctx context.Context, organiserID uuid.UUID) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, body []byte) error
}

var (
	ErrProviderTransient = errs.New("payment provider temporarily unavailable")
	ErrProviderDeclined  = errs.New("payment declined by provider")
)

type ChargeRequest struct {
	PaymentID uuid.UUID
	Amount    int64
	Currency  string
	Token     string
}

type ChargeResult struct {
	Reference string
}

// PaymentProvider charges a payment. Implementations mark retryable failures
// with ErrProviderTransient.
type PaymentProvider interface {
	Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error)
}

type Metrics interface {
	BookingCreated()
	BookingRejected(reason string)
	SlotLockWait(d time.Duration)
	StatusChanged(from, to string)
	PaymentOutcome(outcome string)
	PendingSwept(n int)
	OutboxRelayed(status string, n int)
	SlotCacheResult(hit bool)
}
