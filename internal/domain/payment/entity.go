package payment

import (
	"time"

	"appointment-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type Payment struct {
	id            uuid.UUID
	bookingID     uuid.UUID
	quote         Quote
	provider      Provider
	providerRef   *string
	status        Status
	failureReason *string
	paidAt        *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

func NewPayment(bookingID uuid.UUID, quote Quote, provider Provider, now time.Time) *Payment {
	return &Payment{
		id:        uuid.New(),
		bookingID: bookingID,
		quote:     quote,
		provider:  provider,
		status:    StatusInitiated,
		createdAt: now,
		updatedAt: now,
	}
}

func ReconstructPayment(
	id, bookingID uuid.UUID, quote Quote, provider Provider, providerRef *string,
	status Status, failureReason *string, paidAt *time.Time, createdAt, updatedAt time.Time,
) *Payment {
	return &Payment{
		id:            id,
		bookingID:     bookingID,
		quote:         quote,
		provider:      provider,
		providerRef:   providerRef,
		status:        status,
		failureReason: failureReason,
		paidAt:        paidAt,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// MarkSucceeded returns changed=false when the payment had already succeeded.
func (p *Payment) MarkSucceeded(ref string, now time.Time) (bool, error) {
	switch p.status {
	case StatusSucceeded:
		return false, nil
	case StatusFailed:
		return false, errs.Wrapf(ErrInvalidTransition, "%s -> %s", p.status, StatusSucceeded)
	}
	p.status = StatusSucceeded
	if ref != "" {
		p.providerRef = &ref
	}
	p.paidAt = &now
	p.updatedAt = now
	return true, nil
}

// MarkFailed returns changed=false when the payment had already failed.
func (p *Payment) MarkFailed(reason string, now time.Time) (bool, error) {
	switch p.status {
	case StatusFailed:
		return false, nil
	case StatusSucceeded:
		return false, errs.Wrapf(ErrInvalidTransition, "%s -> %s", p.status, StatusFailed)
	}
	p.status = StatusFailed
	if reason != "" {
		p.failureReason = &reason
	}
	p.updatedAt = now
	return true, nil
}

func (p *Payment) ID() uuid.UUID          { return p.id }
func (p *Payment) BookingID() uuid.UUID   { return p.bookingID }
func (p *Payment) Quote() Quote           { return p.quote }
func (p *Payment) Provider() Provider     { return p.provider }
func (p *Payment) ProviderRef() *string   { return p.providerRef }
func (p *Payment) Status() Status         { return p.status }
func (p *Payment) FailureReason() *string { return p.failureReason }
func (p *Payment) PaidAt() *time.Time     { return p.paidAt }
func (p *Payment) CreatedAt() time.Time   { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time   { return p.updatedAt }
