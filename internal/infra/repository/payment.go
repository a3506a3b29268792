package repository

import (
	"context"
	"time"

	"appointment-booking/internal/domain/payment"
	"appointment-booking/internal/infra"
	"appointment-booking/internal/infra/repository/converter"
	"appointment-booking/internal/infra/sqlstore"
	"appointment-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type PaymentWriteQueries interface {
	CreatePayment(ctx context.Context, db sqlstore.DBTX, arg sqlstore.CreatePaymentParams) error
	UpdatePaymentStatus(ctx context.Context, db sqlstore.DBTX, arg sqlstore.UpdatePaymentStatusParams) (int64, error)
	FailInitiatedPaymentsByBooking(ctx context.Context, db sqlstore.DBTX, arg sqlstore.FailInitiatedPaymentsByBookingParams) (int64, error)
}

type PaymentRepository struct {
	queries PaymentWriteQueries
}

func NewPaymentRepository(queries PaymentWriteQueries) *PaymentRepository {
	return &PaymentRepository{queries: queries}
}

// Create fails with KindDuplicateKey when the booking already has a live payment.
func (r *PaymentRepository) Create(ctx context.Context, tx sqlstore.DBTX, p *payment.Payment) error {
	if err := r.queries.CreatePayment(ctx, tx, converter.PaymentToInfra(p)); err != nil {
		return infra.WrapRepoErr("failed to create payment", err)
	}
	return nil
}

func (r *PaymentRepository) UpdateStatus(ctx context.Context, tx sqlstore.DBTX, p *payment.Payment) error {
	n, err := r.queries.UpdatePaymentStatus(ctx, tx, converter.PaymentStatusToInfra(p))
	if err != nil {
		return infra.WrapRepoErr("failed to update payment status", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("payment not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *PaymentRepository) FailInitiatedForBooking(ctx context.Context, tx sqlstore.DBTX, bookingID uuid.UUID, reason string, now time.Time) (int64, error) {
	n, err := r.queries.FailInitiatedPaymentsByBooking(ctx, tx, sqlstore.FailInitiatedPaymentsByBookingParams{
		BookingID:     bookingID,
		FailureReason: pgconv.StringToPgtype(reason),
		UpdatedAt:     pgconv.TimeToPgtype(now),
	})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to fail initiated payments", err)
	}
	return n, nil
}
