package queries

//go:generate mockgen -source=payment.go -destination=../../../tests/mock/queries/payment.go -package=queries

import (
	"context"

	"appointment-booking/internal/domain/payment"
	"appointment-booking/internal/infra"
	"appointment-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrPaymentNotFound    = errs.Mark(errs.New("payment not found"), errs.ErrNotFound)
	ErrBookingNotFound    = errs.Mark(errs.New("booking not found"), errs.ErrNotFound)
	ErrReceiptUnavailable = errs.Mark(errs.New("receipt is only available for succeeded payments"), errs.ErrConflict)
)

type PaymentReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PaymentView, error)
	FindCheckout(ctx context.Context, bookingID uuid.UUID) (*CheckoutSource, error)
	FindReceipt(ctx context.Context, id uuid.UUID) (*ReceiptView, error)
}

type PaymentQueries interface {
	Get(ctx context.Context, id uuid.UUID) (*PaymentView, error)
	Checkout(ctx context.Context, bookingID uuid.UUID) (*CheckoutView, error)
	Receipt(ctx context.Context, id uuid.UUID) (*ReceiptView, error)
}

type paymentQueriesImpl struct {
	repo   PaymentReadStore
	policy payment.Policy
}

func NewPaymentQueries(repo PaymentReadStore, policy payment.Policy) PaymentQueries {
	return &paymentQueriesImpl{repo: repo, policy: policy}
}

func (q *paymentQueriesImpl) Get(ctx context.Context, id uuid.UUID) (*PaymentView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *paymentQueriesImpl) Checkout(ctx context.Context, bookingID uuid.UUID) (*CheckoutView, error) {
	src, err := q.repo.FindCheckout(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	quote, err := q.policy.QuoteFor(src.PriceMinor)
	if err != nil {
		return nil, err
	}
	return &CheckoutView{
		BookingID:     src.BookingID,
		BookingStatus: src.BookingStatus,
		ServiceID:     src.ServiceID,
		ServiceName:   src.ServiceName,
		CustomerName:  src.CustomerName,
		CustomerEmail: src.CustomerEmail,
		StartTime:     src.StartTime,
		EndTime:       src.EndTime,
		Price:         quote.Base,
		Tax:           quote.Tax,
		Total:         quote.Total,
		Currency:      quote.Currency,
	}, nil
}

func (q *paymentQueriesImpl) Receipt(ctx context.Context, id uuid.UUID) (*ReceiptView, error) {
	receipt, err := q.repo.FindReceipt(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	if receipt.Status != payment.StatusSucceeded.String() {
		return nil, ErrReceiptUnavailable
	}
	return receipt, nil
}
