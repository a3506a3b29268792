package readstore

import (
	"context"

	"appointment-booking/internal/infra"
	"appointment-booking/internal/infra/sqlstore"
	"appointment-booking/internal/pkg/pgconv"
	"appointment-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type PaymentReadQueries interface {
	GetPaymentByID(ctx context.Context, db sqlstore.DBTX, id uuid.UUID) (sqlstore.Payments, error)
	GetCheckoutByBooking(ctx context.Context, db sqlstore.DBTX, bookingID uuid.UUID) (sqlstore.GetCheckoutByBookingRow, error)
	GetPaymentReceipt(ctx context.Context, db sqlstore.DBTX, id uuid.UUID) (sqlstore.GetPaymentReceiptRow, error)
}

type PaymentReadStore struct {
	queries PaymentReadQueries
	db      sqlstore.DBTX
}

func NewPaymentReadStore(queries PaymentReadQueries, db sqlstore.DBTX) *PaymentReadStore {
	return &PaymentReadStore{
		queries: queries,
		db:      db,
	}
}

func (s *PaymentReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.PaymentView, error) {
	row, err := s.queries.GetPaymentByID(ctx, s.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payment by ID", err)
	}
	return toPaymentView(row), nil
}

func (s *PaymentReadStore) FindCheckout(ctx context.Context, bookingID uuid.UUID) (*queries.CheckoutSource, error) {
	row, err := s.queries.GetCheckoutByBooking(ctx, s.db, bookingID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load checkout", err)
	}
	return &queries.CheckoutSource{
		BookingID:     row.ID,
		BookingStatus: row.Status,
		ServiceID:     row.ServiceID,
		ServiceName:   row.ServiceName,
		PriceMinor:    pgconv.Int8PtrFromPgtype(row.PriceMinor),
		CustomerName:  row.CustomerName,
		CustomerEmail: row.CustomerEmail,
		StartTime:     pgconv.TimeFromPgtype(row.StartTime),
		EndTime:       pgconv.TimeFromPgtype(row.EndTime),
	}, nil
}

func (s *PaymentReadStore) FindReceipt(ctx context.Context, id uuid.UUID) (*queries.ReceiptView, error) {
	row, err := s.queries.GetPaymentReceipt(ctx, s.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load receipt", err)
	}
	return &queries.ReceiptView{
		PaymentID:     row.ID,
		BookingID:     row.BookingID,
		Status:        row.Status,
		ServiceID:     row.ServiceID,
		ServiceName:   row.ServiceName,
		CustomerName:  row.CustomerName,
		CustomerEmail: row.CustomerEmail,
		StartTime:     pgconv.TimeFromPgtype(row.StartTime),
		EndTime:       pgconv.TimeFromPgtype(row.EndTime),
		Price:         row.BaseAmount,
		Tax:           row.TaxAmount,
		Total:         row.Amount,
		Currency:      row.Currency,
		Provider:      row.Provider,
		ProviderRef:   pgconv.StringPtrFromPgtype(row.ProviderRef),
		CreatedAt:     pgconv.TimeFromPgtype(row.CreatedAt),
		PaidAt:        pgconv.TimePtrFromPgtype(row.PaidAt),
	}, nil
}

func toPaymentView(row sqlstore.Payments) *queries.PaymentView {
	return &queries.PaymentView{
		ID:            row.ID,
		BookingID:     row.BookingID,
		BaseAmount:    row.BaseAmount,
		TaxAmount:     row.TaxAmount,
		Amount:        row.Amount,
		Currency:      row.Currency,
		Provider:      row.Provider,
		ProviderRef:   pgconv.StringPtrFromPgtype(row.ProviderRef),
		Status:        row.Status,
		FailureReason: pgconv.StringPtrFromPgtype(row.FailureReason),
		PaidAt:        pgconv.TimePtrFromPgtype(row.PaidAt),
		CreatedAt:     pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:     pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}
