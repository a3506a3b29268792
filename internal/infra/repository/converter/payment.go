package converter

import (
	"appointment-booking/internal/domain/payment"
	"appointment-booking/internal/infra/sqlstore"
	"appointment-booking/internal/pkg/pgconv"
)

func PaymentToInfra(p *payment.Payment) sqlstore.CreatePaymentParams {
	q := p.Quote()
	return sqlstore.CreatePaymentParams{
		ID:         p.ID(),
		BookingID:  p.BookingID(),
		BaseAmount: q.Base,
		TaxAmount:  q.Tax,
		Amount:     q.Total,
		Currency:   q.Currency,
		Provider:   p.Provider().String(),
		Status:     p.Status().String(),
		CreatedAt:  pgconv.TimeToPgtype(p.CreatedAt()),
	}
}

func PaymentStatusToInfra(p *payment.Payment) sqlstore.UpdatePaymentStatusParams {
	return sqlstore.UpdatePaymentStatusParams{
		ID:            p.ID(),
		Status:        p.Status().String(),
		ProviderRef:   pgconv.StringPtrToPgtype(p.ProviderRef()),
		FailureReason: pgconv.StringPtrToPgtype(p.FailureReason()),
		PaidAt:        pgconv.TimePtrToPgtype(p.PaidAt()),
		UpdatedAt:     pgconv.TimeToPgtype(p.UpdatedAt()),
	}
}

func PaymentFromInfra(row sqlstore.Payments) *payment.Payment {
	return payment.ReconstructPayment(
		row.ID,
		row.BookingID,
		payment.Quote{Base: row.BaseAmount, Tax: row.TaxAmount, Total: row.Amount, Currency: row.Currency},
		payment.Provider(row.Provider),
		pgconv.StringPtrFromPgtype(row.ProviderRef),
		payment.Status(row.Status),
		pgconv.StringPtrFromPgtype(row.FailureReason),
		pgconv.TimePtrFromPgtype(row.PaidAt),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
}
