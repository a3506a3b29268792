package response

import (
	"time"

	"appointment-booking/internal/usecase/queries"
)

type PaymentResponse struct {
	ID            string     `json:"id"`
	BookingID     string     `json:"booking_id"`
	BaseAmount    int64      `json:"base_amount"`
	TaxAmount     int64      `json:"tax_amount"`
	Amount        int64      `json:"amount"`
	Currency      string     `json:"currency"`
	Provider      string     `json:"provider"`
	ProviderRef   *string    `json:"provider_ref,omitempty"`
	Status        string     `json:"status"`
	FailureReason *string    `json:"failure_reason,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func FromPaymentView(v *queries.PaymentView) *PaymentResponse {
	return &PaymentResponse{
		ID:            v.ID.String(),
		BookingID:     v.BookingID.String(),
		BaseAmount:    v.BaseAmount,
		TaxAmount:     v.TaxAmount,
		Amount:        v.Amount,
		Currency:      v.Currency,
		Provider:      v.Provider,
		ProviderRef:   v.ProviderRef,
		Status:        v.Status,
		FailureReason: v.FailureReason,
		PaidAt:        v.PaidAt,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

type CheckoutResponse struct {
	BookingID     string    `json:"booking_id"`
	BookingStatus string    `json:"booking_status"`
	ServiceID     string    `json:"service_id"`
	ServiceName   string    `json:"service_name"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Price         int64     `json:"price"`
	Tax           int64     `json:"tax"`
	Total         int64     `json:"total"`
	Currency      string    `json:"currency"`
}

func FromCheckoutView(v *queries.CheckoutView, loc *time.Location) *CheckoutResponse {
	return &CheckoutResponse{
		BookingID:     v.BookingID.String(),
		BookingStatus: v.BookingStatus,
		ServiceID:     v.ServiceID.String(),
		ServiceName:   v.ServiceName,
		CustomerName:  v.CustomerName,
		CustomerEmail: v.CustomerEmail,
		StartTime:     v.StartTime.In(loc),
		EndTime:       v.EndTime.In(loc),
		Price:         v.Price,
		Tax:           v.Tax,
		Total:         v.Total,
		Currency:      v.Currency,
	}
}

type ReceiptResponse struct {
	PaymentID     string     `json:"payment_id"`
	BookingID     string     `json:"booking_id"`
	Status        string     `json:"status"`
	ServiceID     string     `json:"service_id"`
	ServiceName   string     `json:"service_name"`
	CustomerName  string     `json:"customer_name"`
	CustomerEmail string     `json:"customer_email"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       time.Time  `json:"end_time"`
	Price         int64      `json:"price"`
	Tax           int64      `json:"tax"`
	Total         int64      `json:"total"`
	Currency      string     `json:"currency"`
	Provider      string     `json:"provider"`
	ProviderRef   *string    `json:"provider_ref,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
}

func FromReceiptView(v *queries.ReceiptView, loc *time.Location) *ReceiptResponse {
	return &ReceiptResponse{
		PaymentID:     v.PaymentID.String(),
		BookingID:     v.BookingID.String(),
		Status:        v.Status,
		ServiceID:     v.ServiceID.String(),
		ServiceName:   v.ServiceName,
		CustomerName:  v.CustomerName,
		CustomerEmail: v.CustomerEmail,
		StartTime:     v.StartTime.In(loc),
		EndTime:       v.EndTime.In(loc),
		Price:         v.Price,
		Tax:           v.Tax,
		Total:         v.Total,
		Currency:      v.Currency,
		Provider:      v.Provider,
		ProviderRef:   v.ProviderRef,
		CreatedAt:     v.CreatedAt,
		PaidAt:        v.PaidAt,
	}
}
