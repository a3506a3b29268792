package request

import (
	"appointment-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

// Amount and Currency are optional; when present they are checked against the server quote.
type InitPaymentRequest struct {
	BookingID uuid.UUID `json:"booking_id" binding:"required"`
	Amount    *int64    `json:"amount" binding:"omitempty,min=1"`
	Currency  string    `json:"currency" binding:"omitempty,len=3"`
	Provider  string    `json:"provider" binding:"omitempty,max=50"`
}

func (r *InitPaymentRequest) ToInput() commands.InitPaymentInput {
	return commands.InitPaymentInput{
		BookingID: r.BookingID,
		Amount:    r.Amount,
		Currency:  r.Currency,
		Provider:  r.Provider,
	}
}

type ConfirmPaymentRequest struct {
	Token string `json:"token" binding:"required,max=255"`
}

type PaymentSuccessRequest struct {
	ProviderRef string `json:"provider_ref" binding:"required,max=255"`
}

type PaymentFailureRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}
