package request

import (
	"time"

	"appointment-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ServiceID     uuid.UUID `json:"service_id" binding:"required"`
	StartTime     time.Time `json:"start_time" binding:"required"`
	CustomerName  string    `json:"customer_name" binding:"required,max=200"`
	CustomerEmail string    `json:"customer_email" binding:"required,max=254"`
}

func (r *CreateBookingRequest) ToInput(idempotencyKey string) commands.CreateBookingInput {
	return commands.CreateBookingInput{
		ServiceID:      r.ServiceID,
		StartTime:      r.StartTime,
		CustomerName:   r.CustomerName,
		CustomerEmail:  r.CustomerEmail,
		IdempotencyKey: idempotencyKey,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason" binding:"max=500"`
}

func (r *UpdateStatusRequest) ToInput() commands.UpdateStatusInput {
	return commands.UpdateStatusInput{Status: r.Status, Reason: r.Reason}
}
