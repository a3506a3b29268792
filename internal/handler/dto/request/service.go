package request

import (
	"appointment-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateServiceRequest struct {
	OrganiserID     *uuid.UUID `json:"organiser_id"`
	Name            string     `json:"name" binding:"required,max=200"`
	Description     string     `json:"description" binding:"max=2000"`
	DurationMinutes *int       `json:"duration_minutes" binding:"omitempty,min=1,max=1440"`
	PriceMinor      *int64     `json:"price_minor" binding:"omitempty,min=0"`
	IsPublished     *bool      `json:"is_published"`
}

func (r *CreateServiceRequest) ToInput() commands.CreateServiceInput {
	return commands.CreateServiceInput{
		OrganiserID:     r.OrganiserID,
		Name:            r.Name,
		Description:     r.Description,
		DurationMinutes: r.DurationMinutes,
		PriceMinor:      r.PriceMinor,
		IsPublished:     r.IsPublished,
	}
}

// UpdateServiceRequest is a partial update: nil fields keep their current value.
// clear_price removes the price so the default applies.
type UpdateServiceRequest struct {
	Name            *string `json:"name" binding:"omitempty,max=200"`
	Description     *string `json:"description" binding:"omitempty,max=2000"`
	DurationMinutes *int    `json:"duration_minutes" binding:"omitempty,min=1,max=1440"`
	PriceMinor      *int64  `json:"price_minor" binding:"omitempty,min=0"`
	ClearPrice      bool    `json:"clear_price"`
	IsPublished     *bool   `json:"is_published"`
}

func (r *UpdateServiceRequest) ToPatch() commands.ServicePatch {
	return commands.ServicePatch{
		Name:            r.Name,
		Description:     r.Description,
		DurationMinutes: r.DurationMinutes,
		PriceMinor:      r.PriceMinor,
		ClearPrice:      r.ClearPrice,
		IsPublished:     r.IsPublished,
	}
}
