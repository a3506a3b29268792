package response

import (
	"time"

	"appointment-booking/internal/usecase/queries"
)

type ServiceResponse struct {
	ID              string    `json:"id"`
	OrganiserID     *string   `json:"organiser_id,omitempty"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"duration_minutes"`
	PriceMinor      *int64    `json:"price_minor,omitempty"`
	IsPublished     bool      `json:"is_published"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func FromServiceView(v *queries.ServiceView) *ServiceResponse {
	res := &ServiceResponse{
		ID:              v.ID.String(),
		Name:            v.Name,
		Description:     v.Description,
		DurationMinutes: v.DurationMinutes,
		PriceMinor:      v.PriceMinor,
		IsPublished:     v.IsPublished,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
	if v.OrganiserID != nil {
		id := v.OrganiserID.String()
		res.OrganiserID = &id
	}
	return res
}

func FromServiceList(items []*queries.ServiceView) []*ServiceResponse {
	res := make([]*ServiceResponse, len(items))
	for i, it := range items {
		res[i] = FromServiceView(it)
	}
	return res
}
