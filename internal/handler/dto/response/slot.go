package response

import (
	"time"

	"appointment-booking/internal/usecase/queries"
)

type SlotResponse struct {
	StartTime            time.Time `json:"start_time"`
	EndTime              time.Time `json:"end_time"`
	CurrentBookingsCount int       `json:"current_bookings_count"`
	Capacity             int       `json:"capacity"`
	IsAvailable          bool      `json:"is_available"`
}

func FromSlotViews(views []*queries.SlotView) []*SlotResponse {
	res := make([]*SlotResponse, len(views))
	for i, v := range views {
		res[i] = &SlotResponse{
			StartTime:            v.StartTime,
			EndTime:              v.EndTime,
			CurrentBookingsCount: v.CurrentBookingsCount,
			Capacity:             v.Capacity,
			IsAvailable:          v.IsAvailable,
		}
	}
	return res
}
