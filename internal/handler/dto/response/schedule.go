package response

import (
	"time"

	"appointment-booking/internal/usecase/queries"
)

type ScheduleDayResponse struct {
	DayOfWeek     int    `json:"day_of_week"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	IsUnavailable bool   `json:"is_unavailable"`
}

type WeeklyScheduleResponse struct {
	OrganiserID string                `json:"organiser_id"`
	Days        []ScheduleDayResponse `json:"days"`
}

func FromWeeklyScheduleView(v *queries.WeeklyScheduleView) *WeeklyScheduleResponse {
	days := make([]ScheduleDayResponse, len(v.Days))
	for i, d := range v.Days {
		days[i] = ScheduleDayResponse(d)
	}
	return &WeeklyScheduleResponse{OrganiserID: v.OrganiserID.String(), Days: days}
}

type OverrideResponse struct {
	OrganiserID string    `json:"organiser_id"`
	Date        string    `json:"date"`
	Reason      string    `json:"reason"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromOverrideView(v *queries.OverrideView) *OverrideResponse {
	return &OverrideResponse{
		OrganiserID: v.OrganiserID.String(),
		Date:        v.Date,
		Reason:      v.Reason,
		CreatedAt:   v.CreatedAt,
	}
}

func FromOverrideList(items []*queries.OverrideView) []*OverrideResponse {
	res := make([]*OverrideResponse, len(items))
	for i, it := range items {
		res[i] = FromOverrideView(it)
	}
	return res
}
