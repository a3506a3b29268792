package request

import (
	"appointment-booking/internal/usecase/commands"
)

type ScheduleDayRequest struct {
	DayOfWeek     *int   `json:"day_of_week" binding:"required,min=0,max=6"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	IsUnavailable bool   `json:"is_unavailable"`
}

type BulkScheduleRequest struct {
	Days []ScheduleDayRequest `json:"days" binding:"required,dive"`
}

func (r *BulkScheduleRequest) ToInput() []commands.ScheduleEntryInput {
	out := make([]commands.ScheduleEntryInput, len(r.Days))
	for i, d := range r.Days {
		out[i] = commands.ScheduleEntryInput{
			DayOfWeek:     *d.DayOfWeek,
			StartTime:     d.StartTime,
			EndTime:       d.EndTime,
			IsUnavailable: d.IsUnavailable,
		}
	}
	return out
}

// UpsertDayRequest takes the weekday from the path.
type UpsertDayRequest struct {
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	IsUnavailable bool   `json:"is_unavailable"`
}

func (r *UpsertDayRequest) ToInput(day int) commands.ScheduleEntryInput {
	return commands.ScheduleEntryInput{
		DayOfWeek:     day,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		IsUnavailable: r.IsUnavailable,
	}
}

type AddOverrideRequest struct {
	Date   string `json:"date" binding:"required"`
	Reason string `json:"reason" binding:"max=500"`
}
