package response

import (
	"time"

	"appointment-booking/internal/usecase/queries"
)

type AppointmentResponse struct {
	ID             string    `json:"id"`
	ServiceID      string    `json:"service_id"`
	ServiceName    string    `json:"service_name"`
	OrganiserID    string    `json:"organiser_id"`
	CustomerName   string    `json:"customer_name"`
	CustomerEmail  string    `json:"customer_email"`
	CustomerUserID *string   `json:"customer_user_id,omitempty"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	Status         string    `json:"status"`
	CancelReason   *string   `json:"cancel_reason,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// BookingResponse adds whether the result came from an idempotent replay.
type BookingResponse struct {
	AppointmentResponse
	IsReplayed bool `json:"is_replayed"`
}

type AppointmentListResponse struct {
	Appointments []*AppointmentResponse `json:"appointments"`
	StatusCounts map[string]int64       `json:"status_counts"`
	NextCursor   string                 `json:"next_cursor,omitempty"`
}

func FromAppointmentView(v *queries.AppointmentView, loc *time.Location) *AppointmentResponse {
	res := &AppointmentResponse{
		ID:            v.ID.String(),
		ServiceID:     v.ServiceID.String(),
		ServiceName:   v.ServiceName,
		OrganiserID:   v.OrganiserID.String(),
		CustomerName:  v.CustomerName,
		CustomerEmail: v.CustomerEmail,
		StartTime:     v.StartTime.In(loc),
		EndTime:       v.EndTime.In(loc),
		Status:        v.Status,
		CancelReason:  v.CancelReason,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
	if v.CustomerUserID != nil {
		id := v.CustomerUserID.String()
		res.CustomerUserID = &id
	}
	return res
}

func FromAppointmentList(items []*queries.AppointmentView, loc *time.Location) []*AppointmentResponse {
	res := make([]*AppointmentResponse, len(items))
	for i, it := range items {
		res[i] = FromAppointmentView(it, loc)
	}
	return res
}

func FromAppointmentPage(p *queries.AppointmentPage, loc *time.Location) *AppointmentListResponse {
	res := &AppointmentListResponse{
		Appointments: FromAppointmentList(p.Items, loc),
		StatusCounts: p.StatusCounts,
	}
	if p.Next != nil {
		res.NextCursor = p.Next.After
	}
	return res
}
