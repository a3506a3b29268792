package queries

import (
	"time"

	"github.com/google/uuid"
)

type ScheduleDayView struct {
	DayOfWeek     int    `json:"day_of_week"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	IsUnavailable bool   `json:"is_unavailable"`
}

type WeeklyScheduleView struct {
	OrganiserID uuid.UUID         `json:"organiser_id"`
	Days        []ScheduleDayView `json:"days"`
}

type OverrideView struct {
	OrganiserID uuid.UUID `json:"organiser_id"`
	Date        string    `json:"date"`
	Reason      string    `json:"reason"`
	CreatedAt   time.Time `json:"created_at"`
}

type SlotView struct {
	StartTime            time.Time `json:"start_time"`
	EndTime              time.Time `json:"end_time"`
	CurrentBookingsCount int       `json:"current_bookings_count"`
	Capacity             int       `json:"capacity"`
	IsAvailable          bool      `json:"is_available"`
}

type ServiceView struct {
	ID              uuid.UUID  `json:"id"`
	OrganiserID     *uuid.UUID `json:"organiser_id,omitempty"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	DurationMinutes int        `json:"duration_minutes"`
	PriceMinor      *int64     `json:"price_minor,omitempty"`
	IsPublished     bool       `json:"is_published"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type AppointmentView struct {
	ID             uuid.UUID  `json:"id"`
	ServiceID      uuid.UUID  `json:"service_id"`
	ServiceName    string     `json:"service_name"`
	OrganiserID    uuid.UUID  `json:"organiser_id"`
	CustomerName   string     `json:"customer_name"`
	CustomerEmail  string     `json:"customer_email"`
	CustomerUserID *uuid.UUID `json:"customer_user_id,omitempty"`
	StartTime      time.Time  `json:"start_time"`
	EndTime        time.Time  `json:"end_time"`
	Status         string     `json:"status"`
	CancelReason   *string    `json:"cancel_reason,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type PaymentView struct {
	ID            uuid.UUID  `json:"id"`
	BookingID     uuid.UUID  `json:"booking_id"`
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

// CheckoutSource is the booking data a checkout quote is priced from.
type CheckoutSource struct {
	BookingID     uuid.UUID
	BookingStatus string
	ServiceID     uuid.UUID
	ServiceName   string
	PriceMinor    *int64
	CustomerName  string
	CustomerEmail string
	StartTime     time.Time
	EndTime       time.Time
}

type CheckoutView struct {
	BookingID     uuid.UUID `json:"booking_id"`
	BookingStatus string    `json:"booking_status"`
	ServiceID     uuid.UUID `json:"service_id"`
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

type ReceiptView struct {
	PaymentID     uuid.UUID  `json:"payment_id"`
	BookingID     uuid.UUID  `json:"booking_id"`
	Status        string     `json:"status"`
	ServiceID     uuid.UUID  `json:"service_id"`
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

type UserView struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type AppointmentFilter struct {
	OrganiserID *uuid.UUID
	Status      *string
	ServiceID   *uuid.UUID
	From        *time.Time
	To          *time.Time
}

// Keyset is the (start_time, id) position a page resumes after.
type Keyset struct {
	Start time.Time
	ID    uuid.UUID
}
