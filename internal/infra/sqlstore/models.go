package sqlstore

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Users struct {
	ID        uuid.UUID          `json:"id"`
	Email     string             `json:"email"`
	FullName  string             `json:"full_name"`
	Role      string             `json:"role"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

type WeeklySchedules struct {
	OrganiserID   uuid.UUID          `json:"organiser_id"`
	DayOfWeek     int16              `json:"day_of_week"`
	StartTime     pgtype.Time        `json:"start_time"`
	EndTime       pgtype.Time        `json:"end_time"`
	IsUnavailable bool               `json:"is_unavailable"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
	UpdatedAt     pgtype.Timestamptz `json:"updated_at"`
}

type ScheduleOverrides struct {
	OrganiserID uuid.UUID          `json:"organiser_id"`
	Date        pgtype.Date        `json:"date"`
	Reason      string             `json:"reason"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
}

type Services struct {
	ID              uuid.UUID          `json:"id"`
	OrganiserID     pgtype.UUID        `json:"organiser_id"`
	Name            string             `json:"name"`
	Description     string             `json:"description"`
	DurationMinutes int32              `json:"duration_minutes"`
	PriceMinor      pgtype.Int8        `json:"price_minor"`
	IsPublished     bool               `json:"is_published"`
	CreatedAt       pgtype.Timestamptz `json:"created_at"`
	UpdatedAt       pgtype.Timestamptz `json:"updated_at"`
}

type Appointments struct {
	ID             uuid.UUID          `json:"id"`
	ServiceID      uuid.UUID          `json:"service_id"`
	OrganiserID    uuid.UUID          `json:"organiser_id"`
	CustomerName   string             `json:"customer_name"`
	CustomerEmail  string             `json:"customer_email"`
	CustomerUserID pgtype.UUID        `json:"customer_user_id"`
	StartTime      pgtype.Timestamptz `json:"start_time"`
	EndTime        pgtype.Timestamptz `json:"end_time"`
	Status         string             `json:"status"`
	CancelReason   pgtype.Text        `json:"cancel_reason"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
}

type Payments struct {
	ID            uuid.UUID          `json:"id"`
	BookingID     uuid.UUID          `json:"booking_id"`
	BaseAmount    int64              `json:"base_amount"`
	TaxAmount     int64              `json:"tax_amount"`
	Amount        int64              `json:"amount"`
	Currency      string             `json:"currency"`
	Provider      string             `json:"provider"`
	ProviderRef   pgtype.Text        `json:"provider_ref"`
	Status        string             `json:"status"`
	FailureReason pgtype.Text        `json:"failure_reason"`
	PaidAt        pgtype.Timestamptz `json:"paid_at"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
	UpdatedAt     pgtype.Timestamptz `json:"updated_at"`
}

type IdempotencyKeys struct {
	Key           string             `json:"key"`
	Endpoint      string             `json:"endpoint"`
	RequestHash   string             `json:"request_hash"`
	AppointmentID uuid.UUID          `json:"appointment_id"`
	ExpiresAt     pgtype.Timestamptz `json:"expires_at"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
}

type NotificationJobs struct {
	ID        uuid.UUID          `json:"id"`
	Kind      string             `json:"kind"`
	Topic     string             `json:"topic"`
	Payload   []byte             `json:"payload"`
	RunAt     pgtype.Timestamptz `json:"run_at"`
	Attempts  int32              `json:"attempts"`
	Status    string             `json:"status"`
	LastError pgtype.Text        `json:"last_error"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}
