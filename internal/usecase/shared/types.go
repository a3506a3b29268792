package shared

import (
	"time"

	"appointment-booking/internal/domain/user"

	"github.com/google/uuid"
)

// Actor is the authenticated caller. A nil *Actor means an anonymous request.
type Actor struct {
	UserID uuid.UUID
	Role   user.Role
}

func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == user.RoleAdmin
}

func (a *Actor) Is(role user.Role) bool {
	return a != nil && a.Role == role
}

// ActsFor reports whether the actor is id itself or an admin.
func (a *Actor) ActsFor(id uuid.UUID) bool {
	return a.IsAdmin() || (a != nil && a.UserID == id)
}

// BookingPolicy carries the booking-related settings usecases need.
type BookingPolicy struct {
	Capacity       int
	Location       *time.Location
	PendingTimeout time.Duration
	SweepBatch     int
	IdempotencyTTL time.Duration
}

type IdempotencyRecord struct {
	Key           string
	Endpoint      string
	RequestHash   string
	AppointmentID uuid.UUID
	ExpiresAt     time.Time
}

const (
	JobStatusQueued = "queued"
	JobStatusSent   = "sent"
	JobStatusFailed = "failed"
)

type NotificationJob struct {
	ID        uuid.UUID
	Kind      string
	Topic     string
	Payload   []byte
	RunAt     time.Time
	Attempts  int
	Status    string
	LastError *string
}
