package shared

import (
	"context"
	"time"

	"appointment-booking/internal/domain/appointment"
	"appointment-booking/internal/domain/payment"
	"appointment-booking/internal/domain/schedule"
	"appointment-booking/internal/domain/service"
	"appointment-booking/internal/domain/user"
	"appointment-booking/internal/infra/sqlstore"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlstore.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Schedules() ScheduleRepository
	Services() ServiceRepository
	Appointments() AppointmentRepository
	Payments() PaymentRepository
	Idempotency() IdempotencyRepository
	Notifications() NotificationRepository
	Users() UserRepository
	Reads() CommandReads
	DB() sqlstore.DBTX
}

// CommandReads loads write-side aggregates. The *ForUpdate variants lock the row
// and only make sense inside Within.
type CommandReads interface {
	ServiceByID(ctx context.Context, id uuid.UUID) (*service.Service, error)
	ServiceForUpdate(ctx context.Context, id uuid.UUID) (*service.Service, error)
	WeekFor(ctx context.Context, organiserID uuid.UUID) (*schedule.Week, error)
	HasOverride(ctx context.Context, organiserID uuid.UUID, date schedule.Date) (bool, error)
	AppointmentForUpdate(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error)
	PaymentForUpdate(ctx context.Context, id uuid.UUID) (*payment.Payment, error)
	LivePaymentForBooking(ctx context.Context, bookingID uuid.UUID) (*payment.Payment, error)
	IdempotencyByKey(ctx context.Context, key, endpoint string) (*IdempotencyRecord, error)
	UserByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

type ScheduleRepository interface {
	ReplaceWeek(ctx context.Context, tx sqlstore.DBTX, week *schedule.Week, now time.Time) error
	UpsertDay(ctx context.Context, tx sqlstore.DBTX, organiserID uuid.UUID, entry schedule.Entry, now time.Time) error
	DeleteDay(ctx context.Context, tx sqlstore.DBTX, organiserID uuid.UUID, day schedule.Weekday) error
	AddOverride(ctx context.Context, tx sqlstore.DBTX, o *schedule.Override) error
	RemoveOverride(ctx context.Context, tx sqlstore.DBTX, organiserID uuid.UUID, date schedule.Date) error
	DeleteAllForOrganiser(ctx context.Context, tx sqlstore.DBTX, organiserID uuid.UUID) error
}

type ServiceRepository interface {
	Create(ctx context.Context, tx sqlstore.DBTX, s *service.Service) error
	Update(ctx context.Context, tx sqlstore.DBTX, s *service.Service) error
	Delete(ctx context.Context, tx sqlstore.DBTX, id uuid.UUID) error
	CountAppointments(ctx context.Context, tx sqlstore.DBTX, id uuid.UUID) (int64, error)
	UnlinkOrganiser(ctx context.Context, tx sqlstore.DBTX, organiserID uuid.UUID, now time.Time) (int64, error)
}

type AppointmentRepository interface {
	// LockSlot serializes writers on (organiser, start) until the transaction ends.
	LockSlot(ctx context.Context, tx sqlstore.DBTX, organiserID uuid.UUID, start time.Time) error
	CountActiveAt(ctx context.Context, tx sqlstore.DBTX, organiserID uuid.UUID, start time.Time) (int, error)
	Create(ctx context.Context, tx sqlstore.DBTX, a *appointment.Appointment) error
	UpdateStatus(ctx context.Context, tx sqlstore.DBTX, a *appointment.Appointment) error
	ClaimExpiredPending(ctx context.Context, tx sqlstore.DBTX, createdBefore time.Time, limit int) ([]*appointment.Appointment, error)
	DeleteByCustomer(ctx context.Context, tx sqlstore.DBTX, customerUserID uuid.UUID) (int64, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, tx sqlstore.DBTX, p *payment.Payment) error
	UpdateStatus(ctx context.Context, tx sqlstore.DBTX, p *payment.Payment) error
	FailInitiatedForBooking(ctx context.Context, tx sqlstore.DBTX, bookingID uuid.UUID, reason string, now time.Time) (int64, error)
}

type IdempotencyRepository interface {
	// Insert returns false when the key is already taken.
	Insert(ctx context.Context, tx sqlstore.DBTX, rec IdempotencyRecord, now time.Time) (bool, error)
	DeleteExpired(ctx context.Context, tx sqlstore.DBTX, now time.Time) (int64, error)
}

type NotificationRepository interface {
	Enqueue(ctx context.Context, tx sqlstore.DBTX, job NotificationJob, now time.Time) error
	ClaimDue(ctx context.Context, tx sqlstore.DBTX, now time.Time, limit int) ([]NotificationJob, error)
	SaveResult(ctx context.Context, tx sqlstore.DBTX, job NotificationJob, now time.Time) error
}

type UserRepository interface {
	Create(ctx context.Context, tx sqlstore.DBTX, u *user.User) error
	Delete(ctx context.Context, tx sqlstore.DBTX, id uuid.UUID) error
	CountDependents(ctx context.Context, tx sqlstore.DBTX, id uuid.UUID) (user.Dependents, error)
}
