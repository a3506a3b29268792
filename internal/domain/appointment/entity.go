package appointment

import (
	"strings"
	"time"

	"appointment-booking/internal/domain/user"
	"appointment-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidCustomerName = errs.Mark(errs.New("customer_name must be 1-200 characters"), errs.ErrValidation)
	ErrInvalidTimeRange    = errs.Mark(errs.New("appointment must end after it starts"), errs.ErrValidation)
)

type Customer struct {
	name   string
	email  string
	userID *uuid.UUID
}

func NewCustomer(name, email string, userID *uuid.UUID) (Customer, error) {
	n, err := user.NewFullName(name)
	if err != nil {
		return Customer{}, ErrInvalidCustomerName
	}
	e, err := user.NewEmail(email)
	if err != nil {
		return Customer{}, err
	}
	return Customer{name: n.Value(), email: e.Value(), userID: userID}, nil
}

func (c Customer) Name() string       { return c.name }
func (c Customer) Email() string      { return c.email }
func (c Customer) UserID() *uuid.UUID { return c.userID }

type Appointment struct {
	id           uuid.UUID
	serviceID    uuid.UUID
	organiserID  uuid.UUID
	customer     Customer
	start        time.Time
	end          time.Time
	status       Status
	cancelReason *string
	createdAt    time.Time
	updatedAt    time.Time
}

// NewAppointment creates a pending reservation for the interval.
func NewAppointment(serviceID, organiserID uuid.UUID, customer Customer, start, end time.Time, now time.Time) (*Appointment, error) {
	if !end.After(start) {
		return nil, ErrInvalidTimeRange
	}
	return &Appointment{
		id:          uuid.New(),
		serviceID:   serviceID,
		organiserID: organiserID,
		customer:    customer,
		start:       start,
		end:         end,
		status:      StatusPending,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructAppointment(
	id, serviceID, organiserID uuid.UUID,
	customerName, customerEmail string, customerUserID *uuid.UUID,
	start, end time.Time, status Status, cancelReason *string,
	createdAt, updatedAt time.Time,
) *Appointment {
	return &Appointment{
		id:           id,
		serviceID:    serviceID,
		organiserID:  organiserID,
		customer:     Customer{name: customerName, email: customerEmail, userID: customerUserID},
		start:        start,
		end:          end,
		status:       status,
		cancelReason: cancelReason,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// TransitionTo applies the state machine. On error nothing is changed.
func (a *Appointment) TransitionTo(to Status, reason string, now time.Time) error {
	if !CanTransition(a.status, to) {
		return errs.Wrapf(ErrInvalidTransition, "%s -> %s", a.status, to)
	}
	a.status = to
	a.updatedAt = now
	if to == StatusCancelled {
		if r := strings.TrimSpace(reason); r != "" {
			a.cancelReason = &r
		}
	}
	return nil
}

// ExpiredAt reports whether a pending appointment has outlived timeout.
func (a *Appointment) ExpiredAt(now time.Time, timeout time.Duration) bool {
	return a.status == StatusPending && !a.createdAt.Add(timeout).After(now)
}

func (a *Appointment) IsCustomer(userID uuid.UUID) bool {
	return a.customer.userID != nil && *a.customer.userID == userID
}

func (a *Appointment) ID() uuid.UUID          { return a.id }
func (a *Appointment) ServiceID() uuid.UUID   { return a.serviceID }
func (a *Appointment) OrganiserID() uuid.UUID { return a.organiserID }
func (a *Appointment) Customer() Customer     { return a.customer }
func (a *Appointment) Start() time.Time       { return a.start }
func (a *Appointment) End() time.Time         { return a.end }
func (a *Appointment) Status() Status         { return a.status }
func (a *Appointment) CancelReason() *string  { return a.cancelReason }
func (a *Appointment) CreatedAt() time.Time   { return a.createdAt }
func (a *Appointment) UpdatedAt() time.Time   { return a.updatedAt }
