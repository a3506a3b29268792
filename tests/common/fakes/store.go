//go:build unit || e2e

package fakes

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"appointment-booking/internal/domain/appointment"
	"appointment-booking/internal/domain/payment"
	"appointment-booking/internal/domain/schedule"
	"appointment-booking/internal/domain/service"
	"appointment-booking/internal/domain/user"
	"appointment-booking/internal/infra"
	"appointment-booking/internal/infra/sqlstore"
	"appointment-booking/internal/usecase/queries"
	"appointment-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type overrideKey struct {
	organiserID uuid.UUID
	date        string
}

type idemKey struct {
	key      string
	endpoint string
}

type state struct {
	users        map[uuid.UUID]*user.User
	services     map[uuid.UUID]*service.Service
	weeks        map[uuid.UUID][]schedule.Entry
	overrides    map[overrideKey]*schedule.Override
	appointments map[uuid.UUID]*appointment.Appointment
	payments     map[uuid.UUID]*payment.Payment
	idempotency  map[idemKey]shared.IdempotencyRecord
	jobs         []shared.NotificationJob
}

func newState() state {
	return state{
		users:        map[uuid.UUID]*user.User{},
		services:     map[uuid.UUID]*service.Service{},
		weeks:        map[uuid.UUID][]schedule.Entry{},
		overrides:    map[overrideKey]*schedule.Override{},
		appointments: map[uuid.UUID]*appointment.Appointment{},
		payments:     map[uuid.UUID]*payment.Payment{},
		idempotency:  map[idemKey]shared.IdempotencyRecord{},
	}
}

// clone copies every aggregate so a rolled back transaction leaves no trace.
func (s state) clone() state {
	c := newState()
	for k, v := range s.users {
		c.users[k] = cloneUser(v)
	}
	for k, v := range s.services {
		c.services[k] = cloneService(v)
	}
	for k, v := range s.weeks {
		c.weeks[k] = slices.Clone(v)
	}
	maps.Copy(c.overrides, s.overrides)
	for k, v := range s.appointments {
		c.appointments[k] = cloneAppointment(v)
	}
	for k, v := range s.payments {
		c.payments[k] = clonePayment(v)
	}
	maps.Copy(c.idempotency, s.idempotency)
	c.jobs = slices.Clone(s.jobs)
	return c
}

// Store is an in-memory shared.UnitOfWork. Transactions run one at a time,
// which gives the same per-slot serialization the advisory lock provides.
type Store struct {
	mu    sync.Mutex
	state state

	// FailCommit makes the next Within call fail after fn succeeds, rolling back.
	FailCommit error
}

func NewStore() *Store {
	return &Store{state: newState()}
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	if err := fn(ctx, &fakeTx{st: &s.state}); err != nil {
		s.state = snapshot
		return err
	}
	if err := s.FailCommit; err != nil {
		s.FailCommit = nil
		s.state = snapshot
		return err
	}
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlstore.DBTX) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx, nil)
}

func (s *Store) CommandReads() shared.CommandReads {
	return &lockedReads{s: s}
}

// Seeding and inspection helpers.

func (s *Store) PutUser(u *user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.users[u.ID()] = u
}

func (s *Store) PutService(svc *service.Service) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.services[svc.ID()] = svc
}

func (s *Store) PutWeek(w *schedule.Week) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.weeks[w.OrganiserID()] = w.Entries()
}

func (s *Store) PutOverride(o *schedule.Override) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.overrides[overrideKey{o.OrganiserID(), o.Date().String()}] = o
}

func (s *Store) PutAppointment(a *appointment.Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.appointments[a.ID()] = cloneAppointment(a)
}

func (s *Store) PutPayment(p *payment.Payment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.payments[p.ID()] = clonePayment(p)
}

func (s *Store) Appointment(id uuid.UUID) (*appointment.Appointment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.state.appointments[id]
	if !ok {
		return nil, false
	}
	return cloneAppointment(a), true
}

func (s *Store) Appointments() []*appointment.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*appointment.Appointment, 0, len(s.state.appointments))
	for _, a := range s.state.appointments {
		out = append(out, cloneAppointment(a))
	}
	return out
}

func (s *Store) Payment(id uuid.UUID) (*payment.Payment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.state.payments[id]
	if !ok {
		return nil, false
	}
	return clonePayment(p), true
}

func (s *Store) Service(id uuid.UUID) (*service.Service, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	svc, ok := s.state.services[id]
	if !ok {
		return nil, false
	}
	return cloneService(svc), true
}

func (s *Store) HasUser(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.state.users[id]
	return ok
}

func (s *Store) ScheduleDays(organiserID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.weeks[organiserID])
}

func (s *Store) Jobs() []shared.NotificationJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.state.jobs)
}

// Topics lists outbox topics in enqueue order.
func (s *Store) Topics() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.state.jobs))
	for i, j := range s.state.jobs {
		out[i] = j.Topic
	}
	return out
}

func (s *Store) IdempotencyKeys() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.idempotency)
}

// FindByID implements the appointment view reader used for replays and reloads.
func (s *Store) FindByID(_ context.Context, id uuid.UUID) (*queries.AppointmentView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.state.appointments[id]
	if !ok {
		return nil, infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}
	var name string
	if svc, ok := s.state.services[a.ServiceID()]; ok {
		name = svc.Name()
	}
	return &queries.AppointmentView{
		ID:             a.ID(),
		ServiceID:      a.ServiceID(),
		ServiceName:    name,
		OrganiserID:    a.OrganiserID(),
		CustomerName:   a.Customer().Name(),
		CustomerEmail:  a.Customer().Email(),
		CustomerUserID: a.Customer().UserID(),
		StartTime:      a.Start(),
		EndTime:        a.End(),
		Status:         a.Status().String(),
		CancelReason:   a.CancelReason(),
		CreatedAt:      a.CreatedAt(),
		UpdatedAt:      a.UpdatedAt(),
	}, nil
}

type lockedReads struct {
	s *Store
}

func (r *lockedReads) with(fn func(c *reads)) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	fn(&reads{st: &r.s.state})
}

func (r *lockedReads) ServiceByID(ctx context.Context, id uuid.UUID) (out *service.Service, err error) {
	r.with(func(c *reads) { out, err = c.ServiceByID(ctx, id) })
	return
}

func (r *lockedReads) ServiceForUpdate(ctx context.Context, id uuid.UUID) (out *service.Service, err error) {
	r.with(func(c *reads) { out, err = c.ServiceForUpdate(ctx, id) })
	return
}

func (r *lockedReads) WeekFor(ctx context.Context, organiserID uuid.UUID) (out *schedule.Week, err error) {
	r.with(func(c *reads) { out, err = c.WeekFor(ctx, organiserID) })
	return
}

func (r *lockedReads) HasOverride(ctx context.Context, organiserID uuid.UUID, date schedule.Date) (out bool, err error) {
	r.with(func(c *reads) { out, err = c.HasOverride(ctx, organiserID, date) })
	return
}

func (r *lockedReads) AppointmentForUpdate(ctx context.Context, id uuid.UUID) (out *appointment.Appointment, err error) {
	r.with(func(c *reads) { out, err = c.AppointmentForUpdate(ctx, id) })
	return
}

func (r *lockedReads) PaymentForUpdate(ctx context.Context, id uuid.UUID) (out *payment.Payment, err error) {
	r.with(func(c *reads) { out, err = c.PaymentForUpdate(ctx, id) })
	return
}

func (r *lockedReads) LivePaymentForBooking(ctx context.Context, bookingID uuid.UUID) (out *payment.Payment, err error) {
	r.with(func(c *reads) { out, err = c.LivePaymentForBooking(ctx, bookingID) })
	return
}

func (r *lockedReads) IdempotencyByKey(ctx context.Context, key, endpoint string) (out *shared.IdempotencyRecord, err error) {
	r.with(func(c *reads) { out, err = c.IdempotencyByKey(ctx, key, endpoint) })
	return
}

func (r *lockedReads) UserByID(ctx context.Context, id uuid.UUID) (out *user.User, err error) {
	r.with(func(c *reads) { out, err = c.UserByID(ctx, id) })
	return
}

func notFound(what string) error {
	return infra.WrapRepoErr(what+" not found", nil, infra.KindNotFound)
}

func cloneUser(u *user.User) *user.User {
	return user.ReconstructUser(u.ID(), u.Email().Value(), u.FullName().Value(), u.Role(), u.CreatedAt(), u.UpdatedAt())
}

func cloneService(s *service.Service) *service.Service {
	return service.ReconstructService(s.ID(), s.OrganiserID(), s.Name(), s.Description(), s.DurationMinutes(),
		s.PriceMinor(), s.IsPublished(), s.CreatedAt(), s.UpdatedAt())
}

func cloneAppointment(a *appointment.Appointment) *appointment.Appointment {
	c := a.Customer()
	return appointment.ReconstructAppointment(a.ID(), a.ServiceID(), a.OrganiserID(),
		c.Name(), c.Email(), c.UserID(), a.Start(), a.End(), a.Status(), a.CancelReason(),
		a.CreatedAt(), a.UpdatedAt())
}

func clonePayment(p *payment.Payment) *payment.Payment {
	return payment.ReconstructPayment(p.ID(), p.BookingID(), p.Quote(), p.Provider(), p.ProviderRef(),
		p.Status(), p.FailureReason(), p.PaidAt(), p.CreatedAt(), p.UpdatedAt())
}

func sameInstant(a, b time.Time) bool { return a.Equal(b) }
