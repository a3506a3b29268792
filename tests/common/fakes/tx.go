//go:build unit || e2e

package fakes

import (
	"context"
	"slices"
	"strings"
	"time"

	"appointment-booking/internal/domain/appointment"
	"appointment-booking/internal/domain/payment"
	"appointment-booking/internal/domain/schedule"
	"appointment-booking/internal/domain/service"
	"appointment-booking/internal/domain/user"
	"appointment-booking/internal/infra"
	"appointment-booking/internal/infra/sqlstore"
	"appointment-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// fakeTx and its repositories operate on state owned by an open Within call.
type fakeTx struct {
	st *state
}

func (t *fakeTx) Schedules() shared.ScheduleRepository       { return (*scheduleRepo)(t) }
func (t *fakeTx) Services() shared.ServiceRepository         { return (*serviceRepo)(t) }
func (t *fakeTx) Appointments() shared.AppointmentRepository { return (*appointmentRepo)(t) }
func (t *fakeTx) Payments() shared.PaymentRepository         { return (*paymentRepo)(t) }
func (t *fakeTx) Idempotency() shared.IdempotencyRepository  { return (*idempotencyRepo)(t) }
func (t *fakeTx) Notifications() shared.NotificationRepository {
	return (*notificationRepo)(t)
}
func (t *fakeTx) Users() shared.UserRepository { return (*userRepo)(t) }
func (t *fakeTx) Reads() shared.CommandReads   { return &reads{st: t.st} }
func (t *fakeTx) DB() sqlstore.DBTX            { return nil }

type reads struct {
	st *state
}

func (r *reads) ServiceByID(_ context.Context, id uuid.UUID) (*service.Service, error) {
	s, ok := r.st.services[id]
	if !ok {
		return nil, notFound("service")
	}
	return cloneService(s), nil
}

func (r *reads) ServiceForUpdate(ctx context.Context, id uuid.UUID) (*service.Service, error) {
	return r.ServiceByID(ctx, id)
}

func (r *reads) WeekFor(_ context.Context, organiserID uuid.UUID) (*schedule.Week, error) {
	return schedule.NewWeek(organiserID, r.st.weeks[organiserID])
}

func (r *reads) HasOverride(_ context.Context, organiserID uuid.UUID, date schedule.Date) (bool, error) {
	_, ok := r.st.overrides[overrideKey{organiserID, date.String()}]
	return ok, nil
}

func (r *reads) AppointmentForUpdate(_ context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	a, ok := r.st.appointments[id]
	if !ok {
		return nil, notFound("appointment")
	}
	return cloneAppointment(a), nil
}

func (r *reads) PaymentForUpdate(_ context.Context, id uuid.UUID) (*payment.Payment, error) {
	p, ok := r.st.payments[id]
	if !ok {
		return nil, notFound("payment")
	}
	return clonePayment(p), nil
}

func (r *reads) LivePaymentForBooking(_ context.Context, bookingID uuid.UUID) (*payment.Payment, error) {
	for _, p := range r.st.payments {
		if p.BookingID() == bookingID && p.Status().IsLive() {
			return clonePayment(p), nil
		}
	}
	return nil, notFound("payment")
}

func (r *reads) IdempotencyByKey(_ context.Context, key, endpoint string) (*shared.IdempotencyRecord, error) {
	rec, ok := r.st.idempotency[idemKey{key, endpoint}]
	if !ok {
		return nil, notFound("idempotency key")
	}
	return &rec, nil
}

func (r *reads) UserByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.st.users[id]
	if !ok {
		return nil, notFound("user")
	}
	return cloneUser(u), nil
}

type scheduleRepo fakeTx

func (r *scheduleRepo) ReplaceWeek(_ context.Context, _ sqlstore.DBTX, week *schedule.Week, _ time.Time) error {
	if _, ok := r.st.users[week.OrganiserID()]; !ok {
		return infra.WrapRepoErr("organiser missing", nil, infra.KindForeignKeyViolated)
	}
	r.st.weeks[week.OrganiserID()] = week.Entries()
	return nil
}

func (r *scheduleRepo) UpsertDay(_ context.Context, _ sqlstore.DBTX, organiserID uuid.UUID, entry schedule.Entry, _ time.Time) error {
	if _, ok := r.st.users[organiserID]; !ok {
		return infra.WrapRepoErr("organiser missing", nil, infra.KindForeignKeyViolated)
	}
	days := slices.DeleteFunc(r.st.weeks[organiserID], func(e schedule.Entry) bool { return e.Day() == entry.Day() })
	r.st.weeks[organiserID] = append(days, entry)
	return nil
}

func (r *scheduleRepo) DeleteDay(_ context.Context, _ sqlstore.DBTX, organiserID uuid.UUID, day schedule.Weekday) error {
	days := r.st.weeks[organiserID]
	kept := slices.DeleteFunc(slices.Clone(days), func(e schedule.Entry) bool { return e.Day() == day })
	if len(kept) == len(days) {
		return notFound("weekly schedule day")
	}
	r.st.weeks[organiserID] = kept
	return nil
}

func (r *scheduleRepo) AddOverride(_ context.Context, _ sqlstore.DBTX, o *schedule.Override) error {
	if _, ok := r.st.users[o.OrganiserID()]; !ok {
		return infra.WrapRepoErr("organiser missing", nil, infra.KindForeignKeyViolated)
	}
	k := overrideKey{o.OrganiserID(), o.Date().String()}
	if _, dup := r.st.overrides[k]; dup {
		return infra.WrapRepoErr("override exists", nil, infra.KindDuplicateKey)
	}
	r.st.overrides[k] = o
	return nil
}

func (r *scheduleRepo) RemoveOverride(_ context.Context, _ sqlstore.DBTX, organiserID uuid.UUID, date schedule.Date) error {
	k := overrideKey{organiserID, date.String()}
	if _, ok := r.st.overrides[k]; !ok {
		return notFound("schedule override")
	}
	delete(r.st.overrides, k)
	return nil
}

func (r *scheduleRepo) DeleteAllForOrganiser(_ context.Context, _ sqlstore.DBTX, organiserID uuid.UUID) error {
	delete(r.st.weeks, organiserID)
	for k := range r.st.overrides {
		if k.organiserID == organiserID {
			delete(r.st.overrides, k)
		}
	}
	return nil
}

type serviceRepo fakeTx

func (r *serviceRepo) Create(_ context.Context, _ sqlstore.DBTX, s *service.Service) error {
	if org := s.OrganiserID(); org != nil {
		if _, ok := r.st.users[*org]; !ok {
			return infra.WrapRepoErr("organiser missing", nil, infra.KindForeignKeyViolated)
		}
	}
	r.st.services[s.ID()] = cloneService(s)
	return nil
}

func (r *serviceRepo) Update(_ context.Context, _ sqlstore.DBTX, s *service.Service) error {
	if _, ok := r.st.services[s.ID()]; !ok {
		return notFound("service")
	}
	r.st.services[s.ID()] = cloneService(s)
	return nil
}

func (r *serviceRepo) Delete(_ context.Context, _ sqlstore.DBTX, id uuid.UUID) error {
	if _, ok := r.st.services[id]; !ok {
		return notFound("service")
	}
	delete(r.st.services, id)
	return nil
}

func (r *serviceRepo) CountAppointments(_ context.Context, _ sqlstore.DBTX, id uuid.UUID) (int64, error) {
	var n int64
	for _, a := range r.st.appointments {
		if a.ServiceID() == id {
			n++
		}
	}
	return n, nil
}

func (r *serviceRepo) UnlinkOrganiser(_ context.Context, _ sqlstore.DBTX, organiserID uuid.UUID, now time.Time) (int64, error) {
	var n int64
	for id, s := range r.st.services {
		if s.OrganiserID() != nil && *s.OrganiserID() == organiserID {
			r.st.services[id] = service.ReconstructService(s.ID(), nil, s.Name(), s.Description(),
				s.DurationMinutes(), s.PriceMinor(), false, s.CreatedAt(), now)
			n++
		}
	}
	return n, nil
}

type appointmentRepo fakeTx

// LockSlot is a no-op; Store already runs one transaction at a time.
func (r *appointmentRepo) LockSlot(context.Context, sqlstore.DBTX, uuid.UUID, time.Time) error {
	return nil
}

func (r *appointmentRepo) CountActiveAt(_ context.Context, _ sqlstore.DBTX, organiserID uuid.UUID, start time.Time) (int, error) {
	n := 0
	for _, a := range r.st.appointments {
		if a.OrganiserID() == organiserID && sameInstant(a.Start(), start) && a.Status().IsActive() {
			n++
		}
	}
	return n, nil
}

func (r *appointmentRepo) Create(_ context.Context, _ sqlstore.DBTX, a *appointment.Appointment) error {
	if _, ok := r.st.services[a.ServiceID()]; !ok {
		return infra.WrapRepoErr("service missing", nil, infra.KindForeignKeyViolated)
	}
	r.st.appointments[a.ID()] = cloneAppointment(a)
	return nil
}

func (r *appointmentRepo) UpdateStatus(_ context.Context, _ sqlstore.DBTX, a *appointment.Appointment) error {
	if _, ok := r.st.appointments[a.ID()]; !ok {
		return notFound("appointment")
	}
	r.st.appointments[a.ID()] = cloneAppointment(a)
	return nil
}

func (r *appointmentRepo) ClaimExpiredPending(_ context.Context, _ sqlstore.DBTX, createdBefore time.Time, limit int) ([]*appointment.Appointment, error) {
	var out []*appointment.Appointment
	for _, a := range r.st.appointments {
		if a.Status() == appointment.StatusPending && a.CreatedAt().Before(createdBefore) {
			out = append(out, cloneAppointment(a))
		}
	}
	slices.SortFunc(out, func(a, b *appointment.Appointment) int { return a.CreatedAt().Compare(b.CreatedAt()) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *appointmentRepo) DeleteByCustomer(_ context.Context, _ sqlstore.DBTX, customerUserID uuid.UUID) (int64, error) {
	var n int64
	for id, a := range r.st.appointments {
		if a.IsCustomer(customerUserID) {
			delete(r.st.appointments, id)
			for pid, p := range r.st.payments {
				if p.BookingID() == id {
					delete(r.st.payments, pid)
				}
			}
			for k, rec := range r.st.idempotency {
				if rec.AppointmentID == id {
					delete(r.st.idempotency, k)
				}
			}
			n++
		}
	}
	return n, nil
}

type paymentRepo fakeTx

func (r *paymentRepo) Create(_ context.Context, _ sqlstore.DBTX, p *payment.Payment) error {
	for _, existing := range r.st.payments {
		if existing.BookingID() == p.BookingID() && existing.Status().IsLive() {
			return infra.WrapRepoErr("live payment exists", nil, infra.KindDuplicateKey)
		}
	}
	r.st.payments[p.ID()] = clonePayment(p)
	return nil
}

func (r *paymentRepo) UpdateStatus(_ context.Context, _ sqlstore.DBTX, p *payment.Payment) error {
	if _, ok := r.st.payments[p.ID()]; !ok {
		return notFound("payment")
	}
	r.st.payments[p.ID()] = clonePayment(p)
	return nil
}

func (r *paymentRepo) FailInitiatedForBooking(_ context.Context, _ sqlstore.DBTX, bookingID uuid.UUID, reason string, now time.Time) (int64, error) {
	var n int64
	for id, p := range r.st.payments {
		if p.BookingID() != bookingID || p.Status() != payment.StatusInitiated {
			continue
		}
		c := clonePayment(p)
		if _, err := c.MarkFailed(reason, now); err != nil {
			return n, err
		}
		r.st.payments[id] = c
		n++
	}
	return n, nil
}

type idempotencyRepo fakeTx

func (r *idempotencyRepo) Insert(_ context.Context, _ sqlstore.DBTX, rec shared.IdempotencyRecord, _ time.Time) (bool, error) {
	k := idemKey{rec.Key, rec.Endpoint}
	if _, taken := r.st.idempotency[k]; taken {
		return false, nil
	}
	r.st.idempotency[k] = rec
	return true, nil
}

func (r *idempotencyRepo) DeleteExpired(_ context.Context, _ sqlstore.DBTX, now time.Time) (int64, error) {
	var n int64
	for k, rec := range r.st.idempotency {
		if !rec.ExpiresAt.After(now) {
			delete(r.st.idempotency, k)
			n++
		}
	}
	return n, nil
}

type notificationRepo fakeTx

func (r *notificationRepo) Enqueue(_ context.Context, _ sqlstore.DBTX, job shared.NotificationJob, now time.Time) error {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	if job.RunAt.IsZero() {
		job.RunAt = now
	}
	if job.Status == "" {
		job.Status = shared.JobStatusQueued
	}
	r.st.jobs = append(r.st.jobs, job)
	return nil
}

func (r *notificationRepo) ClaimDue(_ context.Context, _ sqlstore.DBTX, now time.Time, limit int) ([]shared.NotificationJob, error) {
	var out []shared.NotificationJob
	for _, j := range r.st.jobs {
		if j.Status == shared.JobStatusQueued && !j.RunAt.After(now) {
			out = append(out, j)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *notificationRepo) SaveResult(_ context.Context, _ sqlstore.DBTX, job shared.NotificationJob, _ time.Time) error {
	for i, j := range r.st.jobs {
		if j.ID == job.ID {
			r.st.jobs[i] = job
			return nil
		}
	}
	return notFound("notification job")
}

type userRepo fakeTx

func (r *userRepo) Create(_ context.Context, _ sqlstore.DBTX, u *user.User) error {
	if _, dup := r.st.users[u.ID()]; dup {
		return infra.WrapRepoErr("user exists", nil, infra.KindDuplicateKey)
	}
	for _, existing := range r.st.users {
		if strings.EqualFold(existing.Email().Value(), u.Email().Value()) {
			return infra.WrapRepoErr("email taken", nil, infra.KindDuplicateKey)
		}
	}
	r.st.users[u.ID()] = cloneUser(u)
	return nil
}

func (r *userRepo) Delete(_ context.Context, _ sqlstore.DBTX, id uuid.UUID) error {
	if _, ok := r.st.users[id]; !ok {
		return notFound("user")
	}
	delete(r.st.users, id)
	for aid, a := range r.st.appointments {
		if a.IsCustomer(id) {
			c := a.Customer()
			r.st.appointments[aid] = appointment.ReconstructAppointment(a.ID(), a.ServiceID(), a.OrganiserID(),
				c.Name(), c.Email(), nil, a.Start(), a.End(), a.Status(), a.CancelReason(), a.CreatedAt(), a.UpdatedAt())
		}
	}
	return nil
}

func (r *userRepo) CountDependents(_ context.Context, _ sqlstore.DBTX, id uuid.UUID) (user.Dependents, error) {
	var d user.Dependents
	for _, a := range r.st.appointments {
		if a.IsCustomer(id) {
			d.CustomerAppointments++
		}
		if a.OrganiserID() == id {
			d.OrganiserAppointments++
		}
	}
	for _, s := range r.st.services {
		if s.OrganiserID() != nil && *s.OrganiserID() == id {
			d.Services++
		}
	}
	d.ScheduleDays = int64(len(r.st.weeks[id]))
	return d, nil
}
