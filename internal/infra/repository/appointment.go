package repository

import (
	"context"
	"time"

	"appointment-booking/internal/domain/appointment"
	"appointment-booking/internal/infra"
	"appointment-booking/internal/infra/repository/converter"
	"appointment-booking/internal/infra/sqlstore"
	"appointment-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type AppointmentWriteQueries interface {
	AcquireSlotLock(ctx context.Context, db sqlstore.DBTX, arg sqlstore.AcquireSlotLockParams) error
	CountActiveAppointmentsAt(ctx context.Context, db sqlstore.DBTX, arg sqlstore.CountActiveAppointmentsAtParams) (int64, error)
	CreateAppointment(ctx context.Context, db sqlstore.DBTX, arg sqlstore.CreateAppointmentParams) error
	UpdateAppointmentStatus(ctx context.Context, db sqlstore.DBTX, arg sqlstore.UpdateAppointmentStatusParams) (int64, error)
	ListExpiredPendingAppointments(ctx context.Context, db sqlstore.DBTX, arg sqlstore.ListExpiredPendingAppointmentsParams) ([]sqlstore.Appointments, error)
	DeleteAppointmentsByCustomer(ctx context.Context, db sqlstore.DBTX, customerUserID uuid.UUID) (int64, error)
}

type AppointmentRepository struct {
	queries AppointmentWriteQueries
}

func NewAppointmentRepository(queries AppointmentWriteQueries) *AppointmentRepository {
	return &AppointmentRepository{queries: queries}
}

func (r *AppointmentRepository) LockSlot(ctx context.Context, tx sqlstore.DBTX, organiserID uuid.UUID, start time.Time) error {
	err := r.queries.AcquireSlotLock(ctx, tx, sqlstore.AcquireSlotLockParams{
		OrganiserID: organiserID,
		StartTime:   pgconv.TimeToPgtype(start),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to acquire slot lock", err)
	}
	return nil
}

func (r *AppointmentRepository) CountActiveAt(ctx context.Context, tx sqlstore.DBTX, organiserID uuid.UUID, start time.Time) (int, error) {
	n, err := r.queries.CountActiveAppointmentsAt(ctx, tx, sqlstore.CountActiveAppointmentsAtParams{
		OrganiserID: organiserID,
		StartTime:   pgconv.TimeToPgtype(start),
	})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count slot bookings", err)
	}
	return int(n), nil
}

func (r *AppointmentRepository) Create(ctx context.Context, tx sqlstore.DBTX, a *appointment.Appointment) error {
	if err := r.queries.CreateAppointment(ctx, tx, converter.AppointmentToInfra(a)); err != nil {
		return infra.WrapRepoErr("failed to create appointment", err)
	}
	return nil
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, tx sqlstore.DBTX, a *appointment.Appointment) error {
	n, err := r.queries.UpdateAppointmentStatus(ctx, tx, converter.AppointmentStatusToInfra(a))
	if err != nil {
		return infra.WrapRepoErr("failed to update appointment status", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *AppointmentRepository) ClaimExpiredPending(ctx context.Context, tx sqlstore.DBTX, createdBefore time.Time, limit int) ([]*appointment.Appointment, error) {
	rows, err := r.queries.ListExpiredPendingAppointments(ctx, tx, sqlstore.ListExpiredPendingAppointmentsParams{
		CreatedBefore: pgconv.TimeToPgtype(createdBefore),
		Limit:         int32(limit),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim expired pending appointments", err)
	}
	result := make([]*appointment.Appointment, len(rows))
	for i, row := range rows {
		result[i] = converter.AppointmentFromInfra(row)
	}
	return result, nil
}

func (r *AppointmentRepository) DeleteByCustomer(ctx context.Context, tx sqlstore.DBTX, customerUserID uuid.UUID) (int64, error) {
	n, err := r.queries.DeleteAppointmentsByCustomer(ctx, tx, customerUserID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete customer appointments", err)
	}
	return n, nil
}
