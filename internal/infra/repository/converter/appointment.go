package converter

import (
	"appointment-booking/internal/domain/appointment"
	"appointment-booking/internal/infra/sqlstore"
	"appointment-booking/internal/pkg/pgconv"
)

func AppointmentToInfra(a *appointment.Appointment) sqlstore.CreateAppointmentParams {
	c := a.Customer()
	return sqlstore.CreateAppointmentParams{
		ID:             a.ID(),
		ServiceID:      a.ServiceID(),
		OrganiserID:    a.OrganiserID(),
		CustomerName:   c.Name(),
		CustomerEmail:  c.Email(),
		CustomerUserID: pgconv.UUIDPtrToPgtype(c.UserID()),
		StartTime:      pgconv.TimeToPgtype(a.Start()),
		EndTime:        pgconv.TimeToPgtype(a.End()),
		Status:         a.Status().String(),
		CreatedAt:      pgconv.TimeToPgtype(a.CreatedAt()),
	}
}

func AppointmentStatusToInfra(a *appointment.Appointment) sqlstore.UpdateAppointmentStatusParams {
	return sqlstore.UpdateAppointmentStatusParams{
		ID:           a.ID(),
		Status:       a.Status().String(),
		CancelReason: pgconv.StringPtrToPgtype(a.CancelReason()),
		UpdatedAt:    pgconv.TimeToPgtype(a.UpdatedAt()),
	}
}

func AppointmentFromInfra(row sqlstore.Appointments) *appointment.Appointment {
	return appointment.ReconstructAppointment(
		row.ID,
		row.ServiceID,
		row.OrganiserID,
		row.CustomerName,
		row.CustomerEmail,
		pgconv.UUIDPtrFromPgtype(row.CustomerUserID),
		pgconv.TimeFromPgtype(row.StartTime),
		pgconv.TimeFromPgtype(row.EndTime),
		appointment.Status(row.Status),
		pgconv.StringPtrFromPgtype(row.CancelReason),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
}
