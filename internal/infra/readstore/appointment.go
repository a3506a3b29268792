package readstore

import (
	"context"
	"time"

	"appointment-booking/internal/domain/slot"
	"appointment-booking/internal/infra"
	"appointment-booking/internal/infra/sqlstore"
	"appointment-booking/internal/pkg/pgconv"
	"appointment-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type AppointmentReadQueries interface {
	GetAppointmentDetail(ctx context.Context, db sqlstore.DBTX, id uuid.UUID) (sqlstore.AppointmentDetailRow, error)
	ListAppointments(ctx context.Context, db sqlstore.DBTX, arg sqlstore.ListAppointmentsParams) ([]sqlstore.AppointmentDetailRow, error)
	CountAppointmentsByStatus(ctx context.Context, db sqlstore.DBTX, arg sqlstore.CountAppointmentsByStatusParams) ([]sqlstore.CountAppointmentsByStatusRow, error)
	ListAppointmentsByCustomer(ctx context.Context, db sqlstore.DBTX, arg sqlstore.ListAppointmentsByCustomerParams) ([]sqlstore.AppointmentDetailRow, error)
	CountActiveAppointmentsInRange(ctx context.Context, db sqlstore.DBTX, arg sqlstore.CountActiveAppointmentsInRangeParams) ([]sqlstore.CountActiveAppointmentsInRangeRow, error)
}

type AppointmentReadStore struct {
	queries AppointmentReadQueries
	db      sqlstore.DBTX
}

func NewAppointmentReadStore(queries AppointmentReadQueries, db sqlstore.DBTX) *AppointmentReadStore {
	return &AppointmentReadStore{
		queries: queries,
		db:      db,
	}
}

func (s *AppointmentReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AppointmentView, error) {
	row, err := s.queries.GetAppointmentDetail(ctx, s.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("appointment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find appointment by ID", err)
	}
	return toAppointmentView(row), nil
}

func (s *AppointmentReadStore) List(ctx context.Context, filter queries.AppointmentFilter, after *queries.Keyset, limit int32) ([]*queries.AppointmentView, error) {
	params := sqlstore.ListAppointmentsParams{
		OrganiserID: pgconv.UUIDPtrToPgtype(filter.OrganiserID),
		Status:      pgconv.StringPtrToPgtype(filter.Status),
		ServiceID:   pgconv.UUIDPtrToPgtype(filter.ServiceID),
		FromTime:    pgconv.TimePtrToPgtype(filter.From),
		ToTime:      pgconv.TimePtrToPgtype(filter.To),
		Limit:       limit,
	}
	if after != nil {
		params.AfterStart = pgconv.TimeToPgtype(after.Start)
		params.AfterID = pgconv.UUIDToPgtype(after.ID)
	}

	rows, err := s.queries.ListAppointments(ctx, s.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list appointments", err)
	}
	return toAppointmentViews(rows), nil
}

func (s *AppointmentReadStore) CountByStatus(ctx context.Context, filter queries.AppointmentFilter) (map[string]int64, error) {
	rows, err := s.queries.CountAppointmentsByStatus(ctx, s.db, sqlstore.CountAppointmentsByStatusParams{
		OrganiserID: pgconv.UUIDPtrToPgtype(filter.OrganiserID),
		ServiceID:   pgconv.UUIDPtrToPgtype(filter.ServiceID),
		FromTime:    pgconv.TimePtrToPgtype(filter.From),
		ToTime:      pgconv.TimePtrToPgtype(filter.To),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to count appointments by status", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

func (s *AppointmentReadStore) ListByCustomer(ctx context.Context, customerUserID uuid.UUID, limit int32) ([]*queries.AppointmentView, error) {
	rows, err := s.queries.ListAppointmentsByCustomer(ctx, s.db, sqlstore.ListAppointmentsByCustomerParams{
		CustomerUserID: customerUserID,
		Limit:          limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list customer appointments", err)
	}
	return toAppointmentViews(rows), nil
}

// CountActiveInRange groups non-cancelled bookings by exact start time in [from, to).
func (s *AppointmentReadStore) CountActiveInRange(ctx context.Context, organiserID uuid.UUID, from, to time.Time) (slot.Counts, error) {
	rows, err := s.queries.CountActiveAppointmentsInRange(ctx, s.db, sqlstore.CountActiveAppointmentsInRangeParams{
		OrganiserID: organiserID,
		FromTime:    pgtype.Timestamptz{Time: from, Valid: true},
		ToTime:      pgtype.Timestamptz{Time: to, Valid: true},
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to count slot bookings", err)
	}

	counts := make(slot.Counts, len(rows))
	for _, row := range rows {
		counts[row.StartTime.Time.Unix()] = int(row.Booked)
	}
	return counts, nil
}

func toAppointmentViews(rows []sqlstore.AppointmentDetailRow) []*queries.AppointmentView {
	result := make([]*queries.AppointmentView, len(rows))
	for i, row := range rows {
		result[i] = toAppointmentView(row)
	}
	return result
}

func toAppointmentView(row sqlstore.AppointmentDetailRow) *queries.AppointmentView {
	return &queries.AppointmentView{
		ID:             row.ID,
		ServiceID:      row.ServiceID,
		ServiceName:    row.ServiceName,
		OrganiserID:    row.OrganiserID,
		CustomerName:   row.CustomerName,
		CustomerEmail:  row.CustomerEmail,
		CustomerUserID: pgconv.UUIDPtrFromPgtype(row.CustomerUserID),
		StartTime:      pgconv.TimeFromPgtype(row.StartTime),
		EndTime:        pgconv.TimeFromPgtype(row.EndTime),
		Status:         row.Status,
		CancelReason:   pgconv.StringPtrFromPgtype(row.CancelReason),
		CreatedAt:      pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:      pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}
