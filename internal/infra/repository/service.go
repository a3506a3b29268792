package repository

import (
	"context"
	"time"

	"appointment-booking/internal/domain/service"
	"appointment-booking/internal/infra"
	"appointment-booking/internal/infra/repository/converter"
	"appointment-booking/internal/infra/sqlstore"
	"appointment-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ServiceWriteQueries interface {
	CreateService(ctx context.Context, db sqlstore.DBTX, arg sqlstore.CreateServiceParams) error
	UpdateService(ctx context.Context, db sqlstore.DBTX, arg sqlstore.UpdateServiceParams) (int64, error)
	DeleteService(ctx context.Context, db sqlstore.DBTX, id uuid.UUID) (int64, error)
	CountAppointmentsByService(ctx context.Context, db sqlstore.DBTX, serviceID uuid.UUID) (int64, error)
	UnlinkServicesByOrganiser(ctx context.Context, db sqlstore.DBTX, arg sqlstore.UnlinkServicesByOrganiserParams) (int64, error)
}

type ServiceRepository struct {
	queries ServiceWriteQueries
}

func NewServiceRepository(queries ServiceWriteQueries) *ServiceRepository {
	return &ServiceRepository{queries: queries}
}

func (r *ServiceRepository) Create(ctx context.Context, tx sqlstore.DBTX, s *service.Service) error {
	if err := r.queries.CreateService(ctx, tx, converter.ServiceToCreateParams(s)); err != nil {
		return infra.WrapRepoErr("failed to create service", err)
	}
	return nil
}

func (r *ServiceRepository) Update(ctx context.Context, tx sqlstore.DBTX, s *service.Service) error {
	n, err := r.queries.UpdateService(ctx, tx, converter.ServiceToUpdateParams(s))
	if err != nil {
		return infra.WrapRepoErr("failed to update service", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("service not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ServiceRepository) Delete(ctx context.Context, tx sqlstore.DBTX, id uuid.UUID) error {
	n, err := r.queries.DeleteService(ctx, tx, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete service", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("service not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ServiceRepository) CountAppointments(ctx context.Context, tx sqlstore.DBTX, id uuid.UUID) (int64, error) {
	n, err := r.queries.CountAppointmentsByService(ctx, tx, id)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count service appointments", err)
	}
	return n, nil
}

func (r *ServiceRepository) UnlinkOrganiser(ctx context.Context, tx sqlstore.DBTX, organiserID uuid.UUID, now time.Time) (int64, error) {
	n, err := r.queries.UnlinkServicesByOrganiser(ctx, tx, sqlstore.UnlinkServicesByOrganiserParams{
		OrganiserID: organiserID,
		UpdatedAt:   pgconv.TimeToPgtype(now),
	})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to unlink organiser services", err)
	}
	return n, nil
}
