package readstore

import (
	"context"

	"appointment-booking/internal/infra"
	"appointment-booking/internal/infra/sqlstore"
	"appointment-booking/internal/pkg/pgconv"
	"appointment-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type ServiceReadQueries interface {
	GetServiceByID(ctx context.Context, db sqlstore.DBTX, id uuid.UUID) (sqlstore.Services, error)
	ListServices(ctx context.Context, db sqlstore.DBTX, arg sqlstore.ListServicesParams) ([]sqlstore.Services, error)
}

type ServiceReadStore struct {
	queries ServiceReadQueries
	db      sqlstore.DBTX
}

func NewServiceReadStore(queries ServiceReadQueries, db sqlstore.DBTX) *ServiceReadStore {
	return &ServiceReadStore{
		queries: queries,
		db:      db,
	}
}

func (s *ServiceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ServiceView, error) {
	row, err := s.queries.GetServiceByID(ctx, s.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("service not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find service by ID", err)
	}
	return toServiceView(row), nil
}

func (s *ServiceReadStore) List(ctx context.Context, organiserID *uuid.UUID, includeUnpublished bool) ([]*queries.ServiceView, error) {
	rows, err := s.queries.ListServices(ctx, s.db, sqlstore.ListServicesParams{
		OrganiserID:        pgconv.UUIDPtrToPgtype(organiserID),
		IncludeUnpublished: includeUnpublished,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list services", err)
	}

	result := make([]*queries.ServiceView, len(rows))
	for i, row := range rows {
		result[i] = toServiceView(row)
	}
	return result, nil
}

func toServiceView(row sqlstore.Services) *queries.ServiceView {
	return &queries.ServiceView{
		ID:              row.ID,
		OrganiserID:     pgconv.UUIDPtrFromPgtype(row.OrganiserID),
		Name:            row.Name,
		Description:     row.Description,
		DurationMinutes: int(row.DurationMinutes),
		PriceMinor:      pgconv.Int8PtrFromPgtype(row.PriceMinor),
		IsPublished:     row.IsPublished,
		CreatedAt:       pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:       pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}
