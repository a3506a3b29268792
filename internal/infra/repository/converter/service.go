package converter

import (
	"appointment-booking/internal/domain/service"
	"appointment-booking/internal/infra/sqlstore"
	"appointment-booking/internal/pkg/pgconv"
)

func ServiceToCreateParams(s *service.Service) sqlstore.CreateServiceParams {
	return sqlstore.CreateServiceParams{
		ID:              s.ID(),
		OrganiserID:     pgconv.UUIDPtrToPgtype(s.OrganiserID()),
		Name:            s.Name(),
		Description:     s.Description(),
		DurationMinutes: int32(s.DurationMinutes()),
		PriceMinor:      pgconv.Int8PtrToPgtype(s.PriceMinor()),
		IsPublished:     s.IsPublished(),
		CreatedAt:       pgconv.TimeToPgtype(s.CreatedAt()),
	}
}

func ServiceToUpdateParams(s *service.Service) sqlstore.UpdateServiceParams {
	return sqlstore.UpdateServiceParams{
		ID:              s.ID(),
		Name:            s.Name(),
		Description:     s.Description(),
		DurationMinutes: int32(s.DurationMinutes()),
		PriceMinor:      pgconv.Int8PtrToPgtype(s.PriceMinor()),
		IsPublished:     s.IsPublished(),
		UpdatedAt:       pgconv.TimeToPgtype(s.UpdatedAt()),
	}
}

func ServiceFromInfra(row sqlstore.Services) *service.Service {
	return service.ReconstructService(
		row.ID,
		pgconv.UUIDPtrFromPgtype(row.OrganiserID),
		row.Name,
		row.Description,
		int(row.DurationMinutes),
		pgconv.Int8PtrFromPgtype(row.PriceMinor),
		row.IsPublished,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
}
