package converter

import (
	"appointment-booking/internal/domain/user"
	"appointment-booking/internal/infra/sqlstore"
	"appointment-booking/internal/pkg/pgconv"
)

func UserToInfra(u *user.User) sqlstore.CreateUserParams {
	return sqlstore.CreateUserParams{
		ID:        u.ID(),
		Email:     u.Email().Value(),
		FullName:  u.FullName().Value(),
		Role:      u.Role().String(),
		CreatedAt: pgconv.TimeToPgtype(u.CreatedAt()),
	}
}

func UserFromInfra(row sqlstore.Users) *user.User {
	return user.ReconstructUser(
		row.ID,
		row.Email,
		row.FullName,
		user.Role(row.Role),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
}
