//go:build unit || e2e

package builder

import (
	"time"

	"appointment-booking/internal/domain/user"
	"appointment-booking/internal/infra/sqlstore"
	"appointment-booking/internal/usecase/queries"
	"appointment-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type UserBuilder struct {
	ID       uuid.UUID
	Email    string
	FullName string
	Role     string
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:       uuid.New(),
		Email:    "organiser@example.com",
		FullName: "Olivia Organiser",
		Role:     string(user.RoleOrganiser),
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

// Build methods
func (u *UserBuilder) BuildDomain() (*user.User, error) {
	email, err := user.NewEmail(u.Email)
	if err != nil {
		return nil, err
	}
	name, err := user.NewFullName(u.FullName)
	if err != nil {
		return nil, err
	}
	role, err := user.NewRole(u.Role)
	if err != nil {
		return nil, err
	}
	return user.NewUser(u.ID, email, name, role, time.Now()), nil
}

func (u *UserBuilder) BuildInfra() sqlstore.Users {
	now := time.Now()
	return sqlstore.Users{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		CreatedAt: pgtype.Timestamptz{Time: now, Valid: true},
		UpdatedAt: pgtype.Timestamptz{Time: now, Valid: true},
	}
}

func (u *UserBuilder) BuildReadModel() *queries.UserView {
	return &queries.UserView{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		CreatedAt: time.Now(),
	}
}

func (u *UserBuilder) BuildActor() *shared.Actor {
	return &shared.Actor{UserID: u.ID, Role: user.Role(u.Role)}
}

// Fluent builder methods
func (u *UserBuilder) WithID(id uuid.UUID) *UserBuilder {
	u.ID = id
	return u
}

func (u *UserBuilder) WithEmail(email string) *UserBuilder {
	u.Email = email
	return u
}

func (u *UserBuilder) WithFullName(name string) *UserBuilder {
	u.FullName = name
	return u
}

func (u *UserBuilder) WithRole(role string) *UserBuilder {
	u.Role = role
	return u
}

func (u *UserBuilder) AsCustomer() *UserBuilder {
	u.Role = string(user.RoleCustomer)
	u.Email = "customer@example.com"
	u.FullName = "Chris Customer"
	return u
}

func (u *UserBuilder) AsAdmin() *UserBuilder {
	u.Role = string(user.RoleAdmin)
	u.Email = "admin@example.com"
	u.FullName = "Ada Admin"
	return u
}
