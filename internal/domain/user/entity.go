package user

import (
	"time"

	"github.com/google/uuid"
)

// User is the local projection of an identity-provider account.
type User struct {
	id        uuid.UUID
	email     Email
	fullName  FullName
	role      Role
	createdAt time.Time
	updatedAt time.Time
}

func NewUser(id uuid.UUID, email Email, fullName FullName, role Role, now time.Time) *User {
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &User{
		id:        id,
		email:     email,
		fullName:  fullName,
		role:      role,
		createdAt: now,
		updatedAt: now,
	}
}

func ReconstructUser(id uuid.UUID, email, fullName string, role Role, createdAt, updatedAt time.Time) *User {
	return &User{
		id:        id,
		email:     Email{value: email},
		fullName:  FullName{value: fullName},
		role:      role,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Email() Email         { return u.email }
func (u *User) FullName() FullName   { return u.fullName }
func (u *User) Role() Role           { return u.role }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// Dependents counts rows that reference a user and block a plain delete.
type Dependents struct {
	CustomerAppointments  int64
	OrganiserAppointments int64
	Services              int64
	ScheduleDays          int64
}

func (d Dependents) Any() bool {
	return d.CustomerAppointments > 0 || d.OrganiserAppointments > 0 || d.Services > 0 || d.ScheduleDays > 0
}
