package request

import (
	"appointment-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type RegisterUserRequest struct {
	ID       *uuid.UUID `json:"id"`
	Email    string     `json:"email" binding:"required,max=254"`
	FullName string     `json:"full_name" binding:"required,max=200"`
	Role     string     `json:"role" binding:"required,oneof=customer organiser admin"`
}

func (r *RegisterUserRequest) ToInput() commands.RegisterUserInput {
	return commands.RegisterUserInput{
		ID:       r.ID,
		Email:    r.Email,
		FullName: r.FullName,
		Role:     r.Role,
	}
}
