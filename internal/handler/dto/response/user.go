package response

import (
	"time"

	"appointment-booking/internal/usecase/queries"
)

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func FromUserView(v *queries.UserView) *UserResponse {
	return &UserResponse{
		ID:        v.ID.String(),
		Email:     v.Email,
		FullName:  v.FullName,
		Role:      v.Role,
		CreatedAt: v.CreatedAt,
	}
}

func FromUserList(items []*queries.UserView) []*UserResponse {
	res := make([]*UserResponse, len(items))
	for i, it := range items {
		res[i] = FromUserView(it)
	}
	return res
}
