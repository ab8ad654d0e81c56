package response

import (
	"time"

	"github.com/marcos-nsantos/user-management-backend/internal/domain/entity"
)

// UserResponse is the public profile of a user. It never carries the password hash.
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UsersListResponse struct {
	Users []UserResponse `json:"users"`
}

func UserFromEntity(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func UsersFromEntities(users []entity.User) UsersListResponse {
	resp := UsersListResponse{Users: make([]UserResponse, len(users))}
	for i := range users {
		resp.Users[i] = UserFromEntity(&users[i])
	}
	return resp
}
