package auth

import (
	"time"

	"github.com/fremed/fremed-backend/internal/users"
	"github.com/fremed/fremed-backend/pkg/db/models"
)

// sessionRecord is the JSON blob persisted in Redis for the lifetime of a
// login. It mirrors what the dashboard shows about the signed-in user.
type sessionRecord struct {
	UserID    string    `json:"user_id"`
	CitizenID string    `json:"citizen_id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	LoginAt   time.Time `json:"login_at"`
}

func toLoginUser(user *models.User) *users.UserDTO {
	return &users.UserDTO{
		ID:          user.ID,
		CitizenID:   user.CitizenID,
		Name:        user.Name,
		Email:       user.Email,
		Role:        user.Role,
		Department:  user.Department,
		Position:    user.Position,
		IsActive:    user.IsActive,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}
