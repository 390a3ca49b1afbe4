package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/fremed/fremed-backend/pkg/db/models"
	"github.com/fremed/fremed-backend/pkg/enums"
)

// UserDTO is the API-facing account shape. The password hash never leaves the
// service layer.
type UserDTO struct {
	ID          uuid.UUID      `json:"id"`
	CitizenID   string         `json:"citizen_id"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Role        enums.UserRole `json:"role"`
	Department  string         `json:"department,omitempty"`
	Position    string         `json:"position,omitempty"`
	IsActive    bool           `json:"is_active"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func toUserDTO(user *models.User) *UserDTO {
	if user == nil {
		return nil
	}
	return &UserDTO{
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
