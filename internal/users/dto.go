package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/trovekart/storefront-backend/pkg/db/models"
	"github.com/trovekart/storefront-backend/pkg/enums"
)

// View is the API representation of a user.
type View struct {
	ID          uuid.UUID      `json:"id"`
	Phone       *string        `json:"phone,omitempty"`
	Email       *string        `json:"email,omitempty"`
	Name        *string        `json:"name,omitempty"`
	Role        enums.UserRole `json:"role"`
	IsActive    bool           `json:"is_active"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// FromModel converts a user row to its API view.
func FromModel(user *models.User) View {
	return View{
		ID:          user.ID,
		Phone:       user.Phone,
		Email:       user.Email,
		Name:        user.Name,
		Role:        user.Role,
		IsActive:    user.IsActive,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}

// FromModels converts a slice of user rows.
func FromModels(list []models.User) []View {
	views := make([]View, 0, len(list))
	for i := range list {
		views = append(views, FromModel(&list[i]))
	}
	return views
}
