package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/stockroomhq/stockroom-backend/pkg/enums"
	"github.com/stockroomhq/stockroom-backend/pkg/kv/models"
)

// UserDTO is the user payload returned to clients. The password hash
// never leaves the domain layer.
type UserDTO struct {
	UserID    uuid.UUID  `json:"userId"`
	Username  string     `json:"username"`
	Role      enums.Role `json:"role"`
	CreatedAt time.Time  `json:"createdAt"`
}

// NewUserDTO builds a DTO from the persisted record.
func NewUserDTO(user models.User) UserDTO {
	return UserDTO{
		UserID:    user.UserID,
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
