package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/stockroomhq/stockroom-backend/pkg/enums"
)

// User represents the canonical identity document in the Users collection.
type User struct {
	UserID       uuid.UUID  `json:"userId"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"passwordHash"`
	Role         enums.Role `json:"role"`
	CreatedAt    time.Time  `json:"createdAt"`
}
