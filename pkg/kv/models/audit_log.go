package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/stockroomhq/stockroom-backend/pkg/enums"
)

// AuditLogEntry records one product mutation. Entries are append-only: they
// are never updated or deleted once written.
type AuditLogEntry struct {
	LogID     uuid.UUID       `json:"logId"`
	ProductID uuid.UUID       `json:"productId"`
	Action    enums.LogAction `json:"action"`
	UserID    uuid.UUID       `json:"userId"`
	Time      time.Time       `json:"time"`
}
