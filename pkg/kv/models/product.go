package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the canonical catalog document stored in the Products collection.
// Field names mirror the stored JSON attributes exactly; inventory status is
// derived on read and intentionally absent here.
type Product struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
	CategoryID *uuid.UUID      `json:"categoryId"`
	ImageURL   *string         `json:"imageUrl"`
	IsDeleted  bool            `json:"isDeleted"`
	CreatedAt  time.Time       `json:"createdAt"`
}
