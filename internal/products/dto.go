package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockroomhq/stockroom-backend/pkg/enums"
	"github.com/stockroomhq/stockroom-backend/pkg/kv/models"
)

// ProductDTO is the product payload returned to clients. The inventory
// status is derived from the quantity, never stored.
type ProductDTO struct {
	ID              uuid.UUID             `json:"id"`
	Name            string                `json:"name"`
	Price           decimal.Decimal       `json:"price"`
	Quantity        int                   `json:"quantity"`
	CategoryID      *uuid.UUID            `json:"categoryId"`
	ImageURL        *string               `json:"imageUrl,omitempty"`
	IsDeleted       bool                  `json:"isDeleted"`
	CreatedAt       time.Time             `json:"createdAt"`
	InventoryStatus enums.InventoryStatus `json:"inventoryStatus"`
}

// NewProductDTO builds a DTO from the persisted record.
func NewProductDTO(product models.Product) ProductDTO {
	return ProductDTO{
		ID:              product.ID,
		Name:            product.Name,
		Price:           product.Price,
		Quantity:        product.Quantity,
		CategoryID:      product.CategoryID,
		ImageURL:        product.ImageURL,
		IsDeleted:       product.IsDeleted,
		CreatedAt:       product.CreatedAt,
		InventoryStatus: enums.InventoryStatusFor(product.Quantity),
	}
}

// ProductPage is one page of an offset-paginated product listing.
type ProductPage struct {
	Items       []ProductDTO `json:"items"`
	CurrentPage int          `json:"currentPage"`
	TotalPages  int          `json:"totalPages"`
	TotalItems  int          `json:"totalItems"`
	HasNext     bool         `json:"hasNext"`
	HasPrev     bool         `json:"hasPrev"`
}
