package category

import (
	"github.com/google/uuid"

	"github.com/stockroomhq/stockroom-backend/pkg/kv/models"
)

// CategoryDTO is the category payload returned to clients.
type CategoryDTO struct {
	CategoryID  uuid.UUID `json:"categoryId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

// NewCategoryDTO builds a DTO from the persisted record.
func NewCategoryDTO(category models.Category) CategoryDTO {
	return CategoryDTO{
		CategoryID:  category.CategoryID,
		Name:        category.Name,
		Description: category.Description,
	}
}
