package models

import "github.com/google/uuid"

// Category groups products; stored in the Categories collection.
type Category struct {
	CategoryID  uuid.UUID `json:"categoryId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}
