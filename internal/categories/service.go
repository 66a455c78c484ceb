package category

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/kv"
	"github.com/stockroomhq/stockroom-backend/pkg/kv/models"
	"github.com/stockroomhq/stockroom-backend/pkg/metrics"
)

// Service exposes category management operations.
type Service interface {
	CreateCategory(ctx context.Context, name, description string) (*CategoryDTO, error)
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*CategoryDTO, error)
	GetAllCategories(ctx context.Context) ([]CategoryDTO, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, name, description string) (*CategoryDTO, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	SearchCategories(ctx context.Context, name string) ([]CategoryDTO, error)
}

type productCounter interface {
	CountActiveByCategoryID(ctx context.Context, categoryID uuid.UUID) (int, error)
}

type service struct {
	store    *Store
	products productCounter
	metrics  *metrics.MutationMetrics
}

// NewService constructs a category service instance. The metrics
// recorder may be nil.
func NewService(store *Store, products productCounter, mutations *metrics.MutationMetrics) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("category store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product counter required")
	}
	return &service{
		store:    store,
		products: products,
		metrics:  mutations,
	}, nil
}

// CreateCategory creates a category with a fresh identifier.
func (s *service) CreateCategory(ctx context.Context, name, description string) (*CategoryDTO, error) {
	if strings.TrimSpace(name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}

	category := models.Category{
		CategoryID:  uuid.New(),
		Name:        name,
		Description: description,
	}
	if err := s.store.Create(ctx, category); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	s.metrics.Inc("category", "CREATE")

	dto := NewCategoryDTO(category)
	return &dto, nil
}

// GetCategoryByID returns the category or NotFound.
func (s *service) GetCategoryByID(ctx context.Context, id uuid.UUID) (*CategoryDTO, error) {
	category, err := s.findExisting(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := NewCategoryDTO(*category)
	return &dto, nil
}

// GetAllCategories lists every category.
func (s *service) GetAllCategories(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return toDTOs(categories), nil
}

// UpdateCategory verifies existence, then merges name and description.
func (s *service) UpdateCategory(ctx context.Context, id uuid.UUID, name, description string) (*CategoryDTO, error) {
	if strings.TrimSpace(name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}
	if _, err := s.findExisting(ctx, id); err != nil {
		return nil, err
	}

	updated, err := s.store.Update(ctx, id, name, description)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update category")
	}
	s.metrics.Inc("category", "UPDATE")

	dto := NewCategoryDTO(*updated)
	return &dto, nil
}

// DeleteCategory removes a category once no active product references it.
func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findExisting(ctx, id); err != nil {
		return err
	}

	count, err := s.products.CountActiveByCategoryID(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count referencing products")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict,
			fmt.Sprintf("cannot delete category: %d product(s) still reference it", count))
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	s.metrics.Inc("category", "DELETE")
	return nil
}

// SearchCategories returns the categories whose name contains the query.
func (s *service) SearchCategories(ctx context.Context, name string) ([]CategoryDTO, error) {
	categories, err := s.store.FindByName(ctx, name)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search categories")
	}
	return toDTOs(categories), nil
}

func (s *service) findExisting(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	return category, nil
}

func toDTOs(categories []models.Category) []CategoryDTO {
	dtos := make([]CategoryDTO, 0, len(categories))
	for _, category := range categories {
		dtos = append(dtos, NewCategoryDTO(category))
	}
	return dtos
}
