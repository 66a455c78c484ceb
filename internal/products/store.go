package product

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockroomhq/stockroom-backend/pkg/kv"
	"github.com/stockroomhq/stockroom-backend/pkg/kv/models"
)

// Filter is the composable search predicate over the product collection.
// Zero-value fields are inactive; active conditions combine with AND.
// Soft-deleted products are excluded unless IncludeDeleted is set.
type Filter struct {
	Name           string
	CategoryID     *uuid.UUID
	MinPrice       *decimal.Decimal
	MaxPrice       *decimal.Decimal
	IncludeDeleted bool
}

// Matches reports whether the product satisfies every active condition.
// The name match is case-sensitive substring containment.
func (f Filter) Matches(p models.Product) bool {
	if !f.IncludeDeleted && p.IsDeleted {
		return false
	}
	if f.Name != "" && !strings.Contains(p.Name, f.Name) {
		return false
	}
	if f.CategoryID != nil {
		if p.CategoryID == nil || *p.CategoryID != *f.CategoryID {
			return false
		}
	}
	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	return true
}

// Store persists products in the Products collection.
type Store struct {
	kv kv.Store
}

func NewStore(store kv.Store) (*Store, error) {
	if store == nil {
		return nil, fmt.Errorf("kv store required")
	}
	return &Store{kv: store}, nil
}

// Create writes a new product. The caller assigns the identifier.
func (s *Store) Create(ctx context.Context, product models.Product) error {
	doc, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("encoding product: %w", err)
	}
	if err := s.kv.Put(ctx, kv.CollectionProducts, product.ID.String(), doc); err != nil {
		return fmt.Errorf("writing product: %w", err)
	}
	return nil
}

// FindByID returns the product regardless of its deletion flag, or
// kv.ErrNotFound. Visibility rules belong to the service layer.
func (s *Store) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	doc, err := s.kv.GetByKey(ctx, kv.CollectionProducts, id.String())
	if err != nil {
		return nil, err
	}
	var product models.Product
	if err := json.Unmarshal(doc, &product); err != nil {
		return nil, fmt.Errorf("decoding product: %w", err)
	}
	return &product, nil
}

// Search scans the full collection and applies the filter. Results come
// back in whatever order the backend yields.
func (s *Store) Search(ctx context.Context, filter Filter) ([]models.Product, error) {
	docs, err := s.kv.Scan(ctx, kv.CollectionProducts)
	if err != nil {
		return nil, fmt.Errorf("scanning products: %w", err)
	}
	products := make([]models.Product, 0, len(docs))
	for _, doc := range docs {
		var product models.Product
		if err := json.Unmarshal(doc, &product); err != nil {
			return nil, fmt.Errorf("decoding product: %w", err)
		}
		if filter.Matches(product) {
			products = append(products, product)
		}
	}
	return products, nil
}

// Update merges only the supplied fields into the stored record and
// returns the post-update product. Returns kv.ErrNotFound for missing ids.
func (s *Store) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Product, error) {
	if err := s.kv.UpdatePartial(ctx, kv.CollectionProducts, id.String(), fields); err != nil {
		return nil, err
	}
	return s.FindByID(ctx, id)
}

// SoftDelete flips the deletion flag and returns the updated record.
func (s *Store) SoftDelete(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.Update(ctx, id, map[string]any{"isDeleted": true})
}

// FindByCategoryID returns the non-deleted products in one category.
func (s *Store) FindByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]models.Product, error) {
	return s.Search(ctx, Filter{CategoryID: &categoryID})
}

// CountActiveByCategoryID counts the non-deleted products referencing a
// category. Backs the category deletion guard.
func (s *Store) CountActiveByCategoryID(ctx context.Context, categoryID uuid.UUID) (int, error) {
	products, err := s.FindByCategoryID(ctx, categoryID)
	if err != nil {
		return 0, err
	}
	return len(products), nil
}
