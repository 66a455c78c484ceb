package category

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/stockroomhq/stockroom-backend/pkg/kv"
	"github.com/stockroomhq/stockroom-backend/pkg/kv/models"
)

// Store persists categories in the Categories collection.
type Store struct {
	kv kv.Store
}

func NewStore(store kv.Store) (*Store, error) {
	if store == nil {
		return nil, fmt.Errorf("kv store required")
	}
	return &Store{kv: store}, nil
}

// Create writes a new category. The caller assigns the identifier.
func (s *Store) Create(ctx context.Context, category models.Category) error {
	doc, err := json.Marshal(category)
	if err != nil {
		return fmt.Errorf("encoding category: %w", err)
	}
	if err := s.kv.Put(ctx, kv.CollectionCategories, category.CategoryID.String(), doc); err != nil {
		return fmt.Errorf("writing category: %w", err)
	}
	return nil
}

// FindByID returns the category, or kv.ErrNotFound.
func (s *Store) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	doc, err := s.kv.GetByKey(ctx, kv.CollectionCategories, id.String())
	if err != nil {
		return nil, err
	}
	var category models.Category
	if err := json.Unmarshal(doc, &category); err != nil {
		return nil, fmt.Errorf("decoding category: %w", err)
	}
	return &category, nil
}

// FindAll returns every category in backend order.
func (s *Store) FindAll(ctx context.Context) ([]models.Category, error) {
	return s.scan(ctx, func(models.Category) bool { return true })
}

// FindByName returns the categories whose name contains the given
// substring. The match is case-sensitive.
func (s *Store) FindByName(ctx context.Context, name string) ([]models.Category, error) {
	return s.scan(ctx, func(category models.Category) bool {
		return strings.Contains(category.Name, name)
	})
}

// Update blindly merges name and description into the stored record.
// Existence checks belong to the caller.
func (s *Store) Update(ctx context.Context, id uuid.UUID, name, description string) (*models.Category, error) {
	fields := map[string]any{
		"name":        name,
		"description": description,
	}
	if err := s.kv.UpdatePartial(ctx, kv.CollectionCategories, id.String(), fields); err != nil {
		return nil, err
	}
	return s.FindByID(ctx, id)
}

// Delete removes the category record.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	return s.kv.Delete(ctx, kv.CollectionCategories, id.String())
}

func (s *Store) scan(ctx context.Context, match func(models.Category) bool) ([]models.Category, error) {
	docs, err := s.kv.Scan(ctx, kv.CollectionCategories)
	if err != nil {
		return nil, fmt.Errorf("scanning categories: %w", err)
	}
	categories := make([]models.Category, 0, len(docs))
	for _, doc := range docs {
		var category models.Category
		if err := json.Unmarshal(doc, &category); err != nil {
			return nil, fmt.Errorf("decoding category: %w", err)
		}
		if match(category) {
			categories = append(categories, category)
		}
	}
	return categories, nil
}
