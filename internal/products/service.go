package product

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockroomhq/stockroom-backend/pkg/enums"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/kv"
	"github.com/stockroomhq/stockroom-backend/pkg/kv/models"
	"github.com/stockroomhq/stockroom-backend/pkg/metrics"
	"github.com/stockroomhq/stockroom-backend/pkg/pagination"
)

// Service exposes inventory management operations. Every successful
// mutation appends exactly one audit entry with the acting user.
type Service interface {
	CreateProduct(ctx context.Context, actorID uuid.UUID, input CreateProductInput) (*ProductDTO, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, actorID, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, actorID, id uuid.UUID) (*ProductDTO, error)
	SearchProducts(ctx context.Context, filter Filter) ([]ProductDTO, error)
	GetAllProducts(ctx context.Context) ([]ProductDTO, error)
	GetPaginatedProducts(ctx context.Context, filter Filter, page, limit int) (*ProductPage, error)
	GetProductsByCategory(ctx context.Context, categoryID uuid.UUID) ([]ProductDTO, error)
	GetProductLogs(ctx context.Context, productID uuid.UUID) ([]models.AuditLogEntry, error)
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name       string
	Price      decimal.Decimal
	Quantity   int
	CategoryID *uuid.UUID
	ImageURL   *string
}

// UpdateProductInput holds optional mutation values. Nil pointers leave
// the stored field untouched; ClearCategory detaches the product from
// its category.
type UpdateProductInput struct {
	Name          *string
	Price         *decimal.Decimal
	Quantity      *int
	CategoryID    *uuid.UUID
	ClearCategory bool
	ImageURL      *string
}

type categoryResolver interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
}

type auditWriter interface {
	Create(ctx context.Context, entry models.AuditLogEntry) error
	FindByProductID(ctx context.Context, productID uuid.UUID) ([]models.AuditLogEntry, error)
}

type service struct {
	store      *Store
	categories categoryResolver
	audit      auditWriter
	metrics    *metrics.MutationMetrics
	now        func() time.Time
}

// NewService constructs an inventory service instance. The metrics
// recorder may be nil.
func NewService(store *Store, categories categoryResolver, audit auditWriter, mutations *metrics.MutationMetrics) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("product store required")
	}
	if categories == nil {
		return nil, fmt.Errorf("category store required")
	}
	if audit == nil {
		return nil, fmt.Errorf("audit log store required")
	}
	return &service{
		store:      store,
		categories: categories,
		audit:      audit,
		metrics:    mutations,
		now:        time.Now,
	}, nil
}

// CreateProduct validates the category reference, persists the product,
// and appends a CREATE audit entry.
func (s *service) CreateProduct(ctx context.Context, actorID uuid.UUID, input CreateProductInput) (*ProductDTO, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product price cannot be negative")
	}
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product quantity cannot be negative")
	}
	if input.CategoryID != nil {
		if err := s.resolveCategory(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	record := models.Product{
		ID:         uuid.New(),
		Name:       input.Name,
		Price:      input.Price,
		Quantity:   input.Quantity,
		CategoryID: input.CategoryID,
		ImageURL:   input.ImageURL,
		IsDeleted:  false,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.store.Create(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	s.metrics.Inc("product", enums.LogActionCreate.String())

	if err := s.appendLog(ctx, record.ID, actorID, enums.LogActionCreate); err != nil {
		return nil, err
	}

	dto := NewProductDTO(record)
	return &dto, nil
}

// GetProductByID returns the product or NotFound. Soft-deleted products
// are treated as missing on direct lookup.
func (s *service) GetProductByID(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	record, err := s.findVisible(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := NewProductDTO(*record)
	return &dto, nil
}

// UpdateProduct merges only the supplied fields and appends an UPDATE
// audit entry.
func (s *service) UpdateProduct(ctx context.Context, actorID, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	if _, err := s.findVisible(ctx, id); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
		}
		fields["name"] = *input.Name
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product price cannot be negative")
		}
		fields["price"] = input.Price.String()
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product quantity cannot be negative")
		}
		fields["quantity"] = *input.Quantity
	}
	switch {
	case input.ClearCategory:
		fields["categoryId"] = nil
	case input.CategoryID != nil:
		if err := s.resolveCategory(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
		fields["categoryId"] = input.CategoryID.String()
	}
	if input.ImageURL != nil {
		fields["imageUrl"] = *input.ImageURL
	}

	updated, err := s.store.Update(ctx, id, fields)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	s.metrics.Inc("product", enums.LogActionUpdate.String())

	if err := s.appendLog(ctx, id, actorID, enums.LogActionUpdate); err != nil {
		return nil, err
	}

	dto := NewProductDTO(*updated)
	return &dto, nil
}

// DeleteProduct soft-deletes the product and appends a DELETE audit
// entry. The record itself is retained.
func (s *service) DeleteProduct(ctx context.Context, actorID, id uuid.UUID) (*ProductDTO, error) {
	if _, err := s.findVisible(ctx, id); err != nil {
		return nil, err
	}

	deleted, err := s.store.SoftDelete(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "soft delete product")
	}
	s.metrics.Inc("product", enums.LogActionDelete.String())

	if err := s.appendLog(ctx, id, actorID, enums.LogActionDelete); err != nil {
		return nil, err
	}

	dto := NewProductDTO(*deleted)
	return &dto, nil
}

// SearchProducts returns the filtered products with derived status, in
// backend order.
func (s *service) SearchProducts(ctx context.Context, filter Filter) ([]ProductDTO, error) {
	records, err := s.store.Search(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search products")
	}
	return toDTOs(records), nil
}

// GetAllProducts lists every non-deleted product.
func (s *service) GetAllProducts(ctx context.Context) ([]ProductDTO, error) {
	return s.SearchProducts(ctx, Filter{})
}

// GetPaginatedProducts materializes the full filtered result, then
// slices the requested window. A page past the end yields an empty
// slice, not an error.
func (s *service) GetPaginatedProducts(ctx context.Context, filter Filter, page, limit int) (*ProductPage, error) {
	items, err := s.SearchProducts(ctx, filter)
	if err != nil {
		return nil, err
	}

	window := pagination.Paginate(len(items), page, limit)
	return &ProductPage{
		Items:       items[window.Start:window.End],
		CurrentPage: window.Page,
		TotalPages:  window.TotalPages,
		TotalItems:  window.TotalItems,
		HasNext:     window.HasNext,
		HasPrev:     window.HasPrev,
	}, nil
}

// GetProductsByCategory lists the non-deleted products in one category.
func (s *service) GetProductsByCategory(ctx context.Context, categoryID uuid.UUID) ([]ProductDTO, error) {
	records, err := s.store.FindByCategoryID(ctx, categoryID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products by category")
	}
	return toDTOs(records), nil
}

// GetProductLogs returns the audit trail for a product, newest first.
// Logs survive soft deletion, so no visibility check applies here.
func (s *service) GetProductLogs(ctx context.Context, productID uuid.UUID) ([]models.AuditLogEntry, error) {
	entries, err := s.audit.FindByProductID(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product logs")
	}
	return entries, nil
}

func (s *service) findVisible(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	record, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if record.IsDeleted {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return record, nil
}

func (s *service) resolveCategory(ctx context.Context, categoryID uuid.UUID) error {
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return pkgerrors.New(pkgerrors.CodeInvalidReference,
				fmt.Sprintf("category %s does not exist", categoryID))
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve category")
	}
	return nil
}

// appendLog records one audit entry after a durable mutation. A failed
// append is not rolled back; the error propagates as-is.
func (s *service) appendLog(ctx context.Context, productID, actorID uuid.UUID, action enums.LogAction) error {
	entry := models.AuditLogEntry{
		LogID:     uuid.New(),
		ProductID: productID,
		Action:    action,
		UserID:    actorID,
		Time:      s.now().UTC(),
	}
	if err := s.audit.Create(ctx, entry); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append audit entry")
	}
	return nil
}

func toDTOs(records []models.Product) []ProductDTO {
	dtos := make([]ProductDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, NewProductDTO(record))
	}
	return dtos
}
