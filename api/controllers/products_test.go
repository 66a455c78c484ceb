package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockroomhq/stockroom-backend/api/middleware"
	productsvc "github.com/stockroomhq/stockroom-backend/internal/products"
	"github.com/stockroomhq/stockroom-backend/pkg/config"
	"github.com/stockroomhq/stockroom-backend/pkg/enums"
	"github.com/stockroomhq/stockroom-backend/pkg/kv/models"
)

type stubProductService struct {
	lastActor      uuid.UUID
	lastID         uuid.UUID
	lastCreate     productsvc.CreateProductInput
	lastUpdate     productsvc.UpdateProductInput
	lastFilter     productsvc.Filter
	lastPage       int
	lastLimit      int
	lastCategoryID uuid.UUID

	product *productsvc.ProductDTO
	page    *productsvc.ProductPage
	list    []productsvc.ProductDTO
	logs    []models.AuditLogEntry
	err     error
}

func (s *stubProductService) CreateProduct(ctx context.Context, actorID uuid.UUID, input productsvc.CreateProductInput) (*productsvc.ProductDTO, error) {
	s.lastActor = actorID
	s.lastCreate = input
	return s.product, s.err
}

func (s *stubProductService) GetProductByID(ctx context.Context, id uuid.UUID) (*productsvc.ProductDTO, error) {
	s.lastID = id
	return s.product, s.err
}

func (s *stubProductService) UpdateProduct(ctx context.Context, actorID, id uuid.UUID, input productsvc.UpdateProductInput) (*productsvc.ProductDTO, error) {
	s.lastActor = actorID
	s.lastID = id
	s.lastUpdate = input
	return s.product, s.err
}

func (s *stubProductService) DeleteProduct(ctx context.Context, actorID, id uuid.UUID) (*productsvc.ProductDTO, error) {
	s.lastActor = actorID
	s.lastID = id
	return s.product, s.err
}

func (s *stubProductService) SearchProducts(ctx context.Context, filter productsvc.Filter) ([]productsvc.ProductDTO, error) {
	s.lastFilter = filter
	return s.list, s.err
}

func (s *stubProductService) GetAllProducts(ctx context.Context) ([]productsvc.ProductDTO, error) {
	return s.list, s.err
}

func (s *stubProductService) GetPaginatedProducts(ctx context.Context, filter productsvc.Filter, page, limit int) (*productsvc.ProductPage, error) {
	s.lastFilter = filter
	s.lastPage = page
	s.lastLimit = limit
	return s.page, s.err
}

func (s *stubProductService) GetProductsByCategory(ctx context.Context, categoryID uuid.UUID) ([]productsvc.ProductDTO, error) {
	s.lastCategoryID = categoryID
	return s.list, s.err
}

func (s *stubProductService) GetProductLogs(ctx context.Context, productID uuid.UUID) ([]models.AuditLogEntry, error) {
	s.lastID = productID
	return s.logs, s.err
}

func testProductDTO() *productsvc.ProductDTO {
	return &productsvc.ProductDTO{
		ID:              uuid.New(),
		Name:            "Ledger Paper",
		Price:           decimal.RequireFromString("4.50"),
		Quantity:        20,
		InventoryStatus: enums.InventoryStatusInStock,
		CreatedAt:       time.Now().UTC(),
	}
}

func serveWithActor(router http.Handler, req *http.Request, actorID uuid.UUID) *httptest.ResponseRecorder {
	req = req.WithContext(middleware.WithUserID(req.Context(), actorID.String()))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestProductCreate(t *testing.T) {
	svc := &stubProductService{product: testProductDTO()}
	actor := uuid.New()

	body := `{"name":"Ledger Paper","price":"4.50","quantity":20}`
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := serveWithActor(ProductCreate(svc, nil), req, actor)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastActor != actor {
		t.Fatalf("expected actor %s got %s", actor, svc.lastActor)
	}
	if svc.lastCreate.Name != "Ledger Paper" {
		t.Fatalf("unexpected name %q", svc.lastCreate.Name)
	}
	if !svc.lastCreate.Price.Equal(decimal.RequireFromString("4.50")) {
		t.Fatalf("unexpected price %s", svc.lastCreate.Price)
	}
	if svc.lastCreate.Quantity != 20 {
		t.Fatalf("unexpected quantity %d", svc.lastCreate.Quantity)
	}
}

func TestProductCreateRequiresPrice(t *testing.T) {
	svc := &stubProductService{}
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBufferString(`{"name":"Ledger Paper","quantity":1}`))
	req.Header.Set("Content-Type", "application/json")
	rec := serveWithActor(ProductCreate(svc, nil), req, uuid.New())

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastCreate.Name != "" {
		t.Fatal("service should not be called on validation failure")
	}
}

func TestProductCreateRequiresActor(t *testing.T) {
	svc := &stubProductService{}
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBufferString(`{"name":"x","price":"1","quantity":1}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ProductCreate(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestProductListBuildsFilter(t *testing.T) {
	svc := &stubProductService{page: &productsvc.ProductPage{Items: []productsvc.ProductDTO{}, CurrentPage: 2}}
	cfg := config.CatalogConfig{PageSize: 12, MaxPageSize: 100}
	categoryID := uuid.New()

	target := "/products?name=Paper&categoryId=" + categoryID.String() +
		"&minPrice=1.00&maxPrice=9.99&includeDeleted=true&page=2&limit=5"
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	ProductList(svc, cfg, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastFilter.Name != "Paper" {
		t.Fatalf("unexpected name filter %q", svc.lastFilter.Name)
	}
	if svc.lastFilter.CategoryID == nil || *svc.lastFilter.CategoryID != categoryID {
		t.Fatalf("unexpected category filter %v", svc.lastFilter.CategoryID)
	}
	if svc.lastFilter.MinPrice == nil || !svc.lastFilter.MinPrice.Equal(decimal.RequireFromString("1.00")) {
		t.Fatalf("unexpected min price %v", svc.lastFilter.MinPrice)
	}
	if svc.lastFilter.MaxPrice == nil || !svc.lastFilter.MaxPrice.Equal(decimal.RequireFromString("9.99")) {
		t.Fatalf("unexpected max price %v", svc.lastFilter.MaxPrice)
	}
	if !svc.lastFilter.IncludeDeleted {
		t.Fatal("expected includeDeleted filter")
	}
	if svc.lastPage != 2 || svc.lastLimit != 5 {
		t.Fatalf("unexpected page/limit %d/%d", svc.lastPage, svc.lastLimit)
	}
}

func TestProductListDefaults(t *testing.T) {
	svc := &stubProductService{page: &productsvc.ProductPage{}}
	cfg := config.CatalogConfig{PageSize: 12, MaxPageSize: 100}

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	rec := httptest.NewRecorder()
	ProductList(svc, cfg, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.lastPage != 1 || svc.lastLimit != 12 {
		t.Fatalf("unexpected defaults %d/%d", svc.lastPage, svc.lastLimit)
	}
	if svc.lastFilter.IncludeDeleted {
		t.Fatal("deleted products must be excluded by default")
	}
}

func TestProductListRejectsOversizedLimit(t *testing.T) {
	svc := &stubProductService{}
	cfg := config.CatalogConfig{PageSize: 12, MaxPageSize: 100}

	req := httptest.NewRequest(http.MethodGet, "/products?limit=500", nil)
	rec := httptest.NewRecorder()
	ProductList(svc, cfg, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestProductDetailIncludesLogs(t *testing.T) {
	dto := testProductDTO()
	svc := &stubProductService{
		product: dto,
		logs: []models.AuditLogEntry{
			{LogID: uuid.New(), ProductID: dto.ID, Action: enums.LogActionCreate, UserID: uuid.New(), Time: time.Now().UTC()},
		},
	}

	router := chi.NewRouter()
	router.Get("/products/{productId}", ProductDetail(svc, nil))

	req := httptest.NewRequest(http.MethodGet, "/products/"+dto.ID.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Data struct {
			Product productsvc.ProductDTO  `json:"product"`
			Logs    []models.AuditLogEntry `json:"logs"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Product.ID != dto.ID {
		t.Fatalf("unexpected product %s", envelope.Data.Product.ID)
	}
	if len(envelope.Data.Logs) != 1 {
		t.Fatalf("expected 1 log entry got %d", len(envelope.Data.Logs))
	}
}

func TestProductDetailRejectsBadID(t *testing.T) {
	svc := &stubProductService{}
	router := chi.NewRouter()
	router.Get("/products/{productId}", ProductDetail(svc, nil))

	req := httptest.NewRequest(http.MethodGet, "/products/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestProductUpdateClearCategory(t *testing.T) {
	svc := &stubProductService{product: testProductDTO()}
	actor := uuid.New()
	id := uuid.New()

	router := chi.NewRouter()
	router.Put("/products/{productId}", ProductUpdate(svc, nil))

	req := httptest.NewRequest(http.MethodPut, "/products/"+id.String(), bytes.NewBufferString(`{"quantity":3,"clearCategory":true}`))
	req.Header.Set("Content-Type", "application/json")
	rec := serveWithActor(router, req, actor)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastID != id {
		t.Fatalf("unexpected target id %s", svc.lastID)
	}
	if svc.lastUpdate.Quantity == nil || *svc.lastUpdate.Quantity != 3 {
		t.Fatalf("unexpected quantity %v", svc.lastUpdate.Quantity)
	}
	if !svc.lastUpdate.ClearCategory {
		t.Fatal("expected ClearCategory to be set")
	}
	if svc.lastUpdate.Name != nil || svc.lastUpdate.Price != nil {
		t.Fatal("unset fields must stay nil")
	}
}

func TestProductUpdateRejectsConflictingCategoryFields(t *testing.T) {
	svc := &stubProductService{}
	router := chi.NewRouter()
	router.Put("/products/{productId}", ProductUpdate(svc, nil))

	body := `{"categoryId":"` + uuid.NewString() + `","clearCategory":true}`
	req := httptest.NewRequest(http.MethodPut, "/products/"+uuid.NewString(), bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := serveWithActor(router, req, uuid.New())

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestProductDelete(t *testing.T) {
	svc := &stubProductService{product: testProductDTO()}
	actor := uuid.New()
	id := uuid.New()

	router := chi.NewRouter()
	router.Delete("/products/{productId}", ProductDelete(svc, nil))

	req := httptest.NewRequest(http.MethodDelete, "/products/"+id.String(), nil)
	rec := serveWithActor(router, req, actor)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastActor != actor || svc.lastID != id {
		t.Fatalf("unexpected delete args actor=%s id=%s", svc.lastActor, svc.lastID)
	}
}
