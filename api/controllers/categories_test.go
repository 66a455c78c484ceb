package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	categorysvc "github.com/stockroomhq/stockroom-backend/internal/categories"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
)

type stubCategoryService struct {
	lastName        string
	lastDescription string
	lastID          uuid.UUID
	lastSearch      string

	category *categorysvc.CategoryDTO
	list     []categorysvc.CategoryDTO
	err      error
}

func (s *stubCategoryService) CreateCategory(ctx context.Context, name, description string) (*categorysvc.CategoryDTO, error) {
	s.lastName = name
	s.lastDescription = description
	return s.category, s.err
}

func (s *stubCategoryService) GetCategoryByID(ctx context.Context, id uuid.UUID) (*categorysvc.CategoryDTO, error) {
	s.lastID = id
	return s.category, s.err
}

func (s *stubCategoryService) GetAllCategories(ctx context.Context) ([]categorysvc.CategoryDTO, error) {
	return s.list, s.err
}

func (s *stubCategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, name, description string) (*categorysvc.CategoryDTO, error) {
	s.lastID = id
	s.lastName = name
	s.lastDescription = description
	return s.category, s.err
}

func (s *stubCategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	s.lastID = id
	return s.err
}

func (s *stubCategoryService) SearchCategories(ctx context.Context, name string) ([]categorysvc.CategoryDTO, error) {
	s.lastSearch = name
	return s.list, s.err
}

func TestCategoryCreate(t *testing.T) {
	svc := &stubCategoryService{category: &categorysvc.CategoryDTO{CategoryID: uuid.New(), Name: "Stationery"}}
	rec := postJSON(t, CategoryCreate(svc, nil), "/categories", `{"name":"Stationery","description":"Paper goods"}`, nil)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastName != "Stationery" || svc.lastDescription != "Paper goods" {
		t.Fatalf("unexpected args %q %q", svc.lastName, svc.lastDescription)
	}
}

func TestCategoryCreateRequiresName(t *testing.T) {
	svc := &stubCategoryService{}
	rec := postJSON(t, CategoryCreate(svc, nil), "/categories", `{"description":"no name"}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestCategoryListSearchesByName(t *testing.T) {
	svc := &stubCategoryService{list: []categorysvc.CategoryDTO{{Name: "Books"}}}
	req := httptest.NewRequest(http.MethodGet, "/categories?name=ook", nil)
	rec := httptest.NewRecorder()
	CategoryList(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.lastSearch != "ook" {
		t.Fatalf("expected search term ook got %q", svc.lastSearch)
	}
}

func TestCategoryDeleteConflict(t *testing.T) {
	svc := &stubCategoryService{err: pkgerrors.New(pkgerrors.CodeConflict, "cannot delete category: 2 product(s) still reference it")}
	id := uuid.New()

	router := chi.NewRouter()
	router.Delete("/categories/{categoryId}", CategoryDelete(svc, nil))

	req := httptest.NewRequest(http.MethodDelete, "/categories/"+id.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastID != id {
		t.Fatalf("unexpected id %s", svc.lastID)
	}
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeConflict) {
		t.Fatalf("unexpected code %s", envelope.Error.Code)
	}
}

func TestCategoryProducts(t *testing.T) {
	svc := &stubProductService{list: nil}
	id := uuid.New()

	router := chi.NewRouter()
	router.Get("/categories/{categoryId}/products", CategoryProducts(svc, nil))

	req := httptest.NewRequest(http.MethodGet, "/categories/"+id.String()+"/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.lastCategoryID != id {
		t.Fatalf("unexpected category id %s", svc.lastCategoryID)
	}
}
