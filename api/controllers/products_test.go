package controllers

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	product "github.com/angelmondragon/bookstore-admin/internal/products"
	"github.com/angelmondragon/bookstore-admin/pkg/enums"
	pkgerrors "github.com/angelmondragon/bookstore-admin/pkg/errors"
	"github.com/angelmondragon/bookstore-admin/pkg/logger"
)

type stubProductService struct {
	createInput product.CreateProductInput
	updateInput product.UpdateProductInput
	lastID      uuid.UUID
	dto         *product.ProductDTO
	list        []product.ProductDTO
	err         error
}

func (s *stubProductService) ListProducts(ctx context.Context) ([]product.ProductDTO, error) {
	return s.list, s.err
}

func (s *stubProductService) GetProduct(ctx context.Context, productID uuid.UUID) (*product.ProductDTO, error) {
	s.lastID = productID
	return s.dto, s.err
}

func (s *stubProductService) CreateProduct(ctx context.Context, input product.CreateProductInput) (*product.ProductDTO, error) {
	s.createInput = input
	return s.dto, s.err
}

func (s *stubProductService) UpdateProduct(ctx context.Context, productID uuid.UUID, input product.UpdateProductInput) (*product.ProductDTO, error) {
	s.lastID = productID
	s.updateInput = input
	return s.dto, s.err
}

func (s *stubProductService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	s.lastID = productID
	return s.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestCreateProduct(t *testing.T) {
	svc := &stubProductService{dto: &product.ProductDTO{ID: uuid.New(), ProductName: "Dune"}}
	body := `{"product_name":"  Dune ","price":"19.5","availability":"coming","stock_count":4,"category_ids":[2,1]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewBufferString(body))
	resp := httptest.NewRecorder()
	CreateProduct(svc, testLogger()).ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	in := svc.createInput
	if in.ProductName != "Dune" {
		t.Fatalf("expected trimmed name got %q", in.ProductName)
	}
	if !in.Price.Equal(decimal.RequireFromString("19.50")) {
		t.Fatalf("unexpected price %s", in.Price)
	}
	if in.Availability != enums.AvailabilityComing {
		t.Fatalf("unexpected availability %s", in.Availability)
	}
	if in.StockCount != 4 || len(in.CategoryIDs) != 2 {
		t.Fatalf("unexpected input %+v", in)
	}
}

func TestCreateProductValidation(t *testing.T) {
	cases := map[string]string{
		"missing price":        `{"product_name":"Dune","availability":"Available"}`,
		"missing name":         `{"price":3,"availability":"Available"}`,
		"negative stock":       `{"product_name":"Dune","price":3,"availability":"Available","stock_count":-1}`,
		"unknown availability": `{"product_name":"Dune","price":3,"availability":"Sold out"}`,
		"bad category id":      `{"product_name":"Dune","price":3,"availability":"Available","category_ids":[0]}`,
		"unknown field":        `{"product_name":"Dune","price":3,"availability":"Available","isbn":"x"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			svc := &stubProductService{}
			req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewBufferString(body))
			resp := httptest.NewRecorder()
			CreateProduct(svc, testLogger()).ServeHTTP(resp, req)
			if resp.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 got %d", resp.Code)
			}
			if svc.createInput.ProductName != "" {
				t.Fatalf("service should not be called")
			}
		})
	}
}

func TestUpdateProductPartial(t *testing.T) {
	productID := uuid.New()
	svc := &stubProductService{dto: &product.ProductDTO{ID: productID}}
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/products/"+productID.String(), bytes.NewBufferString(`{"availability":"Discontinued","category_ids":[]}`))
	req = withURLParam(req, "productId", productID.String())
	resp := httptest.NewRecorder()
	UpdateProduct(svc, testLogger()).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastID != productID {
		t.Fatalf("unexpected product id %s", svc.lastID)
	}
	in := svc.updateInput
	if in.ProductName != nil || in.Price != nil || in.StockCount != nil {
		t.Fatalf("omitted fields should stay nil: %+v", in)
	}
	if in.Availability == nil || *in.Availability != enums.AvailabilityDiscontinued {
		t.Fatalf("expected availability Discontinued")
	}
	if in.CategoryIDs == nil || len(*in.CategoryIDs) != 0 {
		t.Fatalf("expected explicit empty category list")
	}
}

func TestGetProductInvalidID(t *testing.T) {
	svc := &stubProductService{}
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/products/abc", nil), "productId", "abc")
	resp := httptest.NewRecorder()
	GetProduct(svc, testLogger()).ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestGetProductNotFound(t *testing.T) {
	productID := uuid.New()
	svc := &stubProductService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/products/"+productID.String(), nil), "productId", productID.String())
	resp := httptest.NewRecorder()
	GetProduct(svc, testLogger()).ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestDeleteProduct(t *testing.T) {
	productID := uuid.New()
	svc := &stubProductService{}
	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/v1/products/"+productID.String(), nil), "productId", productID.String())
	resp := httptest.NewRecorder()
	DeleteProduct(svc, testLogger()).ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", resp.Code)
	}
	if svc.lastID != productID {
		t.Fatalf("expected delete of %s", productID)
	}
}

func TestListProductsServiceUnavailable(t *testing.T) {
	resp := httptest.NewRecorder()
	ListProducts(nil, testLogger()).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
}
