package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/bookstore-admin/api/responses"
	"github.com/angelmondragon/bookstore-admin/api/validators"
	product "github.com/angelmondragon/bookstore-admin/internal/products"
	"github.com/angelmondragon/bookstore-admin/pkg/enums"
	pkgerrors "github.com/angelmondragon/bookstore-admin/pkg/errors"
	"github.com/angelmondragon/bookstore-admin/pkg/logger"
)

func productServiceUnavailable() error {
	return pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable")
}

// ListProducts returns the full inventory with categories preloaded.
func ListProducts(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, productServiceUnavailable())
			return
		}

		items, err := svc.ListProducts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func GetProduct(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, productServiceUnavailable())
			return
		}

		productID, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.GetProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// CreateProduct handles product creation from the admin inventory screen.
func CreateProduct(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, productServiceUnavailable())
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateProduct(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// UpdateProduct applies a partial update; omitted fields keep their value.
func UpdateProduct(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, productServiceUnavailable())
			return
		}

		productID, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toUpdateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.UpdateProduct(r.Context(), productID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func DeleteProduct(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, productServiceUnavailable())
			return
		}

		productID, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

type createProductRequest struct {
	ProductName  string           `json:"product_name" validate:"required,notblank,max=255"`
	Price        *decimal.Decimal `json:"price" validate:"required"`
	Availability string           `json:"availability" validate:"required"`
	StockCount   int              `json:"stock_count" validate:"gte=0"`
	CategoryIDs  []int64          `json:"category_ids" validate:"omitempty,dive,gt=0"`
}

type updateProductRequest struct {
	ProductName  *string          `json:"product_name,omitempty" validate:"omitempty,notblank,max=255"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	Availability *string          `json:"availability,omitempty"`
	StockCount   *int             `json:"stock_count,omitempty" validate:"omitempty,gte=0"`
	CategoryIDs  *[]int64         `json:"category_ids,omitempty" validate:"omitempty,dive,gt=0"`
}

func (r createProductRequest) toCreateInput() (product.CreateProductInput, error) {
	availability, err := enums.ParseAvailability(r.Availability)
	if err != nil {
		return product.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid availability")
	}

	return product.CreateProductInput{
		ProductName:  strings.TrimSpace(r.ProductName),
		Price:        *r.Price,
		Availability: availability,
		StockCount:   r.StockCount,
		CategoryIDs:  r.CategoryIDs,
	}, nil
}

func (r updateProductRequest) toUpdateInput() (product.UpdateProductInput, error) {
	input := product.UpdateProductInput{
		ProductName: r.ProductName,
		Price:       r.Price,
		StockCount:  r.StockCount,
		CategoryIDs: r.CategoryIDs,
	}
	if r.Availability != nil {
		availability, err := enums.ParseAvailability(*r.Availability)
		if err != nil {
			return product.UpdateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid availability")
		}
		input.Availability = &availability
	}
	return input, nil
}
