package controllers

import (
	"net/http"

	"github.com/angelmondragon/bookstore-admin/api/responses"
	"github.com/angelmondragon/bookstore-admin/api/validators"
	"github.com/angelmondragon/bookstore-admin/internal/categories"
	pkgerrors "github.com/angelmondragon/bookstore-admin/pkg/errors"
	"github.com/angelmondragon/bookstore-admin/pkg/logger"
)

type categoryNameRequest struct {
	Name string `json:"name" validate:"required,notblank,max=128"`
}

func categoryServiceUnavailable() error {
	return pkgerrors.New(pkgerrors.CodeInternal, "category service unavailable")
}

// ListCategories returns every category ordered by id.
func ListCategories(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, categoryServiceUnavailable())
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func AdminCreateCategory(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, categoryServiceUnavailable())
			return
		}

		var body categoryNameRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), body.Name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func AdminRenameCategory(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, categoryServiceUnavailable())
			return
		}

		categoryID, err := validators.ParseInt64Param(r, "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body categoryNameRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		renamed, err := svc.Rename(r.Context(), categoryID, body.Name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, renamed)
	}
}

// AdminDeleteCategory removes the category and unlinks it from every product.
func AdminDeleteCategory(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, categoryServiceUnavailable())
			return
		}

		categoryID, err := validators.ParseInt64Param(r, "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), categoryID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}
