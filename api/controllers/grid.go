package controllers

import (
	"net/http"

	"github.com/angelmondragon/bookstore-admin/api/middleware"
	"github.com/angelmondragon/bookstore-admin/api/responses"
	"github.com/angelmondragon/bookstore-admin/api/validators"
	"github.com/angelmondragon/bookstore-admin/internal/grid"
	pkgerrors "github.com/angelmondragon/bookstore-admin/pkg/errors"
	"github.com/angelmondragon/bookstore-admin/pkg/logger"
	"github.com/angelmondragon/bookstore-admin/pkg/types"
)

const (
	maxViewportWidth = 100000
	maxSortParamLen  = 32
)

type viewportRequest struct {
	Width *int `json:"width" validate:"required,gte=0,lte=100000"`
}

type selectionRequest struct {
	ProductID types.NullableUUID `json:"product_id"`
}

func gridSession(r *http.Request) (string, error) {
	accessID := middleware.AccessIDFromContext(r.Context())
	if accessID == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "session missing")
	}
	return accessID, nil
}

// GridViewport records a width-changed notification and returns the
// recomputed column layout.
func GridViewport(svc grid.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "grid service unavailable"))
			return
		}

		accessID, err := gridSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body viewportRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		layout, err := svc.ReportViewport(r.Context(), accessID, *body.Width)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, layout)
	}
}

// GridView returns the formatted rows and, once a width is known, the visible columns.
func GridView(svc grid.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "grid service unavailable"))
			return
		}

		accessID, err := gridSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		width, err := validators.ParseOptionalQueryInt(r, "width", 0, maxViewportWidth)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := grid.ViewQuery{Width: width}
		if raw := validators.SanitizeString(r.URL.Query().Get("sort"), maxSortParamLen); raw != "" {
			key, ok := grid.ParseColumnKey(raw)
			if !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown sort column").WithDetails(map[string]any{"field": "sort", "value": raw}))
				return
			}
			query.Sort = key
		}
		dir, ok := grid.ParseDirection(validators.SanitizeString(r.URL.Query().Get("dir"), maxSortParamLen))
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "dir must be asc or desc").WithDetails(map[string]any{"field": "dir"}))
			return
		}
		query.Direction = dir

		view, err := svc.View(r.Context(), accessID, query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// GridSelect sets the selected row. An explicit null product_id clears it.
func GridSelect(svc grid.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "grid service unavailable"))
			return
		}

		accessID, err := gridSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body selectionRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !body.ProductID.Valid {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(map[string]string{"product_id": "is required"}))
			return
		}

		row, err := svc.Select(r.Context(), accessID, body.ProductID.Value)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

func GridSelection(svc grid.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "grid service unavailable"))
			return
		}

		accessID, err := gridSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.Selected(r.Context(), accessID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}
