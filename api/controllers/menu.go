package controllers

import (
	"net/http"

	"github.com/angelmondragon/bookstore-admin/api/middleware"
	"github.com/angelmondragon/bookstore-admin/api/responses"
	"github.com/angelmondragon/bookstore-admin/internal/menu"
	pkgerrors "github.com/angelmondragon/bookstore-admin/pkg/errors"
	"github.com/angelmondragon/bookstore-admin/pkg/logger"
)

// Menu returns the navigation entries visible to the caller's role.
func Menu(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role := middleware.RoleFromContext(r.Context())
		if !role.IsValid() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "role missing from session"))
			return
		}
		responses.WriteSuccess(w, menu.ItemsFor(role))
	}
}
