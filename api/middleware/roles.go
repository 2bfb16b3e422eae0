package middleware

import (
	"net/http"
	"slices"

	"github.com/angelmondragon/bookstore-admin/api/responses"
	"github.com/angelmondragon/bookstore-admin/pkg/enums"
	pkgerrors "github.com/angelmondragon/bookstore-admin/pkg/errors"
	"github.com/angelmondragon/bookstore-admin/pkg/logger"
)

// RequireRole admits requests whose session role is one of allowed. It must
// run after Auth: a request without a session role is unauthenticated (401),
// one with another role is forbidden (403).
func RequireRole(logg *logger.Logger, allowed ...enums.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := RoleFromContext(r.Context())
			switch {
			case !role.IsValid():
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session required"))
			case !slices.Contains(allowed, role):
				responses.WriteError(r.Context(), logg, w, pkgerrors.Newf(pkgerrors.CodeForbidden, "%s role may not access this resource", role))
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}
