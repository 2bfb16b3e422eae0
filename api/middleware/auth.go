package middleware

import (
	"net/http"

	"github.com/angelmondragon/bookstore-admin/api/responses"
	"github.com/angelmondragon/bookstore-admin/api/validators"
	pkgAuth "github.com/angelmondragon/bookstore-admin/pkg/auth"
	"github.com/angelmondragon/bookstore-admin/pkg/auth/session"
	"github.com/angelmondragon/bookstore-admin/pkg/config"
	pkgerrors "github.com/angelmondragon/bookstore-admin/pkg/errors"
	"github.com/angelmondragon/bookstore-admin/pkg/logger"
)

// Auth validates a bearer token against the live session store and seeds the
// request context with the claims.
func Auth(cfg config.JWTConfig, verifier session.AccessSessionChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := validators.BearerToken(r)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			if claims.AccessID() == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id"))
				return
			}
			if !claims.Role.IsValid() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid role"))
				return
			}

			if verifier != nil {
				ok, err := verifier.HasSession(r.Context(), claims.AccessID())
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session"))
					return
				}
				if !ok {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session unavailable"))
					return
				}
			}

			ctx := WithSession(r.Context(), claims.AccessID(), claims.UserID.String(), claims.Username, claims.Role)
			if logg != nil {
				ctx = logg.WithActor(ctx, logger.Actor{
					UserID:   claims.UserID.String(),
					Username: claims.Username,
					Role:     string(claims.Role),
					AccessID: claims.AccessID(),
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
