package controllers

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/bookstore-admin/api/middleware"
	"github.com/angelmondragon/bookstore-admin/api/responses"
	"github.com/angelmondragon/bookstore-admin/api/validators"
	"github.com/angelmondragon/bookstore-admin/internal/auth"
	pkgerrors "github.com/angelmondragon/bookstore-admin/pkg/errors"
	"github.com/angelmondragon/bookstore-admin/pkg/logger"
)

const maxUsernameLen = 64

// AuthLogin exchanges a username and password for an access/refresh token pair.
// The username is matched case-insensitively.
func AuthLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		body.Username = strings.ToLower(validators.SanitizeString(body.Username, maxUsernameLen))

		result, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeTokenResponse(w, result.AccessToken, result)
	}
}

// writeTokenResponse echoes the access token in a header and keeps token
// bodies out of intermediary caches.
func writeTokenResponse(w http.ResponseWriter, accessToken string, payload any) {
	w.Header().Set(middleware.AuthTokenHeader, accessToken)
	w.Header().Set("Cache-Control", "no-store")
	responses.WriteSuccess(w, payload)
}
