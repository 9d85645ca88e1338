package transport

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/raigadbazaar/marketplace/application/user"
	"github.com/raigadbazaar/marketplace/constant"
	"github.com/raigadbazaar/marketplace/utils/errors"
)

// AuthMiddleware returns a middleware that validates JWT sessions using UserApp.
// Browsing and auth endpoints stay public; every mutating call must carry a
// verified session so client-supplied ids can be checked against it.
func AuthMiddleware(userApp user.UserApp) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicRoute(r.Method, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			// Check Authorization header
			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}
			token := strings.TrimPrefix(auth, "Bearer ")

			// Validate token via UserApp
			userID, err := userApp.ValidateToken(r.Context(), token)
			if err != nil {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}

			// Embed userID into context
			ctx := context.WithValue(r.Context(), constant.UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// isPublicRoute defines which endpoints skip session validation.
// /internal/ routes carry their own service API key.
func isPublicRoute(method, path string) bool {
	if strings.HasPrefix(path, "/swagger/") || strings.HasPrefix(path, "/internal/") {
		return true
	}
	if path == "/auth/signup" || path == "/auth/login" {
		return true
	}
	if method == http.MethodGet && strings.HasPrefix(path, "/properties") {
		return true
	}

	return false
}
