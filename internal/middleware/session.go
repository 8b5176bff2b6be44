// Package middleware provides the request-level guards shared by the API
// routes.
package middleware

import (
	"context"
	"net/http"

	"github.com/askmatic/askly-server/internal/auth"
	"github.com/askmatic/askly-server/pkg/utils"
)

type contextKey struct{ name string }

var userIDKey = contextKey{"userID"}

// SessionGate verifies the session cookie and attaches the resolved user ID
// to the request context. Requests with a missing, invalid or expired token
// are rejected before the guarded handler runs; public routes are simply
// never wrapped.
func SessionGate(issuer *auth.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(issuer.CookieName())
			if err != nil || cookie.Value == "" {
				utils.RespondError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			userID, err := issuer.Verify(cookie.Value)
			if err != nil {
				utils.RespondError(w, http.StatusUnauthorized, "invalid or expired session")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated user ID attached by SessionGate.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}
