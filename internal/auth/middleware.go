package auth

import (
	"net/http"
	"strings"

	"github.com/leadcanvas/leadcanvas/internal/config"
)

const SessionCookieName = "jwt"

// AuthMiddleware resolves the session token from the jwt cookie or an
// Authorization bearer header and stores the claims in the request context.
// Requests without a valid token are rejected before any handler runs.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := tokenFromRequest(r)
		if tokenStr == "" {
			config.Fail(w, http.StatusUnauthorized, "not authenticated")
			return
		}

		claims, err := ValidateJWT(tokenStr)
		if err != nil {
			config.Fail(w, http.StatusUnauthorized, "not authenticated")
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
	})
}

func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := r.Header.Get("Authorization")
	if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
