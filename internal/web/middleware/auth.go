package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/reclaimhq/dormant/internal/auth"
)

type contextKey string

const claimsKey contextKey = "auth_claims"

// BearerAuth returns middleware that validates the Authorization header
// against the auth service. When enabled is false, all requests pass
// through (local development and tests).
func BearerAuth(svc *auth.Service, enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !enabled {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(r)
			if !ok {
				slog.Warn("auth: missing bearer token",
					"path", r.URL.Path,
					"method", r.Method,
					"remote_addr", r.RemoteAddr,
				)
				http.Error(w, `{"error":"missing bearer token","code":"AUTH_MISSING_TOKEN"}`, http.StatusUnauthorized)
				return
			}

			claims, err := svc.Verify(token)
			if err != nil {
				slog.Warn("auth: invalid token",
					"path", r.URL.Path,
					"method", r.Method,
					"remote_addr", r.RemoteAddr,
				)
				http.Error(w, `{"error":"invalid or expired token","code":"AUTH_INVALID_TOKEN"}`, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(
				context.WithValue(r.Context(), claimsKey, claims)))
		})
	}
}

// RequireRole returns middleware that rejects authenticated callers
// lacking the given role. Must run inside BearerAuth; when auth is
// disabled no claims exist and the check passes through.
func RequireRole(role string, enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !enabled {
				next.ServeHTTP(w, r)
				return
			}

			claims := ClaimsFromContext(r.Context())
			if claims == nil || claims.Role != role {
				slog.Warn("auth: insufficient role",
					"path", r.URL.Path,
					"required", role,
				)
				http.Error(w, `{"error":"insufficient permissions","code":"AUTH_FORBIDDEN"}`, http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClaimsFromContext returns the verified claims for the request, or nil.
func ClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey).(*auth.Claims)
	return claims
}

// bearerToken extracts the token from an "Authorization: Bearer x" header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}
