package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/micropay/micropay-api/internal/api/shared"
	"github.com/micropay/micropay-api/internal/domain"
	"github.com/micropay/micropay-api/internal/redact"
)

// TokenVerifier validates a bearer token and returns the principal's email.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// AuthMiddleware authenticates requests by verifying identity-provider
// access tokens from the Authorization header.
type AuthMiddleware struct {
	verifier TokenVerifier
}

// NewAuthMiddleware creates a new AuthMiddleware with the given verifier.
func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// Authenticate validates the bearer token and adds the principal's email to
// the request context for authorized requests.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		principal, err := m.verifier.Verify(r.Context(), parts[1])
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
				return
			}
			slog.Error("failed to verify token", "error", redact.Error(err))
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			return
		}

		ctx := context.WithValue(r.Context(), shared.PrincipalContextKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetPrincipal extracts the authenticated principal's email from the request
// context. Returns false if the request was not authenticated.
func GetPrincipal(r *http.Request) (string, bool) {
	principal, ok := r.Context().Value(shared.PrincipalContextKey).(string)
	return principal, ok
}
