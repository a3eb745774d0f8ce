package handler

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/bagdasarian/sport-scribe/internal/domain"
	"github.com/bagdasarian/sport-scribe/internal/service"
)

const headerAPIKey = "X-API-Key"

type contextKey int

const (
	claimsKey contextKey = iota
	apiKeyKey
)

// ClaimsFromContext returns the session claims set by RequireAuth.
func ClaimsFromContext(ctx context.Context) (*service.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*service.Claims)
	return claims, ok
}

// APIKeyFromContext returns the key set by RequireAPIKey.
func APIKeyFromContext(ctx context.Context) (*domain.APIKey, bool) {
	key, ok := ctx.Value(apiKeyKey).(*domain.APIKey)
	return key, ok
}

// RequireAuth accepts requests carrying a valid bearer token.
func (h *Handler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			h.handleError(w, r, domain.ErrUnauthorized)
			return
		}

		claims, err := h.authService.ParseToken(token)
		if err != nil {
			h.handleError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole wraps next with RequireAuth and rejects roles below required.
func (h *Handler) RequireRole(required domain.Role, next http.Handler) http.Handler {
	return h.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := ClaimsFromContext(r.Context())
		if !claims.Role.Allows(required) {
			h.logger.Warn("insufficient role",
				zap.String("user_id", claims.Subject),
				zap.String("role", string(claims.Role)),
				zap.String("required", string(required)),
			)
			h.handleError(w, r, domain.ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// RequireAPIKey accepts requests carrying an active key in X-API-Key.
func (h *Handler) RequireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(headerAPIKey)
		if raw == "" {
			h.handleError(w, r, domain.ErrUnauthorized)
			return
		}

		key, err := h.authService.AuthenticateAPIKey(r.Context(), raw)
		if err != nil {
			h.handleError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), apiKeyKey, key)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
