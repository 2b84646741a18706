package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/marketdash/internal/models"
	"github.com/iudanet/marketdash/internal/server/handlers"
	"github.com/iudanet/marketdash/pkg/api"
)

// bearerToken извлекает токен из заголовка "Authorization: Bearer <token>"
func bearerToken(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// tokenCandidates возвращает токены запроса в порядке приоритета:
// cookie access-token, cookie auth-token, заголовок Authorization
func tokenCandidates(r *http.Request) []string {
	var tokens []string
	for _, name := range []string{handlers.CookieAccessToken, handlers.CookieAuthToken} {
		if c, err := r.Cookie(name); err == nil && c.Value != "" {
			tokens = append(tokens, c.Value)
		}
	}
	if t := bearerToken(r); t != "" {
		tokens = append(tokens, t)
	}
	return tokens
}

// AuthMiddleware создает middleware для проверки JWT токена.
// Первый валидный токен кладет claims в контекст запроса.
func AuthMiddleware(logger *slog.Logger, jwtConfig handlers.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			candidates := tokenCandidates(r)
			if len(candidates) == 0 {
				logger.DebugContext(ctx, "missing session token", "path", r.URL.Path)
				handlers.WriteError(w, http.StatusUnauthorized, api.CodeUnauthorized, "Authentication required")
				return
			}

			var lastErr error
			for _, token := range candidates {
				claims, err := handlers.ValidateToken(jwtConfig, token)
				if err != nil {
					lastErr = err
					continue
				}

				logger.DebugContext(ctx, "user authenticated", "user_id", claims.UserID, "username", claims.Username)
				next.ServeHTTP(w, r.WithContext(handlers.WithClaims(ctx, claims)))
				return
			}

			if errors.Is(lastErr, handlers.ErrTokenExpired) {
				logger.DebugContext(ctx, "session token expired")
				handlers.WriteError(w, http.StatusUnauthorized, api.CodeTokenExpired, "Token expired")
				return
			}
			logger.WarnContext(ctx, "invalid session token", "error", lastErr)
			handlers.WriteError(w, http.StatusUnauthorized, api.CodeInvalidToken, "Invalid token")
		})
	}
}

// RequireRole пропускает только пользователей с одной из ролей.
// Используется после AuthMiddleware.
func RequireRole(logger *slog.Logger, roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := handlers.ClaimsFromContext(r.Context())
			if !ok {
				handlers.WriteError(w, http.StatusUnauthorized, api.CodeUnauthorized, "Authentication required")
				return
			}

			user := &models.User{ID: claims.UserID, Role: claims.Role}
			if !user.HasRole(roles...) {
				logger.WarnContext(r.Context(), "access denied",
					"user_id", claims.UserID,
					"role", claims.Role,
					"path", r.URL.Path)
				handlers.WriteError(w, http.StatusForbidden, api.CodeForbidden, "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
