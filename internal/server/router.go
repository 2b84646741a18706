// Package server собирает HTTP API dev сервера: маршруты chi, middleware,
// запуск и корректную остановку.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iudanet/marketdash/internal/models"
	"github.com/iudanet/marketdash/internal/server/handlers"
	"github.com/iudanet/marketdash/internal/server/middleware"
	"github.com/iudanet/marketdash/internal/server/storage"
	"github.com/iudanet/marketdash/pkg/api"
)

// HealthPath не попадает в журнал запросов
const HealthPath = "/api/health"

// Store - хранилище, необходимое API
type Store interface {
	storage.UserStorage
	storage.TokenStorage
	Ping(ctx context.Context) error
}

// RouterDeps - зависимости маршрутизатора
type RouterDeps struct {
	Logger      *slog.Logger
	Store       Store
	JWT         handlers.JWTConfig
	Cookies     handlers.CookiePolicy
	AuthLimiter *middleware.RateLimiter
	Version     string
	AuthOptions []handlers.AuthOption
}

// NewRouter создает маршрутизатор API
func NewRouter(deps RouterDeps) http.Handler {
	authHandler := handlers.NewAuthHandler(deps.Logger, deps.Store, deps.Store, deps.JWT, deps.Cookies, deps.AuthOptions...)
	usersHandler := handlers.NewUsersHandler(deps.Logger, deps.Store)
	healthHandler := handlers.NewHealthHandler(deps.Logger, deps.Store, deps.Version)

	requireAuth := middleware.AuthMiddleware(deps.Logger, deps.JWT)
	requireAdmin := middleware.RequireRole(deps.Logger, models.RoleAdmin)

	limit := func(next http.Handler) http.Handler { return next }
	if deps.AuthLimiter != nil {
		limit = deps.AuthLimiter.Middleware
	}

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.LoggingWithSkip(deps.Logger, []string{HealthPath}),
		middleware.RecoveryMiddleware(deps.Logger),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, http.StatusNotFound, api.CodeNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, http.StatusMethodNotAllowed, api.CodeValidation, "Method not allowed")
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Health)

		r.Route("/auth", func(r chi.Router) {
			r.With(limit).Post("/register", authHandler.Register)
			r.With(limit).Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Post("/refresh", authHandler.Refresh)
			r.With(requireAuth).Get("/me", authHandler.Me)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(requireAuth)
			r.With(requireAdmin).Get("/", usersHandler.List)
			r.Get("/{id}", usersHandler.Get)
		})
	})

	return r
}
