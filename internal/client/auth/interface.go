package auth

import (
	"context"

	"github.com/iudanet/marketdash/internal/client/api"
	"github.com/iudanet/marketdash/internal/models"
	pkgapi "github.com/iudanet/marketdash/pkg/api"
)

//go:generate moq -out authapi_mock.go . AuthAPI
//go:generate moq -out credentials_mock.go . CredentialStore
//go:generate moq -out navigator_mock.go . Navigator

// AuthAPI определяет вызовы сервера, которые нужны менеджеру сессии.
// Реализуется *api.Client.
type AuthAPI interface {
	// Login выполняет вход и сохраняет токены
	Login(ctx context.Context, req pkgapi.LoginRequest) *api.Result[pkgapi.AuthPayload]

	// Register регистрирует пользователя и сохраняет токены
	Register(ctx context.Context, req pkgapi.RegisterRequest) *api.Result[pkgapi.AuthPayload]

	// Logout завершает сессию на сервере и удаляет локальные токены
	Logout(ctx context.Context) *api.Result[struct{}]

	// GetMe возвращает текущего пользователя
	GetMe(ctx context.Context) *api.Result[pkgapi.MePayload]

	// RefreshToken обновляет токены сессии
	RefreshToken(ctx context.Context) *api.Result[pkgapi.AuthPayload]
}

// CredentialStore определяет локальное хранилище данных сессии.
// Реализуется *TokenStore.
type CredentialStore interface {
	// ClearAll удаляет все токены и данные сессии
	ClearAll(ctx context.Context) error

	// SaveUser сохраняет снимок аутентифицированного пользователя
	SaveUser(ctx context.Context, user *models.User) error
}

// Navigator выполняет переход на маршрут приложения
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc позволяет использовать функцию как Navigator
type NavigatorFunc func(route string)

// Navigate вызывает f(route)
func (f NavigatorFunc) Navigate(route string) {
	f(route)
}

var (
	_ AuthAPI         = (*api.Client)(nil)
	_ CredentialStore = (*TokenStore)(nil)
)
