package api

import (
	"time"

	"github.com/iudanet/marketdash/internal/models"
)

// Envelope представляет общий формат ответа сервера
// Успешный ответ несет полезную нагрузку в Data, ошибочный - Error и Code
type Envelope[T any] struct {
	Data    *T     `json:"data,omitempty"`    // полезная нагрузка
	Success bool   `json:"success"`           // признак успеха
	Message string `json:"message,omitempty"` // сообщение для пользователя
	Error   string `json:"error,omitempty"`   // описание ошибки
	Code    string `json:"code,omitempty"`    // машиночитаемый код ошибки
}

// Коды ошибок, которые возвращает сервер
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeForbidden          = "FORBIDDEN"
	CodeUserExists         = "USER_EXISTS"
	CodeNotFound           = "NOT_FOUND"
	CodeRateLimited        = "RATE_LIMITED"
	CodeInternal           = "INTERNAL_ERROR"
)

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	EmailOrUsername string `json:"emailOrUsername"` // email или username
	Password        string `json:"password"`        // пароль
	RememberMe      bool   `json:"rememberMe"`      // длинная сессия
}

// RegisterRequest представляет запрос на регистрацию нового пользователя
type RegisterRequest struct {
	FirstName     *string `json:"firstName,omitempty"`
	LastName      *string `json:"lastName,omitempty"`
	WalletAddress *string `json:"walletAddress,omitempty"`
	Bio           *string `json:"bio,omitempty"`
	Email         string  `json:"email"`
	Username      string  `json:"username"`
	Password      string  `json:"password"`
}

// AuthTokens представляет набор токенов сессии
type AuthTokens struct {
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"` // срок действия access token
	AccessToken  string     `json:"accessToken"`         // короткоживущий токен (15 минут)
	RefreshToken string     `json:"refreshToken"`        // токен обновления (7 дней)
	AuthToken    string     `json:"authToken,omitempty"` // вторичный токен (24 часа)
}

// AuthPayload представляет ответ login/register/refresh
type AuthPayload struct {
	User   *models.User `json:"user"`
	Tokens *AuthTokens  `json:"tokens,omitempty"`
}

// MePayload представляет ответ GET /api/auth/me
type MePayload struct {
	User *models.User `json:"user"`
}

// ForgotPasswordRequest представляет запрос на сброс пароля
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest представляет запрос на установку нового пароля
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}
