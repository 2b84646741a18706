package storage

import (
	"context"
	"time"
)

// FallbackStorage defines persistent key/value storage used as a fallback for
// cookies (the equivalent of browser local storage).
// Values are stored as-is, the storage performs no expiry checks.
type FallbackStorage interface {
	// Put stores value under key, replacing the previous value
	Put(ctx context.Context, key string, value []byte) error

	// Get returns the stored value
	// Returns ErrKeyNotFound if key doesn't exist
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes keys; missing keys are ignored
	Delete(ctx context.Context, keys ...string) error
}

// TokenKind определяет класс токена сессии
type TokenKind string

const (
	TokenAccess  TokenKind = "access"  // короткоживущий access token
	TokenAuth    TokenKind = "auth"    // вторичный auth token
	TokenRefresh TokenKind = "refresh" // refresh token
)

// TokenKinds перечисляет все классы токенов
var TokenKinds = []TokenKind{TokenAccess, TokenAuth, TokenRefresh}

// Ключи fallback хранилища, не относящиеся к токенам.
// Имена совпадают с ключами local storage веб-клиента.
const (
	KeyUserData        = "user_data"
	KeyIsAuthenticated = "isAuthenticated"
	KeyAuthTimestamp   = "_auth_timestamp"
)

// CookieName возвращает имя cookie, которое ожидает backend
func (k TokenKind) CookieName() string {
	return string(k) + "-token"
}

// FallbackKey возвращает ключ fallback хранилища
func (k TokenKind) FallbackKey() string {
	return string(k) + "_token"
}

// MaxAge возвращает время жизни cookie для класса токена
func (k TokenKind) MaxAge() time.Duration {
	switch k {
	case TokenAccess:
		return 15 * time.Minute
	case TokenAuth:
		return 24 * time.Hour
	case TokenRefresh:
		return 7 * 24 * time.Hour
	}
	return 0
}

// SessionKeys возвращает все ключи fallback хранилища, которые относятся к сессии
func SessionKeys() []string {
	keys := make([]string, 0, len(TokenKinds)+3)
	for _, k := range TokenKinds {
		keys = append(keys, k.FallbackKey())
	}
	return append(keys, KeyUserData, KeyIsAuthenticated, KeyAuthTimestamp)
}
