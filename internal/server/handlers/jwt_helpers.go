package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iudanet/marketdash/internal/models"
)

// Issuer - значение claim iss в токенах сессии
const Issuer = "marketdash"

// TokenType различает access и auth токены
type TokenType string

const (
	TokenTypeAccess TokenType = "access"
	TokenTypeAuth   TokenType = "auth"
)

var (
	// ErrTokenExpired возвращается для токена с истекшим сроком действия
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid возвращается для поддельного или поврежденного токена
	ErrTokenInvalid = errors.New("invalid token")
)

// CustomClaims представляет JWT claims для нашего приложения
type CustomClaims struct {
	UserID   string      `json:"userId"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	Type     TokenType   `json:"typ"`
	jwt.RegisteredClaims
}

// JWTConfig содержит конфигурацию для JWT
type JWTConfig struct {
	Secret          []byte
	AccessTokenTTL  time.Duration
	AuthTokenTTL    time.Duration
	RefreshTokenTTL time.Duration
}

// TTL возвращает время жизни токена типа typ
func (c JWTConfig) TTL(typ TokenType) time.Duration {
	if typ == TokenTypeAuth {
		return c.AuthTokenTTL
	}
	return c.AccessTokenTTL
}

// GenerateToken создает JWT токен сессии для пользователя
func GenerateToken(cfg JWTConfig, typ TokenType, user *models.User, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(cfg.TTL(typ))

	claims := CustomClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		Type:     typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(cfg.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// ValidateToken валидирует и парсит JWT токен сессии.
// Возвращает ErrTokenExpired или ErrTokenInvalid.
func ValidateToken(cfg JWTConfig, tokenString string) (*CustomClaims, error) {
	claims := &CustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return cfg.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if !token.Valid || claims.UserID == "" {
		return nil, ErrTokenInvalid
	}
	if claims.Type != TokenTypeAccess && claims.Type != TokenTypeAuth {
		return nil, fmt.Errorf("%w: unexpected token type %q", ErrTokenInvalid, claims.Type)
	}

	return claims, nil
}

type contextKey string

// ClaimsKey - ключ контекста с claims аутентифицированного пользователя
const ClaimsKey contextKey = "claims"

// WithClaims кладет claims в контекст
func WithClaims(ctx context.Context, claims *CustomClaims) context.Context {
	return context.WithValue(ctx, ClaimsKey, claims)
}

// ClaimsFromContext возвращает claims из контекста
func ClaimsFromContext(ctx context.Context) (*CustomClaims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*CustomClaims)
	return claims, ok && claims != nil
}
