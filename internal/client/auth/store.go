package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/net/publicsuffix"

	"github.com/iudanet/marketdash/internal/client/storage"
	"github.com/iudanet/marketdash/internal/models"
	pkgapi "github.com/iudanet/marketdash/pkg/api"
)

// headerOrder - порядок токенов в заголовке Cookie
var headerOrder = []storage.TokenKind{storage.TokenAuth, storage.TokenAccess, storage.TokenRefresh}

// TokenStore хранит токены сессии в cookie jar и дублирует их в fallback хранилище.
// Jar повторяет поведение cookie браузера, fallback - local storage.
type TokenStore struct {
	jar      *cookiejar.Jar
	fallback storage.FallbackStorage
	logger   *slog.Logger
	baseURL  *url.URL
	now      func() time.Time
	sameSite http.SameSite
	secure   bool
}

// NewTokenStore создает хранилище токенов для сервера baseURL.
// В production cookie помечаются Secure и SameSite=None.
func NewTokenStore(baseURL string, production bool, fallback storage.FallbackStorage, logger *slog.Logger) (*TokenStore, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host are required", baseURL)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	sameSite := http.SameSiteLaxMode
	if production {
		sameSite = http.SameSiteNoneMode
	}

	return &TokenStore{
		jar:      jar,
		fallback: fallback,
		logger:   logger,
		baseURL:  &url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"},
		now:      time.Now,
		sameSite: sameSite,
		secure:   production,
	}, nil
}

// Set сохраняет каждый непустой токен набора в cookie и в fallback хранилище
func (s *TokenStore) Set(ctx context.Context, tokens pkgapi.AuthTokens) error {
	values := map[storage.TokenKind]string{
		storage.TokenAccess:  tokens.AccessToken,
		storage.TokenAuth:    tokens.AuthToken,
		storage.TokenRefresh: tokens.RefreshToken,
	}

	var cookies []*http.Cookie
	var errs []error
	for _, kind := range storage.TokenKinds {
		value := values[kind]
		if value == "" {
			continue
		}
		cookies = append(cookies, s.cookie(kind, value, int(kind.MaxAge().Seconds())))

		if s.fallback != nil {
			if err := s.fallback.Put(ctx, kind.FallbackKey(), []byte(value)); err != nil {
				errs = append(errs, fmt.Errorf("failed to save %s token: %w", kind, err))
			}
		}
	}
	s.jar.SetCookies(s.baseURL, cookies)

	return errors.Join(errs...)
}

// Get возвращает токен: сначала из cookie, затем из fallback хранилища.
// Возвращает storage.ErrTokenNotFound, если токена нет нигде.
func (s *TokenStore) Get(ctx context.Context, kind storage.TokenKind) (string, error) {
	if value := s.cookieValue(kind); value != "" {
		return value, nil
	}

	if s.fallback == nil {
		return "", storage.ErrTokenNotFound
	}

	value, err := s.fallback.Get(ctx, kind.FallbackKey())
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return "", storage.ErrTokenNotFound
		}
		return "", fmt.Errorf("failed to read %s token: %w", kind, err)
	}
	if len(value) == 0 {
		return "", storage.ErrTokenNotFound
	}
	return string(value), nil
}

// ClearAll удаляет все cookie сессии и все ключи сессии из fallback хранилища.
// Повторный вызов безопасен.
func (s *TokenStore) ClearAll(ctx context.Context) error {
	cookies := make([]*http.Cookie, 0, len(storage.TokenKinds))
	for _, kind := range storage.TokenKinds {
		cookies = append(cookies, s.cookie(kind, "", -1))
	}
	s.jar.SetCookies(s.baseURL, cookies)

	if s.fallback == nil {
		return nil
	}
	if err := s.fallback.Delete(ctx, storage.SessionKeys()...); err != nil {
		return fmt.Errorf("failed to clear session data: %w", err)
	}
	return nil
}

// CookieHeader собирает значение заголовка Cookie из текущих токенов
func (s *TokenStore) CookieHeader(ctx context.Context) string {
	parts := make([]string, 0, len(headerOrder))
	for _, kind := range headerOrder {
		value, err := s.Get(ctx, kind)
		if err != nil {
			if !errors.Is(err, storage.ErrTokenNotFound) {
				s.logger.DebugContext(ctx, "failed to read token", "kind", string(kind), "error", err)
			}
			continue
		}
		parts = append(parts, kind.CookieName()+"="+value)
	}
	return strings.Join(parts, "; ")
}

// RememberCookies сохраняет cookie токенов из ответа сервера, включая удаление
func (s *TokenStore) RememberCookies(cookies []*http.Cookie) {
	names := make([]string, 0, len(storage.TokenKinds))
	for _, kind := range storage.TokenKinds {
		names = append(names, kind.CookieName())
	}

	filtered := make([]*http.Cookie, 0, len(cookies))
	for _, c := range cookies {
		if slices.Contains(names, c.Name) {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) > 0 {
		s.jar.SetCookies(s.baseURL, filtered)
	}
}

// SaveUser сохраняет снимок последнего аутентифицированного пользователя
func (s *TokenStore) SaveUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return fmt.Errorf("user is nil")
	}
	if s.fallback == nil {
		return nil
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	if err := s.fallback.Put(ctx, storage.KeyUserData, data); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	if err := s.fallback.Put(ctx, storage.KeyIsAuthenticated, []byte("true")); err != nil {
		return fmt.Errorf("failed to save auth flag: %w", err)
	}
	ts := strconv.FormatInt(s.now().UnixMilli(), 10)
	if err := s.fallback.Put(ctx, storage.KeyAuthTimestamp, []byte(ts)); err != nil {
		return fmt.Errorf("failed to save auth timestamp: %w", err)
	}
	return nil
}

// LoadUser возвращает сохраненный снимок пользователя и время его сохранения
func (s *TokenStore) LoadUser(ctx context.Context) (*models.User, time.Time, error) {
	if s.fallback == nil {
		return nil, time.Time{}, storage.ErrUserNotFound
	}

	data, err := s.fallback.Get(ctx, storage.KeyUserData)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil, time.Time{}, storage.ErrUserNotFound
		}
		return nil, time.Time{}, fmt.Errorf("failed to read user: %w", err)
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	// Время сохранения носит информационный характер
	var savedAt time.Time
	if raw, err := s.fallback.Get(ctx, storage.KeyAuthTimestamp); err == nil {
		if ms, err := strconv.ParseInt(string(raw), 10, 64); err == nil {
			savedAt = time.UnixMilli(ms)
		}
	}
	return &user, savedAt, nil
}

// TokenExpiry читает claim exp из JWT без проверки подписи.
// Используется только для отображения состояния сессии.
func TokenExpiry(token string) (time.Time, bool) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

func (s *TokenStore) cookie(kind storage.TokenKind, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     kind.CookieName(),
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   s.secure,
		SameSite: s.sameSite,
	}
}

func (s *TokenStore) cookieValue(kind storage.TokenKind) string {
	name := kind.CookieName()
	for _, c := range s.jar.Cookies(s.baseURL) {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}
