package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iudanet/marketdash/internal/crypto"
	"github.com/iudanet/marketdash/internal/models"
	"github.com/iudanet/marketdash/internal/server/storage"
	"github.com/iudanet/marketdash/pkg/api"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockUserStorage is a mock implementation of UserStorage for testing
type mockUserStorage struct {
	users           map[string]*models.User // id -> User
	createError     error
	getUserError    error
	listError       error
	lastListOptions storage.ListUsersOptions
	lastLogins      map[string]time.Time
}

func newMockUserStorage() *mockUserStorage {
	return &mockUserStorage{
		users:      make(map[string]*models.User),
		lastLogins: make(map[string]time.Time),
	}
}

func (m *mockUserStorage) CreateUser(ctx context.Context, user *models.User) error {
	if m.createError != nil {
		return m.createError
	}
	for _, u := range m.users {
		if strings.EqualFold(u.Email, user.Email) || strings.EqualFold(u.Username, user.Username) {
			return storage.ErrUserAlreadyExists
		}
	}
	m.users[user.ID] = user.Clone()
	return nil
}

func (m *mockUserStorage) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	if m.getUserError != nil {
		return nil, m.getUserError
	}
	for _, u := range m.users {
		if strings.EqualFold(u.Email, login) || strings.EqualFold(u.Username, login) {
			return u.Clone(), nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if m.getUserError != nil {
		return nil, m.getUserError
	}
	u, ok := m.users[id]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return u.Clone(), nil
}

func (m *mockUserStorage) ListUsers(ctx context.Context, opts storage.ListUsersOptions) ([]*models.User, int, error) {
	m.lastListOptions = opts
	if m.listError != nil {
		return nil, 0, m.listError
	}
	result := make([]*models.User, 0, len(m.users))
	for _, u := range m.users {
		result = append(result, u.Clone())
	}
	return result, len(result), nil
}

func (m *mockUserStorage) UpdateLastLogin(ctx context.Context, userID string, loginTime time.Time) error {
	m.lastLogins[userID] = loginTime
	return nil
}

// mockTokenStorage is a mock implementation of TokenStorage for testing
type mockTokenStorage struct {
	tokens        map[string]*models.RefreshToken // hash -> RefreshToken
	saveError     error
	getError      error
	deleteError   error
	deletedTokens []string
}

func newMockTokenStorage() *mockTokenStorage {
	return &mockTokenStorage{tokens: make(map[string]*models.RefreshToken)}
}

func (m *mockTokenStorage) SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	if m.saveError != nil {
		return m.saveError
	}
	m.tokens[token.Token] = token
	return nil
}

func (m *mockTokenStorage) GetRefreshToken(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	rt, ok := m.tokens[tokenHash]
	if !ok {
		return nil, storage.ErrTokenNotFound
	}
	return rt, nil
}

func (m *mockTokenStorage) DeleteRefreshToken(ctx context.Context, tokenHash string) error {
	if m.deleteError != nil {
		return m.deleteError
	}
	if _, ok := m.tokens[tokenHash]; !ok {
		return storage.ErrTokenNotFound
	}
	delete(m.tokens, tokenHash)
	m.deletedTokens = append(m.deletedTokens, tokenHash)
	return nil
}

func (m *mockTokenStorage) DeleteUserTokens(ctx context.Context, userID string) (int, error) {
	count := 0
	for hash, rt := range m.tokens {
		if rt.UserID == userID {
			delete(m.tokens, hash)
			count++
		}
	}
	return count, nil
}

func (m *mockTokenStorage) DeleteExpiredTokens(ctx context.Context) (int, error) {
	return 0, nil
}

var testJWTConfig = JWTConfig{
	Secret:          []byte("test-secret"),
	AccessTokenTTL:  15 * time.Minute,
	AuthTokenTTL:    24 * time.Hour,
	RefreshTokenTTL: 7 * 24 * time.Hour,
}

const testPassword = "password123"

func newTestAuthHandler() (*AuthHandler, *mockUserStorage, *mockTokenStorage) {
	users := newMockUserStorage()
	tokens := newMockTokenStorage()
	h := NewAuthHandler(setupTestLogger(), users, tokens, testJWTConfig, CookiePolicy{},
		WithPasswordCost(bcrypt.MinCost))
	return h, users, tokens
}

func seedUser(t *testing.T, users *mockUserStorage, username string, role models.Role) *models.User {
	t.Helper()
	hash, err := crypto.HashPasswordCost(testPassword, bcrypt.MinCost)
	require.NoError(t, err)
	now := time.Now()
	user := &models.User{
		ID:           "id-" + username,
		Email:        username + "@example.com",
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, users.CreateUser(context.Background(), user))
	return user
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(body)
}

func decodeEnvelope[T any](t *testing.T, w *httptest.ResponseRecorder) api.Envelope[T] {
	t.Helper()
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var env api.Envelope[T]
	require.NoError(t, json.NewDecoder(w.Body).Decode(&env))
	return env
}

func responseCookies(w *httptest.ResponseRecorder) map[string]*http.Cookie {
	cookies := make(map[string]*http.Cookie)
	for _, c := range w.Result().Cookies() {
		cookies[c.Name] = c
	}
	return cookies
}

func TestAuthHandler_Register_Success(t *testing.T) {
	handler, users, tokens := newTestAuthHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", jsonBody(t, api.RegisterRequest{
		Email:    "alice@example.com",
		Username: "alice",
		Password: testPassword,
	}))
	w := httptest.NewRecorder()
	handler.Register(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "$2a$")

	env := decodeEnvelope[api.AuthPayload](t, w)
	assert.True(t, env.Success)
	require.NotNil(t, env.Data)
	require.NotNil(t, env.Data.User)
	assert.Equal(t, "alice", env.Data.User.Username)
	assert.Equal(t, models.RoleUser, env.Data.User.Role)
	assert.True(t, env.Data.User.IsActive)
	require.NotNil(t, env.Data.Tokens)
	assert.NotEmpty(t, env.Data.Tokens.AccessToken)
	assert.NotEmpty(t, env.Data.Tokens.AuthToken)
	assert.NotEmpty(t, env.Data.Tokens.RefreshToken)

	stored, err := users.GetUserByLogin(context.Background(), "alice")
	require.NoError(t, err)
	assert.NoError(t, crypto.VerifyPassword(testPassword, stored.PasswordHash))

	// В хранилище лежит только хеш refresh токена
	_, ok := tokens.tokens[crypto.HashToken(env.Data.Tokens.RefreshToken)]
	assert.True(t, ok)
	_, ok = tokens.tokens[env.Data.Tokens.RefreshToken]
	assert.False(t, ok)

	cookies := responseCookies(w)
	for _, name := range []string{CookieAccessToken, CookieAuthToken, CookieRefreshToken} {
		c, ok := cookies[name]
		require.True(t, ok, name)
		assert.True(t, c.HttpOnly, name)
		assert.Equal(t, "/", c.Path, name)
		assert.Equal(t, http.SameSiteLaxMode, c.SameSite, name)
	}
	assert.Equal(t, env.Data.Tokens.AccessToken, cookies[CookieAccessToken].Value)
	assert.Equal(t, env.Data.Tokens.RefreshToken, cookies[CookieRefreshToken].Value)
}

func TestAuthHandler_Register_SecureCookies(t *testing.T) {
	h := NewAuthHandler(setupTestLogger(), newMockUserStorage(), newMockTokenStorage(), testJWTConfig,
		CookiePolicy{Secure: true}, WithPasswordCost(bcrypt.MinCost))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", jsonBody(t, api.RegisterRequest{
		Email:    "alice@example.com",
		Username: "alice",
		Password: testPassword,
	}))
	w := httptest.NewRecorder()
	h.Register(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	c := responseCookies(w)[CookieAccessToken]
	require.NotNil(t, c)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteNoneMode, c.SameSite)
}

func TestAuthHandler_Register_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(users *mockUserStorage, t *testing.T)
		wantStatus int
		wantCode   string
	}{
		{
			name:       "invalid json",
			body:       "invalid json",
			wantStatus: http.StatusBadRequest,
			wantCode:   api.CodeValidation,
		},
		{
			name:       "unknown field",
			body:       `{"email":"a@example.com","username":"alice","password":"password123","admin":true}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   api.CodeValidation,
		},
		{
			name:       "invalid email",
			body:       `{"email":"not-an-email","username":"alice","password":"password123"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   api.CodeValidation,
		},
		{
			name:       "short password",
			body:       `{"email":"a@example.com","username":"alice","password":"short"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   api.CodeValidation,
		},
		{
			name:       "invalid username",
			body:       `{"email":"a@example.com","username":"al ice","password":"password123"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   api.CodeValidation,
		},
		{
			name: "duplicate username",
			body: `{"email":"other@example.com","username":"alice","password":"password123"}`,
			setup: func(users *mockUserStorage, t *testing.T) {
				seedUser(t, users, "alice", models.RoleUser)
			},
			wantStatus: http.StatusConflict,
			wantCode:   api.CodeUserExists,
		},
		{
			name: "storage error",
			body: `{"email":"a@example.com","username":"alice","password":"password123"}`,
			setup: func(users *mockUserStorage, t *testing.T) {
				users.createError = errors.New("disk full")
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   api.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, users, tokens := newTestAuthHandler()
			if tt.setup != nil {
				tt.setup(users, t)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			handler.Register(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			env := decodeEnvelope[struct{}](t, w)
			assert.False(t, env.Success)
			assert.Equal(t, tt.wantCode, env.Code)
			assert.NotEmpty(t, env.Error)
			assert.Empty(t, tokens.tokens)
			assert.Empty(t, w.Result().Cookies())
		})
	}
}

func TestAuthHandler_Register_ValidationMessage(t *testing.T) {
	handler, _, _ := newTestAuthHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"email":"a@example.com","username":"alice","password":"short"}`))
	w := httptest.NewRecorder()
	handler.Register(w, req)

	env := decodeEnvelope[struct{}](t, w)
	assert.Equal(t, "password must be at least 8 characters long", env.Error)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	tests := []struct {
		name  string
		login string
	}{
		{"by username", "bob"},
		{"by email", "bob@example.com"},
		{"by email case insensitive", "BOB@example.com"},
		{"with spaces", "  bob  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, users, tokens := newTestAuthHandler()
			user := seedUser(t, users, "bob", models.RoleUser)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", jsonBody(t, api.LoginRequest{
				EmailOrUsername: tt.login,
				Password:        testPassword,
			}))
			w := httptest.NewRecorder()
			handler.Login(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			env := decodeEnvelope[api.AuthPayload](t, w)
			assert.True(t, env.Success)
			require.NotNil(t, env.Data.User)
			assert.Equal(t, user.ID, env.Data.User.ID)
			assert.NotNil(t, env.Data.User.LastLoginAt)
			assert.Contains(t, users.lastLogins, user.ID)
			assert.Len(t, tokens.tokens, 1)
		})
	}
}

func TestAuthHandler_Login_RememberMe(t *testing.T) {
	tests := []struct {
		name       string
		rememberMe bool
		wantTTL    time.Duration
	}{
		{"remember me", true, testJWTConfig.RefreshTokenTTL},
		{"session only", false, testJWTConfig.AuthTokenTTL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
			users := newMockUserStorage()
			tokens := newMockTokenStorage()
			handler := NewAuthHandler(setupTestLogger(), users, tokens, testJWTConfig, CookiePolicy{},
				WithPasswordCost(bcrypt.MinCost), WithClock(func() time.Time { return now }))
			seedUser(t, users, "bob", models.RoleUser)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", jsonBody(t, api.LoginRequest{
				EmailOrUsername: "bob",
				Password:        testPassword,
				RememberMe:      tt.rememberMe,
			}))
			w := httptest.NewRecorder()
			handler.Login(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			require.Len(t, tokens.tokens, 1)
			for _, rt := range tokens.tokens {
				assert.Equal(t, now.Add(tt.wantTTL), rt.ExpiresAt)
				assert.Equal(t, now, rt.CreatedAt)
			}
			assert.Equal(t, int(tt.wantTTL.Seconds()), responseCookies(w)[CookieRefreshToken].MaxAge)
		})
	}
}

func TestAuthHandler_Login_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(user *models.User, users *mockUserStorage)
		wantStatus int
		wantCode   string
	}{
		{
			name:       "invalid json",
			body:       "{",
			wantStatus: http.StatusBadRequest,
			wantCode:   api.CodeValidation,
		},
		{
			name:       "empty login",
			body:       `{"emailOrUsername":"  ","password":"password123"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   api.CodeValidation,
		},
		{
			name:       "empty password",
			body:       `{"emailOrUsername":"bob","password":""}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   api.CodeValidation,
		},
		{
			name:       "unknown user",
			body:       `{"emailOrUsername":"nobody","password":"password123"}`,
			wantStatus: http.StatusUnauthorized,
			wantCode:   api.CodeInvalidCredentials,
		},
		{
			name:       "wrong password",
			body:       `{"emailOrUsername":"bob","password":"wrongpassword"}`,
			wantStatus: http.StatusUnauthorized,
			wantCode:   api.CodeInvalidCredentials,
		},
		{
			name: "suspended account",
			body: `{"emailOrUsername":"bob","password":"password123"}`,
			setup: func(user *models.User, users *mockUserStorage) {
				users.users[user.ID].IsSuspended = true
			},
			wantStatus: http.StatusForbidden,
			wantCode:   api.CodeForbidden,
		},
		{
			name: "inactive account",
			body: `{"emailOrUsername":"bob","password":"password123"}`,
			setup: func(user *models.User, users *mockUserStorage) {
				users.users[user.ID].IsActive = false
			},
			wantStatus: http.StatusForbidden,
			wantCode:   api.CodeForbidden,
		},
		{
			name: "storage error",
			body: `{"emailOrUsername":"bob","password":"password123"}`,
			setup: func(_ *models.User, users *mockUserStorage) {
				users.getUserError = errors.New("db locked")
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   api.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, users, tokens := newTestAuthHandler()
			user := seedUser(t, users, "bob", models.RoleUser)
			if tt.setup != nil {
				tt.setup(user, users)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			handler.Login(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			env := decodeEnvelope[struct{}](t, w)
			assert.False(t, env.Success)
			assert.Equal(t, tt.wantCode, env.Code)
			assert.Empty(t, tokens.tokens)
		})
	}
}

func TestAuthHandler_Login_SameMessageForUnknownUserAndWrongPassword(t *testing.T) {
	handler, users, _ := newTestAuthHandler()
	seedUser(t, users, "bob", models.RoleUser)

	messages := make([]string, 0, 2)
	for _, body := range []string{
		`{"emailOrUsername":"nobody","password":"password123"}`,
		`{"emailOrUsername":"bob","password":"wrongpassword"}`,
	} {
		w := httptest.NewRecorder()
		handler.Login(w, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body)))
		messages = append(messages, decodeEnvelope[struct{}](t, w).Error)
	}

	assert.Equal(t, "Invalid credentials", messages[0])
	assert.Equal(t, messages[0], messages[1])
}

// login выполняет вход и возвращает ответ с cookie
func login(t *testing.T, handler *AuthHandler, username string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", jsonBody(t, api.LoginRequest{
		EmailOrUsername: username,
		Password:        testPassword,
		RememberMe:      true,
	}))
	w := httptest.NewRecorder()
	handler.Login(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w
}

func TestAuthHandler_Refresh_Rotates(t *testing.T) {
	handler, users, tokens := newTestAuthHandler()
	user := seedUser(t, users, "bob", models.RoleUser)

	oldRefresh := responseCookies(login(t, handler, "bob"))[CookieRefreshToken]
	require.NotNil(t, oldRefresh)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: CookieRefreshToken, Value: oldRefresh.Value})
	w := httptest.NewRecorder()
	handler.Refresh(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope[api.AuthPayload](t, w)
	require.NotNil(t, env.Data)
	assert.Equal(t, user.ID, env.Data.User.ID)
	require.NotNil(t, env.Data.Tokens)
	assert.NotEqual(t, oldRefresh.Value, env.Data.Tokens.RefreshToken)

	// Старый токен удален, новый сохранен
	assert.Contains(t, tokens.deletedTokens, crypto.HashToken(oldRefresh.Value))
	assert.Len(t, tokens.tokens, 1)
	_, ok := tokens.tokens[crypto.HashToken(env.Data.Tokens.RefreshToken)]
	assert.True(t, ok)

	// Повторное использование старого токена отклоняется
	req = httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: CookieRefreshToken, Value: oldRefresh.Value})
	w = httptest.NewRecorder()
	handler.Refresh(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, api.CodeInvalidToken, decodeEnvelope[struct{}](t, w).Code)
}

func TestAuthHandler_Refresh_FromBody(t *testing.T) {
	handler, users, _ := newTestAuthHandler()
	seedUser(t, users, "bob", models.RoleUser)

	refresh := responseCookies(login(t, handler, "bob"))[CookieRefreshToken].Value

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh",
		jsonBody(t, map[string]string{"refreshToken": refresh}))
	w := httptest.NewRecorder()
	handler.Refresh(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_Refresh_Errors(t *testing.T) {
	tests := []struct {
		name       string
		cookie     string
		setup      func(tokens *mockTokenStorage, users *mockUserStorage)
		wantStatus int
		wantCode   string
	}{
		{
			name:       "missing token",
			wantStatus: http.StatusUnauthorized,
			wantCode:   api.CodeUnauthorized,
		},
		{
			name:       "unknown token",
			cookie:     "unknown",
			wantStatus: http.StatusUnauthorized,
			wantCode:   api.CodeInvalidToken,
		},
		{
			name:   "expired token",
			cookie: "expired",
			setup: func(tokens *mockTokenStorage, _ *mockUserStorage) {
				tokens.tokens[crypto.HashToken("expired")] = &models.RefreshToken{
					Token:     crypto.HashToken("expired"),
					UserID:    "id-bob",
					CreatedAt: time.Now().Add(-48 * time.Hour),
					ExpiresAt: time.Now().Add(-time.Hour),
				}
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   api.CodeTokenExpired,
		},
		{
			name:   "user deleted",
			cookie: "orphan",
			setup: func(tokens *mockTokenStorage, _ *mockUserStorage) {
				tokens.tokens[crypto.HashToken("orphan")] = &models.RefreshToken{
					Token:     crypto.HashToken("orphan"),
					UserID:    "id-ghost",
					CreatedAt: time.Now(),
					ExpiresAt: time.Now().Add(time.Hour),
				}
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   api.CodeInvalidToken,
		},
		{
			name:   "storage error",
			cookie: "any",
			setup: func(tokens *mockTokenStorage, _ *mockUserStorage) {
				tokens.getError = errors.New("db locked")
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   api.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, users, tokens := newTestAuthHandler()
			seedUser(t, users, "bob", models.RoleUser)
			if tt.setup != nil {
				tt.setup(tokens, users)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: CookieRefreshToken, Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			handler.Refresh(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			env := decodeEnvelope[struct{}](t, w)
			assert.False(t, env.Success)
			assert.Equal(t, tt.wantCode, env.Code)
		})
	}
}

func TestAuthHandler_Refresh_ExpiredTokenIsDeleted(t *testing.T) {
	handler, users, tokens := newTestAuthHandler()
	seedUser(t, users, "bob", models.RoleUser)
	hash := crypto.HashToken("expired")
	tokens.tokens[hash] = &models.RefreshToken{
		Token:     hash,
		UserID:    "id-bob",
		CreatedAt: time.Now().Add(-48 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: CookieRefreshToken, Value: "expired"})
	w := httptest.NewRecorder()
	handler.Refresh(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotContains(t, tokens.tokens, hash)
}

func TestAuthHandler_Refresh_SuspendedUserLosesAllSessions(t *testing.T) {
	handler, users, tokens := newTestAuthHandler()
	user := seedUser(t, users, "bob", models.RoleUser)

	first := responseCookies(login(t, handler, "bob"))[CookieRefreshToken].Value
	login(t, handler, "bob")
	require.Len(t, tokens.tokens, 2)

	users.users[user.ID].IsSuspended = true

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: CookieRefreshToken, Value: first})
	w := httptest.NewRecorder()
	handler.Refresh(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, api.CodeForbidden, decodeEnvelope[struct{}](t, w).Code)
	assert.Empty(t, tokens.tokens)
}

func TestAuthHandler_Logout(t *testing.T) {
	handler, users, tokens := newTestAuthHandler()
	seedUser(t, users, "bob", models.RoleUser)

	refresh := responseCookies(login(t, handler, "bob"))[CookieRefreshToken].Value
	require.Len(t, tokens.tokens, 1)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: CookieRefreshToken, Value: refresh})
	w := httptest.NewRecorder()
	handler.Logout(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope[struct{}](t, w)
	assert.True(t, env.Success)
	assert.Empty(t, tokens.tokens)

	cookies := responseCookies(w)
	for _, name := range []string{CookieAccessToken, CookieAuthToken, CookieRefreshToken} {
		c, ok := cookies[name]
		require.True(t, ok, name)
		assert.Empty(t, c.Value, name)
		assert.Equal(t, -1, c.MaxAge, name)
	}
}

func TestAuthHandler_Logout_WithoutSession(t *testing.T) {
	handler, _, _ := newTestAuthHandler()

	w := httptest.NewRecorder()
	handler.Logout(w, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_Logout_StorageError(t *testing.T) {
	handler, _, tokens := newTestAuthHandler()
	tokens.deleteError = errors.New("db locked")

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: CookieRefreshToken, Value: "token"})
	w := httptest.NewRecorder()
	handler.Logout(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAuthHandler_Me(t *testing.T) {
	handler, users, _ := newTestAuthHandler()
	user := seedUser(t, users, "bob", models.RoleAdmin)

	tests := []struct {
		name       string
		claims     *CustomClaims
		wantStatus int
	}{
		{"authenticated", &CustomClaims{UserID: user.ID}, http.StatusOK},
		{"no claims", nil, http.StatusUnauthorized},
		{"deleted user", &CustomClaims{UserID: "id-ghost"}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.claims != nil {
				req = req.WithContext(WithClaims(req.Context(), tt.claims))
			}
			w := httptest.NewRecorder()
			handler.Me(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			env := decodeEnvelope[api.MePayload](t, w)
			if tt.wantStatus == http.StatusOK {
				require.NotNil(t, env.Data)
				assert.Equal(t, "bob", env.Data.User.Username)
				assert.Equal(t, models.RoleAdmin, env.Data.User.Role)
			} else {
				assert.Equal(t, api.CodeUnauthorized, env.Code)
			}
		})
	}
}

func TestAuthHandler_IssuedAccessTokenValidates(t *testing.T) {
	handler, users, _ := newTestAuthHandler()
	user := seedUser(t, users, "bob", models.RoleModerator)

	env := decodeEnvelope[api.AuthPayload](t, login(t, handler, "bob"))
	require.NotNil(t, env.Data.Tokens)

	claims, err := ValidateToken(testJWTConfig, env.Data.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, models.RoleModerator, claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.Type)

	claims, err = ValidateToken(testJWTConfig, env.Data.Tokens.AuthToken)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeAuth, claims.Type)
}
