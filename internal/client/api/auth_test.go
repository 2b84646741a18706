package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgapi "github.com/iudanet/marketdash/pkg/api"
)

func authPayload() map[string]any {
	return map[string]any{
		"success": true,
		"data": map[string]any{
			"user": map[string]any{
				"id":       "user-1",
				"email":    "alice@example.com",
				"username": "alice",
				"role":     "USER",
			},
			"tokens": map[string]any{
				"accessToken":  "access-1",
				"authToken":    "auth-1",
				"refreshToken": "refresh-1",
			},
		},
	}
}

// TestClient_Login проверяет успешный вход и сохранение токенов
func TestClient_Login(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)

		var req pkgapi.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice", req.EmailOrUsername)
		assert.Equal(t, "secret123", req.Password)
		assert.True(t, req.RememberMe)

		writeJSON(t, w, http.StatusOK, authPayload())
	}))
	defer server.Close()

	store := newTokenStoreMock("")
	client := NewClient(server.URL, store, nil)

	res := client.Login(context.Background(), pkgapi.LoginRequest{
		EmailOrUsername: "alice",
		Password:        "secret123",
		RememberMe:      true,
	})

	require.True(t, res.Success)
	require.NotNil(t, res.Data.User)
	assert.Equal(t, "alice", res.Data.User.Username)

	calls := store.SetCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "access-1", calls[0].Tokens.AccessToken)
	assert.Equal(t, "auth-1", calls[0].Tokens.AuthToken)
	assert.Equal(t, "refresh-1", calls[0].Tokens.RefreshToken)
}

// TestClient_LoginInvalidCredentials проверяет, что при ошибке токены не сохраняются
func TestClient_LoginInvalidCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]any{
			"success": false,
			"error":   "Invalid credentials",
			"code":    pkgapi.CodeInvalidCredentials,
		})
	}))
	defer server.Close()

	store := newTokenStoreMock("")
	client := NewClient(server.URL, store, nil)

	res := client.Login(context.Background(), pkgapi.LoginRequest{EmailOrUsername: "alice", Password: "wrong"})

	assert.False(t, res.Success)
	assert.Equal(t, "Invalid credentials", res.Error)
	assert.Equal(t, KindUnauthorized, res.Kind)
	assert.Empty(t, store.SetCalls())
}

// TestClient_LoginStoreError проверяет, что ошибка хранилища не ломает результат
func TestClient_LoginStoreError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, authPayload())
	}))
	defer server.Close()

	store := newTokenStoreMock("")
	store.SetFunc = func(ctx context.Context, tokens pkgapi.AuthTokens) error {
		return errors.New("disk full")
	}
	client := NewClient(server.URL, store, nil)

	res := client.Login(context.Background(), pkgapi.LoginRequest{EmailOrUsername: "alice", Password: "secret123"})

	assert.True(t, res.Success)
	assert.Len(t, store.SetCalls(), 1)
}

// TestClient_Register проверяет регистрацию
func TestClient_Register(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/register", r.URL.Path)

		var req pkgapi.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice@example.com", req.Email)
		assert.Equal(t, "alice", req.Username)
		require.NotNil(t, req.FirstName)
		assert.Equal(t, "Alice", *req.FirstName)

		writeJSON(t, w, http.StatusCreated, authPayload())
	}))
	defer server.Close()

	store := newTokenStoreMock("")
	client := NewClient(server.URL, store, nil)

	firstName := "Alice"
	res := client.Register(context.Background(), pkgapi.RegisterRequest{
		Email:     "alice@example.com",
		Username:  "alice",
		Password:  "secret123",
		FirstName: &firstName,
	})

	require.True(t, res.Success)
	assert.Equal(t, http.StatusCreated, res.Status)
	assert.Len(t, store.SetCalls(), 1)
}

// TestClient_Logout проверяет, что локальные токены удаляются при любом ответе сервера
func TestClient_Logout(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		wantSuccess bool
	}{
		{name: "server accepted", status: http.StatusOK, wantSuccess: true},
		{name: "server failed", status: http.StatusInternalServerError, wantSuccess: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/api/auth/logout", r.URL.Path)
				writeJSON(t, w, tt.status, map[string]any{"success": tt.wantSuccess})
			}))
			defer server.Close()

			store := newTokenStoreMock("")
			client := NewClient(server.URL, store, nil)

			res := client.Logout(context.Background())

			assert.Equal(t, tt.wantSuccess, res.Success)
			assert.Len(t, store.ClearAllCalls(), 1)
		})
	}
}

// TestClient_LogoutNetworkError проверяет очистку токенов при недоступном сервере
func TestClient_LogoutNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	store := newTokenStoreMock("")
	client := NewClient(url, store, nil)

	res := client.Logout(context.Background())

	assert.False(t, res.Success)
	assert.Equal(t, KindNetwork, res.Kind)
	assert.Len(t, store.ClearAllCalls(), 1)
}

// TestClient_RefreshToken проверяет обновление токенов
func TestClient_RefreshToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/refresh", r.URL.Path)
		assert.Equal(t, "refresh-token=refresh-0", r.Header.Get("Cookie"))
		writeJSON(t, w, http.StatusOK, authPayload())
	}))
	defer server.Close()

	store := newTokenStoreMock("refresh-token=refresh-0")
	client := NewClient(server.URL, store, nil)

	res := client.RefreshToken(context.Background())

	require.True(t, res.Success)
	calls := store.SetCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "refresh-1", calls[0].Tokens.RefreshToken)
}

// TestClient_RefreshTokenWithoutTokens проверяет ответ без набора токенов
func TestClient_RefreshTokenWithoutTokens(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": true,
			"data":    map[string]any{"user": map[string]any{"id": "user-1"}},
		})
	}))
	defer server.Close()

	store := newTokenStoreMock("")
	client := NewClient(server.URL, store, nil)

	res := client.RefreshToken(context.Background())

	require.True(t, res.Success)
	assert.Empty(t, store.SetCalls())
}

// TestClient_PasswordReset проверяет запросы восстановления пароля
func TestClient_PasswordReset(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		switch r.URL.Path {
		case "/api/auth/forgot-password":
			assert.Equal(t, "alice@example.com", body["email"])
		case "/api/auth/reset-password":
			assert.Equal(t, "reset-1", body["token"])
			assert.Equal(t, "newpass123", body["password"])
		}
		writeJSON(t, w, http.StatusOK, map[string]any{"success": true})
	}))
	defer server.Close()

	client := NewClient(server.URL, newTokenStoreMock(""), nil)

	assert.True(t, client.ForgotPassword(context.Background(), "alice@example.com").Success)
	assert.True(t, client.ResetPassword(context.Background(), "reset-1", "newpass123").Success)
	assert.Equal(t, []string{"/api/auth/forgot-password", "/api/auth/reset-password"}, paths)
}
