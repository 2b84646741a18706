package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/marketdash/internal/models"
	"github.com/iudanet/marketdash/pkg/api"
)

func TestUsersHandler_List(t *testing.T) {
	users := newMockUserStorage()
	seedUser(t, users, "alice", models.RoleAdmin)
	seedUser(t, users, "bob", models.RoleUser)
	handler := NewUsersHandler(setupTestLogger(), users)

	req := httptest.NewRequest(http.MethodGet, "/api/users?page=2&limit=5&search=%20bo%20&role=user", nil)
	w := httptest.NewRecorder()
	handler.List(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "$2a$")

	env := decodeEnvelope[api.Page[models.User]](t, w)
	require.NotNil(t, env.Data)
	assert.Len(t, env.Data.Items, 2)
	assert.Equal(t, 2, env.Data.Total)
	assert.Equal(t, 2, env.Data.Page)
	assert.Equal(t, 5, env.Data.Limit)

	opts := users.lastListOptions
	assert.Equal(t, "bo", opts.Search)
	assert.Equal(t, 5, opts.Offset)
	assert.Equal(t, 5, opts.Limit)
	require.NotNil(t, opts.Role)
	assert.Equal(t, models.RoleUser, *opts.Role)
}

func TestUsersHandler_List_Defaults(t *testing.T) {
	users := newMockUserStorage()
	handler := NewUsersHandler(setupTestLogger(), users)

	w := httptest.NewRecorder()
	handler.List(w, httptest.NewRequest(http.MethodGet, "/api/users?limit=1000", nil))

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope[api.Page[models.User]](t, w)
	require.NotNil(t, env.Data)
	assert.NotNil(t, env.Data.Items)
	assert.Equal(t, 1, env.Data.Page)
	assert.Equal(t, MaxPageLimit, env.Data.Limit)
	assert.Equal(t, 0, users.lastListOptions.Offset)
	assert.Nil(t, users.lastListOptions.Role)
}

func TestUsersHandler_List_Errors(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		listError  error
		wantStatus int
		wantCode   string
	}{
		{"invalid page", "page=abc", nil, http.StatusBadRequest, api.CodeValidation},
		{"zero page", "page=0", nil, http.StatusBadRequest, api.CodeValidation},
		{"negative limit", "limit=-1", nil, http.StatusBadRequest, api.CodeValidation},
		{"unknown role", "role=OWNER", nil, http.StatusBadRequest, api.CodeValidation},
		{"storage error", "", errors.New("db locked"), http.StatusInternalServerError, api.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := newMockUserStorage()
			users.listError = tt.listError
			handler := NewUsersHandler(setupTestLogger(), users)

			w := httptest.NewRecorder()
			handler.List(w, httptest.NewRequest(http.MethodGet, "/api/users?"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, decodeEnvelope[struct{}](t, w).Code)
		})
	}
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestUsersHandler_Get(t *testing.T) {
	users := newMockUserStorage()
	bob := seedUser(t, users, "bob", models.RoleUser)
	handler := NewUsersHandler(setupTestLogger(), users)

	tests := []struct {
		name       string
		id         string
		getErr     error
		wantStatus int
		wantCode   string
	}{
		{"found", bob.ID, nil, http.StatusOK, ""},
		{"not found", "id-ghost", nil, http.StatusNotFound, api.CodeNotFound},
		{"storage error", bob.ID, errors.New("db locked"), http.StatusInternalServerError, api.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users.getUserError = tt.getErr
			req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/users/"+tt.id, nil), "id", tt.id)
			w := httptest.NewRecorder()
			handler.Get(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			env := decodeEnvelope[models.User](t, w)
			assert.Equal(t, tt.wantCode, env.Code)
			if tt.wantStatus == http.StatusOK {
				require.NotNil(t, env.Data)
				assert.Equal(t, "bob", env.Data.Username)
				assert.Empty(t, env.Data.PasswordHash)
			}
		})
	}
}
