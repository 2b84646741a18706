package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iudanet/marketdash/pkg/api"
)

func TestRecoveryMiddleware(t *testing.T) {
	t.Run("Normal request passes through", func(t *testing.T) {
		handler := RecoveryMiddleware(setupTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("success"))
		}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "success", w.Body.String())
	})

	t.Run("Panic returns envelope and is logged", func(t *testing.T) {
		var logs bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&logs, nil))

		handler := RequestID(RecoveryMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("secret failure details")
		})))

		req := httptest.NewRequest(http.MethodGet, "/api/boom", nil)
		req.Header.Set(RequestIDHeader, "req-42")
		w := httptest.NewRecorder()

		assert.NotPanics(t, func() { handler.ServeHTTP(w, req) })

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "secret failure details")
		env := decodeError(t, w)
		assert.False(t, env.Success)
		assert.Equal(t, api.CodeInternal, env.Code)

		assert.Contains(t, logs.String(), "panic recovered")
		assert.Contains(t, logs.String(), "secret failure details")
		assert.Contains(t, logs.String(), `"request_id":"req-42"`)
		assert.Contains(t, logs.String(), `"path":"/api/boom"`)
	})

	t.Run("Panic with error value", func(t *testing.T) {
		handler := RecoveryMiddleware(setupTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var m map[string]int
			m["boom"] = 1
		}))

		w := httptest.NewRecorder()
		assert.NotPanics(t, func() { handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil)) })
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("ErrAbortHandler is re-panicked", func(t *testing.T) {
		handler := RecoveryMiddleware(setupTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic(http.ErrAbortHandler)
		}))

		assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		})
	})
}
