package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/iudanet/marketdash/pkg/api"
)

// WriteData отправляет успешный ответ в формате envelope
func WriteData[T any](w http.ResponseWriter, status int, data *T, message string) {
	writeJSON(w, status, api.Envelope[T]{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// WriteError отправляет ответ с ошибкой в формате envelope
func WriteError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, api.Envelope[struct{}]{
		Success: false,
		Error:   message,
		Code:    code,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON читает тело запроса, неизвестные поля запрещены
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeInternal(w http.ResponseWriter) {
	WriteError(w, http.StatusInternalServerError, api.CodeInternal, "Internal server error")
}
