package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/iudanet/marketdash/internal/models"
	"github.com/iudanet/marketdash/internal/server/storage"
	"github.com/iudanet/marketdash/pkg/api"
)

// Параметры пагинации списка пользователей
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// UsersHandler обрабатывает запросы к пользователям
type UsersHandler struct {
	logger      *slog.Logger
	userStorage storage.UserStorage
}

// NewUsersHandler создает новый handler пользователей
func NewUsersHandler(logger *slog.Logger, userStorage storage.UserStorage) *UsersHandler {
	return &UsersHandler{
		logger:      logger,
		userStorage: userStorage,
	}
}

// List обрабатывает GET /api/users
// Параметры: page, limit, search, role. Доступно только ADMIN.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	page, err := queryInt(q.Get("page"), 1)
	if err != nil || page < 1 {
		WriteError(w, http.StatusBadRequest, api.CodeValidation, "Invalid page")
		return
	}
	limit, err := queryInt(q.Get("limit"), DefaultPageLimit)
	if err != nil || limit < 1 {
		WriteError(w, http.StatusBadRequest, api.CodeValidation, "Invalid limit")
		return
	}
	limit = min(limit, MaxPageLimit)

	opts := storage.ListUsersOptions{
		Search: strings.TrimSpace(q.Get("search")),
		Offset: (page - 1) * limit,
		Limit:  limit,
	}
	if raw := q.Get("role"); raw != "" {
		role := models.Role(strings.ToUpper(raw))
		if !role.Valid() {
			WriteError(w, http.StatusBadRequest, api.CodeValidation, "Invalid role")
			return
		}
		opts.Role = &role
	}

	users, total, err := h.userStorage.ListUsers(ctx, opts)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list users", slog.Any("error", err))
		writeInternal(w)
		return
	}

	items := make([]models.User, 0, len(users))
	for _, u := range users {
		items = append(items, *u)
	}

	WriteData(w, http.StatusOK, &api.Page[models.User]{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	}, "")
}

// Get обрабатывает GET /api/users/{id}
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	user, err := h.userStorage.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			WriteError(w, http.StatusNotFound, api.CodeNotFound, "User not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.String("user_id", id), slog.Any("error", err))
		writeInternal(w)
		return
	}

	WriteData(w, http.StatusOK, user, "")
}

func queryInt(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
