package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/marketdash/internal/crypto"
	"github.com/iudanet/marketdash/internal/models"
	"github.com/iudanet/marketdash/internal/server/storage"
	"github.com/iudanet/marketdash/internal/validation"
	"github.com/iudanet/marketdash/pkg/api"
)

// refreshRequest - необязательное тело POST /api/auth/refresh
type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// AuthHandler обрабатывает запросы авторизации
type AuthHandler struct {
	logger       *slog.Logger
	userStorage  storage.UserStorage
	tokenStorage storage.TokenStorage
	now          func() time.Time
	jwtConfig    JWTConfig
	cookies      CookiePolicy
	passwordCost int
}

// AuthOption настраивает AuthHandler
type AuthOption func(*AuthHandler)

// WithPasswordCost задает стоимость bcrypt
func WithPasswordCost(cost int) AuthOption {
	return func(h *AuthHandler) {
		h.passwordCost = cost
	}
}

// WithClock задает источник текущего времени
func WithClock(now func() time.Time) AuthOption {
	return func(h *AuthHandler) {
		h.now = now
	}
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, userStorage storage.UserStorage, tokenStorage storage.TokenStorage,
	jwtConfig JWTConfig, cookies CookiePolicy, opts ...AuthOption) *AuthHandler {
	h := &AuthHandler{
		logger:       logger,
		userStorage:  userStorage,
		tokenStorage: tokenStorage,
		now:          time.Now,
		jwtConfig:    jwtConfig,
		cookies:      cookies,
		passwordCost: crypto.PasswordCost,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register обрабатывает POST /api/auth/register
// Регистрация нового пользователя и открытие сессии
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode register request", slog.Any("error", err))
		WriteError(w, http.StatusBadRequest, api.CodeValidation, "Invalid request body")
		return
	}

	if err := validation.ValidateRegistration(req); err != nil {
		h.logger.WarnContext(ctx, "invalid registration", slog.String("username", req.Username), slog.Any("error", err))
		WriteError(w, http.StatusBadRequest, api.CodeValidation, validationMessage(err))
		return
	}

	hash, err := crypto.HashPasswordCost(req.Password, h.passwordCost)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		writeInternal(w)
		return
	}

	now := h.now()
	user := &models.User{
		ID:            uuid.New().String(),
		Email:         strings.TrimSpace(req.Email),
		Username:      req.Username,
		PasswordHash:  hash,
		Role:          models.RoleUser,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Bio:           req.Bio,
		WalletAddress: req.WalletAddress,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
		LastLoginAt:   &now,
	}

	if err := h.userStorage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			h.logger.WarnContext(ctx, "user already exists", slog.String("username", req.Username))
			WriteError(w, http.StatusConflict, api.CodeUserExists, "User with this email or username already exists")
			return
		}
		h.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
		writeInternal(w)
		return
	}

	tokens, err := h.openSession(w, r, user, h.jwtConfig.RefreshTokenTTL)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to open session", slog.Any("error", err))
		writeInternal(w)
		return
	}

	h.logger.InfoContext(ctx, "user registered successfully",
		slog.String("username", user.Username),
		slog.String("user_id", user.ID))

	WriteData(w, http.StatusCreated, &api.AuthPayload{User: user, Tokens: tokens}, "User registered successfully")
}

// Login обрабатывает POST /api/auth/login
// Аутентификация пользователя по email или username
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode login request", slog.Any("error", err))
		WriteError(w, http.StatusBadRequest, api.CodeValidation, "Invalid request body")
		return
	}

	if err := validation.ValidateLogin(req.EmailOrUsername, req.Password); err != nil {
		WriteError(w, http.StatusBadRequest, api.CodeValidation, validationMessage(err))
		return
	}

	login := strings.TrimSpace(req.EmailOrUsername)
	user, err := h.userStorage.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "login failed: user not found", slog.String("login", login))
			WriteError(w, http.StatusUnauthorized, api.CodeInvalidCredentials, "Invalid credentials")
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		writeInternal(w)
		return
	}

	if err := crypto.VerifyPassword(req.Password, user.PasswordHash); err != nil {
		h.logger.WarnContext(ctx, "login failed: invalid password", slog.String("user_id", user.ID))
		WriteError(w, http.StatusUnauthorized, api.CodeInvalidCredentials, "Invalid credentials")
		return
	}

	if !user.IsActive || user.IsSuspended {
		h.logger.WarnContext(ctx, "login rejected: account disabled", slog.String("user_id", user.ID))
		WriteError(w, http.StatusForbidden, api.CodeForbidden, "Account is disabled")
		return
	}

	// Без "запомнить меня" refresh token живет не дольше auth token
	refreshTTL := h.jwtConfig.RefreshTokenTTL
	if !req.RememberMe {
		refreshTTL = min(refreshTTL, h.jwtConfig.AuthTokenTTL)
	}

	now := h.now()
	user.LastLoginAt = &now
	if err := h.userStorage.UpdateLastLogin(ctx, user.ID, now); err != nil {
		// Не критичная ошибка, логируем но не прерываем
		h.logger.WarnContext(ctx, "failed to update last login", slog.Any("error", err))
	}

	tokens, err := h.openSession(w, r, user, refreshTTL)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to open session", slog.Any("error", err))
		writeInternal(w)
		return
	}

	h.logger.InfoContext(ctx, "user logged in successfully",
		slog.String("username", user.Username),
		slog.String("user_id", user.ID),
		slog.Bool("remember_me", req.RememberMe))

	WriteData(w, http.StatusOK, &api.AuthPayload{User: user, Tokens: tokens}, "Login successful")
}

// Refresh обрабатывает POST /api/auth/refresh
// Обновление токенов по refresh token из cookie или тела запроса.
// Старый refresh token удаляется (ротация).
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	refreshToken := cookieValue(r, CookieRefreshToken)
	if refreshToken == "" && r.ContentLength != 0 {
		var req refreshRequest
		if err := decodeJSON(r, &req); err == nil {
			refreshToken = req.RefreshToken
		}
	}
	if refreshToken == "" {
		WriteError(w, http.StatusUnauthorized, api.CodeUnauthorized, "Refresh token is required")
		return
	}

	tokenHash := crypto.HashToken(refreshToken)
	storedToken, err := h.tokenStorage.GetRefreshToken(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			h.logger.WarnContext(ctx, "refresh token not found")
			h.cookies.clear(w)
			WriteError(w, http.StatusUnauthorized, api.CodeInvalidToken, "Invalid refresh token")
			return
		}
		h.logger.ErrorContext(ctx, "failed to get refresh token", slog.Any("error", err))
		writeInternal(w)
		return
	}

	// Токен одноразовый: удаляем до выдачи нового
	if err := h.tokenStorage.DeleteRefreshToken(ctx, tokenHash); err != nil && !errors.Is(err, storage.ErrTokenNotFound) {
		h.logger.WarnContext(ctx, "failed to delete old refresh token", slog.Any("error", err))
	}

	now := h.now()
	if now.After(storedToken.ExpiresAt) {
		h.logger.WarnContext(ctx, "refresh token expired", slog.String("user_id", storedToken.UserID))
		h.cookies.clear(w)
		WriteError(w, http.StatusUnauthorized, api.CodeTokenExpired, "Refresh token expired")
		return
	}

	user, err := h.userStorage.GetUserByID(ctx, storedToken.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.cookies.clear(w)
			WriteError(w, http.StatusUnauthorized, api.CodeInvalidToken, "Invalid refresh token")
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		writeInternal(w)
		return
	}

	if !user.IsActive || user.IsSuspended {
		// Заблокированный пользователь теряет все сессии
		if n, err := h.tokenStorage.DeleteUserTokens(ctx, user.ID); err != nil {
			h.logger.WarnContext(ctx, "failed to revoke user sessions", slog.Any("error", err))
		} else {
			h.logger.InfoContext(ctx, "user sessions revoked", slog.String("user_id", user.ID), slog.Int("count", n))
		}
		h.cookies.clear(w)
		WriteError(w, http.StatusForbidden, api.CodeForbidden, "Account is disabled")
		return
	}

	// Новый refresh token наследует исходный срок жизни сессии
	refreshTTL := storedToken.ExpiresAt.Sub(storedToken.CreatedAt)
	if refreshTTL <= 0 {
		refreshTTL = h.jwtConfig.RefreshTokenTTL
	}

	tokens, err := h.openSession(w, r, user, refreshTTL)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to open session", slog.Any("error", err))
		writeInternal(w)
		return
	}

	h.logger.InfoContext(ctx, "tokens refreshed successfully", slog.String("user_id", user.ID))

	WriteData(w, http.StatusOK, &api.AuthPayload{User: user, Tokens: tokens}, "")
}

// Logout обрабатывает POST /api/auth/logout
// Удаляет refresh token текущей сессии и cookie. Не требует действующего access token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if refreshToken := cookieValue(r, CookieRefreshToken); refreshToken != "" {
		err := h.tokenStorage.DeleteRefreshToken(ctx, crypto.HashToken(refreshToken))
		if err != nil && !errors.Is(err, storage.ErrTokenNotFound) {
			h.logger.ErrorContext(ctx, "failed to delete refresh token", slog.Any("error", err))
			writeInternal(w)
			return
		}
	}

	h.cookies.clear(w)

	h.logger.InfoContext(ctx, "user logged out")

	WriteData[struct{}](w, http.StatusOK, nil, "Logged out successfully")
}

// Me обрабатывает GET /api/auth/me
// Возвращает текущего пользователя. Требует AuthMiddleware.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		WriteError(w, http.StatusUnauthorized, api.CodeUnauthorized, "Authentication required")
		return
	}

	user, err := h.userStorage.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			WriteError(w, http.StatusUnauthorized, api.CodeUnauthorized, "User no longer exists")
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		writeInternal(w)
		return
	}

	WriteData(w, http.StatusOK, &api.MePayload{User: user}, "")
}

// openSession выпускает access, auth и refresh токены, сохраняет хеш refresh
// токена и выставляет cookie сессии
func (h *AuthHandler) openSession(w http.ResponseWriter, r *http.Request, user *models.User, refreshTTL time.Duration) (*api.AuthTokens, error) {
	now := h.now()

	accessToken, accessExp, err := GenerateToken(h.jwtConfig, TokenTypeAccess, user, now)
	if err != nil {
		return nil, err
	}
	authToken, authExp, err := GenerateToken(h.jwtConfig, TokenTypeAuth, user, now)
	if err != nil {
		return nil, err
	}
	refreshToken, err := crypto.GenerateToken()
	if err != nil {
		return nil, err
	}

	refreshExp := now.Add(refreshTTL)
	if err := h.tokenStorage.SaveRefreshToken(r.Context(), &models.RefreshToken{
		Token:     crypto.HashToken(refreshToken),
		UserID:    user.ID,
		ExpiresAt: refreshExp,
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}

	h.cookies.set(w, CookieAccessToken, accessToken, accessExp, now)
	h.cookies.set(w, CookieAuthToken, authToken, authExp, now)
	h.cookies.set(w, CookieRefreshToken, refreshToken, refreshExp, now)

	return &api.AuthTokens{
		AccessToken:  accessToken,
		AuthToken:    authToken,
		RefreshToken: refreshToken,
		ExpiresAt:    &accessExp,
	}, nil
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

// validationMessage убирает префикс sentinel ошибки из сообщения
func validationMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 && errors.Is(err, validation.ErrInvalid) {
		return msg[i+2:]
	}
	return msg
}
