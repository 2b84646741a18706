package api

import (
	"context"
	"net/http"

	pkgapi "github.com/iudanet/marketdash/pkg/api"
)

// Login выполняет аутентификацию пользователя и сохраняет полученные токены
func (c *Client) Login(ctx context.Context, req pkgapi.LoginRequest) *Result[pkgapi.AuthPayload] {
	res := Request[pkgapi.AuthPayload](ctx, c, "/api/auth/login", RequestOptions{
		Method: http.MethodPost,
		Body:   req,
	})
	c.storeTokens(ctx, res)
	return res
}

// Register регистрирует нового пользователя и сохраняет полученные токены
func (c *Client) Register(ctx context.Context, req pkgapi.RegisterRequest) *Result[pkgapi.AuthPayload] {
	res := Request[pkgapi.AuthPayload](ctx, c, "/api/auth/register", RequestOptions{
		Method: http.MethodPost,
		Body:   req,
	})
	c.storeTokens(ctx, res)
	return res
}

// Logout завершает сессию на сервере.
// Локальные токены удаляются независимо от ответа сервера.
func (c *Client) Logout(ctx context.Context) *Result[struct{}] {
	res := Request[struct{}](ctx, c, "/api/auth/logout", RequestOptions{
		Method: http.MethodPost,
	})

	if c.tokens != nil {
		if err := c.tokens.ClearAll(ctx); err != nil {
			c.logger.WarnContext(ctx, "failed to clear tokens", "error", err)
		}
	}
	return res
}

// GetMe возвращает текущего пользователя
func (c *Client) GetMe(ctx context.Context) *Result[pkgapi.MePayload] {
	return Request[pkgapi.MePayload](ctx, c, "/api/auth/me", RequestOptions{})
}

// RefreshToken обновляет токены сессии по refresh token
func (c *Client) RefreshToken(ctx context.Context) *Result[pkgapi.AuthPayload] {
	res := Request[pkgapi.AuthPayload](ctx, c, "/api/auth/refresh", RequestOptions{
		Method: http.MethodPost,
	})
	c.storeTokens(ctx, res)
	return res
}

// ForgotPassword запрашивает письмо для сброса пароля
func (c *Client) ForgotPassword(ctx context.Context, email string) *Result[struct{}] {
	return Request[struct{}](ctx, c, "/api/auth/forgot-password", RequestOptions{
		Method: http.MethodPost,
		Body:   pkgapi.ForgotPasswordRequest{Email: email},
	})
}

// ResetPassword устанавливает новый пароль по токену сброса
func (c *Client) ResetPassword(ctx context.Context, token, password string) *Result[struct{}] {
	return Request[struct{}](ctx, c, "/api/auth/reset-password", RequestOptions{
		Method: http.MethodPost,
		Body:   pkgapi.ResetPasswordRequest{Token: token, Password: password},
	})
}

// storeTokens сохраняет токены из успешного ответа
func (c *Client) storeTokens(ctx context.Context, res *Result[pkgapi.AuthPayload]) {
	if !res.Success || res.Data.Tokens == nil || c.tokens == nil {
		return
	}
	if err := c.tokens.Set(ctx, *res.Data.Tokens); err != nil {
		c.logger.WarnContext(ctx, "failed to store tokens", "error", err)
	}
}
