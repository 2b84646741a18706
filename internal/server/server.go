package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/iudanet/marketdash/internal/config"
	"github.com/iudanet/marketdash/internal/server/handlers"
	"github.com/iudanet/marketdash/internal/server/middleware"
)

// ShutdownTimeout - время на завершение активных запросов при остановке
const ShutdownTimeout = 10 * time.Second

// Server - HTTP сервер API с фоновой очисткой токенов
type Server struct {
	logger  *slog.Logger
	store   Store
	http    *http.Server
	limiter *middleware.RateLimiter
	cleanup time.Duration
}

// New создает сервер по конфигурации
func New(cfg *config.ServerConfig, logger *slog.Logger, store Store, version string) *Server {
	limiter := middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow, logger)

	handler := NewRouter(RouterDeps{
		Logger: logger,
		Store:  store,
		JWT: handlers.JWTConfig{
			Secret:          []byte(cfg.JWTSecret),
			AccessTokenTTL:  cfg.Tokens.Access,
			AuthTokenTTL:    cfg.Tokens.Auth,
			RefreshTokenTTL: cfg.Tokens.Refresh,
		},
		Cookies:     handlers.CookiePolicy{Secure: cfg.Production()},
		AuthLimiter: limiter,
		Version:     version,
	})

	return &Server{
		logger:  logger,
		store:   store,
		limiter: limiter,
		cleanup: cfg.TokenCleanup,
		http: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
		},
	}
}

// Run слушает адрес сервера до отмены ctx
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.http.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve обслуживает запросы на ln до отмены ctx, затем корректно останавливается
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.limiter.Stop()

	cleanupCtx, stopCleanup := context.WithCancel(ctx)
	defer stopCleanup()
	go s.cleanupLoop(cleanupCtx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server started", "addr", ln.Addr().String())
		errCh <- s.http.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// cleanupLoop периодически удаляет истекшие refresh токены
func (s *Server) cleanupLoop(ctx context.Context) {
	if s.cleanup <= 0 {
		return
	}

	ticker := time.NewTicker(s.cleanup)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.purgeExpiredTokens(ctx)
		}
	}
}

func (s *Server) purgeExpiredTokens(ctx context.Context) {
	n, err := s.store.DeleteExpiredTokens(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to delete expired tokens", "error", err)
		return
	}
	if n > 0 {
		s.logger.InfoContext(ctx, "expired refresh tokens deleted", "count", n)
	}
}
