package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/iudanet/marketdash/internal/server/handlers"
	"github.com/iudanet/marketdash/pkg/api"
)

// RateLimiter представляет rate limiter на основе токен-бакета (token bucket).
// Бакет вмещает rate токенов и полностью пополняется за window.
type RateLimiter struct {
	buckets  map[string]*bucket
	logger   *slog.Logger
	now      func() time.Time
	cleanupC chan struct{}
	stopOnce sync.Once
	rate     int
	window   time.Duration
	mu       sync.Mutex
}

// bucket представляет bucket для конкретного IP/ключа
type bucket struct {
	lastRefill time.Time
	tokens     float64
}

// NewRateLimiter создает новый rate limiter
// rate - емкость бакета (запросов подряд)
// window - время полного пополнения бакета
func NewRateLimiter(rate int, window time.Duration, logger *slog.Logger) *RateLimiter {
	rl := newRateLimiter(rate, window, logger, time.Now)

	// Запускаем периодическую очистку старых buckets
	go rl.cleanup()

	return rl
}

func newRateLimiter(rate int, window time.Duration, logger *slog.Logger, now func() time.Time) *RateLimiter {
	return &RateLimiter{
		buckets:  make(map[string]*bucket),
		logger:   logger,
		now:      now,
		cleanupC: make(chan struct{}),
		rate:     rate,
		window:   window,
	}
}

// cleanup периодически удаляет неактивные buckets для экономии памяти
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window * 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupOldBuckets()
		case <-rl.cleanupC:
			return
		}
	}
}

// cleanupOldBuckets удаляет полностью пополненные buckets
func (rl *RateLimiter) cleanupOldBuckets() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, b := range rl.buckets {
		if now.Sub(b.lastRefill) >= rl.window {
			delete(rl.buckets, key)
		}
	}
}

// Stop останавливает cleanup goroutine
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.cleanupC) })
}

// Allow проверяет, разрешен ли запрос для данного ключа (обычно IP адрес)
func (rl *RateLimiter) Allow(key string) bool {
	_, ok := rl.take(key)
	return ok
}

// take забирает токен и возвращает время до появления следующего
func (rl *RateLimiter) take(key string) (time.Duration, bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, exists := rl.buckets[key]
	if !exists {
		b = &bucket{tokens: float64(rl.rate), lastRefill: now}
		rl.buckets[key] = b
	}

	// Пополняем токены пропорционально прошедшему времени
	perToken := rl.window / time.Duration(max(rl.rate, 1))
	if elapsed := now.Sub(b.lastRefill); elapsed > 0 {
		b.tokens = min(float64(rl.rate), b.tokens+float64(elapsed)/float64(perToken))
		b.lastRefill = now
	}

	if b.tokens >= 1 {
		b.tokens--
		return 0, true
	}

	return time.Duration((1 - b.tokens) * float64(perToken)), false
}

// Middleware ограничивает частоту запросов с одного IP.
// Превышение лимита возвращает 429 RATE_LIMITED и заголовок Retry-After.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := getClientIP(r)

		wait, ok := rl.take(key)
		if !ok {
			rl.logger.WarnContext(r.Context(), "rate limit exceeded",
				"ip", key,
				"method", r.Method,
				"path", r.URL.Path,
			)

			seconds := int(wait.Round(time.Second).Seconds())
			w.Header().Set("Retry-After", strconv.Itoa(max(seconds, 1)))
			handlers.WriteError(w, http.StatusTooManyRequests, api.CodeRateLimited,
				"Too many requests, please try again later")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RateLimitMiddleware создает middleware для ограничения частоты запросов
// rate - максимальное количество запросов подряд
// window - время полного пополнения (например, 1 минута)
func RateLimitMiddleware(rate int, window time.Duration, logger *slog.Logger) (func(http.Handler) http.Handler, *RateLimiter) {
	limiter := NewRateLimiter(rate, window, logger)
	return limiter.Middleware, limiter
}

// getClientIP извлекает IP адрес клиента из запроса
// Проверяет заголовки X-Forwarded-For и X-Real-IP для прокси
func getClientIP(r *http.Request) string {
	// Берем первый IP из списка (реальный клиент)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
