package auth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/iudanet/marketdash/internal/client/api"
	"github.com/iudanet/marketdash/internal/client/retry"
	"github.com/iudanet/marketdash/internal/models"
	pkgapi "github.com/iudanet/marketdash/pkg/api"
)

// DefaultNetworkBackoff - пауза перед повторной проверкой сессии после сетевой ошибки
const DefaultNetworkBackoff = 250 * time.Millisecond

// State описывает состояние сессии
type State int

const (
	StateUnknown         State = iota // проверка еще не запускалась
	StateChecking                     // идет проверка сессии
	StateAuthenticated                // пользователь аутентифицирован
	StateUnauthenticated              // сессии нет
)

// String возвращает имя состояния
func (s State) String() string {
	switch s {
	case StateUnknown:
		return "unknown"
	case StateChecking:
		return "checking"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Option настраивает Manager
type Option func(*Manager)

// WithLogger задает логгер менеджера
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithNetworkBackoff задает паузу перед повтором проверки после сетевой ошибки
func WithNetworkBackoff(d time.Duration) Option {
	return func(m *Manager) {
		m.networkRetry = retry.Once(d, api.IsNetwork)
	}
}

// Manager управляет сессией пользователя: проверяет ее при старте,
// выполняет вход, выход и обновление токенов, хранит текущего пользователя.
//
// Пользователь присутствует тогда и только тогда, когда последняя завершенная
// проверка, вход или обновление прошли успешно. Пользователь и токены
// очищаются вместе под одной блокировкой.
type Manager struct {
	api          AuthAPI
	credentials  CredentialStore
	navigator    Navigator
	logger       *slog.Logger
	user         *models.User
	networkRetry retry.Policy
	mu           sync.RWMutex
	state        State
	loading      bool
	closed       atomic.Bool
}

// NewManager создает менеджер сессии
func NewManager(authAPI AuthAPI, credentials CredentialStore, navigator Navigator, opts ...Option) *Manager {
	m := &Manager{
		api:          authAPI,
		credentials:  credentials,
		navigator:    navigator,
		logger:       slog.Default(),
		networkRetry: retry.Once(DefaultNetworkBackoff, api.IsNetwork),
		state:        StateUnknown,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start проверяет сессию при запуске.
// Сетевая ошибка повторяется один раз после паузы, недействительная
// сессия восстанавливается одним обновлением токенов.
func (m *Manager) Start(ctx context.Context) {
	if m.closed.Load() {
		return
	}
	m.mu.Lock()
	m.state = StateChecking
	m.loading = true
	m.mu.Unlock()

	defer m.setLoading(false)
	m.check(ctx, m.networkRetry)
}

// RefreshAuth повторно проверяет сессию без повтора сетевых ошибок
func (m *Manager) RefreshAuth(ctx context.Context) {
	if m.closed.Load() {
		return
	}
	m.mu.Lock()
	m.state = StateChecking
	m.loading = true
	m.mu.Unlock()

	defer m.setLoading(false)
	m.check(ctx, retry.None())
}

// check запрашивает текущего пользователя и переводит менеджер в итоговое состояние
func (m *Manager) check(ctx context.Context, policy retry.Policy) {
	attempts := 0
	var me *api.Result[pkgapi.MePayload]
	err := policy.Do(ctx, func(ctx context.Context) error {
		attempts++
		if attempts > 1 {
			m.logger.DebugContext(ctx, "retrying session check after network error")
		}
		me = m.api.GetMe(ctx)
		return me.Err()
	})

	// Отмена вызывающим не означает недействительную сессию
	if ctxErr := ctx.Err(); ctxErr != nil {
		m.logger.DebugContext(ctx, "session check canceled", "error", ctxErr)
		m.mu.Lock()
		if m.state == StateChecking && !m.closed.Load() {
			m.state = StateUnknown
		}
		m.mu.Unlock()
		return
	}

	switch {
	case err == nil && me.Data.User != nil:
		m.authenticate(ctx, me.Data.User)
	case api.IsUnauthorized(err) && attempts == 1:
		m.refresh(ctx)
	default:
		if err != nil {
			m.logger.InfoContext(ctx, "session check failed", "error", err, "attempts", attempts)
		}
		m.invalidate(ctx)
	}
}

// refresh обновляет токены и один раз повторяет запрос пользователя
func (m *Manager) refresh(ctx context.Context) {
	m.logger.DebugContext(ctx, "session unauthorized, attempting token refresh")

	if err := m.api.RefreshToken(ctx).Err(); err != nil {
		m.logger.InfoContext(ctx, "token refresh failed", "error", err)
		m.invalidate(ctx)
		return
	}

	me := m.api.GetMe(ctx)
	if err := me.Err(); err != nil || me.Data.User == nil {
		m.logger.InfoContext(ctx, "session check after refresh failed", "error", err)
		m.invalidate(ctx)
		return
	}
	m.authenticate(ctx, me.Data.User)
}

// Login выполняет вход.
// При успехе переходит на /dashboard, при ошибке состояние не меняется
// и ошибка с сообщением сервера возвращается вызывающему.
func (m *Manager) Login(ctx context.Context, emailOrUsername, password string, rememberMe bool) (*models.User, error) {
	m.setLoading(true)
	defer m.setLoading(false)

	res := m.api.Login(ctx, pkgapi.LoginRequest{
		EmailOrUsername: emailOrUsername,
		Password:        password,
		RememberMe:      rememberMe,
	})
	user, err := payloadUser(res, "Login failed")
	if err != nil {
		return nil, err
	}

	m.authenticate(ctx, user)
	m.navigate(RouteDashboard)
	return user.Clone(), nil
}

// Signup регистрирует пользователя и сразу аутентифицирует его без перехода
func (m *Manager) Signup(ctx context.Context, req pkgapi.RegisterRequest) (*models.User, error) {
	m.setLoading(true)
	defer m.setLoading(false)

	res := m.api.Register(ctx, req)
	user, err := payloadUser(res, "Signup failed")
	if err != nil {
		return nil, err
	}

	m.authenticate(ctx, user)
	return user.Clone(), nil
}

// Logout завершает сессию.
// Ошибка сервера не мешает локальному выходу.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.api.Logout(ctx).Err(); err != nil {
		m.logger.WarnContext(ctx, "remote logout failed", "error", err)
	}
	m.invalidate(ctx)
	m.navigate(RouteLogin)
}

// UpdateUser применяет частичное обновление к текущему пользователю.
// Без аутентификации ничего не делает.
func (m *Manager) UpdateUser(patch models.UserPatch) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateAuthenticated || m.user == nil {
		return
	}
	patch.Apply(m.user)
}

// HasRole сообщает, что текущий пользователь имеет одну из ролей
func (m *Manager) HasRole(roles ...models.Role) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user.HasRole(roles...)
}

// CanAccess сообщает, доступен ли маршрут текущему пользователю
func (m *Manager) CanAccess(path string) bool {
	if IsPublicRoute(path) {
		return true
	}
	if !m.IsAuthenticated() {
		return false
	}
	roles := RequiredRoles(path)
	if len(roles) == 0 {
		return true
	}
	return m.HasRole(roles...)
}

// State возвращает текущее состояние сессии
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// User возвращает копию текущего пользователя или nil
func (m *Manager) User() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user.Clone()
}

// IsAuthenticated сообщает, что пользователь аутентифицирован
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state == StateAuthenticated && m.user != nil
}

// Loading сообщает, что выполняется проверка сессии, вход или регистрация
func (m *Manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// Close отключает менеджер: завершившиеся позже запросы не меняют состояние.
// Выполняющиеся запросы не прерываются, для этого используется ctx.
func (m *Manager) Close() {
	m.closed.Store(true)
}

func (m *Manager) authenticate(ctx context.Context, user *models.User) {
	if m.closed.Load() {
		return
	}

	snapshot := user.Clone()
	m.mu.Lock()
	m.state = StateAuthenticated
	m.user = snapshot
	m.mu.Unlock()

	if err := m.credentials.SaveUser(ctx, snapshot); err != nil {
		m.logger.WarnContext(ctx, "failed to save user snapshot", "error", err)
	}

	// Пока снимок записывался, сессию могли завершить
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateUnauthenticated {
		return
	}
	m.logger.DebugContext(ctx, "session changed while saving user, clearing snapshot")
	if err := m.credentials.ClearAll(ctx); err != nil {
		m.logger.WarnContext(ctx, "failed to clear credentials", "error", err)
	}
}

// invalidate удаляет данные сессии и сбрасывает пользователя под одной блокировкой
func (m *Manager) invalidate(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// ClearAll выполняется под блокировкой: читатели State/User не увидят пользователя без токенов
	if err := m.credentials.ClearAll(ctx); err != nil {
		m.logger.WarnContext(ctx, "failed to clear credentials", "error", err)
	}
	if m.closed.Load() {
		return
	}
	m.state = StateUnauthenticated
	m.user = nil
}

func (m *Manager) setLoading(v bool) {
	if m.closed.Load() {
		return
	}
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
}

func (m *Manager) navigate(route string) {
	if m.closed.Load() || m.navigator == nil {
		return
	}
	m.navigator.Navigate(route)
}

// payloadUser извлекает пользователя из ответа login/register
func payloadUser(res *api.Result[pkgapi.AuthPayload], fallback string) (*models.User, error) {
	if !res.Success && res.Error == "" {
		res.Error = fallback
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	if res.Data.User == nil {
		return nil, &api.Error{Message: fallback, Status: res.Status, Kind: api.KindDecode}
	}
	return res.Data.User, nil
}
