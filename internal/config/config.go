// config - загрузка конфигурации клиента и сервера.
//
// Источники (по убыванию приоритета):
//  1. флаги командной строки (применяются в cmd/*);
//  2. переменные окружения;
//  3. файл .env (явный путь --env или ./.env, если он существует);
//  4. значения по умолчанию.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// DefaultEnvFile - файл окружения, который читается, если путь не задан явно
const DefaultEnvFile = ".env"

// EnvProduction - значение окружения, включающее Secure cookie
const EnvProduction = "production"

// ClientConfig - настройки CLI клиента
type ClientConfig struct {
	Env      string `env:"MARKETDASH_ENV"       env-default:"development"`
	APIURL   string `env:"MARKETDASH_API_URL"   env-default:"http://localhost:3001"`
	DBPath   string `env:"MARKETDASH_DB"        env-default:"marketdash-client.db"`
	LogLevel string `env:"MARKETDASH_LOG_LEVEL" env-default:"warn"`
}

// Production сообщает, что клиент работает в production окружении
func (c ClientConfig) Production() bool {
	return strings.EqualFold(c.Env, EnvProduction)
}

// ServerConfig - настройки dev сервера
type ServerConfig struct {
	Env       string    `env:"MARKETDASH_ENV"        env-default:"development"`
	Addr      string    `env:"MARKETDASH_ADDR"       env-default:":3001"`
	DBPath    string    `env:"MARKETDASH_SERVER_DB"  env-default:"marketdash-server.db"`
	JWTSecret string    `env:"MARKETDASH_JWT_SECRET" env-default:"dev-secret-change-me"`
	LogLevel  string    `env:"MARKETDASH_LOG_LEVEL"  env-default:"info"`
	Tokens    TokenTTLs `env-prefix:"MARKETDASH_"`

	// Лимит попыток входа и регистрации с одного IP
	AuthRateLimit  int           `env:"MARKETDASH_AUTH_RATE_LIMIT"  env-default:"10"`
	AuthRateWindow time.Duration `env:"MARKETDASH_AUTH_RATE_WINDOW" env-default:"1m"`

	// Период удаления истекших refresh токенов
	TokenCleanup time.Duration `env:"MARKETDASH_TOKEN_CLEANUP" env-default:"1h"`
}

// TokenTTLs - время жизни токенов сессии
type TokenTTLs struct {
	Access  time.Duration `env:"ACCESS_TTL"  env-default:"15m"`
	Auth    time.Duration `env:"AUTH_TTL"    env-default:"24h"`
	Refresh time.Duration `env:"REFRESH_TTL" env-default:"168h"`
}

// Production сообщает, что сервер работает в production окружении
func (c ServerConfig) Production() bool {
	return strings.EqualFold(c.Env, EnvProduction)
}

// LoadClient загружает настройки клиента из .env и окружения
func LoadClient(envFile string) (*ClientConfig, error) {
	var cfg ClientConfig
	if err := load(envFile, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadServer загружает настройки сервера из .env и окружения
func LoadServer(envFile string) (*ServerConfig, error) {
	var cfg ServerConfig
	if err := load(envFile, &cfg); err != nil {
		return nil, err
	}
	if cfg.Production() && cfg.JWTSecret == "dev-secret-change-me" {
		return nil, fmt.Errorf("MARKETDASH_JWT_SECRET must be set in production")
	}
	return &cfg, nil
}

func load(envFile string, cfg any) error {
	if err := LoadEnvFile(envFile); err != nil {
		return err
	}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return fmt.Errorf("failed to read env: %w", err)
	}
	return nil
}

// LoadEnvFile загружает переменные из файла в окружение процесса.
// Уже заданные переменные не перезаписываются.
// Отсутствие файла по умолчанию не является ошибкой, явно указанного - является.
func LoadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultEnvFile
	}

	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %q: %w", path, err)
	}
	return nil
}

// ParseLevel разбирает уровень логирования (debug, info, warn, error)
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// NewLogger создает текстовый slog логгер с заданным уровнем
func NewLogger(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
