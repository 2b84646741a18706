// Package validation проверяет пользовательский ввод на клиенте и на сервере.
package validation

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/iudanet/marketdash/pkg/api"
)

// UsernamePattern определяет допустимый формат username
// Только латинские буквы (a-z, A-Z), цифры (0-9), нижнее подчеркивание (_)
// Длина: 3-32 символа
var UsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,32}$`)

// walletPattern - адрес кошелька в формате 0x + 40 hex символов
var walletPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

const (
	// MinUsernameLen минимальная длина username
	MinUsernameLen = 3
	// MaxUsernameLen максимальная длина username
	MaxUsernameLen = 32
	// MinPasswordLen минимальная длина пароля
	MinPasswordLen = 8
	// MaxPasswordLen ограничение bcrypt на длину пароля в байтах
	MaxPasswordLen = 72
)

// ErrInvalid - общий sentinel для ошибок валидации
var ErrInvalid = errors.New("invalid input")

func invalid(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, a...))
}

// ValidateUsername проверяет, что username соответствует требованиям
// Формат: только латинские буквы (a-z, A-Z), цифры (0-9), нижнее подчеркивание (_)
// Длина: 3-32 символа
func ValidateUsername(username string) error {
	if username == "" {
		return invalid("username cannot be empty")
	}

	if len(username) < MinUsernameLen {
		return invalid("username must be at least %d characters long", MinUsernameLen)
	}

	if len(username) > MaxUsernameLen {
		return invalid("username must not exceed %d characters", MaxUsernameLen)
	}

	if !UsernamePattern.MatchString(username) {
		return invalid("username can only contain letters (a-z, A-Z), numbers (0-9), and underscores (_)")
	}

	return nil
}

// ValidatePassword проверяет требования к паролю
func ValidatePassword(password string) error {
	if password == "" {
		return invalid("password cannot be empty")
	}

	if len(password) < MinPasswordLen {
		return invalid("password must be at least %d characters long", MinPasswordLen)
	}

	if len(password) > MaxPasswordLen {
		return invalid("password must not exceed %d bytes", MaxPasswordLen)
	}

	return nil
}

// ValidateEmail проверяет, что строка - одиночный адрес без отображаемого имени
func ValidateEmail(email string) error {
	if email == "" {
		return invalid("email cannot be empty")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return invalid("email %q is not a valid address", email)
	}

	return nil
}

// ValidateLogin проверяет идентификатор (email или username) и пароль для входа
func ValidateLogin(emailOrUsername, password string) error {
	if strings.TrimSpace(emailOrUsername) == "" {
		return invalid("email or username is required")
	}
	if password == "" {
		return invalid("password is required")
	}
	return nil
}

// ValidateRegistration проверяет запрос на регистрацию
func ValidateRegistration(req api.RegisterRequest) error {
	if err := ValidateEmail(req.Email); err != nil {
		return err
	}
	if err := ValidateUsername(req.Username); err != nil {
		return err
	}
	if err := ValidatePassword(req.Password); err != nil {
		return err
	}
	if req.WalletAddress != nil && *req.WalletAddress != "" && !walletPattern.MatchString(*req.WalletAddress) {
		return invalid("wallet address must be 0x followed by 40 hex characters")
	}
	return nil
}
