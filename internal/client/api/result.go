package api

import (
	"errors"
	"fmt"
)

// ErrorKind классифицирует неуспешный результат запроса
type ErrorKind int

const (
	KindNone         ErrorKind = iota // запрос успешен
	KindNetwork                       // транспортная ошибка
	KindUnauthorized                  // 401 или истекшая сессия
	KindValidation                    // 4xx с сообщением
	KindServer                        // 5xx
	KindDecode                        // тело запроса или ответа не кодируется в ожидаемый формат
)

// String возвращает имя вида ошибки
func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNetwork:
		return "network"
	case KindUnauthorized:
		return "unauthorized"
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	case KindDecode:
		return "decode"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Sentinel ошибки по видам, на них разворачивается *Error
var (
	ErrNetwork      = errors.New("network error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation error")
	ErrServer       = errors.New("server error")
	ErrDecode       = errors.New("decode error")
)

// Error описывает неуспешный результат запроса
type Error struct {
	Message string // сообщение для пользователя
	Code    string // машиночитаемый код от сервера
	Status  int    // HTTP статус, 0 для транспортных ошибок
	Kind    ErrorKind
}

// Error реализует интерфейс error.
// Возвращает сообщение сервера без служебных префиксов, чтобы его можно было показать пользователю.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap возвращает sentinel ошибку, соответствующую виду
func (e *Error) Unwrap() error {
	switch e.Kind {
	case KindNetwork:
		return ErrNetwork
	case KindUnauthorized:
		return ErrUnauthorized
	case KindValidation:
		return ErrValidation
	case KindServer:
		return ErrServer
	case KindDecode:
		return ErrDecode
	}
	return nil
}

// Result представляет нормализованный результат запроса.
// Клиент никогда не возвращает Go ошибку, любая неудача описывается значением Result.
type Result[T any] struct {
	Data    T         // полезная нагрузка успешного ответа
	Message string    // сообщение сервера
	Error   string    // описание ошибки
	Code    string    // код ошибки от сервера
	Status  int       // HTTP статус ответа
	Kind    ErrorKind // вид ошибки
	Success bool      // признак успеха
}

// Err возвращает nil для успешного результата, иначе *Error
func (r *Result[T]) Err() error {
	if r.Success {
		return nil
	}
	return &Error{
		Message: r.Error,
		Code:    r.Code,
		Status:  r.Status,
		Kind:    r.Kind,
	}
}

// failure создает неуспешный результат
func failure[T any](kind ErrorKind, status int, message, code string) *Result[T] {
	return &Result[T]{
		Kind:   kind,
		Status: status,
		Error:  message,
		Code:   code,
	}
}

// IsUnauthorized сообщает, что ошибка означает недействительную сессию
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsNetwork сообщает, что ошибка транспортная
func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork)
}
