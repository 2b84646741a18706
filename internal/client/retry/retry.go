// Package retry содержит единую политику повторных попыток для клиентских вызовов.
package retry

import (
	"context"
	"time"

	goretry "github.com/sethvargo/go-retry"
)

// Policy описывает повтор операции с постоянной паузой
type Policy struct {
	// Retryable решает, квалифицируется ли ошибка для повтора.
	// nil означает, что повторов нет.
	Retryable func(err error) bool
	// Backoff - пауза перед каждым повтором
	Backoff time.Duration
	// MaxRetries - количество повторов после первой попытки
	MaxRetries uint64
}

// Once возвращает политику с одним повтором после паузы backoff
func Once(backoff time.Duration, retryable func(err error) bool) Policy {
	return Policy{
		MaxRetries: 1,
		Backoff:    backoff,
		Retryable:  retryable,
	}
}

// None возвращает политику без повторов
func None() Policy {
	return Policy{}
}

// Do выполняет fn, повторяя ее согласно политике.
// Возвращает ошибку последней попытки либо ошибку контекста.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if p.MaxRetries == 0 || p.Retryable == nil {
		return fn(ctx)
	}

	backoff := p.Backoff
	if backoff <= 0 {
		backoff = time.Nanosecond
	}
	b := goretry.WithMaxRetries(p.MaxRetries, goretry.NewConstant(backoff))

	return goretry.Do(ctx, b, func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil && p.Retryable(err) {
			return goretry.RetryableError(err)
		}
		return err
	})
}
