package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	pkgapi "github.com/iudanet/marketdash/pkg/api"
)

const (
	// defaultErrorMessage используется, когда тело ошибки не содержит описания
	defaultErrorMessage = "Request failed"

	// HeaderRequestID - заголовок для трассировки запросов
	HeaderRequestID = "X-Request-ID"
)

// unauthorizedCodes - коды ошибок, означающие недействительную сессию
var unauthorizedCodes = []string{
	pkgapi.CodeUnauthorized,
	pkgapi.CodeTokenExpired,
	pkgapi.CodeInvalidToken,
}

//go:generate moq -out token_store_mock.go . TokenStore

// TokenStore определяет хранилище токенов, которым пользуется клиент
type TokenStore interface {
	// Set сохраняет непустые токены набора
	Set(ctx context.Context, tokens pkgapi.AuthTokens) error

	// ClearAll удаляет все токены и данные сессии
	ClearAll(ctx context.Context) error

	// CookieHeader возвращает значение заголовка Cookie из текущих токенов
	CookieHeader(ctx context.Context) string

	// RememberCookies сохраняет токены из Set-Cookie заголовков ответа
	RememberCookies(cookies []*http.Cookie)
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	tokens     TokenStore
	logger     *slog.Logger
	baseURL    string
}

// NewClient создает новый API клиент
func NewClient(baseURL string, tokens TokenStore, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовок Cookie при редиректе
				if len(via) > 0 && via[0].Header.Get("Cookie") != "" {
					req.Header.Set("Cookie", via[0].Header.Get("Cookie"))
				}
				return nil
			},
		},
	}
}

// BaseURL возвращает адрес сервера
func (c *Client) BaseURL() string {
	return c.baseURL
}

// RequestOptions задает параметры запроса
type RequestOptions struct {
	Body    any               // тело запроса, сериализуется в JSON
	Headers map[string]string // дополнительные заголовки
	Method  string            // HTTP метод, по умолчанию GET
}

// Request выполняет запрос к endpoint и нормализует ответ в Result.
// Никогда не возвращает ошибку: транспортные сбои, ошибки сервера и
// несоответствие формата ответа описываются полями Result.
func Request[T any](ctx context.Context, c *Client, endpoint string, opts RequestOptions) *Result[T] {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var bodyReader io.Reader
	if opts.Body != nil {
		jsonData, err := json.Marshal(opts.Body)
		if err != nil {
			return failure[T](KindDecode, 0, fmt.Sprintf("failed to marshal request body: %v", err), "")
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, bodyReader)
	if err != nil {
		return failure[T](KindNetwork, 0, fmt.Sprintf("failed to create request: %v", err), "")
	}

	requestID := uuid.New().String()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, requestID)
	if c.tokens != nil {
		if cookie := c.tokens.CookieHeader(ctx); cookie != "" {
			req.Header.Set("Cookie", cookie)
		}
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	log := c.logger.With("method", method, "endpoint", endpoint, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.ErrorContext(ctx, "API request failed", "error", err)
		return failure[T](KindNetwork, 0, err.Error(), "")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Сохраняем cookie ответа так же, как это делает браузер
	if c.tokens != nil {
		c.tokens.RememberCookies(resp.Cookies())
	}

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		log.ErrorContext(ctx, "failed to read response body", "error", err)
		return failure[T](KindNetwork, resp.StatusCode, fmt.Sprintf("failed to read response body: %v", err), "")
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		res := decodeFailure[T](resp.StatusCode, respBody)
		log.DebugContext(ctx, "API request returned error",
			"status", resp.StatusCode,
			"kind", res.Kind.String(),
			"code", res.Code)
		return res
	}

	res := decodeSuccess[T](resp.StatusCode, respBody)
	if res.Kind == KindDecode {
		log.WarnContext(ctx, "failed to decode response", "status", resp.StatusCode, "error", res.Error)
	}
	return res
}

// envelope - сырой формат ответа, data декодируется отдельно
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
}

// decodeFailure разбирает ответ с кодом не из диапазона 2xx
func decodeFailure[T any](status int, body []byte) *Result[T] {
	var env envelope
	message := defaultErrorMessage
	if err := json.Unmarshal(body, &env); err == nil {
		switch {
		case env.Error != "":
			message = env.Error
		case env.Message != "":
			message = env.Message
		}
	}

	return failure[T](classify(status, env.Code), status, message, env.Code)
}

// decodeSuccess разбирает успешный ответ строго по формату Envelope
func decodeSuccess[T any](status int, body []byte) *Result[T] {
	res := &Result[T]{Status: status}

	if len(bytes.TrimSpace(body)) == 0 {
		res.Success = true
		return res
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return failure[T](KindDecode, status, fmt.Sprintf("invalid response envelope: %v", err), "")
	}

	// Явный success=false в 2xx ответе считаем ошибкой запроса
	if env.Success != nil && !*env.Success {
		message := env.Error
		if message == "" {
			message = defaultErrorMessage
		}
		return failure[T](classify(http.StatusBadRequest, env.Code), status, message, env.Code)
	}

	if len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null")) {
		if err := json.Unmarshal(env.Data, &res.Data); err != nil {
			return failure[T](KindDecode, status, fmt.Sprintf("invalid response data: %v", err), "")
		}
	}

	res.Success = true
	res.Message = env.Message
	return res
}

// classify определяет вид ошибки по статусу и коду ответа
func classify(status int, code string) ErrorKind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case slices.Contains(unauthorizedCodes, code):
		return KindUnauthorized
	case status >= 500:
		return KindServer
	default:
		return KindValidation
	}
}
