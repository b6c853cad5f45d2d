// Package api — HTTP-клиент todo API для CLI.
//
// Клиент хранит базовый URL сервера и настроенный http.Client и отправляет
// JSON-запросы (POST/GET/PUT/DELETE) с авторизацией через Bearer токен,
// а также form-запрос к token endpoint.
//
// Особенности:
//   - baseURL нормализуется (обрезаются завершающие "/");
//   - всегда ставится Accept: application/json;
//   - Content-Type ставится только при наличии тела;
//   - пустое тело ответа (EOF при декодировании) не ошибка;
//   - ответ не 2xx превращается в *Error с сообщением сервера.
package api

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"
)

// DefaultTimeout — таймаут http.Client по умолчанию.
const DefaultTimeout = 10 * time.Second

// Client — HTTP-клиент todo API.
type Client struct {
	baseURL   string
	tokenPath string
	http      *http.Client
}

// Option настраивает Client.
type Option func(*Client)

// WithTimeout задаёт таймаут запросов.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithInsecureTLS отключает проверку сертификата сервера.
// Только для локальной разработки с самоподписанным сертификатом.
func WithInsecureTLS() Option {
	return func(c *Client) {
		c.http.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // только для dev
		}
	}
}

// WithTokenPath переопределяет путь token endpoint (по умолчанию /bearerToken).
func WithTokenPath(p string) Option {
	return func(c *Client) {
		if p != "" {
			c.tokenPath = p
		}
	}
}

// NewClient создаёт клиент для сервера baseURL (например "http://127.0.0.1:8080").
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		tokenPath: "/bearerToken",
		http:      &http.Client{Timeout: DefaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Error — ответ сервера со статусом не 2xx.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// StatusOf возвращает HTTP статус из ошибки клиента или 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// readAPIError разбирает тело ошибки.
//
// Понимает три формата сервера:
//   - {"error": "..."} обычных эндпоинтов
//   - {"error": "...", "error_description": "..."} token endpoint
//   - {"errors": {"field": "rule"}} ошибок валидации
//
// Остальное возвращается как текст тела или res.Status.
func readAPIError(res *http.Response) error {
	raw, _ := io.ReadAll(res.Body)

	var body struct {
		Error            string            `json:"error"`
		ErrorDescription string            `json:"error_description"`
		Errors           map[string]string `json:"errors"`
	}
	msg := ""
	if err := json.Unmarshal(raw, &body); err == nil {
		switch {
		case body.ErrorDescription != "":
			msg = body.Error + ": " + body.ErrorDescription
		case body.Error != "":
			msg = body.Error
		case len(body.Errors) > 0:
			// поля по алфавиту, чтобы сообщение было стабильным
			parts := make([]string, 0, len(body.Errors))
			for _, f := range slices.Sorted(maps.Keys(body.Errors)) {
				parts = append(parts, f+"="+body.Errors[f])
			}
			msg = "validation failed: " + strings.Join(parts, ", ")
		}
	}
	if msg == "" {
		msg = strings.TrimSpace(string(raw))
	}
	if msg == "" {
		msg = res.Status
	}
	return &Error{StatusCode: res.StatusCode, Message: msg}
}

// decodeJSONOrOK декодирует JSON в resp; resp == nil и пустое тело не ошибка.
func decodeJSONOrOK(r io.Reader, resp any) error {
	if resp == nil {
		return nil
	}
	err := json.NewDecoder(r).Decode(resp)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// do отправляет запрос и разбирает ответ.
func (c *Client) do(method, path string, body io.Reader, contentType string, resp any, authToken string) error {
	r, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	r.Header.Set("Accept", "application/json")
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	if authToken != "" {
		r.Header.Set("Authorization", "Bearer "+authToken)
	}

	res, err := c.http.Do(r)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return readAPIError(res)
	}
	if res.StatusCode == http.StatusNoContent {
		return nil
	}
	return decodeJSONOrOK(res.Body, resp)
}

// sendJSON сериализует req (если он есть) и отправляет запрос.
func (c *Client) sendJSON(method, path string, req, resp any, authToken string) error {
	if req == nil {
		return c.do(method, path, nil, "", resp, authToken)
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(req); err != nil {
		return err
	}
	return c.do(method, path, &buf, "application/json", resp, authToken)
}

// PostJSON выполняет POST с JSON телом req и декодирует ответ в resp.
func (c *Client) PostJSON(path string, req any, resp any, authToken string) error {
	return c.sendJSON(http.MethodPost, path, req, resp, authToken)
}

// GetJSON выполняет GET и декодирует ответ в resp.
func (c *Client) GetJSON(path string, resp any, authToken string) error {
	return c.do(http.MethodGet, path, nil, "", resp, authToken)
}

// PutJSON выполняет PUT с JSON телом req и декодирует ответ в resp.
func (c *Client) PutJSON(path string, req any, resp any, authToken string) error {
	return c.sendJSON(http.MethodPut, path, req, resp, authToken)
}

// DeleteJSON выполняет DELETE. Сервер отвечает 200 с пустым телом.
func (c *Client) DeleteJSON(path string, resp any, authToken string) error {
	return c.do(http.MethodDelete, path, nil, "", resp, authToken)
}

// PostForm выполняет POST application/x-www-form-urlencoded.
func (c *Client) PostForm(path string, form url.Values, resp any) error {
	return c.do(http.MethodPost, path, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", resp, "")
}
