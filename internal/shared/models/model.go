// Package models содержит модели, которые ходят по HTTP между сервером и CLI-клиентом.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Todo — задача пользователя в том виде, в котором её отдаёт API.
//
// Поля:
//   - ID: UUID задачи, проставляется сервером
//   - Description: текст задачи
//   - OwnerUserID: UUID пользователя-владельца (ссылка, не вложение)
//   - IsDeleted: признак логического удаления
//   - CreatedAt/UpdatedAt: серверные отметки времени
type Todo struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	OwnerUserID uuid.UUID `json:"owner_user_id"`
	IsDeleted   bool      `json:"is_deleted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// User — пользователь в ответах API. Хэш пароля наружу никогда не отдаётся.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	IsDeleted bool      `json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TodoRequest — тело POST /api/todos/{userId} и PUT /api/todos/{todoId}.
type TodoRequest struct {
	Description string `json:"description" validate:"required,min=1,max=255"`
}

// Normalize обрезает пробелы по краям описания. Вызывается до валидации.
func (r *TodoRequest) Normalize() { r.Description = strings.TrimSpace(r.Description) }

// CreateUserRequest — тело POST /api/users (саморегистрация).
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

func (r *CreateUserRequest) Normalize() { r.Username = strings.TrimSpace(r.Username) }

// UpdateUserRequest — тело PUT /api/users/{userId}.
//
// Password необязателен: если не передан, хэш остаётся прежним.
type UpdateUserRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=64"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8,max=128"`
}

func (r *UpdateUserRequest) Normalize() { r.Username = strings.TrimSpace(r.Username) }

// TokenResponse — успешный ответ POST /bearerToken (OAuth2 password grant).
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	UserName    string `json:"user_name"`
	Role        string `json:"role"`
}

// OAuthErrorResponse — ошибка token endpoint в формате RFC 6749.
type OAuthErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// ErrorResponse стандартный формат ошибки API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse — ошибки валидации тела запроса, поле -> правило.
type ValidationErrorResponse struct {
	Errors map[string]string `json:"errors"`
}
