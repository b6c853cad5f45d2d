// Package service содержит бизнес-логику todo API.
// Это прослойка между HTTP-обработчиками (api) и хранилищем данных (repository).
package service

//go:generate mockgen -source=service.go -destination=mocks/mock_repos.go -package=mocks

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/DiegoMiguel/design-webapi/internal/server/config"
	"github.com/DiegoMiguel/design-webapi/internal/server/crypto"
	"github.com/DiegoMiguel/design-webapi/internal/server/models"
)

// Repositories — набор интерфейсов, которые сервисный слой ожидает от слоя repository.
type Repositories struct {
	Users UsersRepo
	Todos TodosRepo
}

// Services — агрегатор всех сервисов приложения.
type Services struct {
	Auth  *AuthService
	Users *UserService
	Todos *TodoService
}

// NewServices собирает все сервисы приложения.
// cfg нужен для параметров хэширования пароля, JWT и роли по умолчанию.
func NewServices(repos Repositories, cfg *config.Config) *Services {
	users := NewUserService(repos.Users, NewPasswordHasher(cfg.Password))
	return &Services{
		Auth:  NewAuthService(users, StaticRoles{Role: cfg.Auth.DefaultRole}, JWTConfigFrom(cfg.Auth)),
		Users: users,
		Todos: NewTodoService(repos.Todos),
	}
}

// HealthRepo — минимально нужное для health-check.
type HealthRepo interface {
	Ping(ctx context.Context) error
}

// UsersRepo — хранилище пользователей (CRUD + поиск по username для выдачи токена).
type UsersRepo interface {
	Create(ctx context.Context, username, passwordHash string) (models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id uuid.UUID, username string, passwordHash *string) (models.User, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// TodosRepo — хранилище задач.
type TodosRepo interface {
	Create(ctx context.Context, ownerID uuid.UUID, description string) (models.Todo, error)
	List(ctx context.Context) ([]models.Todo, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Todo, error)
	GetForUser(ctx context.Context, todoID, userID uuid.UUID) (models.Todo, error)
	Update(ctx context.Context, todoID uuid.UUID, description string) (models.Todo, error)
	SoftDelete(ctx context.Context, todoID uuid.UUID) error
}

// NewPasswordHasher выбирает стратегию хэширования по password.hasher.
func NewPasswordHasher(cfg config.PasswordConfig) crypto.PasswordHasher {
	if strings.EqualFold(cfg.Hasher, "bcrypt") {
		return crypto.BcryptHasher{Cost: cfg.Bcrypt.Cost}
	}
	return crypto.Argon2Hasher{Params: crypto.Argon2Params{
		Time:      cfg.Argon2.Time,
		MemoryKiB: cfg.Argon2.MemoryKiB,
		Threads:   cfg.Argon2.Threads,
		KeyLen:    cfg.Argon2.KeyLen,
		SaltLen:   cfg.Argon2.SaltLen,
	}}
}

// JWTConfigFrom переносит секцию auth конфига в параметры подписи токена.
func JWTConfigFrom(cfg config.AuthConfig) crypto.JWTConfig {
	return crypto.JWTConfig{
		Issuer:     cfg.Issuer,
		Audience:   cfg.Audience,
		SigningKey: cfg.JWT.SigningKey,
		AccessTTL:  cfg.AccessTTL,
	}
}
