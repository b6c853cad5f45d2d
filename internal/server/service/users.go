package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/DiegoMiguel/design-webapi/internal/server/crypto"
	"github.com/DiegoMiguel/design-webapi/internal/server/models"
	serr "github.com/DiegoMiguel/design-webapi/internal/shared/errors"
)

// UserService — CRUD пользователей и проверка учётных данных.
//
// Используется и ресурсом /api/users, и провайдером аутентификации.
type UserService struct {
	repo   UsersRepo
	hasher crypto.PasswordHasher
}

// NewUserService создаёт UserService.
func NewUserService(repo UsersRepo, hasher crypto.PasswordHasher) *UserService {
	return &UserService{repo: repo, hasher: hasher}
}

// Register регистрирует нового пользователя (саморегистрация, без токена).
//
// Ошибки:
//   - ErrInvalidInput при пустом username или пароле
//   - ErrAlreadyExists если username занят
func (s *UserService) Register(ctx context.Context, username, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return models.User{}, serr.ErrInvalidInput
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: hash password: %v", serr.ErrInternal, err)
	}
	return s.repo.Create(ctx, username, hash)
}

// List возвращает всех не удалённых пользователей.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.repo.List(ctx)
}

// Get возвращает пользователя по id.
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (models.User, error) {
	if id == uuid.Nil {
		return models.User{}, serr.ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// Update меняет username и, если password != nil, пароль.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, username string, password *string) (models.User, error) {
	username = strings.TrimSpace(username)
	if id == uuid.Nil || username == "" {
		return models.User{}, serr.ErrInvalidInput
	}

	var hash *string
	if password != nil {
		h, err := s.hasher.Hash(*password)
		if err != nil {
			if errors.Is(err, crypto.ErrEmptyPassword) {
				return models.User{}, serr.ErrInvalidInput
			}
			return models.User{}, fmt.Errorf("%w: hash password: %v", serr.ErrInternal, err)
		}
		hash = &h
	}

	return s.repo.Update(ctx, id, username, hash)
}

// Delete логически удаляет пользователя.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return serr.ErrInvalidInput
	}
	return s.repo.SoftDelete(ctx, id)
}

// Authenticate проверяет пару username/password.
//
// Поведение:
//   - не раскрывает, существует ли username: и неизвестный пользователь,
//     и неверный пароль дают ErrInvalidCredentials
//   - удалённые пользователи войти не могут
func (s *UserService) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.User{}, serr.ErrInvalidCredentials
	}

	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return models.User{}, serr.ErrInvalidCredentials
		}
		return models.User{}, err
	}

	ok, err := crypto.VerifyPassword(password, u.PasswordHash)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: verify password: %v", serr.ErrInternal, err)
	}
	if !ok {
		return models.User{}, serr.ErrInvalidCredentials
	}
	return u, nil
}
