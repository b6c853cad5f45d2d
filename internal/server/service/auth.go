package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DiegoMiguel/design-webapi/internal/server/crypto"
	serr "github.com/DiegoMiguel/design-webapi/internal/shared/errors"
)

// AuthService реализует провайдер выдачи bearer-токенов (resource owner password grant).
//
// Ответственность:
//   - проверка клиента (всегда успешна, client_id только логируется выше)
//   - проверка username/password через UserService
//   - выпуск подписанного access токена с ролью пользователя
type AuthService struct {
	users *UserService
	roles RoleResolver
	jwt   crypto.JWTConfig
}

// Token — результат успешного гранта.
type Token struct {
	AccessToken string
	ExpiresIn   time.Duration
	Username    string
	Role        string
}

// NewAuthService создаёт AuthService.
func NewAuthService(users *UserService, roles RoleResolver, jwt crypto.JWTConfig) *AuthService {
	return &AuthService{users: users, roles: roles, jwt: jwt}
}

// ValidateClientAuthentication принимает любого клиента.
func (s *AuthService) ValidateClientAuthentication(_ context.Context, _ string) error {
	return nil
}

// GrantResourceOwnerCredentials проверяет username/password и выпускает токен.
//
// Ошибки:
//   - ErrInvalidGrant при неверных учётных данных (токен не выпускается)
//   - ErrInternal при сбое хранилища или подписи
func (s *AuthService) GrantResourceOwnerCredentials(ctx context.Context, username, password string) (Token, error) {
	u, err := s.users.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, serr.ErrInvalidCredentials) || errors.Is(err, serr.ErrInvalidInput) {
			return Token{}, serr.ErrInvalidGrant
		}
		return Token{}, err
	}

	role, err := s.roles.RoleFor(ctx, u)
	if err != nil {
		return Token{}, fmt.Errorf("%w: resolve role: %v", serr.ErrInternal, err)
	}

	access, err := crypto.NewAccessToken(crypto.Identity{
		UserID:   u.ID.String(),
		Username: u.Username,
		Role:     role,
	}, s.jwt)
	if err != nil {
		return Token{}, fmt.Errorf("%w: sign token: %v", serr.ErrInternal, err)
	}

	return Token{
		AccessToken: access,
		ExpiresIn:   s.jwt.AccessTTL,
		Username:    u.Username,
		Role:        role,
	}, nil
}

// JWT возвращает параметры подписи, нужные middleware проверки токена.
func (s *AuthService) JWT() crypto.JWTConfig {
	return s.jwt
}
