// Package crypto содержит криптографические примитивы сервера.
//
// В частности, пакет отвечает за:
//   - генерацию, подпись и разбор JWT bearer-токенов;
//   - хэширование и проверку паролей пользователей (argon2id, bcrypt).
package crypto

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTConfig описывает параметры генерации JWT access-токена.
type JWTConfig struct {
	// Issuer — значение поля iss (кто выдал токен).
	Issuer string
	// Audience — значение поля aud (для кого предназначен токен).
	Audience string
	// SigningKey — секретный ключ для подписи токена (HS256).
	SigningKey string
	// AccessTTL — срок жизни access-токена.
	AccessTTL time.Duration
}

// Identity — то, что токен утверждает о своём владельце.
type Identity struct {
	UserID   string
	Username string
	Role     string
}

// AccessClaims — claims bearer-токена: стандартные поля плюс usr и role.
type AccessClaims struct {
	Username string `json:"usr"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// NewAccessToken создаёт и подписывает JWT access-токен для пользователя.
//
// Токен содержит:
//   - sub (userID), usr (username), role
//   - iss, aud, iat, exp
//
// Используется алгоритм подписи HS256.
func NewAccessToken(id Identity, cfg JWTConfig) (string, error) {
	now := time.Now()

	claims := AccessClaims{
		Username: id.Username,
		Role:     id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.AccessTTL)),
		},
	}
	if cfg.Audience != "" {
		claims.Audience = []string{cfg.Audience}
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(cfg.SigningKey))
}

// ErrTokenSubject — в токене нет sub.
var ErrTokenSubject = errors.New("invalid token subject")

// ParseAccessToken проверяет подпись (только HS256), срок действия,
// issuer и audience (если заданы в cfg) и возвращает Identity.
func ParseAccessToken(tokenStr string, cfg JWTConfig) (Identity, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name})}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	claims := &AccessClaims{}
	_, err := jwt.NewParser(opts...).ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return []byte(cfg.SigningKey), nil
	})
	if err != nil {
		return Identity{}, err
	}

	sub := strings.TrimSpace(claims.Subject)
	if sub == "" {
		return Identity{}, ErrTokenSubject
	}
	return Identity{UserID: sub, Username: claims.Username, Role: claims.Role}, nil
}
