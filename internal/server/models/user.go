// Серверные модели сущностей, как они лежат в хранилище
package models

import (
	"time"

	"github.com/google/uuid"

	shared "github.com/DiegoMiguel/design-webapi/internal/shared/models"
)

type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	IsDeleted    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Public отдаёт пользователя без хэша пароля.
func (u User) Public() shared.User {
	return shared.User{
		ID:        u.ID,
		Username:  u.Username,
		IsDeleted: u.IsDeleted,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// PublicUsers — Public для слайса.
func PublicUsers(users []User) []shared.User {
	out := make([]shared.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out
}
