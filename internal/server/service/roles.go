package service

import (
	"context"

	"github.com/DiegoMiguel/design-webapi/internal/server/models"
)

// RoleResolver определяет роль, которая попадёт в claim role токена.
type RoleResolver interface {
	RoleFor(ctx context.Context, u models.User) (string, error)
}

// StaticRoles выдаёт всем пользователям одну и ту же роль из конфига.
type StaticRoles struct {
	Role string
}

func (r StaticRoles) RoleFor(_ context.Context, _ models.User) (string, error) {
	return r.Role, nil
}
