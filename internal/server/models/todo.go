package models

import (
	"time"

	"github.com/google/uuid"

	shared "github.com/DiegoMiguel/design-webapi/internal/shared/models"
)

type Todo struct {
	ID          uuid.UUID
	Description string
	OwnerUserID uuid.UUID
	IsDeleted   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (t Todo) Public() shared.Todo {
	return shared.Todo{
		ID:          t.ID,
		Description: t.Description,
		OwnerUserID: t.OwnerUserID,
		IsDeleted:   t.IsDeleted,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func PublicTodos(todos []Todo) []shared.Todo {
	out := make([]shared.Todo, 0, len(todos))
	for _, t := range todos {
		out = append(out, t.Public())
	}
	return out
}
