package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/DiegoMiguel/design-webapi/internal/server/models"
	serr "github.com/DiegoMiguel/design-webapi/internal/shared/errors"
)

// TodoService — CRUD задач поверх TodosRepo.
//
// Сервис не хранит состояния между запросами и создаётся один раз при старте.
type TodoService struct {
	repo TodosRepo
}

// NewTodoService создаёт новый TodoService.
func NewTodoService(repo TodosRepo) *TodoService {
	return &TodoService{repo: repo}
}

// List возвращает все не удалённые задачи.
func (s *TodoService) List(ctx context.Context) ([]models.Todo, error) {
	return s.repo.List(ctx)
}

// ListByUser возвращает задачи одного владельца.
func (s *TodoService) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Todo, error) {
	if userID == uuid.Nil {
		return nil, serr.ErrInvalidInput
	}
	return s.repo.ListByUser(ctx, userID)
}

// GetForUser возвращает задачу, принадлежащую userID.
func (s *TodoService) GetForUser(ctx context.Context, todoID, userID uuid.UUID) (models.Todo, error) {
	if todoID == uuid.Nil || userID == uuid.Nil {
		return models.Todo{}, serr.ErrInvalidInput
	}
	return s.repo.GetForUser(ctx, todoID, userID)
}

// Create сохраняет ровно одну задачу с описанием вызывающего.
// Владелец задачи всегда userID из пути запроса.
func (s *TodoService) Create(ctx context.Context, userID uuid.UUID, description string) (models.Todo, error) {
	description = strings.TrimSpace(description)
	if userID == uuid.Nil || description == "" {
		return models.Todo{}, serr.ErrInvalidInput
	}

	t, err := s.repo.Create(ctx, userID, description)
	if err != nil {
		return models.Todo{}, fmt.Errorf("create todo: %w", err)
	}
	return t, nil
}

// Update заменяет изменяемые поля задачи.
func (s *TodoService) Update(ctx context.Context, todoID uuid.UUID, description string) (models.Todo, error) {
	description = strings.TrimSpace(description)
	if todoID == uuid.Nil || description == "" {
		return models.Todo{}, serr.ErrInvalidInput
	}

	t, err := s.repo.Update(ctx, todoID, description)
	if err != nil {
		return models.Todo{}, fmt.Errorf("update todo: %w", err)
	}
	return t, nil
}

// Delete логически удаляет задачу.
func (s *TodoService) Delete(ctx context.Context, todoID uuid.UUID) error {
	if todoID == uuid.Nil {
		return serr.ErrInvalidInput
	}
	if err := s.repo.SoftDelete(ctx, todoID); err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	return nil
}
