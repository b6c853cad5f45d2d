package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/DiegoMiguel/design-webapi/internal/server/models"
	serr "github.com/DiegoMiguel/design-webapi/internal/shared/errors"
)

const todoColumns = `id, description, user_id, is_deleted, created_at, updated_at`

// TodosRepository реализует доступ к задачам (PostgreSQL).
// Отвечает исключительно за сохранение и извлечение данных без бизнес-логики.
type TodosRepository struct {
	base
}

// NewTodosRepository создаёт новый экземпляр TodosRepository.
func NewTodosRepository(db *sql.DB, queryTimeout time.Duration) *TodosRepository {
	return &TodosRepository{base{db: db, timeout: queryTimeout}}
}

func scanTodo(row rowScanner) (models.Todo, error) {
	var t models.Todo
	err := row.Scan(&t.ID, &t.Description, &t.OwnerUserID, &t.IsDeleted, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// Create сохраняет одну задачу владельца ownerID.
//
// Владелец должен существовать и не быть удалённым: вставка идёт через
// SELECT по users, поэтому для отсутствующего владельца строка не появится.
//
// Ошибки:
//   - ErrOwnerNotFound — владельца нет или он удалён
//   - ErrInternal — ошибка базы данных
func (r *TodosRepository) Create(ctx context.Context, ownerID uuid.UUID, description string) (models.Todo, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	t, err := scanTodo(r.db.QueryRowContext(ctx,
		`INSERT INTO todos (description, user_id)
		 SELECT $1, u.id
		   FROM users u
		  WHERE u.id = $2
		    AND NOT u.is_deleted
		 RETURNING `+todoColumns,
		description, ownerID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Todo{}, serr.ErrOwnerNotFound
		}
		return models.Todo{}, mapError(err)
	}
	return t, nil
}

// List возвращает все не удалённые задачи.
func (r *TodosRepository) List(ctx context.Context) ([]models.Todo, error) {
	return r.list(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE NOT is_deleted ORDER BY created_at, id`,
	)
}

// ListByUser возвращает не удалённые задачи одного владельца.
func (r *TodosRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Todo, error) {
	return r.list(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE user_id = $1 AND NOT is_deleted ORDER BY created_at, id`,
		userID,
	)
}

func (r *TodosRepository) list(ctx context.Context, query string, args ...any) ([]models.Todo, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	todos := make([]models.Todo, 0)
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, mapError(err)
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return todos, nil
}

// GetForUser возвращает задачу todoID владельца userID.
// Логически удалённые задачи по прямому id тоже читаются.
func (r *TodosRepository) GetForUser(ctx context.Context, todoID, userID uuid.UUID) (models.Todo, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	t, err := scanTodo(r.db.QueryRowContext(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE id = $1 AND user_id = $2`,
		todoID, userID,
	))
	if err != nil {
		return models.Todo{}, mapError(err)
	}
	return t, nil
}

// Update полностью заменяет изменяемые поля задачи (сейчас это description).
func (r *TodosRepository) Update(ctx context.Context, todoID uuid.UUID, description string) (models.Todo, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	t, err := scanTodo(r.db.QueryRowContext(ctx,
		`UPDATE todos
		    SET description = $2,
		        updated_at = now()
		  WHERE id = $1
		    AND NOT is_deleted
		 RETURNING `+todoColumns,
		todoID, description,
	))
	if err != nil {
		return models.Todo{}, mapError(err)
	}
	return t, nil
}

// SoftDelete помечает задачу удалённой.
func (r *TodosRepository) SoftDelete(ctx context.Context, todoID uuid.UUID) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`UPDATE todos
		    SET is_deleted = TRUE,
		        updated_at = now()
		  WHERE id = $1
		    AND NOT is_deleted`,
		todoID,
	)
	if err != nil {
		return mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if n == 0 {
		return serr.ErrNotFound
	}
	return nil
}
