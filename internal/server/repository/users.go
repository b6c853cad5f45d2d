package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/DiegoMiguel/design-webapi/internal/server/models"
	serr "github.com/DiegoMiguel/design-webapi/internal/shared/errors"
)

const userColumns = `id, username, password_hash, is_deleted, created_at, updated_at`

// UsersRepository отвечает за хранение пользователей.
//
// Удаление логическое: is_deleted = true. Удалённые пользователи не попадают
// в List и не могут войти, но читаются по id.
type UsersRepository struct {
	base
}

// NewUsersRepository создаёт новый UsersRepository.
// queryTimeout = 0 отключает ограничение времени запроса.
func NewUsersRepository(db *sql.DB, queryTimeout time.Duration) *UsersRepository {
	return &UsersRepository{base{db: db, timeout: queryTimeout}}
}

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsDeleted, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// Create сохраняет нового пользователя.
//
// Ошибки:
//   - ErrAlreadyExists если username занят
//   - ErrInternal при других ошибках БД
func (r *UsersRepository) Create(ctx context.Context, username, passwordHash string) (models.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	u, err := scanUser(r.db.QueryRowContext(ctx,
		`INSERT INTO users (username, password_hash)
		 VALUES ($1,$2)
		 RETURNING `+userColumns,
		username, passwordHash,
	))
	if err != nil {
		return models.User{}, mapError(err)
	}
	return u, nil
}

// GetByID возвращает пользователя по id, в том числе логически удалённого.
func (r *UsersRepository) GetByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id=$1`,
		id,
	))
	if err != nil {
		return models.User{}, mapError(err)
	}
	return u, nil
}

// GetByUsername ищет активного пользователя по username (без учёта регистра).
// Используется при выдаче токена.
func (r *UsersRepository) GetByUsername(ctx context.Context, username string) (models.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(username)=lower($1) AND NOT is_deleted`,
		username,
	))
	if err != nil {
		return models.User{}, mapError(err)
	}
	return u, nil
}

// List возвращает всех не удалённых пользователей.
func (r *UsersRepository) List(ctx context.Context) ([]models.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE NOT is_deleted ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, mapError(err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return users, nil
}

// Update заменяет username и, если passwordHash != nil, хэш пароля.
//
// Ошибки:
//   - ErrNotFound если пользователя нет или он удалён
//   - ErrAlreadyExists если новый username занят
func (r *UsersRepository) Update(ctx context.Context, id uuid.UUID, username string, passwordHash *string) (models.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	u, err := scanUser(r.db.QueryRowContext(ctx,
		`UPDATE users
		    SET username = $2,
		        password_hash = COALESCE($3, password_hash),
		        updated_at = now()
		  WHERE id = $1
		    AND NOT is_deleted
		 RETURNING `+userColumns,
		id, username, passwordHash,
	))
	if err != nil {
		return models.User{}, mapError(err)
	}
	return u, nil
}

// SoftDelete помечает пользователя удалённым.
func (r *UsersRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`UPDATE users
		    SET is_deleted = TRUE,
		        updated_at = now()
		  WHERE id = $1
		    AND NOT is_deleted`,
		id,
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
