package tests

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/DiegoMiguel/design-webapi/internal/server/repository"
	serr "github.com/DiegoMiguel/design-webapi/internal/shared/errors"
)

var todoCols = []string{"id", "description", "user_id", "is_deleted", "created_at", "updated_at"}

func newTodosRepo(t *testing.T) (*repository.TodosRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return repository.NewTodosRepository(db, time.Second), mock
}

func TestTodosRepository_Create_OK(t *testing.T) {
	repo, mock := newTodosRepo(t)

	id, owner := uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO todos \(description, user_id\)\s+SELECT \$1, u.id\s+FROM users u`).
		WithArgs("buy milk", owner).
		WillReturnRows(sqlmock.NewRows(todoCols).AddRow(id.String(), "buy milk", owner.String(), false, now, now))

	got, err := repo.Create(context.Background(), owner, "buy milk")
	require.NoError(t, err)
	require.Equal(t, id, got.ID)
	require.Equal(t, owner, got.OwnerUserID)
	require.Equal(t, "buy milk", got.Description)
	require.NoError(t, mock.ExpectationsWereMet())
}

// владелец не найден или удалён — INSERT ... SELECT не вернул строк
func TestTodosRepository_Create_OwnerMissing(t *testing.T) {
	repo, mock := newTodosRepo(t)

	mock.ExpectQuery(`INSERT INTO todos`).
		WillReturnRows(sqlmock.NewRows(todoCols))

	_, err := repo.Create(context.Background(), uuid.New(), "buy milk")
	require.ErrorIs(t, err, serr.ErrOwnerNotFound)
}

func TestTodosRepository_Create_ForeignKeyViolation(t *testing.T) {
	repo, mock := newTodosRepo(t)

	mock.ExpectQuery(`INSERT INTO todos`).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	_, err := repo.Create(context.Background(), uuid.New(), "buy milk")
	require.ErrorIs(t, err, serr.ErrOwnerNotFound)
}

func TestTodosRepository_Create_InternalError(t *testing.T) {
	repo, mock := newTodosRepo(t)

	mock.ExpectQuery(`INSERT INTO todos`).
		WillReturnError(sql.ErrConnDone)

	_, err := repo.Create(context.Background(), uuid.New(), "buy milk")
	require.ErrorIs(t, err, serr.ErrInternal)
}

func TestTodosRepository_List_ExcludesDeleted(t *testing.T) {
	repo, mock := newTodosRepo(t)

	now := time.Now()
	owner := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM todos WHERE NOT is_deleted`).
		WillReturnRows(sqlmock.NewRows(todoCols).
			AddRow(uuid.NewString(), "a", owner.String(), false, now, now).
			AddRow(uuid.NewString(), "b", owner.String(), false, now, now))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestTodosRepository_List_QueryError(t *testing.T) {
	repo, mock := newTodosRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM todos`).
		WillReturnError(sql.ErrConnDone)

	_, err := repo.List(context.Background())
	require.ErrorIs(t, err, serr.ErrInternal)
}

func TestTodosRepository_ListByUser_OK(t *testing.T) {
	repo, mock := newTodosRepo(t)

	now := time.Now()
	owner := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM todos WHERE user_id = \$1 AND NOT is_deleted`).
		WithArgs(owner).
		WillReturnRows(sqlmock.NewRows(todoCols).
			AddRow(uuid.NewString(), "a", owner.String(), false, now, now))

	got, err := repo.ListByUser(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, owner, got[0].OwnerUserID)
}

func TestTodosRepository_ListByUser_Empty(t *testing.T) {
	repo, mock := newTodosRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM todos WHERE user_id`).
		WillReturnRows(sqlmock.NewRows(todoCols))

	got, err := repo.ListByUser(context.Background(), uuid.New())
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

// удалённая задача по прямому id читается
func TestTodosRepository_GetForUser_ReturnsDeleted(t *testing.T) {
	repo, mock := newTodosRepo(t)

	id, owner := uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM todos WHERE id = \$1 AND user_id = \$2`).
		WithArgs(id, owner).
		WillReturnRows(sqlmock.NewRows(todoCols).AddRow(id.String(), "a", owner.String(), true, now, now))

	got, err := repo.GetForUser(context.Background(), id, owner)
	require.NoError(t, err)
	require.True(t, got.IsDeleted)
}

func TestTodosRepository_GetForUser_NotFound(t *testing.T) {
	repo, mock := newTodosRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM todos WHERE id`).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetForUser(context.Background(), uuid.New(), uuid.New())
	require.ErrorIs(t, err, serr.ErrNotFound)
}

func TestTodosRepository_Update_OK(t *testing.T) {
	repo, mock := newTodosRepo(t)

	id, owner := uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectQuery(`UPDATE todos\s+SET description = \$2`).
		WithArgs(id, "new text").
		WillReturnRows(sqlmock.NewRows(todoCols).AddRow(id.String(), "new text", owner.String(), false, now, now))

	got, err := repo.Update(context.Background(), id, "new text")
	require.NoError(t, err)
	require.Equal(t, "new text", got.Description)
}

func TestTodosRepository_Update_NotFound(t *testing.T) {
	repo, mock := newTodosRepo(t)

	mock.ExpectQuery(`UPDATE todos`).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), uuid.New(), "x")
	require.ErrorIs(t, err, serr.ErrNotFound)
}

func TestTodosRepository_SoftDelete_OK(t *testing.T) {
	repo, mock := newTodosRepo(t)

	id := uuid.New()
	mock.ExpectExec(`UPDATE todos\s+SET is_deleted = TRUE`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SoftDelete(context.Background(), id))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTodosRepository_SoftDelete_AlreadyDeleted(t *testing.T) {
	repo, mock := newTodosRepo(t)

	mock.ExpectExec(`UPDATE todos`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SoftDelete(context.Background(), uuid.New())
	require.ErrorIs(t, err, serr.ErrNotFound)
}
