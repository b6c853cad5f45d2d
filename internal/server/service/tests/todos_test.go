package tests

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/DiegoMiguel/design-webapi/internal/server/models"
	"github.com/DiegoMiguel/design-webapi/internal/server/service"
	"github.com/DiegoMiguel/design-webapi/internal/server/service/mocks"
	serr "github.com/DiegoMiguel/design-webapi/internal/shared/errors"
)

func newTodoService(t *testing.T) (*service.TodoService, *mocks.MockTodosRepo) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockTodosRepo(ctrl)
	return service.NewTodoService(repo), repo
}

// один POST — ровно одна запись, владелец из пути
func TestTodoService_Create_SingleRecord(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTodoService(t)

	owner := uuid.New()
	repo.EXPECT().
		Create(ctx, owner, "buy milk").
		Return(models.Todo{ID: uuid.New(), OwnerUserID: owner, Description: "buy milk"}, nil).
		Times(1)

	got, err := svc.Create(ctx, owner, " buy milk ")
	require.NoError(t, err)
	require.Equal(t, owner, got.OwnerUserID)
}

func TestTodoService_Create_EmptyDescription(t *testing.T) {
	svc, _ := newTodoService(t)

	_, err := svc.Create(context.Background(), uuid.New(), "   ")
	require.ErrorIs(t, err, serr.ErrInvalidInput)
}

func TestTodoService_Create_NilOwner(t *testing.T) {
	svc, _ := newTodoService(t)

	_, err := svc.Create(context.Background(), uuid.Nil, "buy milk")
	require.ErrorIs(t, err, serr.ErrInvalidInput)
}

func TestTodoService_Create_OwnerNotFound(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTodoService(t)

	repo.EXPECT().
		Create(ctx, gomock.Any(), gomock.Any()).
		Return(models.Todo{}, serr.ErrOwnerNotFound)

	_, err := svc.Create(ctx, uuid.New(), "buy milk")
	require.ErrorIs(t, err, serr.ErrOwnerNotFound)
}

func TestTodoService_ListByUser(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTodoService(t)

	owner := uuid.New()
	repo.EXPECT().
		ListByUser(ctx, owner).
		Return([]models.Todo{{ID: uuid.New(), OwnerUserID: owner}}, nil)

	got, err := svc.ListByUser(ctx, owner)
	require.NoError(t, err)
	require.Len(t, got, 1)

	_, err = svc.ListByUser(ctx, uuid.Nil)
	require.ErrorIs(t, err, serr.ErrInvalidInput)
}

func TestTodoService_GetForUser_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTodoService(t)

	todoID, owner := uuid.New(), uuid.New()
	repo.EXPECT().
		GetForUser(ctx, todoID, owner).
		Return(models.Todo{}, serr.ErrNotFound)

	_, err := svc.GetForUser(ctx, todoID, owner)
	require.ErrorIs(t, err, serr.ErrNotFound)
}

func TestTodoService_Update(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTodoService(t)

	id := uuid.New()
	repo.EXPECT().
		Update(ctx, id, "new text").
		Return(models.Todo{ID: id, Description: "new text"}, nil)

	got, err := svc.Update(ctx, id, "new text")
	require.NoError(t, err)
	require.Equal(t, "new text", got.Description)

	_, err = svc.Update(ctx, id, "")
	require.ErrorIs(t, err, serr.ErrInvalidInput)
}

func TestTodoService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTodoService(t)

	id := uuid.New()
	repo.EXPECT().SoftDelete(ctx, id).Return(serr.ErrNotFound)

	require.ErrorIs(t, svc.Delete(ctx, id), serr.ErrNotFound)
	require.ErrorIs(t, svc.Delete(ctx, uuid.Nil), serr.ErrInvalidInput)
}

func TestTodoService_List(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTodoService(t)

	repo.EXPECT().List(ctx).Return([]models.Todo{}, nil)

	got, err := svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, got)
}
