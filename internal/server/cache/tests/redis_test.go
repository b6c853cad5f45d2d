package tests

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/DiegoMiguel/design-webapi/internal/server/cache"
)

// интеграционный тест: нужен живой Redis в TEST_REDIS_ADDR
func TestRedisStore_Integration(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR не задан")
	}

	ctx := context.Background()
	rdb, err := cache.NewRedisClient(ctx, addr, os.Getenv("TEST_REDIS_PASSWORD"), 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	// уникальный префикс, чтобы не задеть чужие ключи
	s := cache.NewRedisStore(rdb, "test-"+uuid.NewString()+":")
	t.Cleanup(func() { _ = s.InvalidatePrefix(ctx, "") })

	want := cache.Entry{Status: 200, ContentType: "application/json", Body: []byte(`[{"id":1}]`)}
	require.NoError(t, s.Set(ctx, "users:/api/users", want, time.Minute))
	require.NoError(t, s.Set(ctx, "todos:/api/todos", want, time.Minute))

	got, ok, err := s.Get(ctx, "users:/api/users")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, want, got)

	gen, err := s.Generation(ctx, "users:")
	require.NoError(t, err)
	require.Zero(t, gen)

	require.NoError(t, s.InvalidatePrefix(ctx, "users:"))

	gen, err = s.Generation(ctx, "users:")
	require.NoError(t, err)
	require.EqualValues(t, 1, gen)

	_, ok, err = s.Get(ctx, "users:/api/users")
	require.NoError(t, err)
	require.False(t, ok)

	_, ok, err = s.Get(ctx, "todos:/api/todos")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	_, err := cache.NewRedisClient(context.Background(), "127.0.0.1:1", "", 0)
	require.Error(t, err)
}
