package tests

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/DiegoMiguel/design-webapi/internal/server/cache"
	"github.com/DiegoMiguel/design-webapi/internal/server/middleware"
)

func countingHandler(calls *int32, status int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

func do(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, target, nil))
	return rr
}

// второй GET отдаётся из кэша, обработчик не вызывается
func TestOutputCache_MissThenHit(t *testing.T) {
	var calls int32
	oc := middleware.NewOutputCache(cache.NewMemoryStore(), "todos", 60*time.Second, nil)
	h := oc.Middleware()(countingHandler(&calls, http.StatusOK, `[{"id":1}]`))

	first := do(h, http.MethodGet, "/api/todos")
	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, "MISS", first.Header().Get("X-Cache"))
	require.Equal(t, "public, max-age=60", first.Header().Get("Cache-Control"))

	second := do(h, http.MethodGet, "/api/todos")
	require.Equal(t, http.StatusOK, second.Code)
	require.Equal(t, "HIT", second.Header().Get("X-Cache"))
	require.Equal(t, "application/json", second.Header().Get("Content-Type"))
	require.Equal(t, `[{"id":1}]`, second.Body.String())

	require.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

// query входит в ключ
func TestOutputCache_QueryIsPartOfKey(t *testing.T) {
	var calls int32
	oc := middleware.NewOutputCache(cache.NewMemoryStore(), "todos", time.Minute, nil)
	h := oc.Middleware()(countingHandler(&calls, http.StatusOK, `[]`))

	do(h, http.MethodGet, "/api/todos?page=1")
	do(h, http.MethodGet, "/api/todos?page=2")
	do(h, http.MethodGet, "/api/todos?page=1")

	require.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

// ответы кроме 200 не кэшируются
func TestOutputCache_ErrorsNotCached(t *testing.T) {
	var calls int32
	oc := middleware.NewOutputCache(cache.NewMemoryStore(), "todos", time.Minute, nil)
	h := oc.Middleware()(countingHandler(&calls, http.StatusBadRequest, `{"error":"not found"}`))

	first := do(h, http.MethodGet, "/api/todos/x")
	require.Equal(t, http.StatusBadRequest, first.Code)
	require.Empty(t, first.Header().Get("Cache-Control"))

	do(h, http.MethodGet, "/api/todos/x")
	require.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

// не-GET запросы проходят мимо кэша
func TestOutputCache_NonGetBypass(t *testing.T) {
	var calls int32
	oc := middleware.NewOutputCache(cache.NewMemoryStore(), "todos", time.Minute, nil)
	h := oc.Middleware()(countingHandler(&calls, http.StatusOK, `{}`))

	do(h, http.MethodPost, "/api/todos/1")
	do(h, http.MethodPost, "/api/todos/1")

	require.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

// параллельные промахи по одному ключу дают один вызов обработчика
func TestOutputCache_CoalescesConcurrentMisses(t *testing.T) {
	var calls int32
	release := make(chan struct{})

	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		<-release
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	oc := middleware.NewOutputCache(cache.NewMemoryStore(), "users", time.Minute, nil)
	h := oc.Middleware()(slow)

	const n = 8
	var wg sync.WaitGroup
	codes := make([]int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = do(h, http.MethodGet, "/api/users").Code
		}(i)
	}

	// даём горутинам встать в очередь singleflight
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, c := range codes {
		require.Equal(t, http.StatusOK, c)
	}
	require.LessOrEqual(t, atomic.LoadInt32(&calls), int32(n))
	require.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(1))

	// после заполнения кэша обработчик больше не вызывается
	before := atomic.LoadInt32(&calls)
	require.Equal(t, "HIT", do(h, http.MethodGet, "/api/users").Header().Get("X-Cache"))
	require.Equal(t, before, atomic.LoadInt32(&calls))
}

// успешная мутация сбрасывает записи группы
func TestOutputCache_InvalidateOnSuccess(t *testing.T) {
	store := cache.NewMemoryStore()
	oc := middleware.NewOutputCache(store, "users", time.Minute, nil)

	var reads int32
	get := oc.Middleware()(countingHandler(&reads, http.StatusOK, `[]`))
	do(get, http.MethodGet, "/api/users")
	do(get, http.MethodGet, "/api/users/1")
	require.Equal(t, 2, store.Len())

	var writes int32
	put := oc.Invalidate()(countingHandler(&writes, http.StatusOK, `{}`))
	do(put, http.MethodPut, "/api/users/1")

	require.Equal(t, 0, store.Len())
	require.Equal(t, "MISS", do(get, http.MethodGet, "/api/users").Header().Get("X-Cache"))
}

// неуспешная мутация кэш не трогает
func TestOutputCache_NoInvalidateOnFailure(t *testing.T) {
	store := cache.NewMemoryStore()
	oc := middleware.NewOutputCache(store, "users", time.Minute, nil)

	var reads, writes int32
	do(oc.Middleware()(countingHandler(&reads, http.StatusOK, `[]`)), http.MethodGet, "/api/users")

	do(oc.Invalidate()(countingHandler(&writes, http.StatusBadRequest, `{}`)), http.MethodDelete, "/api/users/1")
	require.Equal(t, 1, store.Len())
}

// другие группы не затрагиваются
func TestOutputCache_InvalidateScopedToGroup(t *testing.T) {
	store := cache.NewMemoryStore()
	users := middleware.NewOutputCache(store, "users", time.Minute, nil)
	todos := middleware.NewOutputCache(store, "todos", time.Minute, nil)

	var calls int32
	do(todos.Middleware()(countingHandler(&calls, http.StatusOK, `[]`)), http.MethodGet, "/api/todos")
	do(users.Invalidate()(countingHandler(&calls, http.StatusNoContent, ``)), http.MethodDelete, "/api/users/1")

	require.Equal(t, 1, store.Len())
}

// GET, прочитавший старые данные до мутации, не должен записать их в кэш
// так, чтобы их увидели запросы после мутации
func TestOutputCache_StaleMissAfterInvalidate(t *testing.T) {
	store := cache.NewMemoryStore()
	oc := middleware.NewOutputCache(store, "users", time.Minute, nil)

	var state atomic.Value
	state.Store("old")

	read := make(chan struct{})
	release := make(chan struct{})
	var first int32
	users := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := state.Load().(string)
		if atomic.CompareAndSwapInt32(&first, 0, 1) {
			close(read)
			<-release
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	})
	get := oc.Middleware()(users)

	done := make(chan *httptest.ResponseRecorder)
	go func() { done <- do(get, http.MethodGet, "/api/users") }()
	<-read

	put := oc.Invalidate()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state.Store("new")
		w.WriteHeader(http.StatusOK)
	}))
	require.Equal(t, http.StatusOK, do(put, http.MethodPut, "/api/users/1").Code)

	close(release)
	rr := <-done
	require.Equal(t, "old", rr.Body.String())

	rr = do(get, http.MethodGet, "/api/users")
	require.Equal(t, "MISS", rr.Header().Get("X-Cache"))
	require.Equal(t, "new", rr.Body.String())

	rr = do(get, http.MethodGet, "/api/users")
	require.Equal(t, "HIT", rr.Header().Get("X-Cache"))
	require.Equal(t, "new", rr.Body.String())
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) (cache.Entry, bool, error) {
	return cache.Entry{}, false, errors.New("down")
}
func (failingStore) Set(context.Context, string, cache.Entry, time.Duration) error {
	return errors.New("down")
}
func (failingStore) InvalidatePrefix(context.Context, string) error { return errors.New("down") }
func (failingStore) Generation(context.Context, string) (uint64, error) {
	return 0, errors.New("down")
}

// сбой хранилища не ломает запрос
func TestOutputCache_StoreFailurePassThrough(t *testing.T) {
	l, _ := testLogger(t)
	oc := middleware.NewOutputCache(failingStore{}, "users", time.Minute, l)

	var calls int32
	h := oc.Middleware()(countingHandler(&calls, http.StatusOK, `[]`))

	rr := do(h, http.MethodGet, "/api/users")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, `[]`, rr.Body.String())

	rr = do(oc.Invalidate()(countingHandler(&calls, http.StatusOK, `{}`)), http.MethodPost, "/api/users")
	require.Equal(t, http.StatusOK, rr.Code)
}
