// Package http реализует маршрутизацию HTTP-слоя todo API.
//
// Пакет отвечает за:
//   - регистрацию HTTP-маршрутов и настройку роутера (chi);
//   - цепочки middleware на уровне маршрутов: JWT, output cache, gzip;
//   - CORS, логирование и восстановление после паники для всех запросов.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/DiegoMiguel/design-webapi/internal/server/api"
	"github.com/DiegoMiguel/design-webapi/internal/server/cache"
	"github.com/DiegoMiguel/design-webapi/internal/server/middleware"
	"github.com/DiegoMiguel/design-webapi/internal/shared/logger"
)

// Группы output cache. Ключи группы имеют вид "<группа>:<uri>".
const (
	CacheGroupTodos = "todos"
	CacheGroupUsers = "users"
)

// Options — зависимости роутера помимо хендлеров.
type Options struct {
	Verifier *middleware.JWTVerifier
	// Store == nil выключает output cache
	Store          cache.Store
	CacheTTL       time.Duration
	TokenPath      string
	AllowedOrigins []string
	Log            *logger.HTTPLogger
}

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// Роутер использует chi.Router и регистрирует:
//   - /api/todos — без аутентификации, GET кэшируются;
//   - /api/users — bearer на всём, кроме POST (саморегистрация);
//     GET кэшируются, список ещё и сжимается gzip,
//     успешные изменения сбрасывают кэш группы users;
//   - token endpoint (по умолчанию /bearerToken);
//   - /swagger/* и /health.
func NewRouter(h *api.Handler, opts Options) http.Handler {
	if opts.TokenPath == "" {
		opts.TokenPath = "/bearerToken"
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	// логирование всех запросов
	r.Use(middleware.LoggerMiddleware(opts.Log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"X-Cache"},
		MaxAge:         300,
	}))

	// добавляем swagger
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/health", h.HealthCheck)

	// выдача токена
	r.Post(opts.TokenPath, h.Token)

	todosCache := middleware.NewOutputCache(opts.Store, CacheGroupTodos, opts.CacheTTL, opts.Log)
	usersCache := middleware.NewOutputCache(opts.Store, CacheGroupUsers, opts.CacheTTL, opts.Log)
	gzip := chimw.Compress(5, "application/json")

	r.Route("/api/todos", func(r chi.Router) {
		cached := r.With(todosCache.Middleware())
		cached.Get("/", h.ListTodos)
		cached.Get("/{todoId}/{userId}", h.GetTodoForUser)
		cached.Get("/{userId}", h.ListUserTodos)

		r.Post("/{userId}", h.CreateTodo)
		r.Put("/{todoId}", h.UpdateTodo)
		r.Delete("/{todoId}", h.DeleteTodo)
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Use(usersCache.Invalidate())

		// саморегистрация без токена
		r.Post("/", h.CreateUser)

		// защищены пути
		r.Group(func(r chi.Router) {
			// проверка access токена
			r.Use(opts.Verifier.AuthMiddleware())

			// gzip снаружи кэша: в кэше лежит несжатое тело
			r.With(gzip, usersCache.Middleware()).Get("/", h.ListUsers)
			r.With(usersCache.Middleware()).Get("/{userId}", h.GetUser)
			r.Put("/{userId}", h.UpdateUser)
			r.Delete("/{userId}", h.DeleteUser)
		})
	})

	return r
}
