package tests

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/DiegoMiguel/design-webapi/internal/server/api"
	"github.com/DiegoMiguel/design-webapi/internal/server/config"
	"github.com/DiegoMiguel/design-webapi/internal/server/service"
	svcmocks "github.com/DiegoMiguel/design-webapi/internal/server/service/mocks"
	"github.com/DiegoMiguel/design-webapi/internal/shared/logger"
)

type testDeps struct {
	users  *svcmocks.MockUsersRepo
	todos  *svcmocks.MockTodosRepo
	health *svcmocks.MockHealthRepo
	cfg    *config.Config
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			Issuer:      "issuer",
			Audience:    "audience",
			AccessTTL:   24 * time.Hour,
			TokenPath:   "/bearerToken",
			DefaultRole: "admin",
			JWT: config.JWTConfig{
				Algorithm:  "HS256",
				SigningKey: "supersecretkeysupersecretkey123456", // >= 32
			},
		},
		Password: config.PasswordConfig{
			Hasher: "bcrypt",
			Bcrypt: config.BcryptConfig{Cost: bcrypt.MinCost},
		},
	}
}

// NewTestHandler создаёт Handler с моками и конфигом через dependency injection
func NewTestHandler(t *testing.T) (*api.Handler, testDeps) {
	t.Helper()

	ctrl := gomock.NewController(t)

	d := testDeps{
		users:  svcmocks.NewMockUsersRepo(ctrl),
		todos:  svcmocks.NewMockTodosRepo(ctrl),
		health: svcmocks.NewMockHealthRepo(ctrl),
		cfg:    testConfig(),
	}

	svc := service.NewServices(service.Repositories{Users: d.users, Todos: d.todos}, d.cfg)
	log := logger.New(logger.Options{Dir: t.TempDir(), Level: "debug"})

	h := api.NewHandler(svc, d.health, log)
	h.MaxBodyBytes = 1 << 20
	return h, d
}

// withParams подкладывает параметры пути chi без роутера
func withParams(r *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
