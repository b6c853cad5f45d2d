// @title           Todo API
// @version         1.0
// @description     Todo CRUD REST API with bearer-token authentication,
// @description     output caching and gzip compression.

// @host      localhost:8080
// @BasePath  /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
//
// Package main содержит точку входа серверного приложения todo API.
//
// Пакет отвечает за инициализацию и жизненный цикл HTTP(S)-сервера, а именно:
//   - загрузку переменных окружения из файла .env (если он присутствует);
//   - загрузку конфигурации сервера из файла ./configs/server.yaml;
//   - инициализацию подключения к базе данных и миграции;
//   - выбор хранилища output cache (memory или redis);
//   - создание репозиториев, сервисов, middleware и HTTP-обработчиков;
//   - обработку системных сигналов завершения (SIGINT, SIGTERM, SIGQUIT);
//   - корректное (graceful) завершение работы сервера с таймаутом.
//
// Пакет не содержит бизнес-логики и не предназначен для unit-тестирования.
package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/DiegoMiguel/design-webapi/internal/server/api"
	"github.com/DiegoMiguel/design-webapi/internal/server/cache"
	"github.com/DiegoMiguel/design-webapi/internal/server/config"
	"github.com/DiegoMiguel/design-webapi/internal/server/middleware"
	h "github.com/DiegoMiguel/design-webapi/internal/server/net/http"
	"github.com/DiegoMiguel/design-webapi/internal/server/repository"
	"github.com/DiegoMiguel/design-webapi/internal/server/service"
	"github.com/DiegoMiguel/design-webapi/internal/shared/logger"

	_ "github.com/DiegoMiguel/design-webapi/swagger/docs"
)

func main() {
	sugar := logger.NewHTTPLogger().Logger.Sugar()

	if err := godotenv.Load(); err != nil {
		sugar.Warnf("no .env file loaded, error: %v", err)
	}

	cfg, err := config.Load("./configs/server.yaml")
	if err != nil {
		sugar.Fatal(err)
	}

	// дальше пишем в логгер из конфига
	httpLogger := logger.New(logger.Options{
		Dir:    cfg.Log.Dir,
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	defer func() { _ = httpLogger.Sync() }()
	sugar = httpLogger.Sugar()

	// подключаем базу данных
	if err := config.Init(cfg, httpLogger); err != nil {
		sugar.Fatal(err)
	}

	// возвращаем указатель на db
	db := config.GetDB()
	// делаем отложенное закрытие бд
	defer func() {
		if db != nil {
			db.Close()
		}
	}()

	// создаём контекст и errgroup
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	// хранилище output cache
	store, closeStore, err := newCacheStore(ctx, cfg.Cache)
	if err != nil {
		sugar.Fatal(err)
	}
	defer closeStore()

	// создаём репы
	usersRepo := repository.NewUsersRepository(db, cfg.DB.QueryTimeout)
	todosRepo := repository.NewTodosRepository(db, cfg.DB.QueryTimeout)
	// складываем в репозиторий
	repos := service.Repositories{
		Users: usersRepo,
		Todos: todosRepo,
	}
	// создаём сервис
	svc := service.NewServices(repos, cfg)
	// создаём хандлер
	handler := api.NewHandler(svc, usersRepo, httpLogger)
	handler.MaxBodyBytes = cfg.Server.MaxBodyBytes
	// создаём роутер
	router := h.NewRouter(handler, h.Options{
		Verifier:       middleware.NewJWTVerifier(service.JWTConfigFrom(cfg.Auth)),
		Store:          store,
		CacheTTL:       cfg.Cache.TTL,
		TokenPath:      cfg.Auth.TokenPath,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Log:            httpLogger,
	})
	//создаём сервер
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
	}
	if cfg.TLS.Enabled {
		server.TLSConfig = &tls.Config{MinVersion: tlsVersion(cfg.TLS.MinVersion)}
	}

	g, ctx := errgroup.WithContext(ctx)

	// запускаем сервер
	g.Go(func() error {
		sugar.Infof("server started on %s (tls=%t)", addr, cfg.TLS.Enabled)

		var err error
		if cfg.TLS.Enabled {
			err = server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// graceful shutdown с таймаутом из конфига
	g.Go(func() error {
		<-ctx.Done()

		sugar.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			cfg.Server.ShutdownTimeout,
		)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	// ожидание и единная обработка ошибок
	if err := g.Wait(); err != nil {
		sugar.Fatalf("server stopped with error: %v", err)
	}
	sugar.Info("server gracefully stopped")
}

// newCacheStore выбирает хранилище по cache.driver.
// При выключенном кэше возвращает nil: роутер тогда не кэширует.
func newCacheStore(ctx context.Context, cfg config.CacheConfig) (cache.Store, func(), error) {
	noop := func() {}
	if !cfg.Enabled {
		return nil, noop, nil
	}

	switch cfg.Driver {
	case "redis":
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, noop, err
		}
		return cache.NewRedisStore(rdb, cfg.Redis.KeyPrefix), func() { _ = rdb.Close() }, nil
	default:
		return cache.NewMemoryStore(), noop, nil
	}
}

func tlsVersion(v string) uint16 {
	if v == "1.3" {
		return tls.VersionTLS13
	}
	return tls.VersionTLS12
}
