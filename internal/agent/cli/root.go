// Package cli реализует командный интерфейс todoctl — клиента todo API.
//
// Пакет отвечает за:
//   - root-команду и набор подкоманд;
//   - разбор аргументов и флагов;
//   - загрузку сохранённого bearer-токена из локального файла;
//   - вызов API и вывод результата.
//
// Точка входа пакета — функция Execute.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/DiegoMiguel/design-webapi/internal/agent/api"
	"github.com/DiegoMiguel/design-webapi/internal/agent/config"
)

// DefaultServerURL — адрес сервера, если не задан --server и TODOCTL_SERVER.
const DefaultServerURL = "http://127.0.0.1:8080"

// ErrNotLoggedIn — нет сохранённого токена или он истёк.
var ErrNotLoggedIn = errors.New("not logged in (run: todoctl login)")

// App — состояние CLI, общее для всех команд.
type App struct {
	// ServerURL — базовый URL сервера.
	ServerURL string
	// Insecure отключает проверку TLS сертификата сервера.
	Insecure bool
	// TokenPath — путь token endpoint на сервере.
	TokenPath string

	// CredsPath — путь к файлу с сохранённым токеном.
	CredsPath string
	// Creds — загруженные учётные данные; nil до PersistentPreRunE.
	Creds *config.Credentials
}

// Client возвращает API-клиент с настройками приложения.
func (a *App) Client() *api.Client {
	opts := []api.Option{api.WithTokenPath(a.TokenPath)}
	if a.Insecure {
		opts = append(opts, api.WithInsecureTLS())
	}
	return NewAPIClient(a.ServerURL, opts...)
}

// AccessToken возвращает действующий токен или ErrNotLoggedIn.
func (a *App) AccessToken() (string, error) {
	if !a.Creds.Valid(Now()) {
		return "", ErrNotLoggedIn
	}
	return a.Creds.AccessToken, nil
}

func serverFromEnv() string {
	if s := os.Getenv("TODOCTL_SERVER"); s != "" {
		return s
	}
	return DefaultServerURL
}

// NewRootCmd создаёт root-команду и регистрирует подкоманды.
//
// buildVersion и buildDate выводит команда version.
// PersistentPreRunE определяет путь к файлу учётных данных и загружает токен.
func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:   "todoctl",
		Short: "todoctl — клиент todo API",
		Long: `todoctl — консольный клиент todo API.

Примеры:

Регистрация:
  todoctl register --username alice --password StrongPass123

Логин (токен сохраняется локально):
  todoctl login --username alice

Задачи:
  todoctl todos list
  todoctl todos create <userId> --description "buy milk"
  todoctl todos get <todoId> <userId>
  todoctl todos update <todoId> --description "buy oat milk"
  todoctl todos delete <todoId>

Пользователи:
  todoctl users list
  todoctl users get <userId>
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.CredsPath == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				app.CredsPath = p
			}

			creds, err := config.Load(app.CredsPath)
			if err != nil {
				return fmt.Errorf("load credentials %s: %w", app.CredsPath, err)
			}
			app.Creds = creds
			return nil
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	pf := cmd.PersistentFlags()
	pf.StringVar(&app.ServerURL, "server", serverFromEnv(), "server base URL (env TODOCTL_SERVER)")
	pf.BoolVar(&app.Insecure, "insecure", false, "skip TLS certificate verification")
	pf.StringVar(&app.TokenPath, "token-path", "/bearerToken", "token endpoint path")
	pf.StringVar(&app.CredsPath, "credentials", "", "credentials file (default <config dir>/todoctl/credentials.json)")

	cmd.AddCommand(NewRegisterCmd(app))
	cmd.AddCommand(NewLoginCmd(app))
	cmd.AddCommand(NewLogoutCmd(app))
	cmd.AddCommand(NewTodosCmd(app))
	cmd.AddCommand(NewUsersCmd(app))
	cmd.AddCommand(NewVersionCmd(buildVersion, buildDate))

	return cmd
}

// Execute запускает CLI. При ошибке печатает её в stderr и выходит с кодом 1.
func Execute(buildVersion, buildDate string) {
	if err := NewRootCmd(buildVersion, buildDate).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
