package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/DiegoMiguel/design-webapi/internal/agent/config"
)

// NewLoginCmd создаёт команду входа.
//
// Команда получает bearer-токен по password grant и сохраняет его
// в файл учётных данных. Без --password пароль запрашивается из терминала.
//
// Пример:
//
//	todoctl login --username alice
func NewLoginCmd(app *App) *cobra.Command {
	var (
		username, password string
		passwordStdin      bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Логин пользователя (получить bearer-токен)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := passwordFrom(cmd, password, passwordStdin)
			if err != nil {
				return err
			}

			tok, err := app.Client().Token(username, pw)
			if err != nil {
				return err
			}

			creds := &config.Credentials{
				AccessToken: tok.AccessToken,
				Username:    tok.UserName,
				Role:        tok.Role,
			}
			if tok.ExpiresIn > 0 {
				creds.ExpiresAt = Now().Add(time.Duration(tok.ExpiresIn) * time.Second).UTC()
			}
			if err := config.Save(app.CredsPath, creds); err != nil {
				return err
			}
			app.Creds = creds

			fmt.Fprintln(cmd.OutOrStdout(), "login ok (token saved)")
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "user name")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted if empty)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read password from stdin")
	cmd.MarkFlagRequired("username")

	return cmd
}

// NewLogoutCmd удаляет сохранённый токен.
func NewLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Удалить сохранённый токен",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Remove(app.CredsPath); err != nil {
				return err
			}
			app.Creds = &config.Credentials{}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}
