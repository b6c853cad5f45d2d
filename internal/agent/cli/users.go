package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	shared "github.com/DiegoMiguel/design-webapi/internal/shared/models"
	"github.com/DiegoMiguel/design-webapi/internal/shared/utils"
)

// NewUsersCmd создаёт группу команд для работы с пользователями.
func NewUsersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Пользователи: list, get, update, delete",
	}

	cmd.AddCommand(
		newUsersListCmd(app),
		newUsersGetCmd(app),
		newUsersUpdateCmd(app),
		newUsersDeleteCmd(app),
	)
	return cmd
}

func newUsersListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Список пользователей",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.AccessToken()
			if err != nil {
				return err
			}
			users, err := app.Client().ListUsers(token)
			if err != nil {
				return err
			}
			return printUsers(cmd.OutOrStdout(), users)
		},
	}
}

func newUsersGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <userId>",
		Short: "Пользователь по id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.AccessToken()
			if err != nil {
				return err
			}
			u, err := app.Client().GetUser(args[0], token)
			if err != nil {
				return err
			}
			return printUsers(cmd.OutOrStdout(), []shared.User{u})
		},
	}
}

// todoctl users update <userId> --username bob [--password ...]
// Пароль меняется только если передан --password.
func newUsersUpdateCmd(app *App) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "update <userId>",
		Short: "Изменить имя и, опционально, пароль",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.AccessToken()
			if err != nil {
				return err
			}

			var pw *string
			if cmd.Flags().Changed("password") {
				pw = utils.Ptr(password)
			}
			u, err := app.Client().UpdateUser(args[0], username, pw, token)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated user id=%s username=%s\n", u.ID, u.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "new user name")
	cmd.Flags().StringVar(&password, "password", "", "new password")
	cmd.MarkFlagRequired("username")
	return cmd
}

func newUsersDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <userId>",
		Short: "Удалить пользователя (логически)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.AccessToken()
			if err != nil {
				return err
			}
			if err := app.Client().DeleteUser(args[0], token); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted user id=%s\n", args[0])
			return nil
		},
	}
}
