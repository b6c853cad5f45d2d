package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	shared "github.com/DiegoMiguel/design-webapi/internal/shared/models"
)

// NewTodosCmd создаёт группу команд для работы с задачами.
func NewTodosCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todos",
		Short: "Задачи: list, get, create, update, delete",
	}

	cmd.AddCommand(
		newTodosListCmd(app),
		newTodosGetCmd(app),
		newTodosCreateCmd(app),
		newTodosUpdateCmd(app),
		newTodosDeleteCmd(app),
	)
	return cmd
}

// todoctl todos list [--user <userId>]
func newTodosListCmd(app *App) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Список задач (всех или одного пользователя)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.AccessToken()
			if err != nil {
				return err
			}

			var todos []shared.Todo
			if userID != "" {
				todos, err = app.Client().ListUserTodos(userID, token)
			} else {
				todos, err = app.Client().ListTodos(token)
			}
			if err != nil {
				return err
			}
			return printTodos(cmd.OutOrStdout(), todos)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "owner user id")
	return cmd
}

// todoctl todos get <todoId> <userId>
func newTodosGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <todoId> <userId>",
		Short: "Задача пользователя по id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.AccessToken()
			if err != nil {
				return err
			}
			t, err := app.Client().GetTodo(args[0], args[1], token)
			if err != nil {
				return err
			}
			return printTodos(cmd.OutOrStdout(), []shared.Todo{t})
		},
	}
}

// todoctl todos create <userId> --description "..."
func newTodosCreateCmd(app *App) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create <userId>",
		Short: "Создать задачу для пользователя",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.AccessToken()
			if err != nil {
				return err
			}
			t, err := app.Client().CreateTodo(args[0], description, token)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created todo id=%s\n", t.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "todo text")
	cmd.MarkFlagRequired("description")
	return cmd
}

// todoctl todos update <todoId> --description "..."
func newTodosUpdateCmd(app *App) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "update <todoId>",
		Short: "Изменить текст задачи",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.AccessToken()
			if err != nil {
				return err
			}
			t, err := app.Client().UpdateTodo(args[0], description, token)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated todo id=%s\n", t.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "new todo text")
	cmd.MarkFlagRequired("description")
	return cmd
}

// todoctl todos delete <todoId>
func newTodosDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <todoId>",
		Short: "Удалить задачу (логически)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.AccessToken()
			if err != nil {
				return err
			}
			if err := app.Client().DeleteTodo(args[0], token); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted todo id=%s\n", args[0])
			return nil
		},
	}
}
