package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	shared "github.com/DiegoMiguel/design-webapi/internal/shared/models"
)

func printTodos(w io.Writer, todos []shared.Todo) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tOWNER\tDESCRIPTION\tUPDATED")
	for _, t := range todos {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.ID, t.OwnerUserID, t.Description, t.UpdatedAt.Format(time.RFC3339))
	}
	return tw.Flush()
}

func printUsers(w io.Writer, users []shared.User) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tCREATED")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", u.ID, u.Username, u.CreatedAt.Format(time.RFC3339))
	}
	return tw.Flush()
}
