package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/DiegoMiguel/design-webapi/internal/agent/api"
)

// для тестов
var (
	NewAPIClient = api.NewClient
	ReadPassword = func(cmd *cobra.Command, fromStdin bool) (string, error) {
		return readPassword(cmd, fromStdin)
	}
	Now = time.Now
)
