package tests

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/DiegoMiguel/design-webapi/internal/agent/cli"
	"github.com/DiegoMiguel/design-webapi/internal/agent/config"
)

var fixedNow = time.Date(2026, 1, 16, 12, 0, 0, 0, time.UTC)

// newApp — App с временным файлом кредов и зафиксированным временем.
func newApp(t *testing.T, serverURL string, creds *config.Credentials) *cli.App {
	t.Helper()

	prevNow := cli.Now
	cli.Now = func() time.Time { return fixedNow }
	t.Cleanup(func() { cli.Now = prevNow })

	if creds == nil {
		creds = &config.Credentials{}
	}
	return &cli.App{
		ServerURL: serverURL,
		TokenPath: "/bearerToken",
		CredsPath: filepath.Join(t.TempDir(), "creds.json"),
		Creds:     creds,
	}
}

func loggedIn() *config.Credentials {
	return &config.Credentials{AccessToken: "tok", ExpiresAt: fixedNow.Add(time.Hour)}
}

func run(cmd *cobra.Command, args ...string) (string, error) {
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}
