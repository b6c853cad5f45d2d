package tests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DiegoMiguel/design-webapi/internal/agent/cli"
	"github.com/DiegoMiguel/design-webapi/internal/agent/config"
)

func TestNewRootCmd_HasExpectedSubcommands(t *testing.T) {
	cmd := cli.NewRootCmd("1.0.0", "2026-01-16")

	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	for _, w := range []string{"register", "login", "logout", "todos", "users", "version"} {
		require.True(t, names[w], "expected subcommand %q", w)
	}
}

func TestNewRootCmd_ServerFlagDefault(t *testing.T) {
	t.Setenv("TODOCTL_SERVER", "")
	cmd := cli.NewRootCmd("1.0.0", "2026-01-16")
	require.Equal(t, cli.DefaultServerURL, cmd.PersistentFlags().Lookup("server").DefValue)

	t.Setenv("TODOCTL_SERVER", "http://todo.local:9000")
	cmd = cli.NewRootCmd("1.0.0", "2026-01-16")
	require.Equal(t, "http://todo.local:9000", cmd.PersistentFlags().Lookup("server").DefValue)
}

func TestNewRootCmd_PersistentPreRunE_LoadsCredsFromFlagPath(t *testing.T) {
	p := filepath.Join(t.TempDir(), "creds.json")
	require.NoError(t, config.Save(p, &config.Credentials{AccessToken: "access-1"}))

	out, err := run(cli.NewRootCmd("1.0.0", "2026-01-16"), "--credentials", p, "version")
	require.NoError(t, err)
	require.Contains(t, out, "version=1.0.0")
}

func TestNewRootCmd_PersistentPreRunE_ReturnsErrorOnBadCredsFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "creds.json")
	require.NoError(t, os.WriteFile(p, []byte("{not-json"), 0o600))
	t.Setenv("TODOCTL_CREDENTIALS", p)

	_, err := run(cli.NewRootCmd("1.0.0", "2026-01-16"), "version")
	require.Error(t, err)
	require.Contains(t, err.Error(), "load credentials")
}

func TestApp_AccessToken(t *testing.T) {
	app := newApp(t, "http://unused", nil)
	_, err := app.AccessToken()
	require.ErrorIs(t, err, cli.ErrNotLoggedIn)

	app.Creds = loggedIn()
	tok, err := app.AccessToken()
	require.NoError(t, err)
	require.Equal(t, "tok", tok)

	app.Creds.ExpiresAt = fixedNow.Add(-1)
	_, err = app.AccessToken()
	require.ErrorIs(t, err, cli.ErrNotLoggedIn)
}
