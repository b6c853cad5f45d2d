package tests

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/DiegoMiguel/design-webapi/internal/agent/cli"
	"github.com/DiegoMiguel/design-webapi/internal/agent/config"
	shared "github.com/DiegoMiguel/design-webapi/internal/shared/models"
)

func tokenServer(t *testing.T, wantPassword string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/bearerToken", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "password", r.PostForm.Get("grant_type"))
		require.Equal(t, "alice", r.PostForm.Get("username"))

		if r.PostForm.Get("password") != wantPassword {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(shared.OAuthErrorResponse{
				Error:            "invalid_grant",
				ErrorDescription: "The user name or password is incorrect.",
			})
			return
		}
		json.NewEncoder(w).Encode(shared.TokenResponse{
			AccessToken: "access-1",
			TokenType:   "bearer",
			ExpiresIn:   3600,
			UserName:    "alice",
			Role:        "admin",
		})
	})
	return httptest.NewServer(mux)
}

func TestNewLoginCmd_Success_SavesToken(t *testing.T) {
	srv := tokenServer(t, "StrongPass123")
	defer srv.Close()

	app := newApp(t, srv.URL, nil)

	out, err := run(cli.NewLoginCmd(app), "--username", "alice", "--password", "StrongPass123")
	require.NoError(t, err)
	require.Contains(t, out, "login ok (token saved)")

	loaded, err := config.Load(app.CredsPath)
	require.NoError(t, err)
	require.Equal(t, "access-1", loaded.AccessToken)
	require.Equal(t, "alice", loaded.Username)
	require.Equal(t, "admin", loaded.Role)
	require.True(t, fixedNow.Add(time.Hour).Equal(loaded.ExpiresAt))
}

func TestNewLoginCmd_PromptsForPassword(t *testing.T) {
	srv := tokenServer(t, "prompted-pass")
	defer srv.Close()

	prev := cli.ReadPassword
	cli.ReadPassword = func(cmd *cobra.Command, fromStdin bool) (string, error) {
		require.False(t, fromStdin)
		return "prompted-pass", nil
	}
	t.Cleanup(func() { cli.ReadPassword = prev })

	app := newApp(t, srv.URL, nil)
	_, err := run(cli.NewLoginCmd(app), "--username", "alice")
	require.NoError(t, err)
	require.Equal(t, "access-1", app.Creds.AccessToken)
}

func TestNewLoginCmd_PasswordFromStdin(t *testing.T) {
	srv := tokenServer(t, "stdin-pass")
	defer srv.Close()

	app := newApp(t, srv.URL, nil)
	cmd := cli.NewLoginCmd(app)
	cmd.SetIn(strings.NewReader("stdin-pass\n"))

	_, err := run(cmd, "--username", "alice", "--password-stdin")
	require.NoError(t, err)
	require.Equal(t, "access-1", app.Creds.AccessToken)
}

func TestNewLoginCmd_PromptError_ReturnsError(t *testing.T) {
	prev := cli.ReadPassword
	cli.ReadPassword = func(*cobra.Command, bool) (string, error) {
		return "", errors.New("stdin is not a terminal")
	}
	t.Cleanup(func() { cli.ReadPassword = prev })

	app := newApp(t, "http://127.0.0.1:0", nil)
	_, err := run(cli.NewLoginCmd(app), "--username", "alice")
	require.Error(t, err)
}

func TestNewLoginCmd_MissingUsername_ReturnsError(t *testing.T) {
	app := newApp(t, "http://127.0.0.1:0", nil)

	_, err := run(cli.NewLoginCmd(app), "--password", "x")
	require.Error(t, err)
	require.Contains(t, err.Error(), "required")
}

func TestNewLoginCmd_InvalidGrant_DoesNotWriteCredsFile(t *testing.T) {
	srv := tokenServer(t, "StrongPass123")
	defer srv.Close()

	app := newApp(t, srv.URL, nil)

	_, err := run(cli.NewLoginCmd(app), "--username", "alice", "--password", "wrong")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid_grant")

	_, statErr := os.Stat(app.CredsPath)
	require.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestNewLogoutCmd_RemovesCreds(t *testing.T) {
	app := newApp(t, "http://unused", loggedIn())
	require.NoError(t, config.Save(app.CredsPath, app.Creds))

	out, err := run(cli.NewLogoutCmd(app))
	require.NoError(t, err)
	require.Contains(t, out, "logged out")

	_, statErr := os.Stat(app.CredsPath)
	require.ErrorIs(t, statErr, os.ErrNotExist)
	require.Empty(t, app.Creds.AccessToken)
}
