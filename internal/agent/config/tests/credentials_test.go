package tests

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/DiegoMiguel/design-webapi/internal/agent/config"
)

func TestDefaultPath_UnderUserConfigDir(t *testing.T) {
	t.Setenv("TODOCTL_CREDENTIALS", "")

	p, err := config.DefaultPath()
	require.NoError(t, err)

	dir, err := os.UserConfigDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "todoctl", "credentials.json"), p)
}

func TestDefaultPath_EnvOverride(t *testing.T) {
	want := filepath.Join(t.TempDir(), "creds.json")
	t.Setenv("TODOCTL_CREDENTIALS", want)

	p, err := config.DefaultPath()
	require.NoError(t, err)
	require.Equal(t, want, p)
}

func TestLoad_FileNotExists_ReturnsEmptyCredentials(t *testing.T) {
	creds, err := config.Load(filepath.Join(t.TempDir(), "no-such-file.json"))
	require.NoError(t, err)
	require.NotNil(t, creds)
	require.Empty(t, creds.AccessToken)
}

func TestLoad_InvalidJSON_ReturnsError(t *testing.T) {
	p := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(p, []byte("{not json"), 0o600))

	_, err := config.Load(p)
	require.Error(t, err)
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a", "credentials.json") // вложенная директория

	want := &config.Credentials{
		AccessToken: "access-1",
		Username:    "alice",
		Role:        "admin",
		ExpiresAt:   time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, config.Save(p, want))

	got, err := config.Load(p)
	require.NoError(t, err)
	require.Equal(t, want.AccessToken, got.AccessToken)
	require.Equal(t, want.Username, got.Username)
	require.Equal(t, want.Role, got.Role)
	require.True(t, want.ExpiresAt.Equal(got.ExpiresAt))

	if runtime.GOOS != "windows" {
		st, err := os.Stat(p)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o600), st.Mode().Perm())
	}
}

func TestRemove_MissingFileIsNotError(t *testing.T) {
	p := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, config.Remove(p))

	require.NoError(t, config.Save(p, &config.Credentials{AccessToken: "x"}))
	require.NoError(t, config.Remove(p))

	_, err := os.Stat(p)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestCredentials_Valid(t *testing.T) {
	now := time.Now()

	var nilCreds *config.Credentials
	require.False(t, nilCreds.Valid(now))
	require.False(t, (&config.Credentials{}).Valid(now))
	require.True(t, (&config.Credentials{AccessToken: "a"}).Valid(now))
	require.True(t, (&config.Credentials{AccessToken: "a", ExpiresAt: now.Add(time.Minute)}).Valid(now))
	require.False(t, (&config.Credentials{AccessToken: "a", ExpiresAt: now.Add(-time.Minute)}).Valid(now))
}
