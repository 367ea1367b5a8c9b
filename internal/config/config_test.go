package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jrsteele09/go-transposit-sdk/internal/config"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	for _, v := range []string{"TRANSPOSIT_ORIGIN", "TRANSPOSIT_CLIENT_ID", "TRANSPOSIT_SCOPE", "TRANSPOSIT_AUTH_MODE",
		"TRANSPOSIT_LOGOUT_TIMEOUT", "CALLBACK_PORT", "FOLDER", "LOG_LEVEL", "APP_NAME", "ENV"} {
		t.Setenv(v, "")
	}

	c := config.New()
	require.Equal(t, "", c.GetOrigin())
	require.Equal(t, "sdk", c.GetClientID())
	require.Equal(t, "openid app", c.GetScope())
	require.Equal(t, "bearer", c.GetAuthMode())
	require.Equal(t, 5*time.Second, c.GetLogoutTimeout())
	require.Equal(t, "./data", c.GetDataFolder())
	require.Equal(t, "info", c.GetLogLevel())
	require.Equal(t, "DEV", c.GetEnv())
	require.Equal(t, "http://localhost:8765/callback", c.GetRedirectURI())
}

func TestFromEnvironment(t *testing.T) {
	t.Setenv("TRANSPOSIT_ORIGIN", "https://myapp.transposit.io")
	t.Setenv("TRANSPOSIT_AUTH_MODE", "public_token")
	t.Setenv("TRANSPOSIT_LOGOUT_TIMEOUT", "250ms")
	t.Setenv("CALLBACK_PORT", "9999")

	c := config.New()
	require.Equal(t, "https://myapp.transposit.io", c.GetOrigin())
	require.Equal(t, "public_token", c.GetAuthMode())
	require.Equal(t, 250*time.Millisecond, c.GetLogoutTimeout())
	require.Equal(t, "http://localhost:9999/callback", c.GetRedirectURI())

	t.Setenv("TRANSPOSIT_LOGOUT_TIMEOUT", "soon")
	require.Equal(t, 5*time.Second, c.GetLogoutTimeout())
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("TRANSPOSIT_SCOPE=openid\nTRANSPOSIT_CLIENT_ID=from-file\n"), 0o600))

	// Setenv restores the variable after the test, Unsetenv lets the file set it.
	t.Setenv("TRANSPOSIT_SCOPE", "")
	require.NoError(t, os.Unsetenv("TRANSPOSIT_SCOPE"))
	t.Setenv("TRANSPOSIT_CLIENT_ID", "from-env")

	require.NoError(t, config.LoadDotEnv(envFile, filepath.Join(dir, "missing.env")))
	c := config.New()
	require.Equal(t, "openid", c.GetScope())
	require.Equal(t, "from-env", c.GetClientID(), "set variables are not overridden")
}
