package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"BLOGGER_API_URL", "BLOGGER_SESSION_DB", "BLOGGER_SESSION_KEY", "BLOGGER_HTTP_TIMEOUT",
		"BLOGGER_RATE_LIMIT", "BLOGGER_POLL_INTERVAL", "ENV", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080", cfg.APIURL)
	require.Equal(t, "session.db", filepath.Base(cfg.SessionDB))
	require.Empty(t, cfg.SessionKey)
	require.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	require.Equal(t, 10, cfg.RateLimit)
	require.Equal(t, 30*time.Second, cfg.PollInterval)
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, "warn", cfg.LogLevel)
	require.Equal(t, "text", cfg.LogFormat)
}

func TestLoadConfigFromEnv(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	t.Setenv("BLOGGER_API_URL", "https://blog.example.com")
	t.Setenv("BLOGGER_SESSION_DB", "/tmp/x.db")
	t.Setenv("BLOGGER_HTTP_TIMEOUT", "3s")
	t.Setenv("BLOGGER_RATE_LIMIT", "not-a-number")
	t.Setenv("BLOGGER_POLL_INTERVAL", "5")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "https://blog.example.com", cfg.APIURL)
	require.Equal(t, "/tmp/x.db", cfg.SessionDB)
	require.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	require.Equal(t, 10, cfg.RateLimit, "unparsable values fall back to the default")
	require.Equal(t, 5*time.Second, cfg.PollInterval)
	require.Equal(t, "json", cfg.LogFormat)
}

func TestLoadConfigDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("BLOGGER_API_URL=http://from-dotenv:9000\nLOG_LEVEL=debug\n"), 0o600))
	// Already-set variables win over .env.
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "http://from-dotenv:9000", cfg.APIURL)
	require.Equal(t, "error", cfg.LogLevel)

	// godotenv.Load sets the process env; undo it for other tests.
	require.NoError(t, os.Unsetenv("BLOGGER_API_URL"))
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	ok := Config{APIURL: "http://x", SessionDB: "s.db", HTTPTimeout: time.Second}
	require.NoError(t, ok.Validate())

	eph := Config{APIURL: "http://x", Ephemeral: true, HTTPTimeout: time.Second}
	require.NoError(t, eph.Validate())

	bad := Config{RateLimit: -1}
	err := bad.Validate()
	require.ErrorContains(t, err, "api url")
	require.ErrorContains(t, err, "session db")
	require.ErrorContains(t, err, "http timeout")
	require.ErrorContains(t, err, "rate limit")
}
