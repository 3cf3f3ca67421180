package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "notekeeper.db", c.DatabasePath)
	assert.Equal(t, "keystore.json", c.KeystorePath)
	assert.Equal(t, "local", c.UserID)
	assert.Equal(t, "http://127.0.0.1:8080", c.SyncEndpoint)
	assert.Equal(t, uint64(3), c.SyncMaxRetries)
	assert.Equal(t, 1*time.Second, c.SyncRetryBackoff)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
}

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	pathFlag := writeTempJSON(t, map[string]any{
		"database_path":         "notes-from-json.db",
		"sync_endpoint":         "http://sync.example:9000",
		"sync_max_retries":      5,
		"sync_retry_backoff":    "2s",
		"online_check_interval": "10s",
	})

	t.Run("loads from flags", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "notes-from-json.db", cfg.DatabasePath)
		assert.Equal(t, "http://sync.example:9000", cfg.SyncEndpoint)
		assert.Equal(t, uint64(5), cfg.SyncMaxRetries)
		assert.Equal(t, 2*time.Second, cfg.SyncRetryBackoff)
		assert.Equal(t, 10*time.Second, cfg.OnlineCheckInterval)
		assert.Equal(t, "keystore.json", cfg.KeystorePath, "fields absent from JSON keep earlier values")
	})

	t.Run("no config flag leaves values untouched", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{DatabasePath: "untouched.db", OnlineCheckInterval: 42 * time.Second}
		parseJson(cfg)

		assert.Equal(t, "untouched.db", cfg.DatabasePath)
		assert.Equal(t, 42*time.Second, cfg.OnlineCheckInterval)
	})
}

func Test_parseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin",
		"-d", "flag.db",
		"-u", "alice",
		"-a", "http://sync.example",
		"-t", "tok-123",
		"-i", "7",
	}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, "flag.db", cfg.DatabasePath)
	assert.Equal(t, "alice", cfg.UserID)
	assert.Equal(t, "http://sync.example", cfg.SyncEndpoint)
	assert.Equal(t, "tok-123", cfg.SyncToken)
	assert.Equal(t, 7*time.Second, cfg.OnlineCheckInterval)
	assert.Equal(t, "keystore.json", cfg.KeystorePath, "flags not given keep earlier values")
}

func Test_parseEnv(t *testing.T) {
	t.Setenv("NOTEKEEPER_DATABASE_PATH", "env.db")
	t.Setenv("NOTEKEEPER_USER_ID", "bob")
	t.Setenv("NOTEKEEPER_ONLINE_CHECK_INTERVAL", "15s")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "env.db", cfg.DatabasePath)
	assert.Equal(t, "bob", cfg.UserID)
	assert.Equal(t, 15*time.Second, cfg.OnlineCheckInterval)
	assert.Equal(t, "http://127.0.0.1:8080", cfg.SyncEndpoint, "unset variables keep defaults")
}
