// Package config handles runtime configuration for the notekeeper CLI,
// including defaults, environment variables, JSON overlay, and command-line
// flags.
package config

import "time"

// Config holds runtime settings for the notekeeper CLI.
//
// Fields:
//   - DatabasePath: path of the sqlite database file (":memory:" for tests).
//   - KeystorePath: path of the secure key store file.
//   - KeystorePassphrase: optional passphrase sealing the key store.
//   - UserID: owner of the local data set.
//   - SyncEndpoint: base URL of the managed-sync collaborator.
//   - SyncToken: long-lived credential exchanged for session credentials.
//   - SyncMaxRetries / SyncRetryBackoff: retry policy for uploads.
//   - OnlineCheckInterval: how often the client probes sync reachability.
//
// Units: durations are time.Duration values (e.g., 3*time.Second).
type Config struct {
	DatabasePath        string
	KeystorePath        string
	KeystorePassphrase  string
	UserID              string
	SyncEndpoint        string
	SyncToken           string
	SyncMaxRetries      uint64
	SyncRetryBackoff    time.Duration
	OnlineCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "notekeeper.db"
	c.KeystorePath = "keystore.json"
	c.UserID = "local"
	c.SyncEndpoint = "http://127.0.0.1:8080"
	c.SyncMaxRetries = 3
	c.SyncRetryBackoff = 1 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, an optional JSON file, and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
