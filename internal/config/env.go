package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the environment. A .env file in
// the working directory is loaded first when present; real environment
// variables win over it.
//
// Recognized variables:
//
//	NOTEKEEPER_DATABASE_PATH
//	NOTEKEEPER_KEYSTORE_PATH
//	NOTEKEEPER_KEYSTORE_PASSPHRASE
//	NOTEKEEPER_USER_ID
//	NOTEKEEPER_SYNC_ENDPOINT
//	NOTEKEEPER_SYNC_TOKEN
//	NOTEKEEPER_ONLINE_CHECK_INTERVAL   (Go duration, e.g. "3s")
func parseEnv(cfg *Config) {
	// Missing .env is fine; explicit env vars still apply.
	_ = godotenv.Load()

	if v := os.Getenv("NOTEKEEPER_DATABASE_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("NOTEKEEPER_KEYSTORE_PATH"); v != "" {
		cfg.KeystorePath = v
	}
	if v := os.Getenv("NOTEKEEPER_KEYSTORE_PASSPHRASE"); v != "" {
		cfg.KeystorePassphrase = v
	}
	if v := os.Getenv("NOTEKEEPER_USER_ID"); v != "" {
		cfg.UserID = v
	}
	if v := os.Getenv("NOTEKEEPER_SYNC_ENDPOINT"); v != "" {
		cfg.SyncEndpoint = v
	}
	if v := os.Getenv("NOTEKEEPER_SYNC_TOKEN"); v != "" {
		cfg.SyncToken = v
	}
	if v := os.Getenv("NOTEKEEPER_ONLINE_CHECK_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.OnlineCheckInterval = d
		}
	}
}
