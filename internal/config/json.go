package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/flagx"
	"github.com/dmitrijs2005/notekeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "3s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config.
type JsonConfig struct {
	DatabasePath        string         `json:"database_path"`
	KeystorePath        string         `json:"keystore_path"`
	UserID              string         `json:"user_id"`
	SyncEndpoint        string         `json:"sync_endpoint"`
	SyncToken           string         `json:"sync_token"`
	SyncMaxRetries      uint64         `json:"sync_max_retries"`
	SyncRetryBackoff    timex.Duration `json:"sync_retry_backoff"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
}

// parseJson overlays Config with values loaded from a JSON file selected via
// the -c or -config flags. A missing flag means no JSON is loaded. Read or
// unmarshal errors panic; configuration problems should stop startup.
//
// Only fields present in the file override earlier values; the passphrase is
// deliberately not accepted from JSON.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JSONConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.KeystorePath != "" {
		cfg.KeystorePath = jc.KeystorePath
	}
	if jc.UserID != "" {
		cfg.UserID = jc.UserID
	}
	if jc.SyncEndpoint != "" {
		cfg.SyncEndpoint = jc.SyncEndpoint
	}
	if jc.SyncToken != "" {
		cfg.SyncToken = jc.SyncToken
	}
	if jc.SyncMaxRetries != 0 {
		cfg.SyncMaxRetries = jc.SyncMaxRetries
	}
	if jc.SyncRetryBackoff.Duration != 0 {
		cfg.SyncRetryBackoff = time.Duration(jc.SyncRetryBackoff.Duration)
	}
	if jc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = time.Duration(jc.OnlineCheckInterval.Duration)
	}
}
