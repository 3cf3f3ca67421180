package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   path of the sqlite database file
//	-k string   path of the secure key store file
//	-u string   user id owning the local data set
//	-a string   base URL of the sync endpoint
//	-t string   sync credential token
//	-i int      online check interval in seconds
//
// Note: The function filters os.Args to only include the flags it knows
// about, using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-k", "-u", "-a", "-t", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the sqlite database file")
	fs.StringVar(&cfg.KeystorePath, "k", cfg.KeystorePath, "path of the secure key store file")
	fs.StringVar(&cfg.UserID, "u", cfg.UserID, "user id owning the local data set")
	fs.StringVar(&cfg.SyncEndpoint, "a", cfg.SyncEndpoint, "base URL of the sync endpoint")
	fs.StringVar(&cfg.SyncToken, "t", cfg.SyncToken, "sync credential token")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
