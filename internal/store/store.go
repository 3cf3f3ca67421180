// Package store owns the local database lifecycle: it opens the single
// connection, applies the encryption key, runs migrations and hands the
// handle to repositories. Nothing else in the project opens the database,
// and there is no package-level handle: the Store is constructed once at
// startup and passed down explicitly.
package store

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"

	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/migrations"
	_ "modernc.org/sqlite"
)

// Options configures Open.
type Options struct {
	// Path is the database file path, or ":memory:" for tests.
	Path string

	// EncryptionKey is the hex-encoded at-rest key from the secure key
	// store. Empty disables the key pragma.
	EncryptionKey string
}

// Store wraps the open database connection.
type Store struct {
	db  *sql.DB
	log logging.Logger
}

// Open opens the database at opts.Path, configures connection pragmas,
// applies the encryption key and brings the schema up to date. It is safe to
// call on every startup: schema creation is idempotent.
func Open(ctx context.Context, opts Options, log logging.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", opts.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// The store is driven by one cooperative caller; a single connection
	// keeps writes on the same handle linearized.
	db.SetMaxOpenConns(1)

	if opts.EncryptionKey != "" {
		if _, err := hex.DecodeString(opts.EncryptionKey); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("encryption key is not valid hex: %w", err)
		}
		// Honored by SQLCipher-enabled builds; a plain SQLite ignores
		// unknown pragmas, so the store still opens unencrypted there.
		if _, err := db.ExecContext(ctx, fmt.Sprintf(`PRAGMA key = "x'%s'"`, opts.EncryptionKey)); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply encryption key: %w", err)
		}
	}

	for _, pragma := range []string{
		`PRAGMA foreign_keys = ON`,
		`PRAGMA busy_timeout = 5000`,
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if err := migrations.Up(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Info(ctx, "database ready", "path", opts.Path)

	return &Store{db: db, log: log}, nil
}

// DB exposes the underlying connection for repositories.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
