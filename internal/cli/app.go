package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/config"
	"github.com/dmitrijs2005/notekeeper/internal/gateway"
	"github.com/dmitrijs2005/notekeeper/internal/keystore"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/categories"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/metadata"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/notes"
	"github.com/dmitrijs2005/notekeeper/internal/services"
	"github.com/dmitrijs2005/notekeeper/internal/store"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// App wires the local store, the services and the sync gateway behind an
// interactive prompt.
type App struct {
	config     *config.Config
	store      *store.Store
	notes      *services.NoteService
	categories *services.CategoryService
	gateway    *gateway.Gateway
	log        logging.Logger
	Mode       Mode
	reader     *bufio.Reader
	out        io.Writer
}

// NewApp opens the keystore and the encrypted database, then assembles the
// service stack on top. A sealed keystore with no configured passphrase
// falls back to an interactive prompt.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	keys, err := openKeystore(cfg)
	if err != nil {
		return nil, err
	}

	key, err := keystore.GetOrCreateKey(keys, common.EncryptionKeyName)
	if err != nil {
		return nil, err
	}

	s, err := store.Open(ctx, store.Options{Path: cfg.DatabasePath, EncryptionKey: key}, log)
	if err != nil {
		return nil, err
	}

	notesRepo := notes.NewSQLiteRepository(s.DB())
	catRepo := categories.NewSQLiteRepository(s.DB())
	metaRepo := metadata.NewSQLiteRepository(s.DB())

	client := gateway.NewHTTPClient(cfg.SyncEndpoint, cfg.SyncToken)
	gw := gateway.New(client, notesRepo, catRepo, metaRepo, log, cfg.UserID, gateway.Options{
		MaxRetries: cfg.SyncMaxRetries,
		Backoff:    cfg.SyncRetryBackoff,
	})

	return &App{
		config:     cfg,
		store:      s,
		notes:      services.NewNoteService(notesRepo, log),
		categories: services.NewCategoryService(s.DB(), catRepo, log),
		gateway:    gw,
		log:        log,
		Mode:       ModeOffline,
		reader:     bufio.NewReader(os.Stdin),
		out:        os.Stdout,
	}, nil
}

func openKeystore(cfg *config.Config) (*keystore.FileStore, error) {
	passphrase := []byte(cfg.KeystorePassphrase)

	keys, err := keystore.NewFileStore(cfg.KeystorePath, passphrase)
	if err == nil {
		return keys, nil
	}
	if len(passphrase) > 0 || !errors.Is(err, common.ErrSecureStorageUnavailable) {
		return nil, err
	}

	// sealed keystore and no passphrase configured: ask for one
	pw, perr := GetPassword(os.Stdout)
	if perr != nil {
		return nil, err
	}
	return keystore.NewFileStore(cfg.KeystorePath, pw)
}

// Run starts the interactive session and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer func() { _ = a.store.Close() }()
	a.Root(ctx)
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	if a.Mode == mode {
		return
	}
	a.Mode = mode
	a.log.Info(ctx, "connectivity changed", "mode", string(mode))

	if err := a.gateway.SetOnline(ctx, mode == ModeOnline); err != nil {
		a.log.Warn(ctx, "sync transition failed", "error", err)
	}
}

// StartOnlineStatusWatcher periodically probes the sync endpoint and flips
// the app between online and offline mode, which in turn opens or closes
// the sync session.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.gateway.Ping(probeCtx)
			cancel()

			if err != nil {
				a.setMode(ctx, ModeOffline)
			} else {
				a.setMode(ctx, ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
