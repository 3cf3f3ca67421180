package gateway

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/categories"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/metadata"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/notes"
)

// checkpointKey is the metadata key holding the ms-epoch of the last
// successful upload.
const checkpointKey = "last_synced_at"

// Options tune the gateway's retry behavior.
type Options struct {
	MaxRetries uint64
	Backoff    time.Duration
}

// Gateway drives sync sessions against the remote collaborator. It is the
// only component allowed to mark rows synced; every local mutation flips
// them back to pending.
//
// The gateway is not safe for concurrent use; the CLI drives it from a
// single goroutine.
type Gateway struct {
	client     Client
	notes      notes.Repository
	categories categories.Repository
	meta       metadata.Repository
	log        logging.Logger
	userID     string
	opts       Options

	creds  *Credentials
	online bool
	now    func() time.Time
}

// New wires a gateway over the given transport and repositories.
func New(client Client, notesRepo notes.Repository, catRepo categories.Repository,
	metaRepo metadata.Repository, log logging.Logger, userID string, opts Options) *Gateway {
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	if opts.Backoff <= 0 {
		opts.Backoff = time.Second
	}
	return &Gateway{
		client:     client,
		notes:      notesRepo,
		categories: catRepo,
		meta:       metaRepo,
		log:        log,
		userID:     userID,
		opts:       opts,
		now:        time.Now,
	}
}

// Online reports the last connectivity state handed to SetOnline.
func (g *Gateway) Online() bool {
	return g.online
}

// Ping probes the sync endpoint. Used by the connectivity watcher.
func (g *Gateway) Ping(ctx context.Context) error {
	return g.client.Ping(ctx)
}

// SetOnline records a connectivity transition. Going online opens a session
// and immediately flushes pending mutations; going offline closes the
// session. Repeated calls with the same state are no-ops.
func (g *Gateway) SetOnline(ctx context.Context, online bool) error {
	if online == g.online {
		return nil
	}

	if !online {
		g.online = false
		if err := g.client.Disconnect(ctx); err != nil {
			g.log.Warn(ctx, "disconnect failed", "error", err)
		}
		g.log.Info(ctx, "sync session closed")
		return nil
	}

	if err := g.ensureCredentials(ctx); err != nil {
		return err
	}
	if err := g.client.Connect(ctx, g.creds); err != nil {
		return fmt.Errorf("connecting sync session: %w", err)
	}
	g.online = true
	g.log.Info(ctx, "sync session opened")

	return g.Sync(ctx)
}

// ensureCredentials fetches session credentials on first use and whenever
// the current token has expired.
func (g *Gateway) ensureCredentials(ctx context.Context) error {
	if g.creds != nil && !tokenExpired(g.creds.Token, g.now()) {
		return nil
	}

	creds, err := g.client.FetchCredentials(ctx, g.userID)
	if err != nil {
		return fmt.Errorf("fetching sync credentials: %w", err)
	}
	g.creds = creds
	return nil
}

// Sync uploads all pending rows and applies the server's acknowledgements.
// Transient transport failures are retried with a constant backoff; rows the
// server does not acknowledge stay pending for the next run.
func (g *Gateway) Sync(ctx context.Context) error {
	if err := g.ensureCredentials(ctx); err != nil {
		return err
	}

	pendingNotes, err := g.notes.ListPending(ctx)
	if err != nil {
		return err
	}
	pendingCategories, err := g.categories.ListPending(ctx)
	if err != nil {
		return err
	}

	batch := &Batch{
		UserID:     g.userID,
		Notes:      pendingNotes,
		Categories: pendingCategories,
	}
	if batch.Empty() {
		g.log.Debug(ctx, "nothing to sync")
		return nil
	}

	var result *UploadResult
	backoff := retry.WithMaxRetries(g.opts.MaxRetries, retry.NewConstant(g.opts.Backoff))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		res, err := g.client.UploadPendingMutations(ctx, g.creds, batch)
		if err != nil {
			if errors.Is(err, common.ErrUnavailable) {
				return retry.RetryableError(err)
			}
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return fmt.Errorf("uploading pending mutations: %w", err)
	}

	if err := g.categories.MarkSynced(ctx, result.AckedCategoryIDs); err != nil {
		return err
	}
	if err := g.notes.MarkSynced(ctx, result.AckedNoteIDs); err != nil {
		return err
	}

	syncedAt := g.now().UnixMilli()
	if err := g.meta.Set(ctx, checkpointKey, []byte(strconv.FormatInt(syncedAt, 10))); err != nil {
		return err
	}

	g.log.Info(ctx, "sync finished",
		"notes", len(result.AckedNoteIDs),
		"categories", len(result.AckedCategoryIDs))
	return nil
}

// LastSyncedAt returns the checkpoint of the last successful upload. ok is
// false when no sync has completed yet.
func (g *Gateway) LastSyncedAt(ctx context.Context) (t time.Time, ok bool, err error) {
	raw, err := g.meta.Get(ctx, checkpointKey)
	if err != nil {
		return time.Time{}, false, err
	}
	if raw == nil {
		return time.Time{}, false, nil
	}
	ms, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: malformed sync checkpoint: %w", common.ErrInternal, err)
	}
	return time.UnixMilli(ms), true, nil
}
