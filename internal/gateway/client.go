// Package gateway bridges the local store and the remote managed-sync
// collaborator. It uploads rows flagged pending and applies the server's
// acknowledgements; conflict resolution itself is remote (server-wins) and
// is not implemented here.
package gateway

import (
	"context"

	"github.com/dmitrijs2005/notekeeper/internal/models"
)

// Credentials are issued by the remote collaborator for one sync session.
// Endpoint may differ from the configured control endpoint (the server can
// direct the client to a regional upload host).
type Credentials struct {
	Token    string `json:"token"`
	Endpoint string `json:"endpoint"`
}

// Batch carries the pending local mutations of one user. Soft-deleted notes
// are included: the tombstone is what propagates the deletion.
type Batch struct {
	UserID     string            `json:"user_id"`
	Notes      []models.Note     `json:"notes"`
	Categories []models.Category `json:"categories"`
}

// Empty reports whether the batch carries no mutations.
func (b *Batch) Empty() bool {
	return len(b.Notes) == 0 && len(b.Categories) == 0
}

// UploadResult lists the rows the server acknowledged. Rows missing from the
// result stay pending and are retried on the next sync.
type UploadResult struct {
	AckedNoteIDs     []string `json:"acked_note_ids"`
	AckedCategoryIDs []string `json:"acked_category_ids"`
}

// Client is the transport to the remote sync collaborator.
type Client interface {
	// FetchCredentials exchanges the configured token for session
	// credentials scoped to userID.
	FetchCredentials(ctx context.Context, userID string) (*Credentials, error)

	// UploadPendingMutations pushes the batch. Failures wrapping
	// common.ErrUnavailable are transient and may be retried.
	UploadPendingMutations(ctx context.Context, creds *Credentials, batch *Batch) (*UploadResult, error)

	// Connect and Disconnect follow connectivity transitions.
	Connect(ctx context.Context, creds *Credentials) error
	Disconnect(ctx context.Context) error

	// Ping probes reachability of the sync endpoint.
	Ping(ctx context.Context) error
}
