package notes

import (
	"context"

	"github.com/dmitrijs2005/notekeeper/internal/models"
)

// Repository is the SQL access layer for notes. All methods observe the
// latest committed write; callers serialize dependent operations.
type Repository interface {
	// Insert stores a new note. Fails with common.ErrConstraint on a
	// duplicate id or a dangling category reference.
	Insert(ctx context.Context, n *models.Note) error

	// GetByID returns a note by id, including soft-deleted ones. Fails
	// with common.ErrNotFound for unknown ids.
	GetByID(ctx context.Context, id string) (*models.Note, error)

	// Update applies the non-nil patch fields, refreshes updated_at and
	// re-flags the row pending. Fails with common.ErrNotFound for unknown
	// ids.
	Update(ctx context.Context, id string, p models.NotePatch, updatedAt int64) error

	// SoftDelete stamps deleted_at (and updated_at) and re-flags the row
	// pending. Idempotent for already-deleted notes; fails with
	// common.ErrNotFound for unknown ids.
	SoftDelete(ctx context.Context, id string, deletedAt int64) error

	// List returns the user's live notes, optionally filtered by category,
	// most recently touched first.
	List(ctx context.Context, userID string, categoryID *string) ([]models.Note, error)

	// Search returns the user's live notes whose title or content contains
	// query case-insensitively, most recently touched first.
	Search(ctx context.Context, userID, query string) ([]models.Note, error)

	// ClearCategory detaches every note referencing categoryID and re-flags
	// the affected rows pending.
	ClearCategory(ctx context.Context, categoryID string, updatedAt int64) error

	// ListPending returns all rows awaiting sync, soft-deleted included.
	ListPending(ctx context.Context) ([]models.Note, error)

	// MarkSynced transitions the given rows to synced. Reserved for the
	// sync gateway's acknowledgement path; CRUD code never clears the
	// pending flag.
	MarkSynced(ctx context.Context, ids []string) error
}
