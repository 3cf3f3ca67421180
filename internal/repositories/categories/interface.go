package categories

import (
	"context"

	"github.com/dmitrijs2005/notekeeper/internal/models"
)

// Repository is the SQL access layer for categories. Categories are the one
// entity with a hard-delete path: removing a category physically drops the
// row after referencing notes have been detached (see the category service).
type Repository interface {
	// Insert stores a new category. Fails with common.ErrConstraint on a
	// duplicate id.
	Insert(ctx context.Context, c *models.Category) error

	// GetByID returns a category by id. Fails with common.ErrNotFound for
	// unknown ids.
	GetByID(ctx context.Context, id string) (*models.Category, error)

	// Update applies the non-nil patch fields, refreshes updated_at and
	// re-flags the row pending. Fails with common.ErrNotFound for unknown
	// ids.
	Update(ctx context.Context, id string, p models.CategoryPatch, updatedAt int64) error

	// Delete removes the row. Fails with common.ErrNotFound for unknown
	// ids.
	Delete(ctx context.Context, id string) error

	// List returns the user's categories ordered by name.
	List(ctx context.Context, userID string) ([]models.Category, error)

	// ListPending returns all rows awaiting sync.
	ListPending(ctx context.Context) ([]models.Category, error)

	// MarkSynced transitions the given rows to synced. Reserved for the
	// sync gateway's acknowledgement path.
	MarkSynced(ctx context.Context, ids []string) error
}
