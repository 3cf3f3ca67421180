// Package models defines the local data models persisted by the note store
// and exchanged with the sync gateway.
package models

// SyncStatus marks whether a row's latest state has been acknowledged by the
// remote sync collaborator.
type SyncStatus string

const (
	// SyncStatusPending means the row carries a local mutation the remote
	// side has not acknowledged yet. Every local write sets this.
	SyncStatusPending SyncStatus = "pending"

	// SyncStatusSynced means the remote side has acknowledged the row's
	// current state. Only the sync gateway transitions rows here.
	SyncStatusSynced SyncStatus = "synced"
)

// Note is a user note. Soft-deleted notes (DeletedAt != nil) stay in storage
// so the deletion itself can be propagated to other replicas; default reads
// exclude them.
type Note struct {
	// ID is a client-generated opaque identifier, immutable once created.
	ID string `json:"id"`

	// Title is required and non-empty.
	Title string `json:"title"`

	// Content may be empty.
	Content string `json:"content"`

	// CategoryID references a Category, nil when the note is uncategorized
	// or its category was removed.
	CategoryID *string `json:"category_id"`

	// UserID scopes all queries; every note belongs to exactly one user.
	UserID string `json:"user_id"`

	IsPinned   bool `json:"is_pinned"`
	IsArchived bool `json:"is_archived"`

	// CreatedAt and UpdatedAt are milliseconds since epoch. UpdatedAt is
	// refreshed on every mutation and is never less than CreatedAt.
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`

	// DeletedAt is the soft-delete timestamp in milliseconds, nil for live
	// notes.
	DeletedAt *int64 `json:"deleted_at"`

	SyncStatus SyncStatus `json:"sync_status"`
}

// Deleted reports whether the note is soft-deleted.
func (n *Note) Deleted() bool {
	return n.DeletedAt != nil
}

// NotePatch is a partial update: nil fields are left untouched. An empty
// patch is valid and still refreshes the note's UpdatedAt.
type NotePatch struct {
	Title      *string `json:"title,omitempty"`
	Content    *string `json:"content,omitempty"`
	CategoryID *string `json:"category_id,omitempty"`
	IsPinned   *bool   `json:"is_pinned,omitempty"`
	IsArchived *bool   `json:"is_archived,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p NotePatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.CategoryID == nil &&
		p.IsPinned == nil && p.IsArchived == nil
}
