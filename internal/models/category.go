package models

// Category groups notes for one user. Names are not required to be unique;
// collisions are a presentation concern, not a storage one.
type Category struct {
	// ID is a client-generated opaque identifier, immutable once created.
	ID string `json:"id"`

	// Name is required and non-empty.
	Name string `json:"name"`

	// Color is a display token (e.g. "#FF3B30").
	Color string `json:"color"`

	UserID string `json:"user_id"`

	// CreatedAt and UpdatedAt are milliseconds since epoch.
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`

	SyncStatus SyncStatus `json:"sync_status"`
}

// CategoryPatch is a partial update: nil fields are left untouched.
type CategoryPatch struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p CategoryPatch) IsEmpty() bool {
	return p.Name == nil && p.Color == nil
}
