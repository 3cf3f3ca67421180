// Package notes provides the SQLite repository for note rows.
package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/dbx"
	"github.com/dmitrijs2005/notekeeper/internal/models"
)

const noteColumns = `id, title, content, category_id, created_at, updated_at, deleted_at, user_id, is_pinned, is_archived, sync_status`

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or
// *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func scanNote(row interface{ Scan(dest ...any) error }) (*models.Note, error) {
	n := &models.Note{}
	err := row.Scan(&n.ID, &n.Title, &n.Content, &n.CategoryID,
		&n.CreatedAt, &n.UpdatedAt, &n.DeletedAt, &n.UserID,
		&n.IsPinned, &n.IsArchived, &n.SyncStatus)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, n *models.Note) error {
	query := `INSERT INTO notes (` + noteColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		n.ID, n.Title, n.Content, n.CategoryID,
		n.CreatedAt, n.UpdatedAt, n.DeletedAt, n.UserID,
		n.IsPinned, n.IsArchived, n.SyncStatus)
	if err != nil {
		if dbx.IsConstraint(err) {
			return fmt.Errorf("%w: %w", common.ErrConstraint, err)
		}
		return fmt.Errorf("%w: failed to insert note: %w", common.ErrStorageIO, err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE id = ?`
	n, err := scanNote(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("note %s: %w", id, common.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: failed to get note: %w", common.ErrStorageIO, err)
	}
	return n, nil
}

// Update builds the SET clause from the patch field by field; columns absent
// from the patch are never mentioned in the statement, so a concurrent sync
// ack cannot be clobbered with stale values.
func (r *SQLiteRepository) Update(ctx context.Context, id string, p models.NotePatch, updatedAt int64) error {
	sets := make([]string, 0, 7)
	args := make([]any, 0, 8)

	if p.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *p.Title)
	}
	if p.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *p.Content)
	}
	if p.CategoryID != nil {
		sets = append(sets, "category_id = ?")
		args = append(args, *p.CategoryID)
	}
	if p.IsPinned != nil {
		sets = append(sets, "is_pinned = ?")
		args = append(args, *p.IsPinned)
	}
	if p.IsArchived != nil {
		sets = append(sets, "is_archived = ?")
		args = append(args, *p.IsArchived)
	}

	// even an empty patch refreshes updated_at and re-flags the row
	sets = append(sets, "updated_at = ?", "sync_status = ?")
	args = append(args, updatedAt, models.SyncStatusPending, id)

	query := `UPDATE notes SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if dbx.IsConstraint(err) {
			return fmt.Errorf("%w: %w", common.ErrConstraint, err)
		}
		return fmt.Errorf("%w: failed to update note: %w", common.ErrStorageIO, err)
	}

	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to get rows affected: %w", common.ErrStorageIO, err)
	}
	if ra == 0 {
		return fmt.Errorf("note %s: %w", id, common.ErrNotFound)
	}
	return nil
}

func (r *SQLiteRepository) SoftDelete(ctx context.Context, id string, deletedAt int64) error {
	query := `UPDATE notes SET deleted_at = ?, updated_at = ?, sync_status = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, deletedAt, deletedAt, models.SyncStatusPending, id)
	if err != nil {
		return fmt.Errorf("%w: failed to delete note: %w", common.ErrStorageIO, err)
	}

	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to get rows affected: %w", common.ErrStorageIO, err)
	}
	if ra == 0 {
		return fmt.Errorf("note %s: %w", id, common.ErrNotFound)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context, userID string, categoryID *string) ([]models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE user_id = ? AND deleted_at IS NULL`
	args := []any{userID}

	if categoryID != nil {
		query += ` AND category_id = ?`
		args = append(args, *categoryID)
	}
	query += ` ORDER BY updated_at DESC`

	return r.queryNotes(ctx, query, args...)
}

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

func (r *SQLiteRepository) Search(ctx context.Context, userID, query string) ([]models.Note, error) {
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	q := `SELECT ` + noteColumns + ` FROM notes
		WHERE user_id = ? AND deleted_at IS NULL
		AND (LOWER(title) LIKE ? ESCAPE '\' OR LOWER(content) LIKE ? ESCAPE '\')
		ORDER BY updated_at DESC`
	return r.queryNotes(ctx, q, userID, pattern, pattern)
}

func (r *SQLiteRepository) ClearCategory(ctx context.Context, categoryID string, updatedAt int64) error {
	query := `UPDATE notes SET category_id = NULL, updated_at = ?, sync_status = ? WHERE category_id = ?`
	_, err := r.db.ExecContext(ctx, query, updatedAt, models.SyncStatusPending, categoryID)
	if err != nil {
		return fmt.Errorf("%w: failed to detach notes: %w", common.ErrStorageIO, err)
	}
	return nil
}

func (r *SQLiteRepository) ListPending(ctx context.Context) ([]models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE sync_status = ?`
	return r.queryNotes(ctx, query, models.SyncStatusPending)
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	query := `UPDATE notes SET sync_status = ? WHERE id IN (` + placeholders + `)`

	args := make([]any, 0, len(ids)+1)
	args = append(args, models.SyncStatusSynced)
	for _, id := range ids {
		args = append(args, id)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: failed to mark notes synced: %w", common.ErrStorageIO, err)
	}
	return nil
}

func (r *SQLiteRepository) queryNotes(ctx context.Context, query string, args ...any) ([]models.Note, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to select notes: %w", common.ErrStorageIO, err)
	}
	defer rows.Close()

	var result []models.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to scan note: %w", common.ErrStorageIO, err)
		}
		result = append(result, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to iterate notes: %w", common.ErrStorageIO, err)
	}
	return result, nil
}
