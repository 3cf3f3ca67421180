// Package categories provides the SQLite repository for category rows.
package categories

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

const categoryColumns = `id, name, color, created_at, updated_at, user_id, sync_status`

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or
// *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func scanCategory(row interface{ Scan(dest ...any) error }) (*models.Category, error) {
	c := &models.Category{}
	err := row.Scan(&c.ID, &c.Name, &c.Color, &c.CreatedAt, &c.UpdatedAt, &c.UserID, &c.SyncStatus)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, c *models.Category) error {
	query := `INSERT INTO categories (` + categoryColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Name, c.Color, c.CreatedAt, c.UpdatedAt, c.UserID, c.SyncStatus)
	if err != nil {
		if dbx.IsConstraint(err) {
			return fmt.Errorf("%w: %w", common.ErrConstraint, err)
		}
		return fmt.Errorf("%w: failed to insert category: %w", common.ErrStorageIO, err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = ?`
	c, err := scanCategory(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("category %s: %w", id, common.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: failed to get category: %w", common.ErrStorageIO, err)
	}
	return c, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, id string, p models.CategoryPatch, updatedAt int64) error {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)

	if p.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *p.Name)
	}
	if p.Color != nil {
		sets = append(sets, "color = ?")
		args = append(args, *p.Color)
	}

	sets = append(sets, "updated_at = ?", "sync_status = ?")
	args = append(args, updatedAt, models.SyncStatusPending, id)

	query := `UPDATE categories SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: failed to update category: %w", common.ErrStorageIO, err)
	}

	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to get rows affected: %w", common.ErrStorageIO, err)
	}
	if ra == 0 {
		return fmt.Errorf("category %s: %w", id, common.ErrNotFound)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: failed to delete category: %w", common.ErrStorageIO, err)
	}

	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to get rows affected: %w", common.ErrStorageIO, err)
	}
	if ra == 0 {
		return fmt.Errorf("category %s: %w", id, common.ErrNotFound)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context, userID string) ([]models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE user_id = ? ORDER BY name ASC`
	return r.queryCategories(ctx, query, userID)
}

func (r *SQLiteRepository) ListPending(ctx context.Context) ([]models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE sync_status = ?`
	return r.queryCategories(ctx, query, models.SyncStatusPending)
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	query := `UPDATE categories SET sync_status = ? WHERE id IN (` + placeholders + `)`

	args := make([]any, 0, len(ids)+1)
	args = append(args, models.SyncStatusSynced)
	for _, id := range ids {
		args = append(args, id)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: failed to mark categories synced: %w", common.ErrStorageIO, err)
	}
	return nil
}

func (r *SQLiteRepository) queryCategories(ctx context.Context, query string, args ...any) ([]models.Category, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to select categories: %w", common.ErrStorageIO, err)
	}
	defer rows.Close()

	var result []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to scan category: %w", common.ErrStorageIO, err)
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to iterate categories: %w", common.ErrStorageIO, err)
	}
	return result, nil
}
