package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/dbx"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/models"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/categories"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/notes"
	"github.com/google/uuid"
)

// NewCategory is the input for CategoryService.Create.
type NewCategory struct {
	Name   string
	Color  string
	UserID string
}

// CategoryService owns category CRUD. Deletion is the one hard delete in the
// system: the category row is removed and referencing notes are detached in
// the same transaction, so a dangling reference is never observable.
type CategoryService struct {
	db   *sql.DB
	repo categories.Repository
	log  logging.Logger

	// now is an injection point for tests
	now func() time.Time
}

func NewCategoryService(db *sql.DB, repo categories.Repository, log logging.Logger) *CategoryService {
	return &CategoryService{db: db, repo: repo, log: log, now: time.Now}
}

// Create validates in, assigns a fresh id and timestamps, and stores the
// category.
func (s *CategoryService) Create(ctx context.Context, in NewCategory) (*models.Category, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name must not be empty", common.ErrValidation)
	}
	if strings.TrimSpace(in.Color) == "" {
		return nil, fmt.Errorf("%w: color must not be empty", common.ErrValidation)
	}
	if in.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required", common.ErrValidation)
	}

	ts := s.now().UnixMilli()
	c := &models.Category{
		ID:         uuid.NewString(),
		Name:       in.Name,
		Color:      in.Color,
		UserID:     in.UserID,
		CreatedAt:  ts,
		UpdatedAt:  ts,
		SyncStatus: models.SyncStatusPending,
	}

	if err := s.repo.Insert(ctx, c); err != nil {
		return nil, err
	}

	s.log.Debug(ctx, "category created", "id", c.ID, "user_id", c.UserID)
	return c, nil
}

// Update applies the patch to an existing category and returns the new
// state.
func (s *CategoryService) Update(ctx context.Context, id string, p models.CategoryPatch) (*models.Category, error) {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return nil, fmt.Errorf("%w: name must not be empty", common.ErrValidation)
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ts := s.now().UnixMilli()
	if ts <= current.UpdatedAt {
		ts = current.UpdatedAt + 1
	}

	if err := s.repo.Update(ctx, id, p, ts); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Delete removes the category and detaches every note referencing it. The
// detached notes stay listed, lose their category_id and are re-flagged
// pending so the change propagates on the next sync.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	ts := s.now().UnixMilli()

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		catRepo := categories.NewSQLiteRepository(tx)
		noteRepo := notes.NewSQLiteRepository(tx)

		if _, err := catRepo.GetByID(ctx, id); err != nil {
			return err
		}
		if err := noteRepo.ClearCategory(ctx, id, ts); err != nil {
			return err
		}
		return catRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.log.Debug(ctx, "category deleted", "id", id)
	return nil
}

// List returns the user's categories ordered by name.
func (s *CategoryService) List(ctx context.Context, userID string) ([]models.Category, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", common.ErrValidation)
	}
	return s.repo.List(ctx, userID)
}
