// Package services implements the application-facing CRUD operations over
// the repositories: input validation, id assignment, timestamp stamping and
// sync-status bookkeeping.
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/models"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/notes"
	"github.com/google/uuid"
)

// NewNote is the input for NoteService.Create.
type NewNote struct {
	Title      string
	Content    string
	CategoryID *string
	UserID     string
}

// NoteService owns note CRUD. Every mutation stamps updated_at and re-flags
// the row pending; the pending flag is only ever cleared by the sync gateway.
type NoteService struct {
	repo notes.Repository
	log  logging.Logger

	// now is an injection point for tests
	now func() time.Time
}

func NewNoteService(repo notes.Repository, log logging.Logger) *NoteService {
	return &NoteService{repo: repo, log: log, now: time.Now}
}

// Create validates in, assigns a fresh id and timestamps, and stores the
// note. The note starts out pending.
func (s *NoteService) Create(ctx context.Context, in NewNote) (*models.Note, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", common.ErrValidation)
	}
	if in.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required", common.ErrValidation)
	}

	ts := s.now().UnixMilli()
	n := &models.Note{
		ID:         uuid.NewString(),
		Title:      in.Title,
		Content:    in.Content,
		CategoryID: in.CategoryID,
		UserID:     in.UserID,
		CreatedAt:  ts,
		UpdatedAt:  ts,
		SyncStatus: models.SyncStatusPending,
	}

	if err := s.repo.Insert(ctx, n); err != nil {
		return nil, err
	}

	s.log.Debug(ctx, "note created", "id", n.ID, "user_id", n.UserID)
	return n, nil
}

// Update applies the patch to an existing note and returns the new state.
// Fields absent from the patch are left untouched; an empty patch still
// refreshes updated_at.
func (s *NoteService) Update(ctx context.Context, id string, p models.NotePatch) (*models.Note, error) {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", common.ErrValidation)
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, p, s.nextStamp(current.UpdatedAt)); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Delete soft-deletes the note. Deleting an already-deleted note refreshes
// the deletion stamp without erroring.
func (s *NoteService) Delete(ctx context.Context, id string) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, id, s.nextStamp(current.UpdatedAt))
}

// Get returns a note by id, soft-deleted ones included.
func (s *NoteService) Get(ctx context.Context, id string) (*models.Note, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns the user's live notes, newest activity first, optionally
// filtered by category.
func (s *NoteService) List(ctx context.Context, userID string, categoryID *string) ([]models.Note, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", common.ErrValidation)
	}
	return s.repo.List(ctx, userID, categoryID)
}

// Search returns the user's live notes whose title or content contains query
// case-insensitively, newest activity first.
func (s *NoteService) Search(ctx context.Context, userID, query string) ([]models.Note, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", common.ErrValidation)
	}
	return s.repo.Search(ctx, userID, query)
}

// nextStamp returns the current time in milliseconds, bumped past prev so
// updated_at strictly increases even when the wall clock has not advanced
// between consecutive mutations.
func (s *NoteService) nextStamp(prev int64) int64 {
	ts := s.now().UnixMilli()
	if ts <= prev {
		ts = prev + 1
	}
	return ts
}
