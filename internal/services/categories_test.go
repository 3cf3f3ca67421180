package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/models"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/categories"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/notes"
	"github.com/dmitrijs2005/notekeeper/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCategoryService(t *testing.T) (*CategoryService, *NoteService, *sql.DB) {
	t.Helper()
	s, err := store.Open(context.Background(), store.Options{Path: ":memory:"}, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	ts := int64(1_000)
	now := func() time.Time {
		ts++
		return time.UnixMilli(ts)
	}

	catSvc := NewCategoryService(s.DB(), categories.NewSQLiteRepository(s.DB()), testLogger())
	catSvc.now = now
	noteSvc := NewNoteService(notes.NewSQLiteRepository(s.DB()), testLogger())
	noteSvc.now = now
	return catSvc, noteSvc, s.DB()
}

func TestCategoryCreate_Validation(t *testing.T) {
	svc, _, _ := setupCategoryService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   NewCategory
	}{
		{"empty name", NewCategory{Color: "#000000", UserID: "u1"}},
		{"empty color", NewCategory{Name: "Work", UserID: "u1"}},
		{"empty user", NewCategory{Name: "Work", Color: "#000000"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}
}

func TestCategoryCreate_RoundTrip(t *testing.T) {
	svc, _, _ := setupCategoryService(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, NewCategory{Name: "Work", Color: "#FF3B30", UserID: "u1"})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, c.CreatedAt, c.UpdatedAt)
	assert.Equal(t, models.SyncStatusPending, c.SyncStatus)

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, c.ID, list[0].ID)
}

func TestCategoryUpdate(t *testing.T) {
	svc, _, _ := setupCategoryService(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, NewCategory{Name: "Work", Color: "#FF3B30", UserID: "u1"})
	require.NoError(t, err)

	color := "#34C759"
	updated, err := svc.Update(ctx, c.ID, models.CategoryPatch{Color: &color})
	require.NoError(t, err)
	assert.Equal(t, "Work", updated.Name)
	assert.Equal(t, "#34C759", updated.Color)
	assert.Greater(t, updated.UpdatedAt, c.UpdatedAt)

	empty := ""
	_, err = svc.Update(ctx, c.ID, models.CategoryPatch{Name: &empty})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.Update(ctx, "nope", models.CategoryPatch{})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCategoryDelete_DetachesNotes(t *testing.T) {
	catSvc, noteSvc, _ := setupCategoryService(t)
	ctx := context.Background()

	c, err := catSvc.Create(ctx, NewCategory{Name: "Work", Color: "#FF3B30", UserID: "u1"})
	require.NoError(t, err)

	n1, err := noteSvc.Create(ctx, NewNote{Title: "in category", CategoryID: &c.ID, UserID: "u1"})
	require.NoError(t, err)
	n2, err := noteSvc.Create(ctx, NewNote{Title: "free", UserID: "u1"})
	require.NoError(t, err)

	require.NoError(t, catSvc.Delete(ctx, c.ID))

	// referencing note detached, not deleted
	got, err := noteSvc.Get(ctx, n1.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID)
	assert.Equal(t, models.SyncStatusPending, got.SyncStatus)

	list, err := noteSvc.List(ctx, "u1", nil)
	require.NoError(t, err)
	assert.Len(t, list, 2, "both notes remain listed")

	_, err = noteSvc.Get(ctx, n2.ID)
	require.NoError(t, err)

	_, err = catSvc.Update(ctx, c.ID, models.CategoryPatch{})
	require.ErrorIs(t, err, common.ErrNotFound, "category row is gone")

	require.ErrorIs(t, catSvc.Delete(ctx, c.ID), common.ErrNotFound)
}

func TestCategoryList_ScopedToUser(t *testing.T) {
	svc, _, _ := setupCategoryService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, NewCategory{Name: "Mine", Color: "#000000", UserID: "u1"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, NewCategory{Name: "Theirs", Color: "#000000", UserID: "u2"})
	require.NoError(t, err)

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Mine", list[0].Name)

	_, err = svc.List(ctx, "")
	require.ErrorIs(t, err, common.ErrValidation)
}
