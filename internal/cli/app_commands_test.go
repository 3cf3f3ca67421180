package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/notekeeper/internal/config"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/categories"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/notes"
	"github.com/dmitrijs2005/notekeeper/internal/services"
	"github.com/dmitrijs2005/notekeeper/internal/store"
)

// setupApp builds an App over an in-memory store with scripted stdin and a
// captured output buffer. The sync gateway is left unset; these tests cover
// the local command handlers only.
func setupApp(t *testing.T, input string) (*App, *bytes.Buffer) {
	t.Helper()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	s, err := store.Open(context.Background(), store.Options{Path: ":memory:"}, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.UserID = "u1"

	var out bytes.Buffer
	return &App{
		config:     cfg,
		store:      s,
		notes:      services.NewNoteService(notes.NewSQLiteRepository(s.DB()), log),
		categories: services.NewCategoryService(s.DB(), categories.NewSQLiteRepository(s.DB()), log),
		log:        log,
		Mode:       ModeOffline,
		reader:     bufio.NewReader(strings.NewReader(input)),
		out:        &out,
	}, &out
}

func TestAppAdd_List(t *testing.T) {
	app, out := setupApp(t, strings.Join([]string{
		"Groceries",  // title
		"milk",       // content
		"eggs",       //
		"",           // end of multiline
		"",           // no category
	}, "\n")+"\n")
	ctx := context.Background()

	require.NoError(t, app.Add(ctx))
	assert.Contains(t, out.String(), "Created:")
	assert.Contains(t, out.String(), "Groceries")

	out.Reset()
	require.NoError(t, app.List(ctx, ""))
	assert.Contains(t, out.String(), "Groceries")
}

func TestAppEdit_KeepsUnansweredFields(t *testing.T) {
	app, out := setupApp(t, "")
	ctx := context.Background()

	n, err := app.notes.Create(ctx, services.NewNote{Title: "Old", Content: "body", UserID: "u1"})
	require.NoError(t, err)

	app.reader = bufio.NewReader(strings.NewReader(strings.Join([]string{
		n.ID,  // id
		"New", // title
		"",    // keep content
		"",    // keep category
	}, "\n") + "\n"))

	require.NoError(t, app.Edit(ctx))
	assert.Contains(t, out.String(), "Updated:")

	got, err := app.notes.Get(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, "body", got.Content)
}

func TestAppEdit_NothingToChange(t *testing.T) {
	app, out := setupApp(t, "")
	ctx := context.Background()

	n, err := app.notes.Create(ctx, services.NewNote{Title: "T", Content: "c", UserID: "u1"})
	require.NoError(t, err)

	app.reader = bufio.NewReader(strings.NewReader(n.ID + "\n\n\n\n"))
	require.NoError(t, app.Edit(ctx))
	assert.Contains(t, out.String(), "Nothing to change.")
}

func TestAppPin_TogglesBothWays(t *testing.T) {
	app, out := setupApp(t, "")
	ctx := context.Background()

	n, err := app.notes.Create(ctx, services.NewNote{Title: "T", Content: "c", UserID: "u1"})
	require.NoError(t, err)

	app.reader = bufio.NewReader(strings.NewReader(n.ID + "\n" + n.ID + "\n"))

	require.NoError(t, app.Pin(ctx))
	got, err := app.notes.Get(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPinned)
	assert.Contains(t, out.String(), "pin on")

	require.NoError(t, app.Pin(ctx))
	got, err = app.notes.Get(ctx, n.ID)
	require.NoError(t, err)
	assert.False(t, got.IsPinned)
}

func TestAppDelete_HidesNoteFromList(t *testing.T) {
	app, out := setupApp(t, "")
	ctx := context.Background()

	n, err := app.notes.Create(ctx, services.NewNote{Title: "Gone", Content: "c", UserID: "u1"})
	require.NoError(t, err)

	app.reader = bufio.NewReader(strings.NewReader(n.ID + "\n"))
	require.NoError(t, app.Delete(ctx))

	out.Reset()
	require.NoError(t, app.List(ctx, ""))
	assert.Contains(t, out.String(), "No notes.")
}

func TestAppCategories_SeededDefaultsListed(t *testing.T) {
	app, out := setupApp(t, "")
	ctx := context.Background()

	// the built-in categories belong to the system user
	require.NoError(t, app.Categories(ctx))
	assert.Contains(t, out.String(), "No categories.")

	app.reader = bufio.NewReader(strings.NewReader("Work\n#FF3B30\n"))
	out.Reset()
	require.NoError(t, app.AddCategory(ctx))
	assert.Contains(t, out.String(), "Work")

	out.Reset()
	require.NoError(t, app.Categories(ctx))
	assert.Contains(t, out.String(), "Work")
}

func TestAppDeleteCategory_DetachesNotes(t *testing.T) {
	app, out := setupApp(t, "")
	ctx := context.Background()

	c, err := app.categories.Create(ctx, services.NewCategory{Name: "Work", Color: "#FF3B30", UserID: "u1"})
	require.NoError(t, err)
	n, err := app.notes.Create(ctx, services.NewNote{Title: "Linked", Content: "c", UserID: "u1", CategoryID: &c.ID})
	require.NoError(t, err)

	app.reader = bufio.NewReader(strings.NewReader(c.ID + "\n"))
	require.NoError(t, app.DeleteCategory(ctx))
	assert.Contains(t, out.String(), "uncategorized")

	got, err := app.notes.Get(ctx, n.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID)
}
