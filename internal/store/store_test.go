package store

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestOpen_CreatesSchemaAndSeedsCategories(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Options{Path: ":memory:"}, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	for _, table := range []string{"notes", "categories", "metadata"} {
		var name string
		err := s.DB().QueryRowContext(ctx,
			`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s must exist", table)
	}

	var n int
	require.NoError(t, s.DB().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM categories WHERE user_id='system'`).Scan(&n))
	assert.Equal(t, 4, n, "default categories must be seeded")
}

func TestOpen_IdempotentAcrossRestarts(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "notes.db")

	s1, err := Open(ctx, Options{Path: path}, testLogger())
	require.NoError(t, err)

	_, err = s1.DB().ExecContext(ctx, `
		INSERT INTO notes (id, title, content, created_at, updated_at, user_id)
		VALUES ('n1', 'T', 'C', 1, 1, 'u1')`)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	// second startup must not error or lose data
	s2, err := Open(ctx, Options{Path: path}, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s2.Close() })

	var title string
	require.NoError(t, s2.DB().QueryRowContext(ctx,
		`SELECT title FROM notes WHERE id='n1'`).Scan(&title))
	assert.Equal(t, "T", title)

	var n int
	require.NoError(t, s2.DB().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM categories WHERE user_id='system'`).Scan(&n))
	assert.Equal(t, 4, n, "seeding must not duplicate rows")
}

func TestOpen_ForeignKeysEnforced(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Options{Path: ":memory:"}, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, err = s.DB().ExecContext(ctx, `
		INSERT INTO notes (id, title, content, category_id, created_at, updated_at, user_id)
		VALUES ('n1', 'T', 'C', 'missing-cat', 1, 1, 'u1')`)
	require.Error(t, err, "dangling category reference must be rejected")
}

func TestOpen_RejectsMalformedKey(t *testing.T) {
	ctx := context.Background()

	_, err := Open(ctx, Options{Path: ":memory:", EncryptionKey: "not-hex"}, testLogger())
	require.Error(t, err)
}

func TestOpen_AcceptsGeneratedKey(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Options{
		Path:          ":memory:",
		EncryptionKey: "53a1c54dfdd4aad0b15bcb944fbf2a2f8455c32cf0979d3bbef3ce34a9f2b7e1",
	}, testLogger())
	require.NoError(t, err)
	require.NoError(t, s.Close())
}
