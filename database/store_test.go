package database

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"thought-echo/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepClock returns a strictly increasing time on every call.
type stepClock struct {
	mu   sync.Mutex
	t    time.Time
	step time.Duration
}

func newStepClock() *stepClock {
	return &stepClock{
		t:    time.Date(2025, 10, 17, 9, 0, 0, 0, time.UTC),
		step: time.Second,
	}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(c.step)
	return c.t
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupTestStore(t *testing.T, opts ...Option) (*NoteStore, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "note-store-test-*")
	require.NoError(t, err)

	opts = append([]Option{WithLogger(quietLogger()), WithClock(newStepClock().Now)}, opts...)
	store := NewNoteStore(tmpDir, opts...)
	require.NoError(t, store.Initialize(context.Background()))

	cleanup := func() {
		store.Close()
		os.RemoveAll(tmpDir)
	}

	return store, cleanup
}

func createNote(t *testing.T, store *NoteStore, title, content string) *models.Note {
	t.Helper()
	note, err := store.Create(context.Background(), models.NoteCreate{Title: title, Content: content})
	require.NoError(t, err)
	return note
}

func TestNoteStore_Lifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("Operations fail before Initialize", func(t *testing.T) {
		store := NewNoteStore(t.TempDir(), WithLogger(quietLogger()))

		_, err := store.Create(ctx, models.NoteCreate{Title: "t", Content: "c"})
		assert.ErrorIs(t, err, ErrNotInitialized)

		_, err = store.GetAll(ctx)
		assert.ErrorIs(t, err, ErrNotInitialized)

		_, err = store.GetByID(ctx, 1)
		assert.ErrorIs(t, err, ErrNotInitialized)

		_, err = store.Update(ctx, models.NoteUpdate{ID: 1, Title: models.Some("x")})
		assert.ErrorIs(t, err, ErrNotInitialized)

		assert.ErrorIs(t, store.Delete(ctx, 1), ErrNotInitialized)
	})

	t.Run("Not initialized wins over an invalid id", func(t *testing.T) {
		store := NewNoteStore(t.TempDir(), WithLogger(quietLogger()))

		_, err := store.GetByID(ctx, 0)
		assert.ErrorIs(t, err, ErrNotInitialized)
		assert.NotErrorIs(t, err, ErrInvalidID)

		_, err = store.Update(ctx, models.NoteUpdate{ID: 0, Title: models.Some("x")})
		assert.ErrorIs(t, err, ErrNotInitialized)

		assert.ErrorIs(t, store.Delete(ctx, -1), ErrNotInitialized)
	})

	t.Run("Close before Initialize is a no-op", func(t *testing.T) {
		store := NewNoteStore(t.TempDir(), WithLogger(quietLogger()))
		assert.NoError(t, store.Close())
	})

	t.Run("Operations fail after Close", func(t *testing.T) {
		store, cleanup := setupTestStore(t)
		defer cleanup()

		require.NoError(t, store.Close())
		require.NoError(t, store.Close(), "second Close must be a no-op")

		_, err := store.GetAll(ctx)
		assert.ErrorIs(t, err, ErrNotInitialized)
		assert.ErrorIs(t, store.Delete(ctx, 1), ErrNotInitialized)
	})

	t.Run("Initialize twice keeps a single schema", func(t *testing.T) {
		store, cleanup := setupTestStore(t)
		defer cleanup()

		created := createNote(t, store, "Before", "second init")
		handle := store.db

		require.NoError(t, store.Initialize(ctx))
		assert.Same(t, handle, store.db, "re-initializing must reuse the open handle")

		var tables, indexes int
		require.NoError(t, store.db.QueryRow(
			`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'notes'`).Scan(&tables))
		require.NoError(t, store.db.QueryRow(
			`SELECT count(*) FROM sqlite_master WHERE type = 'index' AND name = 'idx_notes_updated_at'`).Scan(&indexes))
		assert.Equal(t, 1, tables)
		assert.Equal(t, 1, indexes)

		got, err := store.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Before", got.Title)
	})

	t.Run("Data survives Close and re-Initialize", func(t *testing.T) {
		store, cleanup := setupTestStore(t)
		defer cleanup()

		created := createNote(t, store, "Durable", "still here")

		require.NoError(t, store.Close())
		require.NoError(t, store.Initialize(ctx))

		got, err := store.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("Database file uses the fixed name", func(t *testing.T) {
		dir := t.TempDir()
		store := NewNoteStore(dir, WithLogger(quietLogger()))
		require.NoError(t, store.Initialize(ctx))
		defer store.Close()

		assert.Equal(t, filepath.Join(dir, DatabaseName), store.Path())
		assert.FileExists(t, store.Path())
	})

	t.Run("Open failure is a storage error", func(t *testing.T) {
		dir := t.TempDir()
		blocker := filepath.Join(dir, "not-a-dir")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

		store := NewNoteStore(filepath.Join(blocker, "data"), WithLogger(quietLogger()))
		err := store.Initialize(ctx)
		require.Error(t, err)

		var storageErr *StorageError
		require.ErrorAs(t, err, &storageErr)
		assert.Equal(t, "open", storageErr.Op)
		assert.True(t, IsStorageError(err))

		_, err = store.GetAll(ctx)
		assert.ErrorIs(t, err, ErrNotInitialized, "a failed Initialize leaves the store closed")
	})
}

func TestNoteStore_Create(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	t.Run("Assigns id and equal timestamps", func(t *testing.T) {
		note := createNote(t, store, "Test Note", "This is a test note content")

		assert.Positive(t, note.ID)
		assert.Equal(t, "Test Note", note.Title)
		assert.Equal(t, "This is a test note content", note.Content)
		assert.False(t, note.CreatedAt.IsZero())
		assert.Equal(t, note.CreatedAt, note.UpdatedAt)
		assert.Equal(t, time.UTC, note.CreatedAt.Location())
	})

	t.Run("Ids are unique", func(t *testing.T) {
		a := createNote(t, store, "a", "a")
		b := createNote(t, store, "b", "b")
		assert.NotEqual(t, a.ID, b.ID)
	})

	t.Run("Returned note matches what GetByID reads", func(t *testing.T) {
		created := createNote(t, store, "Unicode ✓", "multi\nline\tcontent")

		got, err := store.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("Cancelled context does not abort the write", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		note, err := store.Create(cancelled, models.NoteCreate{Title: "late", Content: "still written"})
		require.NoError(t, err)

		got, err := store.GetByID(ctx, note.ID)
		require.NoError(t, err)
		assert.Equal(t, "still written", got.Content)
	})
}

func TestNoteStore_GetByID(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	tests := []struct {
		name    string
		id      int64
		wantErr error
	}{
		{name: "Missing id", id: 9999, wantErr: ErrNotFound},
		{name: "Zero id", id: 0, wantErr: ErrInvalidID},
		{name: "Negative id", id: -3, wantErr: ErrInvalidID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			note, err := store.GetByID(ctx, tt.id)
			assert.Nil(t, note)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNoteStore_Update(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	t.Run("Absent title is kept", func(t *testing.T) {
		note := createNote(t, store, "Keep me", "old")

		updated, err := store.Update(ctx, models.NoteUpdate{ID: note.ID, Content: models.Some("new")})
		require.NoError(t, err)

		assert.Equal(t, "Keep me", updated.Title)
		assert.Equal(t, "new", updated.Content)
		assert.Equal(t, note.CreatedAt, updated.CreatedAt)
		assert.True(t, updated.UpdatedAt.After(note.UpdatedAt))
	})

	t.Run("Absent content is kept", func(t *testing.T) {
		note := createNote(t, store, "old title", "Keep me")

		updated, err := store.Update(ctx, models.NoteUpdate{ID: note.ID, Title: models.Some("new title")})
		require.NoError(t, err)

		assert.Equal(t, "new title", updated.Title)
		assert.Equal(t, "Keep me", updated.Content)
	})

	t.Run("Empty patch still refreshes updatedAt", func(t *testing.T) {
		note := createNote(t, store, "t", "c")

		updated, err := store.Update(ctx, models.NoteUpdate{ID: note.ID})
		require.NoError(t, err)

		assert.Equal(t, "t", updated.Title)
		assert.Equal(t, "c", updated.Content)
		assert.True(t, updated.UpdatedAt.After(note.UpdatedAt))
	})

	t.Run("Present empty value is stored, not treated as absent", func(t *testing.T) {
		note := createNote(t, store, "t", "c")

		updated, err := store.Update(ctx, models.NoteUpdate{ID: note.ID, Content: models.Some("")})
		require.NoError(t, err)
		assert.Equal(t, "", updated.Content)
	})

	t.Run("Missing id is not found", func(t *testing.T) {
		_, err := store.Update(ctx, models.NoteUpdate{ID: 424242, Title: models.Some("x")})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Invalid id", func(t *testing.T) {
		_, err := store.Update(ctx, models.NoteUpdate{ID: 0, Title: models.Some("x")})
		assert.ErrorIs(t, err, ErrInvalidID)
	})
}

func TestNoteStore_UpdateClockSkew(t *testing.T) {
	base := time.Date(2025, 10, 17, 12, 0, 0, 0, time.UTC)
	times := []time.Time{base, base.Add(-time.Hour)}
	var calls int
	clock := func() time.Time {
		ts := times[calls%len(times)]
		calls++
		return ts
	}

	store, cleanup := setupTestStore(t, WithClock(clock))
	defer cleanup()
	ctx := context.Background()

	note := createNote(t, store, "skew", "clock goes back")
	updated, err := store.Update(ctx, models.NoteUpdate{ID: note.ID, Content: models.Some("after")})
	require.NoError(t, err)

	assert.Equal(t, "after", updated.Content)
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))
}

func TestNoteStore_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty store returns empty non-nil slice", func(t *testing.T) {
		store, cleanup := setupTestStore(t)
		defer cleanup()

		notes, err := store.GetAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, notes)
		assert.Empty(t, notes)
	})

	t.Run("Most recently updated first", func(t *testing.T) {
		store, cleanup := setupTestStore(t)
		defer cleanup()

		oldest := createNote(t, store, "oldest", "1")
		middle := createNote(t, store, "middle", "2")
		newest := createNote(t, store, "newest", "3")

		notes, err := store.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, notes, 3)
		assert.Equal(t, []int64{newest.ID, middle.ID, oldest.ID},
			[]int64{notes[0].ID, notes[1].ID, notes[2].ID})

		_, err = store.Update(ctx, models.NoteUpdate{ID: oldest.ID, Content: models.Some("touched")})
		require.NoError(t, err)

		notes, err = store.GetAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, oldest.ID, notes[0].ID)
		assert.Equal(t, "touched", notes[0].Content)
	})
}

func TestNoteStore_Delete(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	t.Run("Delete twice never errors", func(t *testing.T) {
		note := createNote(t, store, "gone", "soon")

		require.NoError(t, store.Delete(ctx, note.ID))
		require.NoError(t, store.Delete(ctx, note.ID))

		_, err := store.GetByID(ctx, note.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Missing id: delete succeeds, get and update fail", func(t *testing.T) {
		const missing = 777777

		assert.NoError(t, store.Delete(ctx, missing))

		_, err := store.GetByID(ctx, missing)
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = store.Update(ctx, models.NoteUpdate{ID: missing, Content: models.Some("x")})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Invalid id", func(t *testing.T) {
		assert.ErrorIs(t, store.Delete(ctx, -1), ErrInvalidID)
	})

	t.Run("Other notes are untouched", func(t *testing.T) {
		keep := createNote(t, store, "keep", "k")
		drop := createNote(t, store, "drop", "d")

		require.NoError(t, store.Delete(ctx, drop.ID))

		got, err := store.GetByID(ctx, keep.ID)
		require.NoError(t, err)
		assert.Equal(t, keep, got)
	})
}

func TestNoteStore_GroceriesScenario(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	createNote(t, store, "Other", "older note")

	created, err := store.Create(ctx, models.NoteCreate{Title: "Groceries", Content: "Milk, eggs"})
	require.NoError(t, err)
	require.Positive(t, created.ID)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	updated, err := store.Update(ctx, models.NoteUpdate{
		ID:      created.ID,
		Content: models.Some("Milk, eggs, bread"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", updated.Title)
	assert.Equal(t, "Milk, eggs, bread", updated.Content)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	notes, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, notes)
	assert.Equal(t, created.ID, notes[0].ID)
}

func TestNoteStore_ReadsDefaultTimestamps(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	_, err := store.db.Exec(`INSERT INTO notes (title, content) VALUES ('defaults', 'schema defaults')`)
	require.NoError(t, err)
	_, err = store.db.Exec(`INSERT INTO notes (title, content, createdAt, updatedAt)
		VALUES ('legacy', 'current_timestamp layout', '2024-01-02 03:04:05', '2024-01-02 03:04:05')`)
	require.NoError(t, err)

	notes, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 2)

	for _, note := range notes {
		assert.False(t, note.CreatedAt.IsZero(), note.Title)
		assert.False(t, note.UpdatedAt.Before(note.CreatedAt), note.Title)
	}

	legacy := notes[1]
	assert.Equal(t, "legacy", legacy.Title)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), legacy.CreatedAt)
}

func TestNoteStore_DefaultTimestampsMatchStoredWidth(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	written := createNote(t, store, "written", "by the store")
	_, err := store.db.Exec(`INSERT INTO notes (title, content) VALUES ('defaults', 'schema defaults')`)
	require.NoError(t, err)

	rows, err := store.db.Query(`SELECT title, createdAt, updatedAt FROM notes`)
	require.NoError(t, err)
	defer rows.Close()

	width := len(written.CreatedAt.UTC().Format(timestampLayout))
	seen := 0
	for rows.Next() {
		var title, createdAt, updatedAt string
		require.NoError(t, rows.Scan(&title, &createdAt, &updatedAt))
		assert.Len(t, createdAt, width, title)
		assert.Len(t, updatedAt, width, title)
		assert.True(t, strings.HasSuffix(createdAt, "Z"), title)
		seen++
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, 2, seen)
}

func TestNoteStore_CorruptTimestamp(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	res, err := store.db.Exec(`INSERT INTO notes (title, content, createdAt, updatedAt)
		VALUES ('bad', 'row', 'yesterday', 'today')`)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)

	_, err = store.GetByID(context.Background(), id)
	require.Error(t, err)
	assert.True(t, IsStorageError(err))
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "Fixed width layout",
			value: "2025-10-17T09:00:01.000000000Z",
			want:  time.Date(2025, 10, 17, 9, 0, 1, 0, time.UTC),
		},
		{
			name:  "Millisecond default",
			value: "2025-10-17T09:00:01.250Z",
			want:  time.Date(2025, 10, 17, 9, 0, 1, 250_000_000, time.UTC),
		},
		{
			name:  "Offset is normalised to UTC",
			value: "2025-10-17T11:00:01+02:00",
			want:  time.Date(2025, 10, 17, 9, 0, 1, 0, time.UTC),
		},
		{
			name:  "CURRENT_TIMESTAMP layout",
			value: "2025-10-17 09:00:01",
			want:  time.Date(2025, 10, 17, 9, 0, 1, 0, time.UTC),
		},
		{
			name:    "Garbage",
			value:   "not a time",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTimestamp(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestTimestampLayoutSortsAsText(t *testing.T) {
	early := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	late := early.Add(500 * time.Millisecond)

	a := early.Format(timestampLayout)
	b := late.Format(timestampLayout)

	assert.Len(t, b, len(a))
	assert.Less(t, a, b)
}
