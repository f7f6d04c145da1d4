package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"thought-echo/models"
)

// DatabaseName is the fixed file name of the notes database.
const DatabaseName = "ThoughtEcho.db"

// Fixed-width UTC layout, so that comparing the stored text orders rows by time.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLite's CURRENT_TIMESTAMP layout, accepted on read.
const sqliteTimestampLayout = "2006-01-02 15:04:05"

// NoteStore provides durable CRUD access to notes. It owns exactly one
// database handle, opened by Initialize and released by Close.
type NoteStore struct {
	path   string
	logger *slog.Logger
	now    func() time.Time

	mu sync.RWMutex
	db *DB
}

// NewNoteStore creates a store backed by DatabaseName inside dir. Nothing is
// opened until Initialize is called.
func NewNoteStore(dir string, opts ...Option) *NoteStore {
	path := filepath.Join(dir, DatabaseName)
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	s := &NoteStore{
		path:   path,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the location of the database file.
func (s *NoteStore) Path() string {
	return s.path
}

// Initialize opens the database file, creating it if needed, and makes sure
// the schema exists. When the store is already open the existing handle is
// reused and only the schema step runs again.
func (s *NoteStore) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	opened := false
	if s.db == nil {
		db, err := New(s.path)
		if err != nil {
			s.logger.Error("failed to open database", "path", s.path, "error", err)
			return storageErr("open", err)
		}
		s.db = db
		opened = true
	}

	if err := s.db.Migrate(ctx); err != nil {
		s.logger.Error("failed to create schema", "path", s.path, "error", err)
		if opened {
			s.db.Close()
			s.db = nil
		}
		return storageErr("migrate", err)
	}

	s.logger.Debug("database initialized", "path", s.path, "reused", !opened)
	return nil
}

// Close releases the database handle. Closing a closed store is a no-op.
func (s *NoteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		return storageErr("close", err)
	}
	s.logger.Debug("database closed", "path", s.path)
	return nil
}

// Create inserts a note and returns it as read back from the database.
func (s *NoteStore) Create(ctx context.Context, in models.NoteCreate) (*models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, ErrNotInitialized
	}

	// Writes run to completion even if the caller goes away.
	ctx = context.WithoutCancel(ctx)
	now := s.timestamp()

	var note *models.Note
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO notes (title, content, createdAt, updatedAt)
			VALUES (?, ?, ?, ?)
		`, in.Title, in.Content, now, now)
		if err != nil {
			return storageErr("insert", err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return storageErr("insert", err)
		}

		note, err = getNote(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("note created", "id", note.ID)
	return note, nil
}

// GetAll returns every note, most recently updated first. The result is never nil.
func (s *NoteStore) GetAll(ctx context.Context) ([]models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, ErrNotInitialized
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, content, createdAt, updatedAt
		FROM notes
		ORDER BY updatedAt DESC, id DESC
	`)
	if err != nil {
		return nil, storageErr("query", err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *note)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("query", err)
	}

	return notes, nil
}

// GetByID returns the note with the given id or ErrNotFound.
func (s *NoteStore) GetByID(ctx context.Context, id int64) (*models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, ErrNotInitialized
	}
	if id <= 0 {
		return nil, fmt.Errorf("get %d: %w", id, ErrInvalidID)
	}

	return getNote(ctx, s.db, id)
}

// Update applies a partial update. Absent fields keep their stored value and
// updatedAt is refreshed regardless of which fields changed.
func (s *NoteStore) Update(ctx context.Context, in models.NoteUpdate) (*models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, ErrNotInitialized
	}
	if in.ID <= 0 {
		return nil, fmt.Errorf("update %d: %w", in.ID, ErrInvalidID)
	}

	ctx = context.WithoutCancel(ctx)
	now := s.timestamp()

	var note *models.Note
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		// MAX keeps updatedAt from moving backwards if the wall clock does.
		res, err := tx.ExecContext(ctx, `
			UPDATE notes
			SET title = COALESCE(?, title),
			    content = COALESCE(?, content),
			    updatedAt = MAX(?, updatedAt)
			WHERE id = ?
		`, in.Title.Ptr(), in.Content.Ptr(), now, in.ID)
		if err != nil {
			return storageErr("update", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return storageErr("update", err)
		}
		if affected == 0 {
			return fmt.Errorf("update %d: %w", in.ID, ErrNotFound)
		}

		note, err = getNote(ctx, tx, in.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("note updated", "id", note.ID,
		"title_changed", in.Title.IsSet(), "content_changed", in.Content.IsSet())
	return note, nil
}

// Delete removes the note if it exists. Deleting a missing note is not an error.
func (s *NoteStore) Delete(ctx context.Context, id int64) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return ErrNotInitialized
	}
	if id <= 0 {
		return fmt.Errorf("delete %d: %w", id, ErrInvalidID)
	}

	ctx = context.WithoutCancel(ctx)
	res, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return storageErr("delete", err)
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		s.logger.Debug("delete of missing note ignored", "id", id)
		return nil
	}

	s.logger.Debug("note deleted", "id", id)
	return nil
}

func (s *NoteStore) timestamp() string {
	return s.now().UTC().Format(timestampLayout)
}

func (s *NoteStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin", err)
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return storageErr("commit", tx.Commit())
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

func getNote(ctx context.Context, q queryRower, id int64) (*models.Note, error) {
	row := q.QueryRowContext(ctx, `
		SELECT id, title, content, createdAt, updatedAt
		FROM notes
		WHERE id = ?
	`, id)

	note, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get %d: %w", id, ErrNotFound)
	}
	return note, err
}

func scanNote(row scanner) (*models.Note, error) {
	var note models.Note
	var createdAt, updatedAt string

	err := row.Scan(&note.ID, &note.Title, &note.Content, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, storageErr("scan", err)
	}

	if note.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, storageErr("scan", fmt.Errorf("note %d createdAt: %w", note.ID, err))
	}
	if note.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, storageErr("scan", fmt.Errorf("note %d updatedAt: %w", note.ID, err))
	}

	return &note, nil
}

func parseTimestamp(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err == nil {
		return t.UTC(), nil
	}
	if t, legacyErr := time.Parse(sqliteTimestampLayout, value); legacyErr == nil {
		return t.UTC(), nil
	}
	return time.Time{}, err
}
