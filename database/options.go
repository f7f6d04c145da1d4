package database

import (
	"log/slog"
	"time"
)

// Option configures a NoteStore.
type Option func(*NoteStore)

// WithLogger sets the logger used by the store. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *NoteStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock replaces the time source used for createdAt/updatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *NoteStore) {
		if now != nil {
			s.now = now
		}
	}
}
