package services

import (
	"errors"

	"thought-echo/database"
)

// Note errors, re-exported so consumers only need this package
var (
	ErrNoteNotFound   = database.ErrNotFound
	ErrInvalidNoteID  = database.ErrInvalidID
	ErrNotInitialized = database.ErrNotInitialized
)

// IsNotFound reports whether err means the note does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNoteNotFound)
}

// IsInvalidID reports whether err means the id can never name a note.
func IsInvalidID(err error) bool {
	return errors.Is(err, ErrInvalidNoteID)
}
