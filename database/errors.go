package database

import (
	"errors"
	"fmt"
)

var (
	// ErrNotInitialized is returned by every data operation before Initialize
	// succeeds or after Close.
	ErrNotInitialized = errors.New("database not initialized")

	ErrNotFound = errors.New("note not found")

	// ErrInvalidID is returned for ids that no row can ever have.
	ErrInvalidID = errors.New("invalid note id")
)

// StorageError reports a failure of the underlying storage engine.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError reports whether err is, or wraps, a *StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
