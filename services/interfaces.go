package services

import (
	"context"

	"thought-echo/models"
)

// NoteStore defines the interface for note data access
// Production uses database.NoteStore
type NoteStore interface {
	Create(ctx context.Context, in models.NoteCreate) (*models.Note, error)
	GetAll(ctx context.Context) ([]models.Note, error)
	GetByID(ctx context.Context, id int64) (*models.Note, error)
	Update(ctx context.Context, in models.NoteUpdate) (*models.Note, error)
	Delete(ctx context.Context, id int64) error
}
