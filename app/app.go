package app

import (
	"log/slog"

	"thought-echo/database"
	"thought-echo/services"
	"thought-echo/validator"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	Store  *database.NoteStore
	Notes  *services.NoteService
	Logger *slog.Logger
}

// New creates a new App instance with all dependencies
func New(store *database.NoteStore, logger *slog.Logger) *App {
	return &App{
		Store:  store,
		Notes:  services.NewNoteService(store, validator.New(), logger),
		Logger: logger,
	}
}
