package setup

import (
	"context"
	"log/slog"

	"thought-echo/app"
	"thought-echo/database"
)

// InitStore opens the note store under dataDir and runs migrations
func InitStore(ctx context.Context, dataDir string, logger *slog.Logger) (*database.NoteStore, error) {
	store := database.NewNoteStore(dataDir, database.WithLogger(logger))
	if err := store.Initialize(ctx); err != nil {
		return nil, err
	}

	logger.Debug("database initialized", "path", store.Path())
	return store, nil
}

// InitApp initializes the application with all dependencies
func InitApp(store *database.NoteStore, logger *slog.Logger) *app.App {
	application := app.New(store, logger)
	logger.Debug("application initialized with dependency injection")
	return application
}

// Shutdown performs graceful shutdown of all services
func Shutdown(store *database.NoteStore, logger *slog.Logger) {
	logger.Debug("shutting down services...")

	if store != nil {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
			return
		}
		logger.Debug("database closed")
	}
}
