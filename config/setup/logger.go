package setup

import (
	"io"
	"log/slog"

	"thought-echo/config"
)

// NewLogger builds the process logger: JSON in production, text otherwise.
// verbose forces debug level.
func NewLogger(cfg *config.Config, w io.Writer, verbose bool) *slog.Logger {
	level := cfg.Level()
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: !cfg.IsProduction() && level == slog.LevelDebug,
	}

	var handler slog.Handler
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}
