package config

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ENV", "LOG_LEVEL", "HOST", "PORT", "DATA_DIR"} {
		t.Setenv(key, "")
	}
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg")

	cfg := Load()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "127.0.0.1:3000", cfg.Addr())
	assert.Equal(t, slog.LevelInfo, cfg.Level())
	assert.Equal(t, filepath.Join("/tmp/xdg", "thought-echo"), cfg.DataDir)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("HOST", "0.0.0.0")
	t.Setenv("PORT", "8081")
	t.Setenv("DATA_DIR", "/var/lib/notes")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, "0.0.0.0:8081", cfg.Addr())
	assert.Equal(t, "/var/lib/notes", cfg.DataDir)
}

func TestConfig_Level(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}

	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, want, (&Config{LogLevel: input}).Level())
		})
	}
}
