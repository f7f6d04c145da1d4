package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	LogLevel string
	Host     string
	Port     string
	DataDir  string
}

// Load reads configuration from the environment, after applying a .env file
// when one exists.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:      GetEnv("ENV", "development"),
		LogLevel: GetEnv("LOG_LEVEL", "info"),
		Host:     GetEnv("HOST", "127.0.0.1"),
		Port:     GetEnv("PORT", "3000"),
		DataDir:  GetEnv("DATA_DIR", defaultDataDir()),
	}
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Addr is the listen address of the local web UI.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// Level maps LOG_LEVEL to a slog level. Unknown values mean info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func defaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "thought-echo")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "thought-echo")
	}
	return filepath.Join(".", "data")
}
