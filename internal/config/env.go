package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/tarotbuild/internal/logfields"
)

// EnvLogLevel selects the log level when set to debug|info|warn|error.
const EnvLogLevel = "TAROTBUILD_LOG_LEVEL"

// loadEnvFile loads environment variables from .env/.env.local next to the config file.
// It stops at the first file that loads. Existing process variables are never overwritten.
func loadEnvFile(dir string) {
	for _, name := range []string{".env", ".env.local"} {
		envPath := filepath.Join(dir, name)
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			slog.Warn("Failed to load env file", logfields.Path(envPath), logfields.Error(err))
			continue
		}
		slog.Debug("Loaded environment variables", logfields.Path(envPath))
		return
	}
}

// LogLevel resolves the log level from the verbose flag and TAROTBUILD_LOG_LEVEL.
func LogLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv(EnvLogLevel))) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
