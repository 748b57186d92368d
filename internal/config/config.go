// Package config contains everything related to configuration
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/j-veylop/pedalgo-dashboard-tui/internal/models"
)

// Config holds the application configuration.
type Config struct {
	DatasetPath          string
	DatabasePath         string
	LogPath              string
	ExportDir            string
	Locale               models.Locale
	WatchDataset         bool
	ReloadDebounce       time.Duration
	DesktopNotifications bool
	HistoryLimit         int
}

// Default values
const (
	defaultDatasetPath    = "final_data.csv"
	defaultReloadDebounce = 500 * time.Millisecond
	defaultHistoryLimit   = 20
)

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	// Try loading .env from multiple locations
	envPaths := getEnvPaths()
	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	locale, err := models.ParseLocale(getEnvString("LABEL_LOCALE", string(models.LocaleEnglish)))
	if err != nil {
		return nil, fmt.Errorf("LABEL_LOCALE: %w", err)
	}

	cfg := &Config{
		DatasetPath:          getEnvString("DATASET_PATH", defaultDatasetPath),
		DatabasePath:         getEnvString("DATABASE_PATH", getDefaultDatabasePath()),
		LogPath:              getEnvString("LOG_PATH", ""),
		ExportDir:            getEnvString("EXPORT_DIR", getDefaultExportDir()),
		Locale:               locale,
		WatchDataset:         getEnvBool("WATCH_DATASET", true),
		ReloadDebounce:       getEnvDuration("RELOAD_DEBOUNCE", defaultReloadDebounce),
		DesktopNotifications: getEnvBool("DESKTOP_NOTIFICATIONS", false),
		HistoryLimit:         getEnvInt("HISTORY_LIMIT", defaultHistoryLimit),
	}

	if cfg.HistoryLimit <= 0 {
		return nil, fmt.Errorf("HISTORY_LIMIT must be positive, got %d", cfg.HistoryLimit)
	}

	// Ensure database directory exists
	if err := ensureDir(filepath.Dir(cfg.DatabasePath)); err != nil {
		return nil, err
	}

	if cfg.LogPath != "" {
		if err := ensureDir(filepath.Dir(cfg.LogPath)); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory locations
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "pedalgo", ".env"),
			filepath.Join(home, ".pedalgo", ".env"),
		)
	}

	// Parent directory (useful for development)
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(cwd), ".env"))
	}

	return paths
}

// getDefaultDatabasePath returns the default path for the SQLite database.
func getDefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "history.db"
	}
	return filepath.Join(home, ".config", "pedalgo", "history.db")
}

// getDefaultExportDir returns the working directory, or "." if unknown.
func getDefaultExportDir() string {
	if cwd, err := os.Getwd(); err == nil {
		return cwd
	}
	return "."
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "1m", "500ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as milliseconds if no unit specified
		if ms, err := strconv.Atoi(value); err == nil {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return defaultValue
}

// getEnvBool accepts strconv.ParseBool forms plus "yes"/"no".
func getEnvBool(key string, defaultValue bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch value {
	case "":
		return defaultValue
	case "yes", "on":
		return true
	case "no", "off":
		return false
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns the default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
