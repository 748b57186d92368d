package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/j-veylop/pedalgo-dashboard-tui/internal/models"
)

// isolate points cwd and HOME at an empty temp dir so no real .env is found.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)
	t.Setenv("HOME", tmpDir)
	for _, key := range []string{
		"DATASET_PATH", "DATABASE_PATH", "LOG_PATH", "EXPORT_DIR", "LABEL_LOCALE",
		"WATCH_DATASET", "RELOAD_DEBOUNCE", "DESKTOP_NOTIFICATIONS", "HISTORY_LIMIT",
	} {
		t.Setenv(key, "")
	}
	return tmpDir
}

func TestGetEnvString(t *testing.T) {
	key := "TEST_ENV_STRING"
	val := "test_value"
	t.Setenv(key, val)

	if got := getEnvString(key, "default"); got != val {
		t.Errorf("getEnvString() = %q, want %q", got, val)
	}

	if got := getEnvString("NON_EXISTENT", "default"); got != "default" {
		t.Errorf("getEnvString() = %q, want %q", got, "default")
	}
}

func TestGetEnvDuration(t *testing.T) {
	key := "TEST_ENV_DURATION"

	tests := []struct {
		name       string
		envVal     string
		defaultVal time.Duration
		want       time.Duration
	}{
		{"ValidDuration", "1m", time.Second, time.Minute},
		{"BareMilliseconds", "250", time.Second, 250 * time.Millisecond},
		{"Invalid", "invalid", time.Second, time.Second},
		{"Empty", "", time.Second, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(key, tt.envVal)

			if got := getEnvDuration(key, tt.defaultVal); got != tt.want {
				t.Errorf("getEnvDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_ENV_BOOL"

	tests := []struct {
		envVal     string
		defaultVal bool
		want       bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"yes", false, true},
		{"OFF", true, false},
		{"0", true, false},
		{"maybe", true, true},
		{"", false, false},
	}

	for _, tt := range tests {
		t.Setenv(key, tt.envVal)
		if got := getEnvBool(key, tt.defaultVal); got != tt.want {
			t.Errorf("getEnvBool(%q, %v) = %v, want %v", tt.envVal, tt.defaultVal, got, tt.want)
		}
	}
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_ENV_INT"

	t.Setenv(key, "42")
	if got := getEnvInt(key, 7); got != 42 {
		t.Errorf("getEnvInt() = %d, want 42", got)
	}

	t.Setenv(key, "forty")
	if got := getEnvInt(key, 7); got != 7 {
		t.Errorf("getEnvInt() = %d, want 7", got)
	}
}

func TestEnsureDir(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "dir")

	if err := ensureDir(path); err != nil {
		t.Fatalf("ensureDir() failed: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("directory was not created")
	}

	if err := ensureDir(""); err != nil {
		t.Error("ensureDir(\"\") should not error")
	}
}

func TestGetDefaultDatabasePath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Skipping test because user home dir cannot be found")
	}

	want := filepath.Join(home, ".config", "pedalgo", "history.db")
	if got := getDefaultDatabasePath(); got != want {
		t.Errorf("getDefaultDatabasePath() = %q, want %q", got, want)
	}
}

func TestGetEnvPaths(t *testing.T) {
	paths := getEnvPaths()
	if len(paths) == 0 {
		t.Error("getEnvPaths() returned empty list")
	}

	cwd, _ := os.Getwd()
	found := false
	for _, p := range paths {
		if p == filepath.Join(cwd, ".env") {
			found = true
			break
		}
	}
	if !found {
		t.Error("getEnvPaths() missing current directory .env")
	}
}

func TestLoad_Defaults(t *testing.T) {
	tmpDir := isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.DatasetPath != defaultDatasetPath {
		t.Errorf("DatasetPath = %q, want %q", cfg.DatasetPath, defaultDatasetPath)
	}
	if cfg.DatabasePath != filepath.Join(tmpDir, ".config", "pedalgo", "history.db") {
		t.Errorf("DatabasePath = %q", cfg.DatabasePath)
	}
	if cfg.Locale != models.LocaleEnglish {
		t.Errorf("Locale = %q, want en", cfg.Locale)
	}
	if !cfg.WatchDataset || cfg.DesktopNotifications {
		t.Errorf("WatchDataset/DesktopNotifications = %v/%v, want true/false", cfg.WatchDataset, cfg.DesktopNotifications)
	}
	if cfg.ReloadDebounce != defaultReloadDebounce {
		t.Errorf("ReloadDebounce = %v, want %v", cfg.ReloadDebounce, defaultReloadDebounce)
	}
	if cfg.HistoryLimit != defaultHistoryLimit {
		t.Errorf("HistoryLimit = %d, want %d", cfg.HistoryLimit, defaultHistoryLimit)
	}
	if _, err := os.Stat(filepath.Dir(cfg.DatabasePath)); err != nil {
		t.Errorf("database directory not created: %v", err)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	tmpDir := isolate(t)
	t.Setenv("DATASET_PATH", "/data/bikes.csv")
	t.Setenv("DATABASE_PATH", filepath.Join(tmpDir, "db", "h.db"))
	t.Setenv("LABEL_LOCALE", "id")
	t.Setenv("WATCH_DATASET", "false")
	t.Setenv("DESKTOP_NOTIFICATIONS", "true")
	t.Setenv("RELOAD_DEBOUNCE", "2s")
	t.Setenv("HISTORY_LIMIT", "5")
	t.Setenv("EXPORT_DIR", "/tmp/out")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.DatasetPath != "/data/bikes.csv" || cfg.ExportDir != "/tmp/out" {
		t.Errorf("paths = %q/%q", cfg.DatasetPath, cfg.ExportDir)
	}
	if cfg.Locale != models.LocaleIndonesian {
		t.Errorf("Locale = %q, want id", cfg.Locale)
	}
	if cfg.WatchDataset || !cfg.DesktopNotifications {
		t.Errorf("WatchDataset/DesktopNotifications = %v/%v", cfg.WatchDataset, cfg.DesktopNotifications)
	}
	if cfg.ReloadDebounce != 2*time.Second || cfg.HistoryLimit != 5 {
		t.Errorf("ReloadDebounce/HistoryLimit = %v/%d", cfg.ReloadDebounce, cfg.HistoryLimit)
	}
}

func TestLoad_InvalidLocale(t *testing.T) {
	isolate(t)
	t.Setenv("LABEL_LOCALE", "fr")

	if _, err := Load(); err == nil {
		t.Error("Load() should fail for unknown locale")
	}
}

func TestLoad_InvalidHistoryLimit(t *testing.T) {
	isolate(t)
	t.Setenv("HISTORY_LIMIT", "0")

	if _, err := Load(); err == nil {
		t.Error("Load() should fail for non-positive HISTORY_LIMIT")
	}
}

func TestLoad_WithEnvFile(t *testing.T) {
	tmpDir := isolate(t)
	os.Unsetenv("DATASET_PATH")

	envPath := filepath.Join(tmpDir, ".env")
	if err := os.WriteFile(envPath, []byte("DATASET_PATH=from-env-file.csv\n"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.DatasetPath != "from-env-file.csv" {
		t.Errorf("DatasetPath = %q, want from-env-file.csv", cfg.DatasetPath)
	}
}
