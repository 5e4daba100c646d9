// Package config contains everything related to configuration
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	SourceURL      string
	DatabasePath   string
	ExportDir      string
	LogFile        string
	LogLevel       string
	FetchTimeout   time.Duration
	FetchRetries   int
	HistoryEnabled bool
	WatchSource    bool
	NotifyOnError  bool
}

// Default values
const (
	DefaultSourceURL    = "http://substantiveresearch.pythonanywhere.com/"
	defaultFetchTimeout = 10 * time.Second
	maxFetchRetries     = 5
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

	cfg := &Config{
		SourceURL:      getEnvString("INTERACTIONS_URL", DefaultSourceURL),
		DatabasePath:   getEnvString("DATABASE_PATH", getDefaultDatabasePath()),
		ExportDir:      getEnvString("EXPORT_DIR", getDefaultExportDir()),
		LogFile:        getEnvString("LOG_FILE", ""),
		LogLevel:       getEnvString("LOG_LEVEL", "info"),
		FetchTimeout:   getEnvDuration("FETCH_TIMEOUT", defaultFetchTimeout),
		FetchRetries:   getEnvInt("FETCH_RETRIES", 0),
		HistoryEnabled: getEnvBool("HISTORY_ENABLED", true),
		WatchSource:    getEnvBool("WATCH_SOURCE", true),
		NotifyOnError:  getEnvBool("NOTIFY_ON_ERROR", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.HistoryEnabled {
		// Ensure database directory exists
		if err := ensureDir(filepath.Dir(cfg.DatabasePath)); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate checks that the configuration can be used.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.SourceURL) == "" {
		return fmt.Errorf("INTERACTIONS_URL must not be empty")
	}
	if IsRemoteSource(c.SourceURL) {
		u, err := url.Parse(c.SourceURL)
		if err != nil || u.Host == "" {
			return fmt.Errorf("INTERACTIONS_URL %q is not a valid URL", c.SourceURL)
		}
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive, got %s", c.FetchTimeout)
	}
	if c.FetchRetries < 0 || c.FetchRetries > maxFetchRetries {
		return fmt.Errorf("FETCH_RETRIES must be between 0 and %d, got %d", maxFetchRetries, c.FetchRetries)
	}
	return nil
}

// IsRemoteSource reports whether source is an http(s) URL rather than a
// local file.
func IsRemoteSource(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// SourcePath returns the local file path for a non-remote source, stripping
// a file:// prefix.
func SourcePath(source string) string {
	if strings.HasPrefix(source, "file://") {
		return strings.TrimPrefix(source, "file://")
	}
	return source
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
			filepath.Join(home, ".config", "isv", ".env"),
			filepath.Join(home, ".isv", ".env"),
		)
	}

	return paths
}

// getDefaultDatabasePath returns the default path for the SQLite database.
func getDefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "isv-history.db"
	}
	return filepath.Join(home, ".config", "isv", "history.db")
}

// getDefaultExportDir returns the directory chart exports are written to.
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
		// Try parsing as seconds if no unit specified
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns the default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns the default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return b
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
