package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DefaultAPIBaseURL is the public playground API the to-do lists live on.
const DefaultAPIBaseURL = "https://playground.4geeks.com/todo"

// Store drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Delete-all modes
const (
	DeleteModeAllOrNothing = "all-or-nothing"
	DeleteModeBestEffort   = "best-effort"
)

// Config holds all configuration options for the to-do client
type Config struct {
	API         APIConfig         `toml:"api"`
	Store       StoreConfig       `toml:"store"`
	Sync        SyncConfig        `toml:"sync"`
	Validation  ValidationConfig  `toml:"validation"`
	Logging     LoggingConfig     `toml:"logging"`
	Application ApplicationConfig `toml:"application"`
}

// APIConfig holds remote API settings
type APIConfig struct {
	BaseURL string        `toml:"base_url" env:"TODO_API_BASE_URL"`
	Timeout time.Duration `toml:"timeout" env:"TODO_API_TIMEOUT"`
}

// StoreConfig holds settings for the local view-state store
type StoreConfig struct {
	Driver         string `toml:"driver" env:"TODO_STORE_DRIVER"`
	Dir            string `toml:"dir" env:"TODO_STORE_DIR"`
	Filename       string `toml:"filename" env:"TODO_STORE_FILENAME"`
	DSN            string `toml:"dsn" env:"TODO_STORE_DSN"`
	Profile        string `toml:"profile" env:"TODO_PROFILE"`
	DirPermissions uint32 `toml:"dir_permissions" env:"TODO_STORE_DIR_PERMISSIONS"`
}

// SyncConfig holds settings for the view-model synchronizer
type SyncConfig struct {
	DeleteConcurrency int    `toml:"delete_concurrency" env:"TODO_DELETE_CONCURRENCY"`
	DeleteMode        string `toml:"delete_mode" env:"TODO_DELETE_MODE"`
}

// ValidationConfig holds argument validation limits
type ValidationConfig struct {
	LabelMaxLength    int `toml:"label_max_length" env:"TODO_VALIDATION_LABEL_MAX"`
	UserNameMaxLength int `toml:"user_name_max_length" env:"TODO_VALIDATION_USER_MAX"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `toml:"level" env:"TODO_LOG_LEVEL"`
	Format string `toml:"format" env:"TODO_LOG_FORMAT"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `toml:"timeout" env:"TODO_APP_TIMEOUT"`
	Verbose bool          `toml:"verbose" env:"TODO_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: DefaultAPIBaseURL,
			Timeout: 30 * time.Second,
		},
		Store: StoreConfig{
			Driver:         DriverSQLite,
			Dir:            DefaultDir(),
			Filename:       "state.db",
			Profile:        "default",
			DirPermissions: 0755,
		},
		Sync: SyncConfig{
			DeleteConcurrency: 4,
			DeleteMode:        DeleteModeAllOrNothing,
		},
		Validation: ValidationConfig{
			LabelMaxLength:    255,
			UserNameMaxLength: 64,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// DefaultDir returns ~/.todo, or .todo when the home directory is unknown
func DefaultDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".todo"
	}
	return filepath.Join(homeDir, ".todo")
}

// GetDatabasePath returns the full path to the SQLite state file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Store.Dir, c.Store.Filename)
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// API configuration
	if baseURL := os.Getenv("TODO_API_BASE_URL"); baseURL != "" {
		c.API.BaseURL = baseURL
	}
	if timeout := os.Getenv("TODO_API_TIMEOUT"); timeout != "" {
		c.API.Timeout = ParseDurationWithFallback(timeout, c.API.Timeout)
	}

	// Store configuration
	if driver := os.Getenv("TODO_STORE_DRIVER"); driver != "" {
		c.Store.Driver = strings.ToLower(driver)
	}
	if dir := os.Getenv("TODO_STORE_DIR"); dir != "" {
		c.Store.Dir = dir
	}
	if filename := os.Getenv("TODO_STORE_FILENAME"); filename != "" {
		c.Store.Filename = filename
	}
	if dsn := os.Getenv("TODO_STORE_DSN"); dsn != "" {
		c.Store.DSN = dsn
	}
	if profile := os.Getenv("TODO_PROFILE"); profile != "" {
		c.Store.Profile = profile
	}
	if perms := os.Getenv("TODO_STORE_DIR_PERMISSIONS"); perms != "" {
		c.Store.DirPermissions = ParseUint32WithFallback(perms, 8, c.Store.DirPermissions)
	}

	// Sync configuration
	if concurrency := os.Getenv("TODO_DELETE_CONCURRENCY"); concurrency != "" {
		c.Sync.DeleteConcurrency = ParseIntWithFallback(concurrency, c.Sync.DeleteConcurrency)
	}
	if mode := os.Getenv("TODO_DELETE_MODE"); mode != "" {
		c.Sync.DeleteMode = strings.ToLower(mode)
	}

	// Validation configuration
	if maxLen := os.Getenv("TODO_VALIDATION_LABEL_MAX"); maxLen != "" {
		c.Validation.LabelMaxLength = ParseIntWithFallback(maxLen, c.Validation.LabelMaxLength)
	}
	if maxLen := os.Getenv("TODO_VALIDATION_USER_MAX"); maxLen != "" {
		c.Validation.UserNameMaxLength = ParseIntWithFallback(maxLen, c.Validation.UserNameMaxLength)
	}

	// Logging configuration
	if level := os.Getenv("TODO_LOG_LEVEL"); level != "" {
		c.Logging.Level = strings.ToLower(level)
	}
	if format := os.Getenv("TODO_LOG_FORMAT"); format != "" {
		c.Logging.Format = strings.ToLower(format)
	}

	// Application configuration
	if timeout := os.Getenv("TODO_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("TODO_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate API configuration
	if c.API.BaseURL == "" {
		return &ConfigError{Field: "api.base_url", Message: "base URL cannot be empty"}
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return &ConfigError{Field: "api.base_url", Message: "base URL must start with http:// or https://"}
	}
	if c.API.Timeout <= 0 {
		return &ConfigError{Field: "api.timeout", Message: "request timeout must be positive"}
	}

	// Validate store configuration
	switch c.Store.Driver {
	case DriverSQLite:
		if c.Store.Dir == "" {
			return &ConfigError{Field: "store.dir", Message: "store directory cannot be empty"}
		}
		if c.Store.Filename == "" {
			return &ConfigError{Field: "store.filename", Message: "store filename cannot be empty"}
		}
	case DriverPostgres:
		if c.Store.DSN == "" {
			return &ConfigError{Field: "store.dsn", Message: "a DSN is required for the postgres driver"}
		}
	case DriverMemory:
	default:
		return &ConfigError{Field: "store.driver", Message: "driver must be one of sqlite, postgres, memory"}
	}
	if c.Store.Profile == "" {
		return &ConfigError{Field: "store.profile", Message: "profile cannot be empty"}
	}

	// Validate sync configuration
	if c.Sync.DeleteConcurrency < 0 {
		return &ConfigError{Field: "sync.delete_concurrency", Message: "delete concurrency cannot be negative"}
	}
	if c.Sync.DeleteMode != DeleteModeAllOrNothing && c.Sync.DeleteMode != DeleteModeBestEffort {
		return &ConfigError{Field: "sync.delete_mode", Message: "delete mode must be all-or-nothing or best-effort"}
	}

	// Validate validation configuration
	if c.Validation.LabelMaxLength < 1 {
		return &ConfigError{Field: "validation.label_max_length", Message: "label maximum length must be at least 1"}
	}
	if c.Validation.UserNameMaxLength < 1 {
		return &ConfigError{Field: "validation.user_name_max_length", Message: "user name maximum length must be at least 1"}
	}

	// Validate logging configuration
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return &ConfigError{Field: "logging.level", Message: "level must be one of debug, info, warn, error"}
	}
	switch c.Logging.Format {
	case "text", "json", "logfmt":
	default:
		return &ConfigError{Field: "logging.format", Message: "format must be one of text, json, logfmt"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
