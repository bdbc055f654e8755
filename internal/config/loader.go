package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config   *Config
	filePath string
}

// NewLoader creates a new configuration loader.
// The config file defaults to $TODO_CONFIG_FILE, then ~/.todo/config.toml.
func NewLoader() *Loader {
	path := os.Getenv("TODO_CONFIG_FILE")
	if path == "" {
		path = filepath.Join(DefaultDir(), "config.toml")
	}
	l := &Loader{config: NewConfig()}
	return l.WithFile(path)
}

// WithFile sets the TOML file to read. An empty path disables file loading.
func (l *Loader) WithFile(path string) *Loader {
	l.filePath = path
	return l
}

// FilePath returns the TOML file the loader reads
func (l *Loader) FilePath() string {
	return l.filePath
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the TOML config file, if present
// 3. Override with environment variables
// 4. Override with command line flags (handled by cobra)
func (l *Loader) Load() (*Config, error) {
	if err := l.loadFile(); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

func (l *Loader) loadFile() error {
	if l.filePath == "" {
		return nil
	}
	meta, err := toml.DecodeFile(l.filePath, l.config)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return &ConfigError{Field: "file", Message: fmt.Sprintf("failed to read %s: %v", l.filePath, err)}
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return &ConfigError{Field: "file", Message: fmt.Sprintf("unknown key %q in %s", undecoded[0].String(), l.filePath)}
	}
	return nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	APIBaseURL *string
	APITimeout *time.Duration

	StoreDriver *string
	StoreDir    *string
	StoreDSN    *string
	Profile     *string

	DeleteConcurrency *int
	DeleteMode        *string

	LogLevel  *string
	LogFormat *string

	Timeout *time.Duration
	Verbose *bool
}

// Apply applies command line overrides to the configuration
func (o *ConfigOverrides) Apply(config *Config) {
	if o.APIBaseURL != nil {
		config.API.BaseURL = *o.APIBaseURL
	}
	if o.APITimeout != nil {
		config.API.Timeout = *o.APITimeout
	}

	if o.StoreDriver != nil {
		config.Store.Driver = *o.StoreDriver
	}
	if o.StoreDir != nil {
		config.Store.Dir = *o.StoreDir
	}
	if o.StoreDSN != nil {
		config.Store.DSN = *o.StoreDSN
	}
	if o.Profile != nil {
		config.Store.Profile = *o.Profile
	}

	if o.DeleteConcurrency != nil {
		config.Sync.DeleteConcurrency = *o.DeleteConcurrency
	}
	if o.DeleteMode != nil {
		config.Sync.DeleteMode = *o.DeleteMode
	}

	if o.LogLevel != nil {
		config.Logging.Level = *o.LogLevel
	}
	if o.LogFormat != nil {
		config.Logging.Format = *o.LogFormat
	}

	if o.Timeout != nil {
		config.Application.Timeout = *o.Timeout
	}
	if o.Verbose != nil {
		config.Application.Verbose = *o.Verbose
		if *o.Verbose && config.Logging.Level != "debug" {
			config.Logging.Level = "info"
		}
	}
}
