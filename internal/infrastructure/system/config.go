// Package system provides infrastructure for system-level configuration
// loaded from ~/.espm/config.yaml.
package system

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/goccy/go-yaml"
)

// DefaultCatalogURL is the community Endless Sky plug-in index.
const DefaultCatalogURL = "https://github.com/endless-sky/endless-sky-plugins/raw/master/generated/plugins.json"

// Config represents the global configuration file (~/.espm/config.yaml).
type Config struct {
	PluginDir string        `yaml:"plugin_dir"`
	Catalog   CatalogConfig `yaml:"catalog"`
	HTTP      HTTPConfig    `yaml:"http"`
}

// CatalogConfig configures where the plug-in index is read from.
type CatalogConfig struct {
	// URL is an http(s) URL, a file:// URL or a local path.
	URL string `yaml:"url"`

	// Validate enables JSON Schema validation of the index.
	Validate *bool `yaml:"validate"`

	// CachePath keeps the last good index for offline use. Empty disables it.
	CachePath string `yaml:"cache_path"`
}

// ShouldValidate reports whether the catalog must pass schema validation.
// Defaults to true.
func (c CatalogConfig) ShouldValidate() bool {
	return c.Validate == nil || *c.Validate
}

// HTTPConfig configures outbound requests.
type HTTPConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
	Retries   int           `yaml:"retries"`
}

// ConfigLoader loads system configuration from disk.
type ConfigLoader struct{}

// NewConfigLoader creates a new system config loader.
func NewConfigLoader() *ConfigLoader {
	return &ConfigLoader{}
}

// DefaultConfig returns a Config with defaults for all fields.
// This is used when no system config file exists.
func DefaultConfig() *Config {
	return &Config{
		PluginDir: DefaultPluginDir(),
		Catalog: CatalogConfig{
			URL:       DefaultCatalogURL,
			CachePath: filepath.Join(espmDir(), "cache", "plugins.json"),
		},
		HTTP: HTTPConfig{
			Timeout:   2 * time.Minute,
			UserAgent: "espm",
			Retries:   2,
		},
	}
}

// DefaultPluginDir returns the plug-in folder of the game's per-user data
// directory.
func DefaultPluginDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	switch runtime.GOOS {
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "endless-sky", "plugins")
		}
		return filepath.Join(home, "AppData", "Roaming", "endless-sky", "plugins")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "endless-sky", "plugins")
	default:
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, "endless-sky", "plugins")
		}
		return filepath.Join(home, ".local", "share", "endless-sky", "plugins")
	}
}

// DefaultConfigPath returns ~/.espm/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(espmDir(), "config.yaml")
}

func espmDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".espm"
	}
	return filepath.Join(home, ".espm")
}

// Load loads the system configuration from the specified path.
// If the file does not exist, returns DefaultConfig().
// Fields left empty in the file keep their defaults.
func (l *ConfigLoader) Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	//nolint:gosec // G304: path is user-provided config file, validated to exist above
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read system config: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse system config: %w", err)
	}

	config.PluginDir = ExpandHome(config.PluginDir)
	config.Catalog.CachePath = ExpandHome(config.Catalog.CachePath)
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// FieldError reports an unusable value for one config key.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + " " + e.Message
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	if c.PluginDir == "" {
		return &FieldError{Field: "plugin_dir", Message: "must not be empty"}
	}
	if c.Catalog.URL == "" {
		return &FieldError{Field: "catalog.url", Message: "must not be empty"}
	}
	if c.HTTP.Timeout < 0 {
		return &FieldError{Field: "http.timeout", Message: "must not be negative"}
	}
	if c.HTTP.Retries < 0 {
		return &FieldError{Field: "http.retries", Message: "must not be negative"}
	}
	return nil
}

// ExpandHome expands a leading ~/ to the user's home directory.
func ExpandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
