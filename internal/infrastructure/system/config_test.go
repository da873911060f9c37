package system

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigLoader_Load_FileNotExists(t *testing.T) {
	loader := NewConfigLoader()
	cfg, err := loader.Load("/nonexistent/config.yaml")

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.True(t, cfg.Catalog.ShouldValidate())
}

func TestConfigLoader_Load_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yaml := `
plugin_dir: /games/es/plugins
catalog:
  url: file:///srv/plugins.json
  validate: false
  cache_path: ""
http:
  timeout: 30s
  user_agent: espm-test
  retries: 0
`
	err := os.WriteFile(configPath, []byte(yaml), 0600)
	require.NoError(t, err)

	cfg, err := NewConfigLoader().Load(configPath)

	require.NoError(t, err)
	assert.Equal(t, "/games/es/plugins", cfg.PluginDir)
	assert.Equal(t, "file:///srv/plugins.json", cfg.Catalog.URL)
	assert.False(t, cfg.Catalog.ShouldValidate())
	assert.Empty(t, cfg.Catalog.CachePath)
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, "espm-test", cfg.HTTP.UserAgent)
	assert.Equal(t, 0, cfg.HTTP.Retries)
}

func TestConfigLoader_Load_PartialConfigKeepsDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("plugin_dir: /tmp/p\n"), 0600))

	cfg, err := NewConfigLoader().Load(configPath)

	require.NoError(t, err)
	assert.Equal(t, "/tmp/p", cfg.PluginDir)
	assert.Equal(t, DefaultCatalogURL, cfg.Catalog.URL)
	assert.Equal(t, "plugins.json", filepath.Base(cfg.Catalog.CachePath))
	assert.Equal(t, 2*time.Minute, cfg.HTTP.Timeout)
}

func TestConfigLoader_Load_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed yaml", "plugin_dir: [unclosed"},
		{"empty catalog url", "catalog:\n  url: \"\"\n"},
		{"negative retries", "http:\n  retries: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(configPath, []byte(tt.content), 0600))

			_, err := NewConfigLoader().Load(configPath)
			assert.Error(t, err)
		})
	}
}

func TestConfigLoader_Load_FieldErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"empty plugin dir", "plugin_dir: \"\"\n", "plugin_dir"},
		{"empty catalog url", "catalog:\n  url: \"\"\n", "catalog.url"},
		{"negative timeout", "http:\n  timeout: -1s\n", "http.timeout"},
		{"negative retries", "http:\n  retries: -1\n", "http.retries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(configPath, []byte(tt.content), 0600))

			_, err := NewConfigLoader().Load(configPath)

			var fieldErr *FieldError
			require.True(t, errors.As(err, &fieldErr), "got %v", err)
			assert.Equal(t, tt.field, fieldErr.Field)
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "games"), ExpandHome("~/games"))
	assert.Equal(t, "/abs/path", ExpandHome("/abs/path"))
	assert.Equal(t, "~", ExpandHome("~"))
}

func TestDefaultPluginDir(t *testing.T) {
	dir := DefaultPluginDir()

	assert.Equal(t, "plugins", filepath.Base(dir))
	assert.Equal(t, "endless-sky", filepath.Base(filepath.Dir(dir)))
}
