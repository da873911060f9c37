// Package catalog reads the remote plug-in index.
package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/espm-dev/espm/internal/application/ports"
	"github.com/espm-dev/espm/internal/domain/entities"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var indexSchema []byte

// entry is one element of the index document.
type entry struct {
	Name             string `json:"name"`
	Authors          string `json:"authors"`
	Homepage         string `json:"homepage"`
	License          string `json:"license"`
	URL              string `json:"url"`
	Version          string `json:"version"`
	IconURL          string `json:"iconUrl"`
	ShortDescription string `json:"shortDescription"`
	Description      string `json:"description"`
}

func (e entry) toAvailable() entities.AvailablePlugin {
	return entities.AvailablePlugin{
		Name:             strings.TrimSpace(e.Name),
		Version:          e.Version,
		Homepage:         e.Homepage,
		ShortDescription: e.ShortDescription,
		Description:      e.Description,
		IconURL:          e.IconURL,
		ArchiveURL:       e.URL,
		Authors:          e.Authors,
		License:          e.License,
	}
}

// Catalog implements ports.CatalogSource.
type Catalog struct {
	source    string
	fetcher   ports.ByteFetcher
	validate  bool
	cachePath string
	logger    *slog.Logger
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithoutValidation skips JSON Schema validation of the index.
func WithoutValidation() Option {
	return func(c *Catalog) {
		c.validate = false
	}
}

// WithCache keeps the last good index at path and serves it when the
// source cannot be read. An empty path disables the cache.
func WithCache(path string) Option {
	return func(c *Catalog) {
		c.cachePath = path
	}
}

// WithLogger sets the logger used for duplicate warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		c.logger = logger
	}
}

// New creates a catalog reading from source: an http(s) URL fetched through
// fetcher, a file:// URL or a local path.
func New(source string, fetcher ports.ByteFetcher, opts ...Option) *Catalog {
	c := &Catalog{
		source:   source,
		fetcher:  fetcher,
		validate: true,
		logger:   slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Source returns where the index is read from.
func (c *Catalog) Source() string {
	return c.source
}

// ListAvailable reads, validates and decodes the index.
func (c *Catalog) ListAvailable(ctx context.Context) ([]entities.AvailablePlugin, error) {
	data, err := c.read(ctx)
	if err != nil {
		cached, ok := c.readCache()
		if !ok {
			return nil, err
		}
		c.logger.Warn("plugin index unavailable, using cached copy",
			"source", c.source,
			"cache", c.cachePath,
			"error", err)
		return c.Parse(cached)
	}

	plugins, err := c.Parse(data)
	if err != nil {
		return nil, err
	}
	c.writeCache(data)
	return plugins, nil
}

func (c *Catalog) readCache() ([]byte, bool) {
	if c.cachePath == "" {
		return nil, false
	}
	//nolint:gosec // G304: cache path comes from user configuration
	data, err := os.ReadFile(c.cachePath)
	if err != nil {
		return nil, false
	}
	return data, true
}

// writeCache stores a validated index. Failures only cost the offline
// fallback, so they are logged and ignored.
func (c *Catalog) writeCache(data []byte) {
	if c.cachePath == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(c.cachePath), 0o755); err != nil {
		c.logger.Debug("failed to create cache directory", "error", err)
		return
	}
	tmp := c.cachePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		c.logger.Debug("failed to write index cache", "error", err)
		return
	}
	if err := os.Rename(tmp, c.cachePath); err != nil {
		c.logger.Debug("failed to replace index cache", "error", err)
		_ = os.Remove(tmp)
	}
}

// Parse decodes an index document. Entries repeating an earlier name are
// dropped.
func (c *Catalog) Parse(data []byte) ([]entities.AvailablePlugin, error) {
	if c.validate {
		if err := validateIndex(data); err != nil {
			return nil, err
		}
	}

	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode plugin index: %w", err)
	}

	seen := make(map[string]bool, len(entries))
	plugins := make([]entities.AvailablePlugin, 0, len(entries))
	for _, e := range entries {
		a := e.toAvailable()
		if a.Name == "" {
			c.logger.Warn("skipping catalog entry without a name", "url", a.ArchiveURL)
			continue
		}
		if seen[a.Name] {
			c.logger.Warn("duplicate catalog entry ignored", "plugin", a.Name, "version", a.Version)
			continue
		}
		seen[a.Name] = true
		plugins = append(plugins, a)
	}
	return plugins, nil
}

func (c *Catalog) read(ctx context.Context) ([]byte, error) {
	switch {
	case strings.HasPrefix(c.source, "http://"), strings.HasPrefix(c.source, "https://"):
		if c.fetcher == nil {
			return nil, fmt.Errorf("no HTTP client configured for %s", c.source)
		}
		return c.fetcher.Fetch(ctx, c.source)
	default:
		path := strings.TrimPrefix(c.source, "file://")
		//nolint:gosec // G304: catalog path comes from user configuration
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read plugin index: %w", err)
		}
		return data, nil
	}
}

func validateIndex(data []byte) error {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource("schema.json", bytes.NewReader(indexSchema)); err != nil {
		return fmt.Errorf("failed to add index schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("failed to compile index schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("plugin index is not valid JSON: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			return formatSchemaValidationError(validationErr)
		}
		return fmt.Errorf("plugin index validation failed: %w", err)
	}
	return nil
}

// formatSchemaValidationError flattens a validation error tree into one line
// per violation.
func formatSchemaValidationError(err *jsonschema.ValidationError) error {
	var messages []string

	var collect func(*jsonschema.ValidationError)
	collect = func(e *jsonschema.ValidationError) {
		if e.Message != "" && len(e.Causes) == 0 {
			location := e.InstanceLocation
			if location == "" {
				location = "(root)"
			}
			messages = append(messages, fmt.Sprintf("%s: %s", location, e.Message))
		}
		for _, cause := range e.Causes {
			collect(cause)
		}
	}
	collect(err)

	if len(messages) == 0 {
		return fmt.Errorf("plugin index validation failed")
	}
	return fmt.Errorf("plugin index validation failed:\n    - %s", strings.Join(messages, "\n    - "))
}
