// Package adapters bridges infrastructure implementations to the
// application ports.
package adapters

import (
	"context"
	"errors"

	apperrors "github.com/espm-dev/espm/internal/application/errors"

	"github.com/espm-dev/espm/internal/application/ports"
	"github.com/espm-dev/espm/internal/infrastructure/catalog"
	"github.com/espm-dev/espm/internal/infrastructure/filesystem"
	"github.com/espm-dev/espm/internal/infrastructure/httpclient"
	"github.com/espm-dev/espm/internal/infrastructure/installer"
	"github.com/espm-dev/espm/internal/infrastructure/output"
	"github.com/espm-dev/espm/internal/infrastructure/system"
)

// Compile-time interface checks
var (
	_ ports.SystemConfigProvider   = (*SystemConfigAdapter)(nil)
	_ ports.InstalledPluginSource  = (*filesystem.Scanner)(nil)
	_ ports.FileSystem             = (*filesystem.OSFileSystem)(nil)
	_ ports.CatalogSource          = (*catalog.Catalog)(nil)
	_ ports.PluginDownloader       = (*installer.ZipInstaller)(nil)
	_ ports.ByteFetcher            = (*httpclient.Client)(nil)
	_ installer.ArchiveFetcher     = (*httpclient.Client)(nil)
	_ ports.OutputFormatterFactory = (*output.FormatterFactory)(nil)
)

// SystemConfigAdapter adapts system config loader to port interface.
type SystemConfigAdapter struct {
	loader *system.ConfigLoader
}

// NewSystemConfigAdapter creates a new system config adapter.
func NewSystemConfigAdapter() *SystemConfigAdapter {
	return &SystemConfigAdapter{
		loader: system.NewConfigLoader(),
	}
}

// LoadConfig loads system configuration from path.
// An empty path means ~/.espm/config.yaml. Failures are reported as
// *apperrors.ConfigurationError.
func (a *SystemConfigAdapter) LoadConfig(_ context.Context, path string) (*system.Config, error) {
	if path == "" {
		path = system.DefaultConfigPath()
	}
	cfg, err := a.loader.Load(path)
	if err != nil {
		var fieldErr *system.FieldError
		if errors.As(err, &fieldErr) {
			return nil, apperrors.NewConfigurationError(fieldErr.Field, fieldErr.Message, nil)
		}
		return nil, apperrors.NewConfigurationError("system_config", "failed to load "+path, err)
	}
	return cfg, nil
}
