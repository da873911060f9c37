// Package ports defines interfaces for infrastructure dependencies.
// These are the "ports" in hexagonal architecture - abstractions that
// the application layer depends on but doesn't implement.
package ports

import (
	"context"
	"io"

	"github.com/espm-dev/espm/internal/application/dto"
	"github.com/espm-dev/espm/internal/domain/entities"
	"github.com/espm-dev/espm/internal/infrastructure/system"
)

// InstalledPluginSource lists the plug-ins present in the plug-in directory.
type InstalledPluginSource interface {
	// ListInstalled returns one entry per plug-in directory.
	// A missing plug-in directory yields an empty list.
	ListInstalled(ctx context.Context) ([]entities.InstalledPlugin, error)

	// Root returns the plug-in directory being scanned.
	Root() string
}

// CatalogSource provides the catalog of downloadable plug-ins.
type CatalogSource interface {
	ListAvailable(ctx context.Context) ([]entities.AvailablePlugin, error)

	// Source describes where the catalog is read from, for messages.
	Source() string
}

// PluginDownloader downloads and unpacks a catalog entry into the plug-in
// directory.
type PluginDownloader = entities.PluginDownloader

// ByteFetcher retrieves raw bytes from a URL.
type ByteFetcher = entities.ByteFetcher

// FileSystem is the subset of file operations the plug-in lifecycle needs.
type FileSystem interface {
	entities.IconReader
	entities.DirectoryRemover
}

// SystemConfigProvider loads system configuration.
type SystemConfigProvider interface {
	LoadConfig(ctx context.Context, path string) (*system.Config, error)
}

// FormatterOptions configures output formatting.
type FormatterOptions struct {
	Indent bool
	Color  bool
}

// OutputFormatter renders plug-in views.
type OutputFormatter interface {
	FormatList(views []dto.PluginView) error
	FormatDetail(view dto.PluginView) error
}

// OutputFormatterFactory creates formatters by name.
type OutputFormatterFactory interface {
	Create(format string, writer io.Writer, options FormatterOptions) (OutputFormatter, error)
	SupportedFormats() []string
}
