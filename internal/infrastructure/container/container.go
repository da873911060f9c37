// Package container provides dependency injection for the application.
package container

import (
	"context"
	"log/slog"
	"time"

	"github.com/espm-dev/espm/internal/application/ports"
	"github.com/espm-dev/espm/internal/application/services"
	"github.com/espm-dev/espm/internal/infrastructure/adapters"
	"github.com/espm-dev/espm/internal/infrastructure/catalog"
	"github.com/espm-dev/espm/internal/infrastructure/filesystem"
	"github.com/espm-dev/espm/internal/infrastructure/httpclient"
	"github.com/espm-dev/espm/internal/infrastructure/installer"
	"github.com/espm-dev/espm/internal/infrastructure/output"
	"github.com/espm-dev/espm/internal/infrastructure/system"
	"github.com/espm-dev/espm/internal/version"
)

// Container holds all application dependencies.
type Container struct {
	pluginService    *services.PluginService
	formatterFactory ports.OutputFormatterFactory
	systemCfg        *system.Config
	logger           *slog.Logger
}

// Options configure the container.
// Non-empty fields override the system config file.
type Options struct {
	Logger           *slog.Logger
	SystemConfigPath string
	PluginDir        string
	CatalogURL       string

	// HTTPTimeout bounds index and icon requests. Archive downloads are
	// bounded by the command context instead.
	HTTPTimeout time.Duration
}

// New creates a new dependency injection container.
func New(ctx context.Context, opts Options) (*Container, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	systemCfg, err := adapters.NewSystemConfigAdapter().LoadConfig(ctx, opts.SystemConfigPath)
	if err != nil {
		return nil, err
	}

	// Command-line flags take precedence over the config file
	if opts.PluginDir != "" {
		systemCfg.PluginDir = system.ExpandHome(opts.PluginDir)
	}
	if opts.CatalogURL != "" {
		systemCfg.Catalog.URL = opts.CatalogURL
	}
	if opts.HTTPTimeout > 0 {
		systemCfg.HTTP.Timeout = opts.HTTPTimeout
	}

	userAgent := systemCfg.HTTP.UserAgent
	if userAgent == "espm" {
		userAgent = "espm/" + version.Get().String()
	}
	client := httpclient.New(
		httpclient.WithTimeout(systemCfg.HTTP.Timeout),
		httpclient.WithUserAgent(userAgent),
		httpclient.WithRetries(systemCfg.HTTP.Retries),
	)

	catalogOpts := []catalog.Option{
		catalog.WithLogger(opts.Logger),
		catalog.WithCache(systemCfg.Catalog.CachePath),
	}
	if !systemCfg.Catalog.ShouldValidate() {
		catalogOpts = append(catalogOpts, catalog.WithoutValidation())
	}

	pluginService := services.NewPluginService(
		filesystem.NewScanner(systemCfg.PluginDir, opts.Logger),
		catalog.New(systemCfg.Catalog.URL, client, catalogOpts...),
		installer.NewZipInstaller(systemCfg.PluginDir, client, opts.Logger),
		client,
		filesystem.NewOSFileSystem(),
		opts.Logger,
	)

	opts.Logger.Debug("container initialized",
		"plugin_dir", systemCfg.PluginDir,
		"catalog", systemCfg.Catalog.URL)

	return &Container{
		pluginService:    pluginService,
		formatterFactory: output.NewFormatterFactory(),
		systemCfg:        systemCfg,
		logger:           opts.Logger,
	}, nil
}

// PluginService returns the plugin management use cases.
func (c *Container) PluginService() *services.PluginService {
	return c.pluginService
}

// FormatterFactory returns the output formatter factory.
func (c *Container) FormatterFactory() ports.OutputFormatterFactory {
	return c.formatterFactory
}

// SystemConfig returns the system configuration.
func (c *Container) SystemConfig() *system.Config {
	return c.systemCfg
}

// Logger returns the configured logger.
func (c *Container) Logger() *slog.Logger {
	return c.logger
}
