// Package services implements the application use cases.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	apperrors "github.com/espm-dev/espm/internal/application/errors"
	"github.com/espm-dev/espm/internal/application/ports"
	"github.com/espm-dev/espm/internal/domain/entities"
	"github.com/espm-dev/espm/internal/domain/services"
	"golang.org/x/sync/errgroup"
)

// PluginService orchestrates plugin management use cases.
// It assembles plug-in records from the plug-in directory and the catalog
// and runs lifecycle operations on them.
type PluginService struct {
	installed  ports.InstalledPluginSource
	catalog    ports.CatalogSource
	downloader ports.PluginDownloader
	fetcher    ports.ByteFetcher
	files      ports.FileSystem
	logger     *slog.Logger
}

// NewPluginService creates a plugin service.
func NewPluginService(
	installed ports.InstalledPluginSource,
	catalog ports.CatalogSource,
	downloader ports.PluginDownloader,
	fetcher ports.ByteFetcher,
	files ports.FileSystem,
	logger *slog.Logger,
) *PluginService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PluginService{
		installed:  installed,
		catalog:    catalog,
		downloader: downloader,
		fetcher:    fetcher,
		files:      files,
		logger:     logger,
	}
}

// snapshot is the merged view of both sources at one point in time.
type snapshot struct {
	plugins    []*entities.Plugin
	catalogErr error
}

// load scans the plug-in directory and fetches the catalog concurrently.
// A scan failure is fatal; a catalog failure is recorded on the snapshot
// so read-only use cases can continue with installed plug-ins.
func (s *PluginService) load(ctx context.Context) (*snapshot, error) {
	var (
		installed  []entities.InstalledPlugin
		available  []entities.AvailablePlugin
		catalogErr error
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		installed, err = s.installed.ListInstalled(gCtx)
		if err != nil {
			return fmt.Errorf("failed to scan plugin directory %s: %w", s.installed.Root(), err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		available, err = s.catalog.ListAvailable(gCtx)
		if err != nil {
			catalogErr = apperrors.NewCatalogError(s.catalog.Source(), err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if catalogErr != nil {
		s.logger.Warn("catalog unavailable, showing installed plugins only", "error", catalogErr)
	}
	s.logger.Debug("plugins loaded",
		"installed", len(installed),
		"available", len(available))

	return &snapshot{
		plugins:    services.MergePlugins(installed, available),
		catalogErr: catalogErr,
	}, nil
}

// ListPlugins returns all known plug-ins that pass the filter.
// A nil filter matches everything.
func (s *PluginService) ListPlugins(ctx context.Context, filter *services.PluginFilter) ([]*entities.Plugin, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if filter == nil {
		return snap.plugins, nil
	}
	return filter.Apply(snap.plugins)
}

// GetPlugin returns the plug-in with the given name.
func (s *PluginService) GetPlugin(ctx context.Context, name string) (*entities.Plugin, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return s.find(snap, name)
}

func (s *PluginService) find(snap *snapshot, name string) (*entities.Plugin, error) {
	p := services.FindPlugin(snap.plugins, name)
	if p != nil {
		return p, nil
	}
	notFound := &entities.PluginNotFoundError{Name: name}
	if snap.catalogErr != nil {
		return nil, errors.Join(notFound, snap.catalogErr)
	}
	return nil, notFound
}

// Install downloads and installs a catalog plug-in. Installed plug-ins are
// downloaded again.
func (s *PluginService) Install(ctx context.Context, name string) (*entities.Plugin, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if snap.catalogErr != nil {
		return nil, snap.catalogErr
	}
	p, err := s.find(snap, name)
	if err != nil {
		return nil, err
	}
	if err := s.install(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// InstallAll installs several plug-ins, running at most parallel downloads
// at once. Every name is resolved before the first download starts. A failed
// download does not stop the others; the installed records are returned
// together with the joined errors.
func (s *PluginService) InstallAll(ctx context.Context, names []string, parallel int) ([]*entities.Plugin, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if snap.catalogErr != nil {
		return nil, snap.catalogErr
	}

	var targets []*entities.Plugin
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		p, err := s.find(snap, name)
		if err != nil {
			return nil, err
		}
		targets = append(targets, p)
	}

	g, gCtx := errgroup.WithContext(ctx)
	if parallel > 0 {
		g.SetLimit(parallel)
	}

	errs := make([]error, len(targets))
	for i, p := range targets {
		i, p := i, p // per-iteration copies (pre-Go 1.22 loop semantics)
		g.Go(func() error {
			errs[i] = s.install(gCtx, p)
			return nil
		})
	}
	_ = g.Wait()

	installed := make([]*entities.Plugin, 0, len(targets))
	for i, p := range targets {
		if errs[i] == nil {
			installed = append(installed, p)
		}
	}
	return installed, errors.Join(errs...)
}

func (s *PluginService) install(ctx context.Context, p *entities.Plugin) error {
	name := p.Name()
	if !p.IsAvailable() {
		return apperrors.NewOperationError("install", name, entities.ErrNotAvailable)
	}

	installedVersion, availableVersion := p.Versions()
	logger := s.logger.With("plugin", name)
	if availableVersion != nil {
		logger = logger.With("version", *availableVersion)
	}
	if installedVersion != nil {
		logger.Info("reinstalling plugin", "installed_version", *installedVersion)
	} else {
		logger.Info("installing plugin")
	}

	if err := p.Download(ctx, s.downloader); err != nil {
		return apperrors.NewOperationError("install", name, err)
	}

	path, _ := p.Path()
	logger.Info("plugin installed", "path", path)
	return nil
}

// Remove deletes an installed plug-in from the plug-in directory.
func (s *PluginService) Remove(ctx context.Context, name string) (*entities.Plugin, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.find(snap, name)
	if err != nil {
		return nil, err
	}

	if path, ok := p.Path(); ok {
		s.logger.Info("removing plugin", "plugin", name, "path", path)
	}
	if err := p.Remove(s.files); err != nil {
		return nil, apperrors.NewOperationError("remove", name, err)
	}
	return p, nil
}

// Icon returns the plug-in's icon. The boolean is false when no icon could
// be found; that is not an error.
func (s *PluginService) Icon(ctx context.Context, name string) ([]byte, bool, error) {
	p, err := s.GetPlugin(ctx, name)
	if err != nil {
		return nil, false, err
	}
	data, ok := p.RetrieveIcon(ctx, s.files, s.fetcher)
	if !ok {
		s.logger.Debug("no icon found", "plugin", name)
	}
	return data, ok, nil
}

// Outdated returns installed catalog plug-ins whose version strings differ.
func (s *PluginService) Outdated(ctx context.Context) ([]*entities.Plugin, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if snap.catalogErr != nil {
		return nil, snap.catalogErr
	}
	return services.NewPluginFilter().WithOutdatedOnly().Apply(snap.plugins)
}
