// Package installer downloads catalog archives and unpacks them into the
// plug-in directory.
package installer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/espm-dev/espm/internal/domain/entities"
	"github.com/espm-dev/espm/internal/domain/values"
	"github.com/espm-dev/espm/internal/infrastructure/filesystem"
)

// ArchiveFetcher streams the body behind a URL.
type ArchiveFetcher interface {
	Download(ctx context.Context, url string, w io.Writer) (int64, error)
}

// ZipInstaller implements ports.PluginDownloader for zip archives.
//
// Installation is staged in a sibling directory and swapped in with renames,
// so a failed install leaves an existing installation as it was.
type ZipInstaller struct {
	root    string
	fetcher ArchiveFetcher
	logger  *slog.Logger
	now     func() time.Time
}

// NewZipInstaller creates an installer writing below root.
func NewZipInstaller(root string, fetcher ArchiveFetcher, logger *slog.Logger) *ZipInstaller {
	if logger == nil {
		logger = slog.Default()
	}
	return &ZipInstaller{
		root:    root,
		fetcher: fetcher,
		logger:  logger,
		now:     time.Now,
	}
}

// Download fetches the archive of available and installs it as
// <root>/<name>, replacing any previous installation.
func (i *ZipInstaller) Download(ctx context.Context, available entities.AvailablePlugin) (entities.InstalledPlugin, error) {
	name, err := values.NewPluginName(available.Name)
	if err != nil {
		return entities.InstalledPlugin{}, err
	}
	if available.ArchiveURL == "" {
		return entities.InstalledPlugin{}, fmt.Errorf("plugin %s has no download url", name)
	}

	if err := os.MkdirAll(i.root, 0o755); err != nil {
		return entities.InstalledPlugin{}, fmt.Errorf("failed to create plugin directory: %w", err)
	}

	archive, err := i.fetch(ctx, available.ArchiveURL)
	if err != nil {
		return entities.InstalledPlugin{}, err
	}
	defer func() { _ = os.Remove(archive) }()

	staging, err := os.MkdirTemp(i.root, filesystem.StagingPrefix+name.String()+"-")
	if err != nil {
		return entities.InstalledPlugin{}, fmt.Errorf("failed to create staging directory: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = os.RemoveAll(staging)
		}
	}()

	if err := extractZip(archive, staging); err != nil {
		return entities.InstalledPlugin{}, fmt.Errorf("failed to unpack %s: %w", name, err)
	}

	manifest := &filesystem.Manifest{
		Name:        name.String(),
		Version:     available.Version,
		InstallID:   values.NewInstallID(),
		InstalledAt: i.now().UTC(),
		Source:      available.ArchiveURL,
	}
	if err := filesystem.WriteManifest(staging, manifest); err != nil {
		return entities.InstalledPlugin{}, err
	}

	installed := entities.NewInstalledPlugin(i.root, name.String(), available.Version)
	if err := swap(staging, installed.Path()); err != nil {
		return entities.InstalledPlugin{}, err
	}
	committed = true

	i.logger.Debug("plugin unpacked",
		"plugin", name.String(),
		"path", installed.Path(),
		"install_id", manifest.InstallID.String())
	return installed, nil
}

// fetch downloads url into a temporary file under the plug-in root and
// returns its path.
func (i *ZipInstaller) fetch(ctx context.Context, url string) (string, error) {
	tmp, err := os.CreateTemp(i.root, filesystem.StagingPrefix+"download-*.zip")
	if err != nil {
		return "", fmt.Errorf("failed to create download file: %w", err)
	}

	n, err := i.fetcher.Download(ctx, url, tmp)
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to download %s: %w", url, err)
	}

	i.logger.Debug("archive downloaded", "url", url, "bytes", n)
	return tmp.Name(), nil
}

// swap moves staging to dest. An existing dest is moved aside first and
// restored if the final rename fails.
func swap(staging, dest string) error {
	if _, err := os.Lstat(dest); os.IsNotExist(err) {
		if err := os.Rename(staging, dest); err != nil {
			return fmt.Errorf("failed to install into %s: %w", dest, err)
		}
		return nil
	}

	backup := staging + ".old"
	if err := os.Rename(dest, backup); err != nil {
		return fmt.Errorf("failed to move previous installation aside: %w", err)
	}
	if err := os.Rename(staging, dest); err != nil {
		_ = os.Rename(backup, dest)
		return fmt.Errorf("failed to install into %s: %w", dest, err)
	}
	// A leftover backup carries the staging prefix, so the scanner skips it.
	_ = os.RemoveAll(backup)
	return nil
}
