// Package filesystem implements the plug-in directory on the local disk.
package filesystem

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/espm-dev/espm/internal/domain/entities"
)

// StagingPrefix marks directories the installer is still writing.
const StagingPrefix = ".espm-"

// Scanner implements ports.InstalledPluginSource for one plug-in directory.
type Scanner struct {
	root   string
	logger *slog.Logger
}

// NewScanner creates a scanner for root.
func NewScanner(root string, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{root: root, logger: logger}
}

// Root returns the scanned directory.
func (s *Scanner) Root() string {
	return s.root
}

// ListInstalled returns one entry per plug-in directory, sorted by name.
func (s *Scanner) ListInstalled(ctx context.Context) ([]entities.InstalledPlugin, error) {
	dirEntries, err := os.ReadDir(s.root)
	if err != nil {
		if isNotExist(err) {
			s.logger.Debug("plugin directory does not exist", "path", s.root)
			return []entities.InstalledPlugin{}, nil
		}
		return nil, err
	}

	plugins := make([]entities.InstalledPlugin, 0, len(dirEntries))
	for _, de := range dirEntries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !isPluginDir(s.root, de) {
			continue
		}

		name := de.Name()
		version := UnknownVersion
		m, err := ReadManifest(filepath.Join(s.root, name))
		switch {
		case err == nil:
			if m.Version != "" {
				version = m.Version
			}
		case isNotExist(err):
		default:
			s.logger.Warn("ignoring unreadable manifest", "plugin", name, "error", err)
		}

		plugins = append(plugins, entities.NewInstalledPlugin(s.root, name, version))
	}

	sort.Slice(plugins, func(i, j int) bool {
		return plugins[i].Name < plugins[j].Name
	})
	return plugins, nil
}

// isPluginDir accepts directories and symlinks to directories, skipping
// hidden and staging entries.
func isPluginDir(root string, de os.DirEntry) bool {
	name := de.Name()
	if strings.HasPrefix(name, ".") {
		return false
	}
	if de.IsDir() {
		return true
	}
	if de.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(root, name))
	return err == nil && info.IsDir()
}

// OSFileSystem implements ports.FileSystem on the local disk.
type OSFileSystem struct{}

// NewOSFileSystem creates an OSFileSystem.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// Exists reports whether path exists.
func (OSFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadFile reads the whole file at path.
func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	//nolint:gosec // G304: path is an icon candidate inside a plug-in directory
	return os.ReadFile(path)
}

// RemoveAll deletes path recursively. Removing a missing path is not an
// error.
func (OSFileSystem) RemoveAll(path string) error {
	if path == "" || path == string(filepath.Separator) {
		return fmt.Errorf("refusing to remove %q", path)
	}
	return os.RemoveAll(path)
}
