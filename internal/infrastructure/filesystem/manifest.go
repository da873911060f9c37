package filesystem

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/espm-dev/espm/internal/domain/values"
	"github.com/goccy/go-yaml"
)

// ManifestFile is written into every directory the installer creates.
const ManifestFile = ".espm.yaml"

// UnknownVersion is reported for plug-ins without a manifest.
const UnknownVersion = "unknown"

// Manifest records where an installation came from.
type Manifest struct {
	Name        string           `yaml:"name"`
	Version     string           `yaml:"version"`
	InstallID   values.InstallID `yaml:"install_id"`
	InstalledAt time.Time        `yaml:"installed_at"`
	Source      string           `yaml:"source"`
}

// ReadManifest loads the manifest of the plug-in directory dir.
// It returns os.ErrNotExist (wrapped) when there is none.
func ReadManifest(dir string) (*Manifest, error) {
	//nolint:gosec // G304: dir is a plug-in directory under the configured root
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ManifestFile, err)
	}
	return &m, nil
}

// WriteManifest writes m into dir.
func WriteManifest(dir string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), data, 0o600); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

func isNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
