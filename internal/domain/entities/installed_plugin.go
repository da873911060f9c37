package entities

import "path/filepath"

// InstalledPlugin is the on-disk facet of a plug-in.
// Its directory is derived from Root and Name; the directory existing is
// what makes the plug-in installed.
type InstalledPlugin struct {
	Name    string
	Version string
	Root    string // plug-in installation root the directory lives under
}

// NewInstalledPlugin creates an installed facet found under root.
func NewInstalledPlugin(root, name, version string) InstalledPlugin {
	return InstalledPlugin{
		Name:    name,
		Version: version,
		Root:    root,
	}
}

// Path returns the installation directory, <root>/<name>.
func (p InstalledPlugin) Path() string {
	return filepath.Join(p.Root, p.Name)
}
