// Package entities contains the plug-in record and its two facets.
package entities

import (
	"context"
	"path/filepath"
)

// IconNames lists the icon file names probed inside an installation
// directory, in order of preference.
var IconNames = [...]string{"icon@2x.png", "icon@2x.jpg", "icon.png", "icon.jpg"}

// Kind tells which facets a Plugin holds.
type Kind int

const (
	// InstalledOnly is a plug-in found on disk that the catalog does not list.
	InstalledOnly Kind = iota + 1
	// AvailableOnly is a catalog entry that is not installed.
	AvailableOnly
	// Both is an installed plug-in that the catalog also lists.
	Both
)

func (k Kind) String() string {
	switch k {
	case InstalledOnly:
		return "installed"
	case AvailableOnly:
		return "available"
	case Both:
		return "installed+available"
	default:
		return "invalid"
	}
}

// PluginDownloader materializes a catalog entry on disk.
type PluginDownloader interface {
	Download(ctx context.Context, available AvailablePlugin) (InstalledPlugin, error)
}

// ByteFetcher retrieves the body behind a URL.
type ByteFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// IconReader is the read side of the file system used for icon lookup.
type IconReader interface {
	Exists(path string) bool
	ReadFile(path string) ([]byte, error)
}

// DirectoryRemover deletes a directory tree.
type DirectoryRemover interface {
	RemoveAll(path string) error
}

// Plugin is one logical plug-in seen through up to two facets: the copy
// installed on disk and the entry in the remote catalog.
//
// Invariants:
//   - At least one facet is present. The constructors enforce this; only the
//     zero value breaks it, and Name panics on such a value.
//   - When both facets are present they are assumed to describe the same
//     plug-in. Their names are not compared.
//
// A Plugin is not safe for concurrent use.
type Plugin struct {
	installed *InstalledPlugin
	available *AvailablePlugin
}

// NewInstalledOnly creates a plug-in that exists only on disk.
func NewInstalledOnly(installed InstalledPlugin) *Plugin {
	return &Plugin{installed: &installed}
}

// NewAvailableOnly creates a plug-in that exists only in the catalog.
func NewAvailableOnly(available AvailablePlugin) *Plugin {
	return &Plugin{available: &available}
}

// NewBoth creates a plug-in that is installed and listed in the catalog.
func NewBoth(installed InstalledPlugin, available AvailablePlugin) *Plugin {
	return &Plugin{installed: &installed, available: &available}
}

// NewPlugin creates a plug-in from optional facets.
// Returns ErrNoFacet if both are nil.
func NewPlugin(installed *InstalledPlugin, available *AvailablePlugin) (*Plugin, error) {
	if installed == nil && available == nil {
		return nil, ErrNoFacet
	}
	p := &Plugin{}
	if installed != nil {
		i := *installed
		p.installed = &i
	}
	if available != nil {
		a := *available
		p.available = &a
	}
	return p, nil
}

// Kind returns which facets the plug-in currently holds.
func (p *Plugin) Kind() Kind {
	switch {
	case p.installed != nil && p.available != nil:
		return Both
	case p.installed != nil:
		return InstalledOnly
	case p.available != nil:
		return AvailableOnly
	default:
		return 0
	}
}

// IsInstalled reports whether the installed facet is present.
func (p *Plugin) IsInstalled() bool {
	return p.installed != nil
}

// IsAvailable reports whether the catalog facet is present.
func (p *Plugin) IsAvailable() bool {
	return p.available != nil
}

// Name returns the installed name if installed, otherwise the catalog name.
// It panics on a Plugin with neither facet, which the constructors never
// produce.
func (p *Plugin) Name() string {
	switch {
	case p.installed != nil:
		return p.installed.Name
	case p.available != nil:
		return p.available.Name
	default:
		panic("plugin record has neither an installed nor an available facet")
	}
}

// Installed returns a copy of the installed facet, if present.
func (p *Plugin) Installed() (InstalledPlugin, bool) {
	if p.installed == nil {
		return InstalledPlugin{}, false
	}
	return *p.installed, true
}

// Available returns a copy of the catalog facet, if present.
func (p *Plugin) Available() (AvailablePlugin, bool) {
	if p.available == nil {
		return AvailablePlugin{}, false
	}
	return *p.available, true
}

// Path returns the installation directory, if installed.
func (p *Plugin) Path() (string, bool) {
	if p.installed == nil {
		return "", false
	}
	return p.installed.Path(), true
}

// Homepage returns the catalog homepage, if available.
func (p *Plugin) Homepage() (string, bool) {
	if p.available == nil {
		return "", false
	}
	return p.available.Homepage, true
}

// ShortDescription returns the catalog short description, if available.
func (p *Plugin) ShortDescription() (string, bool) {
	if p.available == nil {
		return "", false
	}
	return p.available.ShortDescription, true
}

// Description returns the catalog description, if available.
func (p *Plugin) Description() (string, bool) {
	if p.available == nil {
		return "", false
	}
	return p.available.Description, true
}

// Versions returns the installed and catalog version strings. A nil
// pointer means that facet is absent. No ordering between the two is
// implied.
func (p *Plugin) Versions() (installed, available *string) {
	if p.installed != nil {
		v := p.installed.Version
		installed = &v
	}
	if p.available != nil {
		v := p.available.Version
		available = &v
	}
	return installed, available
}

// RetrieveIcon looks for the plug-in's icon: first the icon files in the
// installation directory, then the catalog icon URL. It never fails; the
// boolean is false when no source produced data.
func (p *Plugin) RetrieveIcon(ctx context.Context, files IconReader, fetcher ByteFetcher) ([]byte, bool) {
	if p.installed != nil {
		dir := p.installed.Path()
		for _, name := range IconNames {
			path := filepath.Join(dir, name)
			if !files.Exists(path) {
				continue
			}
			data, err := files.ReadFile(path)
			if err != nil {
				return nil, false
			}
			return data, true
		}
	}

	if p.available == nil || !p.available.HasIcon() || fetcher == nil {
		return nil, false
	}
	data, err := fetcher.Fetch(ctx, p.available.IconURL)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Download installs the catalog entry and stores the result as the
// installed facet, replacing any previous one. It always downloads, even
// if the plug-in is already installed. On error the installed facet is
// left as it was.
func (p *Plugin) Download(ctx context.Context, d PluginDownloader) error {
	if p.available == nil {
		return ErrNotAvailable
	}
	installed, err := d.Download(ctx, *p.available)
	if err != nil {
		return err
	}
	p.installed = &installed
	return nil
}

// Remove deletes the installation directory and drops the installed
// facet. If deletion fails the facet is kept, since the state on disk is
// unknown.
func (p *Plugin) Remove(fs DirectoryRemover) error {
	if p.installed == nil {
		return ErrNotInstalled
	}
	if err := fs.RemoveAll(p.installed.Path()); err != nil {
		return err
	}
	p.installed = nil
	return nil
}
