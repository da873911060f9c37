// Package dto holds data transfer objects passed between the application
// layer and its adapters.
package dto

import (
	"github.com/espm-dev/espm/internal/domain/entities"
	"github.com/espm-dev/espm/internal/domain/services"
)

// PluginView is the presentation shape of a plug-in record.
// Optional fields are empty when the facet providing them is absent.
type PluginView struct {
	Name             string `json:"name" yaml:"name"`
	State            string `json:"state" yaml:"state"`
	InstalledVersion string `json:"installed_version,omitempty" yaml:"installed_version,omitempty"`
	AvailableVersion string `json:"available_version,omitempty" yaml:"available_version,omitempty"`
	Outdated         bool   `json:"outdated" yaml:"outdated"`
	Path             string `json:"path,omitempty" yaml:"path,omitempty"`
	Homepage         string `json:"homepage,omitempty" yaml:"homepage,omitempty"`
	ShortDescription string `json:"short_description,omitempty" yaml:"short_description,omitempty"`
	Description      string `json:"description,omitempty" yaml:"description,omitempty"`
	Authors          string `json:"authors,omitempty" yaml:"authors,omitempty"`
	License          string `json:"license,omitempty" yaml:"license,omitempty"`
	IconURL          string `json:"icon_url,omitempty" yaml:"icon_url,omitempty"`
}

// NewPluginView converts a plug-in record for rendering.
func NewPluginView(p *entities.Plugin) PluginView {
	view := PluginView{
		Name:     p.Name(),
		State:    p.Kind().String(),
		Outdated: services.IsOutdated(p),
	}

	installed, available := p.Versions()
	if installed != nil {
		view.InstalledVersion = *installed
	}
	if available != nil {
		view.AvailableVersion = *available
	}
	if path, ok := p.Path(); ok {
		view.Path = path
	}
	if homepage, ok := p.Homepage(); ok {
		view.Homepage = homepage
	}
	if short, ok := p.ShortDescription(); ok {
		view.ShortDescription = short
	}
	if desc, ok := p.Description(); ok {
		view.Description = desc
	}
	if a, ok := p.Available(); ok {
		view.Authors = a.Authors
		view.License = a.License
		view.IconURL = a.IconURL
	}
	return view
}

// NewPluginViews converts a list of records.
func NewPluginViews(plugins []*entities.Plugin) []PluginView {
	views := make([]PluginView, 0, len(plugins))
	for _, p := range plugins {
		views = append(views, NewPluginView(p))
	}
	return views
}
