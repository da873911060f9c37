package entities

// AvailablePlugin is the catalog facet of a plug-in: metadata describing a
// package that can be downloaded and installed.
type AvailablePlugin struct {
	Name             string
	Version          string
	Homepage         string
	ShortDescription string
	Description      string
	IconURL          string // empty when the catalog has no icon
	ArchiveURL       string
	Authors          string
	License          string
}

// HasIcon reports whether the catalog entry points at a remote icon.
func (p AvailablePlugin) HasIcon() bool {
	return p.IconURL != ""
}
