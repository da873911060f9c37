package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAvailable is returned when an operation needs the catalog facet
	// and the plug-in has none.
	ErrNotAvailable = errors.New("not an available plugin")

	// ErrNotInstalled is returned when an operation needs the installed facet
	// and the plug-in has none.
	ErrNotInstalled = errors.New("not an installed plugin")

	// ErrNoFacet is returned when constructing a plug-in from neither facet.
	ErrNoFacet = errors.New("plugin needs an installed or an available facet")
)

// PluginNotFoundError indicates neither the catalog nor the plug-in
// directory knows a plug-in of that name.
type PluginNotFoundError struct {
	Name string
}

func (e *PluginNotFoundError) Error() string {
	return fmt.Sprintf("plugin not found: %s", e.Name)
}
