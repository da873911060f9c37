// Package services contains domain logic over sets of plug-in records.
package services

import (
	"sort"
	"strings"

	"github.com/espm-dev/espm/internal/domain/entities"
)

// MergePlugins pairs installed and catalog facets by exact name and builds
// one record per distinct name. Duplicate names within one source keep the
// first occurrence. The result is sorted by name, case-insensitively.
func MergePlugins(installed []entities.InstalledPlugin, available []entities.AvailablePlugin) []*entities.Plugin {
	byName := make(map[string]*entities.Plugin, len(installed)+len(available))
	order := make([]string, 0, len(installed)+len(available))

	for _, i := range installed {
		if _, seen := byName[i.Name]; seen {
			continue
		}
		byName[i.Name] = entities.NewInstalledOnly(i)
		order = append(order, i.Name)
	}

	for _, a := range available {
		existing, seen := byName[a.Name]
		if !seen {
			byName[a.Name] = entities.NewAvailableOnly(a)
			order = append(order, a.Name)
			continue
		}
		if existing.IsAvailable() {
			continue
		}
		i, _ := existing.Installed()
		byName[a.Name] = entities.NewBoth(i, a)
	}

	sort.SliceStable(order, func(x, y int) bool {
		lx, ly := strings.ToLower(order[x]), strings.ToLower(order[y])
		if lx != ly {
			return lx < ly
		}
		return order[x] < order[y]
	})

	plugins := make([]*entities.Plugin, 0, len(order))
	for _, name := range order {
		plugins = append(plugins, byName[name])
	}
	return plugins
}

// FindPlugin returns the record with the given name, or nil.
func FindPlugin(plugins []*entities.Plugin, name string) *entities.Plugin {
	for _, p := range plugins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}
