package services

import (
	"fmt"

	"github.com/espm-dev/espm/internal/domain/entities"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// PluginEnv defines the variables available during filter expression evaluation.
type PluginEnv struct {
	Name             string `expr:"name"`
	Installed        bool   `expr:"installed"`
	Available        bool   `expr:"available"`
	InstalledVersion string `expr:"installed_version"`
	AvailableVersion string `expr:"available_version"`
	Outdated         bool   `expr:"outdated"`
	Homepage         string `expr:"homepage"`
	Authors          string `expr:"authors"`
}

// NewPluginEnv builds the evaluation environment for a plug-in.
func NewPluginEnv(p *entities.Plugin) PluginEnv {
	env := PluginEnv{
		Name:      p.Name(),
		Installed: p.IsInstalled(),
		Available: p.IsAvailable(),
		Outdated:  IsOutdated(p),
	}
	installed, available := p.Versions()
	if installed != nil {
		env.InstalledVersion = *installed
	}
	if available != nil {
		env.AvailableVersion = *available
	}
	if a, ok := p.Available(); ok {
		env.Homepage = a.Homepage
		env.Authors = a.Authors
	}
	return env
}

// IsOutdated reports whether a plug-in is installed, listed in the catalog,
// and the two version strings differ. It says nothing about which is newer.
func IsOutdated(p *entities.Plugin) bool {
	installed, available := p.Versions()
	if installed == nil || available == nil {
		return false
	}
	return *installed != *available
}

// CompilePluginFilter compiles a boolean filter expression against PluginEnv.
func CompilePluginFilter(expression string) (*vm.Program, error) {
	program, err := expr.Compile(expression, expr.Env(PluginEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	return program, nil
}

// PluginFilter selects plug-ins by state and an optional expression.
type PluginFilter struct {
	installedOnly bool
	availableOnly bool
	outdatedOnly  bool
	program       *vm.Program
}

// NewPluginFilter initializes a filter that matches everything.
func NewPluginFilter() *PluginFilter {
	return &PluginFilter{}
}

// WithInstalledOnly keeps only plug-ins that are installed.
func (f *PluginFilter) WithInstalledOnly() *PluginFilter {
	f.installedOnly = true
	return f
}

// WithAvailableOnly keeps only plug-ins listed in the catalog.
func (f *PluginFilter) WithAvailableOnly() *PluginFilter {
	f.availableOnly = true
	return f
}

// WithOutdatedOnly keeps only plug-ins whose versions differ.
func (f *PluginFilter) WithOutdatedOnly() *PluginFilter {
	f.outdatedOnly = true
	return f
}

// WithFilterExpression applies a compiled Expr program for advanced filtering.
func (f *PluginFilter) WithFilterExpression(program *vm.Program) *PluginFilter {
	f.program = program
	return f
}

// Matches evaluates whether a plug-in passes the filter.
func (f *PluginFilter) Matches(p *entities.Plugin) (bool, error) {
	if f.installedOnly && !p.IsInstalled() {
		return false, nil
	}
	if f.availableOnly && !p.IsAvailable() {
		return false, nil
	}
	if f.outdatedOnly && !IsOutdated(p) {
		return false, nil
	}
	if f.program == nil {
		return true, nil
	}

	output, err := expr.Run(f.program, NewPluginEnv(p))
	if err != nil {
		return false, fmt.Errorf("filter expression error for %s: %w", p.Name(), err)
	}
	result, ok := output.(bool)
	if !ok {
		return false, fmt.Errorf("filter expression did not return boolean: %v", output)
	}
	return result, nil
}

// Apply returns the plug-ins that pass the filter, keeping their order.
func (f *PluginFilter) Apply(plugins []*entities.Plugin) ([]*entities.Plugin, error) {
	out := make([]*entities.Plugin, 0, len(plugins))
	for _, p := range plugins {
		ok, err := f.Matches(p)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, p)
		}
	}
	return out, nil
}
