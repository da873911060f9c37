// Package output renders plug-in views for the terminal.
package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/espm-dev/espm/internal/application/dto"
)

const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

// TableFormatter formats plug-ins as a human-readable table.
type TableFormatter struct {
	writer      io.Writer
	EnableColor bool
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// colorize returns the string wrapped in ANSI color codes if enabled.
func (f *TableFormatter) colorize(text, code string) string {
	if !f.EnableColor {
		return text
	}
	return code + text + colorReset
}

// FormatList writes one row per plug-in.
//
//nolint:errcheck // Table formatting errors are non-critical (best-effort terminal output)
func (f *TableFormatter) FormatList(views []dto.PluginView) error {
	if len(views) == 0 {
		fmt.Fprintln(f.writer, "No plugins found.")
		return nil
	}

	tw := tabwriter.NewWriter(f.writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSTATE\tINSTALLED\tAVAILABLE\tDESCRIPTION")
	for _, v := range views {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			v.Name,
			f.state(v),
			orDash(v.InstalledVersion),
			orDash(v.AvailableVersion),
			truncate(v.ShortDescription, 50))
	}
	return tw.Flush()
}

// FormatDetail writes all known fields of one plug-in.
//
//nolint:errcheck // Table formatting errors are non-critical (best-effort terminal output)
func (f *TableFormatter) FormatDetail(v dto.PluginView) error {
	fmt.Fprintln(f.writer, f.colorize(v.Name, colorBold))
	fmt.Fprintln(f.writer, f.colorize(strings.Repeat("─", 60), colorGray))

	tw := tabwriter.NewWriter(f.writer, 0, 0, 2, ' ', 0)
	row := func(label, value string) {
		if value != "" {
			fmt.Fprintf(tw, "%s:\t%s\n", label, value)
		}
	}
	row("State", f.state(v))
	row("Installed version", v.InstalledVersion)
	row("Available version", v.AvailableVersion)
	row("Path", v.Path)
	row("Homepage", v.Homepage)
	row("Authors", v.Authors)
	row("License", v.License)
	row("Summary", v.ShortDescription)
	if err := tw.Flush(); err != nil {
		return err
	}

	if v.Description != "" {
		fmt.Fprintln(f.writer)
		fmt.Fprintln(f.writer, v.Description)
	}
	return nil
}

func (f *TableFormatter) state(v dto.PluginView) string {
	switch {
	case v.Outdated:
		return f.colorize("outdated", colorYellow)
	case v.InstalledVersion != "":
		return f.colorize(v.State, colorGreen)
	default:
		return f.colorize(v.State, colorBlue)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
