// Package prompt asks the user for confirmation on the terminal.
package prompt

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
)

// TerminalPrompter provides interactive terminal prompting for destructive
// plug-in operations.
type TerminalPrompter struct{}

// NewTerminalPrompter creates a new TerminalPrompter.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{}
}

// IsInteractive checks if we're running in an interactive terminal.
func (p *TerminalPrompter) IsInteractive() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	// Character device means a terminal, not a pipe or file
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// ConfirmRemoval asks whether the plug-in folder at path may be deleted.
func (p *TerminalPrompter) ConfirmRemoval(name, path string) (bool, error) {
	var confirmed bool
	err := huh.NewConfirm().
		Title(fmt.Sprintf("Remove %s?", name)).
		Description(DescribeRemoval(path)).
		Affirmative("Remove").
		Negative("Cancel").
		Value(&confirmed).
		Run()
	if err != nil {
		return false, err
	}
	return confirmed, nil
}

// DescribeRemoval returns the warning shown before a removal.
func DescribeRemoval(path string) string {
	return fmt.Sprintf("This deletes %s and everything in it.", path)
}

// NonInteractiveError explains how to remove plug-ins without a terminal.
func NonInteractiveError(names []string) error {
	return fmt.Errorf("refusing to remove %v without confirmation (not running in a terminal); pass --yes to confirm", names)
}
