package cmd

import (
	"github.com/charmbracelet/lipgloss"

	"mapmyfirm/internal/adapters/tui/styles"
)

// Output styles follow the TUI theme
var (
	styleTitle   = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	styleMuted   = lipgloss.NewStyle().Foreground(styles.Muted)
	styleOK      = lipgloss.NewStyle().Foreground(styles.Secondary)
	styleMissing = lipgloss.NewStyle().Foreground(styles.Error)
	styleError   = lipgloss.NewStyle().Foreground(styles.Error).Bold(true)
	styleHub     = styles.NodeHub
	styleDraft   = styles.NodeUnpublished
)

func mark(ok bool) string {
	if ok {
		return styleOK.Render("✓")
	}
	return styleMissing.Render("✗")
}
