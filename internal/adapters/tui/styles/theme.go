package styles

import (
	"github.com/charmbracelet/lipgloss"

	"mapmyfirm/internal/domain"
)

// Palette
var (
	Primary   = lipgloss.Color("#2563EB")
	Secondary = lipgloss.Color("#10B981")
	Muted     = lipgloss.Color("#6B7280")
	Warning   = lipgloss.Color("#F59E0B")
	Error     = lipgloss.Color("#EF4444")
	Hub       = lipgloss.Color("#8B5CF6")
	Practice  = lipgloss.Color("#0EA5E9")

	white = lipgloss.Color("#FFFFFF")
	black = lipgloss.Color("#000000")
)

// Layout
var (
	App      = lipgloss.NewStyle().Padding(1, 2)
	Title    = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Subtitle = lipgloss.NewStyle().Foreground(Muted).Italic(true)

	MutedText = lipgloss.NewStyle().Foreground(Muted)
	Success   = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	ErrorMsg  = lipgloss.NewStyle().Foreground(Error).Bold(true)

	HelpKey       = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	HelpDesc      = lipgloss.NewStyle().Foreground(Muted)
	HelpSeparator = lipgloss.NewStyle().Foreground(Muted).SetString(" • ")
)

// Site tree
var (
	NodePage        = lipgloss.NewStyle()
	NodeHub         = lipgloss.NewStyle().Foreground(Hub).Bold(true)
	NodeUnpublished = lipgloss.NewStyle().Foreground(Muted).Italic(true)
	NodeSelected    = lipgloss.NewStyle().Background(Primary).Foreground(white).Bold(true)
	NodeType        = lipgloss.NewStyle().Foreground(Muted)
	SearchMatch     = lipgloss.NewStyle().Background(Warning).Foreground(black)

	TreeBranch    = lipgloss.NewStyle().Foreground(Muted)
	TreeExpanded  = "▼ "
	TreeCollapsed = "▶ "
	TreeLeaf      = "  "
)

// Checklist grid
var (
	ColumnHeader  = lipgloss.NewStyle().Foreground(Muted).Bold(true)
	CellPresent   = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	CellOptimized = lipgloss.NewStyle().Foreground(Warning).Bold(true)
	CellMissing   = lipgloss.NewStyle().Foreground(Error)
	CellSelected  = lipgloss.NewStyle().Background(Primary).Foreground(white)
)

// Forms
var (
	InputLabel = lipgloss.NewStyle().Foreground(Secondary).Bold(true)

	InputField = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Muted).
			Padding(0, 1)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)
)

// TagStyle returns the badge style for a manual tag
func TagStyle(tag string) lipgloss.Style {
	switch tag {
	case domain.TagLocationHub:
		return lipgloss.NewStyle().Foreground(Hub)
	case domain.TagPracticePage:
		return lipgloss.NewStyle().Foreground(Practice)
	default:
		return MutedText
	}
}
