package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"mapmyfirm/internal/adapters/tui/styles"
	"mapmyfirm/internal/domain"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view. Closing returns to the
// view that opened it.
type HelpModel struct {
	ViewState
	back tea.Msg
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{back: SwitchToProjectsMsg{}}
}

// SetReturn sets the message sent when help closes
func (m *HelpModel) SetReturn(msg tea.Msg) {
	m.back = msg
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, send(m.back)
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("mapmyfirm Help"))
	b.WriteString("\n\n")
	b.WriteString(styles.Subtitle.Render("Location hubs and practice area coverage for law firm sites"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Site tree"))
	b.WriteString("\n")
	b.WriteString(helpLine("j / k / ↑ / ↓", "Move up/down"))
	b.WriteString(helpLine("h / ←", "Collapse / go to parent"))
	b.WriteString(helpLine("l / → / Enter", "Expand"))
	b.WriteString(helpLine("/", "Search titles, slugs and URLs"))
	b.WriteString(helpLine("n", "Next match"))
	b.WriteString(helpLine("t / p / x", "Toggle Location Hub / Practice Page / Ignore tag"))
	b.WriteString(helpLine("m", "Enter GBP locations and match them to hubs"))
	b.WriteString(helpLine("s", "Rescan the site"))
	b.WriteString(helpLine("y", "Copy the project export to the clipboard"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Checklist"))
	b.WriteString("\n")
	b.WriteString(helpLine("h / l", "Move between columns"))
	b.WriteString(helpLine("space", "Toggle optimized (or done on the Done column)"))
	b.WriteString(helpLine("x", "Toggle done"))
	b.WriteString(helpLine("e", "Edit notes"))
	b.WriteString(helpLine("g", "Generate from matched locations"))
	b.WriteString(helpLine("a", "Add a location row"))
	b.WriteString(helpLine("w", "Write the checklist as CSV"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("tab", "Switch between tree and checklist"))
	b.WriteString(helpLine("esc", "Back"))
	b.WriteString(helpLine("?", "Toggle help"))
	b.WriteString(helpLine("q / Ctrl+C", "Quit"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Practice areas"))
	b.WriteString("\n")
	for _, a := range domain.PracticeAreas {
		b.WriteString(styles.MutedText.Render("  " + padRight(areaColumnLabels[a], 6) + a.DisplayName()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(RenderHelpLine(HelpKeys.Close))

	return styles.App.Render(b.String())
}

func helpLine(keys, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(keys, 16)) + styles.HelpDesc.Render(desc) + "\n"
}
