package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"mapmyfirm/internal/adapters/tui/styles"
)

// ConfirmKeyMap defines key bindings for confirmation prompts
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultConfirmKeys returns the default confirmation key bindings
var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// ConfirmationModel holds a pending destructive action until the user
// answers y or n. An empty TargetID means nothing is pending.
type ConfirmationModel struct {
	TargetID    string
	TargetLabel string
	Keys        ConfirmKeyMap
}

// NewConfirmationModel creates a new confirmation model with default keys
func NewConfirmationModel() ConfirmationModel {
	return ConfirmationModel{
		Keys: DefaultConfirmKeys,
	}
}

// SetTarget arms the prompt for one item
func (m *ConfirmationModel) SetTarget(id, label string) {
	m.TargetID = id
	m.TargetLabel = label
}

// Active reports whether a prompt is pending
func (m *ConfirmationModel) Active() bool {
	return m.TargetID != ""
}

// Clear disarms the prompt
func (m *ConfirmationModel) Clear() {
	m.TargetID = ""
	m.TargetLabel = ""
}

// HandleKeyMsg processes key messages while a prompt is pending.
// Returns (handled, cmd) where handled is true if the key was processed.
// Either answer disarms the prompt; other keys are swallowed.
func (m *ConfirmationModel) HandleKeyMsg(msg tea.KeyMsg, onConfirm func(id string) tea.Cmd) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Cancel):
		m.Clear()
		return true, nil
	case key.Matches(msg, m.Keys.Confirm):
		id := m.TargetID
		m.Clear()
		return true, onConfirm(id)
	}
	return true, nil
}

// RenderConfirmPrompt renders the standard confirmation prompt
func RenderConfirmPrompt(question string) string {
	var b strings.Builder
	b.WriteString(question)
	b.WriteString(" ")
	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render(" to confirm, "))
	b.WriteString(styles.HelpKey.Render("n"))
	b.WriteString(styles.HelpDesc.Render(" to cancel"))
	return b.String()
}

// RenderTargetInfo renders the item a prompt refers to
func (m *ConfirmationModel) RenderTargetInfo(action string) string {
	if !m.Active() {
		return ""
	}
	return styles.InputLabel.Render(action+":") + "\n  " + m.TargetLabel + " " + styles.MutedText.Render(m.TargetID)
}
