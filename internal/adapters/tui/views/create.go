package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"mapmyfirm/internal/application/commands"
	"mapmyfirm/internal/ports"
)

const (
	fieldName = iota
	fieldSiteURL
	fieldContentTypes
	fieldHubType
)

// CreateModel collects the settings for a new project
type CreateModel struct {
	ViewState
	store ports.ProjectStore
	form  *InputForm
}

// NewCreateModel creates a new project form
func NewCreateModel(store ports.ProjectStore) *CreateModel {
	return &CreateModel{
		store: store,
		form: NewInputForm(
			NewInputField("Project name", "Acme Injury Law", "", 100),
			NewInputField("Site URL", "https://example.com", "The WordPress site to scan", 200),
			NewInputField("Content types", "pages,posts", "Comma separated REST bases; empty means pages,posts", 200),
			NewInputField("Hub post type", "", "Custom post type holding location hubs; empty means pages", 50),
		),
	}
}

// Init resets the form and starts the cursor blinking
func (m *CreateModel) Init() tea.Cmd {
	m.form.Reset()
	m.ClearMessage()
	return m.form.Init()
}

func (m *CreateModel) submit() tea.Cmd {
	cmd := commands.NewCreateProjectCommand(m.store, m.form.Value(fieldName), m.form.Value(fieldSiteURL))
	for _, t := range strings.Split(m.form.Value(fieldContentTypes), ",") {
		if t = strings.TrimSpace(t); t != "" {
			cmd.ContentTypes = append(cmd.ContentTypes, t)
		}
	}
	cmd.HubTypeName = m.form.Value(fieldHubType)

	if err := cmd.Validate(); err != nil {
		m.SetMessage(err.Error(), true)
		return nil
	}

	return func() tea.Msg {
		result, err := cmd.Execute(context.Background())
		if err != nil {
			return StatusMsg{Text: err.Error(), Err: true}
		}
		return OpenProjectMsg{ID: result.ID}
	}
}

// Update handles messages for the create view
func (m *CreateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case StatusMsg:
		m.SetMessage(msg.Text, msg.Err)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.form.Keys.Cancel):
			return m, send(SwitchToProjectsMsg{})
		case key.Matches(msg, m.form.Keys.Submit):
			return m, m.submit()
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

// View renders the create form
func (m *CreateModel) View() string {
	v := NewViewBuilder().Title("New Project", "")
	v.Line(m.form.Render())
	v.Message(m.Message, m.MessageErr)
	v.Line("")
	v.Line(m.form.RenderHelp())
	return v.String()
}
