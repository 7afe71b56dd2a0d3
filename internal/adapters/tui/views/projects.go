package views

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"mapmyfirm/internal/adapters/tui/styles"
	"mapmyfirm/internal/application/commands"
	"mapmyfirm/internal/ports"
)

// ProjectsKeyMap defines key bindings for the project list
type ProjectsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	New    key.Binding
	Delete key.Binding
	Help   key.Binding
	Quit   key.Binding
}

var ProjectsKeys = ProjectsKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter", "l"),
		key.WithHelp("enter", "open"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new project"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

const projectsChrome = 8

// projectsLoadedMsg carries a fresh project listing
type projectsLoadedMsg struct {
	projects []ports.ProjectInfo
	deleted  string
	err      error
}

// ProjectsModel lists stored projects
type ProjectsModel struct {
	ViewState
	store    ports.ProjectStore
	projects []ports.ProjectInfo
	pager    *Paginator
	confirm  ConfirmationModel
}

// NewProjectsModel creates a new project list model
func NewProjectsModel(store ports.ProjectStore) *ProjectsModel {
	return &ProjectsModel{
		store:   store,
		pager:   NewPaginator(20),
		confirm: NewConfirmationModel(),
	}
}

// Init loads the project list
func (m *ProjectsModel) Init() tea.Cmd {
	return m.Reload()
}

// Reload lists the store again
func (m *ProjectsModel) Reload() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		projects, err := store.List(context.Background())
		return projectsLoadedMsg{projects: projects, err: err}
	}
}

func (m *ProjectsModel) selected() *ports.ProjectInfo {
	c := m.pager.Cursor()
	if c >= 0 && c < len(m.projects) {
		return &m.projects[c]
	}
	return nil
}

func (m *ProjectsModel) delete(id string) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		msg, err := commands.NewDeleteProjectCommand(store, id).Execute(context.Background())
		if err != nil {
			return StatusMsg{Text: err.Error(), Err: true}
		}
		projects, err := store.List(context.Background())
		if err != nil {
			return projectsLoadedMsg{err: err}
		}
		return projectsLoadedMsg{projects: projects, deleted: msg}
	}
}

// Update handles messages for the project list
func (m *ProjectsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.pager.SetPageSize(m.listHeight(projectsChrome))
		return m, nil

	case StatusMsg:
		m.SetMessage(msg.Text, msg.Err)
		return m, nil

	case projectsLoadedMsg:
		if msg.err != nil {
			m.SetMessage(msg.err.Error(), true)
			return m, nil
		}
		m.projects = msg.projects
		m.pager.SetTotal(len(m.projects))
		m.pager.SetCursor(m.pager.Cursor())
		if msg.deleted != "" {
			m.SetMessage(msg.deleted, false)
		}
		return m, nil

	case tea.KeyMsg:
		if m.confirm.Active() {
			_, cmd := m.confirm.HandleKeyMsg(msg, m.delete)
			return m, cmd
		}
		m.ClearMessage()

		switch {
		case key.Matches(msg, ProjectsKeys.Quit):
			return m, send(QuitMsg{})
		case key.Matches(msg, ProjectsKeys.Up):
			m.pager.CursorUp()
		case key.Matches(msg, ProjectsKeys.Down):
			m.pager.CursorDown()
		case key.Matches(msg, ProjectsKeys.New):
			return m, send(SwitchToCreateMsg{})
		case key.Matches(msg, ProjectsKeys.Help):
			return m, send(SwitchToHelpMsg{})
		case key.Matches(msg, ProjectsKeys.Open):
			if p := m.selected(); p != nil {
				return m, send(OpenProjectMsg{ID: p.ID})
			}
		case key.Matches(msg, ProjectsKeys.Delete):
			if p := m.selected(); p != nil {
				m.confirm.SetTarget(p.ID, p.Name)
			}
		}
	}

	return m, nil
}

// View renders the project list
func (m *ProjectsModel) View() string {
	v := NewViewBuilder().Title("mapmyfirm", "Projects")

	if m.confirm.Active() {
		v.Line(m.confirm.RenderTargetInfo("Delete project")).Line("")
		v.Line(RenderConfirmPrompt("Delete this project and all its data?"))
		return v.String()
	}

	if len(m.projects) == 0 {
		v.Muted("No projects yet. Press n to create one.")
	}

	start, end := m.pager.VisibleRange()
	for i := start; i < end; i++ {
		p := m.projects[i]
		line := fmt.Sprintf("%s  %s  %s",
			padRight(truncate(p.Name, 30), 30),
			padRight(truncate(p.SiteURL, 36), 36),
			styles.MutedText.Render(fmt.Sprintf("%d pages  %s", p.PageCount, p.LastModified)),
		)
		if i == m.pager.Cursor() {
			line = styles.NodeSelected.Render(line)
		}
		v.Line(line)
	}
	v.Range(start, end, len(m.projects))

	v.Message(m.Message, m.MessageErr)
	return v.Help(ProjectsKeys.Open, ProjectsKeys.New, ProjectsKeys.Delete, ProjectsKeys.Help, ProjectsKeys.Quit).String()
}
