package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"mapmyfirm/internal/adapters/tui/views"
	"mapmyfirm/internal/application"
	"mapmyfirm/internal/application/commands"
	"mapmyfirm/internal/domain"
	"mapmyfirm/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewProjects ViewState = iota
	ViewCreate
	ViewTree
	ViewChecklist
	ViewHelp
)

// SourceFactory opens a page source for a site
type SourceFactory func(siteURL string) ports.PageSource

// Options configures the optional collaborators of the app
type Options struct {
	Editor ports.NoteEditor
	Source SourceFactory
	Log    *slog.Logger
	// Copy writes text to the clipboard; defaults to the system clipboard
	Copy func(string) error
}

// App is the main TUI application model
type App struct {
	store  ports.ProjectStore
	editor ports.NoteEditor
	source SourceFactory
	copy   func(string) error
	log    *slog.Logger
	now    func() time.Time

	state     ViewState
	session   *views.Session
	scanning  <-chan tea.Msg
	projects  *views.ProjectsModel
	create    *views.CreateModel
	tree      *views.TreeModel
	checklist *views.ChecklistModel
	help      *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(store ports.ProjectStore, opts Options) *App {
	if opts.Log == nil {
		opts.Log = slog.New(slog.DiscardHandler)
	}
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}
	return &App{
		store:     store,
		editor:    opts.Editor,
		source:    opts.Source,
		copy:      opts.Copy,
		log:       opts.Log,
		now:       time.Now,
		state:     ViewProjects,
		projects:  views.NewProjectsModel(store),
		create:    views.NewCreateModel(store),
		tree:      views.NewTreeModel(),
		checklist: views.NewChecklistModel(),
		help:      views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.projects.Init()
}

// projectLoadedMsg carries a project read from the store
type projectLoadedMsg struct {
	id    string
	state *domain.ProjectState
	err   error
}

// scanProgressMsg reports pages fetched during a rescan
type scanProgressMsg struct {
	id             string
	fetched, total int
	contentType    string
}

// scanDoneMsg ends a rescan of the project with the given id
type scanDoneMsg struct {
	id     string
	result *commands.ScanProjectResult
	err    error
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.projects.Update(msg)
		a.create.Update(msg)
		a.tree.Update(msg)
		a.checklist.Update(msg)
		a.help.Update(msg)
		return a, nil

	// View switching messages
	case views.SwitchToProjectsMsg:
		a.closeSession()
		a.state = ViewProjects
		return a, a.projects.Reload()

	case views.SwitchToCreateMsg:
		a.state = ViewCreate
		return a, a.create.Init()

	case views.SwitchToTreeMsg:
		if a.session == nil {
			return a, nil
		}
		a.state = ViewTree
		a.tree.Refresh()
		return a, nil

	case views.SwitchToChecklistMsg:
		if a.session == nil {
			return a, nil
		}
		a.state = ViewChecklist
		a.checklist.Refresh()
		return a, nil

	case views.SwitchToHelpMsg:
		a.help.SetReturn(a.returnMsg())
		a.state = ViewHelp
		return a, nil

	case views.OpenProjectMsg:
		return a, a.loadProject(msg.ID)

	case projectLoadedMsg:
		if msg.err != nil {
			a.state = ViewProjects
			return a, a.forward(views.StatusMsg{Text: msg.err.Error(), Err: true})
		}
		a.openSession(msg.id, *msg.state)
		return a, nil

	case views.EditTextMsg:
		return a, a.editText(msg)

	case views.CopyExportMsg:
		return a, a.copyExport()

	case views.ScanMsg:
		return a, a.startScan()

	case scanProgressMsg:
		if a.isOpen(msg.id) {
			status := fmt.Sprintf("Scanning %s: %d of %d", msg.contentType, msg.fetched, msg.total)
			a.tree.SetMessage(status, false)
		}
		return a, listen(a.scanning)

	case scanDoneMsg:
		a.scanning = nil
		if msg.err != nil {
			a.log.Error("scan failed", "project", msg.id, "error", msg.err)
			return a, a.forward(views.StatusMsg{Text: msg.err.Error(), Err: true})
		}
		// The scan already stored its result. Only the project it ran on
		// may take the new state; another open project keeps its own.
		if !a.isOpen(msg.id) {
			a.log.Info("scan finished for closed project", "project", msg.id, "pages", msg.result.PageCount)
			return a, a.forward(views.StatusMsg{Text: fmt.Sprintf("Scan of %s finished and was saved", msg.result.State.Config.ProjectName)})
		}
		a.session.Replace(msg.result.State)
		a.tree.Refresh()
		a.checklist.Refresh()
		return a, a.forward(views.StatusMsg{Text: msg.result.Message})

	case views.QuitMsg:
		a.closeSession()
		return a, tea.Quit
	}

	return a, a.forward(msg)
}

// forward delivers a message to the active view
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.state {
	case ViewProjects:
		_, cmd = a.projects.Update(msg)
	case ViewCreate:
		_, cmd = a.create.Update(msg)
	case ViewTree:
		_, cmd = a.tree.Update(msg)
	case ViewChecklist:
		_, cmd = a.checklist.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}
	return cmd
}

func (a *App) returnMsg() tea.Msg {
	switch a.state {
	case ViewTree:
		return views.SwitchToTreeMsg{}
	case ViewChecklist:
		return views.SwitchToChecklistMsg{}
	default:
		return views.SwitchToProjectsMsg{}
	}
}

func (a *App) loadProject(id string) tea.Cmd {
	store := a.store
	return func() tea.Msg {
		state, err := store.Load(context.Background(), id)
		return projectLoadedMsg{id: id, state: state, err: err}
	}
}

func (a *App) openSession(id string, state domain.ProjectState) {
	a.closeSession()
	saver := application.NewAutosaver(a.store, id, application.DefaultAutosaveDelay, a.log)
	a.session = views.NewSession(id, state, saver)
	a.tree.SetSession(a.session)
	a.checklist.SetSession(a.session)
	a.state = ViewTree
	a.log.Info("project opened", "project", id, "pages", len(state.Pages))
}

// isOpen reports whether the project with id is the open session
func (a *App) isOpen(id string) bool {
	return a.session != nil && a.session.ID == id
}

// closeSession writes pending edits before the project is let go
func (a *App) closeSession() {
	if a.session == nil {
		return
	}
	if err := a.session.Flush(context.Background()); err != nil {
		a.log.Error("failed to save project", "project", a.session.ID, "error", err)
	}
	a.session = nil
}

func (a *App) editText(msg views.EditTextMsg) tea.Cmd {
	if a.editor == nil {
		return send(views.StatusMsg{Text: "no editor configured", Err: true})
	}

	cmd, path, err := a.editor.Prepare(msg.Text)
	if err != nil {
		return send(views.StatusMsg{Text: err.Error(), Err: true})
	}

	ed := a.editor
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		text, collectErr := ed.Collect(path)
		if err != nil {
			return views.StatusMsg{Text: "editor: " + err.Error(), Err: true}
		}
		if collectErr != nil {
			return views.StatusMsg{Text: collectErr.Error(), Err: true}
		}
		return msg.Done(text)
	})
}

func (a *App) copyExport() tea.Cmd {
	if a.session == nil {
		return nil
	}
	data, err := application.ExportProject(a.session.State, a.now())
	if err != nil {
		return send(views.StatusMsg{Text: err.Error(), Err: true})
	}
	if err := a.copy(string(data)); err != nil {
		return send(views.StatusMsg{Text: "clipboard: " + err.Error(), Err: true})
	}
	return send(views.StatusMsg{Text: fmt.Sprintf("Copied export of %d pages to the clipboard", len(a.session.State.Pages))})
}

// startScan rescans the open project in the background. Pending edits
// are saved first since the scan reads the stored project.
func (a *App) startScan() tea.Cmd {
	if a.session == nil {
		return nil
	}
	if a.scanning != nil {
		return send(views.StatusMsg{Text: "a scan is already running", Err: true})
	}
	if a.source == nil {
		return send(views.StatusMsg{Text: "scanning is not available", Err: true})
	}
	if err := a.session.Flush(context.Background()); err != nil {
		return send(views.StatusMsg{Text: err.Error(), Err: true})
	}

	siteURL := a.session.State.Config.SiteURL
	if siteURL == "" {
		return send(views.StatusMsg{Text: "project has no site URL", Err: true})
	}

	id := a.session.ID
	ch := make(chan tea.Msg, 16)
	cmd := commands.NewScanProjectCommand(a.store, a.source(siteURL), id)
	cmd.Log = a.log
	cmd.Progress = func(fetched, total int, contentType string) {
		select {
		case ch <- scanProgressMsg{id: id, fetched: fetched, total: total, contentType: contentType}:
		default:
		}
	}

	go func() {
		result, err := cmd.Execute(context.Background())
		ch <- scanDoneMsg{id: id, result: result, err: err}
		close(ch)
	}()

	a.scanning = ch
	a.tree.SetMessage("Scanning "+siteURL, false)
	return listen(ch)
}

// listen waits for the next message from a background job
func listen(ch <-chan tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewCreate:
		return a.create.View()
	case ViewTree:
		return a.tree.View()
	case ViewChecklist:
		return a.checklist.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.projects.View()
	}
}
