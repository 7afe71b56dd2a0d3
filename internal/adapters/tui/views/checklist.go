package views

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mapmyfirm/internal/adapters/tui/styles"
	"mapmyfirm/internal/application"
	"mapmyfirm/internal/domain"
)

// ChecklistKeyMap defines key bindings for the checklist grid
type ChecklistKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Toggle   key.Binding
	Complete key.Binding
	Notes    key.Binding
	Generate key.Binding
	Add      key.Binding
	WriteCSV key.Binding
	Back     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var ChecklistKeys = ChecklistKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "prev column"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next column"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "space", "o"),
		key.WithHelp("space", "optimized"),
	),
	Complete: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "done"),
	),
	Notes: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "notes"),
	),
	Generate: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "generate"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add row"),
	),
	WriteCSV: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "write CSV"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "tab"),
		key.WithHelp("esc", "tree"),
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

// Grid columns: hub, one per practice area, then completion
const (
	colHub  = 0
	colDone = 9
	numCols = 10
)

var areaColumnLabels = map[domain.PracticeArea]string{
	domain.PersonalInjury:     "PI",
	domain.CarAccident:        "Car",
	domain.MotorcycleAccident: "Moto",
	domain.PedestrianAccident: "Ped",
	domain.SlipAndFall:        "Slip",
	domain.TruckAccident:      "Truck",
	domain.RideshareAccident:  "Ride",
	domain.WrongfulDeath:      "WD",
}

const (
	locationWidth   = 24
	cellWidth       = 6
	checklistChrome = 14
)

// ChecklistModel edits the practice-area checklist as a grid
type ChecklistModel struct {
	ViewState
	session *Session
	pager   *Paginator
	col     int
	confirm ConfirmationModel

	// OutputDir receives CSV exports; empty means the working directory
	OutputDir string
	generator domain.ChecklistGenerator
	now       func() time.Time
}

// NewChecklistModel creates a new checklist view model
func NewChecklistModel() *ChecklistModel {
	return &ChecklistModel{
		pager:   NewPaginator(20),
		confirm: NewConfirmationModel(),
		now:     time.Now,
	}
}

// SetSession shows a newly opened project
func (m *ChecklistModel) SetSession(s *Session) {
	m.session = s
	m.col = colHub
	m.confirm.Clear()
	m.ClearMessage()
	m.pager.SetTotal(len(s.State.ChecklistItems))
	m.pager.SetCursor(0)
}

// Init initializes the checklist view
func (m *ChecklistModel) Init() tea.Cmd {
	return nil
}

func (m *ChecklistModel) items() []domain.ChecklistItem {
	return m.session.State.ChecklistItems
}

func (m *ChecklistModel) selectedItem() *domain.ChecklistItem {
	items := m.items()
	c := m.pager.Cursor()
	if c >= 0 && c < len(items) {
		return &items[c]
	}
	return nil
}

// selectedArea is the practice area under the cursor, if any
func (m *ChecklistModel) selectedArea() (domain.PracticeArea, bool) {
	if m.col <= colHub || m.col >= colDone {
		return "", false
	}
	return domain.PracticeAreas[m.col-1], true
}

// Refresh re-sizes the grid after the checklist changed elsewhere
func (m *ChecklistModel) Refresh() {
	m.pager.SetPageSize(m.listHeight(checklistChrome))
	m.pager.SetTotal(len(m.items()))
}

func (m *ChecklistModel) generate() {
	state := m.session.State
	if len(state.Locations) == 0 {
		m.SetMessage("No locations matched yet. Press esc then m to enter locations.", true)
		return
	}
	items := m.generator.Generate(state.Locations, state.Pages)
	m.session.Apply(domain.SetChecklist{Items: items})
	m.Refresh()
	m.SetMessage(fmt.Sprintf("Generated %d checklist rows", len(items)), false)
}

func (m *ChecklistModel) toggleCompleted(item *domain.ChecklistItem) {
	done := !item.Completed
	m.session.Apply(domain.UpdateChecklistItem{ID: item.ID, Completed: &done})
}

// notesEditedMsg carries edited notes back from the editor
type notesEditedMsg struct {
	itemID string
	text   string
}

// rowAddedMsg carries a manual location back from the editor
type rowAddedMsg struct {
	text string
}

func (m *ChecklistModel) writeCSV() {
	name := filepath.Join(m.OutputDir, application.CSVFilename(m.now()))

	f, err := os.Create(name)
	if err != nil {
		m.SetMessage(err.Error(), true)
		return
	}
	defer f.Close()

	if err := application.WriteChecklistCSV(f, m.items()); err != nil {
		m.SetMessage(err.Error(), true)
		return
	}
	m.SetMessage("Wrote "+name, false)
}

// Update handles messages for the checklist view
func (m *ChecklistModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.SetSize(size.Width, size.Height)
		m.pager.SetPageSize(m.listHeight(checklistChrome))
		return m, nil
	}
	if m.session == nil {
		return m, nil
	}

	switch msg := msg.(type) {
	case StatusMsg:
		m.SetMessage(msg.Text, msg.Err)
		return m, nil

	case notesEditedMsg:
		text := msg.text
		m.session.Apply(domain.UpdateChecklistItem{ID: msg.itemID, Notes: &text})
		m.SetMessage("Notes saved", false)
		return m, nil

	case rowAddedMsg:
		for _, loc := range domain.SplitLocationLines(msg.text) {
			item := m.generator.NewItem(domain.NormalizeLocation(loc))
			m.session.Apply(domain.AddChecklistItem{Item: item})
		}
		m.Refresh()
		m.pager.SetCursor(len(m.items()) - 1)
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()

		if m.confirm.Active() {
			_, cmd := m.confirm.HandleKeyMsg(msg, func(string) tea.Cmd {
				m.generate()
				return nil
			})
			return m, cmd
		}

		switch {
		case key.Matches(msg, ChecklistKeys.Quit):
			return m, send(QuitMsg{})
		case key.Matches(msg, ChecklistKeys.Back):
			return m, send(SwitchToTreeMsg{})
		case key.Matches(msg, ChecklistKeys.Help):
			return m, send(SwitchToHelpMsg{})

		case key.Matches(msg, ChecklistKeys.Up):
			m.pager.CursorUp()
		case key.Matches(msg, ChecklistKeys.Down):
			m.pager.CursorDown()
		case key.Matches(msg, ChecklistKeys.Left):
			m.col = (m.col + numCols - 1) % numCols
		case key.Matches(msg, ChecklistKeys.Right):
			m.col = (m.col + 1) % numCols

		case key.Matches(msg, ChecklistKeys.Generate):
			// regenerating drops notes, overrides and completion marks
			if n := len(m.items()); n > 0 {
				m.confirm.SetTarget(m.session.ID, fmt.Sprintf("%d checklist rows", n))
				return m, nil
			}
			m.generate()

		case key.Matches(msg, ChecklistKeys.Add):
			return m, send(EditTextMsg{
				Done: func(text string) tea.Msg { return rowAddedMsg{text: text} },
			})

		case key.Matches(msg, ChecklistKeys.WriteCSV):
			m.writeCSV()

		case key.Matches(msg, ChecklistKeys.Toggle):
			item := m.selectedItem()
			if item == nil {
				return m, nil
			}
			if area, ok := m.selectedArea(); ok {
				m.session.Apply(domain.ToggleOptimized{ItemID: item.ID, Area: area})
			} else if m.col == colDone {
				m.toggleCompleted(item)
			}

		case key.Matches(msg, ChecklistKeys.Complete):
			if item := m.selectedItem(); item != nil {
				m.toggleCompleted(item)
			}

		case key.Matches(msg, ChecklistKeys.Notes):
			if item := m.selectedItem(); item != nil {
				id := item.ID
				return m, send(EditTextMsg{
					Text: item.Notes,
					Done: func(text string) tea.Msg { return notesEditedMsg{itemID: id, text: text} },
				})
			}
		}
	}

	return m, nil
}

// View renders the checklist grid
func (m *ChecklistModel) View() string {
	if m.session == nil {
		return styles.App.Render("No project open")
	}

	v := NewViewBuilder().Title("Practice Area Checklist", m.session.State.Config.ProjectName)

	if m.confirm.Active() {
		v.Line(m.confirm.RenderTargetInfo("Replace")).Line("")
		v.Line(RenderConfirmPrompt("Regenerate the checklist? Manual edits will be lost."))
		return v.String()
	}
	items := m.items()

	if len(items) == 0 {
		v.Muted("No checklist yet. Press g to generate it from matched locations.")
		v.Message(m.Message, m.MessageErr)
		return v.Help(ChecklistKeys.Generate, ChecklistKeys.Add, ChecklistKeys.Back, ChecklistKeys.Quit).String()
	}

	v.Bullets(statParts(domain.CalculateStats(items))...).Line("")
	v.Line(m.renderHeader())

	start, end := m.pager.VisibleRange()
	for i := start; i < end; i++ {
		v.Line(m.renderRow(items[i], i == m.pager.Cursor()))
	}
	v.Range(start, end, len(items))

	v.Line("")
	if item := m.selectedItem(); item != nil {
		v.Line(m.renderDetail(*item))
	}

	v.Message(m.Message, m.MessageErr)
	return v.Help(ChecklistKeys.Toggle, ChecklistKeys.Complete, ChecklistKeys.Notes, ChecklistKeys.Generate, ChecklistKeys.Add, ChecklistKeys.WriteCSV, ChecklistKeys.Back).String()
}

func statParts(s domain.ChecklistStats) []string {
	return []string{
		fmt.Sprintf("Hubs %d/%d (%d%%)", s.HubsExist, s.Total, s.HubsPercentage),
		fmt.Sprintf("Pages %d/%d (%d%%)", s.TotalExists, s.TotalRequired, s.OverallPercentage),
		fmt.Sprintf("Done %d/%d (%d%%)", s.Completed, s.Total, s.CompletionPercentage),
	}
}

func (m *ChecklistModel) renderHeader() string {
	var b strings.Builder
	b.WriteString(styles.ColumnHeader.Render(padRight("Location", locationWidth)))
	b.WriteString(styles.ColumnHeader.Render(padRight("Hub", cellWidth)))
	for _, a := range domain.PracticeAreas {
		b.WriteString(styles.ColumnHeader.Render(padRight(areaColumnLabels[a], cellWidth)))
	}
	b.WriteString(styles.ColumnHeader.Render("Done"))
	return b.String()
}

func (m *ChecklistModel) renderRow(item domain.ChecklistItem, selected bool) string {
	var b strings.Builder

	loc := padRight(truncate(item.Location, locationWidth-1), locationWidth)
	if selected {
		b.WriteString(styles.NodeSelected.Render(loc))
	} else {
		b.WriteString(loc)
	}

	cell := func(col int, text string, style lipgloss.Style) {
		padded := padRight(text, cellWidth-1)
		if selected && col == m.col {
			b.WriteString(styles.CellSelected.Render(padded))
		} else {
			b.WriteString(style.Render(padded))
		}
		b.WriteString(" ")
	}

	if item.HubExists {
		cell(colHub, "✓", styles.CellPresent)
	} else {
		cell(colHub, "✗", styles.CellMissing)
	}
	for i, a := range domain.PracticeAreas {
		rec := item.Area(a)
		switch {
		case rec.Exists && rec.Optimized:
			cell(i+1, "★", styles.CellOptimized)
		case rec.Exists:
			cell(i+1, "✓", styles.CellPresent)
		default:
			cell(i+1, "·", styles.CellMissing)
		}
	}
	if item.Completed {
		cell(colDone, "[x]", styles.CellPresent)
	} else {
		cell(colDone, "[ ]", styles.MutedText)
	}
	return b.String()
}

// renderDetail describes the cell under the cursor
func (m *ChecklistModel) renderDetail(item domain.ChecklistItem) string {
	var lines []string

	if area, ok := m.selectedArea(); ok {
		rec := item.Area(area)
		line := styles.InputLabel.Render(area.DisplayName()+": ")
		switch {
		case rec.PageID != "":
			title := rec.PageID
			if page := domain.FindNodeInList(m.session.State.Pages, rec.PageID); page != nil {
				title = page.Title + " " + styles.MutedText.Render(page.URL)
			}
			line += title
		case rec.ManualURL != "":
			line += rec.ManualURL
		default:
			line += styles.CellMissing.Render("missing")
		}
		if rec.Optimized {
			line += styles.CellOptimized.Render(" optimized")
		}
		lines = append(lines, line)
		if rec.Comment != "" {
			lines = append(lines, styles.MutedText.Render(rec.Comment))
		}
	} else if m.col == colHub {
		line := styles.InputLabel.Render("Hub: ")
		if item.HubID != nil {
			if hub := domain.FindNodeInList(m.session.State.Pages, *item.HubID); hub != nil {
				line += hub.Title + " " + styles.MutedText.Render(hub.URL)
			} else {
				line += *item.HubID
			}
		} else {
			line += styles.CellMissing.Render("none")
		}
		lines = append(lines, line)
	}

	if item.Notes != "" {
		lines = append(lines, styles.InputLabel.Render("Notes: ")+item.Notes)
	}
	return strings.Join(lines, "\n")
}
