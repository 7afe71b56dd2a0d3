package views

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mapmyfirm/internal/adapters/tui/styles"
	"mapmyfirm/internal/domain"
)

// TreeKeyMap defines key bindings for the sitemap tree view
type TreeKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Left      key.Binding
	Right     key.Binding
	Enter     key.Binding
	Search    key.Binding
	NextMatch key.Binding
	ClearOrUp key.Binding
	TagHub    key.Binding
	TagPage   key.Binding
	TagIgnore key.Binding
	Match     key.Binding
	Checklist key.Binding
	Scan      key.Binding
	Copy      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

var TreeKeys = TreeKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+b", "pgup"),
		key.WithHelp("ctrl+b", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+f", "pgdown"),
		key.WithHelp("ctrl+f", "page down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "collapse"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "expand"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "toggle"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	NextMatch: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "next match"),
	),
	ClearOrUp: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear/projects"),
	),
	TagHub: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "location hub"),
	),
	TagPage: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "practice page"),
	),
	TagIgnore: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "ignore"),
	),
	Match: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "locations"),
	),
	Checklist: key.NewBinding(
		key.WithKeys("c", "tab"),
		key.WithHelp("c", "checklist"),
	),
	Scan: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "scan"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy JSON"),
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

// treeChrome is the number of lines around the node list
const treeChrome = 10

// TreeModel browses a project's pages as a collapsible forest
type TreeModel struct {
	ViewState
	session *Session
	roots   []*domain.TreeNode
	flat    []*domain.TreeNode
	pager   *Paginator

	search    textinput.Model
	searching bool
	matched   map[string]bool
}

// NewTreeModel creates a new tree view model
func NewTreeModel() *TreeModel {
	ti := textinput.New()
	ti.Placeholder = "title, slug or URL"
	ti.Prompt = "/ "
	ti.CharLimit = 100

	return &TreeModel{
		pager:  NewPaginator(20),
		search: ti,
	}
}

// SetSession shows a newly opened project
func (m *TreeModel) SetSession(s *Session) {
	m.session = s
	m.search.SetValue("")
	m.searching = false
	m.matched = nil
	m.ClearMessage()
	m.rebuild()
	if id := s.State.SelectedNodeID; id == nil || !m.moveTo(*id) {
		m.pager.SetCursor(0)
	}
}

// Init initializes the tree view
func (m *TreeModel) Init() tea.Cmd {
	return nil
}

// Refresh re-derives the tree after the project changed elsewhere
func (m *TreeModel) Refresh() {
	m.rebuild()
}

// rebuild derives the forest from the session state. Expansion is part
// of the state so it survives edits and reloads.
func (m *TreeModel) rebuild() {
	if m.session == nil {
		m.roots, m.flat = nil, nil
		m.pager.SetTotal(0)
		return
	}
	selected := m.selectedID()

	m.roots = domain.BuildTree(m.session.State.Pages)
	domain.ApplyExpanded(m.roots, m.session.State.TreeExpandedIDs)
	m.flat = domain.FlattenVisible(m.roots)
	m.pager.SetPageSize(m.listHeight(treeChrome))
	m.pager.SetTotal(len(m.flat))

	if selected != "" {
		m.moveTo(selected)
	}
}

func (m *TreeModel) selectedNode() *domain.TreeNode {
	c := m.pager.Cursor()
	if c >= 0 && c < len(m.flat) {
		return m.flat[c]
	}
	return nil
}

func (m *TreeModel) selectedID() string {
	if n := m.selectedNode(); n != nil {
		return n.ID
	}
	return ""
}

func (m *TreeModel) moveTo(id string) bool {
	for i, n := range m.flat {
		if n.ID == id {
			m.pager.SetCursor(i)
			return true
		}
	}
	return false
}

// rememberSelection stores the node under the cursor so the project
// reopens where it was left
func (m *TreeModel) rememberSelection() {
	id := m.selectedID()
	if id == "" {
		return
	}
	if prev := m.session.State.SelectedNodeID; prev != nil && *prev == id {
		return
	}
	m.session.Apply(domain.SetSelectedNode{ID: &id})
}

// setExpanded records a node's expansion in the state
func (m *TreeModel) setExpanded(id string, expanded bool) {
	ids := slices.Clone(m.session.State.TreeExpandedIDs)
	has := slices.Contains(ids, id)
	switch {
	case expanded && !has:
		ids = append(ids, id)
	case !expanded && has:
		ids = slices.DeleteFunc(ids, func(s string) bool { return s == id })
	default:
		return
	}
	m.session.Apply(domain.SetTreeExpanded{IDs: ids})
	m.rebuild()
}

// applySearch highlights matches and expands their ancestors
func (m *TreeModel) applySearch() {
	term := strings.TrimSpace(m.search.Value())
	if term == "" {
		m.matched = nil
		return
	}

	result := domain.FilterTree(m.session.State.Pages, term, domain.TreeFilter{})
	m.matched = make(map[string]bool, len(result.MatchedIDs))
	for _, id := range result.MatchedIDs {
		m.matched[id] = true
	}

	ids := slices.Clone(m.session.State.TreeExpandedIDs)
	added := false
	for _, id := range result.ExpandedIDs {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
			added = true
		}
	}
	if added {
		m.session.Apply(domain.SetTreeExpanded{IDs: ids})
		m.rebuild()
	}
}

// nextMatch moves the cursor to the next highlighted node, wrapping
func (m *TreeModel) nextMatch() bool {
	if len(m.matched) == 0 || len(m.flat) == 0 {
		return false
	}
	start := m.pager.Cursor()
	for i := 1; i <= len(m.flat); i++ {
		idx := (start + i) % len(m.flat)
		if m.matched[m.flat[idx].ID] {
			m.pager.SetCursor(idx)
			return true
		}
	}
	return false
}

func (m *TreeModel) toggleTag(tag string) tea.Cmd {
	node := m.selectedNode()
	if node == nil {
		return nil
	}
	if node.HasTag(tag) {
		m.session.Apply(domain.RemoveTag{PageID: node.ID, Tag: tag})
		m.SetMessage(fmt.Sprintf("Removed %s from %s", tag, node.Title), false)
	} else {
		m.session.Apply(domain.AddTag{PageID: node.ID, Tag: tag})
		m.SetMessage(fmt.Sprintf("Tagged %s as %s", node.Title, tag), false)
	}
	m.rebuild()
	return nil
}

// locationsEditedMsg carries the location list back from the editor
type locationsEditedMsg struct {
	text string
}

func (m *TreeModel) editLocations() tea.Cmd {
	var lines []string
	for _, l := range m.session.State.Locations {
		lines = append(lines, l.LocationString)
	}
	return send(EditTextMsg{
		Text: strings.Join(lines, "\n"),
		Done: func(text string) tea.Msg { return locationsEditedMsg{text: text} },
	})
}

// matchLocations replaces the project's locations with fresh matches
func (m *TreeModel) matchLocations(text string) {
	lines := domain.SplitLocationLines(text)
	if len(lines) == 0 {
		m.SetMessage("No locations entered", true)
		return
	}

	state := m.session.State
	locations := domain.MatchLocations(lines, state.Pages, state.Config.HubTypeName())
	m.session.Apply(domain.SetLocations{Locations: locations})

	matched := 0
	for _, l := range locations {
		if l.MatchedHubID != nil {
			matched++
		}
	}
	m.SetMessage(fmt.Sprintf("Matched %d of %d locations", matched, len(locations)), false)
}

// Update handles messages for the tree view
func (m *TreeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.SetSize(size.Width, size.Height)
		m.pager.SetPageSize(m.listHeight(treeChrome))
		return m, nil
	}
	if m.session == nil {
		return m, nil
	}

	switch msg := msg.(type) {
	case StatusMsg:
		m.SetMessage(msg.Text, msg.Err)
		return m, nil

	case locationsEditedMsg:
		m.matchLocations(msg.text)
		return m, nil

	case tea.KeyMsg:
		defer m.rememberSelection()
		if m.searching {
			return m, m.updateSearch(msg)
		}
		m.ClearMessage()

		switch {
		case key.Matches(msg, TreeKeys.Quit):
			return m, send(QuitMsg{})

		case key.Matches(msg, TreeKeys.Up):
			m.pager.CursorUp()
		case key.Matches(msg, TreeKeys.Down):
			m.pager.CursorDown()
		case key.Matches(msg, TreeKeys.PageUp):
			m.pager.PrevPage()
		case key.Matches(msg, TreeKeys.PageDown):
			m.pager.NextPage()

		case key.Matches(msg, TreeKeys.Left):
			if node := m.selectedNode(); node != nil {
				if node.IsExpanded {
					m.setExpanded(node.ID, false)
				} else if node.Parent != nil {
					m.moveTo(node.Parent.ID)
				}
			}

		case key.Matches(msg, TreeKeys.Right):
			if node := m.selectedNode(); node != nil && !node.IsLeaf() {
				m.setExpanded(node.ID, true)
			}

		case key.Matches(msg, TreeKeys.Enter):
			if node := m.selectedNode(); node != nil && !node.IsLeaf() {
				m.setExpanded(node.ID, !node.IsExpanded)
			}

		case key.Matches(msg, TreeKeys.Search):
			m.searching = true
			return m, m.search.Focus()

		case key.Matches(msg, TreeKeys.NextMatch):
			if !m.nextMatch() && m.search.Value() != "" {
				m.SetMessage("No matches", true)
			}

		case key.Matches(msg, TreeKeys.ClearOrUp):
			if m.search.Value() != "" {
				m.search.SetValue("")
				m.matched = nil
				return m, nil
			}
			return m, send(SwitchToProjectsMsg{})

		case key.Matches(msg, TreeKeys.TagHub):
			return m, m.toggleTag(domain.TagLocationHub)
		case key.Matches(msg, TreeKeys.TagPage):
			return m, m.toggleTag(domain.TagPracticePage)
		case key.Matches(msg, TreeKeys.TagIgnore):
			return m, m.toggleTag(domain.TagIgnore)

		case key.Matches(msg, TreeKeys.Match):
			return m, m.editLocations()
		case key.Matches(msg, TreeKeys.Checklist):
			return m, send(SwitchToChecklistMsg{})
		case key.Matches(msg, TreeKeys.Scan):
			return m, send(ScanMsg{})
		case key.Matches(msg, TreeKeys.Copy):
			return m, send(CopyExportMsg{})
		case key.Matches(msg, TreeKeys.Help):
			return m, send(SwitchToHelpMsg{})
		}
	}

	return m, nil
}

func (m *TreeModel) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.matched = nil
		return nil
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		if m.selectedNode() == nil || !m.matched[m.selectedID()] {
			m.nextMatch()
		}
		return nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applySearch()
	return cmd
}

// View renders the tree
func (m *TreeModel) View() string {
	if m.session == nil {
		return styles.App.Render("No project open")
	}
	cfg := m.session.State.Config

	v := NewViewBuilder().Title(cfg.ProjectName, m.subtitle())

	if m.searching || m.search.Value() != "" {
		line := m.search.View()
		if m.search.Value() != "" {
			line += styles.MutedText.Render(fmt.Sprintf("  %d matches", len(m.matched)))
		}
		v.Line(line).Line("")
	}

	if len(m.flat) == 0 {
		v.Muted("No pages yet. Press s to scan the site.")
	} else {
		start, end := m.pager.VisibleRange()
		for i := start; i < end; i++ {
			v.Line(m.renderNode(m.flat[i], i == m.pager.Cursor()))
		}
		v.Range(start, end, len(m.flat))
	}

	v.Message(m.Message, m.MessageErr)
	return v.Help(TreeKeys.Search, TreeKeys.TagHub, TreeKeys.Match, TreeKeys.Checklist, TreeKeys.Scan, TreeKeys.Copy, TreeKeys.Help, TreeKeys.Quit).String()
}

func (m *TreeModel) subtitle() string {
	cfg := m.session.State.Config
	parts := []string{cfg.SiteURL, fmt.Sprintf("%d pages", len(m.session.State.Pages))}
	if n := len(m.session.State.Locations); n > 0 {
		parts = append(parts, fmt.Sprintf("%d locations", n))
	}
	if cfg.ScanDate != "" {
		parts = append(parts, "scanned "+cfg.ScanDate)
	}
	return strings.Join(parts, " · ")
}

func (m *TreeModel) renderNode(node *domain.TreeNode, selected bool) string {
	indent := strings.Repeat("  ", node.Depth())

	prefix := styles.TreeLeaf
	if !node.IsLeaf() {
		if node.IsExpanded {
			prefix = styles.TreeExpanded
		} else {
			prefix = styles.TreeCollapsed
		}
	}

	text := node.Title
	var style lipgloss.Style
	switch {
	case selected:
		style = styles.NodeSelected
	case m.matched[node.ID]:
		style = styles.SearchMatch
	case node.HasTag(domain.TagLocationHub):
		style = styles.NodeHub
	case !node.Status.IsPublished():
		style = styles.NodeUnpublished
	default:
		style = styles.NodePage
	}

	var b strings.Builder
	b.WriteString(indent)
	b.WriteString(styles.TreeBranch.Render(prefix))
	b.WriteString(style.Render(text))
	if node.Type != "page" {
		b.WriteString(styles.NodeType.Render(" " + node.Type))
	}
	if !node.Status.IsPublished() {
		b.WriteString(styles.NodeType.Render(" (" + string(node.Status) + ")"))
	}
	for _, tag := range node.ManualTags {
		b.WriteString(" ")
		b.WriteString(styles.TagStyle(tag).Render("[" + tag + "]"))
	}
	return b.String()
}
