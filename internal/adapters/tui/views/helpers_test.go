package views

import (
	tea "github.com/charmbracelet/bubbletea"

	"mapmyfirm/internal/domain"
)

func ptr(s string) *string { return &s }

func fixtureState() domain.ProjectState {
	state := domain.NewProjectState()
	state.Config.ProjectName = "Acme Law"
	state.Config.SiteURL = "https://firm.test"
	state.Pages = []domain.SiteNode{
		{ID: "1", Title: "Los Angeles Office", Slug: "los-angeles", URL: "https://firm.test/los-angeles/", Type: "location", Status: domain.StatusPublish},
		{ID: "2", Title: "Car Accident Lawyer", Slug: "car-accident", URL: "https://firm.test/los-angeles/car-accident/", ParentID: ptr("1"), Type: "page", Status: domain.StatusDraft},
		{ID: "3", Title: "San Diego Office", Slug: "san-diego", URL: "https://firm.test/san-diego/", Type: "location", Status: domain.StatusPublish, ManualTags: []string{domain.TagLocationHub}},
	}
	return state
}

func keyPress(k string) tea.KeyMsg {
	switch k {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// run executes a command and returns its message, or nil
func run(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

// result returns the message produced by an Update call
func result(_ tea.Model, cmd tea.Cmd) tea.Msg {
	return run(cmd)
}
