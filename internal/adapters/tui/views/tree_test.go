package views

import (
	"slices"
	"strings"
	"testing"

	"mapmyfirm/internal/domain"
)

func newTree(t *testing.T) *TreeModel {
	t.Helper()
	m := NewTreeModel()
	m.SetSession(NewSession("p1", fixtureState(), nil))
	return m
}

func flatIDs(m *TreeModel) []string {
	ids := make([]string, len(m.flat))
	for i, n := range m.flat {
		ids[i] = n.ID
	}
	return ids
}

func TestTree_ExpandCollapse(t *testing.T) {
	m := newTree(t)
	if got := flatIDs(m); !slices.Equal(got, []string{"1", "3"}) {
		t.Fatalf("expected collapsed roots, got %v", got)
	}

	m.Update(keyPress("l"))
	if got := flatIDs(m); !slices.Equal(got, []string{"1", "2", "3"}) {
		t.Fatalf("expected child visible after expand, got %v", got)
	}
	if !slices.Equal(m.session.State.TreeExpandedIDs, []string{"1"}) {
		t.Errorf("expected expansion stored in state, got %v", m.session.State.TreeExpandedIDs)
	}

	m.Update(keyPress("j"))
	m.Update(keyPress("h"))
	if m.selectedID() != "1" {
		t.Errorf("expected h on a leaf to jump to its parent, got %q", m.selectedID())
	}

	m.Update(keyPress("h"))
	if got := flatIDs(m); !slices.Equal(got, []string{"1", "3"}) {
		t.Errorf("expected collapse, got %v", got)
	}
	if len(m.session.State.TreeExpandedIDs) != 0 {
		t.Errorf("expected no expanded IDs, got %v", m.session.State.TreeExpandedIDs)
	}
}

func TestTree_RestoresSelection(t *testing.T) {
	m := newTree(t)
	m.Update(keyPress("j"))

	if id := m.session.State.SelectedNodeID; id == nil || *id != "3" {
		t.Fatalf("expected selection stored, got %v", id)
	}

	reopened := NewTreeModel()
	reopened.SetSession(NewSession("p1", m.session.State, nil))
	if reopened.selectedID() != "3" {
		t.Errorf("expected cursor restored to 3, got %q", reopened.selectedID())
	}
}

func TestTree_Search(t *testing.T) {
	m := newTree(t)

	m.Update(keyPress("/"))
	for _, r := range "car" {
		m.Update(keyPress(string(r)))
	}
	if !m.matched["2"] || m.matched["1"] || m.matched["3"] {
		t.Fatalf("expected only page 2 matched, got %v", m.matched)
	}
	if !slices.Contains(m.session.State.TreeExpandedIDs, "1") {
		t.Error("expected ancestor of match expanded")
	}

	m.Update(keyPress("enter"))
	if m.searching {
		t.Error("expected search input closed")
	}
	if m.selectedID() != "2" {
		t.Errorf("expected cursor on first match, got %q", m.selectedID())
	}

	m.Update(keyPress("esc"))
	if m.search.Value() != "" || m.matched != nil {
		t.Error("expected esc to clear the search")
	}
	if _, ok := result(m.Update(keyPress("esc"))).(SwitchToProjectsMsg); !ok {
		t.Error("expected second esc to return to projects")
	}
}

func TestTree_ToggleTag(t *testing.T) {
	m := newTree(t)
	m.Update(keyPress("j"))

	m.Update(keyPress("t"))
	if page := domain.FindNodeInList(m.session.State.Pages, "3"); page.HasTag(domain.TagLocationHub) {
		t.Error("expected hub tag removed")
	}
	if m.Message != "Removed Location Hub from San Diego Office" {
		t.Errorf("unexpected message %q", m.Message)
	}

	m.Update(keyPress("x"))
	if page := domain.FindNodeInList(m.session.State.Pages, "3"); !page.HasTag(domain.TagIgnore) {
		t.Error("expected ignore tag added")
	}
	if m.selectedID() != "3" {
		t.Errorf("expected cursor kept on tagged page, got %q", m.selectedID())
	}
}

func TestTree_MatchLocations(t *testing.T) {
	m := newTree(t)

	msg := result(m.Update(keyPress("m")))
	edit, ok := msg.(EditTextMsg)
	if !ok {
		t.Fatalf("expected EditTextMsg, got %T", msg)
	}
	if edit.Text != "" {
		t.Errorf("expected empty location list, got %q", edit.Text)
	}

	m.Update(edit.Done("Los Angeles, CA\n\nBoise, ID\n"))
	if m.Message != "Matched 1 of 2 locations" {
		t.Errorf("unexpected message %q", m.Message)
	}
	locs := m.session.State.Locations
	if len(locs) != 2 || locs[0].HubID() != "1" || locs[1].HubID() != "" {
		t.Errorf("unexpected locations %+v", locs)
	}

	m.Update(edit.Done("  \n"))
	if !m.MessageErr {
		t.Error("expected error for empty location list")
	}
}

func TestTree_Requests(t *testing.T) {
	tests := []struct {
		key  string
		want any
	}{
		{"c", SwitchToChecklistMsg{}},
		{"tab", SwitchToChecklistMsg{}},
		{"s", ScanMsg{}},
		{"y", CopyExportMsg{}},
		{"?", SwitchToHelpMsg{}},
		{"q", QuitMsg{}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m := newTree(t)
			if got := result(m.Update(keyPress(tt.key))); got != tt.want {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestTree_View(t *testing.T) {
	m := newTree(t)
	m.Update(keyPress("l"))

	out := m.View()
	for _, want := range []string{"Acme Law", "Los Angeles Office", "Car Accident Lawyer", "(draft)", "[Location Hub]", "3 pages"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}
