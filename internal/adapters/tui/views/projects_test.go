package views

import (
	"context"
	"strings"
	"testing"

	"mapmyfirm/internal/adapters/memstore"
)

func TestProjects_OpenAndDelete(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	if err := store.Save(ctx, "p1", fixtureState()); err != nil {
		t.Fatal(err)
	}

	m := NewProjectsModel(store)
	m.Update(run(m.Init()))
	if len(m.projects) != 1 || !strings.Contains(m.View(), "Acme Law") {
		t.Fatalf("expected one listed project, got %+v", m.projects)
	}

	if got := result(m.Update(keyPress("enter"))); got != (OpenProjectMsg{ID: "p1"}) {
		t.Errorf("expected open request, got %#v", got)
	}

	m.Update(keyPress("d"))
	if !m.confirm.Active() || !strings.Contains(m.View(), "Delete this project") {
		t.Fatal("expected delete confirmation")
	}
	if msg := result(m.Update(keyPress("n"))); msg != nil || m.confirm.Active() {
		t.Fatal("expected n to cancel without a command")
	}
	if ok, _ := store.Exists(ctx, "p1"); !ok {
		t.Fatal("expected project kept after cancel")
	}

	m.Update(keyPress("d"))
	_, cmd := m.Update(keyPress("y"))
	m.Update(run(cmd))
	if ok, _ := store.Exists(ctx, "p1"); ok {
		t.Error("expected project deleted")
	}
	if len(m.projects) != 0 || m.Message != "Deleted project p1" {
		t.Errorf("expected refreshed empty list, got %d projects and %q", len(m.projects), m.Message)
	}
}

func TestCreate_Submit(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	m := NewCreateModel(store)
	m.Init()

	_, cmd := m.Update(keyPress("enter"))
	if cmd != nil || !m.MessageErr {
		t.Fatalf("expected validation error for empty form, got %q", m.Message)
	}

	m.form.SetValue(fieldName, "Acme Law")
	m.form.SetValue(fieldSiteURL, "firm.test")
	m.form.SetValue(fieldContentTypes, "pages, locations")
	_, cmd = m.Update(keyPress("enter"))

	open, ok := run(cmd).(OpenProjectMsg)
	if !ok {
		t.Fatalf("expected OpenProjectMsg, got %#v", run(cmd))
	}
	state, err := store.Load(ctx, open.ID)
	if err != nil {
		t.Fatal(err)
	}
	if state.Config.ProjectName != "Acme Law" || strings.Join(state.Config.SelectedContentTypes, ",") != "pages,locations" {
		t.Errorf("unexpected config %+v", state.Config)
	}

	if _, ok := result(m.Update(keyPress("esc"))).(SwitchToProjectsMsg); !ok {
		t.Error("expected esc to cancel")
	}
}
