package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"mapmyfirm/internal/adapters/memstore"
	"mapmyfirm/internal/adapters/tui/views"
	"mapmyfirm/internal/domain"
	"mapmyfirm/internal/ports"
)

// gatedSource holds every request until release is closed
type gatedSource struct {
	release chan struct{}
}

func (g *gatedSource) wait(ctx context.Context) error {
	select {
	case <-g.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *gatedSource) ContentTypes(ctx context.Context) ([]domain.ContentType, error) {
	if err := g.wait(ctx); err != nil {
		return nil, err
	}
	return []domain.ContentType{{Slug: "page", Name: "Pages", RestBase: "pages", Hierarchical: true}}, nil
}

func (g *gatedSource) FetchPage(ctx context.Context, ct domain.ContentType, page, perPage int) (domain.PageBatch, error) {
	if err := g.wait(ctx); err != nil {
		return domain.PageBatch{}, err
	}
	nodes := []domain.SiteNode{
		{ID: "10", Title: "Scanned Home", Type: "page", Status: domain.StatusPublish},
		{ID: "11", Title: "Scanned About", Type: "page", Status: domain.StatusPublish},
	}
	return domain.PageBatch{Nodes: nodes, TotalPages: 1, Total: len(nodes)}, nil
}

func (g *gatedSource) Ping(ctx context.Context) error { return nil }

func project(name, siteURL string, pages ...domain.SiteNode) domain.ProjectState {
	s := domain.NewProjectState()
	s.Config.ProjectName = name
	s.Config.SiteURL = siteURL
	s.Config.SelectedContentTypes = []string{"pages"}
	s.Pages = pages
	return s
}

func newTestApp(t *testing.T) (*App, *memstore.Store, *gatedSource) {
	t.Helper()
	store := memstore.New()
	ctx := context.Background()
	if err := store.Save(ctx, "a", project("Project A", "https://a.example", domain.SiteNode{ID: "1", Title: "Old A"})); err != nil {
		t.Fatalf("Save(a) error = %v", err)
	}
	if err := store.Save(ctx, "b", project("Project B", "https://b.example", domain.SiteNode{ID: "9", Title: "Page B"})); err != nil {
		t.Fatalf("Save(b) error = %v", err)
	}

	src := &gatedSource{release: make(chan struct{})}
	app := NewApp(store, Options{
		Source: func(string) ports.PageSource { return src },
		Copy:   func(string) error { return nil },
	})
	return app, store, src
}

func open(t *testing.T, app *App, store *memstore.Store, id string) {
	t.Helper()
	state, err := store.Load(context.Background(), id)
	if err != nil {
		t.Fatalf("Load(%s) error = %v", id, err)
	}
	app.Update(projectLoadedMsg{id: id, state: state})
	if app.session == nil || app.session.ID != id {
		t.Fatalf("session not opened for %s", id)
	}
}

// drainScan feeds every message of the running scan to the app and
// returns the final one
func drainScan(t *testing.T, app *App) scanDoneMsg {
	t.Helper()
	ch := app.scanning
	if ch == nil {
		t.Fatal("no scan running")
	}
	var done scanDoneMsg
	var seen bool
	for msg := range ch {
		app.Update(msg)
		if d, ok := msg.(scanDoneMsg); ok {
			done, seen = d, true
		}
	}
	if !seen {
		t.Fatal("scan ended without a done message")
	}
	return done
}

func beginScan(t *testing.T, app *App) tea.Cmd {
	t.Helper()
	_, cmd := app.Update(views.ScanMsg{})
	if cmd == nil || app.scanning == nil {
		t.Fatal("scan did not start")
	}
	return cmd
}

func TestApp_ScanReplacesOpenProject(t *testing.T) {
	app, store, src := newTestApp(t)
	open(t, app, store, "a")

	beginScan(t, app)
	close(src.release)
	done := drainScan(t, app)

	if done.err != nil {
		t.Fatalf("scan error = %v", done.err)
	}
	if done.id != "a" {
		t.Errorf("done.id = %q, want a", done.id)
	}
	if app.scanning != nil {
		t.Error("scanning should be cleared")
	}
	if got := len(app.session.State.Pages); got != 2 {
		t.Errorf("open project has %d pages, want 2 scanned pages", got)
	}
}

func TestApp_ScanFinishingAfterSwitchKeepsOtherProject(t *testing.T) {
	app, store, src := newTestApp(t)
	ctx := context.Background()
	open(t, app, store, "a")

	beginScan(t, app)

	// Leave A while its scan is blocked and open B
	app.Update(views.SwitchToProjectsMsg{})
	open(t, app, store, "b")

	close(src.release)
	done := drainScan(t, app)
	if done.err != nil {
		t.Fatalf("scan error = %v", done.err)
	}

	if app.session == nil || app.session.ID != "b" {
		t.Fatal("project B should still be open")
	}
	state := app.session.State
	if state.Config.ProjectName != "Project B" {
		t.Errorf("open project name = %q, want Project B", state.Config.ProjectName)
	}
	if len(state.Pages) != 1 || state.Pages[0].ID != "9" {
		t.Errorf("open project pages = %+v, want B's own page", state.Pages)
	}

	// An edit to B followed by closing must not write A's content under B
	app.session.Apply(domain.AddTag{PageID: "9", Tag: domain.TagLocationHub})
	app.Update(views.SwitchToProjectsMsg{})

	b, err := store.Load(ctx, "b")
	if err != nil {
		t.Fatalf("Load(b) error = %v", err)
	}
	if b.Config.ProjectName != "Project B" || b.Config.SiteURL != "https://b.example" {
		t.Errorf("stored B config = %+v", b.Config)
	}
	if len(b.Pages) != 1 || !b.Pages[0].HasTag(domain.TagLocationHub) {
		t.Errorf("stored B pages = %+v, want page 9 tagged", b.Pages)
	}

	a, err := store.Load(ctx, "a")
	if err != nil {
		t.Fatalf("Load(a) error = %v", err)
	}
	if len(a.Pages) != 2 {
		t.Errorf("stored A has %d pages, want 2 from the scan", len(a.Pages))
	}
}

func TestApp_ScanProgressIgnoredForOtherProject(t *testing.T) {
	app, store, _ := newTestApp(t)
	open(t, app, store, "b")

	app.Update(scanProgressMsg{id: "a", fetched: 5, total: 10, contentType: "pages"})
	if app.tree.Message != "" {
		t.Errorf("tree message = %q, want none for another project's scan", app.tree.Message)
	}

	app.Update(scanProgressMsg{id: "b", fetched: 5, total: 10, contentType: "pages"})
	if app.tree.Message == "" {
		t.Error("progress for the open project should show in the tree")
	}
}
