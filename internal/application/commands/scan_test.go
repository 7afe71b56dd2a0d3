package commands

import (
	"context"
	"errors"
	"slices"
	"testing"

	"mapmyfirm/internal/application"
	"mapmyfirm/internal/domain"
)

func paginatedSource() *fakeSource {
	return &fakeSource{
		types: []domain.ContentType{
			{Slug: "page", Name: "Pages", RestBase: "pages", Hierarchical: true},
			{Slug: "post", Name: "Posts", RestBase: "posts"},
		},
		pages: map[string][][]domain.SiteNode{
			"pages": {
				{{ID: "1", Title: "Home"}, {ID: "2", Title: "About"}},
				{{ID: "3", Title: "Contact"}},
			},
			"posts": {
				{{ID: "10", Title: "News"}},
			},
		},
	}
}

func TestScanSiteCommand_Paginates(t *testing.T) {
	source := paginatedSource()
	type progress struct {
		fetched, total int
		ct             string
	}
	var calls []progress

	cmd := NewScanSiteCommand(source, []string{"pages", "post"})
	cmd.Progress = func(fetched, total int, ct string) {
		calls = append(calls, progress{fetched, total, ct})
	}

	nodes, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	gotIDs := make([]string, len(nodes))
	for i, n := range nodes {
		gotIDs[i] = n.ID
	}
	if !slices.Equal(gotIDs, []string{"1", "2", "3", "10"}) {
		t.Errorf("unexpected node order %v", gotIDs)
	}
	if !slices.Equal(source.fetches, []string{"pages:1", "pages:2", "posts:1"}) {
		t.Errorf("unexpected fetch sequence %v", source.fetches)
	}

	want := []progress{{2, 3, "pages"}, {3, 3, "pages"}, {1, 1, "posts"}}
	if !slices.Equal(calls, want) {
		t.Errorf("progress = %v, want %v", calls, want)
	}
}

func TestScanSiteCommand_AbortsOnError(t *testing.T) {
	source := paginatedSource()
	source.failOn = "pages:2"

	_, err := NewScanSiteCommand(source, []string{"pages", "posts"}).Execute(context.Background())
	if err == nil || !contains(err.Error(), "page 2") {
		t.Fatalf("expected page 2 failure, got %v", err)
	}
	if slices.Contains(source.fetches, "posts:1") {
		t.Error("expected scan to stop after the failure")
	}
}

func TestScanSiteCommand_UnknownType(t *testing.T) {
	_, err := NewScanSiteCommand(paginatedSource(), []string{"products"}).Execute(context.Background())

	var valErr *application.ValidationError
	if !errors.As(err, &valErr) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestScanProjectCommand_KeepsTags(t *testing.T) {
	store, id := seededStore(t)
	ctx := context.Background()

	if _, err := NewTagCommand(store, id, "1", domain.TagLocationHub).Execute(ctx); err != nil {
		t.Fatal(err)
	}

	source := &fakeSource{
		types: []domain.ContentType{{Slug: "page", RestBase: "pages"}},
		pages: map[string][][]domain.SiteNode{
			"pages": {{{ID: "1", Title: "LA Office"}, {ID: "9", Title: "New Page"}}},
		},
	}

	result, err := NewScanProjectCommand(store, source, id).Execute(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if result.PageCount != 2 {
		t.Errorf("expected 2 pages, got %d", result.PageCount)
	}
	if result.State.Config.ScanDate == "" {
		t.Error("expected scan date recorded")
	}

	page := domain.FindNodeInList(result.State.Pages, "1")
	if page.Title != "LA Office" || !page.HasTag(domain.TagLocationHub) {
		t.Errorf("expected refreshed title with tag kept, got %+v", page)
	}
}
