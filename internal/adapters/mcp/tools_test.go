package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"mapmyfirm/internal/adapters/memstore"
	"mapmyfirm/internal/domain"
)

func ptr(s string) *string { return &s }

func seededStore(t *testing.T) *memstore.Store {
	t.Helper()

	state := domain.NewProjectState()
	state.Config.ProjectName = "Acme Law"
	state.Config.SiteURL = "https://firm.test"
	state.Pages = []domain.SiteNode{
		{ID: "1", Title: "Los Angeles Office", Slug: "los-angeles", URL: "https://firm.test/los-angeles/", Type: "location", Status: domain.StatusPublish},
		{ID: "2", Title: "Car Accident Lawyer", Slug: "car-accident", URL: "https://firm.test/los-angeles/car-accident/", ParentID: ptr("1"), Type: "page", Status: domain.StatusDraft},
		{ID: "3", Title: "San Diego Office", Slug: "san-diego", URL: "https://firm.test/san-diego/", Type: "location", Status: domain.StatusPublish, ManualTags: []string{domain.TagLocationHub}},
	}

	store := memstore.New()
	if err := store.Save(context.Background(), "p1", state); err != nil {
		t.Fatal(err)
	}
	return store
}

func call(t *testing.T, h server.ToolHandlerFunc, args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args

	res, err := h(context.Background(), req)
	if err != nil {
		t.Fatalf("handler returned protocol error: %v", err)
	}
	return firstText(res), res.IsError
}

func TestListProjects(t *testing.T) {
	text, isErr := call(t, listProjectsHandler(seededStore(t)), nil)
	if isErr || !strings.Contains(text, "p1  Acme Law  https://firm.test  3 pages") {
		t.Errorf("unexpected listing %q", text)
	}

	text, _ = call(t, listProjectsHandler(memstore.New()), nil)
	if text != "No results." {
		t.Errorf("expected empty listing, got %q", text)
	}
}

func TestTree(t *testing.T) {
	text, isErr := call(t, treeHandler(seededStore(t)), map[string]any{"project_id": "p1"})
	if isErr {
		t.Fatalf("unexpected error %q", text)
	}

	want := "1 Los Angeles Office\n" +
		"  2 Car Accident Lawyer (draft)\n" +
		"3 San Diego Office [Location Hub]\n"
	if text != want {
		t.Errorf("unexpected tree:\n%s\nwant:\n%s", text, want)
	}
}

func TestTree_Errors(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"missing id", map[string]any{}, "project ID is required"},
		{"unknown project", map[string]any{"project_id": "nope"}, "not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, isErr := call(t, treeHandler(seededStore(t)), tt.args)
			if !isErr || !strings.Contains(text, tt.want) {
				t.Errorf("expected error containing %q, got %q (isError=%v)", tt.want, text, isErr)
			}
		})
	}
}

func TestSearchPages(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		wantIDs []string
	}{
		{"by term", map[string]any{"project_id": "p1", "query": "car"}, []string{"2"}},
		{"by type", map[string]any{"project_id": "p1", "type": "location"}, []string{"1", "3"}},
		{"by tag", map[string]any{"project_id": "p1", "tag": "Location Hub"}, []string{"3"}},
		{"no match", map[string]any{"project_id": "p1", "query": "divorce"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, isErr := call(t, searchPagesHandler(seededStore(t)), tt.args)
			if isErr {
				t.Fatalf("unexpected error %q", text)
			}
			if len(tt.wantIDs) == 0 {
				if text != "No results found." {
					t.Errorf("expected no results, got %q", text)
				}
				return
			}
			lines := strings.Split(strings.TrimSpace(text), "\n")
			if len(lines) != len(tt.wantIDs) {
				t.Fatalf("expected %d results, got %q", len(tt.wantIDs), text)
			}
			for i, id := range tt.wantIDs {
				if !strings.HasPrefix(lines[i], id+"  ") {
					t.Errorf("result %d: expected page %s, got %q", i, id, lines[i])
				}
			}
		})
	}
}

func TestMatchGenerateAndStats(t *testing.T) {
	store := seededStore(t)

	text, isErr := call(t, matchLocationsHandler(store, nil), map[string]any{
		"project_id": "p1",
		"locations":  "Los Angeles, CA\n\n  Boise, ID  \n",
	})
	if isErr {
		t.Fatalf("match failed: %q", text)
	}
	if !strings.HasPrefix(text, "Matched 1 of 2 locations") {
		t.Errorf("unexpected match summary %q", text)
	}
	if !strings.Contains(text, "Boise, ID  (no hub)") {
		t.Errorf("expected unmatched Boise, got %q", text)
	}

	text, isErr = call(t, generateChecklistHandler(store), map[string]any{"project_id": "p1"})
	if isErr {
		t.Fatalf("generate failed: %q", text)
	}
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 checklist rows, got %q", text)
	}
	if !strings.Contains(lines[0], "Los Angeles, CA  hub 1  missing: personal_injury") ||
		strings.Contains(lines[0], "car_accident") {
		t.Errorf("unexpected first row %q", lines[0])
	}

	text, _ = call(t, checklistStatsHandler(store), map[string]any{"project_id": "p1"})
	for _, want := range []string{"Locations: 2 (0 completed, 0%)", "Hubs: 1 of 2 (50%)", "Car Accident: 1 of 2", "Overall: 2 of 18 pages (11%)"} {
		if !strings.Contains(text, want) {
			t.Errorf("stats missing %q:\n%s", want, text)
		}
	}
}

func TestSetPracticeAreaAndExport(t *testing.T) {
	store := seededStore(t)
	call(t, matchLocationsHandler(store, nil), map[string]any{"project_id": "p1", "locations": "Los Angeles, CA"})
	call(t, generateChecklistHandler(store), map[string]any{"project_id": "p1"})

	state, _ := store.Load(context.Background(), "p1")
	itemID := state.ChecklistItems[0].ID

	text, isErr := call(t, setPracticeAreaHandler(store), map[string]any{
		"project_id": "p1",
		"item_id":    itemID,
		"area":       "Wrongful Death",
		"url":        "https://other.test/wrongful-death",
		"optimized":  true,
	})
	if isErr {
		t.Fatalf("set failed: %q", text)
	}

	state, _ = store.Load(context.Background(), "p1")
	rec := state.ChecklistItems[0].Area(domain.WrongfulDeath)
	if !rec.Exists || rec.ManualURL != "https://other.test/wrongful-death" || !rec.Optimized {
		t.Errorf("unexpected record %+v", rec)
	}

	_, isErr = call(t, setPracticeAreaHandler(store), map[string]any{"project_id": "p1", "item_id": itemID, "area": "divorce"})
	if !isErr {
		t.Error("expected unknown area to fail")
	}

	text, _ = call(t, exportCSVHandler(store), map[string]any{"project_id": "p1"})
	rows := strings.Split(text, "\n")
	if len(rows) != 2 {
		t.Fatalf("expected header and one row, got %q", text)
	}
	if rows[1] != `"Los Angeles, CA","Yes","No","Yes","No","No","No","No","No","Yes","No",""` {
		t.Errorf("unexpected CSV row %s", rows[1])
	}
}
