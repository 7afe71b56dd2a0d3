package commands

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"mapmyfirm/internal/adapters/memstore"
	"mapmyfirm/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}

func sitePages() []domain.SiteNode {
	return []domain.SiteNode{
		{ID: "1", Title: "Los Angeles Office", Slug: "los-angeles", URL: "https://firm.test/los-angeles/", Type: "location"},
		{ID: "2", Title: "Car Accident Lawyer", Slug: "car-accident", URL: "https://firm.test/los-angeles/car-accident/", ParentID: ptr("1"), Type: "page"},
		{ID: "3", Title: "San Diego Office", Slug: "san-diego", URL: "https://firm.test/san-diego/", Type: "location"},
	}
}

// seededStore returns a store holding one scanned project
func seededStore(t *testing.T) (*memstore.Store, string) {
	t.Helper()

	state := domain.NewProjectState()
	state.Config.ProjectName = "Acme Law"
	state.Config.SiteURL = "https://firm.test"
	state.Config.SelectedContentTypes = []string{"pages"}
	state.Pages = sitePages()

	store := memstore.New()
	if err := store.Save(context.Background(), "p1", state); err != nil {
		t.Fatal(err)
	}
	return store, "p1"
}

// fakeSource serves fixed content types and paginated nodes
type fakeSource struct {
	types   []domain.ContentType
	pages   map[string][][]domain.SiteNode // rest base -> pages
	failOn  string                         // "rest_base:page"
	fetches []string
}

func (f *fakeSource) ContentTypes(ctx context.Context) ([]domain.ContentType, error) {
	return f.types, nil
}

func (f *fakeSource) FetchPage(ctx context.Context, ct domain.ContentType, page, perPage int) (domain.PageBatch, error) {
	key := fmt.Sprintf("%s:%d", ct.RestBase, page)
	f.fetches = append(f.fetches, key)
	if key == f.failOn {
		return domain.PageBatch{}, fmt.Errorf("500 Internal Server Error")
	}

	all := f.pages[ct.RestBase]
	total := 0
	for _, p := range all {
		total += len(p)
	}
	if page > len(all) {
		return domain.PageBatch{TotalPages: len(all), Total: total}, nil
	}
	return domain.PageBatch{Nodes: all[page-1], TotalPages: len(all), Total: total}, nil
}

func (f *fakeSource) Ping(ctx context.Context) error { return nil }
