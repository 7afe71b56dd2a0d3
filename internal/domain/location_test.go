package domain

import (
	"slices"
	"testing"
)

func TestNormalizeLocation(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  San   Francisco ,CA", "San Francisco, CA"},
		{"Austin,TX", "Austin, TX"},
		{"Austin,    TX", "Austin, TX"},
		{"\tNew  York\n", "New York"},
		{"Portland, OR, USA", "Portland, OR, USA"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := NormalizeLocation(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeLocation(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if again := NormalizeLocation(got); again != got {
				t.Errorf("not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestParseLocation(t *testing.T) {
	parsed, ok := ParseLocation("Los Angeles ,  CA")
	if !ok {
		t.Fatal("expected location to parse")
	}
	if parsed.City != "Los Angeles" || parsed.State != "CA" {
		t.Errorf("unexpected parse: %+v", parsed)
	}

	if _, ok := ParseLocation("Downtown"); ok {
		t.Error("expected single-part location not to parse")
	}
}

func TestSearchTerm(t *testing.T) {
	if got := SearchTerm("Los Angeles, CA"); got != "Los Angeles" {
		t.Errorf("expected city, got %q", got)
	}
	if got := SearchTerm("  Downtown   Office "); got != "Downtown Office" {
		t.Errorf("expected normalized full string, got %q", got)
	}
}

func TestSplitLocationLines(t *testing.T) {
	got := SplitLocationLines("Austin, TX\n\n   \n  Dallas, TX  \r\n")
	want := []string{"Austin, TX", "Dallas, TX"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestHubNodes(t *testing.T) {
	nodes := []SiteNode{
		{ID: "1", Type: "page", ManualTags: []string{TagLocationHub}},
		{ID: "2", Type: "office"},
		{ID: "3", Type: "city-page"},
		{ID: "4", Type: "page"},
		{ID: "5", Type: "branch"},
	}

	tests := []struct {
		name    string
		hubType string
		want    []string
	}{
		{"built-in types and tags", "", []string{"1", "2", "5"}},
		{"custom hub type", "city-page", []string{"1", "2", "3", "5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ids(HubNodes(nodes, tt.hubType)); !slices.Equal(got, tt.want) {
				t.Errorf("HubNodes = %v, want %v", got, tt.want)
			}
		})
	}
}
