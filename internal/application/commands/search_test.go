package commands

import (
	"context"
	"testing"

	"mapmyfirm/internal/domain"
)

func TestFuzzyScore(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		query     string
		wantScore int
		wantMin   int // use this for relative comparisons
	}{
		{
			name:      "exact match",
			target:    "Austin",
			query:     "Austin",
			wantScore: 150, // 100 for contains + 50 for prefix
		},
		{
			name:      "prefix match",
			target:    "Austin Office",
			query:     "austin",
			wantScore: 150,
		},
		{
			name:      "substring match",
			target:    "North Austin",
			query:     "austin",
			wantScore: 100,
		},
		{
			name:    "chars in order after separators",
			target:  "car-accident-lawyer",
			query:   "cal",
			wantMin: 1,
		},
		{
			name:      "no match",
			target:    "Austin",
			query:     "xyz",
			wantScore: 0,
		},
		{
			name:      "empty query",
			target:    "Austin",
			query:     "",
			wantScore: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := FuzzyScore(tt.target, tt.query)

			switch {
			case tt.wantScore > 0:
				if score != tt.wantScore {
					t.Errorf("expected score %d, got %d", tt.wantScore, score)
				}
			case tt.wantMin > 0:
				if score < tt.wantMin {
					t.Errorf("expected score >= %d, got %d", tt.wantMin, score)
				}
			default:
				if score != 0 {
					t.Errorf("expected score 0, got %d", score)
				}
			}
		})
	}
}

func TestSearchPages_Ranking(t *testing.T) {
	pages := []domain.SiteNode{
		{ID: "1", Title: "Contact", Slug: "contact", URL: "https://x.test/austin-contact/"},
		{ID: "2", Title: "North Austin", Slug: "north-austin", URL: "https://x.test/north-austin/"},
		{ID: "3", Title: "Austin Office", Slug: "austin", URL: "https://x.test/austin/", Type: "location"},
		{ID: "4", Title: "Dallas", Slug: "dallas", URL: "https://x.test/dallas/"},
	}

	got := SearchPages(pages, "austin", domain.TreeFilter{})

	if len(got) != 3 {
		t.Fatalf("expected 3 results, got %d", len(got))
	}
	if got[0].ID != "3" {
		t.Errorf("expected prefix title match first, got %s", got[0].ID)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Errorf("results not sorted by score at %d", i)
		}
	}

	filtered := SearchPages(pages, "austin", domain.TreeFilter{Types: []string{"location"}})
	if len(filtered) != 1 || filtered[0].ID != "3" {
		t.Errorf("expected type filter to keep page 3, got %+v", filtered)
	}
}

func TestSearchPagesCommand(t *testing.T) {
	store, id := seededStore(t)

	got, err := NewSearchPagesCommand(store, id, "san diego").Execute(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "3" {
		t.Errorf("expected page 3, got %+v", got)
	}
}
