package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// ChecklistItem tracks hub existence and category completeness for one location
type ChecklistItem struct {
	ID            string            `json:"id"`
	Location      string            `json:"location"`
	HubID         *string           `json:"hub_id"`
	HubExists     bool              `json:"hub_exists"`
	PracticeAreas PracticeAreaPages `json:"practice_areas"`
	Notes         string            `json:"notes"`
	Completed     bool              `json:"completed"`
	LastUpdated   time.Time         `json:"last_updated"`
}

// Clone returns a copy that shares no mutable state with the original
func (c ChecklistItem) Clone() ChecklistItem {
	out := c
	out.PracticeAreas = c.PracticeAreas.Clone()
	if c.HubID != nil {
		id := *c.HubID
		out.HubID = &id
	}
	return out
}

// Area returns the record for one category, absent when missing
func (c ChecklistItem) Area(a PracticeArea) PracticeAreaPage {
	return c.PracticeAreas[a]
}

// ChecklistGenerator derives checklist items from matched locations.
// NewID and Now default to random UUIDs and the wall clock.
type ChecklistGenerator struct {
	NewID func() string
	Now   func() time.Time
}

func (g ChecklistGenerator) id() string {
	if g.NewID != nil {
		return g.NewID()
	}
	return uuid.NewString()
}

func (g ChecklistGenerator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now().UTC()
}

// Generate produces one fresh item per location. The result is meant to
// replace the previous checklist wholesale; manual edits on earlier items
// are not carried over.
func (g ChecklistGenerator) Generate(locations []Location, nodes []SiteNode) []ChecklistItem {
	items := make([]ChecklistItem, 0, len(locations))
	for _, loc := range locations {
		item := g.NewItem(loc.LocationString)
		if hubID := loc.HubID(); hubID != "" {
			item.HubID = &hubID
			item.HubExists = true
			item.PracticeAreas = FindPracticeAreaPages(hubID, nodes)
		}
		items = append(items, item)
	}
	return items
}

// NewItem creates a manual row with no hub and every category absent
func (g ChecklistGenerator) NewItem(location string) ChecklistItem {
	return ChecklistItem{
		ID:            g.id(),
		Location:      location,
		PracticeAreas: EmptyPracticeAreas(),
		LastUpdated:   g.now(),
	}
}

// GenerateChecklist uses the default generator
func GenerateChecklist(locations []Location, nodes []SiteNode) []ChecklistItem {
	return ChecklistGenerator{}.Generate(locations, nodes)
}

// ChecklistStats aggregates completeness across a checklist
type ChecklistStats struct {
	Total                int                  `json:"total"`
	Completed            int                  `json:"completed"`
	CompletionPercentage int                  `json:"completion_percentage"`
	HubsExist            int                  `json:"hubs_exist"`
	HubsPercentage       int                  `json:"hubs_percentage"`
	PracticeAreaCounts   map[PracticeArea]int `json:"practice_area_counts"`
	TotalRequired        int                  `json:"total_required"`
	TotalExists          int                  `json:"total_exists"`
	OverallPercentage    int                  `json:"overall_percentage"`
}

// CalculateStats counts completed items, existing hubs and existing
// categories. Every location requires a hub plus every category.
func CalculateStats(items []ChecklistItem) ChecklistStats {
	stats := ChecklistStats{
		Total:              len(items),
		PracticeAreaCounts: make(map[PracticeArea]int, len(PracticeAreas)),
	}
	for _, a := range PracticeAreas {
		stats.PracticeAreaCounts[a] = 0
	}

	for _, item := range items {
		if item.Completed {
			stats.Completed++
		}
		if item.HubExists {
			stats.HubsExist++
		}
		for _, a := range PracticeAreas {
			if item.PracticeAreas[a].Exists {
				stats.PracticeAreaCounts[a]++
			}
		}
	}

	stats.TotalRequired = stats.Total * (1 + len(PracticeAreas))
	stats.TotalExists = stats.HubsExist
	for _, n := range stats.PracticeAreaCounts {
		stats.TotalExists += n
	}

	stats.CompletionPercentage = percentage(stats.Completed, stats.Total)
	stats.HubsPercentage = percentage(stats.HubsExist, stats.Total)
	stats.OverallPercentage = percentage(stats.TotalExists, stats.TotalRequired)
	return stats
}

func percentage(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}
