package domain

import (
	"math"

	"github.com/google/uuid"
)

// Hub matching weights and threshold. A field participates in a match when
// its normalized edit dissimilarity is at most HubMatchThreshold.
const (
	TitleWeight       = 0.5
	SlugWeight        = 0.3
	URLWeight         = 0.2
	HubMatchThreshold = 0.4
)

// HubScorer is the weighted multi-field scorer used for hub matching
var HubScorer = FuzzyScorer{
	Fields: []WeightedField{
		{Name: "title", Weight: TitleWeight},
		{Name: "slug", Weight: SlugWeight},
		{Name: "url", Weight: URLWeight},
	},
	Threshold: HubMatchThreshold,
}

// HubMatch is the best hub for one query
type HubMatch struct {
	HubID      string
	Score      float64 // 0 is a perfect match
	Confidence int     // 0-100
}

// BestHub scores every candidate and returns the lowest-scoring one that
// clears the threshold. Ties keep the earlier candidate.
func BestHub(query string, candidates []SiteNode) (HubMatch, bool) {
	var best HubMatch
	found := false
	for _, c := range candidates {
		score, ok := HubScorer.Score(query, []string{c.Title, c.Slug, c.URL})
		if !ok {
			continue
		}
		if !found || score < best.Score {
			best = HubMatch{HubID: c.ID, Score: score}
			found = true
		}
	}
	if !found {
		return HubMatch{}, false
	}
	best.Confidence = int(math.Round((1 - best.Score) * 100))
	return best, true
}

// LocationMatcher fuzzy-matches free-text locations against hub candidates.
// Every location is matched independently; two locations may share a hub.
type LocationMatcher struct {
	// HubTypeName is the caller's hub content type, may be empty
	HubTypeName string
	// NewID generates location IDs; defaults to random UUIDs
	NewID func() string
}

// NewLocationMatcher creates a matcher for the given hub content type
func NewLocationMatcher(hubTypeName string) *LocationMatcher {
	return &LocationMatcher{HubTypeName: hubTypeName}
}

func (m *LocationMatcher) newID() string {
	if m.NewID != nil {
		return m.NewID()
	}
	return uuid.NewString()
}

// Match returns one Location per input string, in input order. Unmatched
// locations carry a nil hub and confidence 0.
func (m *LocationMatcher) Match(locations []string, nodes []SiteNode) []Location {
	hubs := HubNodes(nodes, m.HubTypeName)

	result := make([]Location, 0, len(locations))
	for _, raw := range locations {
		loc := Location{
			ID:             m.newID(),
			LocationString: NormalizeLocation(raw),
		}
		if len(hubs) > 0 {
			if match, ok := BestHub(SearchTerm(raw), hubs); ok {
				hubID := match.HubID
				loc.MatchedHubID = &hubID
				loc.ConfidenceScore = match.Confidence
			}
		}
		result = append(result, loc)
	}
	return result
}

// MatchLocations matches with a default matcher
func MatchLocations(locations []string, nodes []SiteNode, hubTypeName string) []Location {
	return NewLocationMatcher(hubTypeName).Match(locations, nodes)
}

// FindBestMatch picks the hub whose title or slug is most similar to the
// location by CalculateSimilarity. It serves single-location re-matching.
func FindBestMatch(location string, nodes []SiteNode, hubTypeName string) (string, int) {
	hubs := HubNodes(nodes, hubTypeName)
	if len(hubs) == 0 {
		return "", 0
	}

	term := SearchTerm(location)
	bestID := ""
	bestScore := 0.0
	for _, hub := range hubs {
		score := math.Max(CalculateSimilarity(term, hub.Title), CalculateSimilarity(term, hub.Slug))
		if score > bestScore {
			bestScore = score
			bestID = hub.ID
		}
	}
	return bestID, int(math.Round(bestScore))
}
