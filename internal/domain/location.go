package domain

import (
	"regexp"
	"strings"
)

// Location is one free-text business location and its matched hub
type Location struct {
	ID              string  `json:"id"`
	LocationString  string  `json:"location_string"` // e.g. "San Francisco, CA"
	MatchedHubID    *string `json:"matched_hub_id"`
	ConfidenceScore int     `json:"confidence_score"` // 0-100
	ManualOverride  bool    `json:"manual_override"`
}

// HubID returns the matched hub ID or "" when unmatched
func (l Location) HubID() string {
	if l.MatchedHubID == nil {
		return ""
	}
	return *l.MatchedHubID
}

// ParsedLocation is a location split into city and state/region
type ParsedLocation struct {
	City  string
	State string
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	commaSpacing  = regexp.MustCompile(`,\s*`)
)

// NormalizeLocation trims, collapses whitespace runs, and normalizes
// comma spacing to ", ". It is idempotent.
func NormalizeLocation(location string) string {
	s := strings.TrimSpace(location)
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, " ,", ",")
	s = commaSpacing.ReplaceAllString(s, ", ")
	return strings.TrimSpace(s)
}

// ParseLocation splits a location on commas. With at least two parts the
// first is the city and the second the state; otherwise ok is false.
func ParseLocation(location string) (ParsedLocation, bool) {
	parts := strings.Split(NormalizeLocation(location), ",")
	if len(parts) < 2 {
		return ParsedLocation{}, false
	}
	return ParsedLocation{
		City:  strings.TrimSpace(parts[0]),
		State: strings.TrimSpace(parts[1]),
	}, true
}

// SearchTerm returns the query used for matching: the city when the
// location parses, else the whole normalized string
func SearchTerm(location string) string {
	if parsed, ok := ParseLocation(location); ok {
		return parsed.City
	}
	return NormalizeLocation(location)
}

// SplitLocationLines turns newline-separated input into trimmed,
// non-empty location strings
func SplitLocationLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// builtinHubTypes are content types treated as hubs without tagging
var builtinHubTypes = []string{"location", "office", "branch"}

// IsHubCandidate reports whether a node may represent a location hub:
// tagged "Location Hub", of the configured hub type, or of a built-in
// location-like type
func IsHubCandidate(n SiteNode, hubTypeName string) bool {
	if n.HasTag(TagLocationHub) {
		return true
	}
	if hubTypeName != "" && n.Type == hubTypeName {
		return true
	}
	return containsString(builtinHubTypes, n.Type)
}

// HubNodes filters the collection down to hub candidates
func HubNodes(nodes []SiteNode, hubTypeName string) []SiteNode {
	var hubs []SiteNode
	for _, n := range nodes {
		if IsHubCandidate(n, hubTypeName) {
			hubs = append(hubs, n)
		}
	}
	return hubs
}
