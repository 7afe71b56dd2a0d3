package domain

import "strings"

// PracticeArea identifies one of the fixed topical categories a hub's
// descendant pages are checked against
type PracticeArea string

const (
	PersonalInjury     PracticeArea = "personal_injury"
	CarAccident        PracticeArea = "car_accident"
	MotorcycleAccident PracticeArea = "motorcycle_accident"
	PedestrianAccident PracticeArea = "pedestrian_accident"
	SlipAndFall        PracticeArea = "slip_and_fall"
	TruckAccident      PracticeArea = "truck_accident"
	RideshareAccident  PracticeArea = "rideshare_accident"
	WrongfulDeath      PracticeArea = "wrongful_death"
)

// PracticeAreas lists every category in display order
var PracticeAreas = []PracticeArea{
	PersonalInjury,
	CarAccident,
	MotorcycleAccident,
	PedestrianAccident,
	SlipAndFall,
	TruckAccident,
	RideshareAccident,
	WrongfulDeath,
}

// practiceAreaKeywords are lower-cased phrases matched as substrings
var practiceAreaKeywords = map[PracticeArea][]string{
	PersonalInjury: {
		"personal injury",
		"injury law",
		"injury attorney",
		"injury lawyer",
		"bodily injury",
	},
	CarAccident: {
		"car accident",
		"auto accident",
		"vehicle accident",
		"motor vehicle",
		"automobile accident",
		"traffic accident",
	},
	MotorcycleAccident: {
		"motorcycle accident",
		"motorcycle crash",
		"motorcycle injury",
		"motorcycle collision",
		"bike accident",
		"biker accident",
	},
	PedestrianAccident: {
		"pedestrian accident",
		"pedestrian injury",
		"pedestrian crash",
		"pedestrian collision",
		"hit by car",
		"struck pedestrian",
	},
	SlipAndFall: {
		"slip and fall",
		"slip & fall",
		"trip and fall",
		"premises liability",
		"slip fall",
		"fall accident",
		"fall injury",
	},
	TruckAccident: {
		"truck accident",
		"truck crash",
		"truck collision",
		"semi truck",
		"commercial truck",
		"big rig",
		"18 wheeler",
		"tractor trailer",
	},
	RideshareAccident: {
		"rideshare accident",
		"uber accident",
		"lyft accident",
		"rideshare crash",
		"ride share",
		"ridesharing accident",
	},
	WrongfulDeath: {
		"wrongful death",
		"fatal accident",
		"death claim",
		"wrongful death claim",
		"wrongful death lawsuit",
	},
}

var practiceAreaNames = map[PracticeArea]string{
	PersonalInjury:     "Personal Injury",
	CarAccident:        "Car Accident",
	MotorcycleAccident: "Motorcycle Accident",
	PedestrianAccident: "Pedestrian Accident",
	SlipAndFall:        "Slip and Fall",
	TruckAccident:      "Truck Accident",
	RideshareAccident:  "Rideshare Accident",
	WrongfulDeath:      "Wrongful Death",
}

// DisplayName returns the human readable name, e.g. "Slip and Fall"
func (a PracticeArea) DisplayName() string {
	if name, ok := practiceAreaNames[a]; ok {
		return name
	}
	return string(a)
}

// Keywords returns a copy of the area's keyword phrases
func (a PracticeArea) Keywords() []string {
	return append([]string(nil), practiceAreaKeywords[a]...)
}

// IsValid reports whether a is one of the fixed categories
func (a PracticeArea) IsValid() bool {
	_, ok := practiceAreaKeywords[a]
	return ok
}

// ParsePracticeArea accepts a key ("car_accident") or a display name
// ("Car Accident"), case-insensitively
func ParsePracticeArea(s string) (PracticeArea, bool) {
	s = strings.TrimSpace(s)
	for _, a := range PracticeAreas {
		if strings.EqualFold(s, string(a)) || strings.EqualFold(s, a.DisplayName()) {
			return a, true
		}
	}
	return "", false
}

// Matches reports whether text contains any keyword of the area
func (a PracticeArea) Matches(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range practiceAreaKeywords[a] {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// PracticeAreaPage is the completeness record of one (location, category) cell
type PracticeAreaPage struct {
	Exists         bool   `json:"exists"`
	PageID         string `json:"page_id,omitempty"`
	ManualURL      string `json:"manual_url,omitempty"`
	ManualOverride bool   `json:"manual_override,omitempty"`
	Comment        string `json:"comment,omitempty"`
	Optimized      bool   `json:"optimized,omitempty"`
}

// PracticeAreaPages maps every category to its record
type PracticeAreaPages map[PracticeArea]PracticeAreaPage

// EmptyPracticeAreas returns a record with every category absent
func EmptyPracticeAreas() PracticeAreaPages {
	pages := make(PracticeAreaPages, len(PracticeAreas))
	for _, a := range PracticeAreas {
		pages[a] = PracticeAreaPage{}
	}
	return pages
}

// Clone returns an independent copy
func (p PracticeAreaPages) Clone() PracticeAreaPages {
	out := make(PracticeAreaPages, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// FindPracticeAreaPages classifies the hub and its transitive children.
// For each category the first member, hub first and then descendants in
// pre-order, whose title or slug contains a keyword is recorded. An unknown
// hub yields an all-absent record.
func FindPracticeAreaPages(hubID string, nodes []SiteNode) PracticeAreaPages {
	related := hubSubtree(hubID, nodes)
	result := EmptyPracticeAreas()
	if related == nil {
		return result
	}

	for _, area := range PracticeAreas {
		if page := firstMatching(related, area); page != nil {
			result[area] = PracticeAreaPage{Exists: true, PageID: page.ID}
		}
	}
	return result
}

// CheckPageExists classifies a single category for a hub
func CheckPageExists(hubID string, nodes []SiteNode, area PracticeArea) (bool, string) {
	if hubID == "" {
		return false, ""
	}
	related := hubSubtree(hubID, nodes)
	if page := firstMatching(related, area); page != nil {
		return true, page.ID
	}
	return false, ""
}

func hubSubtree(hubID string, nodes []SiteNode) []SiteNode {
	hub := FindNodeInList(nodes, hubID)
	if hub == nil {
		return nil
	}
	return append([]SiteNode{*hub}, Descendants(nodes, hubID)...)
}

func firstMatching(nodes []SiteNode, area PracticeArea) *SiteNode {
	for i := range nodes {
		if area.Matches(nodes[i].Title) || area.Matches(nodes[i].Slug) {
			return &nodes[i]
		}
	}
	return nil
}
