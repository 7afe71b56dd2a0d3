package domain

import (
	"slices"
	"time"
)

// CurrentVersion is the snapshot format version written on export
const CurrentVersion = "1.0.0"

// HubType says what represents a location hub on the site
type HubType string

const (
	HubTypePage HubType = "page"
	HubTypeCPT  HubType = "cpt"
)

// LocationStructure describes how hubs are organised on the site
type LocationStructure struct {
	HubType      HubType `json:"hub_type"`
	HubCPTName   string  `json:"hub_cpt_name,omitempty"`
	ParentPageID string  `json:"parent_page_id,omitempty"`
}

// ProjectConfig holds the per-project settings
type ProjectConfig struct {
	ProjectName          string             `json:"project_name"`
	SiteURL              string             `json:"wordpress_site_url"`
	SelectedContentTypes []string           `json:"selected_content_types"`
	LocationStructure    *LocationStructure `json:"location_structure"`
	ScanDate             string             `json:"scan_date"`
	Version              string             `json:"version"`
}

// HubTypeName returns the custom hub type name, if hubs are a custom type
func (c ProjectConfig) HubTypeName() string {
	if c.LocationStructure == nil || c.LocationStructure.HubType != HubTypeCPT {
		return ""
	}
	return c.LocationStructure.HubCPTName
}

// ProjectState is the whole-project snapshot persisted and exported
type ProjectState struct {
	Config          ProjectConfig   `json:"config"`
	Pages           []SiteNode      `json:"nodes"`
	Locations       []Location      `json:"gbp_locations"`
	ChecklistItems  []ChecklistItem `json:"checklist_items"`
	TreeExpandedIDs []string        `json:"tree_expanded_ids"`
	SelectedNodeID  *string         `json:"selected_node_id"`
}

// NewProjectState returns an empty project at the current version
func NewProjectState() ProjectState {
	return ProjectState{
		Config: ProjectConfig{
			SelectedContentTypes: []string{},
			Version:              CurrentVersion,
		},
		Pages:           []SiteNode{},
		Locations:       []Location{},
		ChecklistItems:  []ChecklistItem{},
		TreeExpandedIDs: []string{},
	}
}

// IsEmpty reports whether the project has neither a name nor pages
func (s ProjectState) IsEmpty() bool {
	return s.Config.ProjectName == "" && len(s.Pages) == 0
}

// FindChecklistItem returns the item with the given ID, or nil
func (s ProjectState) FindChecklistItem(id string) *ChecklistItem {
	for i := range s.ChecklistItems {
		if s.ChecklistItems[i].ID == id {
			return &s.ChecklistItems[i]
		}
	}
	return nil
}

// FindLocation returns the location with the given ID, or nil
func (s ProjectState) FindLocation(id string) *Location {
	for i := range s.Locations {
		if s.Locations[i].ID == id {
			return &s.Locations[i]
		}
	}
	return nil
}

// Action is a closed set of project state transitions
type Action interface {
	isAction()
}

type (
	InitProject struct{ Config ProjectConfig }
	SetPages    struct{ Pages []SiteNode }
	UpdatePage  struct {
		ID     string
		Title  *string
		Status *PageStatus
		Type   *string
	}
	AddTag struct {
		PageID string
		Tag    string
	}
	RemoveTag struct {
		PageID string
		Tag    string
	}
	SetLocations struct{ Locations []Location }
	AssignHub    struct {
		LocationID string
		HubID      *string
		Confidence int
	}
	SetChecklist        struct{ Items []ChecklistItem }
	UpdateChecklistItem struct {
		ID        string
		Notes     *string
		Completed *bool
	}
	SetPracticeArea struct {
		ItemID    string
		Area      PracticeArea
		PageID    string
		ManualURL string
		Comment   string
		Optimized bool
	}
	ToggleOptimized struct {
		ItemID string
		Area   PracticeArea
	}
	AddChecklistItem        struct{ Item ChecklistItem }
	ImportProject           struct{ State ProjectState }
	ResetProject            struct{}
	SetTreeExpanded         struct{ IDs []string }
	SetSelectedNode         struct{ ID *string }
	UpdateLocationStructure struct{ Structure LocationStructure }
)

func (InitProject) isAction()             {}
func (SetPages) isAction()                {}
func (UpdatePage) isAction()              {}
func (AddTag) isAction()                  {}
func (RemoveTag) isAction()               {}
func (SetLocations) isAction()            {}
func (AssignHub) isAction()               {}
func (SetChecklist) isAction()            {}
func (UpdateChecklistItem) isAction()     {}
func (SetPracticeArea) isAction()         {}
func (ToggleOptimized) isAction()         {}
func (AddChecklistItem) isAction()        {}
func (ImportProject) isAction()           {}
func (ResetProject) isAction()            {}
func (SetTreeExpanded) isAction()         {}
func (SetSelectedNode) isAction()         {}
func (UpdateLocationStructure) isAction() {}

// Reduce applies an action and returns the new state. The input state is
// never mutated; references to unknown IDs leave the state unchanged.
// now stamps last_updated on edited checklist items.
func Reduce(state ProjectState, action Action, now time.Time) ProjectState {
	switch a := action.(type) {
	case InitProject:
		next := NewProjectState()
		next.Config = a.Config
		if next.Config.Version == "" {
			next.Config.Version = CurrentVersion
		}
		return next

	case SetPages:
		state.Pages = slices.Clone(a.Pages)
		return state

	case UpdatePage:
		state.Pages = mapPages(state.Pages, a.ID, func(n SiteNode) SiteNode {
			if a.Title != nil {
				n.Title = *a.Title
			}
			if a.Status != nil {
				n.Status = *a.Status
			}
			if a.Type != nil {
				n.Type = *a.Type
			}
			return n
		})
		return state

	case AddTag:
		state.Pages = mapPages(state.Pages, a.PageID, func(n SiteNode) SiteNode {
			if !n.HasTag(a.Tag) {
				n.ManualTags = append(slices.Clone(n.ManualTags), a.Tag)
			}
			return n
		})
		return state

	case RemoveTag:
		state.Pages = mapPages(state.Pages, a.PageID, func(n SiteNode) SiteNode {
			n.ManualTags = slices.DeleteFunc(slices.Clone(n.ManualTags), func(t string) bool {
				return t == a.Tag
			})
			return n
		})
		return state

	case SetLocations:
		state.Locations = slices.Clone(a.Locations)
		return state

	case AssignHub:
		locations := slices.Clone(state.Locations)
		for i := range locations {
			if locations[i].ID != a.LocationID {
				continue
			}
			var hub *string
			if a.HubID != nil && *a.HubID != "" {
				id := *a.HubID
				hub = &id
			}
			locations[i].MatchedHubID = hub
			locations[i].ConfidenceScore = a.Confidence
			locations[i].ManualOverride = true
		}
		state.Locations = locations
		return state

	case SetChecklist:
		state.ChecklistItems = slices.Clone(a.Items)
		return state

	case UpdateChecklistItem:
		state.ChecklistItems = mapItems(state.ChecklistItems, a.ID, func(item ChecklistItem) ChecklistItem {
			if a.Notes != nil {
				item.Notes = *a.Notes
			}
			if a.Completed != nil {
				item.Completed = *a.Completed
			}
			item.LastUpdated = now
			return item
		})
		return state

	case SetPracticeArea:
		if !a.Area.IsValid() {
			return state
		}
		state.ChecklistItems = mapItems(state.ChecklistItems, a.ItemID, func(item ChecklistItem) ChecklistItem {
			item.PracticeAreas[a.Area] = ManualPracticeArea(a.PageID, a.ManualURL, a.Comment, a.Optimized)
			item.LastUpdated = now
			return item
		})
		return state

	case ToggleOptimized:
		if !a.Area.IsValid() {
			return state
		}
		state.ChecklistItems = mapItems(state.ChecklistItems, a.ItemID, func(item ChecklistItem) ChecklistItem {
			page := item.PracticeAreas[a.Area]
			page.Optimized = !page.Optimized
			item.PracticeAreas[a.Area] = page
			item.LastUpdated = now
			return item
		})
		return state

	case AddChecklistItem:
		state.ChecklistItems = append(slices.Clone(state.ChecklistItems), a.Item.Clone())
		return state

	case ImportProject:
		return a.State

	case ResetProject:
		return NewProjectState()

	case SetTreeExpanded:
		state.TreeExpandedIDs = slices.Clone(a.IDs)
		return state

	case SetSelectedNode:
		state.SelectedNodeID = a.ID
		return state

	case UpdateLocationStructure:
		structure := a.Structure
		state.Config.LocationStructure = &structure
		return state
	}
	return state
}

// ManualPracticeArea builds a user-set record. A page ID takes precedence
// over a manual URL; the record exists when either is set.
func ManualPracticeArea(pageID, manualURL, comment string, optimized bool) PracticeAreaPage {
	if pageID != "" {
		manualURL = ""
	}
	return PracticeAreaPage{
		Exists:         pageID != "" || manualURL != "",
		PageID:         pageID,
		ManualURL:      manualURL,
		ManualOverride: true,
		Comment:        comment,
		Optimized:      optimized,
	}
}

func mapPages(pages []SiteNode, id string, fn func(SiteNode) SiteNode) []SiteNode {
	out := slices.Clone(pages)
	for i := range out {
		if out[i].ID == id {
			out[i] = fn(out[i])
		}
	}
	return out
}

func mapItems(items []ChecklistItem, id string, fn func(ChecklistItem) ChecklistItem) []ChecklistItem {
	out := slices.Clone(items)
	for i := range out {
		if out[i].ID == id {
			out[i] = fn(out[i].Clone())
		}
	}
	return out
}
