package commands

import (
	"context"
	"fmt"
	"log/slog"

	"mapmyfirm/internal/application"
	"mapmyfirm/internal/domain"
	"mapmyfirm/internal/ports"
)

// MatchLocationsResult contains matched locations and a summary
type MatchLocationsResult struct {
	Locations []domain.Location
	Matched   int
	Message   string
}

// MatchLocationsCommand matches location strings against a project's hubs
// and replaces the project's location list
type MatchLocationsCommand struct {
	store     ports.ProjectStore
	ProjectID string
	Lines     []string
	// HubTypeName overrides the project's configured custom hub type
	HubTypeName string
	Log         *slog.Logger
}

// NewMatchLocationsCommand creates a new MatchLocationsCommand
func NewMatchLocationsCommand(store ports.ProjectStore, projectID string, lines []string) *MatchLocationsCommand {
	return &MatchLocationsCommand{store: store, ProjectID: projectID, Lines: lines}
}

// Validate checks if the match can run
func (c *MatchLocationsCommand) Validate() error {
	if err := application.ValidateRequired("projectID", c.ProjectID); err != nil {
		return err
	}
	for _, l := range c.Lines {
		if domain.NormalizeLocation(l) != "" {
			return nil
		}
	}
	return &application.ValidationError{Field: "locations", Message: "at least one location is required"}
}

// Execute runs the match command
func (c *MatchLocationsCommand) Execute(ctx context.Context) (*MatchLocationsResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var locations []domain.Location
	_, err := update(ctx, c.store, c.ProjectID, func(s domain.ProjectState) (domain.ProjectState, error) {
		hubType := c.HubTypeName
		if hubType == "" {
			hubType = s.Config.HubTypeName()
		} else if hubType != s.Config.HubTypeName() {
			structure := domain.LocationStructure{HubType: domain.HubTypeCPT, HubCPTName: hubType}
			if prev := s.Config.LocationStructure; prev != nil {
				structure.ParentPageID = prev.ParentPageID
			}
			s = domain.Reduce(s, domain.UpdateLocationStructure{Structure: structure}, now())
		}

		var lines []string
		for _, l := range c.Lines {
			if n := domain.NormalizeLocation(l); n != "" {
				lines = append(lines, n)
			}
		}

		locations = domain.MatchLocations(lines, s.Pages, hubType)
		return domain.Reduce(s, domain.SetLocations{Locations: locations}, now()), nil
	})
	if err != nil {
		return nil, err
	}

	matched := 0
	for _, loc := range locations {
		if loc.MatchedHubID != nil {
			matched++
		} else if c.Log != nil {
			c.Log.Debug("location unmatched", "location", loc.LocationString)
		}
	}
	if c.Log != nil {
		c.Log.Info("locations matched", "project", c.ProjectID, "total", len(locations), "matched", matched)
	}

	return &MatchLocationsResult{
		Locations: locations,
		Matched:   matched,
		Message:   fmt.Sprintf("Matched %d of %d locations", matched, len(locations)),
	}, nil
}

// AssignHubCommand manually assigns or clears a location's hub
type AssignHubCommand struct {
	store      ports.ProjectStore
	ProjectID  string
	LocationID string
	// HubID empty clears the assignment
	HubID string
	// Best re-matches the location against the hubs by similarity
	// instead of using HubID
	Best bool
}

// NewAssignHubCommand creates a new AssignHubCommand
func NewAssignHubCommand(store ports.ProjectStore, projectID, locationID, hubID string) *AssignHubCommand {
	return &AssignHubCommand{store: store, ProjectID: projectID, LocationID: locationID, HubID: hubID}
}

// Validate checks if the assignment is valid
func (c *AssignHubCommand) Validate() error {
	if err := application.ValidateRequired("projectID", c.ProjectID); err != nil {
		return err
	}
	return application.ValidateRequired("locationID", c.LocationID)
}

// Execute runs the assign command and returns the updated location
func (c *AssignHubCommand) Execute(ctx context.Context) (*domain.Location, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	state, err := update(ctx, c.store, c.ProjectID, func(s domain.ProjectState) (domain.ProjectState, error) {
		if s.FindLocation(c.LocationID) == nil {
			return s, &application.NotFoundError{Kind: "location", ID: c.LocationID}
		}

		action := domain.AssignHub{LocationID: c.LocationID}
		if c.Best {
			loc := s.FindLocation(c.LocationID)
			if hubID, score := domain.FindBestMatch(loc.LocationString, s.Pages, s.Config.HubTypeName()); hubID != "" {
				action.HubID = &hubID
				action.Confidence = score
			}
		} else if c.HubID != "" {
			if domain.FindNodeInList(s.Pages, c.HubID) == nil {
				return s, &application.NotFoundError{Kind: "page", ID: c.HubID}
			}
			hubID := c.HubID
			action.HubID = &hubID
			action.Confidence = 100
		}
		return domain.Reduce(s, action, now()), nil
	})
	if err != nil {
		return nil, err
	}

	loc := state.FindLocation(c.LocationID)
	return loc, nil
}
