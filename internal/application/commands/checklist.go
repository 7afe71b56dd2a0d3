package commands

import (
	"context"
	"fmt"

	"mapmyfirm/internal/application"
	"mapmyfirm/internal/domain"
	"mapmyfirm/internal/ports"
)

// GenerateChecklistCommand rebuilds a project's checklist from its matched
// locations. Previous items, including manual edits, are replaced. A
// project without locations gets an empty checklist.
type GenerateChecklistCommand struct {
	store     ports.ProjectStore
	ProjectID string
	generator domain.ChecklistGenerator
}

// NewGenerateChecklistCommand creates a new GenerateChecklistCommand
func NewGenerateChecklistCommand(store ports.ProjectStore, projectID string) *GenerateChecklistCommand {
	return &GenerateChecklistCommand{store: store, ProjectID: projectID}
}

// Execute runs the generate command
func (c *GenerateChecklistCommand) Execute(ctx context.Context) ([]domain.ChecklistItem, error) {
	if err := application.ValidateRequired("projectID", c.ProjectID); err != nil {
		return nil, err
	}

	state, err := update(ctx, c.store, c.ProjectID, func(s domain.ProjectState) (domain.ProjectState, error) {
		gen := c.generator
		if gen.Now == nil {
			gen.Now = now
		}
		items := gen.Generate(s.Locations, s.Pages)
		return domain.Reduce(s, domain.SetChecklist{Items: items}, now()), nil
	})
	if err != nil {
		return nil, err
	}
	return state.ChecklistItems, nil
}

// UpdateChecklistItemCommand edits notes or completion on one item
type UpdateChecklistItemCommand struct {
	store     ports.ProjectStore
	ProjectID string
	ItemID    string
	Notes     *string
	Completed *bool
}

// NewUpdateChecklistItemCommand creates a new UpdateChecklistItemCommand
func NewUpdateChecklistItemCommand(store ports.ProjectStore, projectID, itemID string) *UpdateChecklistItemCommand {
	return &UpdateChecklistItemCommand{store: store, ProjectID: projectID, ItemID: itemID}
}

// Validate checks if the update is valid
func (c *UpdateChecklistItemCommand) Validate() error {
	if err := application.ValidateRequired("projectID", c.ProjectID); err != nil {
		return err
	}
	if err := application.ValidateRequired("itemID", c.ItemID); err != nil {
		return err
	}
	if c.Notes == nil && c.Completed == nil {
		return &application.ValidationError{Field: "item", Message: "nothing to update"}
	}
	return nil
}

// Execute runs the update command and returns the edited item
func (c *UpdateChecklistItemCommand) Execute(ctx context.Context) (*domain.ChecklistItem, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return applyToItem(ctx, c.store, c.ProjectID, c.ItemID, domain.UpdateChecklistItem{
		ID:        c.ItemID,
		Notes:     c.Notes,
		Completed: c.Completed,
	})
}

func applyToItem(ctx context.Context, store ports.ProjectStore, projectID, itemID string, action domain.Action) (*domain.ChecklistItem, error) {
	state, err := update(ctx, store, projectID, func(s domain.ProjectState) (domain.ProjectState, error) {
		if s.FindChecklistItem(itemID) == nil {
			return s, &application.NotFoundError{Kind: "checklist item", ID: itemID}
		}
		return domain.Reduce(s, action, now()), nil
	})
	if err != nil {
		return nil, err
	}
	return state.FindChecklistItem(itemID), nil
}

// SetPracticeAreaCommand records a manual page or URL for one category.
// A page ID takes precedence over a URL; setting neither marks the page missing.
type SetPracticeAreaCommand struct {
	store     ports.ProjectStore
	ProjectID string
	ItemID    string
	Area      string
	PageID    string
	ManualURL string
	Comment   string
	Optimized bool
}

// NewSetPracticeAreaCommand creates a new SetPracticeAreaCommand
func NewSetPracticeAreaCommand(store ports.ProjectStore, projectID, itemID, area string) *SetPracticeAreaCommand {
	return &SetPracticeAreaCommand{store: store, ProjectID: projectID, ItemID: itemID, Area: area}
}

// Validate checks if the edit is valid
func (c *SetPracticeAreaCommand) Validate() error {
	if err := application.ValidateRequired("projectID", c.ProjectID); err != nil {
		return err
	}
	if err := application.ValidateRequired("itemID", c.ItemID); err != nil {
		return err
	}
	if c.ManualURL != "" && c.PageID == "" {
		if err := application.ValidateSiteURL("manualURL", c.ManualURL); err != nil {
			return err
		}
	}
	_, err := application.ValidatePracticeArea(c.Area)
	return err
}

// Execute runs the set command and returns the edited item
func (c *SetPracticeAreaCommand) Execute(ctx context.Context) (*domain.ChecklistItem, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	area, _ := application.ValidatePracticeArea(c.Area)

	return applyToItem(ctx, c.store, c.ProjectID, c.ItemID, domain.SetPracticeArea{
		ItemID:    c.ItemID,
		Area:      area,
		PageID:    c.PageID,
		ManualURL: c.ManualURL,
		Comment:   c.Comment,
		Optimized: c.Optimized,
	})
}

// ToggleOptimizedCommand flips the optimized flag for one category
type ToggleOptimizedCommand struct {
	store     ports.ProjectStore
	ProjectID string
	ItemID    string
	Area      string
}

// NewToggleOptimizedCommand creates a new ToggleOptimizedCommand
func NewToggleOptimizedCommand(store ports.ProjectStore, projectID, itemID, area string) *ToggleOptimizedCommand {
	return &ToggleOptimizedCommand{store: store, ProjectID: projectID, ItemID: itemID, Area: area}
}

// Execute runs the toggle command and returns the edited item
func (c *ToggleOptimizedCommand) Execute(ctx context.Context) (*domain.ChecklistItem, error) {
	if err := application.ValidateRequired("itemID", c.ItemID); err != nil {
		return nil, err
	}
	area, err := application.ValidatePracticeArea(c.Area)
	if err != nil {
		return nil, err
	}
	return applyToItem(ctx, c.store, c.ProjectID, c.ItemID, domain.ToggleOptimized{ItemID: c.ItemID, Area: area})
}

// AddChecklistItemCommand appends a manual row for a location with no hub
type AddChecklistItemCommand struct {
	store     ports.ProjectStore
	ProjectID string
	Location  string
	generator domain.ChecklistGenerator
}

// NewAddChecklistItemCommand creates a new AddChecklistItemCommand
func NewAddChecklistItemCommand(store ports.ProjectStore, projectID, location string) *AddChecklistItemCommand {
	return &AddChecklistItemCommand{store: store, ProjectID: projectID, Location: location}
}

// Execute runs the add command and returns the new item
func (c *AddChecklistItemCommand) Execute(ctx context.Context) (*domain.ChecklistItem, error) {
	if err := application.ValidateRequired("location", c.Location); err != nil {
		return nil, err
	}

	gen := c.generator
	if gen.Now == nil {
		gen.Now = now
	}
	item := gen.NewItem(domain.NormalizeLocation(c.Location))

	if _, err := update(ctx, c.store, c.ProjectID, func(s domain.ProjectState) (domain.ProjectState, error) {
		return domain.Reduce(s, domain.AddChecklistItem{Item: item}, now()), nil
	}); err != nil {
		return nil, err
	}
	return &item, nil
}

// ChecklistStatsCommand computes completeness for a project
type ChecklistStatsCommand struct {
	store     ports.ProjectStore
	ProjectID string
}

// NewChecklistStatsCommand creates a new ChecklistStatsCommand
func NewChecklistStatsCommand(store ports.ProjectStore, projectID string) *ChecklistStatsCommand {
	return &ChecklistStatsCommand{store: store, ProjectID: projectID}
}

// Execute loads the project and returns its stats
func (c *ChecklistStatsCommand) Execute(ctx context.Context) (*domain.ChecklistStats, error) {
	state, err := c.store.Load(ctx, c.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load project %s: %w", c.ProjectID, err)
	}
	stats := domain.CalculateStats(state.ChecklistItems)
	return &stats, nil
}
