package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"mapmyfirm/internal/application"
	"mapmyfirm/internal/domain"
	"mapmyfirm/internal/ports"
)

// now is the clock used to stamp edits; tests replace it
var now = func() time.Time { return time.Now().UTC() }

// NewProjectID returns a time-sortable project ID
func NewProjectID() string {
	return ulid.Make().String()
}

// update loads a project, applies fn and saves the result
func update(ctx context.Context, store ports.ProjectStore, id string, fn func(domain.ProjectState) (domain.ProjectState, error)) (domain.ProjectState, error) {
	state, err := store.Load(ctx, id)
	if err != nil {
		return domain.ProjectState{}, fmt.Errorf("failed to load project %s: %w", id, err)
	}

	next, err := fn(*state)
	if err != nil {
		return domain.ProjectState{}, err
	}

	if err := store.Save(ctx, id, next); err != nil {
		return domain.ProjectState{}, fmt.Errorf("failed to save project %s: %w", id, err)
	}
	return next, nil
}

// CreateProjectResult contains the result of creating a project
type CreateProjectResult struct {
	ID      string
	State   domain.ProjectState
	Message string
}

// CreateProjectCommand starts a new project for a site
type CreateProjectCommand struct {
	store        ports.ProjectStore
	Name         string
	SiteURL      string
	ContentTypes []string
	HubTypeName  string
}

// NewCreateProjectCommand creates a new CreateProjectCommand
func NewCreateProjectCommand(store ports.ProjectStore, name, siteURL string) *CreateProjectCommand {
	return &CreateProjectCommand{
		store:   store,
		Name:    name,
		SiteURL: siteURL,
	}
}

// Validate checks if the project can be created
func (c *CreateProjectCommand) Validate() error {
	if err := application.ValidateRequired("projectName", c.Name); err != nil {
		return err
	}
	return application.ValidateSiteURL("siteURL", c.SiteURL)
}

// Execute runs the create command
func (c *CreateProjectCommand) Execute(ctx context.Context) (*CreateProjectResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	types := c.ContentTypes
	if len(types) == 0 {
		types = []string{"pages", "posts"}
	}
	cfg := domain.ProjectConfig{
		ProjectName:          strings.TrimSpace(c.Name),
		SiteURL:              strings.TrimSpace(c.SiteURL),
		SelectedContentTypes: types,
		LocationStructure:    &domain.LocationStructure{HubType: domain.HubTypePage},
	}
	if c.HubTypeName != "" {
		cfg.LocationStructure = &domain.LocationStructure{HubType: domain.HubTypeCPT, HubCPTName: c.HubTypeName}
	}

	state := domain.Reduce(domain.NewProjectState(), domain.InitProject{Config: cfg}, now())
	id := NewProjectID()
	if err := c.store.Save(ctx, id, state); err != nil {
		return nil, fmt.Errorf("failed to save project: %w", err)
	}

	return &CreateProjectResult{
		ID:      id,
		State:   state,
		Message: fmt.Sprintf("Created project %s (%s)", cfg.ProjectName, id),
	}, nil
}

// DeleteProjectCommand removes a stored project
type DeleteProjectCommand struct {
	store ports.ProjectStore
	ID    string
}

// NewDeleteProjectCommand creates a new DeleteProjectCommand
func NewDeleteProjectCommand(store ports.ProjectStore, id string) *DeleteProjectCommand {
	return &DeleteProjectCommand{store: store, ID: id}
}

// Validate checks if the delete operation is valid
func (c *DeleteProjectCommand) Validate() error {
	return application.ValidateRequired("projectID", c.ID)
}

// Execute runs the delete command
func (c *DeleteProjectCommand) Execute(ctx context.Context) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	if err := c.store.Delete(ctx, c.ID); err != nil {
		return "", fmt.Errorf("failed to delete project %s: %w", c.ID, err)
	}
	return fmt.Sprintf("Deleted project %s", c.ID), nil
}

// ImportProjectCommand stores an export document as a new project
type ImportProjectCommand struct {
	store ports.ProjectStore
	Data  []byte
	// ID reuses an existing project ID; empty allocates a new one
	ID  string
	Log *slog.Logger
}

// NewImportProjectCommand creates a new ImportProjectCommand
func NewImportProjectCommand(store ports.ProjectStore, data []byte) *ImportProjectCommand {
	return &ImportProjectCommand{store: store, Data: data}
}

// ImportProjectResult contains the stored project and any import warning
type ImportProjectResult struct {
	ID      string
	State   domain.ProjectState
	Warning string
}

// Execute validates and stores the document
func (c *ImportProjectCommand) Execute(ctx context.Context) (*ImportProjectResult, error) {
	result, err := application.ImportProject(c.Data, c.Log)
	if err != nil {
		return nil, err
	}

	id := c.ID
	if id == "" {
		id = NewProjectID()
	}
	state := domain.Reduce(domain.NewProjectState(), domain.ImportProject{State: result.State}, now())
	if err := c.store.Save(ctx, id, state); err != nil {
		return nil, fmt.Errorf("failed to save imported project: %w", err)
	}

	return &ImportProjectResult{ID: id, State: state, Warning: result.Warning}, nil
}
