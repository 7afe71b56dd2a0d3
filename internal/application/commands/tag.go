package commands

import (
	"context"
	"fmt"
	"strings"

	"mapmyfirm/internal/application"
	"mapmyfirm/internal/domain"
	"mapmyfirm/internal/ports"
)

// TagCommand adds or removes a manual tag on a page
type TagCommand struct {
	store     ports.ProjectStore
	ProjectID string
	PageID    string
	Tag       string
	Remove    bool
}

// NewTagCommand creates a new TagCommand that adds a tag
func NewTagCommand(store ports.ProjectStore, projectID, pageID, tag string) *TagCommand {
	return &TagCommand{store: store, ProjectID: projectID, PageID: pageID, Tag: tag}
}

// Validate checks if the tag operation is valid
func (c *TagCommand) Validate() error {
	if err := application.ValidateRequired("projectID", c.ProjectID); err != nil {
		return err
	}
	if err := application.ValidateRequired("pageID", c.PageID); err != nil {
		return err
	}
	return application.ValidateRequired("tag", c.Tag)
}

// Execute runs the tag command and returns the updated page
func (c *TagCommand) Execute(ctx context.Context) (*domain.SiteNode, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	tag := strings.TrimSpace(c.Tag)

	state, err := update(ctx, c.store, c.ProjectID, func(s domain.ProjectState) (domain.ProjectState, error) {
		if domain.FindNodeInList(s.Pages, c.PageID) == nil {
			return s, &application.NotFoundError{Kind: "page", ID: c.PageID}
		}
		var action domain.Action = domain.AddTag{PageID: c.PageID, Tag: tag}
		if c.Remove {
			action = domain.RemoveTag{PageID: c.PageID, Tag: tag}
		}
		return domain.Reduce(s, action, now()), nil
	})
	if err != nil {
		return nil, err
	}
	return domain.FindNodeInList(state.Pages, c.PageID), nil
}

// Message describes the change for display
func (c *TagCommand) Message() string {
	if c.Remove {
		return fmt.Sprintf("Removed %q from page %s", c.Tag, c.PageID)
	}
	return fmt.Sprintf("Tagged page %s as %q", c.PageID, c.Tag)
}
