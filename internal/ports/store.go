package ports

import (
	"context"

	"mapmyfirm/internal/domain"
)

// ProjectInfo is one row of a project listing
type ProjectInfo struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	SiteURL      string `json:"site_url"`
	PageCount    int    `json:"page_count"`
	LastModified string `json:"last_modified"`
}

// ProjectStore persists whole-project snapshots keyed by project ID.
// Load returns an error matching application.ErrNotFound for unknown IDs.
type ProjectStore interface {
	Save(ctx context.Context, id string, state domain.ProjectState) error
	Load(ctx context.Context, id string) (*domain.ProjectState, error)
	// List returns summaries, most recently modified first
	List(ctx context.Context) ([]ProjectInfo, error)
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
	Close() error
}
