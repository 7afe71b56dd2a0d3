package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"mapmyfirm/internal/application"
	"mapmyfirm/internal/domain"
	"mapmyfirm/internal/ports"
)

// DefaultPerPage is the page size requested from the site
const DefaultPerPage = 100

// ScanProgress reports nodes fetched so far out of the total the site
// announced for the content type being scanned
type ScanProgress func(fetched, total int, contentType string)

// ScanSiteCommand fetches every node of the selected content types.
// Pages are requested one at a time; any failure aborts the scan.
type ScanSiteCommand struct {
	source       ports.PageSource
	ContentTypes []string
	PerPage      int
	Progress     ScanProgress
	Log          *slog.Logger
}

// NewScanSiteCommand creates a new ScanSiteCommand
func NewScanSiteCommand(source ports.PageSource, contentTypes []string) *ScanSiteCommand {
	return &ScanSiteCommand{
		source:       source,
		ContentTypes: contentTypes,
		PerPage:      DefaultPerPage,
	}
}

// Validate checks if the scan can run
func (c *ScanSiteCommand) Validate() error {
	if len(c.ContentTypes) == 0 {
		return &application.ValidationError{
			Field:   "contentTypes",
			Message: "at least one content type is required",
		}
	}
	return nil
}

// Execute scans the site and returns nodes in fetch order
func (c *ScanSiteCommand) Execute(ctx context.Context) ([]domain.SiteNode, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	types, err := c.resolveTypes(ctx)
	if err != nil {
		return nil, err
	}

	perPage := c.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	var nodes []domain.SiteNode
	for _, ct := range types {
		fetched, err := c.scanType(ctx, ct, perPage)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, fetched...)
	}
	if nodes == nil {
		nodes = []domain.SiteNode{}
	}
	return nodes, nil
}

func (c *ScanSiteCommand) scanType(ctx context.Context, ct domain.ContentType, perPage int) ([]domain.SiteNode, error) {
	start := time.Now()

	first, err := c.source.FetchPage(ctx, ct, 1, perPage)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", ct.RestBase, err)
	}
	nodes := append([]domain.SiteNode(nil), first.Nodes...)
	c.report(len(nodes), first.Total, ct.RestBase)

	for page := 2; page <= first.TotalPages; page++ {
		batch, err := c.source.FetchPage(ctx, ct, page, perPage)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s page %d: %w", ct.RestBase, page, err)
		}
		nodes = append(nodes, batch.Nodes...)
		c.report(len(nodes), first.Total, ct.RestBase)
	}

	if c.Log != nil {
		c.Log.Info("content type scanned",
			"type", ct.RestBase,
			"nodes", len(nodes),
			"pages", max(first.TotalPages, 1),
			"duration", time.Since(start))
	}
	return nodes, nil
}

func (c *ScanSiteCommand) report(fetched, total int, contentType string) {
	if c.Progress != nil {
		c.Progress(fetched, total, contentType)
	}
}

// resolveTypes maps selected slugs or REST bases to the site's content types
func (c *ScanSiteCommand) resolveTypes(ctx context.Context) ([]domain.ContentType, error) {
	available, err := c.source.ContentTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list content types: %w", err)
	}

	out := make([]domain.ContentType, 0, len(c.ContentTypes))
	for _, want := range c.ContentTypes {
		found := false
		for _, ct := range available {
			if ct.RestBase == want || ct.Slug == want {
				out = append(out, ct)
				found = true
				break
			}
		}
		if !found {
			return nil, &application.ValidationError{
				Field:   "contentTypes",
				Message: fmt.Sprintf("site does not offer content type %q", want),
			}
		}
	}
	return out, nil
}

// ScanProjectResult summarizes a project scan
type ScanProjectResult struct {
	State     domain.ProjectState
	PageCount int
	Message   string
}

// ScanProjectCommand scans a project's site and replaces its pages.
// Manual tags on pages that survive the rescan are kept.
type ScanProjectCommand struct {
	store     ports.ProjectStore
	source    ports.PageSource
	ProjectID string
	Progress  ScanProgress
	Log       *slog.Logger
}

// NewScanProjectCommand creates a new ScanProjectCommand
func NewScanProjectCommand(store ports.ProjectStore, source ports.PageSource, projectID string) *ScanProjectCommand {
	return &ScanProjectCommand{store: store, source: source, ProjectID: projectID}
}

// Execute runs the scan and stores the result
func (c *ScanProjectCommand) Execute(ctx context.Context) (*ScanProjectResult, error) {
	if err := application.ValidateRequired("projectID", c.ProjectID); err != nil {
		return nil, err
	}

	state, err := update(ctx, c.store, c.ProjectID, func(s domain.ProjectState) (domain.ProjectState, error) {
		scan := NewScanSiteCommand(c.source, s.Config.SelectedContentTypes)
		scan.Progress = c.Progress
		scan.Log = c.Log

		nodes, err := scan.Execute(ctx)
		if err != nil {
			return s, err
		}
		carryTags(nodes, s.Pages)

		s = domain.Reduce(s, domain.SetPages{Pages: nodes}, now())
		s.Config.ScanDate = now().Format(time.RFC3339)
		return s, nil
	})
	if err != nil {
		return nil, err
	}

	return &ScanProjectResult{
		State:     state,
		PageCount: len(state.Pages),
		Message:   fmt.Sprintf("Scanned %d pages from %s", len(state.Pages), state.Config.SiteURL),
	}, nil
}

// carryTags copies manual tags from previous pages onto rescanned pages with the same ID
func carryTags(nodes, previous []domain.SiteNode) {
	tags := make(map[string][]string, len(previous))
	for _, p := range previous {
		if len(p.ManualTags) > 0 {
			tags[p.ID] = p.ManualTags
		}
	}
	for i := range nodes {
		if t, ok := tags[nodes[i].ID]; ok {
			nodes[i].ManualTags = append([]string{}, t...)
		}
	}
}
