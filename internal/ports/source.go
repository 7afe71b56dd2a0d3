package ports

import (
	"context"

	"mapmyfirm/internal/domain"
)

// PageSource reads published content from a site.
// Implementations talk to one site; pages are numbered from 1.
type PageSource interface {
	// ContentTypes lists the content types exposed by the site
	ContentTypes(ctx context.Context) ([]domain.ContentType, error)

	// FetchPage returns one page of nodes for a content type along with
	// the pagination totals reported by the site
	FetchPage(ctx context.Context, contentType domain.ContentType, page, perPage int) (domain.PageBatch, error)

	// Ping reports whether the site's REST API answers
	Ping(ctx context.Context) error
}
