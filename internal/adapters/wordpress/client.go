// Package wordpress reads site structure from the WordPress REST API.
package wordpress

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"mapmyfirm/internal/domain"
	"mapmyfirm/internal/ports"
)

const (
	apiBase    = "/wp-json/wp/v2"
	pageFields = "id,title,slug,link,parent,type,status,modified,excerpt"
	noTitle    = "(No title)"
)

var _ ports.PageSource = (*Client)(nil)

// StatusError is returned for non-2xx responses
type StatusError struct {
	Op     string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to %s: %s", e.Op, e.Status)
}

// Client implements ports.PageSource for one site
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger for request tracing
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient creates a client for siteURL
func NewClient(siteURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    NormalizeURL(siteURL),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var schemePattern = regexp.MustCompile(`^https?://`)

// NormalizeURL adds https:// when no scheme is given and drops one trailing slash
func NormalizeURL(siteURL string) string {
	u := strings.TrimSpace(siteURL)
	if !schemePattern.MatchString(u) {
		u = "https://" + u
	}
	return strings.TrimSuffix(u, "/")
}

// BaseURL returns the normalized site URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

type wpType struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	RestBase     string `json:"rest_base"`
	Hierarchical bool   `json:"hierarchical"`
}

// ContentTypes lists REST-enabled types other than attachments, sorted by slug
func (c *Client) ContentTypes(ctx context.Context) ([]domain.ContentType, error) {
	resp, err := c.get(ctx, c.baseURL+apiBase+"/types", "fetch content types")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var raw map[string]wpType
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse content types: %w", err)
	}

	types := make([]domain.ContentType, 0, len(raw))
	for _, t := range raw {
		if t.RestBase == "" || t.Slug == "attachment" {
			continue
		}
		types = append(types, domain.ContentType{
			Slug:         t.Slug,
			Name:         t.Name,
			RestBase:     t.RestBase,
			Hierarchical: t.Hierarchical,
		})
	}
	sort.Slice(types, func(i, j int) bool { return types[i].Slug < types[j].Slug })
	return types, nil
}

type rendered struct {
	Rendered string `json:"rendered"`
}

type wpPost struct {
	ID       int64     `json:"id"`
	Title    rendered  `json:"title"`
	Slug     string    `json:"slug"`
	Link     string    `json:"link"`
	Parent   int64     `json:"parent"`
	Type     string    `json:"type"`
	Status   string    `json:"status"`
	Modified string    `json:"modified"`
	Excerpt  *rendered `json:"excerpt"`
}

// FetchPage requests one page of a content type in ascending ID order, so
// rescans list pages the same way. Missing pagination headers mean a single
// page.
func (c *Client) FetchPage(ctx context.Context, ct domain.ContentType, page, perPage int) (domain.PageBatch, error) {
	q := url.Values{}
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("page", strconv.Itoa(page))
	q.Set("_fields", pageFields)
	q.Set("orderby", "id")
	q.Set("order", "asc")
	endpoint := fmt.Sprintf("%s%s/%s?%s", c.baseURL, apiBase, url.PathEscape(ct.RestBase), q.Encode())

	resp, err := c.get(ctx, endpoint, "fetch "+ct.RestBase)
	if err != nil {
		return domain.PageBatch{}, err
	}
	defer resp.Body.Close()

	var posts []wpPost
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		return domain.PageBatch{}, fmt.Errorf("failed to parse %s: %w", ct.RestBase, err)
	}

	batch := domain.PageBatch{
		Nodes:      make([]domain.SiteNode, 0, len(posts)),
		TotalPages: headerInt(resp.Header, "X-WP-TotalPages", 1),
		Total:      headerInt(resp.Header, "X-WP-Total", 0),
	}
	for _, p := range posts {
		batch.Nodes = append(batch.Nodes, toNode(p))
	}
	return batch, nil
}

// Ping checks that the REST API root answers a HEAD request
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+apiBase, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("site unreachable: %w", err)
	}
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Op: "reach REST API", Code: resp.StatusCode, Status: resp.Status}
	}
	return nil
}

func (c *Client) get(ctx context.Context, endpoint, op string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}
	c.log.Debug("wordpress request", "url", endpoint, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, &StatusError{Op: op, Code: resp.StatusCode, Status: resp.Status}
	}
	return resp, nil
}

func headerInt(h http.Header, key string, def int) int {
	v := h.Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

func toNode(p wpPost) domain.SiteNode {
	node := domain.SiteNode{
		ID:           strconv.FormatInt(p.ID, 10),
		Title:        PlainText(p.Title.Rendered),
		Slug:         p.Slug,
		URL:          p.Link,
		Type:         p.Type,
		Status:       domain.PageStatus(p.Status),
		ManualTags:   []string{},
		DateModified: p.Modified,
	}
	if node.Title == "" {
		node.Title = noTitle
	}
	if p.Parent != 0 {
		parent := strconv.FormatInt(p.Parent, 10)
		node.ParentID = &parent
	}
	if p.Excerpt != nil {
		node.ContentExcerpt = PlainText(p.Excerpt.Rendered)
	}
	return node
}

// PlainText strips tags and decodes entities from rendered HTML
func PlainText(html string) string {
	if !strings.ContainsAny(html, "<&") {
		return strings.TrimSpace(html)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(html)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
