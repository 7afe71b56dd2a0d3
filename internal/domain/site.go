package domain

import "slices"

// PageStatus is the publication status reported by the page source
type PageStatus string

const (
	StatusPublish PageStatus = "publish"
	StatusDraft   PageStatus = "draft"
	StatusPrivate PageStatus = "private"
	StatusFuture  PageStatus = "future"
	StatusPending PageStatus = "pending"
)

// IsPublished reports whether the page is publicly visible
func (s PageStatus) IsPublished() bool {
	return s == StatusPublish
}

// Well-known manual tags
const (
	TagLocationHub  = "Location Hub"
	TagPracticePage = "Practice Page"
	TagIgnore       = "Ignore"
)

// KnownTags lists the tags offered by the user interfaces
var KnownTags = []string{TagLocationHub, TagPracticePage, TagIgnore}

// SiteNode is one scanned content item. ParentID references another
// node's ID in the same collection, or is nil for a root.
type SiteNode struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Slug           string     `json:"slug"`
	URL            string     `json:"url"`
	ParentID       *string    `json:"parent_id"`
	Type           string     `json:"type"` // "page", "post", or a custom type name
	Status         PageStatus `json:"status"`
	ManualTags     []string   `json:"manual_tags"`
	DateModified   string     `json:"date_modified,omitempty"`
	ContentExcerpt string     `json:"content_excerpt,omitempty"`
}

// HasTag reports whether the node carries the given manual tag
func (n SiteNode) HasTag(tag string) bool {
	return slices.Contains(n.ManualTags, tag)
}

// Parent returns the parent ID, treating nil, "" and "0" as no parent
func (n SiteNode) Parent() (string, bool) {
	if n.ParentID == nil || *n.ParentID == "" || *n.ParentID == "0" {
		return "", false
	}
	return *n.ParentID, true
}

// ContentType describes a content type offered by the page source
type ContentType struct {
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	RestBase     string `json:"rest_base"`
	Hierarchical bool   `json:"hierarchical"`
}

// PageBatch is one page of results from the page source
type PageBatch struct {
	Nodes      []SiteNode
	TotalPages int
	Total      int
}

// TreeNode decorates a SiteNode with its children for display.
// It is rebuilt from the flat collection whenever that changes.
type TreeNode struct {
	SiteNode
	Children   []*TreeNode
	Parent     *TreeNode
	IsExpanded bool
}

// Flatten returns the node and all visible descendants (for list rendering)
func (n *TreeNode) Flatten() []*TreeNode {
	var result []*TreeNode
	n.flattenVisible(&result)
	return result
}

func (n *TreeNode) flattenVisible(result *[]*TreeNode) {
	*result = append(*result, n)
	if n.IsExpanded {
		for _, child := range n.Children {
			child.flattenVisible(result)
		}
	}
}

// Depth returns the depth of this node in the forest (roots are 0)
func (n *TreeNode) Depth() int {
	depth := 0
	for p := n.Parent; p != nil; p = p.Parent {
		depth++
	}
	return depth
}

// IsLeaf reports whether the node has no children
func (n *TreeNode) IsLeaf() bool {
	return len(n.Children) == 0
}

// Toggle expands or collapses the node
func (n *TreeNode) Toggle() {
	n.IsExpanded = !n.IsExpanded
}

// Expand sets the node as expanded
func (n *TreeNode) Expand() {
	n.IsExpanded = true
}

// Collapse sets the node as collapsed
func (n *TreeNode) Collapse() {
	n.IsExpanded = false
}

// FlattenVisible returns every visible node of a forest in display order
func FlattenVisible(roots []*TreeNode) []*TreeNode {
	var result []*TreeNode
	for _, r := range roots {
		r.flattenVisible(&result)
	}
	return result
}
