package domain

import "strings"

// BuildTree converts a flat, parent-referencing collection into a forest.
// Every node appears exactly once: nested under its parent when the parent
// is in the collection, otherwise promoted to a root. Sibling order follows
// collection order. Parent cycles are broken so that no node is lost.
func BuildTree(nodes []SiteNode) []*TreeNode {
	parents := resolveParents(nodes)

	byID := make(map[string]*TreeNode, len(nodes))
	all := make([]*TreeNode, len(nodes))
	for i, n := range nodes {
		tn := &TreeNode{SiteNode: n}
		all[i] = tn
		if _, dup := byID[n.ID]; !dup {
			byID[n.ID] = tn
		}
	}

	var roots []*TreeNode
	for _, tn := range all {
		parentID, ok := parents[tn.ID]
		if !ok {
			roots = append(roots, tn)
			continue
		}
		parent := byID[parentID]
		tn.Parent = parent
		parent.Children = append(parent.Children, tn)
	}
	return roots
}

// resolveParents maps node ID to parent ID for every parent link that
// resolves inside the collection, with cycles cut at the closing edge.
func resolveParents(nodes []SiteNode) map[string]string {
	present := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		present[n.ID] = true
	}

	parents := make(map[string]string, len(nodes))
	for _, n := range nodes {
		if _, seen := parents[n.ID]; seen {
			continue
		}
		if p, ok := n.Parent(); ok && present[p] && p != n.ID {
			parents[n.ID] = p
		}
	}

	for _, n := range nodes {
		seen := map[string]bool{n.ID: true}
		cur := n.ID
		for {
			p, ok := parents[cur]
			if !ok {
				break
			}
			if seen[p] {
				delete(parents, cur)
				break
			}
			seen[p] = true
			cur = p
		}
	}
	return parents
}

// FindNode searches a built forest depth-first
func FindNode(roots []*TreeNode, id string) *TreeNode {
	for _, n := range roots {
		if n.ID == id {
			return n
		}
		if found := FindNode(n.Children, id); found != nil {
			return found
		}
	}
	return nil
}

// FindNodeInList returns the first node with the given ID, or nil
func FindNodeInList(nodes []SiteNode, id string) *SiteNode {
	for i := range nodes {
		if nodes[i].ID == id {
			return &nodes[i]
		}
	}
	return nil
}

// AncestorIDs walks parent links from the node upwards, nearest first.
// A dangling parent ID is included before the walk stops.
func AncestorIDs(nodes []SiteNode, id string) []string {
	var ancestors []string
	seen := map[string]bool{id: true}

	current := FindNodeInList(nodes, id)
	for current != nil {
		parentID, ok := current.Parent()
		if !ok || seen[parentID] {
			break
		}
		seen[parentID] = true
		ancestors = append(ancestors, parentID)
		current = FindNodeInList(nodes, parentID)
	}
	return ancestors
}

// Descendants returns every strict descendant of the node in pre-order,
// children visited in collection order.
func Descendants(nodes []SiteNode, id string) []SiteNode {
	var result []SiteNode
	visited := map[string]bool{id: true}
	collectDescendants(nodes, id, visited, &result)
	return result
}

func collectDescendants(nodes []SiteNode, id string, visited map[string]bool, result *[]SiteNode) {
	for _, n := range nodes {
		p, ok := n.Parent()
		if !ok || p != id || visited[n.ID] {
			continue
		}
		visited[n.ID] = true
		*result = append(*result, n)
		collectDescendants(nodes, n.ID, visited, result)
	}
}

// FlattenTree is the inverse of BuildTree: a pre-order list of the
// forest's nodes with the children decoration stripped.
func FlattenTree(roots []*TreeNode) []SiteNode {
	var result []SiteNode
	var walk func([]*TreeNode)
	walk = func(level []*TreeNode) {
		for _, n := range level {
			result = append(result, n.SiteNode)
			walk(n.Children)
		}
	}
	walk(roots)
	return result
}

// TreeFilter restricts FilterTree results. Empty slices are inactive.
type TreeFilter struct {
	Types []string
	Tags  []string
}

// IsEmpty reports whether no filter is active
func (f TreeFilter) IsEmpty() bool {
	return len(f.Types) == 0 && len(f.Tags) == 0
}

// FilterResult holds the matched node IDs and the ancestor IDs that must be
// expanded for every match to be visible.
type FilterResult struct {
	MatchedIDs  []string
	ExpandedIDs []string
}

// FilterTree finds nodes whose title, slug, or URL contains term
// (case-insensitive) and that satisfy every active filter. A node passes
// the tag filter when it carries any of the listed tags. An empty term with
// no filters matches nothing.
func FilterTree(nodes []SiteNode, term string, filter TreeFilter) FilterResult {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" && filter.IsEmpty() {
		return FilterResult{}
	}

	var result FilterResult
	for _, n := range nodes {
		if term != "" &&
			!strings.Contains(strings.ToLower(n.Title), term) &&
			!strings.Contains(strings.ToLower(n.Slug), term) &&
			!strings.Contains(strings.ToLower(n.URL), term) {
			continue
		}
		if len(filter.Types) > 0 && !containsString(filter.Types, n.Type) {
			continue
		}
		if len(filter.Tags) > 0 && !hasAnyTag(n, filter.Tags) {
			continue
		}
		result.MatchedIDs = append(result.MatchedIDs, n.ID)
	}

	expanded := make(map[string]bool)
	for _, id := range result.MatchedIDs {
		for _, a := range AncestorIDs(nodes, id) {
			if !expanded[a] {
				expanded[a] = true
				result.ExpandedIDs = append(result.ExpandedIDs, a)
			}
		}
	}
	return result
}

func hasAnyTag(n SiteNode, tags []string) bool {
	for _, t := range tags {
		if n.HasTag(t) {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// TypeGroup is a bucket of nodes sharing a content type
type TypeGroup struct {
	Type  string
	Nodes []SiteNode
}

// GroupByType buckets nodes by content type, groups in first-seen order
func GroupByType(nodes []SiteNode) []TypeGroup {
	index := make(map[string]int)
	var groups []TypeGroup
	for _, n := range nodes {
		i, ok := index[n.Type]
		if !ok {
			i = len(groups)
			index[n.Type] = i
			groups = append(groups, TypeGroup{Type: n.Type})
		}
		groups[i].Nodes = append(groups[i].Nodes, n)
	}
	return groups
}

// ApplyExpanded marks the nodes whose IDs are listed as expanded
func ApplyExpanded(roots []*TreeNode, ids []string) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var walk func([]*TreeNode)
	walk = func(level []*TreeNode) {
		for _, n := range level {
			n.IsExpanded = want[n.ID]
			walk(n.Children)
		}
	}
	walk(roots)
}
