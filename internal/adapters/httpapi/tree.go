package httpapi

import "mapmyfirm/internal/domain"

// treeJSON drops the parent back-pointer so the forest encodes without cycles
type treeJSON struct {
	domain.SiteNode
	Children []treeJSON `json:"children"`
}

func toTreeJSON(nodes []*domain.TreeNode) []treeJSON {
	out := make([]treeJSON, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, treeJSON{SiteNode: n.SiteNode, Children: toTreeJSON(n.Children)})
	}
	return out
}
