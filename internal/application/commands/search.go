package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"mapmyfirm/internal/domain"
	"mapmyfirm/internal/ports"
)

// SearchResult wraps a matched page with a relevance score
type SearchResult struct {
	domain.SiteNode
	Score int
}

// SearchPagesCommand searches a project's pages with fuzzy ranking
type SearchPagesCommand struct {
	store     ports.ProjectStore
	ProjectID string
	Query     string
	Filter    domain.TreeFilter
}

// NewSearchPagesCommand creates a new SearchPagesCommand
func NewSearchPagesCommand(store ports.ProjectStore, projectID, query string) *SearchPagesCommand {
	return &SearchPagesCommand{
		store:     store,
		ProjectID: projectID,
		Query:     query,
	}
}

// Execute runs the search and returns scored, sorted results
func (c *SearchPagesCommand) Execute(ctx context.Context) ([]SearchResult, error) {
	state, err := c.store.Load(ctx, c.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load project %s: %w", c.ProjectID, err)
	}
	return SearchPages(state.Pages, c.Query, c.Filter), nil
}

// SearchPages filters pages by term, type and tag, then ranks them.
// With no term every filtered page scores zero and keeps collection order.
func SearchPages(pages []domain.SiteNode, query string, filter domain.TreeFilter) []SearchResult {
	query = strings.TrimSpace(query)
	result := domain.FilterTree(pages, query, filter)

	scored := make([]SearchResult, 0, len(result.MatchedIDs))
	for _, id := range result.MatchedIDs {
		node := domain.FindNodeInList(pages, id)
		if node == nil {
			continue
		}
		scored = append(scored, SearchResult{
			SiteNode: *node,
			Score:    max(FuzzyScore(node.Title, query), FuzzyScore(node.Slug, query), FuzzyScore(node.URL, query)),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// FuzzyScore calculates a relevance score for how well target matches query
func FuzzyScore(target, query string) int {
	target = strings.ToLower(target)
	query = strings.ToLower(query)

	if len(query) == 0 {
		return 0
	}

	// Exact substring first
	if strings.Contains(target, query) {
		score := 100
		if strings.HasPrefix(target, query) {
			score += 50
		}
		return score
	}

	// Otherwise every query char must appear in order
	score := 0
	queryIdx := 0
	prevMatchIdx := -1

	for i := 0; i < len(target) && queryIdx < len(query); i++ {
		if target[i] != query[queryIdx] {
			continue
		}
		if prevMatchIdx == i-1 {
			score += 10
		}
		if i == 0 {
			score += 15
		}
		if i > 0 && (target[i-1] == ' ' || target[i-1] == '/' || target[i-1] == '-') {
			score += 10
		}
		score++
		prevMatchIdx = i
		queryIdx++
	}

	if queryIdx == len(query) {
		return score
	}
	return 0
}
