package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mapmyfirm/internal/application/commands"
	"mapmyfirm/internal/domain"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Display the site's page tree",
	Long: `Display every scanned page nested under its parent.

Example:
  mapmyfirm-cli tree -p 01J...`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, state, err := loadProject(context.Background())
		if err != nil {
			return err
		}
		if len(state.Pages) == 0 {
			fmt.Println("No pages scanned yet")
			return nil
		}

		for _, root := range domain.BuildTree(state.Pages) {
			printTree(root, 0)
		}
		return nil
	},
}

func printTree(node *domain.TreeNode, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Printf("%s%s %s\n", indent, styleMuted.Render(node.ID), describeNode(node.SiteNode))

	for _, child := range node.Children {
		printTree(child, depth+1)
	}
}

func describeNode(n domain.SiteNode) string {
	title := n.Title
	switch {
	case n.HasTag(domain.TagLocationHub):
		title = styleHub.Render(title)
	case !n.Status.IsPublished():
		title = styleDraft.Render(title + " (" + string(n.Status) + ")")
	}
	if n.Type != "page" {
		title += styleMuted.Render(" " + n.Type)
	}
	if len(n.ManualTags) > 0 {
		title += " [" + strings.Join(n.ManualTags, ", ") + "]"
	}
	return title
}

var (
	searchTypes []string
	searchTags  []string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search pages by title, slug or URL",
	Long: `Search a project's pages. Results are ranked by fuzzy relevance.
Filters narrow by content type and manual tag.

Examples:
  mapmyfirm-cli search car -p 01J...
  mapmyfirm-cli search --tag "Location Hub" -p 01J...`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := requireProject()
		if err != nil {
			return err
		}

		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		searchCmd := commands.NewSearchPagesCommand(GetStore(), id, query)
		searchCmd.Filter = domain.TreeFilter{Types: searchTypes, Tags: searchTags}

		results, err := searchCmd.Execute(context.Background())
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("No results found")
			return nil
		}

		for _, r := range results {
			fmt.Printf("[%s] %s %s %s\n", r.Type, styleMuted.Render(r.ID), describeNode(r.SiteNode), styleMuted.Render(r.URL))
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().StringSliceVar(&searchTypes, "type", nil, "only these content types")
	searchCmd.Flags().StringSliceVar(&searchTags, "tag", nil, "only pages with any of these tags")

	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(searchCmd)
}
