package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"mapmyfirm/internal/application"
	"mapmyfirm/internal/application/commands"
	"mapmyfirm/internal/domain"
	"mapmyfirm/internal/ports"
)

// RegisterReadTools adds all read-only project tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, store ports.ProjectStore) {
	s.AddTool(listProjectsTool(), listProjectsHandler(store))
	s.AddTool(treeTool(), treeHandler(store))
	s.AddTool(searchPagesTool(), searchPagesHandler(store))
	s.AddTool(checklistStatsTool(), checklistStatsHandler(store))
	s.AddTool(exportCSVTool(), exportCSVHandler(store))
}

func projectIDParam() mcp.ToolOption {
	return mcp.WithString("project_id",
		mcp.Description("Project ID as shown by list_projects"),
		mcp.Required(),
	)
}

// --- list_projects ---

func listProjectsTool() mcp.Tool {
	return mcp.NewTool("list_projects",
		mcp.WithDescription("List stored projects, most recently modified first."),
	)
}

func listProjectsHandler(store ports.ProjectStore) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		projects, err := store.List(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(projects, formatProject)
	}
}

// --- tree ---

func treeTool() mcp.Tool {
	return mcp.NewTool("tree",
		mcp.WithDescription("Display a project's scanned site as a parent/child tree with status and tags."),
		projectIDParam(),
	)
}

func treeHandler(store ports.ProjectStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		state, err := loadProject(ctx, store, req)
		if err != nil {
			return toolError(err)
		}
		if len(state.Pages) == 0 {
			return mcp.NewToolResultText("No pages. Scan the site first."), nil
		}

		var sb strings.Builder
		for _, root := range domain.BuildTree(state.Pages) {
			renderTree(&sb, root, "")
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func renderTree(sb *strings.Builder, node *domain.TreeNode, prefix string) {
	fmt.Fprintf(sb, "%s%s %s", prefix, node.ID, node.Title)
	if !node.Status.IsPublished() {
		fmt.Fprintf(sb, " (%s)", node.Status)
	}
	if len(node.ManualTags) > 0 {
		fmt.Fprintf(sb, " [%s]", strings.Join(node.ManualTags, ", "))
	}
	sb.WriteByte('\n')
	for _, child := range node.Children {
		renderTree(sb, child, prefix+"  ")
	}
}

// --- search_pages ---

func searchPagesTool() mcp.Tool {
	return mcp.NewTool("search_pages",
		mcp.WithDescription("Search a project's pages by title, slug or URL. Optional filters narrow by content type or tag."),
		projectIDParam(),
		mcp.WithString("query",
			mcp.Description("Search term; empty lists every page that passes the filters"),
		),
		mcp.WithString("type",
			mcp.Description("Comma-separated content types (e.g. page,location)"),
		),
		mcp.WithString("tag",
			mcp.Description("Comma-separated tags (e.g. Location Hub)"),
		),
	)
}

func searchPagesHandler(store ports.ProjectStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewSearchPagesCommand(store, req.GetString("project_id", ""), req.GetString("query", ""))
		cmd.Filter = domain.TreeFilter{
			Types: splitList(req.GetString("type", "")),
			Tags:  splitList(req.GetString("tag", "")),
		}

		results, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(results) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, r := range results {
			fmt.Fprintf(&sb, "%s  %s  %s  %s\n", r.ID, r.Type, r.Title, r.URL)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- checklist_stats ---

func checklistStatsTool() mcp.Tool {
	return mcp.NewTool("checklist_stats",
		mcp.WithDescription("Summarize checklist completeness: hubs found, pages per practice area, overall percentage."),
		projectIDParam(),
	)
}

func checklistStatsHandler(store ports.ProjectStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stats, err := commands.NewChecklistStatsCommand(store, req.GetString("project_id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(formatStats(stats)), nil
	}
}

func formatStats(s *domain.ChecklistStats) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Locations: %d (%d completed, %d%%)\n", s.Total, s.Completed, s.CompletionPercentage)
	fmt.Fprintf(&sb, "Hubs: %d of %d (%d%%)\n", s.HubsExist, s.Total, s.HubsPercentage)
	for _, a := range domain.PracticeAreas {
		fmt.Fprintf(&sb, "%s: %d of %d\n", a.DisplayName(), s.PracticeAreaCounts[a], s.Total)
	}
	fmt.Fprintf(&sb, "Overall: %d of %d pages (%d%%)\n", s.TotalExists, s.TotalRequired, s.OverallPercentage)
	return sb.String()
}

// --- export_csv ---

func exportCSVTool() mcp.Tool {
	return mcp.NewTool("export_csv",
		mcp.WithDescription("Export a project's checklist as CSV, one row per location."),
		projectIDParam(),
	)
}

func exportCSVHandler(store ports.ProjectStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		state, err := loadProject(ctx, store, req)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		if err := application.WriteChecklistCSV(&sb, state.ChecklistItems); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func loadProject(ctx context.Context, store ports.ProjectStore, req mcp.CallToolRequest) (*domain.ProjectState, error) {
	id := req.GetString("project_id", "")
	if err := application.ValidateRequired("projectID", id); err != nil {
		return nil, err
	}
	return store.Load(ctx, id)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatProject(p ports.ProjectInfo) string {
	return fmt.Sprintf("%s  %s  %s  %d pages  %s", p.ID, p.Name, p.SiteURL, p.PageCount, p.LastModified)
}

func formatLocation(l domain.Location) string {
	if l.MatchedHubID == nil {
		return fmt.Sprintf("%s  %s  (no hub)", l.ID, l.LocationString)
	}
	return fmt.Sprintf("%s  %s  -> %s (%d%%)", l.ID, l.LocationString, *l.MatchedHubID, l.ConfidenceScore)
}

func formatItem(i domain.ChecklistItem) string {
	var missing []string
	for _, a := range domain.PracticeAreas {
		if !i.Area(a).Exists {
			missing = append(missing, string(a))
		}
	}
	hub := "no hub"
	if i.HubExists && i.HubID != nil {
		hub = "hub " + *i.HubID
	}
	if len(missing) == 0 {
		return fmt.Sprintf("%s  %s  %s  complete", i.ID, i.Location, hub)
	}
	return fmt.Sprintf("%s  %s  %s  missing: %s", i.ID, i.Location, hub, strings.Join(missing, ", "))
}
