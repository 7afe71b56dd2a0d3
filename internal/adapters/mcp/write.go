package mcp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"mapmyfirm/internal/application/commands"
	"mapmyfirm/internal/domain"
	"mapmyfirm/internal/ports"
)

// RegisterWriteTools adds all project-changing tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, store ports.ProjectStore, log *slog.Logger) {
	s.AddTool(matchLocationsTool(), matchLocationsHandler(store, log))
	s.AddTool(generateChecklistTool(), generateChecklistHandler(store))
	s.AddTool(setPracticeAreaTool(), setPracticeAreaHandler(store))
}

// --- match_locations ---

func matchLocationsTool() mcp.Tool {
	return mcp.NewTool("match_locations",
		mcp.WithDescription("Match business locations (one \"City, ST\" per line) to location hub pages. Replaces the project's location list."),
		projectIDParam(),
		mcp.WithString("locations",
			mcp.Description("Newline-separated locations, e.g. \"Los Angeles, CA\""),
			mcp.Required(),
		),
	)
}

func matchLocationsHandler(store ports.ProjectStore, log *slog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		lines := domain.SplitLocationLines(req.GetString("locations", ""))

		cmd := commands.NewMatchLocationsCommand(store, req.GetString("project_id", ""), lines)
		cmd.Log = log
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		text, _ := formatEntities(result.Locations, formatLocation)
		return mcp.NewToolResultText(result.Message + "\n" + firstText(text)), nil
	}
}

// --- generate_checklist ---

func generateChecklistTool() mcp.Tool {
	return mcp.NewTool("generate_checklist",
		mcp.WithDescription("Build the practice-area checklist from matched locations. Discards previous checklist edits."),
		projectIDParam(),
	)
}

func generateChecklistHandler(store ports.ProjectStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		items, err := commands.NewGenerateChecklistCommand(store, req.GetString("project_id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(items, formatItem)
	}
}

// --- set_practice_area ---

func setPracticeAreaTool() mcp.Tool {
	return mcp.NewTool("set_practice_area",
		mcp.WithDescription("Record the page (or external URL) covering one practice area for a checklist item. Giving neither marks the page missing."),
		projectIDParam(),
		mcp.WithString("item_id",
			mcp.Description("Checklist item ID"),
			mcp.Required(),
		),
		mcp.WithString("area",
			mcp.Description("Practice area key or name, e.g. car_accident or \"Car Accident\""),
			mcp.Required(),
		),
		mcp.WithString("page_id",
			mcp.Description("ID of the page that covers the area"),
		),
		mcp.WithString("url",
			mcp.Description("External URL, used when no page ID is given"),
		),
		mcp.WithString("comment",
			mcp.Description("Free-text comment"),
		),
		mcp.WithBoolean("optimized",
			mcp.Description("Whether the page has been optimized"),
		),
	)
}

func setPracticeAreaHandler(store ports.ProjectStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewSetPracticeAreaCommand(store,
			req.GetString("project_id", ""),
			req.GetString("item_id", ""),
			req.GetString("area", ""),
		)
		cmd.PageID = req.GetString("page_id", "")
		cmd.ManualURL = req.GetString("url", "")
		cmd.Comment = req.GetString("comment", "")
		cmd.Optimized = req.GetBool("optimized", false)

		item, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Updated %s\n%s", item.Location, formatItem(*item))), nil
	}
}

func firstText(r *mcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	switch c := r.Content[0].(type) {
	case mcp.TextContent:
		return c.Text
	case *mcp.TextContent:
		return c.Text
	}
	return ""
}
