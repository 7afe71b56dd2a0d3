package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "mapmyfirm/internal/adapters/mcp"
	"mapmyfirm/internal/adapters/sqlite"
	"mapmyfirm/internal/config"
	"mapmyfirm/internal/logging"
)

func main() {
	dbFlag := flag.String("db", config.DatabaseURL(), "project database path or libsql:// URL")
	flag.Parse()

	// stdout carries the protocol; logs go to stderr
	logger := logging.New(os.Stderr, logging.ParseLevel(config.LogLevel()), true)

	store, err := sqlite.Open(context.Background(), *dbFlag, logger.Store())
	if err != nil {
		log.Fatalf("mapmyfirm-mcp: %v", err)
	}
	defer store.Close()

	mcpServer := server.NewMCPServer(
		"mapmyfirm-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, store)
	mcpadapter.RegisterWriteTools(mcpServer, store, logger.MCP())

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("mapmyfirm-mcp: %v", err)
	}
}
