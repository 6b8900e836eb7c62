package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"relinker/internal/adapters/docfile"
	mcpadapter "relinker/internal/adapters/mcp"
	"relinker/internal/config"
)

func main() {
	documentFlag := flag.String("document", config.DocumentPath(), "path to the exported document")
	flag.Parse()

	document, err := docfile.Load(*documentFlag)
	if err != nil {
		log.Fatalf("relinker-mcp: %v", err)
	}

	mcpServer := server.NewMCPServer(
		"relinker-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check — returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, document)
	mcpadapter.RegisterWriteTools(mcpServer, document, func() error {
		return document.Save(*documentFlag)
	})

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("relinker-mcp: %v", err)
	}
}
