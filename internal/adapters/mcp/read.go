package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"relinker/internal/application"
	"relinker/internal/application/commands"
	"relinker/internal/domain"
	"relinker/internal/ports"
)

// RegisterReadTools adds the read-only document tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, provider ports.DocumentProvider) {
	s.AddTool(scanTool(), scanHandler(provider))
	s.AddTool(revealTool(), revealHandler(provider))
}

// --- scan ---

func scanTool() mcp.Tool {
	return mcp.NewTool("scan",
		mcp.WithDescription("Scan for component instances whose backing component was deleted. Each result includes a same-named replacement candidate when one exists."),
		mcp.WithString("scope",
			mcp.Description("\"page\" scans the current page (default), \"document\" scans every page."),
		),
	)
}

func scanHandler(provider ports.DocumentProvider) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		scope, err := application.ParseScope(req.GetString("scope", "page"))
		if err != nil {
			return toolError(err)
		}

		records, err := commands.NewScanCommand(provider, scope).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		records, err = commands.NewMatchCommand(provider, records).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if len(records) == 0 {
			return mcp.NewToolResultText("No unlinked instances found."), nil
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%d unlinked instance(s):\n", len(records))
		for _, r := range records {
			fmt.Fprintf(&sb, "%s  %q on %s/%s", r.InstanceID, r.InstanceName, r.PageName, r.ParentName)
			if r.DeletedDefinitionName != "" {
				fmt.Fprintf(&sb, "  was %q", r.DeletedDefinitionName)
			}
			if r.Matched() {
				fmt.Fprintf(&sb, "  -> candidate %q (%s)", r.MatchedDefinitionName, r.MatchedDefinitionID)
			} else {
				sb.WriteString("  -> no candidate")
			}
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- reveal ---

func revealTool() mcp.Tool {
	return mcp.NewTool("reveal",
		mcp.WithDescription("Select and focus a node in the document."),
		mcp.WithString("instance_id",
			mcp.Description("Identifier of the node to focus"),
			mcp.Required(),
		),
	)
}

func revealHandler(provider ports.DocumentProvider) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("instance_id", "")
		if id == "" {
			return toolError(fmt.Errorf("instance_id is required"))
		}
		if err := commands.NewRevealCommand(provider, domain.NodeID(id)).Execute(ctx); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Focused %s", id)), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
