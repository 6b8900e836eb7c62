package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"relinker/internal/application/commands"
	"relinker/internal/domain"
	"relinker/internal/ports"
)

// RegisterWriteTools adds the mutating document tools to the MCP server.
// commit, when non-nil, is called after a relink pass to persist the
// repoints (a live host commits them itself; a file adapter saves).
func RegisterWriteTools(s *server.MCPServer, provider ports.DocumentProvider, commit func() error) {
	s.AddTool(relinkTool(), relinkHandler(provider, commit))
}

// --- relink ---

func relinkTool() mcp.Tool {
	return mcp.NewTool("relink",
		mcp.WithDescription("Repoint unlinked instances at same-named live components. Link state is re-checked at execution time; instances without a candidate are skipped. Run scan again afterwards."),
		mcp.WithString("instance_ids",
			mcp.Description("Comma-separated instance identifiers from a previous scan"),
			mcp.Required(),
		),
	)
}

func relinkHandler(provider ports.DocumentProvider, commit func() error) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ids := parseIDs(req.GetString("instance_ids", ""))
		if len(ids) == 0 {
			return toolError(fmt.Errorf("instance_ids is required"))
		}

		result, err := commands.NewReplaceCommand(provider, ids).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if commit != nil {
			if err := commit(); err != nil {
				return toolError(fmt.Errorf("relinked %d of %d but failed to save: %w", result.SuccessCount, result.TotalCount, err))
			}
		}
		return mcp.NewToolResultText(
			fmt.Sprintf("%d of %d instances relinked.", result.SuccessCount, result.TotalCount),
		), nil
	}
}

func parseIDs(raw string) []domain.NodeID {
	var ids []domain.NodeID
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			ids = append(ids, domain.NodeID(part))
		}
	}
	return ids
}
