package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

func (t *Tools) handleHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	action, err := request.RequireString("action")
	if err != nil {
		return mcp.NewToolResultError("Action parameter is required"), nil
	}
	category, err := request.RequireString("category")
	if err != nil {
		return mcp.NewToolResultError("Category parameter is required"), nil
	}

	switch action {
	case "list":
		records := t.history.Recent(category, 20)
		if len(records) == 0 {
			return mcp.NewToolResultText(fmt.Sprintf("No %s history", category)), nil
		}
		var b strings.Builder
		for i, rec := range records {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "[%s] %s => %s", rec.At.Format("15:04:05"), rec.Input, rec.Output)
		}
		return mcp.NewToolResultText(b.String()), nil

	case "clear":
		n := t.history.Clear(category)
		return mcp.NewToolResultText(fmt.Sprintf("Cleared %d %s records", n, category)), nil
	}

	return mcp.NewToolResultError(fmt.Sprintf("Error: unsupported action %q. Supported: list, clear", action)), nil
}
