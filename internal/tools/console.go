package tools

import (
	"context"
	"net/http"

	"github.com/codeplane-hq/codeplane-mcp/pkg/gate"
	"github.com/codeplane-hq/codeplane-mcp/pkg/transport"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func listSessionsTool() mcp.Tool {
	return mcp.NewTool("list_sessions",
		mcp.WithDescription("List recent agent sessions."),
		mcp.WithNumber("limit",
			mcp.Description("Number of sessions to return (1-100, default 20).")),
		mcp.WithString("status",
			mcp.Description("Only sessions with this status."),
			mcp.Enum("queued", "running", "completed", "failed")),
	)
}

func handleListSessions(g *gate.Gate) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		oc := g.Call(ctx, transport.Request{
			Method: http.MethodGet,
			Path:   gate.SessionsPath(req.GetInt("limit", 0), req.GetString("status", "")),
		})
		return toolResult(oc), nil
	}
}

func listPlaybooksTool() mcp.Tool {
	return mcp.NewTool("list_playbooks",
		mcp.WithDescription("List the workflow playbooks available to your account."),
	)
}

func handleListPlaybooks(g *gate.Gate) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		oc := g.Call(ctx, transport.Request{
			Method: http.MethodGet,
			Path:   gate.PlaybooksPath(),
		})
		return toolResult(oc), nil
	}
}

func runPlaybookTool() mcp.Tool {
	return mcp.NewTool("run_playbook",
		mcp.WithDescription("Run a workflow playbook against a repository."),
		mcp.WithString("playbook", mcp.Required(),
			mcp.Description("Playbook slug, as returned by list_playbooks.")),
		mcp.WithString("repo", mcp.Required(),
			mcp.Description("Repository to run the playbook against.")),
		mcp.WithObject("inputs",
			mcp.Description("Playbook-specific input values.")),
	)
}

func handleRunPlaybook(g *gate.Gate) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		playbook, err := req.RequireString("playbook")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		repo, err := req.RequireString("repo")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		body := map[string]any{"repo": repo}
		if inputs, ok := req.GetArguments()["inputs"].(map[string]any); ok && len(inputs) > 0 {
			body["inputs"] = inputs
		}
		oc := g.Call(ctx, transport.Request{
			Method: http.MethodPost,
			Path:   gate.PlaybookRunPath(playbook),
			Body:   body,
		}, "result", "message")
		return toolResult(oc), nil
	}
}

func usageReportTool() mcp.Tool {
	return mcp.NewTool("usage_report",
		mcp.WithDescription("Show account usage statistics."),
		mcp.WithNumber("days",
			mcp.Description("Window in days (1-365). Omit for the account default.")),
	)
}

func handleUsageReport(g *gate.Gate) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		oc := g.Call(ctx, transport.Request{
			Method: http.MethodGet,
			Path:   gate.UsagePath(req.GetInt("days", 0)),
		})
		return toolResult(oc), nil
	}
}
