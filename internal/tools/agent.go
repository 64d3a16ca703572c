package tools

import (
	"context"
	"net/http"

	"github.com/codeplane-hq/codeplane-mcp/pkg/gate"
	"github.com/codeplane-hq/codeplane-mcp/pkg/transport"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func codeTaskTool() mcp.Tool {
	return mcp.NewTool("code_task",
		mcp.WithDescription("Run a coding task on the Codeplane agent service. "+
			"The agent clones the repository, makes the requested change, and reports back."),
		mcp.WithString("prompt", mcp.Required(),
			mcp.Description("What the agent should do, including the repository to work on.")),
	)
}

func handleCodeTask(g *gate.Gate) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		prompt, err := req.RequireString("prompt")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		oc := g.Call(ctx, transport.Request{
			Method: http.MethodPost,
			Path:   "/query",
			Body:   map[string]any{"prompt": prompt},
		}, "result", "message")
		return toolResult(oc), nil
	}
}

func codeReviewTool() mcp.Tool {
	return mcp.NewTool("code_review",
		mcp.WithDescription("Review a pull request and summarize findings. "+
			"Optionally posts the review on the PR itself."),
		mcp.WithString("pr_url", mcp.Required(),
			mcp.Description("Full URL of the pull request to review.")),
		mcp.WithBoolean("post_review",
			mcp.Description("Post the review as a comment on the PR instead of only returning it.")),
	)
}

func handleCodeReview(g *gate.Gate) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		prURL, err := req.RequireString("pr_url")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		oc := g.Call(ctx, transport.Request{
			Method: http.MethodPost,
			Path:   "/review",
			Body: map[string]any{
				"pr_url":      prURL,
				"post_review": req.GetBool("post_review", false),
			},
		}, "review", "result")
		return toolResult(oc), nil
	}
}

func askCodebaseTool() mcp.Tool {
	return mcp.NewTool("ask_codebase",
		mcp.WithDescription("Ask a question about a codebase and get an answer grounded in the actual code."),
		mcp.WithString("question", mcp.Required(),
			mcp.Description("The question to answer.")),
		mcp.WithString("repo", mcp.Required(),
			mcp.Description("Repository to answer against, e.g. owner/name.")),
	)
}

func handleAskCodebase(g *gate.Gate) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		question, err := req.RequireString("question")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		repo, err := req.RequireString("repo")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		oc := g.Call(ctx, transport.Request{
			Method: http.MethodPost,
			Path:   "/ask",
			Body:   map[string]any{"question": question, "repo": repo},
		}, "answer", "result")
		return toolResult(oc), nil
	}
}

func writeTestsTool() mcp.Tool {
	return mcp.NewTool("write_tests",
		mcp.WithDescription("Generate tests for a file or feature in a repository."),
		mcp.WithString("repo", mcp.Required(),
			mcp.Description("Repository to generate tests in.")),
		mcp.WithString("file",
			mcp.Description("Path of the file to cover. Provide this or feature.")),
		mcp.WithString("feature",
			mcp.Description("Feature description to cover. Provide this or file.")),
	)
}

func handleWriteTests(g *gate.Gate) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		repo, err := req.RequireString("repo")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		body := map[string]any{"repo": repo}
		if file := req.GetString("file", ""); file != "" {
			body["file"] = file
		}
		if feature := req.GetString("feature", ""); feature != "" {
			body["feature"] = feature
		}
		oc := g.Call(ctx, transport.Request{
			Method: http.MethodPost,
			Path:   "/test",
			Body:   body,
		}, "tests", "result")
		return toolResult(oc), nil
	}
}

func securityScanTool() mcp.Tool {
	return mcp.NewTool("security_scan",
		mcp.WithDescription("Scan one or more repositories for vulnerabilities."),
		mcp.WithArray("repos", mcp.Required(),
			mcp.Description("Repositories to scan."),
			mcp.Items(map[string]any{"type": "string"})),
		mcp.WithString("type",
			mcp.Description("Scan type."),
			mcp.Enum("full", "dependencies", "secrets")),
	)
}

func handleSecurityScan(g *gate.Gate) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		repos := stringSliceArg(req, "repos")
		if len(repos) == 0 {
			return mcp.NewToolResultError("repos must list at least one repository"), nil
		}
		scanType := req.GetString("type", "full")
		oc := g.Call(ctx, transport.Request{
			Method: http.MethodPost,
			Path:   "/scan",
			Body:   map[string]any{"repos": repos, "type": scanType},
		}, "report", "result")
		return toolResult(oc), nil
	}
}

// stringSliceArg extracts a string array argument, dropping non-string and
// empty entries.
func stringSliceArg(req mcp.CallToolRequest, name string) []string {
	raw, _ := req.GetArguments()[name].([]any)
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
