// Package tools registers the Codeplane procedure catalogue on the MCP
// server. Each tool maps already-validated arguments onto one remote route
// and hands the exchange to the call gate; no tool talks to the network
// directly.
package tools

import (
	"github.com/codeplane-hq/codeplane-mcp/pkg/gate"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Register adds the full tool catalogue to the server.
func Register(s *server.MCPServer, g *gate.Gate) {
	s.AddTool(codeTaskTool(), handleCodeTask(g))
	s.AddTool(codeReviewTool(), handleCodeReview(g))
	s.AddTool(askCodebaseTool(), handleAskCodebase(g))
	s.AddTool(writeTestsTool(), handleWriteTests(g))
	s.AddTool(securityScanTool(), handleSecurityScan(g))

	s.AddTool(listSessionsTool(), handleListSessions(g))
	s.AddTool(listPlaybooksTool(), handleListPlaybooks(g))
	s.AddTool(runPlaybookTool(), handleRunPlaybook(g))
	s.AddTool(usageReportTool(), handleUsageReport(g))
}

// toolResult converts a gate outcome into the MCP result shape.
func toolResult(oc gate.Outcome) *mcp.CallToolResult {
	if oc.IsError {
		return mcp.NewToolResultError(oc.Text)
	}
	return mcp.NewToolResultText(oc.Text)
}
