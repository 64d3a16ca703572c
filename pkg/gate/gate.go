// Package gate wraps every procedure invocation: it enforces the fail-closed
// credential precondition, delegates the exchange to the transport engine,
// and normalizes success and failure into the single textual shape the MCP
// surface returns.
package gate

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/codeplane-hq/codeplane-mcp/pkg/transport"
	"go.uber.org/zap"
)

// Caller performs one classified exchange. Satisfied by *transport.Engine;
// tests inject stubs.
type Caller interface {
	Do(ctx context.Context, req transport.Request) (transport.Result, error)
}

// Outcome is the uniform two-shape result every procedure hands back to the
// caller protocol.
type Outcome struct {
	Text    string
	IsError bool
}

// missingCredentialText is fixed and never touches the network.
const missingCredentialText = "Error: no API key configured. Set CODEPLANE_API_KEY to a key from " +
	"https://codeplane.dev/settings/api-keys (keys start with \"cp_\")."

// Gate guards a Caller with the credential precondition.
type Gate struct {
	engine        Caller
	hasCredential bool
	log           *zap.SugaredLogger
}

// New builds a Gate. hasCredential reflects startup configuration and is
// immutable for the process lifetime.
func New(engine Caller, hasCredential bool, log *zap.SugaredLogger) *Gate {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Gate{engine: engine, hasCredential: hasCredential, log: log}
}

// Call runs one procedure invocation end to end. prefer lists payload fields
// whose string value, when present, is returned on its own; otherwise the
// whole payload is pretty-printed.
func (g *Gate) Call(ctx context.Context, req transport.Request, prefer ...string) Outcome {
	if !g.hasCredential {
		return Outcome{Text: missingCredentialText, IsError: true}
	}

	res, err := g.engine.Do(ctx, req)
	if err != nil {
		var f *transport.Fault
		if errors.As(err, &f) {
			g.log.Warnw("call failed", "method", req.Method, "path", req.Path, "kind", f.Kind.String())
		} else {
			g.log.Warnw("call failed", "method", req.Method, "path", req.Path, "error", err)
		}
		return Outcome{Text: "Error: " + err.Error(), IsError: true}
	}

	return Outcome{Text: renderPayload(res, prefer...)}
}

// renderPayload selects a high-value text field when one exists, and falls
// back to the full structure otherwise. Raw text payloads pass through
// verbatim.
func renderPayload(res transport.Result, prefer ...string) string {
	if !res.JSON {
		return res.Raw
	}
	if obj, ok := res.Value.(map[string]any); ok {
		for _, key := range prefer {
			if s, ok := obj[key].(string); ok && strings.TrimSpace(s) != "" {
				return s
			}
		}
	}
	pretty, err := json.MarshalIndent(res.Value, "", "  ")
	if err != nil {
		return res.Raw
	}
	return string(pretty)
}
