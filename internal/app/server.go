// Package app is the composition root: it builds the transport engine, the
// call gate, and the MCP server, and injects them into the tool catalogue.
// No business logic lives here, only wiring.
package app

import (
	"fmt"
	"strings"

	"github.com/codeplane-hq/codeplane-mcp/internal/config"
	"github.com/codeplane-hq/codeplane-mcp/internal/tools"
	"github.com/codeplane-hq/codeplane-mcp/pkg/gate"
	"github.com/codeplane-hq/codeplane-mcp/pkg/transport"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New builds the fully wired MCP server from config.
func New(cfg *config.Config, log *zap.SugaredLogger) (*server.MCPServer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	if cfg.HasAPIKey() && !strings.HasPrefix(cfg.APIKey, config.KeyPrefix) {
		log.Warnw("API key does not carry the documented prefix; sending it unchanged",
			"prefix", config.KeyPrefix)
	}

	engine, err := transport.New(transport.Endpoint{
		BaseURL:    cfg.APIBaseURL,
		Credential: cfg.APIKey,
		UserAgent:  "codeplane-mcp/" + Version,
	},
		transport.WithDefaultTimeout(cfg.RequestTimeout),
		transport.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("build transport engine: %w", err)
	}

	g := gate.New(engine, cfg.HasAPIKey(), log)

	s := server.NewMCPServer(cfg.AppName, Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	tools.Register(s, g)

	log.Infow("codeplane-mcp wired",
		"base_url", cfg.APIBaseURL,
		"api_key_configured", cfg.HasAPIKey(),
		"request_timeout", cfg.RequestTimeout,
	)
	return s, nil
}
