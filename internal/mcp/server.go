package mcp

import (
	"context"
	"encoding/json"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"pes-mcp/internal/config"
	"pes-mcp/internal/simulation"
)

// ServerName is reported to MCP clients during initialization.
const ServerName = "pes-mcp"

// Server holds the state for the MCP server.
type Server struct {
	engine  *simulation.Engine
	presets []config.Preset
	charts  bool
	version string
}

// NewServer creates a new MCP server over a loaded engine.
func NewServer(cfg *config.AppConfig, engine *simulation.Engine, presets []config.Preset, version string) *Server {
	if len(presets) == 0 {
		presets = []config.Preset{config.Baseline()}
	}
	return &Server{
		engine:  engine,
		presets: presets,
		charts:  cfg != nil && cfg.EnableMermaidCharts,
		version: version,
	}
}

// Start serves MCP over stdio until the client disconnects or ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	log.Info().Int("tools", len(toolNames)).Msg("MCP Server starting Stdio loop")
	return s.build().Run(ctx, &gomcp.StdioTransport{})
}

func (s *Server) build() *gomcp.Server {
	server := gomcp.NewServer(&gomcp.Implementation{Name: ServerName, Version: s.version}, nil)
	s.registerTools(server)
	return server
}

// toolHandler adapts a handler returning a response envelope to the SDK signature. The
// envelope is sent as indented JSON; charts follow as separate text blocks.
func toolHandler[In any](name string, fn func(In) (*ResponseEnvelope, error)) gomcp.ToolHandlerFor[In, any] {
	return func(ctx context.Context, req *gomcp.CallToolRequest, in In) (*gomcp.CallToolResult, any, error) {
		start := time.Now()
		res, err := fn(in)
		if err != nil {
			log.Warn().Err(err).Str("tool", name).Msg("Tool call failed")
			return nil, nil, err
		}
		log.Debug().Str("tool", name).Dur("elapsed", time.Since(start)).Msg("Tool call completed")

		content := []gomcp.Content{&gomcp.TextContent{Text: formatResult(res)}}
		for _, chart := range res.Charts {
			content = append(content, &gomcp.TextContent{Text: chart})
		}
		return &gomcp.CallToolResult{Content: content}, nil, nil
	}
}

func formatResult(data interface{}) string {
	out, _ := json.MarshalIndent(data, "", "  ")
	return string(out)
}
