package mcp

import (
	"context"
	"encoding/json"

	"invsim/internal/config"
	"invsim/internal/runner"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// Server exposes the simulator as MCP tools over stdio.
type Server struct {
	runner  *runner.Runner
	cfg     *config.AppConfig
	version string
}

// NewServer creates a new MCP server.
func NewServer(r *runner.Runner, cfg *config.AppConfig, version string) *Server {
	return &Server{runner: r, cfg: cfg, version: version}
}

// Serve runs the protocol loop on stdin/stdout until the client disconnects or ctx ends.
func (s *Server) Serve(ctx context.Context) error {
	server := s.build()
	log.Info().Msg("MCP server listening on stdio")
	return server.Run(ctx, &sdkmcp.StdioTransport{})
}

func (s *Server) build() *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "invsim",
		Version: s.version,
	}, nil)
	s.registerTools(server)
	return server
}

// toolHandler adapts a handler to the SDK. Handler errors become tool errors the model can
// read, rather than protocol errors.
func toolHandler[In any](name string, fn func(context.Context, In) (any, error)) sdkmcp.ToolHandlerFor[In, any] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, in In) (*sdkmcp.CallToolResult, any, error) {
		data, err := fn(ctx, in)
		if err != nil {
			log.Warn().Err(err).Str("tool", name).Msg("Tool call failed")
			return &sdkmcp.CallToolResult{
				IsError: true,
				Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: err.Error()}},
			}, nil, nil
		}

		res := &sdkmcp.CallToolResult{}
		if env, ok := data.(ResponseEnvelope); ok && env.Chart != "" {
			chart := env.Chart
			env.Chart = ""
			res.Content = []sdkmcp.Content{
				&sdkmcp.TextContent{Text: formatResult(env)},
				&sdkmcp.TextContent{Text: chart},
			}
			return res, nil, nil
		}
		res.Content = []sdkmcp.Content{&sdkmcp.TextContent{Text: formatResult(data)}}
		return res, nil, nil
	}
}

func formatResult(data any) string {
	if s, ok := data.(string); ok {
		return s
	}
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal tool result")
		return err.Error()
	}
	return string(out)
}
