package mcp

import (
	"context"
	"encoding/json"
	"testing"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connect(t *testing.T, s *Server) *gomcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	serverTransport, clientTransport := gomcp.NewInMemoryTransports()
	ss, err := s.build().Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	client := gomcp.NewClient(&gomcp.Implementation{Name: "test-client", Version: "test"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

func TestServer_ListTools(t *testing.T) {
	cs := connect(t, newTestServer(t, false))

	res, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, toolNames, names)
}

func TestServer_CallRunScenario(t *testing.T) {
	cs := connect(t, newTestServer(t, true))

	res, err := cs.CallTool(context.Background(), &gomcp.CallToolParams{
		Name: "run_scenario",
		Arguments: map[string]any{
			"defect_pct":       2.5,
			"downtime_minutes": 60,
			"shifts":           []string{"Morning", "Evening"},
		},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Len(t, res.Content, 4)

	text := res.Content[0].(*gomcp.TextContent).Text
	var env struct {
		Data struct {
			Parameters struct {
				DefectPct           float64 `json:"defect_pct"`
				DowntimeMinutes     int     `json:"downtime_minutes"`
				MaterialShortagePct float64 `json:"material_shortage_pct"`
			} `json:"parameters"`
			Scope struct {
				Records int `json:"records"`
			} `json:"scope"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &env))
	assert.Equal(t, 2.5, env.Data.Parameters.DefectPct)
	assert.Equal(t, 60, env.Data.Parameters.DowntimeMinutes)
	assert.Equal(t, 3.0, env.Data.Parameters.MaterialShortagePct)
	assert.Equal(t, 4, env.Data.Scope.Records)
}

func TestServer_CallToolErrorIsReported(t *testing.T) {
	cs := connect(t, newTestServer(t, false))

	res, err := cs.CallTool(context.Background(), &gomcp.CallToolParams{
		Name:      "forecast_output",
		Arguments: map[string]any{"material_shortage_pct": 40},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}
