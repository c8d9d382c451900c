package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pes-mcp/internal/config"
	"pes-mcp/internal/logging"
	"pes-mcp/internal/production"
	"pes-mcp/internal/simulation"
)

func testConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	dataDir, err := filepath.Abs(filepath.Join("..", "..", "..", "internal", "testdata"))
	require.NoError(t, err)

	presets := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(presets, []byte(`presets:
  - name: line-stop
    description: Long unplanned stop on every shift
    defect_pct: 5
    downtime_minutes: 180
    material_shortage_pct: 3
`), 0644))

	return &config.AppConfig{
		DataPath:         dataDir,
		DatasetFile:      "production_sample.csv",
		PresetsFile:      presets,
		AnomalyThreshold: 60,
		ForecastHorizon:  7,
	}
}

func TestLoadEngine(t *testing.T) {
	engine, presets, err := loadEngine(testConfig(t))
	require.NoError(t, err)

	assert.Equal(t, 6, engine.Store().Len())
	require.Len(t, presets, 2)
	assert.Equal(t, config.BaselinePreset, presets[0].Name)
	assert.Equal(t, "line-stop", presets[1].Name)
}

func TestLoadEngine_MissingDataset(t *testing.T) {
	cfg := testConfig(t)
	cfg.DatasetFile = "missing.csv"

	_, _, err := loadEngine(cfg)
	assert.ErrorContains(t, err, "failed to load dataset")
}

func TestRunSimulate_JSON(t *testing.T) {
	engine, presets, err := loadEngine(testConfig(t))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, runSimulate(&out, engine, presets, simulation.Input{Preset: "line-stop"}, "json"))

	var report struct {
		Parameters struct {
			DowntimeMinutes int `json:"downtime_minutes"`
		} `json:"parameters"`
		Anomalies struct {
			Count int `json:"count"`
		} `json:"anomalies"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, 180, report.Parameters.DowntimeMinutes)
	// 180 minutes of downtime removes 60% of output on its own.
	assert.Equal(t, 5, report.Anomalies.Count)
}

func TestRunSimulate_Markdown(t *testing.T) {
	engine, presets, err := loadEngine(testConfig(t))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, runSimulate(&out, engine, presets, simulation.Input{}, "markdown"))

	text := out.String()
	assert.Contains(t, text, "# Scenario report")
	assert.Contains(t, text, "Scope: 2024-01-01 to 2024-01-03")
	assert.Contains(t, text, "```mermaid")
	assert.Contains(t, text, "Not enough historical data")
}

func TestRunSimulate_MarkdownTables(t *testing.T) {
	records := make([]production.Record, 0, 10)
	for d := 1; d <= 10; d++ {
		records = append(records, production.Record{
			Date:         time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC),
			Shift:        "A",
			PlannedUnits: 100,
		})
	}
	engine := simulation.NewEngine(production.NewStore("memory", records), simulation.DefaultOptions())

	defect, downtime, shortage := 20.0, 180, 15.0
	in := simulation.Input{DefectPct: &defect, DowntimeMinutes: &downtime, MaterialShortagePct: &shortage}

	var out bytes.Buffer
	require.NoError(t, runSimulate(&out, engine, nil, in, "markdown"))

	text := out.String()
	assert.Contains(t, text, "## Low efficiency alerts")
	assert.Contains(t, text, "| 2024-01-01 | A |")
	assert.Contains(t, text, "## Forecast")
	assert.Contains(t, text, "| 2024-01-11 |")
	assert.NotContains(t, text, "Not enough historical data")
}

func TestRunSimulate_Errors(t *testing.T) {
	engine, presets, err := loadEngine(testConfig(t))
	require.NoError(t, err)

	bad := 99.0
	assert.Error(t, runSimulate(io.Discard, engine, presets, simulation.Input{DefectPct: &bad}, "json"))
	assert.ErrorContains(t, runSimulate(io.Discard, engine, presets, simulation.Input{}, "xml"), "unknown format")
}

func TestSimulateInput_OnlyChangedFlags(t *testing.T) {
	require.NoError(t, simulateCmd.Flags().Parse([]string{"--downtime", "0", "--shifts", "Morning,Night"}))
	t.Cleanup(func() {
		simulateCmd.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
		simulateOpts.shifts = nil
	})

	in := simulateInput(simulateCmd)
	require.NotNil(t, in.DowntimeMinutes)
	assert.Equal(t, 0, *in.DowntimeMinutes)
	assert.Nil(t, in.DefectPct)
	assert.Nil(t, in.MaterialShortagePct)
	assert.Equal(t, []string{"Morning", "Night"}, in.Shifts)
}

func TestBaseURL(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{"0.0.0.0:8080", "http://localhost:8080"},
		{"[::]:9000", "http://localhost:9000"},
		{"127.0.0.1:8081", "http://127.0.0.1:8081"},
	}
	for _, tt := range tests {
		addr, err := net.ResolveTCPAddr("tcp", tt.addr)
		require.NoError(t, err)
		assert.Equal(t, tt.want, baseURL(addr))
	}
}

func TestServeHTTP_GracefulShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	ctx, cancel := context.WithCancel(context.Background())
	ready := make(chan string, 1)
	done := make(chan error, 1)
	go func() {
		done <- serveHTTP(ctx, ln, handler, func(base string) { ready <- base })
	}()

	base := <-ready
	resp, err := http.Get(base + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestSetup_UsesConfiguredLogDir(t *testing.T) {
	prevLogger, prevCfg := log.Logger, cfg
	t.Cleanup(func() { log.Logger, cfg = prevLogger, prevCfg })

	dataDir := t.TempDir()
	t.Setenv("DATA_PATH", dataDir)
	t.Setenv("LOGS_FOLDER", "")
	require.NoError(t, os.Unsetenv("LOGS_FOLDER"))

	require.NoError(t, setup())
	assert.Equal(t, filepath.Join(dataDir, "logs"), cfg.LogDir)

	log.Info().Msg("log dir check")
	assert.FileExists(t, filepath.Join(dataDir, "logs", logging.LogFileName))
}
