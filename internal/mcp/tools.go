package mcp

import (
	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

var toolNames = []string{
	"get_dataset_metadata",
	"run_scenario",
	"detect_anomalies",
	"analyze_bottleneck",
	"forecast_output",
}

// metadataInput takes no arguments.
type metadataInput struct{}

func (s *Server) registerTools(server *gomcp.Server) {
	gomcp.AddTool(server, &gomcp.Tool{
		Name: "get_dataset_metadata",
		Description: "Describe the loaded production dataset: record count, date range, shifts and the available scenario presets. " +
			"Call this first to learn valid values for 'start_date', 'end_date', 'shifts' and 'preset'.",
	}, toolHandler("get_dataset_metadata", func(metadataInput) (*ResponseEnvelope, error) {
		return s.handleGetDatasetMetadata()
	}))

	gomcp.AddTool(server, &gomcp.Tool{
		Name: "run_scenario",
		Description: "Run a what-if production scenario. Applies the simulated defect rate, downtime and material shortage to every " +
			"record in the selected date range and shifts, then returns KPIs, shift performance, efficiency and output trends, " +
			"anomalies, the dominant bottleneck and a 7-day output forecast.\n\n" +
			"Parameters left unset come from the named preset (default: baseline 5% defects, 30 min downtime, 3% shortage).",
	}, toolHandler("run_scenario", s.handleRunScenario))

	gomcp.AddTool(server, &gomcp.Tool{
		Name: "detect_anomalies",
		Description: "List records whose simulated efficiency falls strictly below the anomaly threshold (default 60%), worst first. " +
			"Records with zero planned units have undefined efficiency and are never flagged.",
	}, toolHandler("detect_anomalies", s.handleDetectAnomalies))

	gomcp.AddTool(server, &gomcp.Tool{
		Name: "analyze_bottleneck",
		Description: "Compare the scenario's downtime impact against its material shortage impact and name the dominant loss driver. " +
			"Note: the two magnitudes are compared as-is (minutes versus percentage points), exactly as the dashboard does.",
	}, toolHandler("analyze_bottleneck", s.handleAnalyzeBottleneck))

	gomcp.AddTool(server, &gomcp.Tool{
		Name: "forecast_output",
		Description: "Fit a linear trend to daily simulated output and project the next 7 days. " +
			"Requires more than 7 distinct production dates in scope.\n\n" +
			"STRICT GUARDRAIL: if the tool reports insufficient history, DO NOT estimate future output yourself.",
	}, toolHandler("forecast_output", s.handleForecastOutput))
}
