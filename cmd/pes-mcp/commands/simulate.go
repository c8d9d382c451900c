package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"pes-mcp/internal/config"
	"pes-mcp/internal/simulation"
	"pes-mcp/internal/visuals"
)

var simulateOpts struct {
	preset    string
	start     string
	end       string
	shifts    []string
	defect    float64
	downtime  int
	shortage  float64
	threshold float64
	records   bool
	format    string
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run one scenario and print the report",
	Example: `  pes-mcp simulate --preset baseline
  pes-mcp simulate --downtime 90 --shortage 10 --shifts Morning,Night --format markdown`,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, presets, err := loadEngine(cfg)
		if err != nil {
			return err
		}
		return runSimulate(cmd.OutOrStdout(), engine, presets, simulateInput(cmd), simulateOpts.format)
	},
}

// simulateInput only sets the overrides the user actually passed.
func simulateInput(cmd *cobra.Command) simulation.Input {
	in := simulation.Input{
		Preset:         simulateOpts.preset,
		StartDate:      simulateOpts.start,
		EndDate:        simulateOpts.end,
		IncludeRecords: simulateOpts.records,
	}
	flags := cmd.Flags()
	if flags.Changed("shifts") {
		in.Shifts = simulateOpts.shifts
	}
	if flags.Changed("defect") {
		in.DefectPct = &simulateOpts.defect
	}
	if flags.Changed("downtime") {
		in.DowntimeMinutes = &simulateOpts.downtime
	}
	if flags.Changed("shortage") {
		in.MaterialShortagePct = &simulateOpts.shortage
	}
	if flags.Changed("threshold") {
		in.AnomalyThreshold = &simulateOpts.threshold
	}
	return in
}

func runSimulate(w io.Writer, engine *simulation.Engine, presets []config.Preset, in simulation.Input, format string) error {
	req, err := in.Request(presets)
	if err != nil {
		return err
	}
	report := engine.Run(req)

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "markdown":
		_, err := io.WriteString(w, markdownReport(report))
		return err
	default:
		return fmt.Errorf("unknown format %q (want json or markdown)", format)
	}
}

func markdownReport(r simulation.Report) string {
	var sb strings.Builder
	sb.WriteString("# Scenario report\n\n")
	sb.WriteString(fmt.Sprintf("Scope: %s to %s, shifts %s, %d record(s)\n\n",
		r.Scope.Start.Format(simulation.DateLayout), r.Scope.End.Format(simulation.DateLayout),
		strings.Join(r.Scope.Shifts, ", "), r.Scope.Records))
	sb.WriteString(fmt.Sprintf("Parameters: defect %.2f%%, downtime %d min, material shortage %.2f%%\n\n",
		r.Parameters.DefectPct, r.Parameters.DowntimeMinutes, r.Parameters.MaterialShortagePct))

	sb.WriteString("| KPI | Value |\n|---|---|\n")
	sb.WriteString(fmt.Sprintf("| Planned units | %d |\n", r.KPIs.PlannedUnits))
	sb.WriteString(fmt.Sprintf("| Actual units | %d |\n", r.KPIs.ActualUnits))
	if r.KPIs.AvgEfficiency.Valid() {
		sb.WriteString(fmt.Sprintf("| Avg efficiency | %.2f%% |\n", float64(r.KPIs.AvgEfficiency)))
	} else {
		sb.WriteString("| Avg efficiency | n/a |\n")
	}
	sb.WriteString(fmt.Sprintf("| Simulated downtime | %d min |\n", r.KPIs.SimulatedDowntimeMinutes))
	sb.WriteString(fmt.Sprintf("| Simulated defect rate | %.2f%% |\n\n", r.KPIs.SimulatedDefectRatePct))

	sb.WriteString(fmt.Sprintf("**%s**\n\n", r.Bottleneck.Message))
	sb.WriteString(fmt.Sprintf("**%s**\n\n", r.Anomalies.Message))
	if len(r.Anomalies.Items) > 0 {
		sb.WriteString("## Low efficiency alerts\n\n| Date | Shift | Efficiency |\n|---|---|---|\n")
		for _, a := range r.Anomalies.Items {
			eff := "n/a"
			if a.EfficiencyPct.Valid() {
				eff = fmt.Sprintf("%.2f%%", float64(a.EfficiencyPct))
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n", a.Date.Format(simulation.DateLayout), a.Shift, eff))
		}
		sb.WriteString("\n")
	}
	if r.Forecast.Insufficient {
		sb.WriteString(fmt.Sprintf("%s\n\n", r.Forecast.Message))
	} else if len(r.Forecast.Points) > 0 {
		sb.WriteString("## Forecast\n\n| Date | Predicted units |\n|---|---|\n")
		for _, p := range r.Forecast.Points {
			sb.WriteString(fmt.Sprintf("| %s | %d |\n", p.Date.Format(simulation.DateLayout), p.PredictedUnits))
		}
		sb.WriteString("\n")
	}
	for _, w := range r.Warnings {
		sb.WriteString(fmt.Sprintf("> %s\n", w))
	}
	if len(r.Warnings) > 0 {
		sb.WriteString("\n")
	}

	for _, chart := range []string{
		visuals.GenerateShiftChart(r.ShiftPerformance),
		visuals.GenerateEfficiencyTrendChart(r.EfficiencyTrend, r.Anomalies.Threshold),
		visuals.GenerateOutputForecastChart(r.OutputTrend, r.Forecast),
	} {
		if chart != "" {
			sb.WriteString(chart)
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

func init() {
	f := simulateCmd.Flags()
	f.StringVar(&simulateOpts.preset, "preset", "", "named scenario preset (default: baseline)")
	f.StringVar(&simulateOpts.start, "start", "", "first production date to include (YYYY-MM-DD)")
	f.StringVar(&simulateOpts.end, "end", "", "last production date to include (YYYY-MM-DD)")
	f.StringSliceVar(&simulateOpts.shifts, "shifts", nil, "shifts to include (default: all)")
	f.Float64Var(&simulateOpts.defect, "defect", 0, "simulated defect rate in percent (0-20)")
	f.IntVar(&simulateOpts.downtime, "downtime", 0, "simulated downtime per record in minutes (0-180)")
	f.Float64Var(&simulateOpts.shortage, "shortage", 0, "simulated material shortage in percent (0-15)")
	f.Float64Var(&simulateOpts.threshold, "threshold", 0, "anomaly threshold in percent (default: ANOMALY_THRESHOLD)")
	f.BoolVar(&simulateOpts.records, "records", false, "include the per-record table")
	f.StringVarP(&simulateOpts.format, "format", "f", "json", "output format: json or markdown")
}
