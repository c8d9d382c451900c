package mcp

import (
	"fmt"

	"pes-mcp/internal/simulation"
	"pes-mcp/internal/visuals"
)

func (s *Server) handleGetDatasetMetadata() (*ResponseEnvelope, error) {
	store := s.engine.Store()
	opts := s.engine.Options()

	res := map[string]interface{}{
		"source":                store.Source(),
		"records":               store.Len(),
		"shifts":                store.Shifts(),
		"presets":               s.presets,
		"anomaly_threshold_pct": opts.AnomalyThreshold,
		"forecast_horizon_days": opts.ForecastHorizon,
	}
	if minDate, maxDate, ok := store.DateBounds(); ok {
		res["start_date"] = minDate.Format(simulation.DateLayout)
		res["end_date"] = maxDate.Format(simulation.DateLayout)
	}

	var warnings []string
	if store.Len() == 0 {
		warnings = append(warnings, "DATA WARNING: the dataset is empty. Every scenario will return empty results.")
	}
	return WrapResponse(res, nil, warnings, nil), nil
}

func (s *Server) handleRunScenario(in simulation.Input) (*ResponseEnvelope, error) {
	report, err := s.run(in)
	if err != nil {
		return nil, err
	}

	guidance := []string{
		"Efficiency values are percentages rounded to 2 decimals; null means the record had zero planned units.",
	}
	if report.Forecast.Insufficient {
		guidance = append(guidance, "No forecast was produced. Widen the date range to more than 7 production days before discussing future output.")
	}

	res := WrapResponse(report, report.Scope, report.Warnings, guidance)
	if s.charts {
		res.Charts = chartsFor(report)
	}
	return res, nil
}

func (s *Server) handleDetectAnomalies(in simulation.Input) (*ResponseEnvelope, error) {
	report, err := s.run(in)
	if err != nil {
		return nil, err
	}
	return WrapResponse(report.Anomalies, report.Scope, report.Warnings, nil), nil
}

func (s *Server) handleAnalyzeBottleneck(in simulation.Input) (*ResponseEnvelope, error) {
	report, err := s.run(in)
	if err != nil {
		return nil, err
	}

	res := map[string]interface{}{
		"parameters": report.Parameters,
		"bottleneck": report.Bottleneck,
	}
	guidance := []string{
		"total_downtime_impact is in minutes and total_shortage_impact in percentage points; they are compared directly.",
	}
	return WrapResponse(res, report.Scope, report.Warnings, guidance), nil
}

func (s *Server) handleForecastOutput(in simulation.Input) (*ResponseEnvelope, error) {
	report, err := s.run(in)
	if err != nil {
		return nil, err
	}

	res := map[string]interface{}{
		"history":  report.OutputTrend,
		"forecast": report.Forecast,
	}
	var guidance []string
	if report.Forecast.Insufficient {
		guidance = append(guidance, fmt.Sprintf("Only %d production day(s) are in scope. DO NOT extrapolate output without a forecast.", report.Forecast.HistoryDays))
	}

	env := WrapResponse(res, report.Scope, report.Warnings, guidance)
	if s.charts {
		env.Charts = []string{visuals.GenerateOutputForecastChart(report.OutputTrend, report.Forecast)}
	}
	return env, nil
}

func (s *Server) run(in simulation.Input) (simulation.Report, error) {
	req, err := in.Request(s.presets)
	if err != nil {
		return simulation.Report{}, err
	}
	return s.engine.Run(req), nil
}

func chartsFor(report simulation.Report) []string {
	var charts []string
	for _, c := range []string{
		visuals.GenerateShiftChart(report.ShiftPerformance),
		visuals.GenerateEfficiencyTrendChart(report.EfficiencyTrend, report.Anomalies.Threshold),
		visuals.GenerateOutputForecastChart(report.OutputTrend, report.Forecast),
	} {
		if c != "" {
			charts = append(charts, c)
		}
	}
	return charts
}
