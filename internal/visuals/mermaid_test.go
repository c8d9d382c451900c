package visuals

import (
	"math"
	"strings"
	"testing"
	"time"

	"pes-mcp/internal/stats"
)

func TestGenerateShiftChart(t *testing.T) {
	chart := GenerateShiftChart([]stats.ShiftEfficiency{
		{Shift: "Morning", AvgEfficiency: 82.5},
		{Shift: "Night", AvgEfficiency: stats.Percent(math.NaN())},
	})

	if !strings.HasPrefix(chart, "```mermaid\nxychart-beta") {
		t.Errorf("Unexpected chart header: %s", chart)
	}
	if !strings.Contains(chart, `x-axis ["Morning", "Night"]`) {
		t.Errorf("Missing shift labels: %s", chart)
	}
	if !strings.Contains(chart, "bar [82.5, 0]") {
		t.Errorf("Undefined efficiency should render as 0: %s", chart)
	}

	if GenerateShiftChart(nil) != "" {
		t.Error("Expected empty chart for no shifts")
	}
}

func TestGenerateEfficiencyTrendChart(t *testing.T) {
	d := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	chart := GenerateEfficiencyTrendChart([]stats.EfficiencyPoint{
		{Date: d, AvgEfficiency: 71},
		{Date: d.AddDate(0, 0, 1), AvgEfficiency: 55.25},
	}, 60)

	if !strings.Contains(chart, `x-axis ["03-09", "03-10"]`) {
		t.Errorf("Missing date labels: %s", chart)
	}
	if !strings.Contains(chart, "line [71.0, 55.2]") && !strings.Contains(chart, "line [71.0, 55.3]") {
		t.Errorf("Missing efficiency line: %s", chart)
	}
	if !strings.Contains(chart, "line [60.0, 60.0]") {
		t.Errorf("Missing threshold line: %s", chart)
	}
}

func TestGenerateOutputForecastChart(t *testing.T) {
	d := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	history := []stats.OutputPoint{
		{Date: d, ActualUnits: 100},
		{Date: d.AddDate(0, 0, 1), ActualUnits: 120, DaysElapsed: 1},
	}
	forecast := stats.ForecastResult{Points: []stats.ForecastPoint{
		{Date: d.AddDate(0, 0, 2), DaysElapsed: 2, PredictedUnits: 140},
	}}

	chart := GenerateOutputForecastChart(history, forecast)
	if !strings.Contains(chart, "bar [100, 120, 0]") {
		t.Errorf("Missing history bars: %s", chart)
	}
	if !strings.Contains(chart, "line [0, 0, 140]") {
		t.Errorf("Missing forecast line: %s", chart)
	}
	if !strings.Contains(chart, "y-axis \"Units\" 0 --> 168") {
		t.Errorf("Unexpected y-axis scaling: %s", chart)
	}

	insufficient := GenerateOutputForecastChart(history, stats.ForecastResult{Insufficient: true})
	if strings.Contains(insufficient, "line [") {
		t.Errorf("No forecast line expected without a forecast: %s", insufficient)
	}
}
