package visuals

import (
	"fmt"
	"math"
	"strings"

	"pes-mcp/internal/stats"
)

const dateLabel = "01-02"

// GenerateShiftChart creates a Mermaid bar chart of average efficiency per shift.
func GenerateShiftChart(shifts []stats.ShiftEfficiency) string {
	if len(shifts) == 0 {
		return ""
	}

	var labels []string
	var values []string
	for _, s := range shifts {
		labels = append(labels, fmt.Sprintf("\"%s\"", s.Shift))
		values = append(values, formatPercent(s.AvgEfficiency))
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Average Efficiency by Shift\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString("    y-axis \"Efficiency (%)\" 0 --> 100\n")
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateEfficiencyTrendChart creates a Mermaid line chart of daily average efficiency,
// with the anomaly threshold as a reference line.
func GenerateEfficiencyTrendChart(trend []stats.EfficiencyPoint, threshold float64) string {
	if len(trend) == 0 {
		return ""
	}

	var labels []string
	var values []string
	var limits []string
	for _, p := range trend {
		labels = append(labels, fmt.Sprintf("\"%s\"", p.Date.Format(dateLabel)))
		values = append(values, formatPercent(p.AvgEfficiency))
		limits = append(limits, fmt.Sprintf("%.1f", threshold))
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Average Efficiency Over Time\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString("    y-axis \"Efficiency (%)\" 0 --> 100\n")
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(values, ", ")))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(limits, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateOutputForecastChart creates a Mermaid chart of historical daily output as bars and
// the projected output as a line over the forecast days.
func GenerateOutputForecastChart(history []stats.OutputPoint, forecast stats.ForecastResult) string {
	if len(history) == 0 {
		return ""
	}

	var labels []string
	var bars []string
	var line []string
	maxVal := 0

	for _, p := range history {
		labels = append(labels, fmt.Sprintf("\"%s\"", p.Date.Format(dateLabel)))
		bars = append(bars, fmt.Sprintf("%d", p.ActualUnits))
		line = append(line, "0")
		maxVal = max(maxVal, p.ActualUnits)
	}
	for _, p := range forecast.Points {
		labels = append(labels, fmt.Sprintf("\"%s\"", p.Date.Format(dateLabel)))
		bars = append(bars, "0")
		line = append(line, fmt.Sprintf("%d", max(0, p.PredictedUnits)))
		maxVal = max(maxVal, p.PredictedUnits)
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	if forecast.Insufficient {
		sb.WriteString("    title \"Daily Output (not enough history to forecast)\"\n")
	} else {
		sb.WriteString(fmt.Sprintf("    title \"Daily Output and %d-Day Forecast\"\n", len(forecast.Points)))
	}
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Units\" 0 --> %d\n", maxVal+int(math.Max(1, float64(maxVal)*0.2))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(bars, ", ")))
	if !forecast.Insufficient {
		sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(line, ", ")))
	}
	sb.WriteString("```")
	return sb.String()
}

func formatPercent(p stats.Percent) string {
	if !p.Valid() {
		return "0"
	}
	return fmt.Sprintf("%.1f", float64(p))
}
