package stats

import (
	"math"

	"pes-mcp/internal/production"
)

// KPISummary holds the headline numbers of a scenario run.
type KPISummary struct {
	Records                  int     `json:"records"`
	PlannedUnits             int     `json:"planned_units"`
	ActualUnits              int     `json:"actual_units"`
	AvgEfficiency            Percent `json:"avg_efficiency_pct"`
	SimulatedDowntimeMinutes int     `json:"simulated_downtime_minutes"`
	SimulatedDefectRatePct   float64 `json:"simulated_defect_rate_pct"`
}

// CalculateKPIs totals planned and simulated output and averages the defined efficiencies.
func CalculateKPIs(records []SimulatedRecord, params SimulationParameters) KPISummary {
	params = params.Clamp()
	k := KPISummary{
		Records:                  len(records),
		SimulatedDowntimeMinutes: params.DowntimeMinutes * len(records),
		SimulatedDefectRatePct:   params.DefectPct,
	}

	effs := make([]float64, len(records))
	for i, r := range records {
		k.PlannedUnits += r.PlannedUnits
		k.ActualUnits += r.ActualUnits
		effs[i] = float64(r.EfficiencyPct)
	}
	k.AvgEfficiency = Percent(meanSkipNaN(effs))
	return k
}

// SeverityLevel grades observed defect rates.
type SeverityLevel string

const (
	SeverityStable    SeverityLevel = "stable"
	SeverityAttention SeverityLevel = "attention"
	SeverityCritical  SeverityLevel = "critical"
)

// DefectSeverity summarizes observed defect rates of the records in scope.
type DefectSeverity struct {
	Level            SeverityLevel `json:"level"`
	AvgDefectRatePct Percent       `json:"avg_defect_rate_pct"`
	Color            string        `json:"color"`
}

// AssessDefectSeverity grades the mean observed defect rate: below 3% stable, below 6%
// attention, otherwise critical. An empty scope is stable.
func AssessDefectSeverity(records []production.Record) DefectSeverity {
	rates := make([]float64, len(records))
	for i, r := range records {
		rates[i] = r.DefectRatePct
	}
	avg := meanSkipNaN(rates)

	switch {
	case math.IsNaN(avg) || avg < 3:
		return DefectSeverity{Level: SeverityStable, AvgDefectRatePct: Percent(avg), Color: "#e8f5e9"}
	case avg < 6:
		return DefectSeverity{Level: SeverityAttention, AvgDefectRatePct: Percent(avg), Color: "#fff8e1"}
	default:
		return DefectSeverity{Level: SeverityCritical, AvgDefectRatePct: Percent(avg), Color: "#ffebee"}
	}
}
