package stats

import (
	"math"
	"testing"

	"pes-mcp/internal/production"
)

func TestCalculateKPIs(t *testing.T) {
	records := []SimulatedRecord{
		sim(1, "A", 82, 82),
		sim(1, "B", 70, 70),
		{Record: production.Record{Date: day(2), Shift: "A"}, EfficiencyPct: Percent(math.NaN())},
	}
	params := DefaultParameters()

	k := CalculateKPIs(records, params)
	if k.Records != 3 {
		t.Errorf("Records = %d, want 3", k.Records)
	}
	if k.PlannedUnits != 200 {
		t.Errorf("PlannedUnits = %d, want 200", k.PlannedUnits)
	}
	if k.ActualUnits != 152 {
		t.Errorf("ActualUnits = %d, want 152", k.ActualUnits)
	}
	if k.AvgEfficiency != 76 {
		t.Errorf("AvgEfficiency = %v, want 76", k.AvgEfficiency)
	}
	if k.SimulatedDowntimeMinutes != 90 {
		t.Errorf("SimulatedDowntimeMinutes = %d, want 90", k.SimulatedDowntimeMinutes)
	}
	if k.SimulatedDefectRatePct != 5 {
		t.Errorf("SimulatedDefectRatePct = %v, want 5", k.SimulatedDefectRatePct)
	}
}

func TestCalculateKPIs_Empty(t *testing.T) {
	k := CalculateKPIs(nil, DefaultParameters())
	if k.Records != 0 || k.PlannedUnits != 0 || k.ActualUnits != 0 || k.SimulatedDowntimeMinutes != 0 {
		t.Errorf("Expected zero KPIs, got %+v", k)
	}
	if k.AvgEfficiency.Valid() {
		t.Errorf("Expected undefined average efficiency, got %v", k.AvgEfficiency)
	}
}

func TestAssessDefectSeverity(t *testing.T) {
	rec := func(rate float64) production.Record {
		return production.Record{Date: day(1), Shift: "A", DefectRatePct: rate}
	}

	tests := []struct {
		name     string
		records  []production.Record
		expected SeverityLevel
	}{
		{"Empty", nil, SeverityStable},
		{"Stable", []production.Record{rec(1), rec(2.5)}, SeverityStable},
		{"BoundaryAttention", []production.Record{rec(3)}, SeverityAttention},
		{"Attention", []production.Record{rec(4), rec(7)}, SeverityAttention},
		{"Critical", []production.Record{rec(6), rec(9)}, SeverityCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AssessDefectSeverity(tt.records)
			if got.Level != tt.expected {
				t.Errorf("Level = %s, want %s (avg %v)", got.Level, tt.expected, got.AvgDefectRatePct)
			}
			if got.Color == "" {
				t.Error("Expected a color")
			}
		})
	}
}
