package stats

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		downtime float64
		shortage float64
		expected Bottleneck
	}{
		{"Equal", 10, 10, Balanced},
		{"BothZero", 0, 0, Balanced},
		{"DowntimeDominant", 20, 10, DowntimeDominant},
		{"ShortageDominant", 5, 10, ShortageDominant},
		{"FractionalShortage", 2, 2.5, ShortageDominant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.downtime, tt.shortage); got != tt.expected {
				t.Errorf("Classify(%v, %v) = %s, want %s", tt.downtime, tt.shortage, got, tt.expected)
			}
		})
	}
}

func TestAnalyzeBottleneck(t *testing.T) {
	tests := []struct {
		name     string
		params   SimulationParameters
		count    int
		expected Bottleneck
		downtime float64
		shortage float64
	}{
		{"DefaultScenario", DefaultParameters(), 4, DowntimeDominant, 120, 12},
		{"ShortageHeavy", SimulationParameters{DowntimeMinutes: 2, MaterialShortagePct: 12}, 3, ShortageDominant, 6, 36},
		{"Tie", SimulationParameters{DowntimeMinutes: 10, MaterialShortagePct: 10}, 5, Balanced, 50, 50},
		{"NoRecords", DefaultParameters(), 0, Balanced, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := AnalyzeBottleneck(tt.params, tt.count)
			if res.Label != tt.expected {
				t.Errorf("Label = %s, want %s", res.Label, tt.expected)
			}
			if res.DowntimeImpact != tt.downtime || res.ShortageImpact != tt.shortage {
				t.Errorf("Impacts = (%v, %v), want (%v, %v)", res.DowntimeImpact, res.ShortageImpact, tt.downtime, tt.shortage)
			}
			if res.Message == "" {
				t.Error("Expected a message")
			}
		})
	}
}
