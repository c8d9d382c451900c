package stats

import (
	"math"
	"testing"
)

func TestDetectAnomalies(t *testing.T) {
	records := []SimulatedRecord{
		sim(1, "A", 55, 55),
		sim(2, "B", 60, 60), // boundary is not an anomaly
		sim(3, "A", 12, 12.5),
		sim(4, "B", 0, math.NaN()),
		sim(5, "A", 60, 59.99),
		sim(6, "B", 55, 55),
		sim(7, "A", 95, 95),
	}

	res := DetectAnomalies(records, DefaultAnomalyThreshold)
	if res.Count != 4 || len(res.Items) != 4 {
		t.Fatalf("Expected 4 anomalies, got count=%d items=%d", res.Count, len(res.Items))
	}
	if res.Healthy {
		t.Error("Report with anomalies must not be healthy")
	}

	for i, a := range res.Items {
		if float64(a.EfficiencyPct) >= DefaultAnomalyThreshold {
			t.Errorf("Item %d above threshold: %v", i, a.EfficiencyPct)
		}
		if i > 0 && res.Items[i-1].EfficiencyPct > a.EfficiencyPct {
			t.Errorf("Items not sorted ascending at %d", i)
		}
	}

	if res.Items[0].EfficiencyPct != 12.5 {
		t.Errorf("Worst record should come first, got %v", res.Items[0].EfficiencyPct)
	}
	// Ties keep input order.
	if !res.Items[1].Date.Equal(day(1)) || !res.Items[2].Date.Equal(day(6)) {
		t.Errorf("Equal efficiencies should keep input order: %+v", res.Items)
	}
}

func TestDetectAnomalies_NoneExcludedBelowThreshold(t *testing.T) {
	var records []SimulatedRecord
	for i := 0; i < 100; i++ {
		records = append(records, sim(1+i%28, "A", i, float64(i)))
	}

	res := DetectAnomalies(records, 60)
	flagged := make(map[float64]bool)
	for _, a := range res.Items {
		flagged[float64(a.EfficiencyPct)] = true
	}
	for _, r := range records {
		if float64(r.EfficiencyPct) < 60 && !flagged[float64(r.EfficiencyPct)] {
			t.Errorf("Record with efficiency %v was not flagged", r.EfficiencyPct)
		}
	}
	if res.Count != 60 {
		t.Errorf("Expected 60 anomalies, got %d", res.Count)
	}
}

func TestDetectAnomalies_Healthy(t *testing.T) {
	res := DetectAnomalies([]SimulatedRecord{sim(1, "A", 90, 90)}, DefaultAnomalyThreshold)
	if !res.Healthy || res.Count != 0 {
		t.Errorf("Expected healthy report, got %+v", res)
	}
	if res.Items == nil {
		t.Error("Items should be empty, not nil")
	}

	empty := DetectAnomalies(nil, DefaultAnomalyThreshold)
	if !empty.Healthy || empty.Count != 0 {
		t.Errorf("Empty input should be healthy, got %+v", empty)
	}
}
