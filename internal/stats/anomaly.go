package stats

import (
	"fmt"
	"slices"
	"time"
)

// DefaultAnomalyThreshold is the efficiency percentage below which a record is flagged.
const DefaultAnomalyThreshold = 60.0

// Anomaly is a record whose simulated efficiency fell below the threshold.
type Anomaly struct {
	Date          time.Time `json:"date"`
	Shift         string    `json:"shift"`
	EfficiencyPct Percent   `json:"efficiency_pct"`
}

// AnomalyReport lists low-efficiency records, worst first.
type AnomalyReport struct {
	Threshold float64   `json:"threshold_pct"`
	Count     int       `json:"count"`
	Healthy   bool      `json:"healthy"`
	Message   string    `json:"message"`
	Items     []Anomaly `json:"items"`
}

// DetectAnomalies flags records with efficiency strictly below threshold. Records with
// undefined efficiency are never flagged.
func DetectAnomalies(records []SimulatedRecord, threshold float64) AnomalyReport {
	items := make([]Anomaly, 0)
	for _, r := range records {
		if !r.EfficiencyPct.Valid() || float64(r.EfficiencyPct) >= threshold {
			continue
		}
		items = append(items, Anomaly{
			Date:          r.Date,
			Shift:         r.Shift,
			EfficiencyPct: r.EfficiencyPct,
		})
	}

	slices.SortStableFunc(items, func(a, b Anomaly) int {
		switch {
		case a.EfficiencyPct < b.EfficiencyPct:
			return -1
		case a.EfficiencyPct > b.EfficiencyPct:
			return 1
		}
		return 0
	})

	report := AnomalyReport{
		Threshold: threshold,
		Count:     len(items),
		Healthy:   len(items) == 0,
		Items:     items,
	}
	if report.Healthy {
		report.Message = "All production days are operating above efficiency threshold."
	} else {
		report.Message = fmt.Sprintf("%d days found where efficiency fell below %g%%. Review suggested.", report.Count, threshold)
	}
	return report
}
