package stats

import "fmt"

// Bottleneck labels the dominant constraint of a scenario.
type Bottleneck string

const (
	DowntimeDominant Bottleneck = "downtime_dominant"
	ShortageDominant Bottleneck = "shortage_dominant"
	Balanced         Bottleneck = "balanced"
)

// BottleneckReport carries the classification and the two magnitudes it compared.
type BottleneckReport struct {
	Label          Bottleneck `json:"label"`
	DowntimeImpact float64    `json:"total_downtime_impact"`
	ShortageImpact float64    `json:"total_shortage_impact"`
	Message        string     `json:"message"`
}

// Classify compares the two impacts. Ties, including both zero, are Balanced.
// Downtime is in minutes and shortage in percent; the values are compared as-is.
func Classify(downtimeImpact, shortageImpact float64) Bottleneck {
	switch {
	case downtimeImpact > shortageImpact:
		return DowntimeDominant
	case shortageImpact > downtimeImpact:
		return ShortageDominant
	default:
		return Balanced
	}
}

// AnalyzeBottleneck scales both scenario parameters by the record count and classifies them.
func AnalyzeBottleneck(params SimulationParameters, recordCount int) BottleneckReport {
	params = params.Clamp()
	if recordCount <= 0 {
		return BottleneckReport{
			Label:   Balanced,
			Message: "No records in scope. Downtime and material shortage are contributing equally.",
		}
	}

	downtime := float64(params.DowntimeMinutes * recordCount)
	shortage := params.MaterialShortagePct * float64(recordCount)

	report := BottleneckReport{
		Label:          Classify(downtime, shortage),
		DowntimeImpact: downtime,
		ShortageImpact: shortage,
	}
	switch report.Label {
	case DowntimeDominant:
		report.Message = fmt.Sprintf("Bottleneck detected: downtime is the dominant factor. Total simulated downtime impact: %.0f minutes.", downtime)
	case ShortageDominant:
		report.Message = fmt.Sprintf("Bottleneck detected: material shortage is the dominant factor. Total simulated material shortfall impact: %.2f%%.", shortage)
	default:
		report.Message = "Balanced scenario: downtime and material shortage are contributing equally."
	}
	return report
}
