package stats

import (
	"math"

	"pes-mcp/internal/production"
)

// downtimeLossFactor is the share of hourly planned output lost per hour of downtime.
const downtimeLossFactor = 0.2

// Simulate re-evaluates every record under the same scenario. Each loss channel is an
// independent haircut on planned output, truncated to whole units, and output is floored at 0.
// Efficiency is NaN for records without planned units.
func Simulate(records []production.Record, params SimulationParameters) []SimulatedRecord {
	params = params.Clamp()

	out := make([]SimulatedRecord, len(records))
	for i, r := range records {
		actual := SimulateUnits(r.PlannedUnits, params)
		out[i] = SimulatedRecord{
			Record:        r,
			ActualUnits:   actual,
			EfficiencyPct: Percent(efficiency(actual, r.PlannedUnits)),
		}
	}
	return out
}

// SimulateUnits returns the scenario output for a single planned quantity.
func SimulateUnits(planned int, params SimulationParameters) int {
	p := float64(planned)
	downtimeLoss := int(float64(params.DowntimeMinutes) / 60 * p * downtimeLossFactor)
	defectLoss := int(p * params.DefectPct / 100)
	shortageLoss := int(p * params.MaterialShortagePct / 100)

	return max(0, planned-downtimeLoss-defectLoss-shortageLoss)
}

func efficiency(actual, planned int) float64 {
	if planned == 0 {
		return math.NaN()
	}
	return RoundHalfEven(float64(actual)/float64(planned)*100, 2)
}
