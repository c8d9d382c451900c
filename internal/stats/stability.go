package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// naturalProcessScale is Wheeler's scaling constant for an Individuals chart.
const naturalProcessScale = 2.66

// shiftRunLength is the run of consecutive points on one side of the average that counts as a shift.
const shiftRunLength = 8

// XmRResult is an Individuals and Moving Range chart over daily efficiency.
type XmRResult struct {
	Average     float64   `json:"average"`
	AmR         float64   `json:"average_moving_range"`
	UNPL        float64   `json:"upper_natural_process_limit"`
	LNPL        float64   `json:"lower_natural_process_limit"`
	Values      []float64 `json:"values"`
	MovingRange []float64 `json:"moving_ranges"`
	Signals     []Signal  `json:"signals"`
}

// Signal is a detected special cause variation.
type Signal struct {
	Index       int    `json:"index"`
	Key         string `json:"key"`
	Type        string `json:"type"` // "outlier", "shift"
	Description string `json:"description"`
}

// EfficiencyStability builds an XmR chart from the efficiency trend. Days with undefined
// efficiency are skipped; signals are keyed by date.
func EfficiencyStability(trend []EfficiencyPoint) XmRResult {
	values := make([]float64, 0, len(trend))
	keys := make([]string, 0, len(trend))
	for _, p := range trend {
		if !p.AvgEfficiency.Valid() {
			continue
		}
		values = append(values, float64(p.AvgEfficiency))
		keys = append(keys, p.Date.Format("2006-01-02"))
	}
	return CalculateXmR(values, keys)
}

// CalculateXmR computes natural process limits and binds keys to signals. Limits are bounded to
// the 0-100 percentage scale.
func CalculateXmR(values []float64, keys []string) XmRResult {
	if len(values) == 0 {
		return XmRResult{Values: []float64{}, MovingRange: []float64{}, Signals: []Signal{}}
	}

	result := XmRResult{
		Values:      values,
		Average:     stat.Mean(values, nil),
		MovingRange: make([]float64, 0, len(values)),
	}

	for i := 1; i < len(values); i++ {
		result.MovingRange = append(result.MovingRange, math.Abs(values[i]-values[i-1]))
	}
	if len(result.MovingRange) > 0 {
		result.AmR = stat.Mean(result.MovingRange, nil)
	}

	result.UNPL = math.Min(100, result.Average+naturalProcessScale*result.AmR)
	result.LNPL = math.Max(0, result.Average-naturalProcessScale*result.AmR)
	result.Signals = detectSignals(values, result.Average, result.UNPL, result.LNPL, keys)

	return result
}

func detectSignals(values []float64, avg, unpl, lnpl float64, keys []string) []Signal {
	signals := make([]Signal, 0)
	keyAt := func(i int) string {
		if i < len(keys) {
			return keys[i]
		}
		return ""
	}

	for i, v := range values {
		if v > unpl {
			signals = append(signals, Signal{
				Index:       i,
				Key:         keyAt(i),
				Type:        "outlier",
				Description: "Day above Upper Natural Process Limit (UNPL)",
			})
		} else if v < lnpl {
			signals = append(signals, Signal{
				Index:       i,
				Key:         keyAt(i),
				Type:        "outlier",
				Description: "Day below Lower Natural Process Limit (LNPL)",
			})
		}
	}

	side, count := 0, 0
	for i, v := range values {
		current := 0
		if v > avg {
			current = 1
		} else if v < avg {
			current = -1
		}

		if current == side && current != 0 {
			count++
		} else {
			side = current
			count = 1
		}

		if count == shiftRunLength {
			signals = append(signals, Signal{
				Index:       i,
				Key:         keyAt(i),
				Type:        "shift",
				Description: "8 consecutive days on one side of the average (process shift)",
			})
		}
	}

	return signals
}
