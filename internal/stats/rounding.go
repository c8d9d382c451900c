package stats

import (
	"math"

	"github.com/shopspring/decimal"
)

// RoundHalfEven rounds v to the given number of decimal places, ties to even.
// NaN and infinities pass through unchanged.
func RoundHalfEven(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).RoundBank(places).InexactFloat64()
}

// meanSkipNaN averages the defined values. The result is NaN when none are defined.
func meanSkipNaN(values []float64) float64 {
	sum := 0.0
	n := 0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}
