package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultDensityGridSize is the number of evaluation points of a density curve.
const DefaultDensityGridSize = 200

// densityCut is how many bandwidths the density grid extends past the data.
const densityCut = 3.0

// ImpactPoint pairs observed downtime with simulated output for one record.
type ImpactPoint struct {
	DowntimeMinutes float64 `json:"downtime_minutes"`
	ActualUnits     int     `json:"actual_units"`
}

// Trendline is an ordinary least squares fit y = Intercept + Slope*x.
type Trendline struct {
	Intercept float64 `json:"intercept"`
	Slope     float64 `json:"slope"`
	RSquared  float64 `json:"r_squared"`
}

// DowntimeImpactResult is the downtime vs. output scatter with its trendline.
type DowntimeImpactResult struct {
	Points    []ImpactPoint `json:"points"`
	Trendline *Trendline    `json:"trendline,omitempty"`
}

// DowntimeImpact relates each record's observed downtime to its simulated output. The
// trendline is omitted for fewer than two points or when downtime does not vary.
func DowntimeImpact(records []SimulatedRecord) DowntimeImpactResult {
	res := DowntimeImpactResult{Points: make([]ImpactPoint, len(records))}
	x := make([]float64, len(records))
	y := make([]float64, len(records))
	for i, r := range records {
		res.Points[i] = ImpactPoint{DowntimeMinutes: r.DowntimeMinutes, ActualUnits: r.ActualUnits}
		x[i] = r.DowntimeMinutes
		y[i] = float64(r.ActualUnits)
	}

	if len(records) < 2 || stat.Variance(x, nil) == 0 {
		return res
	}

	alpha, beta := stat.LinearRegression(x, y, nil, false)
	r2 := stat.RSquared(x, y, nil, alpha, beta)
	if math.IsNaN(r2) || math.IsInf(r2, 0) {
		// Constant output leaves nothing to explain.
		r2 = 0
	}
	res.Trendline = &Trendline{Intercept: alpha, Slope: beta, RSquared: r2}
	return res
}

// DensityPoint is one evaluation of a density curve.
type DensityPoint struct {
	X       float64 `json:"x"`
	Density float64 `json:"density"`
}

// DensityResult is a Gaussian kernel density estimate.
type DensityResult struct {
	Bandwidth float64        `json:"bandwidth"`
	Curve     []DensityPoint `json:"curve"`
}

// DefectDensity estimates the distribution of observed defect rates with a Gaussian kernel
// and Scott's bandwidth. The curve is empty for fewer than two records or no spread.
func DefectDensity(records []SimulatedRecord, gridSize int) DensityResult {
	if gridSize < 2 {
		gridSize = DefaultDensityGridSize
	}

	values := make([]float64, 0, len(records))
	for _, r := range records {
		if !math.IsNaN(r.DefectRatePct) {
			values = append(values, r.DefectRatePct)
		}
	}
	res := DensityResult{Curve: []DensityPoint{}}
	if len(values) < 2 {
		return res
	}

	sd := stat.StdDev(values, nil)
	if sd == 0 {
		return res
	}
	n := float64(len(values))
	bw := sd * math.Pow(n, -1.0/5.0)
	res.Bandwidth = bw

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	lo -= densityCut * bw
	hi += densityCut * bw
	step := (hi - lo) / float64(gridSize-1)

	res.Curve = make([]DensityPoint, gridSize)
	for i := range gridSize {
		x := lo + float64(i)*step
		sum := 0.0
		for _, v := range values {
			sum += distuv.UnitNormal.Prob((x - v) / bw)
		}
		res.Curve[i] = DensityPoint{X: x, Density: sum / (n * bw)}
	}
	return res
}
