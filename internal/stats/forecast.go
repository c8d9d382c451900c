package stats

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/stat"
)

const (
	// MinForecastHistory is the number of distinct days that must be exceeded before fitting.
	MinForecastHistory = 7
	// DefaultForecastHorizon is the number of future days projected.
	DefaultForecastHorizon = 7
)

// ForecastPoint is one projected day.
type ForecastPoint struct {
	Date           time.Time `json:"date"`
	DaysElapsed    int       `json:"days_elapsed"`
	PredictedUnits int       `json:"predicted_actual_units"`
}

// ForecastResult is a linear projection of daily output, or an insufficient-data signal.
type ForecastResult struct {
	Insufficient bool            `json:"insufficient_data"`
	Message      string          `json:"message,omitempty"`
	HistoryDays  int             `json:"history_days"`
	Intercept    float64         `json:"intercept"`
	Slope        float64         `json:"slope_units_per_day"`
	FlatLine     bool            `json:"flat_line,omitempty"`
	Points       []ForecastPoint `json:"points"`
}

// ForecastOutput fits an ordinary least squares line of daily output on days elapsed and
// projects it horizon days past the last observed day. Predictions are truncated to whole units.
// With no spread in days elapsed the forecast is a flat line at mean output.
func ForecastOutput(trend []OutputPoint, horizon int) ForecastResult {
	if horizon <= 0 {
		horizon = DefaultForecastHorizon
	}

	res := ForecastResult{
		HistoryDays: len(trend),
		Points:      []ForecastPoint{},
	}
	if len(trend) <= MinForecastHistory {
		res.Insufficient = true
		res.Message = fmt.Sprintf("Not enough historical data for prediction: need more than %d days, have %d.", MinForecastHistory, len(trend))
		return res
	}

	x := make([]float64, len(trend))
	y := make([]float64, len(trend))
	maxDays := trend[0].DaysElapsed
	maxDate := trend[0].Date
	for i, p := range trend {
		x[i] = float64(p.DaysElapsed)
		y[i] = float64(p.ActualUnits)
		if p.DaysElapsed > maxDays {
			maxDays = p.DaysElapsed
		}
		if p.Date.After(maxDate) {
			maxDate = p.Date
		}
	}

	if stat.Variance(x, nil) == 0 {
		res.FlatLine = true
		res.Intercept = stat.Mean(y, nil)
	} else {
		res.Intercept, res.Slope = stat.LinearRegression(x, y, nil, false)
	}

	res.Points = make([]ForecastPoint, horizon)
	for i := 1; i <= horizon; i++ {
		day := maxDays + i
		res.Points[i-1] = ForecastPoint{
			Date:           maxDate.AddDate(0, 0, i),
			DaysElapsed:    day,
			PredictedUnits: int(res.Intercept + res.Slope*float64(day)),
		}
	}
	return res
}
