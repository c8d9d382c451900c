package stats

import (
	"encoding/json"
	"math"
	"strconv"
	"time"

	"pes-mcp/internal/production"
)

// Parameter bounds for a what-if scenario.
const (
	MaxDefectPct           = 20.0
	MaxDowntimeMinutes     = 180
	MaxMaterialShortagePct = 15.0
)

// SimulationParameters is the global what-if applied uniformly to every filtered record.
type SimulationParameters struct {
	DefectPct           float64 `json:"defect_pct" yaml:"defect_pct" validate:"gte=0,lte=20"`
	DowntimeMinutes     int     `json:"downtime_minutes" yaml:"downtime_minutes" validate:"gte=0,lte=180"`
	MaterialShortagePct float64 `json:"material_shortage_pct" yaml:"material_shortage_pct" validate:"gte=0,lte=15"`
}

// DefaultParameters mirrors the dashboard's initial slider positions.
func DefaultParameters() SimulationParameters {
	return SimulationParameters{
		DefectPct:           5.0,
		DowntimeMinutes:     30,
		MaterialShortagePct: 3.0,
	}
}

// Clamp bounds every parameter to its allowed range. NaN becomes zero.
func (p SimulationParameters) Clamp() SimulationParameters {
	return SimulationParameters{
		DefectPct:           clampFloat(p.DefectPct, 0, MaxDefectPct),
		DowntimeMinutes:     min(max(p.DowntimeMinutes, 0), MaxDowntimeMinutes),
		MaterialShortagePct: clampFloat(p.MaterialShortagePct, 0, MaxMaterialShortagePct),
	}
}

func clampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

// Percent is a percentage that may be undefined. NaN marshals as JSON null.
type Percent float64

// Valid reports whether the value is defined.
func (p Percent) Valid() bool {
	return !math.IsNaN(float64(p)) && !math.IsInf(float64(p), 0)
}

// MarshalJSON implements json.Marshaler.
func (p Percent) MarshalJSON() ([]byte, error) {
	if !p.Valid() {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, float64(p), 'f', -1, 64), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Percent) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = Percent(math.NaN())
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*p = Percent(f)
	return nil
}

// SimulatedRecord is a production record re-evaluated under a scenario.
type SimulatedRecord struct {
	production.Record
	ActualUnits   int     `json:"actual_units"`
	EfficiencyPct Percent `json:"efficiency_pct"`
}

// ShiftEfficiency is the mean simulated efficiency of one shift.
type ShiftEfficiency struct {
	Shift         string  `json:"shift"`
	AvgEfficiency Percent `json:"avg_efficiency_pct"`
	Records       int     `json:"records"`
}

// EfficiencyPoint is the mean simulated efficiency of one production day.
type EfficiencyPoint struct {
	Date          time.Time `json:"date"`
	AvgEfficiency Percent   `json:"avg_efficiency_pct"`
}

// OutputPoint is the total simulated output of one production day.
type OutputPoint struct {
	Date        time.Time `json:"date"`
	ActualUnits int       `json:"actual_units"`
	DaysElapsed int       `json:"days_elapsed"`
}
