package stats

import (
	"math"
	"slices"
	"time"

	"pes-mcp/internal/production"
)

// ShiftPerformance averages simulated efficiency per shift, in first-seen shift order.
// Undefined efficiencies are excluded from the mean.
func ShiftPerformance(records []SimulatedRecord) []ShiftEfficiency {
	var order []string
	values := make(map[string][]float64)
	for _, r := range records {
		if _, ok := values[r.Shift]; !ok {
			order = append(order, r.Shift)
		}
		values[r.Shift] = append(values[r.Shift], float64(r.EfficiencyPct))
	}

	out := make([]ShiftEfficiency, 0, len(order))
	for _, shift := range order {
		out = append(out, ShiftEfficiency{
			Shift:         shift,
			AvgEfficiency: Percent(meanSkipNaN(values[shift])),
			Records:       len(values[shift]),
		})
	}
	return out
}

// EfficiencyTrend averages simulated efficiency per production day, oldest first.
func EfficiencyTrend(records []SimulatedRecord) []EfficiencyPoint {
	byDate := groupByDate(records)

	out := make([]EfficiencyPoint, 0, len(byDate.dates))
	for _, d := range byDate.dates {
		group := byDate.groups[d]
		vals := make([]float64, len(group))
		for i, r := range group {
			vals[i] = float64(r.EfficiencyPct)
		}
		out = append(out, EfficiencyPoint{Date: d, AvgEfficiency: Percent(meanSkipNaN(vals))})
	}
	return out
}

// OutputTrend sums simulated output per production day, oldest first, with the number of
// days elapsed since the first day.
func OutputTrend(records []SimulatedRecord) []OutputPoint {
	byDate := groupByDate(records)
	if len(byDate.dates) == 0 {
		return []OutputPoint{}
	}

	first := byDate.dates[0]
	out := make([]OutputPoint, 0, len(byDate.dates))
	for _, d := range byDate.dates {
		total := 0
		for _, r := range byDate.groups[d] {
			total += r.ActualUnits
		}
		out = append(out, OutputPoint{
			Date:        d,
			ActualUnits: total,
			DaysElapsed: daysBetween(first, d),
		})
	}
	return out
}

type dateGroups struct {
	dates  []time.Time
	groups map[time.Time][]SimulatedRecord
}

func groupByDate(records []SimulatedRecord) dateGroups {
	g := dateGroups{groups: make(map[time.Time][]SimulatedRecord)}
	for _, r := range records {
		day := production.Day(r.Date)
		if _, ok := g.groups[day]; !ok {
			g.dates = append(g.dates, day)
		}
		g.groups[day] = append(g.groups[day], r)
	}
	slices.SortFunc(g.dates, func(a, b time.Time) int {
		return a.Compare(b)
	})
	return g
}

func daysBetween(from, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours() / 24))
}
