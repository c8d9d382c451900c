package stats

import (
	"time"

	"pes-mcp/internal/production"
)

// Filter keeps records whose date lies in [start, end] (calendar days, inclusive) and whose
// shift is in shifts. An inverted range or an empty shift set yields no records.
func Filter(records []production.Record, start, end time.Time, shifts []string) []production.Record {
	start, end = production.Day(start), production.Day(end)
	if start.After(end) || len(shifts) == 0 {
		return []production.Record{}
	}

	allowed := make(map[string]bool, len(shifts))
	for _, s := range shifts {
		allowed[s] = true
	}

	out := make([]production.Record, 0, len(records))
	for _, r := range records {
		day := production.Day(r.Date)
		if day.Before(start) || day.After(end) {
			continue
		}
		if !allowed[r.Shift] {
			continue
		}
		out = append(out, r)
	}
	return out
}
