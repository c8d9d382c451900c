package production

import (
	"time"
)

// Record is one row of historical production data. Records are loaded once and never mutated.
type Record struct {
	Date            time.Time `json:"date"`
	Shift           string    `json:"shift"`
	PlannedUnits    int       `json:"planned_units"`
	DefectRatePct   float64   `json:"defect_rate_pct"`
	DowntimeMinutes float64   `json:"downtime_minutes"`
}

// Day truncates t to its calendar day in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Store is the read-only record set shared by every scenario run.
type Store struct {
	records []Record
	source  string
}

// NewStore wraps records in a Store. The slice is copied so later changes by the caller are not visible.
func NewStore(source string, records []Record) *Store {
	cp := make([]Record, len(records))
	copy(cp, records)
	for i := range cp {
		cp[i].Date = Day(cp[i].Date)
	}
	return &Store{records: cp, source: source}
}

// Records returns a copy of the stored records in load order.
func (s *Store) Records() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	return len(s.records)
}

// Source returns the path or label the records were loaded from.
func (s *Store) Source() string {
	return s.source
}

// DateBounds returns the earliest and latest production dates. ok is false for an empty store.
func (s *Store) DateBounds() (minDate, maxDate time.Time, ok bool) {
	if len(s.records) == 0 {
		return time.Time{}, time.Time{}, false
	}
	minDate, maxDate = s.records[0].Date, s.records[0].Date
	for _, r := range s.records[1:] {
		if r.Date.Before(minDate) {
			minDate = r.Date
		}
		if r.Date.After(maxDate) {
			maxDate = r.Date
		}
	}
	return minDate, maxDate, true
}

// Shifts returns the distinct shift labels in first-seen order.
func (s *Store) Shifts() []string {
	seen := make(map[string]bool)
	var shifts []string
	for _, r := range s.records {
		if !seen[r.Shift] {
			seen[r.Shift] = true
			shifts = append(shifts, r.Shift)
		}
	}
	return shifts
}
