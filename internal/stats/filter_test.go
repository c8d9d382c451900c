package stats

import (
	"slices"
	"testing"
	"time"

	"pes-mcp/internal/production"
)

func filterFixture() []production.Record {
	var records []production.Record
	for d := 1; d <= 5; d++ {
		records = append(records,
			production.Record{Date: day(d), Shift: "Morning", PlannedUnits: 100 + d},
			production.Record{Date: day(d), Shift: "Night", PlannedUnits: 200 + d},
		)
	}
	return records
}

func TestFilter(t *testing.T) {
	records := filterFixture()

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		shifts   []string
		expected int
	}{
		{"FullRange", day(1), day(5), []string{"Morning", "Night"}, 10},
		{"SingleDayInclusive", day(3), day(3), []string{"Morning", "Night"}, 2},
		{"OneShift", day(1), day(5), []string{"Night"}, 5},
		{"UnknownShift", day(1), day(5), []string{"Evening"}, 0},
		{"InvertedRange", day(4), day(2), []string{"Morning", "Night"}, 0},
		{"EmptyShiftSet", day(1), day(5), nil, 0},
		{"OutsideRange", day(10), day(20), []string{"Morning"}, 0},
		{"TimeOfDayIgnored", day(2).Add(18 * time.Hour), day(3).Add(time.Hour), []string{"Morning"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(records, tt.start, tt.end, tt.shifts)
			if len(got) != tt.expected {
				t.Errorf("Filter() returned %d records, want %d", len(got), tt.expected)
			}
			if got == nil {
				t.Error("Filter() should return an empty slice, not nil")
			}
		})
	}
}

func TestFilter_Partition(t *testing.T) {
	records := filterFixture()
	start, end := day(2), day(4)
	shifts := []string{"Morning"}

	kept := Filter(records, start, end, shifts)
	matches := func(r production.Record) bool {
		return !r.Date.Before(start) && !r.Date.After(end) && slices.Contains(shifts, r.Shift)
	}

	for _, r := range kept {
		if !matches(r) {
			t.Errorf("Retained record violates predicates: %+v", r)
		}
		if !slices.Contains(records, r) {
			t.Errorf("Retained record not in input: %+v", r)
		}
	}
	for _, r := range records {
		if matches(r) && !slices.Contains(kept, r) {
			t.Errorf("Matching record was dropped: %+v", r)
		}
	}
}
