package ranking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/trip-planner/internal/calendar"
	"github.com/username/trip-planner/internal/planner"
	"github.com/username/trip-planner/pkg/dateutil"
)

func option(startDay int, month time.Month, day, duration int, jonas, priya int, german, indian float64) planner.Option {
	start := dateutil.Date(2025, month, day)
	return planner.Option{
		StartDay:  startDay,
		EndDay:    startDay + duration - 1,
		Duration:  duration,
		StartDate: start,
		EndDate:   dateutil.AddDays(start, duration-1),
		Costs: planner.Costs{
			PerTraveler: []planner.Cost{{Traveler: "Jonas", Amount: jonas}, {Traveler: "Priya", Amount: priya}},
			Total:       jonas + priya,
		},
		LeaveDays: map[calendar.Jurisdiction]float64{calendar.German: german, calendar.Indian: indian},
	}
}

func startDays(options []planner.Option) []int {
	days := make([]int, len(options))
	for i, o := range options {
		days[i] = o.StartDay
	}
	return days
}

func sampleOptions() []planner.Option {
	return []planner.Option{
		option(9, 4, 9, 7, 40000, 52000, 3, 2),   // total leave 5, german 3 -> 503
		option(10, 4, 10, 7, 38000, 61000, 2, 3), // 5, german 2 -> 502
		option(31, 5, 1, 7, 45000, 48000, 4, 0),  // 4, german 4 -> 404
		option(12, 4, 12, 8, 39000, 50000, 4, 4), // 8 -> 804
	}
}

func TestParseCeiling(t *testing.T) {
	tests := []struct {
		raw    string
		want   float64
		wantOK bool
	}{
		{"", 0, false},
		{"   ", 0, false},
		{"abc", 0, false},
		{"12abc", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"450", 450, true},
		{" 450.5 ", 450.5, true},
		{"0", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseCeiling(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	ceilings := ParseCeilings(map[string]string{"Jonas": "40000", "Priya": "", "Arjun": "cheap"})
	assert.Equal(t, Ceilings{"Jonas": 40000}, ceilings)
}

func TestFilter_CeilingBelowEveryCost(t *testing.T) {
	options := sampleOptions()

	got := Filter(options, Ceilings{"Priya": 1000}, Conversion{})
	assert.Empty(t, got)
	assert.NotNil(t, got)
	assert.Len(t, options, 4, "input must not change")
}

func TestFilter_Unconstrained(t *testing.T) {
	options := sampleOptions()

	got := Filter(options, Ceilings{}, Conversion{})
	assert.Equal(t, startDays(options), startDays(got))

	got = Filter(options, ParseCeilings(map[string]string{"Jonas": "", "Priya": "n/a"}), Conversion{})
	assert.Len(t, got, len(options))
}

func TestFilter_Monotonic(t *testing.T) {
	options := sampleOptions()

	prev := Filter(options, Ceilings{"Jonas": 50000}, Conversion{})
	for ceiling := 50000.0; ceiling >= 30000; ceiling -= 500 {
		next := Filter(options, Ceilings{"Jonas": ceiling}, Conversion{})
		require.LessOrEqual(t, len(next), len(prev))

		kept := make(map[int]bool)
		for _, o := range prev {
			kept[o.StartDay] = true
		}
		for _, o := range next {
			require.True(t, kept[o.StartDay], "tightening to %.0f added option %d", ceiling, o.StartDay)
		}
		prev = next
	}
}

func TestFilter_ConvertsBeforeComparing(t *testing.T) {
	options := sampleOptions()

	// 40000 INR * 0.0107 = 428 EUR
	converted := Filter(options, Ceilings{"Jonas": 430}, Conversion{Rate: 0.0107})
	assert.Equal(t, []int{9, 10, 12}, startDays(converted))

	// without a rate the same ceiling is read as INR
	assert.Empty(t, Filter(options, Ceilings{"Jonas": 430}, Conversion{}))
}

func TestSort_DatesUsesLabelOrder(t *testing.T) {
	options := sampleOptions()

	sorted := Sort(options, SortState{Key: SortDates}, Conversion{})
	labels := make([]string, len(sorted))
	for i, o := range sorted {
		labels[i] = o.StartLabel()
	}

	assert.Equal(t, []string{"April 10", "April 12", "April 9", "May 1"}, labels)
}

func TestSort_LeavesCompositeKey(t *testing.T) {
	sorted := Sort(sampleOptions(), SortState{Key: SortLeaves}, Conversion{})
	assert.Equal(t, []int{31, 10, 9, 12}, startDays(sorted))

	sorted = Sort(sampleOptions(), SortState{Key: SortLeaves, Direction: Descending}, Conversion{})
	assert.Equal(t, []int{12, 9, 10, 31}, startDays(sorted))
}

func TestSort_Costs(t *testing.T) {
	options := sampleOptions()

	assert.Equal(t, []int{10, 12, 9, 31}, startDays(Sort(options, SortState{Key: "Jonas"}, Conversion{})))
	assert.Equal(t, []int{31, 12, 9, 10}, startDays(Sort(options, SortState{Key: "Priya"}, Conversion{})))
	assert.Equal(t, []int{12, 9, 31, 10}, startDays(Sort(options, SortState{Key: SortTotal}, Conversion{Rate: 0.0107})))
	assert.Equal(t, []int{10, 31, 9, 12}, startDays(Sort(options, SortState{Key: SortTotal, Direction: Descending}, Conversion{})))
}

func TestSort_StableAcrossDirections(t *testing.T) {
	options := []planner.Option{
		option(1, 4, 1, 7, 100, 100, 1, 1),
		option(2, 4, 2, 8, 100, 100, 1, 1),
		option(3, 4, 3, 7, 100, 100, 1, 1),
		option(4, 4, 4, 8, 100, 100, 1, 1),
		option(5, 4, 5, 7, 100, 100, 1, 1),
	}

	asc := Sort(options, SortState{Key: SortDuration}, Conversion{})
	assert.Equal(t, []int{1, 3, 5, 2, 4}, startDays(asc))

	desc := Sort(asc, SortState{Key: SortDuration, Direction: Descending}, Conversion{})
	assert.Equal(t, []int{2, 4, 1, 3, 5}, startDays(desc))

	again := Sort(desc, SortState{Key: SortDuration}, Conversion{})
	assert.Equal(t, startDays(asc), startDays(again))

	assert.Equal(t, []int{1, 2, 3, 4, 5}, startDays(options), "input must not change")
}

func TestSort_Empty(t *testing.T) {
	assert.Empty(t, Sort(nil, SortState{Key: SortTotal}, Conversion{}))
}

func TestParseSortKey(t *testing.T) {
	travelers := []string{"Jonas", "Priya"}

	assert.Equal(t, SortLeaves, ParseSortKey("Leaves", travelers))
	assert.Equal(t, SortTotal, ParseSortKey(" total ", travelers))
	assert.Equal(t, SortKey("Priya"), ParseSortKey("priya", travelers))
	assert.Equal(t, SortDates, ParseSortKey("price", travelers))
	assert.Equal(t, SortDates, ParseSortKey("", travelers))

	assert.Equal(t, Descending, ParseDirection("DESC"))
	assert.Equal(t, Descending, ParseDirection("descending"))
	assert.Equal(t, Ascending, ParseDirection("up"))
}

func TestLeaveKey_IgnoresOtherJurisdictions(t *testing.T) {
	o := option(1, 4, 1, 7, 100, 100, 3, 2)
	assert.Equal(t, 503.0, LeaveKey(o))

	o.LeaveDays[calendar.Jurisdiction("germn")] = 4
	assert.Equal(t, 503.0, LeaveKey(o))
}
