package ranking

import (
	"sort"
	"strings"

	"github.com/username/trip-planner/internal/calendar"
	"github.com/username/trip-planner/internal/planner"
)

// SortKey selects the projection options are ordered by.
// Besides the named keys, any traveler name sorts by that traveler's cost.
type SortKey string

const (
	SortDates    SortKey = "dates"
	SortLeaves   SortKey = "leaves"
	SortDuration SortKey = "duration"
	SortTotal    SortKey = "total"
)

// Direction of the sort
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// SortState is the single active sort
type SortState struct {
	Key       SortKey
	Direction Direction
}

// ParseSortKey resolves user input against the fixed keys and the traveler names.
// Unknown input falls back to dates.
func ParseSortKey(raw string, travelers []string) SortKey {
	value := strings.TrimSpace(raw)
	switch SortKey(strings.ToLower(value)) {
	case SortDates, SortLeaves, SortDuration, SortTotal:
		return SortKey(strings.ToLower(value))
	}
	for _, name := range travelers {
		if strings.EqualFold(name, value) {
			return SortKey(name)
		}
	}
	return SortDates
}

// ParseDirection accepts asc/ascending and desc/descending; anything else is ascending
func ParseDirection(raw string) Direction {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "desc", "descending":
		return Descending
	default:
		return Ascending
	}
}

// sortValue is a projection that compares either as a string or as a number
type sortValue struct {
	text    string
	number  float64
	numeric bool
}

func (a sortValue) less(b sortValue) bool {
	if a.numeric {
		return a.number < b.number
	}
	return a.text < b.text
}

// project resolves the comparable value of an option for a key
func project(o planner.Option, key SortKey, conv Conversion) sortValue {
	switch key {
	case SortDates:
		// Labels compare as strings, so "April 10" sorts before "April 9"
		return sortValue{text: o.StartLabel()}
	case SortLeaves:
		return sortValue{number: LeaveKey(o), numeric: true}
	case SortDuration:
		return sortValue{number: float64(o.Duration), numeric: true}
	case SortTotal:
		return sortValue{number: conv.Apply(o.Costs.Total), numeric: true}
	default:
		if cost, ok := o.Costs.For(string(key)); ok {
			return sortValue{number: conv.Apply(cost), numeric: true}
		}
		return sortValue{text: o.StartLabel()}
	}
}

// LeaveKey orders by German plus Indian leave days, tie-broken by German leave days
func LeaveKey(o planner.Option) float64 {
	german, indian := o.LeaveDays[calendar.German], o.LeaveDays[calendar.Indian]
	return (german+indian)*100 + german
}

// Sort returns a stably sorted copy of options. Equal keys keep their input order
// in both directions.
func Sort(options []planner.Option, state SortState, conv Conversion) []planner.Option {
	keys := make([]sortValue, len(options))
	idx := make([]int, len(options))
	for i, o := range options {
		keys[i] = project(o, state.Key, conv)
		idx[i] = i
	}

	sort.SliceStable(idx, func(i, j int) bool {
		a, b := keys[idx[i]], keys[idx[j]]
		if state.Direction == Descending {
			return b.less(a)
		}
		return a.less(b)
	})

	sorted := make([]planner.Option, len(options))
	for i, k := range idx {
		sorted[i] = options[k]
	}
	return sorted
}
