package calendar

import (
	"fmt"
	"sort"
	"time"

	"github.com/username/trip-planner/pkg/dateutil"
)

// DateSet is an immutable sorted set of YYYY-MM-DD keys
type DateSet struct {
	dates []string
	index map[string]struct{}
}

// NewDateSet builds a set from canonical YYYY-MM-DD keys, dropping duplicates
func NewDateSet(dates ...string) DateSet {
	index := make(map[string]struct{}, len(dates))
	sorted := make([]string, 0, len(dates))
	for _, d := range dates {
		if _, ok := index[d]; ok {
			continue
		}
		index[d] = struct{}{}
		sorted = append(sorted, d)
	}
	sort.Strings(sorted)

	return DateSet{dates: sorted, index: index}
}

// ParseDateSet validates and canonicalizes date strings before building the set
func ParseDateSet(values []string) (DateSet, error) {
	keys := make([]string, 0, len(values))
	for _, v := range values {
		date, err := dateutil.ParseISODate(v)
		if err != nil {
			return DateSet{}, err
		}
		keys = append(keys, dateutil.ISODate(date))
	}
	return NewDateSet(keys...), nil
}

// Contains reports whether key is in the set
func (s DateSet) Contains(key string) bool {
	_, ok := s.index[key]
	return ok
}

// Len returns the number of dates
func (s DateSet) Len() int {
	return len(s.dates)
}

// Dates returns a copy of the sorted keys
func (s DateSet) Dates() []string {
	out := make([]string, len(s.dates))
	copy(out, s.dates)
	return out
}

// InRange returns keys within [startKey, endKey]. ISO keys compare chronologically as strings.
func (s DateSet) InRange(startKey, endKey string) []string {
	matched := []string{}
	for _, d := range s.dates {
		if d >= startKey && d <= endKey {
			matched = append(matched, d)
		}
	}
	return matched
}

// HolidaySet holds one DateSet per jurisdiction
type HolidaySet struct {
	order []Jurisdiction
	sets  map[Jurisdiction]DateSet
}

// NewHolidaySet builds a holiday set; jurisdictions are kept in alphabetical order
func NewHolidaySet(byJurisdiction map[Jurisdiction]DateSet) HolidaySet {
	order := make([]Jurisdiction, 0, len(byJurisdiction))
	sets := make(map[Jurisdiction]DateSet, len(byJurisdiction))
	for j, set := range byJurisdiction {
		order = append(order, j)
		sets[j] = set
	}
	sort.Slice(order, func(i, k int) bool { return order[i] < order[k] })

	return HolidaySet{order: order, sets: sets}
}

// Jurisdictions returns the jurisdictions in stable order
func (h HolidaySet) Jurisdictions() []Jurisdiction {
	out := make([]Jurisdiction, len(h.order))
	copy(out, h.order)
	return out
}

// For returns the set for a jurisdiction (empty if unknown)
func (h HolidaySet) For(j Jurisdiction) DateSet {
	return h.sets[j]
}

// GermanFederalHolidays returns the nationwide German public holidays for a year
func GermanFederalHolidays(year int) map[string]string {
	holidays := make(map[string]string)

	holidays[formatDate(year, 1, 1)] = "Neujahr"
	holidays[formatDate(year, 5, 1)] = "Tag der Arbeit"
	holidays[formatDate(year, 10, 3)] = "Tag der Deutschen Einheit"
	holidays[formatDate(year, 12, 25)] = "1. Weihnachtstag"
	holidays[formatDate(year, 12, 26)] = "2. Weihnachtstag"

	easter := calculateEaster(year)
	holidays[dateutil.ISODate(easter.AddDate(0, 0, -2))] = "Karfreitag"
	holidays[dateutil.ISODate(easter.AddDate(0, 0, 1))] = "Ostermontag"
	holidays[dateutil.ISODate(easter.AddDate(0, 0, 39))] = "Christi Himmelfahrt"
	holidays[dateutil.ISODate(easter.AddDate(0, 0, 50))] = "Pfingstmontag"

	return holidays
}

// GermanHolidaysBetween collects federal holidays for every year the range touches
func GermanHolidaysBetween(start, end time.Time) (DateSet, map[string]string) {
	notes := make(map[string]string)
	startKey, endKey := dateutil.ISODate(start), dateutil.ISODate(end)

	var keys []string
	for year := start.Year(); year <= end.Year(); year++ {
		for key, name := range GermanFederalHolidays(year) {
			if key >= startKey && key <= endKey {
				keys = append(keys, key)
				notes[key] = name
			}
		}
	}

	return NewDateSet(keys...), notes
}

// calculateEaster calculates Easter Sunday using the Meeus/Jones/Butcher algorithm
func calculateEaster(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC)
}

func formatDate(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}
