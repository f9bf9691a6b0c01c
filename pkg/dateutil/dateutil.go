package dateutil

import (
	"fmt"
	"time"
)

// ISOLayout is the canonical date key used for every holiday and hybrid-day lookup
const ISOLayout = "2006-01-02"

// LabelLayout is the human-readable start-date label ("April 9")
const LabelLayout = "January 2"

// anchorHour is the hour every calendar date is normalized to.
// Noon keeps DST jumps and UTC offsets from moving a date across midnight.
const anchorHour = 12

// Noon returns the given date anchored at 12:00 in its own location
func Noon(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), anchorHour, 0, 0, 0, date.Location())
}

// Date builds a noon-anchored date in the local calendar
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, anchorHour, 0, 0, 0, time.Local)
}

// AddDays moves a date by n calendar days and re-anchors it at noon
func AddDays(date time.Time, n int) time.Time {
	return Noon(Noon(date).AddDate(0, 0, n))
}

// ISODate formats a date as YYYY-MM-DD
func ISODate(date time.Time) string {
	return Noon(date).Format(ISOLayout)
}

// Label formats a date as "Month Day", e.g. "April 9"
func Label(date time.Time) string {
	return Noon(date).Format(LabelLayout)
}

// ParseISODate parses YYYY-MM-DD into a noon-anchored local date
func ParseISODate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(ISOLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return Noon(t), nil
}

// IsWeekday returns true if the date is Monday-Friday
func IsWeekday(date time.Time) bool {
	weekday := date.Weekday()
	return weekday >= time.Monday && weekday <= time.Friday
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// DaysInclusive returns the number of calendar days in [start, end], or 0 if end precedes start
func DaysInclusive(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

// EachDay calls fn for every calendar day in [start, end], each anchored at noon
func EachDay(start, end time.Time, fn func(day time.Time)) {
	n := DaysInclusive(start, end)
	day := Noon(start)
	for i := 0; i < n; i++ {
		fn(day)
		day = AddDays(day, 1)
	}
}
