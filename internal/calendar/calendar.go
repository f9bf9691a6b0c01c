package calendar

import (
	"fmt"
	"time"

	"github.com/username/trip-planner/pkg/dateutil"
)

// Jurisdiction identifies whose public holidays and working rules apply
type Jurisdiction string

const (
	German Jurisdiction = "german"
	Indian Jurisdiction = "indian"
)

// DayType represents the type of day
type DayType int

const (
	DayTypeWorkday DayType = iota + 1
	DayTypeWeekend
	DayTypeHoliday
	DayTypeHybrid
)

func (t DayType) String() string {
	switch t {
	case DayTypeWorkday:
		return "workday"
	case DayTypeWeekend:
		return "weekend"
	case DayTypeHoliday:
		return "holiday"
	case DayTypeHybrid:
		return "hybrid"
	default:
		return "unknown"
	}
}

// DayInfo represents the classification of a specific day
type DayInfo struct {
	Date      time.Time
	Key       string // YYYY-MM-DD
	IsWeekend bool
	Holidays  map[Jurisdiction]bool // only jurisdictions observing a holiday are present
	Hybrid    bool
	Note      string
}

// GermanHoliday reports whether the day is a German public holiday
func (d DayInfo) GermanHoliday() bool {
	return d.Holidays[German]
}

// IndianHoliday reports whether the day is an Indian public holiday
func (d DayInfo) IndianHoliday() bool {
	return d.Holidays[Indian]
}

// Type collapses the classification into a single display type.
// Weekend wins over holiday, holiday wins over hybrid.
func (d DayInfo) Type() DayType {
	switch {
	case d.IsWeekend:
		return DayTypeWeekend
	case len(d.Holidays) > 0:
		return DayTypeHoliday
	case d.Hybrid:
		return DayTypeHybrid
	default:
		return DayTypeWorkday
	}
}

// Window maps ordinal days 1..N onto consecutive calendar dates
type Window struct {
	start time.Time
	days  int
}

// NewWindow creates a window covering [start, end] inclusive
func NewWindow(start, end time.Time) (Window, error) {
	days := dateutil.DaysInclusive(start, end)
	if days == 0 {
		return Window{}, fmt.Errorf("window end %s is before start %s",
			dateutil.ISODate(end), dateutil.ISODate(start))
	}

	return Window{
		start: dateutil.Noon(start),
		days:  days,
	}, nil
}

// Len returns the number of days in the window
func (w Window) Len() int {
	return w.days
}

// Start returns the date of ordinal 1
func (w Window) Start() time.Time {
	return w.start
}

// End returns the date of the last ordinal
func (w Window) End() time.Time {
	return w.Date(w.days)
}

// Contains reports whether ordinal lies in 1..Len()
func (w Window) Contains(ordinal int) bool {
	return ordinal >= 1 && ordinal <= w.days
}

// Date returns the noon-anchored date of an ordinal day
func (w Window) Date(ordinal int) time.Time {
	return dateutil.AddDays(w.start, ordinal-1)
}

// Ordinal returns the ordinal of a date, or false if the date is outside the window
func (w Window) Ordinal(date time.Time) (int, bool) {
	n := dateutil.DaysInclusive(w.start, date)
	if n == 0 || n > w.days {
		return 0, false
	}
	return n, true
}
