package calendar

import (
	"time"

	"github.com/username/trip-planner/pkg/dateutil"
	"go.uber.org/zap"
)

// Annotator classifies days and accounts working days per jurisdiction
type Annotator struct {
	holidays           HolidaySet
	hybrid             DateSet
	hybridJurisdiction Jurisdiction
	notes              map[string]string
	logger             *zap.Logger
}

// AnnotatorConfig carries the immutable calendar inputs
type AnnotatorConfig struct {
	Holidays           HolidaySet
	Hybrid             DateSet
	HybridJurisdiction Jurisdiction      // whose working days the hybrid days halve
	Notes              map[string]string // optional display names keyed by YYYY-MM-DD
}

// NewAnnotator creates a new Annotator
func NewAnnotator(cfg AnnotatorConfig, logger *zap.Logger) *Annotator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Notes == nil {
		cfg.Notes = map[string]string{}
	}

	a := &Annotator{
		holidays:           cfg.Holidays,
		hybrid:             cfg.Hybrid,
		hybridJurisdiction: cfg.HybridJurisdiction,
		notes:              cfg.Notes,
		logger:             logger,
	}

	counts := make(map[string]int)
	for _, j := range cfg.Holidays.Jurisdictions() {
		counts[string(j)] = cfg.Holidays.For(j).Len()
	}
	logger.Debug("Calendar annotator ready",
		zap.Any("holidays", counts),
		zap.Int("hybrid_days", cfg.Hybrid.Len()),
		zap.String("hybrid_jurisdiction", string(cfg.HybridJurisdiction)))

	return a
}

// Jurisdictions returns the jurisdictions known to the annotator
func (a *Annotator) Jurisdictions() []Jurisdiction {
	return a.holidays.Jurisdictions()
}

// ClassifyDay returns the weekend, holiday and hybrid classification of a date
func (a *Annotator) ClassifyDay(date time.Time) DayInfo {
	date = dateutil.Noon(date)
	key := dateutil.ISODate(date)

	info := DayInfo{
		Date:      date,
		Key:       key,
		IsWeekend: dateutil.IsWeekend(date),
		Holidays:  make(map[Jurisdiction]bool),
		Hybrid:    a.hybrid.Contains(key),
		Note:      a.notes[key],
	}
	for _, j := range a.holidays.Jurisdictions() {
		if a.holidays.For(j).Contains(key) {
			info.Holidays[j] = true
		}
	}

	return info
}

// ClassifyRange applies ClassifyDay to every day in [start, end]
func (a *Annotator) ClassifyRange(start, end time.Time) []DayInfo {
	days := make([]DayInfo, 0, dateutil.DaysInclusive(start, end))
	dateutil.EachDay(start, end, func(day time.Time) {
		days = append(days, a.ClassifyDay(day))
	})
	return days
}

// HolidaysInRange returns each jurisdiction's holidays within [start, end].
// Every jurisdiction is present, with an empty list when nothing matches.
func (a *Annotator) HolidaysInRange(start, end time.Time) map[Jurisdiction][]string {
	startKey, endKey := dateutil.ISODate(start), dateutil.ISODate(end)

	result := make(map[Jurisdiction][]string)
	for _, j := range a.holidays.Jurisdictions() {
		result[j] = a.holidays.For(j).InRange(startKey, endKey)
	}
	return result
}

// HybridInRange returns hybrid days within [start, end]
func (a *Annotator) HybridInRange(start, end time.Time) []string {
	return a.hybrid.InRange(dateutil.ISODate(start), dateutil.ISODate(end))
}

// LeaveDays returns working days consumed in [start, end] per jurisdiction.
// Only the hybrid jurisdiction gets half credit on hybrid days.
func (a *Annotator) LeaveDays(start, end time.Time) map[Jurisdiction]float64 {
	result := make(map[Jurisdiction]float64)
	for _, j := range a.holidays.Jurisdictions() {
		hybrid := DateSet{}
		if j == a.hybridJurisdiction {
			hybrid = a.hybrid
		}
		result[j] = WorkingDays(start, end, a.holidays.For(j), hybrid)
	}
	return result
}

// WorkingDays counts working days in [start, end]: weekends and holidays count 0,
// hybrid days 0.5, other weekdays 1.
func WorkingDays(start, end time.Time, holidays, hybridDays DateSet) float64 {
	total := 0.0
	dateutil.EachDay(start, end, func(day time.Time) {
		if !dateutil.IsWeekday(day) {
			return
		}

		key := dateutil.ISODate(day)
		switch {
		case holidays.Contains(key):
		case hybridDays.Contains(key):
			total += 0.5
		default:
			total++
		}
	})
	return total
}

// WeekendCount counts Saturdays and Sundays in [start, end]
func WeekendCount(start, end time.Time) int {
	count := 0
	dateutil.EachDay(start, end, func(day time.Time) {
		if dateutil.IsWeekend(day) {
			count++
		}
	})
	return count
}
