package planner

import (
	"time"

	"github.com/username/trip-planner/internal/calendar"
	"github.com/username/trip-planner/pkg/dateutil"
)

// Traveler is one member of the travelling group
type Traveler struct {
	Name         string
	Jurisdiction calendar.Jurisdiction
}

// Cost is one traveler's outbound plus return fare
type Cost struct {
	Traveler string
	Amount   int
}

// Costs lists per-traveler costs in traveler order plus their total
type Costs struct {
	PerTraveler []Cost
	Total       int
}

// For returns the cost of a traveler
func (c Costs) For(traveler string) (int, bool) {
	for _, cost := range c.PerTraveler {
		if cost.Traveler == traveler {
			return cost.Amount, true
		}
	}
	return 0, false
}

// Option is one candidate itinerary. Options are built fresh on every generation pass
// and are never modified afterwards.
type Option struct {
	StartDay  int
	EndDay    int
	Duration  int
	StartDate time.Time
	EndDate   time.Time

	Costs Costs

	WeekendCount   int
	HolidayOverlap map[calendar.Jurisdiction][]string
	HybridOverlap  []string
	LeaveDays      map[calendar.Jurisdiction]float64
}

// StartLabel is the human-readable start date, e.g. "April 9"
func (o Option) StartLabel() string {
	return dateutil.Label(o.StartDate)
}

// EndLabel is the human-readable end date
func (o Option) EndLabel() string {
	return dateutil.Label(o.EndDate)
}

// TotalLeave sums leave days over all jurisdictions
func (o Option) TotalLeave() float64 {
	total := 0.0
	for _, days := range o.LeaveDays {
		total += days
	}
	return total
}

// LeaveFor returns the leave a traveler spends, following their jurisdiction
func (o Option) LeaveFor(t Traveler) float64 {
	return o.LeaveDays[t.Jurisdiction]
}
