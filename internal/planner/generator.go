package planner

import (
	"fmt"
	"sort"

	"github.com/username/trip-planner/internal/calendar"
	"github.com/username/trip-planner/internal/fares"
	"go.uber.org/zap"
)

// Params are the generation inputs that change at runtime
type Params struct {
	Durations []int
	Rounding  fares.Rounding
}

// Generator enumerates every (start day, duration) pair inside the window
type Generator struct {
	window    calendar.Window
	annotator *calendar.Annotator
	fares     *fares.Table
	travelers []Traveler
	logger    *zap.Logger
}

// NewGenerator checks that the fare table covers the window and every traveler
func NewGenerator(
	window calendar.Window,
	annotator *calendar.Annotator,
	table *fares.Table,
	travelers []Traveler,
	logger *zap.Logger,
) (*Generator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if annotator == nil || table == nil {
		return nil, fmt.Errorf("generator needs an annotator and a fare table")
	}
	if table.Days() != window.Len() {
		return nil, fmt.Errorf("%w: fare table has %d days, window has %d",
			fares.ErrLengthMismatch, table.Days(), window.Len())
	}
	if len(travelers) == 0 {
		return nil, fmt.Errorf("at least one traveler is required")
	}
	for _, t := range travelers {
		if !table.Has(t.Name) {
			return nil, fmt.Errorf("%w: %q has no fares", fares.ErrUnknownTraveler, t.Name)
		}
	}

	ts := make([]Traveler, len(travelers))
	copy(ts, travelers)

	return &Generator{
		window:    window,
		annotator: annotator,
		fares:     table,
		travelers: ts,
		logger:    logger,
	}, nil
}

// Window returns the generation window
func (g *Generator) Window() calendar.Window {
	return g.window
}

// Travelers returns the travelers in cost order
func (g *Generator) Travelers() []Traveler {
	out := make([]Traveler, len(g.travelers))
	copy(out, g.travelers)
	return out
}

// Currency returns the fare table's base currency
func (g *Generator) Currency() string {
	return g.fares.Currency()
}

// Generate builds one Option per start day and selected duration whose end day fits the window.
// Options are ordered by start day, then duration. No durations means no options.
func (g *Generator) Generate(p Params) []Option {
	durations := normalizeDurations(p.Durations)
	if len(durations) == 0 {
		g.logger.Debug("No durations selected, nothing to generate")
		return []Option{}
	}

	options := make([]Option, 0, g.window.Len()*len(durations))
	skipped := 0
	for start := 1; start <= g.window.Len(); start++ {
		for _, duration := range durations {
			option, ok := g.Option(start, duration, p.Rounding)
			if !ok {
				skipped++
				continue
			}
			options = append(options, option)
		}
	}

	g.logger.Debug("Options generated",
		zap.Ints("durations", durations),
		zap.Bool("rounding", p.Rounding.Enabled),
		zap.Int("options", len(options)),
		zap.Int("out_of_window", skipped))

	return options
}

// Option builds the option for a single pair; ok is false when the pair leaves the window
func (g *Generator) Option(startDay, duration int, rounding fares.Rounding) (Option, bool) {
	endDay := startDay + duration - 1
	if duration < 1 || !g.window.Contains(startDay) || !g.window.Contains(endDay) {
		return Option{}, false
	}

	costs := Costs{PerTraveler: make([]Cost, 0, len(g.travelers))}
	for _, t := range g.travelers {
		amount, err := g.fares.TripCost(t.Name, startDay, endDay, rounding)
		if err != nil {
			// unreachable after NewGenerator validation
			g.logger.Error("Fare lookup failed",
				zap.String("traveler", t.Name),
				zap.Int("start_day", startDay),
				zap.Int("end_day", endDay),
				zap.Error(err))
			return Option{}, false
		}
		costs.PerTraveler = append(costs.PerTraveler, Cost{Traveler: t.Name, Amount: amount})
		costs.Total += amount
	}

	startDate, endDate := g.window.Date(startDay), g.window.Date(endDay)

	return Option{
		StartDay:       startDay,
		EndDay:         endDay,
		Duration:       duration,
		StartDate:      startDate,
		EndDate:        endDate,
		Costs:          costs,
		WeekendCount:   calendar.WeekendCount(startDate, endDate),
		HolidayOverlap: g.annotator.HolidaysInRange(startDate, endDate),
		HybridOverlap:  g.annotator.HybridInRange(startDate, endDate),
		LeaveDays:      g.annotator.LeaveDays(startDate, endDate),
	}, true
}

// DayAnnotations classifies every day of an option for an expanded calendar view
func (g *Generator) DayAnnotations(o Option) []calendar.DayInfo {
	return g.annotator.ClassifyRange(o.StartDate, o.EndDate)
}

// normalizeDurations drops non-positive values and duplicates and sorts ascending
func normalizeDurations(durations []int) []int {
	seen := make(map[int]bool, len(durations))
	out := make([]int, 0, len(durations))
	for _, d := range durations {
		if d < 1 || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}
