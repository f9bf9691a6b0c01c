package engine

import (
	"errors"
	"fmt"
	"sync"

	"github.com/username/trip-planner/internal/calendar"
	"github.com/username/trip-planner/internal/fares"
	"github.com/username/trip-planner/internal/planner"
	"github.com/username/trip-planner/internal/ranking"
	"go.uber.org/zap"
)

// ErrNoSuchOption is returned when a calendar view is requested for a pair outside the window
var ErrNoSuchOption = errors.New("option outside the calendar window")

// State is the pipeline stage the last run reached
type State int

const (
	StateIdle State = iota
	StateGenerated
	StateFiltered
	StateSorted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateGenerated:
		return "generated"
	case StateFiltered:
		return "filtered"
	case StateSorted:
		return "sorted"
	default:
		return "unknown"
	}
}

// Snapshot is the complete user input for one pipeline run
type Snapshot struct {
	Durations []int
	Rounding  fares.Rounding
	Ceilings  map[string]string
	Sort      ranking.SortState
}

// RateSource provides the display-currency conversion, if one is active
type RateSource interface {
	Rate() (float64, bool)
	DisplayCurrency() string
}

// Result is the outcome of one run
type Result struct {
	State     State
	Travelers []planner.Traveler
	Options   []planner.Option
	Generated int
	Currency  string
	Converted bool
	Rate      float64
}

// Best returns the first ranked option
func (r Result) Best() (planner.Option, bool) {
	if len(r.Options) == 0 {
		return planner.Option{}, false
	}
	return r.Options[0], true
}

// Amount converts a base-currency amount the same way filtering and sorting did
func (r Result) Amount(amount int) float64 {
	return ranking.Conversion{Rate: r.Rate}.Apply(amount)
}

// Engine runs generate, filter and sort over a fixed window, fare table and traveler group
type Engine struct {
	generator *planner.Generator
	rates     RateSource
	logger    *zap.Logger

	mu   sync.RWMutex
	last Result
}

// NewEngine creates a pipeline engine. rates may be nil, in which case amounts stay
// in the fare table's currency.
func NewEngine(generator *planner.Generator, rates RateSource, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		generator: generator,
		rates:     rates,
		logger:    logger,
		last:      Result{State: StateIdle, Options: []planner.Option{}, Currency: generator.Currency()},
	}
}

// Travelers returns the traveler group in cost order
func (e *Engine) Travelers() []planner.Traveler {
	return e.generator.Travelers()
}

// TravelerNames returns the names that are valid sort keys and ceiling targets
func (e *Engine) TravelerNames() []string {
	travelers := e.generator.Travelers()
	names := make([]string, len(travelers))
	for i, t := range travelers {
		names[i] = t.Name
	}
	return names
}

// Window returns the calendar window options are generated in
func (e *Engine) Window() calendar.Window {
	return e.generator.Window()
}

// Currency returns the base currency of the fare table
func (e *Engine) Currency() string {
	return e.generator.Currency()
}

// SetRates attaches the conversion source used by later runs
func (e *Engine) SetRates(rates RateSource) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rates = rates
}

// conversion resolves the rate that applies to this run
func (e *Engine) conversion() (ranking.Conversion, string) {
	e.mu.RLock()
	rates := e.rates
	e.mu.RUnlock()

	base := e.generator.Currency()
	if rates == nil {
		return ranking.Conversion{}, base
	}
	rate, ok := rates.Rate()
	if !ok {
		return ranking.Conversion{}, base
	}
	return ranking.Conversion{Rate: rate}, rates.DisplayCurrency()
}

// Run executes the whole pipeline for a snapshot. Every run starts over from generation;
// nothing from a previous run is reused.
func (e *Engine) Run(s Snapshot) Result {
	conv, currency := e.conversion()

	e.logger.Info("Running option pipeline",
		zap.Ints("durations", s.Durations),
		zap.Bool("rounding", s.Rounding.Enabled),
		zap.String("sort_key", string(s.Sort.Key)),
		zap.String("sort_direction", s.Sort.Direction.String()),
		zap.String("currency", currency))

	result := Result{
		State:     StateIdle,
		Travelers: e.generator.Travelers(),
		Currency:  currency,
		Converted: conv.Active(),
		Rate:      conv.Rate,
	}

	// 1. Generate
	generated := e.generator.Generate(planner.Params{Durations: s.Durations, Rounding: s.Rounding})
	result.State = StateGenerated
	result.Generated = len(generated)

	// 2. Filter
	ceilings := ranking.ParseCeilings(s.Ceilings)
	filtered := ranking.Filter(generated, ceilings, conv)
	result.State = StateFiltered

	e.logger.Info("Options filtered",
		zap.Int("generated", len(generated)),
		zap.Int("constrained_travelers", len(ceilings)),
		zap.Int("remaining", len(filtered)))

	// 3. Sort
	result.Options = ranking.Sort(filtered, s.Sort, conv)
	result.State = StateSorted

	if best, ok := result.Best(); ok {
		e.logger.Info("Options ranked",
			zap.Int("count", len(result.Options)),
			zap.String("first_start", best.StartLabel()),
			zap.Int("first_duration", best.Duration))
	} else {
		e.logger.Info("No options match the current filters")
	}

	e.mu.Lock()
	e.last = result
	e.mu.Unlock()

	return result
}

// Last returns the result of the most recent run
func (e *Engine) Last() Result {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.last
}

// View is the expanded calendar of a single option
type View struct {
	Option planner.Option
	Days   []calendar.DayInfo
}

// Calendar builds the day-by-day view for one start day and duration
func (e *Engine) Calendar(startDay, duration int, rounding fares.Rounding) (View, error) {
	option, ok := e.generator.Option(startDay, duration, rounding)
	if !ok {
		return View{}, fmt.Errorf("%w: start day %d, duration %d, window has %d days",
			ErrNoSuchOption, startDay, duration, e.generator.Window().Len())
	}

	return View{
		Option: option,
		Days:   e.generator.DayAnnotations(option),
	}, nil
}
