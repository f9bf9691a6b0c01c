package ranking

import (
	"math"
	"strconv"
	"strings"

	"github.com/username/trip-planner/internal/planner"
)

// Conversion multiplies base-currency amounts into the display currency.
// A non-positive rate means no conversion is active.
type Conversion struct {
	Rate float64
}

// Active reports whether amounts are converted
func (c Conversion) Active() bool {
	return c.Rate > 0
}

// Apply converts a base-currency amount
func (c Conversion) Apply(amount int) float64 {
	if !c.Active() {
		return float64(amount)
	}
	return float64(amount) * c.Rate
}

// Ceilings are per-traveler maximum costs in display currency; absent means unconstrained
type Ceilings map[string]float64

// ParseCeiling parses a ceiling input. Empty, non-numeric, NaN and infinite input
// leave the traveler unconstrained.
func ParseCeiling(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

// ParseCeilings keeps only the travelers whose input parses
func ParseCeilings(raw map[string]string) Ceilings {
	ceilings := make(Ceilings, len(raw))
	for traveler, value := range raw {
		if ceiling, ok := ParseCeiling(value); ok {
			ceilings[traveler] = ceiling
		}
	}
	return ceilings
}

// Allows reports whether an option satisfies every configured ceiling
func (c Ceilings) Allows(o planner.Option, conv Conversion) bool {
	for traveler, ceiling := range c {
		cost, ok := o.Costs.For(traveler)
		if !ok {
			continue
		}
		if conv.Apply(cost) > ceiling {
			return false
		}
	}
	return true
}

// Filter returns the options within every ceiling, preserving order.
// The input slice is not modified.
func Filter(options []planner.Option, ceilings Ceilings, conv Conversion) []planner.Option {
	filtered := make([]planner.Option, 0, len(options))
	for _, o := range options {
		if ceilings.Allows(o, conv) {
			filtered = append(filtered, o)
		}
	}
	return filtered
}
