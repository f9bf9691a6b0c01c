package fares

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrUnknownTraveler = errors.New("unknown traveler")
	ErrDayOutOfRange   = errors.New("ordinal day out of range")
	ErrLengthMismatch  = errors.New("fare row length does not match window length")
	ErrInvalidFare     = errors.New("fare must be positive")
)

// Leg is one direction of travel
type Leg int

const (
	Outbound Leg = iota
	Return
)

func (l Leg) String() string {
	if l == Return {
		return "return"
	}
	return "outbound"
}

// Row holds one traveler's fares, one per ordinal day (index 0 = ordinal 1)
type Row struct {
	Traveler string `mapstructure:"name" yaml:"name"`
	Outbound []int  `mapstructure:"outbound" yaml:"outbound"`
	Return   []int  `mapstructure:"return" yaml:"return"`
}

// Table is a read-only fare lookup keyed by traveler, leg and ordinal day
type Table struct {
	currency  string
	days      int
	travelers []string
	legs      map[string][2][]int
}

// NewTable validates rows and builds a table covering days ordinals
func NewTable(currency string, days int, rows []Row) (*Table, error) {
	if days <= 0 {
		return nil, fmt.Errorf("fare table needs a positive day count, got %d", days)
	}

	t := &Table{
		currency:  strings.ToUpper(strings.TrimSpace(currency)),
		days:      days,
		travelers: make([]string, 0, len(rows)),
		legs:      make(map[string][2][]int, len(rows)),
	}

	for _, row := range rows {
		name := strings.TrimSpace(row.Traveler)
		if name == "" {
			return nil, fmt.Errorf("fare row without traveler name")
		}
		if _, dup := t.legs[name]; dup {
			return nil, fmt.Errorf("duplicate fare row for traveler %q", name)
		}

		for leg, values := range [2][]int{row.Outbound, row.Return} {
			if len(values) != days {
				return nil, fmt.Errorf("%s %s: %w (got %d, want %d)",
					name, Leg(leg), ErrLengthMismatch, len(values), days)
			}
			for i, v := range values {
				if v <= 0 {
					return nil, fmt.Errorf("%s %s day %d: %w (got %d)", name, Leg(leg), i+1, ErrInvalidFare, v)
				}
			}
		}

		out := make([]int, days)
		ret := make([]int, days)
		copy(out, row.Outbound)
		copy(ret, row.Return)

		t.travelers = append(t.travelers, name)
		t.legs[name] = [2][]int{out, ret}
	}

	return t, nil
}

// Currency returns the base currency code of all fares
func (t *Table) Currency() string {
	return t.currency
}

// Days returns the number of ordinal days covered
func (t *Table) Days() int {
	return t.days
}

// Travelers returns traveler names in table order
func (t *Table) Travelers() []string {
	out := make([]string, len(t.travelers))
	copy(out, t.travelers)
	return out
}

// Has reports whether the table has fares for a traveler
func (t *Table) Has(traveler string) bool {
	_, ok := t.legs[traveler]
	return ok
}

// Fare returns the fare for a traveler, leg and 1-based ordinal day
func (t *Table) Fare(traveler string, leg Leg, ordinal int) (int, error) {
	legs, ok := t.legs[traveler]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTraveler, traveler)
	}
	if ordinal < 1 || ordinal > t.days {
		return 0, fmt.Errorf("%w: %d not in 1..%d", ErrDayOutOfRange, ordinal, t.days)
	}
	if leg != Outbound && leg != Return {
		return 0, fmt.Errorf("unknown leg %d", leg)
	}
	return legs[leg][ordinal-1], nil
}

// LegCost returns a fare with rounding applied to that single leg
func (t *Table) LegCost(traveler string, leg Leg, ordinal int, rounding Rounding) (int, error) {
	fare, err := t.Fare(traveler, leg, ordinal)
	if err != nil {
		return 0, err
	}
	return rounding.Apply(fare), nil
}

// TripCost returns the outbound fare on startDay plus the return fare on endDay.
// Each leg is rounded before the sum.
func (t *Table) TripCost(traveler string, startDay, endDay int, rounding Rounding) (int, error) {
	out, err := t.LegCost(traveler, Outbound, startDay, rounding)
	if err != nil {
		return 0, err
	}
	ret, err := t.LegCost(traveler, Return, endDay, rounding)
	if err != nil {
		return 0, err
	}
	return out + ret, nil
}

// Rows returns a copy of the table contents
func (t *Table) Rows() []Row {
	rows := make([]Row, 0, len(t.travelers))
	for _, name := range t.travelers {
		legs := t.legs[name]
		out := make([]int, t.days)
		ret := make([]int, t.days)
		copy(out, legs[Outbound])
		copy(ret, legs[Return])
		rows = append(rows, Row{Traveler: name, Outbound: out, Return: ret})
	}
	return rows
}

// Rounding controls optional per-leg rounding
type Rounding struct {
	Enabled   bool
	Increment int
}

// Apply rounds amount when rounding is enabled
func (r Rounding) Apply(amount int) int {
	if !r.Enabled {
		return amount
	}
	return RoundTo(amount, r.Increment)
}

// RoundTo rounds amount to the nearest multiple of increment, halves away from zero.
// A non-positive increment leaves amount unchanged.
func RoundTo(amount, increment int) int {
	if increment <= 0 {
		return amount
	}
	return int(math.Round(float64(amount)/float64(increment))) * increment
}
