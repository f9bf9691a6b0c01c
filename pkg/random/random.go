package random

import (
	"math"
	"math/rand"
	"time"
)

// Generator produces jittered values. A fixed seed makes the output reproducible.
type Generator struct {
	rnd *rand.Rand
}

// New creates a generator; seed 0 seeds from the clock
func New(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Randomize applies ±percent randomization to value
// Example: Randomize(100, 1.0) returns value in range [99, 101]
func (g *Generator) Randomize(value float64, percent float64) float64 {
	if percent <= 0 {
		return value
	}

	variance := value * (percent / 100.0)

	// offset in [-variance, +variance]
	offset := (g.rnd.Float64()*2 - 1) * variance

	result := value + offset
	return math.Round(result*100) / 100
}

// RandomizeInt applies ±percent randomization to int value
func (g *Generator) RandomizeInt(value int, percent float64) int {
	result := g.Randomize(float64(value), percent)
	return int(math.Round(result))
}

// Walk returns n values starting near base, each step drifting by at most ±stepPercent
// of base and never leaving [base*(1-boundPercent/100), base*(1+boundPercent/100)].
func (g *Generator) Walk(base int, n int, stepPercent, boundPercent float64) []int {
	if n <= 0 {
		return []int{}
	}

	lo := float64(base) * (1 - boundPercent/100)
	hi := float64(base) * (1 + boundPercent/100)
	step := float64(base) * stepPercent / 100

	values := make([]int, n)
	current := float64(g.RandomizeInt(base, boundPercent))
	for i := 0; i < n; i++ {
		current += (g.rnd.Float64()*2 - 1) * step
		current = math.Max(lo, math.Min(hi, current))
		values[i] = int(math.Round(current))
	}

	return values
}
