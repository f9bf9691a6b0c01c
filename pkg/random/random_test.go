package random

import (
	"testing"
)

func TestRandomize(t *testing.T) {
	g := New(42)

	tests := []struct {
		name    string
		value   float64
		percent float64
		wantMin float64
		wantMax float64
	}{
		{
			name:    "1% randomization of 100",
			value:   100,
			percent: 1.0,
			wantMin: 99,
			wantMax: 101,
		},
		{
			name:    "5% randomization of 80",
			value:   80,
			percent: 5.0,
			wantMin: 76,
			wantMax: 84,
		},
		{
			name:    "0% randomization (no change)",
			value:   50,
			percent: 0,
			wantMin: 50,
			wantMax: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 100; i++ {
				result := g.Randomize(tt.value, tt.percent)

				if result < tt.wantMin || result > tt.wantMax {
					t.Errorf("Randomize(%v, %v) = %v, want range [%v, %v]",
						tt.value, tt.percent, result, tt.wantMin, tt.wantMax)
				}
			}
		})
	}
}

func TestRandomizeInt(t *testing.T) {
	g := New(7)

	for i := 0; i < 100; i++ {
		result := g.RandomizeInt(50, 10)
		if result < 45 || result > 55 {
			t.Errorf("RandomizeInt(50, 10) = %v, want range [45, 55]", result)
		}
	}
}

func TestSameSeedSameSequence(t *testing.T) {
	a := New(1234).Walk(30000, 20, 5, 25)
	b := New(1234).Walk(30000, 20, 5, 25)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Walk with same seed differs at %d: %d vs %d", i, a[i], b[i])
		}
	}
}

func TestWalk(t *testing.T) {
	tests := []struct {
		name  string
		base  int
		n     int
		bound float64
	}{
		{"sixty one days", 30000, 61, 25},
		{"single value", 1000, 1, 10},
		{"empty", 1000, 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := New(99).Walk(tt.base, tt.n, 4, tt.bound)

			if len(values) != tt.n {
				t.Fatalf("Walk returned %d values, want %d", len(values), tt.n)
			}

			lo := float64(tt.base) * (1 - tt.bound/100)
			hi := float64(tt.base) * (1 + tt.bound/100)
			for i, v := range values {
				if float64(v) < lo-1 || float64(v) > hi+1 {
					t.Errorf("Walk[%d] = %d, want range [%.0f, %.0f]", i, v, lo, hi)
				}
			}
		})
	}
}
