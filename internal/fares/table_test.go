package fares

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func smallTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable("inr", 3, []Row{
		{Traveler: "Jonas", Outbound: []int{4250, 4750, 5100}, Return: []int{4250, 4100, 3999}},
		{Traveler: "Priya", Outbound: []int{1000, 2000, 3000}, Return: []int{1500, 2500, 3500}},
	})
	require.NoError(t, err)
	return table
}

func TestRoundTo(t *testing.T) {
	tests := []struct {
		name      string
		amount    int
		increment int
		want      int
	}{
		{"half rounds up", 4750, 500, 5000},
		{"below half rounds down", 4749, 500, 4500},
		{"half of lower multiple rounds up", 4250, 500, 4500},
		{"exact multiple", 5000, 500, 5000},
		{"zero increment is identity", 4321, 0, 4321},
		{"negative increment is identity", 4321, -100, 4321},
		{"increment of one", 4321, 1, 4321},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RoundTo(tt.amount, tt.increment))
		})
	}
}

func TestRoundTo_Idempotent(t *testing.T) {
	for _, inc := range []int{1, 10, 250, 500, 1000} {
		for x := 1; x < 20000; x += 37 {
			once := RoundTo(x, inc)
			require.Equal(t, once, RoundTo(once, inc), "x=%d inc=%d", x, inc)
		}
	}
}

func TestTable_Fare(t *testing.T) {
	table := smallTable(t)

	fare, err := table.Fare("Jonas", Outbound, 2)
	require.NoError(t, err)
	assert.Equal(t, 4750, fare)

	fare, err = table.Fare("Priya", Return, 3)
	require.NoError(t, err)
	assert.Equal(t, 3500, fare)

	_, err = table.Fare("Nobody", Outbound, 1)
	assert.ErrorIs(t, err, ErrUnknownTraveler)

	_, err = table.Fare("Jonas", Outbound, 0)
	assert.ErrorIs(t, err, ErrDayOutOfRange)

	_, err = table.Fare("Jonas", Return, 4)
	assert.ErrorIs(t, err, ErrDayOutOfRange)

	assert.Equal(t, "INR", table.Currency())
	assert.Equal(t, []string{"Jonas", "Priya"}, table.Travelers())
}

func TestTable_TripCostRoundsEachLeg(t *testing.T) {
	table := smallTable(t)
	rounding := Rounding{Enabled: true, Increment: 500}

	// 4250 -> 4500 twice; rounding the 8500 sum instead would keep 8500
	cost, err := table.TripCost("Jonas", 1, 1, rounding)
	require.NoError(t, err)
	assert.Equal(t, 9000, cost)
	assert.NotEqual(t, RoundTo(4250+4250, 500), cost)

	cost, err = table.TripCost("Jonas", 1, 1, Rounding{Enabled: false, Increment: 500})
	require.NoError(t, err)
	assert.Equal(t, 8500, cost)
}

func TestNewTable_Validation(t *testing.T) {
	_, err := NewTable("INR", 3, []Row{{Traveler: "A", Outbound: []int{1, 2}, Return: []int{1, 2, 3}}})
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = NewTable("INR", 2, []Row{{Traveler: "A", Outbound: []int{1, 0}, Return: []int{1, 2}}})
	assert.ErrorIs(t, err, ErrInvalidFare)

	_, err = NewTable("INR", 1, []Row{
		{Traveler: "A", Outbound: []int{1}, Return: []int{1}},
		{Traveler: "A", Outbound: []int{1}, Return: []int{1}},
	})
	assert.Error(t, err)

	_, err = NewTable("INR", 0, nil)
	assert.Error(t, err)
}

func TestTable_IsReadOnly(t *testing.T) {
	out := []int{100, 200}
	table, err := NewTable("INR", 2, []Row{{Traveler: "A", Outbound: out, Return: []int{1, 2}}})
	require.NoError(t, err)

	out[0] = 999
	rows := table.Rows()
	rows[0].Outbound[1] = 999

	fare, _ := table.Fare("A", Outbound, 1)
	assert.Equal(t, 100, fare)
	fare, _ = table.Fare("A", Outbound, 2)
	assert.Equal(t, 200, fare)
}

func TestDefault(t *testing.T) {
	table := Default()

	assert.Equal(t, DefaultDays, table.Days())
	assert.Equal(t, []string{"Jonas", "Priya", "Arjun"}, table.Travelers())
	for _, row := range table.Rows() {
		assert.Len(t, row.Outbound, DefaultDays)
		assert.Len(t, row.Return, DefaultDays)
	}
}

func TestLoad_WrittenSample(t *testing.T) {
	sample, err := Synthesize(SampleOptions{
		Currency:     "inr",
		Days:         10,
		Travelers:    []string{"Jonas", "Priya"},
		BaseFare:     25000,
		StepPercent:  3,
		BoundPercent: 30,
		Seed:         11,
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, sample.WriteYAML(&buf))

	path := filepath.Join(t.TempDir(), "fares.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	loaded, err := Load(path, 10, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, sample.Rows(), loaded.Rows())
	assert.Equal(t, "INR", loaded.Currency())

	_, err = Load(path, 11, zap.NewNop())
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestSynthesize_Invalid(t *testing.T) {
	_, err := Synthesize(SampleOptions{Days: 5, Travelers: []string{"A"}, BaseFare: 0})
	assert.Error(t, err)

	_, err = Synthesize(SampleOptions{Days: 5, Travelers: []string{"A"}, BaseFare: 100, BoundPercent: 100})
	assert.Error(t, err)
}
