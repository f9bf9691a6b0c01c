package planner

import (
	"errors"
	"reflect"
	"testing"

	"github.com/username/trip-planner/internal/calendar"
	"github.com/username/trip-planner/internal/fares"
	"github.com/username/trip-planner/pkg/dateutil"
	"go.uber.org/zap"
)

var scenarioTravelers = []Traveler{
	{Name: "Jonas", Jurisdiction: calendar.German},
	{Name: "Priya", Jurisdiction: calendar.Indian},
	{Name: "Arjun", Jurisdiction: calendar.Indian},
}

// linearRow prices day k at base+k for outbound and base+1000+k for return
func linearRow(name string, base, days int) fares.Row {
	row := fares.Row{Traveler: name, Outbound: make([]int, days), Return: make([]int, days)}
	for i := 0; i < days; i++ {
		row.Outbound[i] = base + i + 1
		row.Return[i] = base + 1000 + i + 1
	}
	return row
}

func newScenarioGenerator(t *testing.T) *Generator {
	t.Helper()

	window, err := calendar.NewWindow(dateutil.Date(2025, 4, 1), dateutil.Date(2025, 5, 10))
	if err != nil {
		t.Fatalf("NewWindow() error = %v", err)
	}

	annotator := calendar.NewAnnotator(calendar.AnnotatorConfig{
		Holidays: calendar.NewHolidaySet(map[calendar.Jurisdiction]calendar.DateSet{
			calendar.German: calendar.NewDateSet("2025-04-18", "2025-04-21"),
			calendar.Indian: calendar.NewDateSet("2025-04-18", "2025-05-01"),
		}),
		Hybrid:             calendar.NewDateSet("2025-05-02"),
		HybridJurisdiction: calendar.German,
	}, zap.NewNop())

	table, err := fares.NewTable("INR", window.Len(), []fares.Row{
		linearRow("Jonas", 20000, window.Len()),
		linearRow("Priya", 30000, window.Len()),
		linearRow("Arjun", 10000, window.Len()),
	})
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}

	logger, _ := zap.NewDevelopment()
	g, err := NewGenerator(window, annotator, table, scenarioTravelers, logger)
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	return g
}

func TestGenerate_BijectionWithValidPairs(t *testing.T) {
	g := newScenarioGenerator(t)
	durations := []int{6, 7, 8, 9, 10}

	options := g.Generate(Params{Durations: durations})

	want := 0
	for _, d := range durations {
		want += g.Window().Len() - d + 1
	}
	if len(options) != want {
		t.Fatalf("Generate() returned %d options, want %d", len(options), want)
	}

	seen := make(map[[2]int]bool)
	for _, o := range options {
		key := [2]int{o.StartDay, o.Duration}
		if seen[key] {
			t.Fatalf("duplicate option for start %d duration %d", o.StartDay, o.Duration)
		}
		seen[key] = true

		if o.EndDay != o.StartDay+o.Duration-1 {
			t.Errorf("option %v: EndDay = %d", key, o.EndDay)
		}
		if o.EndDay > g.Window().Len() {
			t.Errorf("option %v ends outside the window", key)
		}
	}
}

func TestGenerate_EmptyDurations(t *testing.T) {
	g := newScenarioGenerator(t)

	tests := []struct {
		name      string
		durations []int
	}{
		{"nil", nil},
		{"empty", []int{}},
		{"only invalid", []int{0, -3}},
		{"longer than window", []int{41}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Generate(Params{Durations: tt.durations}); len(got) != 0 {
				t.Errorf("Generate(%v) returned %d options, want 0", tt.durations, len(got))
			}
		})
	}
}

func TestGenerate_DuplicateDurationsCollapse(t *testing.T) {
	g := newScenarioGenerator(t)

	a := g.Generate(Params{Durations: []int{7, 7, 6}})
	b := g.Generate(Params{Durations: []int{6, 7}})

	if len(a) != len(b) {
		t.Fatalf("len = %d, want %d", len(a), len(b))
	}
	for i := range a {
		if a[i].StartDay != b[i].StartDay || a[i].Duration != b[i].Duration {
			t.Fatalf("order differs at %d", i)
		}
	}
}

func TestGenerate_EasterScenario(t *testing.T) {
	g := newScenarioGenerator(t)

	var option *Option
	for _, o := range g.Generate(Params{Durations: []int{7}}) {
		if o.StartDay == 18 {
			o := o
			option = &o
			break
		}
	}
	if option == nil {
		t.Fatal("no option starting on ordinal 18")
	}

	if option.EndDay != 24 || dateutil.ISODate(option.EndDate) != "2025-04-24" {
		t.Errorf("end = %d (%s), want 24 (2025-04-24)", option.EndDay, dateutil.ISODate(option.EndDate))
	}
	if option.StartLabel() != "April 18" {
		t.Errorf("StartLabel() = %q", option.StartLabel())
	}
	if want := []string{"2025-04-18", "2025-04-21"}; !reflect.DeepEqual(option.HolidayOverlap[calendar.German], want) {
		t.Errorf("german overlap = %v, want %v", option.HolidayOverlap[calendar.German], want)
	}
	if want := []string{"2025-04-18"}; !reflect.DeepEqual(option.HolidayOverlap[calendar.Indian], want) {
		t.Errorf("indian overlap = %v, want %v", option.HolidayOverlap[calendar.Indian], want)
	}
	if len(option.HybridOverlap) != 0 {
		t.Errorf("hybrid overlap = %v, want none", option.HybridOverlap)
	}
	if option.WeekendCount != 2 {
		t.Errorf("WeekendCount = %d, want 2", option.WeekendCount)
	}
	if option.LeaveDays[calendar.German] != 3 {
		t.Errorf("german leave = %v, want 3", option.LeaveDays[calendar.German])
	}
	if option.LeaveFor(scenarioTravelers[1]) != 4 {
		t.Errorf("Priya leave = %v, want 4", option.LeaveFor(scenarioTravelers[1]))
	}

	// Jonas: outbound day 18 = 20018, return day 24 = 21024
	if cost, _ := option.Costs.For("Jonas"); cost != 20018+21024 {
		t.Errorf("Jonas cost = %d, want %d", cost, 20018+21024)
	}
	sum := 0
	for _, c := range option.Costs.PerTraveler {
		sum += c.Amount
	}
	if option.Costs.Total != sum {
		t.Errorf("Total = %d, want %d", option.Costs.Total, sum)
	}
	if names := []string{option.Costs.PerTraveler[0].Traveler, option.Costs.PerTraveler[2].Traveler}; names[0] != "Jonas" || names[1] != "Arjun" {
		t.Errorf("cost order = %v", names)
	}
}

func TestGenerate_RoundingPerLeg(t *testing.T) {
	g := newScenarioGenerator(t)

	option, ok := g.Option(18, 7, fares.Rounding{Enabled: true, Increment: 500})
	if !ok {
		t.Fatal("Option(18, 7) not generated")
	}

	// 20018 -> 20000, 21024 -> 21000
	if cost, _ := option.Costs.For("Jonas"); cost != 41000 {
		t.Errorf("rounded Jonas cost = %d, want 41000", cost)
	}
	for _, c := range option.Costs.PerTraveler {
		if c.Amount%500 != 0 {
			t.Errorf("%s cost %d is not a multiple of 500", c.Traveler, c.Amount)
		}
	}
}

func TestGenerator_DayAnnotations(t *testing.T) {
	g := newScenarioGenerator(t)

	option, ok := g.Option(29, 5, fares.Rounding{})
	if !ok {
		t.Fatal("Option(29, 5) not generated")
	}

	days := g.DayAnnotations(option)
	if len(days) != option.Duration {
		t.Fatalf("DayAnnotations returned %d days, want %d", len(days), option.Duration)
	}
	if days[0].Key != "2025-04-29" || days[4].Key != "2025-05-03" {
		t.Errorf("range = %s..%s", days[0].Key, days[4].Key)
	}
	if !days[2].IndianHoliday() || !days[3].Hybrid || !days[4].IsWeekend {
		t.Errorf("unexpected classification: %+v", days)
	}
	if len(option.HybridOverlap) != 1 || option.HybridOverlap[0] != "2025-05-02" {
		t.Errorf("HybridOverlap = %v", option.HybridOverlap)
	}
}

func TestNewGenerator_Validation(t *testing.T) {
	window, _ := calendar.NewWindow(dateutil.Date(2025, 4, 1), dateutil.Date(2025, 4, 10))
	annotator := calendar.NewAnnotator(calendar.AnnotatorConfig{}, nil)

	short, _ := fares.NewTable("INR", 9, []fares.Row{linearRow("Jonas", 100, 9)})
	if _, err := NewGenerator(window, annotator, short, scenarioTravelers[:1], nil); !errors.Is(err, fares.ErrLengthMismatch) {
		t.Errorf("length mismatch error = %v", err)
	}

	table, _ := fares.NewTable("INR", 10, []fares.Row{linearRow("Jonas", 100, 10)})
	if _, err := NewGenerator(window, annotator, table, scenarioTravelers, nil); !errors.Is(err, fares.ErrUnknownTraveler) {
		t.Errorf("unknown traveler error = %v", err)
	}
	if _, err := NewGenerator(window, annotator, table, nil, nil); err == nil {
		t.Error("expected error for no travelers")
	}
}
