package engine

import (
	"fmt"

	"github.com/username/trip-planner/internal/calendar"
	"github.com/username/trip-planner/internal/config"
	"github.com/username/trip-planner/internal/fares"
	"github.com/username/trip-planner/internal/planner"
	"github.com/username/trip-planner/internal/ranking"
	"go.uber.org/zap"
)

// Build wires window, calendar, fare table and travelers from the configuration
func Build(cfg *config.Config, rates RateSource, logger *zap.Logger) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	start, end, err := cfg.Window.GetWindow()
	if err != nil {
		return nil, err
	}
	window, err := calendar.NewWindow(start, end)
	if err != nil {
		return nil, err
	}

	annotator, err := BuildAnnotator(cfg, window, logger)
	if err != nil {
		return nil, err
	}

	table, err := loadFares(cfg, window, logger)
	if err != nil {
		return nil, err
	}

	generator, err := planner.NewGenerator(window, annotator, table, Travelers(cfg), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}

	return NewEngine(generator, rates, logger), nil
}

// BuildAnnotator merges the inline lists and the optional holiday file. Without any German
// dates the federal holidays of the window's years are computed.
func BuildAnnotator(cfg *config.Config, window calendar.Window, logger *zap.Logger) (*calendar.Annotator, error) {
	dates := map[calendar.Jurisdiction][]string{
		calendar.German: append([]string{}, cfg.Calendar.German...),
		calendar.Indian: append([]string{}, cfg.Calendar.Indian...),
	}
	hybrid := append([]string{}, cfg.Calendar.Hybrid...)
	notes := make(map[string]string)

	if cfg.Calendar.HolidayFile != "" {
		file := calendar.NewHolidayFile(cfg.Calendar.HolidayFile, logger)
		if err := file.Load(); err != nil {
			return nil, err
		}
		for j, set := range file.Holidays() {
			dates[j] = append(dates[j], set.Dates()...)
		}
		hybrid = append(hybrid, file.Hybrid().Dates()...)
		for key, note := range file.Notes() {
			notes[key] = note
		}
	}

	sets := make(map[calendar.Jurisdiction]calendar.DateSet, len(dates))
	for j, values := range dates {
		set, err := calendar.ParseDateSet(values)
		if err != nil {
			return nil, fmt.Errorf("%s holidays: %w", j, err)
		}
		sets[j] = set
	}

	if sets[calendar.German].Len() == 0 {
		german, federal := calendar.GermanHolidaysBetween(window.Start(), window.End())
		sets[calendar.German] = german
		for key, note := range federal {
			if _, ok := notes[key]; !ok {
				notes[key] = note
			}
		}
		logger.Info("Using computed German federal holidays",
			zap.Strings("dates", german.Dates()))
	}

	hybridSet, err := calendar.ParseDateSet(hybrid)
	if err != nil {
		return nil, fmt.Errorf("hybrid days: %w", err)
	}

	return calendar.NewAnnotator(calendar.AnnotatorConfig{
		Holidays:           calendar.NewHolidaySet(sets),
		Hybrid:             hybridSet,
		HybridJurisdiction: calendar.Jurisdiction(cfg.Calendar.HybridJurisdiction),
		Notes:              notes,
	}, logger), nil
}

func loadFares(cfg *config.Config, window calendar.Window, logger *zap.Logger) (*fares.Table, error) {
	if cfg.Fares.File != "" {
		return fares.Load(cfg.Fares.File, window.Len(), logger)
	}

	table := fares.Default()
	if table.Days() != window.Len() {
		return nil, fmt.Errorf("%w: built-in fares cover %d days, window has %d; set fares.file",
			fares.ErrLengthMismatch, table.Days(), window.Len())
	}
	return table, nil
}

// Travelers converts the configured group
func Travelers(cfg *config.Config) []planner.Traveler {
	travelers := make([]planner.Traveler, len(cfg.Travelers))
	for i, t := range cfg.Travelers {
		travelers[i] = planner.Traveler{Name: t.Name, Jurisdiction: calendar.Jurisdiction(t.Jurisdiction)}
	}
	return travelers
}

// SnapshotFromConfig reads the pipeline input from the search and fares sections
func SnapshotFromConfig(cfg *config.Config) Snapshot {
	return Snapshot{
		Durations: cfg.Search.Durations,
		Rounding:  fares.Rounding{Enabled: cfg.Fares.Round, Increment: cfg.Fares.Increment},
		Ceilings:  cfg.CeilingInputs(),
		Sort: ranking.SortState{
			Key:       ranking.ParseSortKey(cfg.Search.Sort, cfg.TravelerNames()),
			Direction: ranking.ParseDirection(cfg.Search.Direction),
		},
	}
}
