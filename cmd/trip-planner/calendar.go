package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/username/trip-planner/internal/calendar"
	"github.com/username/trip-planner/internal/config"
	"github.com/username/trip-planner/internal/fares"
	"github.com/username/trip-planner/pkg/dateutil"
)

var (
	weekendColor = color.New(color.FgHiBlack)
	holidayColor = color.New(color.FgRed)
	hybridColor  = color.New(color.FgCyan)
)

func calendarCmd() *cobra.Command {
	var startDay, duration int
	var startDate string
	var round bool

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show the day-by-day calendar of one option",
		Example: `  trip-planner calendar --start 18 --duration 7
  trip-planner calendar --date 2025-04-18 --duration 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cmd.Flags().Changed("round") {
				cfg.Fares.Round = round
			}

			e, _, err := initializeEngine(cfg, false)
			if err != nil {
				return err
			}

			if startDate != "" {
				date, err := dateutil.ParseISODate(startDate)
				if err != nil {
					return err
				}
				ordinal, ok := e.Window().Ordinal(date)
				if !ok {
					return fmt.Errorf("%s is outside the window %s .. %s", startDate,
						dateutil.ISODate(e.Window().Start()), dateutil.ISODate(e.Window().End()))
				}
				startDay = ordinal
			}

			view, err := e.Calendar(startDay, duration, fares.Rounding{Enabled: cfg.Fares.Round, Increment: cfg.Fares.Increment})
			if err != nil {
				return err
			}

			o := view.Option
			outPrintf("\n📅 %s - %s (%d days, day %d to %d)\n", o.StartLabel(), o.EndLabel(), o.Duration, o.StartDay, o.EndDay)
			outPrintln("═══════════════════════════════════════════════════════")
			for _, day := range view.Days {
				outPrintln(formatDay(day))
			}

			outPrintln("\n💰 Costs")
			for _, c := range o.Costs.PerTraveler {
				outPrintf("  %-10s %10d %s\n", c.Traveler, c.Amount, e.Currency())
			}
			outPrintf("  %-10s %10d %s\n", "Total", o.Costs.Total, e.Currency())

			outPrintln("\n🏖  Leave days")
			for _, t := range e.Travelers() {
				outPrintf("  %-10s %5.1f (%s)\n", t.Name, o.LeaveFor(t), t.Jurisdiction)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&startDay, "start", 1, "Start day (1 = first day of the window)")
	cmd.Flags().StringVar(&startDate, "date", "", "Start date (YYYY-MM-DD), overrides --start")
	cmd.Flags().IntVar(&duration, "duration", 7, "Trip duration in days")
	cmd.Flags().BoolVar(&round, "round", false, "Round every fare to the configured increment")

	return cmd
}

// formatDay renders one calendar row, colored by day type
func formatDay(day calendar.DayInfo) string {
	line := fmt.Sprintf("  %s  %-9s  %-8s", day.Key, day.Date.Weekday(), day.Type())

	var marks []string
	if day.GermanHoliday() {
		marks = append(marks, "DE holiday")
	}
	if day.IndianHoliday() {
		marks = append(marks, "IN holiday")
	}
	if day.Hybrid {
		marks = append(marks, "hybrid")
	}
	for _, m := range marks {
		line += "  " + m
	}
	if day.Note != "" {
		line += "  (" + day.Note + ")"
	}

	switch day.Type() {
	case calendar.DayTypeWeekend:
		return weekendColor.Sprint(line)
	case calendar.DayTypeHoliday:
		return holidayColor.Sprint(line)
	case calendar.DayTypeHybrid:
		return hybridColor.Sprint(line)
	default:
		return line
	}
}
