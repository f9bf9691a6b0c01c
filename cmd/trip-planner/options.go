package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/username/trip-planner/internal/calendar"
	"github.com/username/trip-planner/internal/config"
	"github.com/username/trip-planner/internal/engine"
	"github.com/username/trip-planner/internal/planner"
	"github.com/username/trip-planner/pkg/dateutil"
	"go.uber.org/zap"
)

// searchFlags override the search section of the config for one invocation
type searchFlags struct {
	durations []int
	sort      string
	direction string
	ceilings  map[string]string
	round     bool
	increment int
	noConvert bool
}

func (f *searchFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntSliceVarP(&f.durations, "durations", "d", nil, "Trip durations in days, e.g. 6,7,8")
	cmd.Flags().StringVarP(&f.sort, "sort", "s", "", "Sort key: dates, leaves, duration, total or a traveler name")
	cmd.Flags().StringVar(&f.direction, "direction", "", "Sort direction: asc or desc")
	cmd.Flags().StringToStringVar(&f.ceilings, "ceiling", nil, "Per-traveler price ceiling in display currency, e.g. Jonas=450")
	cmd.Flags().BoolVar(&f.round, "round", false, "Round every fare to the configured increment")
	cmd.Flags().IntVar(&f.increment, "increment", 0, "Rounding increment (default from config)")
	cmd.Flags().BoolVar(&f.noConvert, "no-convert", false, "Show amounts in the fare currency without fetching a rate")
}

// apply copies the flags the user set onto cfg
func (f *searchFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("durations") {
		cfg.Search.Durations = f.durations
	}
	if cmd.Flags().Changed("sort") {
		cfg.Search.Sort = f.sort
	}
	if cmd.Flags().Changed("direction") {
		cfg.Search.Direction = f.direction
	}
	if cmd.Flags().Changed("ceiling") {
		if cfg.Search.Ceilings == nil {
			cfg.Search.Ceilings = make(map[string]string)
		}
		for name, value := range f.ceilings {
			cfg.Search.Ceilings[strings.ToLower(name)] = value
		}
	}
	if cmd.Flags().Changed("round") {
		cfg.Fares.Round = f.round
	}
	if cmd.Flags().Changed("increment") {
		cfg.Fares.Increment = f.increment
	}
}

func optionsCmd() *cobra.Command {
	var flags searchFlags
	var limit int
	var tee string

	cmd := &cobra.Command{
		Use:   "options",
		Short: "List ranked trip options",
		RunE: func(cmd *cobra.Command, args []string) error {
			restore, err := teeOutput(tee)
			if err != nil {
				return err
			}
			defer restore()

			// Load config
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			flags.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid flags: %w", err)
			}

			e, rates, err := initializeEngine(cfg, !flags.noConvert)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), cfg.Currency.GetTimeout()+time.Second)
			defer cancel()
			fetchRate(ctx, rates)

			result := e.Run(engine.SnapshotFromConfig(cfg))
			logger.Debug("Options listed", zap.Int("count", len(result.Options)))

			renderOptions(result, limit)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Show at most this many options (0 for all)")
	cmd.Flags().StringVar(&tee, "tee-output", "", "Mirror output to file")

	return cmd
}

var (
	headerColor = color.New(color.Bold)
	bestColor   = color.New(color.FgGreen)
	emptyColor  = color.New(color.FgYellow)
)

// renderOptions prints the ranked table or an explicit empty state
func renderOptions(result engine.Result, limit int) {
	travelers := result.Travelers
	outPrintf("📋 %d of %d options, %s\n", len(result.Options), result.Generated, describeCurrency(result))

	if len(result.Options) == 0 {
		outPrintln(emptyColor.Sprint("\nNo options match the current filters. Raise a price ceiling or select more durations."))
		return
	}

	header := fmt.Sprintf("  %-3s | %-9s | %-9s | %4s | %4s | %8s | %8s",
		"#", "Start", "End", "Days", "Wknd", "Leave DE", "Leave IN")
	for _, t := range travelers {
		header += fmt.Sprintf(" | %10s", t.Name)
	}
	header += fmt.Sprintf(" | %11s | %s", "Total", "Holidays")

	outPrintln("═══════════════════════════════════════════════════════")
	outPrintln(headerColor.Sprint(header))
	outPrintln(strings.Repeat("-", len(header)))

	shown := result.Options
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	for i, o := range shown {
		row := fmt.Sprintf("  %-3d | %-9s | %-9s | %4d | %4d | %8.1f | %8.1f",
			i+1, o.StartLabel(), o.EndLabel(), o.Duration, o.WeekendCount,
			o.LeaveDays[calendar.German], o.LeaveDays[calendar.Indian])
		for _, t := range travelers {
			cost, _ := o.Costs.For(t.Name)
			row += fmt.Sprintf(" | %10s", formatAmount(result, cost))
		}
		row += fmt.Sprintf(" | %11s | %s", formatAmount(result, o.Costs.Total), overlapSummary(o))

		if i == 0 {
			row = bestColor.Sprint(row)
		}
		outPrintln(row)
	}

	if len(shown) < len(result.Options) {
		outPrintf("\n... %d more, use --limit 0 to show all\n", len(result.Options)-len(shown))
	}
}

func describeCurrency(result engine.Result) string {
	if result.Converted {
		return fmt.Sprintf("amounts in %s (rate %.6f)", result.Currency, result.Rate)
	}
	return fmt.Sprintf("amounts in %s", result.Currency)
}

func formatAmount(result engine.Result, amount int) string {
	if result.Converted {
		return fmt.Sprintf("%.2f", result.Amount(amount))
	}
	return fmt.Sprintf("%d", amount)
}

// overlapSummary lists matched holidays and hybrid days as MM-DD
func overlapSummary(o planner.Option) string {
	var parts []string
	for _, j := range []calendar.Jurisdiction{calendar.German, calendar.Indian} {
		if dates := o.HolidayOverlap[j]; len(dates) > 0 {
			parts = append(parts, fmt.Sprintf("%s %s", jurisdictionLabel(j), shortDates(dates)))
		}
	}
	if len(o.HybridOverlap) > 0 {
		parts = append(parts, "hybrid "+shortDates(o.HybridOverlap))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, "; ")
}

func jurisdictionLabel(j calendar.Jurisdiction) string {
	switch j {
	case calendar.German:
		return "DE"
	case calendar.Indian:
		return "IN"
	default:
		return string(j)
	}
}

func shortDates(dates []string) string {
	short := make([]string, len(dates))
	for i, d := range dates {
		short[i] = d
		if len(d) == len(dateutil.ISOLayout) {
			short[i] = d[5:]
		}
	}
	return strings.Join(short, ",")
}
