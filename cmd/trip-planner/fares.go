package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/username/trip-planner/internal/calendar"
	"github.com/username/trip-planner/internal/config"
	"github.com/username/trip-planner/internal/fares"
	"go.uber.org/zap"
)

func faresCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fares",
		Short: "Fare table tools",
	}
	cmd.AddCommand(faresSampleCmd())
	return cmd
}

func faresSampleCmd() *cobra.Command {
	opts := fares.SampleOptions{}
	var out string

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a synthetic fare table covering the configured window and travelers",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			start, end, err := cfg.Window.GetWindow()
			if err != nil {
				return err
			}
			window, err := calendar.NewWindow(start, end)
			if err != nil {
				return err
			}

			opts.Days = window.Len()
			opts.Travelers = cfg.TravelerNames()

			table, err := fares.Synthesize(opts)
			if err != nil {
				return fmt.Errorf("failed to synthesize fares: %w", err)
			}

			if out == "" || out == "-" {
				return table.WriteYAML(os.Stdout)
			}

			f, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			defer f.Close()

			if err := table.WriteYAML(f); err != nil {
				return err
			}

			logger.Info("Sample fare table written",
				zap.String("file", out),
				zap.Int("days", table.Days()),
				zap.Strings("travelers", table.Travelers()))
			outPrintf("✅ Wrote %d days of %s fares for %d travelers to %s\n",
				table.Days(), table.Currency(), len(table.Travelers()), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&opts.Currency, "currency", fares.DefaultCurrency, "Fare currency")
	cmd.Flags().IntVar(&opts.BaseFare, "base", 25000, "Typical one-way fare")
	cmd.Flags().Float64Var(&opts.StepPercent, "step", 4, "Maximum day-to-day change in percent")
	cmd.Flags().Float64Var(&opts.BoundPercent, "bound", 30, "Maximum spread around the base fare in percent")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "Random seed (0 = time based)")

	return cmd
}
