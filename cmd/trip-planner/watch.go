package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/username/trip-planner/internal/config"
	"github.com/username/trip-planner/internal/currency"
	"github.com/username/trip-planner/internal/daemon"
	"github.com/username/trip-planner/internal/engine"
	"go.uber.org/zap"
)

func watchCmd() *cobra.Command {
	var limit int
	var noConvert bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-rank options whenever the config file changes",
		Long:  "Print the ranked options, then print them again each time the config file is saved and once more when the conversion rate arrives",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := config.NewLoader(configPath)
			cfg, err := loader.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			e, rates, err := initializeEngine(cfg, !noConvert)
			if err != nil {
				return err
			}

			render := func(result engine.Result) {
				outPrintln()
				renderOptions(result, limit)
			}

			d := daemon.NewDaemon(daemon.Options{
				Engine:   e,
				Snapshot: engine.SnapshotFromConfig(cfg),
				Rebuild: func(cfg *config.Config) (*engine.Engine, error) {
					next, err := engine.Build(cfg, rates, logger)
					if err != nil {
						return nil, err
					}
					for _, msg := range rateMismatches(cfg, next, rates, !noConvert) {
						logger.Warn("Currency change needs a restart, keeping the startup rate",
							zap.String("reason", msg))
					}
					return next, nil
				},
				RatesReady: rates.Ready(),
				Render:     render,
				SystemTray: cfg.Daemon.SystemTray,
			}, logger)

			if loader.Watch(d.ApplyConfig) {
				outPrintf("👀 Watching %s, press Ctrl+C to stop\n", loader.ConfigFileUsed())
			} else {
				outPrintln("⚠️  No config file found, nothing to watch; showing defaults")
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			go rates.FetchOnce(ctx)

			logger.Info("Watch mode starting",
				zap.String("config", loader.ConfigFileUsed()),
				zap.Bool("system_tray", cfg.Daemon.SystemTray))

			return d.Start()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Show at most this many options (0 for all)")
	cmd.Flags().BoolVar(&noConvert, "no-convert", false, "Show amounts in the fare currency without fetching a rate")

	return cmd
}

// rateMismatches lists currency changes the startup rate holder cannot follow.
// The rate is fetched once per process.
func rateMismatches(cfg *config.Config, e *engine.Engine, rates *currency.Rates, convert bool) []string {
	var reasons []string
	if !strings.EqualFold(e.Currency(), rates.Base()) {
		reasons = append(reasons, fmt.Sprintf("fare currency changed from %s to %s", rates.Base(), e.Currency()))
	}

	display := e.Currency()
	if convert && strings.TrimSpace(cfg.Currency.Display) != "" {
		display = cfg.Currency.Display
	}
	if !strings.EqualFold(strings.TrimSpace(display), rates.Target()) {
		reasons = append(reasons, fmt.Sprintf("display currency changed from %s to %s", rates.Target(), display))
	}
	return reasons
}
