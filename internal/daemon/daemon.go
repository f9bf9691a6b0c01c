package daemon

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/username/trip-planner/internal/config"
	"github.com/username/trip-planner/internal/engine"
	"go.uber.org/zap"
)

// Rebuild creates a fresh engine after the configuration changed
type Rebuild func(cfg *config.Config) (*engine.Engine, error)

// Options configure the watch daemon
type Options struct {
	Engine     *engine.Engine
	Snapshot   engine.Snapshot
	Rebuild    Rebuild         // nil: configuration changes only update the snapshot
	RatesReady <-chan struct{} // closed once the conversion rate is resolved
	Render     func(engine.Result)
	SystemTray bool // Show system tray icon (Windows only)
}

// Daemon re-runs the option pipeline whenever its input changes
type Daemon struct {
	engine     *engine.Engine
	snapshot   engine.Snapshot
	rebuild    Rebuild
	ratesReady <-chan struct{}
	render     func(engine.Result)
	systemTray bool
	logger     *zap.Logger
	ctx        context.Context
	cancel     context.CancelFunc
	trayApp    *TrayApp
	mu         sync.Mutex // serializes refreshes and input swaps
	last       engine.Result
	runs       int
}

// NewDaemon creates a new daemon instance
func NewDaemon(opts Options, logger *zap.Logger) *Daemon {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Daemon{
		engine:     opts.Engine,
		snapshot:   opts.Snapshot,
		rebuild:    opts.Rebuild,
		ratesReady: opts.RatesReady,
		render:     opts.Render,
		systemTray: opts.SystemTray,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start runs until Stop is called or the process receives SIGINT/SIGTERM
func (d *Daemon) Start() error {
	// Initialize system tray if enabled (Windows only)
	if d.systemTray {
		d.logger.Info("Initializing system tray")
		trayApp, err := NewTrayApp(d, d.logger)
		if err != nil {
			d.logger.Warn("Failed to initialize system tray", zap.Error(err))
			return d.startWithoutTray()
		}
		d.trayApp = trayApp
		// Run tray (blocks until Quit)
		d.trayApp.Run()
		return nil
	}

	d.logger.Info("Running without system tray")
	return d.startWithoutTray()
}

func (d *Daemon) startWithoutTray() error {
	d.watchLoop()
	return nil
}

// watchLoop adds signal handling to run; called from Start or from the tray
func (d *Daemon) watchLoop() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			d.logger.Info("Received signal, shutting down",
				zap.String("signal", sig.String()))
			d.Stop()
		case <-d.ctx.Done():
		}
	}()

	d.run(d.ctx)

	if d.trayApp != nil {
		d.trayApp.Stop()
	}
}

// run refreshes once, then again exactly once when the rate resolves, until ctx is done
func (d *Daemon) run(ctx context.Context) {
	d.logger.Info("Watch mode started")
	d.Refresh()

	ready := d.ratesReady
	for {
		select {
		case <-ctx.Done():
			d.logger.Info("Watch mode stopped", zap.Int("runs", d.Runs()))
			return

		case <-ready:
			ready = nil
			d.logger.Info("Conversion rate resolved, refreshing")
			d.Refresh()
		}
	}
}

// Stop stops the daemon
func (d *Daemon) Stop() {
	d.cancel()
}

// Refresh runs the pipeline on the current input and renders the result
func (d *Daemon) Refresh() engine.Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	result := d.engine.Run(d.snapshot)
	d.last = result
	d.runs++

	if d.render != nil {
		d.render(result)
	}
	if d.trayApp != nil {
		d.trayApp.Update(result)
	}
	return result
}

// ApplyConfig swaps in a changed configuration and refreshes. An invalid configuration
// is logged and the previous input stays active.
func (d *Daemon) ApplyConfig(cfg *config.Config, err error) {
	if err != nil {
		d.logger.Error("Ignoring invalid configuration change", zap.Error(err))
		if d.trayApp != nil {
			d.trayApp.ShowNotification("Configuration Error", fmt.Sprintf("Error: %v", err))
		}
		return
	}

	d.mu.Lock()
	if d.rebuild != nil {
		e, err := d.rebuild(cfg)
		if err != nil {
			d.mu.Unlock()
			d.logger.Error("Failed to rebuild engine, keeping previous one", zap.Error(err))
			return
		}
		d.engine = e
	}
	d.snapshot = engine.SnapshotFromConfig(cfg)
	d.mu.Unlock()

	d.logger.Info("Configuration changed, refreshing",
		zap.Ints("durations", cfg.Search.Durations),
		zap.String("sort", cfg.Search.Sort))
	d.Refresh()
}

// Last returns the most recent result
func (d *Daemon) Last() engine.Result {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last
}

// Runs returns how many times the pipeline ran
func (d *Daemon) Runs() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.runs
}

// Summary describes the best option of a result in one line
func Summary(result engine.Result) string {
	best, ok := result.Best()
	if !ok {
		return "No options match the current filters"
	}
	return fmt.Sprintf("%s - %s (%d days), total %.2f %s",
		best.StartLabel(), best.EndLabel(), best.Duration,
		result.Amount(best.Costs.Total), result.Currency)
}
