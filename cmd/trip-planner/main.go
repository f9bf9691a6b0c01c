package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/username/trip-planner/internal/config"
	"github.com/username/trip-planner/internal/currency"
	"github.com/username/trip-planner/internal/engine"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath string
	logger     *zap.Logger = zap.NewNop()
	outWriter  io.Writer   = os.Stdout
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "trip-planner",
		Short: "Travel itinerary option planner",
		Long:  "Rank every trip start and duration in the travel window by fare, weekends, holidays and leave days",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// .env is optional
			_ = godotenv.Load(".env")

			// Load config to get log file path
			cfg, err := config.Load(configPath)
			switch {
			case err == nil && cfg.Log.File != "":
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger(cfg.Log.Level) // Fallback to console
				}
			case err == nil:
				initLogger(cfg.Log.Level)
			default:
				initLogger("warn") // Default console logger
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: ./config.yaml or $HOME/.trip-planner/config.yaml)")

	rootCmd.AddCommand(optionsCmd())
	rootCmd.AddCommand(calendarCmd())
	rootCmd.AddCommand(faresCmd())
	rootCmd.AddCommand(watchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func outPrintf(format string, a ...interface{}) {
	if outWriter == nil {
		outWriter = os.Stdout
	}
	fmt.Fprintf(outWriter, format, a...)
}

func outPrintln(a ...interface{}) {
	if outWriter == nil {
		outWriter = os.Stdout
	}
	fmt.Fprintln(outWriter, a...)
}

// teeOutput mirrors command output to a file until the returned func is called
func teeOutput(path string) (func(), error) {
	outWriter = os.Stdout
	if path == "" {
		return func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create tee path: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open tee-output file: %w", err)
	}
	outWriter = io.MultiWriter(os.Stdout, f)

	return func() {
		outWriter = os.Stdout
		f.Close()
	}, nil
}

// initializeEngine builds the engine and its rate holder. The rate is not fetched here.
func initializeEngine(cfg *config.Config, convert bool) (*engine.Engine, *currency.Rates, error) {
	e, err := engine.Build(cfg, nil, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize engine: %w", err)
	}

	display := cfg.Currency.Display
	if !convert {
		display = e.Currency()
	}

	client := currency.NewClient(cfg.Currency.BaseURL, cfg.Currency.GetTimeout(), logger)
	rates := currency.NewRates(e.Currency(), display, client, logger)
	e.SetRates(rates)

	logger.Info("Engine initialized",
		zap.Int("window_days", e.Window().Len()),
		zap.Strings("travelers", e.TravelerNames()),
		zap.String("currency", e.Currency()),
		zap.String("display_currency", display),
		zap.String("rate_status", rates.Status().String()))

	return e, rates, nil
}

// fetchRate resolves the rate before returning; failures leave amounts in the base currency
func fetchRate(ctx context.Context, rates *currency.Rates) {
	rates.FetchOnce(ctx)
	if rates.Status() == currency.StatusUnavailable {
		outPrintf("⚠️  Conversion to %s unavailable, showing %s\n\n", rates.Target(), rates.Base())
	}
}

func initLogger(level string) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	// stdout carries the tables
	config.OutputPaths = []string{"stderr"}

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.WarnLevel
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,  // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	// Setup encoder
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	// Parse log level
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	// Create core with lumberjack writer
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
