package fares

import (
	"fmt"
	"io"

	"github.com/spf13/viper"
	"github.com/username/trip-planner/pkg/random"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// File is the on-disk fare table layout (YAML or JSON)
type File struct {
	Currency  string `mapstructure:"currency" yaml:"currency"`
	Travelers []Row  `mapstructure:"travelers" yaml:"travelers"`
}

// Load reads a fare table from a YAML or JSON file. Every row must cover days ordinals.
func Load(path string, days int, logger *zap.Logger) (*Table, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("currency", DefaultCurrency)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read fare file: %w", err)
	}

	var file File
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal fare file: %w", err)
	}

	table, err := NewTable(file.Currency, days, file.Travelers)
	if err != nil {
		return nil, fmt.Errorf("invalid fare file %s: %w", path, err)
	}

	logger.Info("Fare table loaded",
		zap.String("file", path),
		zap.String("currency", table.Currency()),
		zap.Strings("travelers", table.Travelers()),
		zap.Int("days", table.Days()))

	return table, nil
}

// SampleOptions controls Synthesize
type SampleOptions struct {
	Currency     string
	Days         int
	Travelers    []string
	BaseFare     int
	StepPercent  float64 // max day-to-day drift
	BoundPercent float64 // max distance from BaseFare
	Seed         int64   // 0 = clock
}

// Synthesize builds a random-walk fare table, useful for demos and tests
func Synthesize(opts SampleOptions) (*Table, error) {
	if opts.BaseFare <= 0 {
		return nil, fmt.Errorf("base fare must be positive, got %d", opts.BaseFare)
	}
	if opts.BoundPercent >= 100 {
		return nil, fmt.Errorf("bound percent must be below 100, got %.1f", opts.BoundPercent)
	}

	gen := random.New(opts.Seed)
	rows := make([]Row, 0, len(opts.Travelers))
	for _, name := range opts.Travelers {
		base := gen.RandomizeInt(opts.BaseFare, opts.BoundPercent/2)
		rows = append(rows, Row{
			Traveler: name,
			Outbound: gen.Walk(base, opts.Days, opts.StepPercent, opts.BoundPercent/2),
			Return:   gen.Walk(base, opts.Days, opts.StepPercent, opts.BoundPercent/2),
		})
	}

	return NewTable(opts.Currency, opts.Days, rows)
}

// WriteYAML writes the table in the File layout accepted by Load
func (t *Table) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(File{Currency: t.currency, Travelers: t.Rows()}); err != nil {
		return fmt.Errorf("failed to encode fare table: %w", err)
	}
	return enc.Close()
}
