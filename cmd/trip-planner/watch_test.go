package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/trip-planner/internal/config"
	"github.com/username/trip-planner/internal/currency"
	"github.com/username/trip-planner/internal/engine"
	"go.uber.org/zap"
)

func watchConfig() *config.Config {
	return &config.Config{
		Window:    config.WindowConfig{Start: "2025-04-01", End: "2025-05-31"},
		Travelers: []config.TravelerConfig{{Name: "Jonas", Jurisdiction: "german"}},
		Calendar:  config.CalendarConfig{HybridJurisdiction: "german"},
		Fares:     config.FaresConfig{Increment: 500},
		Currency:  config.CurrencyConfig{Display: "EUR"},
	}
}

func TestRateMismatches(t *testing.T) {
	cfg := watchConfig()
	e, err := engine.Build(cfg, nil, zap.NewNop())
	require.NoError(t, err)

	rates := currency.NewRates("INR", "EUR", nil, zap.NewNop())
	assert.Empty(t, rateMismatches(cfg, e, rates, true))

	cfg.Currency.Display = "USD"
	reasons := rateMismatches(cfg, e, rates, true)
	require.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], "display currency changed from EUR to USD")

	unconverted := currency.NewRates("INR", "INR", nil, zap.NewNop())
	assert.Empty(t, rateMismatches(cfg, e, unconverted, false), "--no-convert ignores the display setting")

	usdBase := currency.NewRates("USD", "USD", nil, zap.NewNop())
	reasons = rateMismatches(cfg, e, usdBase, false)
	require.Len(t, reasons, 2)
	assert.Contains(t, reasons[0], "fare currency changed from USD to INR")
}
