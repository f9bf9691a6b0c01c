package calendar

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/username/trip-planner/pkg/dateutil"
	"go.uber.org/zap"
)

// hybridKind marks a hybrid day in the type column
const hybridKind Jurisdiction = "hybrid"

// HolidayFile loads holiday and hybrid-day annotations from a local text file.
//
// Format, one entry per line:
//
//	YYYY-MM-DD <jurisdiction|hybrid> [note]
//	2025-04-18 german Karfreitag
//	2025-05-02 hybrid
type HolidayFile struct {
	filePath string
	logger   *zap.Logger
	holidays map[Jurisdiction][]string
	hybrid   []string
	notes    map[string]string
}

// NewHolidayFile creates a new HolidayFile instance
func NewHolidayFile(filePath string, logger *zap.Logger) *HolidayFile {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HolidayFile{
		filePath: filePath,
		logger:   logger,
		holidays: make(map[Jurisdiction][]string),
		notes:    make(map[string]string),
	}
}

// Load loads calendar data from file
func (hf *HolidayFile) Load() error {
	file, err := os.Open(hf.filePath)
	if err != nil {
		return fmt.Errorf("failed to open holiday file: %w", err)
	}
	defer file.Close()

	if err := hf.read(file); err != nil {
		return err
	}

	hf.logger.Info("Holiday file loaded",
		zap.String("file", hf.filePath),
		zap.Int("jurisdictions", len(hf.holidays)),
		zap.Int("hybrid_days", len(hf.hybrid)))

	return nil
}

func (hf *HolidayFile) read(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, " ", 3)
		if len(parts) < 2 {
			hf.logger.Warn("Invalid line format", zap.String("line", line))
			continue
		}

		date, err := dateutil.ParseISODate(parts[0])
		if err != nil {
			hf.logger.Warn("Failed to parse date", zap.String("date", parts[0]), zap.Error(err))
			continue
		}
		key := dateutil.ISODate(date)

		kind := strings.ToLower(strings.TrimSpace(parts[1]))
		if kind == "" {
			hf.logger.Warn("Missing day type", zap.String("line", line))
			continue
		}

		switch Jurisdiction(kind) {
		case German, Indian:
			j := Jurisdiction(kind)
			hf.holidays[j] = append(hf.holidays[j], key)
		case hybridKind:
			hf.hybrid = append(hf.hybrid, key)
		default:
			hf.logger.Warn("Unknown day type", zap.String("type", kind), zap.String("line", line))
			continue
		}

		if len(parts) == 3 {
			if note := strings.TrimSpace(parts[2]); note != "" {
				hf.notes[key] = note
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading holiday file: %w", err)
	}
	return nil
}

// Holidays returns the loaded holidays per jurisdiction
func (hf *HolidayFile) Holidays() map[Jurisdiction]DateSet {
	sets := make(map[Jurisdiction]DateSet, len(hf.holidays))
	for j, dates := range hf.holidays {
		sets[j] = NewDateSet(dates...)
	}
	return sets
}

// Hybrid returns the loaded hybrid days
func (hf *HolidayFile) Hybrid() DateSet {
	return NewDateSet(hf.hybrid...)
}

// Notes returns display names keyed by date
func (hf *HolidayFile) Notes() map[string]string {
	notes := make(map[string]string, len(hf.notes))
	for k, v := range hf.notes {
		notes[k] = v
	}
	return notes
}
