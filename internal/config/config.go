package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"github.com/username/trip-planner/internal/calendar"
	"github.com/username/trip-planner/pkg/dateutil"
)

// EnvPrefix prefixes environment overrides, e.g. TRIP_SEARCH_SORT=total
const EnvPrefix = "TRIP"

// Config represents application configuration
type Config struct {
	Window    WindowConfig     `mapstructure:"window"`
	Travelers []TravelerConfig `mapstructure:"travelers"`
	Calendar  CalendarConfig   `mapstructure:"calendar"`
	Fares     FaresConfig      `mapstructure:"fares"`
	Currency  CurrencyConfig   `mapstructure:"currency"`
	Search    SearchConfig     `mapstructure:"search"`
	Log       LogConfig        `mapstructure:"log"`
	Daemon    DaemonConfig     `mapstructure:"daemon"`
}

// WindowConfig is the inclusive calendar window options are generated in
type WindowConfig struct {
	Start string `mapstructure:"start"` // YYYY-MM-DD
	End   string `mapstructure:"end"`   // YYYY-MM-DD
}

// TravelerConfig represents one member of the group
type TravelerConfig struct {
	Name         string `mapstructure:"name"`
	Jurisdiction string `mapstructure:"jurisdiction"` // "german" or "indian"
}

// CalendarConfig represents holiday and hybrid-day sources
type CalendarConfig struct {
	German             []string `mapstructure:"german"` // empty: federal holidays are computed
	Indian             []string `mapstructure:"indian"`
	Hybrid             []string `mapstructure:"hybrid"`
	HybridJurisdiction string   `mapstructure:"hybrid_jurisdiction"`
	HolidayFile        string   `mapstructure:"holiday_file"` // optional, merged with the lists above
}

// FaresConfig represents the fare table source and rounding
type FaresConfig struct {
	File      string `mapstructure:"file"` // empty: built-in table
	Round     bool   `mapstructure:"round"`
	Increment int    `mapstructure:"increment"`
}

// CurrencyConfig represents display currency conversion
type CurrencyConfig struct {
	Display string `mapstructure:"display"`
	BaseURL string `mapstructure:"base_url"`
	Timeout string `mapstructure:"timeout"`
}

// SearchConfig is the user input the pipeline runs on
type SearchConfig struct {
	Durations []int             `mapstructure:"durations"`
	Ceilings  map[string]string `mapstructure:"ceilings"` // traveler -> max cost in display currency
	Sort      string            `mapstructure:"sort"`
	Direction string            `mapstructure:"direction"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DaemonConfig represents watch mode configuration
type DaemonConfig struct {
	SystemTray bool `mapstructure:"system_tray"` // Show system tray icon (Windows only)
}

// Loader reads the configuration and keeps the viper instance for watching
type Loader struct {
	v *viper.Viper
}

// NewLoader prepares a loader. An empty path searches the working directory and
// $HOME/.trip-planner for config.yaml; without a file the defaults apply.
func NewLoader(configPath string) *Loader {
	v := viper.New()

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.trip-planner")
	}

	setDefaults(v)

	// Read environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v}
}

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	return NewLoader(configPath).Load()
}

// Load reads the file, if any, and returns the validated configuration
func (l *Loader) Load() (*Config, error) {
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return l.decode()
}

func (l *Loader) decode() (*Config, error) {
	var config Config
	if err := l.v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// ConfigFileUsed returns the file the configuration came from, or "" for defaults only
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// Watch calls onChange with the re-read configuration every time the file changes.
// It does nothing when no file was found.
func (l *Loader) Watch(onChange func(*Config, error)) bool {
	if l.v.ConfigFileUsed() == "" {
		return false
	}

	l.v.OnConfigChange(func(fsnotify.Event) {
		onChange(l.decode())
	})
	l.v.WatchConfig()
	return true
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("window.start", "2025-04-01")
	v.SetDefault("window.end", "2025-05-31")

	v.SetDefault("travelers", []map[string]interface{}{
		{"name": "Jonas", "jurisdiction": string(calendar.German)},
		{"name": "Priya", "jurisdiction": string(calendar.Indian)},
		{"name": "Arjun", "jurisdiction": string(calendar.Indian)},
	})

	v.SetDefault("calendar.german", []string{})
	v.SetDefault("calendar.indian", []string{
		"2025-04-10", "2025-04-14", "2025-04-18", "2025-05-01", "2025-05-12",
	})
	v.SetDefault("calendar.hybrid", []string{"2025-04-25", "2025-05-02", "2025-05-30"})
	v.SetDefault("calendar.hybrid_jurisdiction", string(calendar.German))
	v.SetDefault("calendar.holiday_file", "")

	v.SetDefault("fares.file", "")
	v.SetDefault("fares.round", false)
	v.SetDefault("fares.increment", 500)

	v.SetDefault("currency.display", "EUR")
	v.SetDefault("currency.base_url", "https://open.er-api.com/v6/latest")
	v.SetDefault("currency.timeout", "10s")

	v.SetDefault("search.durations", []int{6, 7, 8, 9, 10})
	v.SetDefault("search.ceilings", map[string]string{})
	v.SetDefault("search.sort", "dates")
	v.SetDefault("search.direction", "asc")

	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "warn")

	v.SetDefault("daemon.system_tray", false)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	// Validate window
	start, end, err := c.Window.GetWindow()
	if err != nil {
		return err
	}
	if end.Before(start) {
		return fmt.Errorf("window.end %s is before window.start %s", c.Window.End, c.Window.Start)
	}

	// Validate travelers
	if len(c.Travelers) == 0 {
		return fmt.Errorf("at least one traveler is required")
	}
	seen := make(map[string]bool, len(c.Travelers))
	for i, t := range c.Travelers {
		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("travelers[%d].name is required", i)
		}
		key := strings.ToLower(t.Name)
		if seen[key] {
			return fmt.Errorf("traveler %q is listed twice", t.Name)
		}
		seen[key] = true
		if !validJurisdiction(t.Jurisdiction) {
			return fmt.Errorf("travelers[%d].jurisdiction must be 'german' or 'indian', got '%s'", i, t.Jurisdiction)
		}
	}

	// Validate calendar
	for name, dates := range map[string][]string{
		"calendar.german": c.Calendar.German,
		"calendar.indian": c.Calendar.Indian,
		"calendar.hybrid": c.Calendar.Hybrid,
	} {
		if _, err := calendar.ParseDateSet(dates); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	if !validJurisdiction(c.Calendar.HybridJurisdiction) {
		return fmt.Errorf("calendar.hybrid_jurisdiction must be 'german' or 'indian', got '%s'", c.Calendar.HybridJurisdiction)
	}

	// Validate fares
	if c.Fares.Round && c.Fares.Increment <= 0 {
		return fmt.Errorf("fares.increment must be positive when rounding is enabled")
	}

	return nil
}

func validJurisdiction(j string) bool {
	switch calendar.Jurisdiction(j) {
	case calendar.German, calendar.Indian:
		return true
	default:
		return false
	}
}

// GetWindow parses the window bounds as noon-anchored local dates
func (w *WindowConfig) GetWindow() (start, end time.Time, err error) {
	start, err = dateutil.ParseISODate(w.Start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("window.start: %w", err)
	}
	end, err = dateutil.ParseISODate(w.End)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("window.end: %w", err)
	}
	return start, end, nil
}

// GetTimeout returns the rate fetch timeout
func (c *CurrencyConfig) GetTimeout() time.Duration {
	if c.Timeout == "" {
		return 10 * time.Second
	}
	duration, err := time.ParseDuration(c.Timeout)
	if err != nil || duration <= 0 {
		return 10 * time.Second
	}
	return duration
}

// TravelerNames returns the configured names in order
func (c *Config) TravelerNames() []string {
	names := make([]string, len(c.Travelers))
	for i, t := range c.Travelers {
		names[i] = t.Name
	}
	return names
}

// CeilingInputs returns the raw ceiling inputs keyed by the configured traveler names.
// Keys are matched case-insensitively since viper lowercases map keys.
func (c *Config) CeilingInputs() map[string]string {
	inputs := make(map[string]string, len(c.Search.Ceilings))
	for key, value := range c.Search.Ceilings {
		for _, t := range c.Travelers {
			if strings.EqualFold(key, t.Name) {
				inputs[t.Name] = value
				break
			}
		}
	}
	return inputs
}
