package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// DefaultConfigFile is the file name looked up in the default config directory
const DefaultConfigFile = "config.toml"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config     *Config
	configPath string
	// explicit is set when the caller named a config file, which then must exist
	explicit bool
}

// NewLoader creates a new configuration loader reading ~/.worker/config.toml
func NewLoader() *Loader {
	return &Loader{
		config:     NewConfig(),
		configPath: DefaultConfigPath(),
	}
}

// NewLoaderWithFile creates a loader reading the given config file
func NewLoaderWithFile(path string) *Loader {
	return &Loader{
		config:     NewConfig(),
		configPath: path,
		explicit:   true,
	}
}

// DefaultConfigPath returns the default config file location
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".worker", DefaultConfigFile)
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the TOML config file, when present
// 3. Override with environment variables
// 4. Override with command line flags (handled by cobra)
func (l *Loader) Load() (*Config, error) {
	if err := l.loadFromFile(); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		overrides.applyTo(config)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (l *Loader) loadFromFile() error {
	if l.configPath == "" {
		return nil
	}

	data, err := os.ReadFile(l.configPath)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) && !l.explicit {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", l.configPath, err)
	}

	var file fileConfig
	if err := toml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", l.configPath, err)
	}

	overrides, err := file.overrides()
	if err != nil {
		return fmt.Errorf("invalid config file %s: %w", l.configPath, err)
	}
	overrides.applyTo(l.config)
	return nil
}

// fileConfig mirrors Config in the TOML file. Durations are written as Go
// duration strings, e.g. query_timeout = "10s".
type fileConfig struct {
	Database struct {
		Dir            *string `toml:"dir"`
		Filename       *string `toml:"filename"`
		QueryTimeout   *string `toml:"query_timeout"`
		WriteTimeout   *string `toml:"write_timeout"`
		DirPermissions *string `toml:"dir_permissions"`
	} `toml:"database"`
	Time struct {
		DisplayFormat *string `toml:"display_format"`
		ClockFormat   *string `toml:"clock_format"`
		Location      *string `toml:"location"`
	} `toml:"time"`
	Validation struct {
		ProjectNameMinLength *int `toml:"project_name_min_length"`
		ProjectNameMaxLength *int `toml:"project_name_max_length"`
	} `toml:"validation"`
	Display struct {
		IntervalFormat *string `toml:"interval_format"`
		Locale         *string `toml:"locale"`
		GroupOrder     *string `toml:"group_order"`
		DailyGoal      *string `toml:"daily_goal"`
		SummaryPeriod  *string `toml:"summary_period"`
	} `toml:"display"`
	Application struct {
		Timeout   *string `toml:"timeout"`
		Verbose   *bool   `toml:"verbose"`
		LogLevel  *string `toml:"log_level"`
		LogFormat *string `toml:"log_format"`
	} `toml:"application"`
}

func (f *fileConfig) overrides() (*ConfigOverrides, error) {
	o := &ConfigOverrides{
		DBDir:                f.Database.Dir,
		DBFilename:           f.Database.Filename,
		TimeFormat:           f.Time.DisplayFormat,
		ClockFormat:          f.Time.ClockFormat,
		Location:             f.Time.Location,
		ProjectNameMinLength: f.Validation.ProjectNameMinLength,
		ProjectNameMaxLength: f.Validation.ProjectNameMaxLength,
		IntervalFormat:       f.Display.IntervalFormat,
		Locale:               f.Display.Locale,
		GroupOrder:           f.Display.GroupOrder,
		SummaryPeriod:        f.Display.SummaryPeriod,
		Verbose:              f.Application.Verbose,
		LogLevel:             f.Application.LogLevel,
		LogFormat:            f.Application.LogFormat,
	}

	durations := []struct {
		field  string
		source *string
		target **time.Duration
	}{
		{"database.query_timeout", f.Database.QueryTimeout, &o.DBQueryTimeout},
		{"database.write_timeout", f.Database.WriteTimeout, &o.DBWriteTimeout},
		{"display.daily_goal", f.Display.DailyGoal, &o.DailyGoal},
		{"application.timeout", f.Application.Timeout, &o.Timeout},
	}
	for _, d := range durations {
		if d.source == nil {
			continue
		}
		parsed, err := time.ParseDuration(*d.source)
		if err != nil {
			return nil, &ConfigError{Field: d.field, Message: fmt.Sprintf("invalid duration %q", *d.source)}
		}
		*d.target = &parsed
	}

	if f.Database.DirPermissions != nil {
		perms, err := strconv.ParseUint(*f.Database.DirPermissions, 8, 32)
		if err != nil {
			return nil, &ConfigError{Field: "database.dir_permissions", Message: fmt.Sprintf("invalid octal permissions %q", *f.Database.DirPermissions)}
		}
		p := uint32(perms)
		o.DBDirPermissions = &p
	}

	return o, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Database overrides
	DBDir            *string
	DBFilename       *string
	DBQueryTimeout   *time.Duration
	DBWriteTimeout   *time.Duration
	DBDirPermissions *uint32

	// Time overrides
	TimeFormat  *string
	ClockFormat *string
	Location    *string

	// Validation overrides
	ProjectNameMinLength *int
	ProjectNameMaxLength *int

	// Display overrides
	IntervalFormat *string
	Locale         *string
	GroupOrder     *string
	DailyGoal      *time.Duration
	SummaryPeriod  *string

	// Application overrides
	Timeout   *time.Duration
	Verbose   *bool
	LogLevel  *string
	LogFormat *string
}

func (o *ConfigOverrides) applyTo(config *Config) {
	setString(&config.Database.Dir, o.DBDir)
	setString(&config.Database.Filename, o.DBFilename)
	setDuration(&config.Database.QueryTimeout, o.DBQueryTimeout)
	setDuration(&config.Database.WriteTimeout, o.DBWriteTimeout)
	if o.DBDirPermissions != nil {
		config.Database.DirPermissions = *o.DBDirPermissions
	}

	setString(&config.Time.DisplayFormat, o.TimeFormat)
	setString(&config.Time.ClockFormat, o.ClockFormat)
	setString(&config.Time.Location, o.Location)

	if o.ProjectNameMinLength != nil {
		config.Validation.ProjectNameMinLength = *o.ProjectNameMinLength
	}
	if o.ProjectNameMaxLength != nil {
		config.Validation.ProjectNameMaxLength = *o.ProjectNameMaxLength
	}

	setString(&config.Display.IntervalFormat, o.IntervalFormat)
	setString(&config.Display.Locale, o.Locale)
	setString(&config.Display.GroupOrder, o.GroupOrder)
	setDuration(&config.Display.DailyGoal, o.DailyGoal)
	setString(&config.Display.SummaryPeriod, o.SummaryPeriod)

	setDuration(&config.Application.Timeout, o.Timeout)
	if o.Verbose != nil {
		config.Application.Verbose = *o.Verbose
	}
	setString(&config.Application.LogLevel, o.LogLevel)
	setString(&config.Application.LogFormat, o.LogFormat)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setDuration(dst *time.Duration, src *time.Duration) {
	if src != nil {
		*dst = *src
	}
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
