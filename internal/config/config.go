package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"worker/internal/domain"
	"worker/internal/locale"
	"worker/internal/timesheet"
)

// Config holds all configuration options for the worker application
type Config struct {
	Database    DatabaseConfig
	Time        TimeConfig
	Validation  ValidationConfig
	Display     DisplayConfig
	Application ApplicationConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `env:"WORKER_DB_DIR"`
	Filename       string        `env:"WORKER_DB_FILENAME"`
	QueryTimeout   time.Duration `env:"WORKER_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `env:"WORKER_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `env:"WORKER_DB_DIR_PERMISSIONS"`
}

// TimeConfig holds time formatting configuration
type TimeConfig struct {
	DisplayFormat string `env:"WORKER_TIME_DISPLAY_FORMAT"`
	ClockFormat   string `env:"WORKER_TIME_CLOCK_FORMAT"`
	// Location names the IANA zone whose calendar days group the timesheet.
	// Empty means the local zone.
	Location string `env:"WORKER_TIME_LOCATION"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	ProjectNameMinLength int `env:"WORKER_VALIDATION_PROJECT_NAME_MIN"`
	ProjectNameMaxLength int `env:"WORKER_VALIDATION_PROJECT_NAME_MAX"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	IntervalFormat string        `env:"WORKER_DISPLAY_INTERVAL_FORMAT"`
	Locale         string        `env:"WORKER_DISPLAY_LOCALE"`
	GroupOrder     string        `env:"WORKER_DISPLAY_GROUP_ORDER"`
	DailyGoal      time.Duration `env:"WORKER_DISPLAY_DAILY_GOAL"`
	// SummaryPeriod is the starting point of the project time summary:
	// day, week or month
	SummaryPeriod string `env:"WORKER_DISPLAY_SUMMARY_PERIOD"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout   time.Duration `env:"WORKER_APP_TIMEOUT"`
	Verbose   bool          `env:"WORKER_APP_VERBOSE"`
	LogLevel  string        `env:"WORKER_LOG_LEVEL"`
	LogFormat string        `env:"WORKER_LOG_FORMAT"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".worker")

	return &Config{
		Database: DatabaseConfig{
			Dir:            defaultDBDir,
			Filename:       "worker.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Time: TimeConfig{
			DisplayFormat: "2006-01-02 15:04",
			ClockFormat:   "15:04",
		},
		Validation: ValidationConfig{
			ProjectNameMinLength: 1,
			ProjectNameMaxLength: 255,
		},
		Display: DisplayConfig{
			IntervalFormat: domain.FormatFraction,
			Locale:         locale.Auto,
			GroupOrder:     timesheet.NewestFirst.String(),
			DailyGoal:      8 * time.Hour,
			SummaryPeriod:  domain.PeriodMonth.String(),
		},
		Application: ApplicationConfig{
			Timeout:   60 * time.Second,
			LogLevel:  "warn",
			LogFormat: "console",
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// GetWriteTimeout returns the database write timeout
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Database.WriteTimeout
}

// GetLocation resolves the configured time zone
func (c *Config) GetLocation() (*time.Location, error) {
	if c.Time.Location == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Time.Location)
}

// GetIntervalFormat resolves the configured interval format
func (c *Config) GetIntervalFormat() (domain.IntervalFormat, error) {
	return domain.IntervalFormatByName(c.Display.IntervalFormat)
}

// GetGroupOrder resolves the configured timesheet order
func (c *Config) GetGroupOrder() (timesheet.Order, error) {
	return timesheet.ParseOrder(c.Display.GroupOrder)
}

// GetSummaryPeriod resolves the starting point of the project time summary
func (c *Config) GetSummaryPeriod() (domain.Period, error) {
	return domain.ParsePeriod(c.Display.SummaryPeriod)
}

// GetDailyGoal returns the daily goal as hours and minutes
func (c *Config) GetDailyGoal() domain.HoursMinutes {
	return domain.CalculateHoursMinutes(c.Display.DailyGoal.Milliseconds())
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("WORKER_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("WORKER_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("WORKER_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Database.QueryTimeout = ParseDurationWithFallback(timeout, c.Database.QueryTimeout)
	}
	if timeout := os.Getenv("WORKER_DB_WRITE_TIMEOUT"); timeout != "" {
		c.Database.WriteTimeout = ParseDurationWithFallback(timeout, c.Database.WriteTimeout)
	}
	if perms := os.Getenv("WORKER_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}

	// Time configuration
	if format := os.Getenv("WORKER_TIME_DISPLAY_FORMAT"); format != "" {
		c.Time.DisplayFormat = format
	}
	if format := os.Getenv("WORKER_TIME_CLOCK_FORMAT"); format != "" {
		c.Time.ClockFormat = format
	}
	if location := os.Getenv("WORKER_TIME_LOCATION"); location != "" {
		c.Time.Location = location
	}

	// Validation configuration
	if minLen := os.Getenv("WORKER_VALIDATION_PROJECT_NAME_MIN"); minLen != "" {
		c.Validation.ProjectNameMinLength = ParseIntWithFallback(minLen, c.Validation.ProjectNameMinLength)
	}
	if maxLen := os.Getenv("WORKER_VALIDATION_PROJECT_NAME_MAX"); maxLen != "" {
		c.Validation.ProjectNameMaxLength = ParseIntWithFallback(maxLen, c.Validation.ProjectNameMaxLength)
	}

	// Display configuration
	if format := os.Getenv("WORKER_DISPLAY_INTERVAL_FORMAT"); format != "" {
		c.Display.IntervalFormat = format
	}
	if name := os.Getenv("WORKER_DISPLAY_LOCALE"); name != "" {
		c.Display.Locale = name
	}
	if order := os.Getenv("WORKER_DISPLAY_GROUP_ORDER"); order != "" {
		c.Display.GroupOrder = order
	}
	if goal := os.Getenv("WORKER_DISPLAY_DAILY_GOAL"); goal != "" {
		c.Display.DailyGoal = ParseDurationWithFallback(goal, c.Display.DailyGoal)
	}
	if period := os.Getenv("WORKER_DISPLAY_SUMMARY_PERIOD"); period != "" {
		c.Display.SummaryPeriod = period
	}

	// Application configuration
	if timeout := os.Getenv("WORKER_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("WORKER_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}
	if level := os.Getenv("WORKER_LOG_LEVEL"); level != "" {
		c.Application.LogLevel = level
	}
	if format := os.Getenv("WORKER_LOG_FORMAT"); format != "" {
		c.Application.LogFormat = format
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}

	// Validate time configuration
	if c.Time.DisplayFormat == "" {
		return &ConfigError{Field: "time.display_format", Message: "display format cannot be empty"}
	}
	if c.Time.ClockFormat == "" {
		return &ConfigError{Field: "time.clock_format", Message: "clock format cannot be empty"}
	}
	if _, err := c.GetLocation(); err != nil {
		return &ConfigError{Field: "time.location", Message: "unknown time zone " + strconv.Quote(c.Time.Location)}
	}

	// Validate validation configuration
	if c.Validation.ProjectNameMinLength < 1 {
		return &ConfigError{Field: "validation.project_name_min_length", Message: "project name minimum length must be at least 1"}
	}
	if c.Validation.ProjectNameMaxLength < c.Validation.ProjectNameMinLength {
		return &ConfigError{Field: "validation.project_name_max_length", Message: "project name maximum length must be greater than minimum length"}
	}

	// Validate display configuration
	if _, err := c.GetIntervalFormat(); err != nil {
		return &ConfigError{Field: "display.interval_format", Message: err.Error()}
	}
	if _, err := c.GetGroupOrder(); err != nil {
		return &ConfigError{Field: "display.group_order", Message: err.Error()}
	}
	if strings.TrimSpace(c.Display.Locale) == "" {
		return &ConfigError{Field: "display.locale", Message: "locale cannot be empty, use \"auto\" to detect it"}
	}
	if _, err := c.GetSummaryPeriod(); err != nil {
		return &ConfigError{Field: "display.summary_period", Message: err.Error()}
	}
	if c.Display.DailyGoal < 0 {
		return &ConfigError{Field: "display.daily_goal", Message: "daily goal cannot be negative"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
