package api

import (
	"fmt"
	"time"

	"worker/internal/config"
	"worker/internal/domain"
	"worker/internal/errors"
)

// Options shape the summaries rendered by the BusinessAPI
type Options struct {
	// Format renders interval and day summaries
	Format domain.IntervalFormat
	// DailyGoal is compared against the time of each timesheet day
	DailyGoal domain.HoursMinutes
	// ClockFormat renders and parses wall clock times such as "15:04"
	ClockFormat string
	// Period selects the span summed by project status
	Period   domain.Period
	Location *time.Location
	Clock    func() time.Time
}

// DefaultOptions matches the defaults of config.NewConfig
func DefaultOptions() Options {
	return Options{
		Format:      domain.FractionIntervalFormat{},
		DailyGoal:   domain.HoursMinutes{Hours: 8},
		ClockFormat: "15:04",
		Period:      domain.PeriodMonth,
		Location:    time.Local,
		Clock:       time.Now,
	}
}

// OptionsFromConfig resolves the display settings of cfg. A nil clock uses
// time.Now.
func OptionsFromConfig(cfg *config.Config, clock func() time.Time) (Options, error) {
	opts := DefaultOptions()
	if clock != nil {
		opts.Clock = clock
	}
	if cfg == nil {
		return opts, nil
	}

	format, err := cfg.GetIntervalFormat()
	if err != nil {
		return Options{}, err
	}
	period, err := cfg.GetSummaryPeriod()
	if err != nil {
		return Options{}, err
	}
	loc, err := cfg.GetLocation()
	if err != nil {
		return Options{}, fmt.Errorf("failed to load time zone: %w", err)
	}

	opts.Format = format
	opts.Period = period
	opts.Location = loc
	opts.DailyGoal = cfg.GetDailyGoal()
	if cfg.Time.ClockFormat != "" {
		opts.ClockFormat = cfg.Time.ClockFormat
	}
	return opts, nil
}

// now returns the current instant in the configured location
func (o Options) now() time.Time {
	return o.Clock().In(o.Location)
}

// ParseClockTime resolves a wall clock time such as "08:15" to that time
// today. An empty value means now.
func (o Options) ParseClockTime(value string) (time.Time, error) {
	now := o.now()
	if value == "" {
		return now, nil
	}

	clock, err := time.ParseInLocation(o.ClockFormat, value, o.Location)
	if err != nil {
		return time.Time{}, errors.NewInvalidInputError("at", value,
			fmt.Sprintf("must be a time like %s", o.ClockFormat))
	}

	year, month, day := now.Date()
	return time.Date(year, month, day, clock.Hour(), clock.Minute(), 0, 0, o.Location), nil
}

// since renders "Since 15:14 (1h 0m)" for an active interval
func (o Options) since(interval domain.TimeInterval, now time.Time) string {
	start := time.UnixMilli(interval.Start()).In(o.Location).Format(o.ClockFormat)
	elapsed := domain.CompactIntervalFormat{}.Format(interval.CalculatedTime(now.UnixMilli()))
	return fmt.Sprintf("Since %s (%s)", start, elapsed)
}

// ProjectStatus summarizes the clock activity of a project
type ProjectStatus struct {
	Project domain.Project `json:"project"`
	Active  bool           `json:"active"`
	// Since reads like "Since 15:14 (1h 0m)" while the project is clocked in
	Since string `json:"since,omitempty"`
	// Period names the span summed into PeriodTime, e.g. "month"
	Period     string `json:"period"`
	PeriodTime string `json:"period_time"`
}

// IntervalView is a time interval with pre-formatted summaries
type IntervalView struct {
	ID        int64 `json:"id"`
	ProjectID int64 `json:"project_id"`
	// Title reads like "08:00 - 12:30", or "08:00" while active
	Title      string     `json:"title"`
	Summary    string     `json:"summary"`
	Start      time.Time  `json:"start"`
	Stop       *time.Time `json:"stop,omitempty"`
	Active     bool       `json:"active"`
	Registered bool       `json:"registered"`
}

// TimesheetDay is one day of a timesheet
type TimesheetDay struct {
	ID    int64     `json:"id"`
	Date  time.Time `json:"date"`
	Title string    `json:"title"`
	// Summary carries the difference against the daily goal, "9:07 (+1:07)"
	Summary    string         `json:"summary"`
	Registered bool           `json:"registered"`
	Items      []IntervalView `json:"items"`
}

// TimesheetPage is a page of timesheet days for one project
type TimesheetPage struct {
	Project domain.Project `json:"project"`
	Days    []TimesheetDay `json:"days"`
	HasMore bool           `json:"has_more"`
}
