package services

import (
	"fmt"

	"worker/internal/config"
	"worker/internal/locale"
	"worker/internal/repository/sqlite"
	"worker/internal/timesheet"
	"worker/internal/validation"
)

// NewServiceContainer wires the services from configuration. A nil clock
// uses time.Now.
func NewServiceContainer(repo sqlite.Repository, cfg *config.Config, clock Clock) (*ServiceContainer, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	grouper, err := NewGrouperFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	validator := validation.NewProjectValidatorWithConfig(cfg)

	return &ServiceContainer{
		ProjectService:   NewProjectService(repo, validator),
		TimeService:      NewTimeService(repo, validator),
		TimesheetService: NewTimesheetService(repo, grouper, clock),
	}, nil
}

// NewGrouperFromConfig builds a timesheet grouper using the configured time
// zone, locale and order
func NewGrouperFromConfig(cfg *config.Config) (*timesheet.Grouper, error) {
	loc, err := cfg.GetLocation()
	if err != nil {
		return nil, fmt.Errorf("failed to load time zone: %w", err)
	}

	order, err := cfg.GetGroupOrder()
	if err != nil {
		return nil, err
	}

	return timesheet.NewGrouper(
		timesheet.WithLocation(loc),
		timesheet.WithTranslator(locale.FromSetting(cfg.Display.Locale)),
		timesheet.WithOrder(order),
	), nil
}
