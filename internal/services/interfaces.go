package services

import (
	"context"
	"time"

	"worker/internal/domain"
	"worker/internal/timesheet"
)

// Clock returns the current time
type Clock func() time.Time

// TimesheetQuery selects a page of timesheet days
type TimesheetQuery struct {
	// Offset skips that many days, newest or oldest first depending on the
	// configured order
	Offset int
	// Limit caps the number of days, zero means all
	Limit int
	// HideRegistered leaves registered intervals out before grouping
	HideRegistered bool
}

// Timesheet is a page of timesheet days for one project
type Timesheet struct {
	Project domain.Project
	Days    []timesheet.Group
	// NowMs is the instant active intervals were measured against
	NowMs int64
	// HasMore reports whether days exist beyond the page
	HasMore bool
}

// ProjectService handles the project lifecycle
type ProjectService interface {
	CreateProject(ctx context.Context, name, description string) (*domain.Project, error)
	GetProject(ctx context.Context, id int64) (*domain.Project, error)
	GetProjectByName(ctx context.Context, name string) (*domain.Project, error)
	ListProjects(ctx context.Context) ([]domain.Project, error)
	DeleteProject(ctx context.Context, id int64) error
}

// TimeService handles clock activity and registration of time intervals
type TimeService interface {
	// Clock activity
	ClockIn(ctx context.Context, projectID int64, at time.Time) (domain.TimeInterval, error)
	ClockOut(ctx context.Context, projectID int64, at time.Time) (domain.TimeInterval, error)
	GetActiveTimeInterval(ctx context.Context, projectID int64) (domain.TimeInterval, bool, error)

	// Interval operations
	GetTimeInterval(ctx context.Context, id int64) (domain.TimeInterval, error)
	MarkRegistered(ctx context.Context, id int64) (domain.TimeInterval, error)
	UnmarkRegistered(ctx context.Context, id int64) (domain.TimeInterval, error)
	RemoveTimeInterval(ctx context.Context, id int64) error

	// TimeSince sums the time of a project from the start of period until now
	TimeSince(ctx context.Context, projectID int64, period domain.Period, now time.Time) (domain.HoursMinutes, error)
}

// TimesheetService builds the per-day timesheet of a project
type TimesheetService interface {
	GetTimesheet(ctx context.Context, projectID int64, query TimesheetQuery) (*Timesheet, error)
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	ProjectService   ProjectService
	TimeService      TimeService
	TimesheetService TimesheetService
}
