package api

import (
	"context"
	"time"

	"worker/internal/config"
	"worker/internal/domain"
	"worker/internal/repository/sqlite"
	"worker/internal/services"
	"worker/internal/timesheet"
)

// BusinessAPI defines the workflows behind the worker commands. Projects are
// addressed by name, time intervals by id.
type BusinessAPI interface {
	// ========== Projects ==========

	// CreateProject adds a project, names are unique ignoring case
	CreateProject(ctx context.Context, name, description string) (*domain.Project, error)

	// ListProjects returns all projects ordered by name
	ListProjects(ctx context.Context) ([]domain.Project, error)

	// RemoveProject deletes a project together with its time intervals
	RemoveProject(ctx context.Context, name string) error

	// ========== Clock activity ==========

	// ClockIn starts an interval, at is a wall clock time of today or empty
	// for now
	ClockIn(ctx context.Context, projectName, at string) (*ProjectStatus, error)

	// ClockOut stops the active interval, at is a wall clock time of today
	// or empty for now
	ClockOut(ctx context.Context, projectName, at string) (*IntervalView, error)

	// GetStatus returns the status of every project
	GetStatus(ctx context.Context) ([]*ProjectStatus, error)

	// GetProjectStatus returns the status of a single project
	GetProjectStatus(ctx context.Context, projectName string) (*ProjectStatus, error)

	// ========== Time intervals ==========

	RegisterInterval(ctx context.Context, id int64) (*IntervalView, error)
	UnregisterInterval(ctx context.Context, id int64) (*IntervalView, error)
	RemoveInterval(ctx context.Context, id int64) error

	// ========== Timesheet ==========

	// GetTimesheet returns a page of the per-day timesheet of a project
	GetTimesheet(ctx context.Context, projectName string, query services.TimesheetQuery) (*TimesheetPage, error)
}

// businessAPIImpl implements the BusinessAPI interface
type businessAPIImpl struct {
	services *services.ServiceContainer
	grouper  *timesheet.Grouper
	opts     Options
}

// NewBusinessAPI creates a new BusinessAPI instance. A nil grouper uses the
// default grouping.
func NewBusinessAPI(container *services.ServiceContainer, grouper *timesheet.Grouper, opts Options) BusinessAPI {
	if grouper == nil {
		grouper = timesheet.NewGrouper(timesheet.WithLocation(opts.Location))
	}
	return &businessAPIImpl{
		services: container,
		grouper:  grouper,
		opts:     opts,
	}
}

// NewBusinessAPIFromConfig wires services and display options from cfg
func NewBusinessAPIFromConfig(repo sqlite.Repository, cfg *config.Config, clock func() time.Time) (BusinessAPI, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	opts, err := OptionsFromConfig(cfg, clock)
	if err != nil {
		return nil, err
	}

	container, err := services.NewServiceContainer(repo, cfg, opts.Clock)
	if err != nil {
		return nil, err
	}

	grouper, err := services.NewGrouperFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	return NewBusinessAPI(container, grouper, opts), nil
}

// ========== Projects ==========

func (b *businessAPIImpl) CreateProject(ctx context.Context, name, description string) (*domain.Project, error) {
	return b.services.ProjectService.CreateProject(ctx, name, description)
}

func (b *businessAPIImpl) ListProjects(ctx context.Context) ([]domain.Project, error) {
	return b.services.ProjectService.ListProjects(ctx)
}

func (b *businessAPIImpl) RemoveProject(ctx context.Context, name string) error {
	project, err := b.services.ProjectService.GetProjectByName(ctx, name)
	if err != nil {
		return err
	}
	return b.services.ProjectService.DeleteProject(ctx, project.ID)
}

// ========== Clock activity ==========

func (b *businessAPIImpl) ClockIn(ctx context.Context, projectName, at string) (*ProjectStatus, error) {
	project, err := b.services.ProjectService.GetProjectByName(ctx, projectName)
	if err != nil {
		return nil, err
	}

	start, err := b.opts.ParseClockTime(at)
	if err != nil {
		return nil, err
	}

	if _, err := b.services.TimeService.ClockIn(ctx, project.ID, start); err != nil {
		return nil, err
	}
	return b.status(ctx, *project, b.opts.now())
}

func (b *businessAPIImpl) ClockOut(ctx context.Context, projectName, at string) (*IntervalView, error) {
	project, err := b.services.ProjectService.GetProjectByName(ctx, projectName)
	if err != nil {
		return nil, err
	}

	stop, err := b.opts.ParseClockTime(at)
	if err != nil {
		return nil, err
	}

	interval, err := b.services.TimeService.ClockOut(ctx, project.ID, stop)
	if err != nil {
		return nil, err
	}
	return b.intervalView(interval), nil
}

func (b *businessAPIImpl) GetStatus(ctx context.Context) ([]*ProjectStatus, error) {
	projects, err := b.services.ProjectService.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	now := b.opts.now()
	statuses := make([]*ProjectStatus, 0, len(projects))
	for _, project := range projects {
		status, err := b.status(ctx, project, now)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func (b *businessAPIImpl) GetProjectStatus(ctx context.Context, projectName string) (*ProjectStatus, error) {
	project, err := b.services.ProjectService.GetProjectByName(ctx, projectName)
	if err != nil {
		return nil, err
	}
	return b.status(ctx, *project, b.opts.now())
}

// status combines the active interval and the period total of a project
func (b *businessAPIImpl) status(ctx context.Context, project domain.Project, now time.Time) (*ProjectStatus, error) {
	interval, active, err := b.services.TimeService.GetActiveTimeInterval(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	total, err := b.services.TimeService.TimeSince(ctx, project.ID, b.opts.Period, now)
	if err != nil {
		return nil, err
	}

	status := &ProjectStatus{
		Project:    project,
		Active:     active,
		Period:     b.opts.Period.String(),
		PeriodTime: b.opts.Format.Format(total),
	}
	if active {
		status.Since = b.opts.since(interval, now)
	}
	return status, nil
}

// ========== Time intervals ==========

func (b *businessAPIImpl) RegisterInterval(ctx context.Context, id int64) (*IntervalView, error) {
	interval, err := b.services.TimeService.MarkRegistered(ctx, id)
	if err != nil {
		return nil, err
	}
	return b.intervalView(interval), nil
}

func (b *businessAPIImpl) UnregisterInterval(ctx context.Context, id int64) (*IntervalView, error) {
	interval, err := b.services.TimeService.UnmarkRegistered(ctx, id)
	if err != nil {
		return nil, err
	}
	return b.intervalView(interval), nil
}

func (b *businessAPIImpl) RemoveInterval(ctx context.Context, id int64) error {
	return b.services.TimeService.RemoveTimeInterval(ctx, id)
}

// intervalView renders a single interval within the day it started on
func (b *businessAPIImpl) intervalView(interval domain.TimeInterval) *IntervalView {
	day := b.grouper.Group([]domain.TimeInterval{interval})[0]
	view := newIntervalView(day, interval, b.opts.Format, b.opts.now().UnixMilli())
	return &view
}

// ========== Timesheet ==========

func (b *businessAPIImpl) GetTimesheet(ctx context.Context, projectName string, query services.TimesheetQuery) (*TimesheetPage, error) {
	project, err := b.services.ProjectService.GetProjectByName(ctx, projectName)
	if err != nil {
		return nil, err
	}

	sheet, err := b.services.TimesheetService.GetTimesheet(ctx, project.ID, query)
	if err != nil {
		return nil, err
	}

	days := make([]TimesheetDay, len(sheet.Days))
	for i, group := range sheet.Days {
		days[i] = b.timesheetDay(group, sheet.NowMs)
	}

	return &TimesheetPage{
		Project: sheet.Project,
		Days:    days,
		HasMore: sheet.HasMore,
	}, nil
}

func (b *businessAPIImpl) timesheetDay(group timesheet.Group, nowMs int64) TimesheetDay {
	items := make([]IntervalView, len(group.Intervals))
	for i, interval := range group.Intervals {
		items[i] = newIntervalView(group, interval, b.opts.Format, nowMs)
	}

	return TimesheetDay{
		ID:         group.ID,
		Date:       group.Date,
		Title:      group.Title,
		Summary:    group.TimeSummaryWithDifference(b.opts.Format, b.opts.DailyGoal, nowMs),
		Registered: group.IsRegistered(),
		Items:      items,
	}
}

func newIntervalView(day timesheet.Group, interval domain.TimeInterval, format domain.IntervalFormat, nowMs int64) IntervalView {
	id, _ := interval.ID()
	view := IntervalView{
		ID:         id,
		ProjectID:  interval.ProjectID(),
		Title:      day.ItemTitle(interval),
		Summary:    day.ItemSummary(interval, format, nowMs),
		Start:      sqlite.TimeFromDB(interval.Start(), day.Date.Location()),
		Active:     interval.IsActive(),
		Registered: interval.IsRegistered(),
	}
	if stop, ok := interval.Stop(); ok {
		stopTime := sqlite.TimeFromDB(stop, day.Date.Location())
		view.Stop = &stopTime
	}
	return view
}
