package cli

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"worker/internal/api"
	"worker/internal/config"
	"worker/internal/domain"
	"worker/internal/errors"
	"worker/internal/services"
)

// mockBusinessAPI implements the BusinessAPI interface for testing. Every
// clock in lasts exactly one hour from 08:00.
type mockBusinessAPI struct {
	projects       map[string]*domain.Project
	intervals      map[int64]*api.IntervalView
	active         map[string]int64
	nextProjectID  int64
	nextIntervalID int64

	// err, when set, is returned by every operation
	err error
	// hasMore is reported by GetTimesheet
	hasMore bool
}

// newMockBusinessAPI creates a new mock BusinessAPI instance
func newMockBusinessAPI() *mockBusinessAPI {
	return &mockBusinessAPI{
		projects:       make(map[string]*domain.Project),
		intervals:      make(map[int64]*api.IntervalView),
		active:         make(map[string]int64),
		nextProjectID:  1,
		nextIntervalID: 1,
	}
}

// setupTestApp returns an app printing into the returned buffer
func setupTestApp(t *testing.T) (*App, *mockBusinessAPI, *bytes.Buffer) {
	t.Helper()

	mock := newMockBusinessAPI()
	out := &bytes.Buffer{}
	return NewApp(mock, config.NewConfig(), out), mock, out
}

var mockDay = time.Date(2016, time.March, 2, 0, 0, 0, 0, time.UTC)

func (m *mockBusinessAPI) project(name string) (*domain.Project, error) {
	project, ok := m.projects[strings.ToLower(name)]
	if !ok {
		return nil, errors.NewNotFoundError("project", name)
	}
	return project, nil
}

func (m *mockBusinessAPI) CreateProject(ctx context.Context, name, description string) (*domain.Project, error) {
	if m.err != nil {
		return nil, m.err
	}
	if strings.TrimSpace(name) == "" {
		return nil, errors.NewValidationError("name is a required field", nil)
	}
	if existing, ok := m.projects[strings.ToLower(name)]; ok {
		return nil, errors.NewConflictError("project", existing.Name)
	}

	project := &domain.Project{ID: m.nextProjectID, Name: name, Description: description}
	m.projects[strings.ToLower(name)] = project
	m.nextProjectID++
	return project, nil
}

func (m *mockBusinessAPI) ListProjects(ctx context.Context) ([]domain.Project, error) {
	if m.err != nil {
		return nil, m.err
	}

	projects := make([]domain.Project, 0, len(m.projects))
	for _, project := range m.projects {
		projects = append(projects, *project)
	}
	sort.Slice(projects, func(i, j int) bool {
		return strings.ToLower(projects[i].Name) < strings.ToLower(projects[j].Name)
	})
	return projects, nil
}

func (m *mockBusinessAPI) RemoveProject(ctx context.Context, name string) error {
	if m.err != nil {
		return m.err
	}
	project, err := m.project(name)
	if err != nil {
		return err
	}

	for id, interval := range m.intervals {
		if interval.ProjectID == project.ID {
			delete(m.intervals, id)
		}
	}
	delete(m.active, strings.ToLower(name))
	delete(m.projects, strings.ToLower(name))
	return nil
}

func (m *mockBusinessAPI) ClockIn(ctx context.Context, projectName, at string) (*api.ProjectStatus, error) {
	if m.err != nil {
		return nil, m.err
	}
	project, err := m.project(projectName)
	if err != nil {
		return nil, err
	}
	if _, ok := m.active[strings.ToLower(projectName)]; ok {
		return nil, errors.NewClockActivityError("the project is already clocked in")
	}

	start := mockDay.Add(8 * time.Hour)
	interval := &api.IntervalView{
		ID:        m.nextIntervalID,
		ProjectID: project.ID,
		Title:     "08:00",
		Summary:   "1.00",
		Start:     start,
		Active:    true,
	}
	m.intervals[interval.ID] = interval
	m.active[strings.ToLower(projectName)] = interval.ID
	m.nextIntervalID++

	return &api.ProjectStatus{
		Project:    *project,
		Active:     true,
		Since:      "Since 08:00 (1h 0m)",
		Period:     "month",
		PeriodTime: "1.00",
	}, nil
}

func (m *mockBusinessAPI) ClockOut(ctx context.Context, projectName, at string) (*api.IntervalView, error) {
	if m.err != nil {
		return nil, m.err
	}
	if _, err := m.project(projectName); err != nil {
		return nil, err
	}
	id, ok := m.active[strings.ToLower(projectName)]
	if !ok {
		return nil, errors.NewClockActivityError("the project is not clocked in")
	}

	interval := m.intervals[id]
	stop := interval.Start.Add(time.Hour)
	interval.Stop = &stop
	interval.Active = false
	interval.Title = "08:00 - 09:00"
	delete(m.active, strings.ToLower(projectName))
	return interval, nil
}

func (m *mockBusinessAPI) status(project domain.Project) *api.ProjectStatus {
	status := &api.ProjectStatus{Project: project, Period: "month", PeriodTime: "0.00"}
	if _, ok := m.active[strings.ToLower(project.Name)]; ok {
		status.Active = true
		status.Since = "Since 08:00 (1h 0m)"
		status.PeriodTime = "1.00"
	}
	return status
}

func (m *mockBusinessAPI) GetStatus(ctx context.Context) ([]*api.ProjectStatus, error) {
	projects, err := m.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]*api.ProjectStatus, len(projects))
	for i, project := range projects {
		statuses[i] = m.status(project)
	}
	return statuses, nil
}

func (m *mockBusinessAPI) GetProjectStatus(ctx context.Context, projectName string) (*api.ProjectStatus, error) {
	if m.err != nil {
		return nil, m.err
	}
	project, err := m.project(projectName)
	if err != nil {
		return nil, err
	}
	return m.status(*project), nil
}

func (m *mockBusinessAPI) interval(id int64) (*api.IntervalView, error) {
	if m.err != nil {
		return nil, m.err
	}
	interval, ok := m.intervals[id]
	if !ok {
		return nil, errors.NewNotFoundError("time interval", fmt.Sprintf("%d", id))
	}
	return interval, nil
}

func (m *mockBusinessAPI) RegisterInterval(ctx context.Context, id int64) (*api.IntervalView, error) {
	interval, err := m.interval(id)
	if err != nil {
		return nil, err
	}
	if interval.Active {
		return nil, errors.NewClockActivityError("an active time interval cannot be registered")
	}
	interval.Registered = true
	return interval, nil
}

func (m *mockBusinessAPI) UnregisterInterval(ctx context.Context, id int64) (*api.IntervalView, error) {
	interval, err := m.interval(id)
	if err != nil {
		return nil, err
	}
	interval.Registered = false
	return interval, nil
}

func (m *mockBusinessAPI) RemoveInterval(ctx context.Context, id int64) error {
	if _, err := m.interval(id); err != nil {
		return err
	}
	delete(m.intervals, id)
	return nil
}

// GetTimesheet puts every interval of the project on the same day
func (m *mockBusinessAPI) GetTimesheet(ctx context.Context, projectName string, query services.TimesheetQuery) (*api.TimesheetPage, error) {
	if m.err != nil {
		return nil, m.err
	}
	project, err := m.project(projectName)
	if err != nil {
		return nil, err
	}

	var items []api.IntervalView
	for _, interval := range m.intervals {
		if interval.ProjectID != project.ID || (query.HideRegistered && interval.Registered) {
			continue
		}
		items = append(items, *interval)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })

	page := &api.TimesheetPage{Project: *project, Days: []api.TimesheetDay{}}
	if len(items) == 0 || query.Offset > 0 {
		return page, nil
	}

	registered := true
	for _, item := range items {
		registered = registered && item.Registered
	}
	page.Days = append(page.Days, api.TimesheetDay{
		ID:         16862,
		Date:       mockDay,
		Title:      "Wed (Mar 2)",
		Summary:    fmt.Sprintf("%d.00 (-%d.00)", len(items), 8-len(items)),
		Registered: registered,
		Items:      items,
	})
	page.HasMore = m.hasMore
	return page, nil
}
