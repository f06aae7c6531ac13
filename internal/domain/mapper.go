package domain

import (
	"fmt"

	"worker/internal/repository/sqlite"
)

// ProjectMapper handles conversion between domain and database Project models.
type ProjectMapper struct{}

// NewProjectMapper creates a new ProjectMapper instance.
func NewProjectMapper() *ProjectMapper {
	return &ProjectMapper{}
}

// ToDatabase converts a domain Project to a database Project.
func (m *ProjectMapper) ToDatabase(project Project) sqlite.Project {
	return sqlite.Project{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
	}
}

// FromDatabase converts a database Project to a domain Project.
func (m *ProjectMapper) FromDatabase(row sqlite.Project) Project {
	return Project{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
	}
}

// FromDatabaseSlice converts a slice of database Projects to domain Projects.
func (m *ProjectMapper) FromDatabaseSlice(rows []*sqlite.Project) []Project {
	projects := make([]Project, len(rows))
	for i, row := range rows {
		projects[i] = m.FromDatabase(*row)
	}
	return projects
}

// TimeIntervalMapper handles conversion between domain and database
// TimeInterval models. Rows are rebuilt through TimeIntervalBuilder, so a
// row breaking an interval invariant surfaces as a domain error.
type TimeIntervalMapper struct{}

// NewTimeIntervalMapper creates a new TimeIntervalMapper instance.
func NewTimeIntervalMapper() *TimeIntervalMapper {
	return &TimeIntervalMapper{}
}

// ToDatabase converts a domain TimeInterval to a database TimeInterval.
// A missing id maps to zero, letting the database assign one.
func (m *TimeIntervalMapper) ToDatabase(interval TimeInterval) sqlite.TimeInterval {
	id, _ := interval.ID()
	stop, ok := interval.Stop()

	return sqlite.TimeInterval{
		ID:         id,
		ProjectID:  interval.ProjectID(),
		StartMs:    interval.Start(),
		StopMs:     sqlite.StopForDB(stop, ok),
		Registered: interval.IsRegistered(),
	}
}

// FromDatabase converts a database TimeInterval to a domain TimeInterval.
func (m *TimeIntervalMapper) FromDatabase(row sqlite.TimeInterval) (TimeInterval, error) {
	builder := NewTimeIntervalBuilder(row.ProjectID).
		ID(row.ID).
		Start(row.StartMs)

	if !row.IsActive() {
		builder.Stop(row.StopMs)
	}
	if row.Registered {
		builder.Register()
	}

	return builder.Build()
}

// FromDatabaseSlice converts rows until the first one that fails to build.
func (m *TimeIntervalMapper) FromDatabaseSlice(rows []*sqlite.TimeInterval) ([]TimeInterval, error) {
	intervals := make([]TimeInterval, 0, len(rows))
	for _, row := range rows {
		interval, err := m.FromDatabase(*row)
		if err != nil {
			return nil, fmt.Errorf("time interval %d: %w", row.ID, err)
		}
		intervals = append(intervals, interval)
	}
	return intervals, nil
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Project      *ProjectMapper
	TimeInterval *TimeIntervalMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Project:      NewProjectMapper(),
		TimeInterval: NewTimeIntervalMapper(),
	}
}
