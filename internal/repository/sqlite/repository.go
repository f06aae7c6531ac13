package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"worker/internal/errors"
	"worker/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the interface for database operations
type Repository interface {
	// Project operations
	CreateProject(ctx context.Context, project *Project) error
	GetProject(ctx context.Context, id int64) (*Project, error)
	ListProjects(ctx context.Context) ([]*Project, error)
	FindProjects(ctx context.Context, criteria *Criteria) ([]*Project, error)
	DeleteProject(ctx context.Context, id int64) error

	// Time interval operations
	CreateTimeInterval(ctx context.Context, interval *TimeInterval) error
	UpdateTimeInterval(ctx context.Context, interval *TimeInterval) error
	GetTimeInterval(ctx context.Context, id int64) (*TimeInterval, error)
	GetActiveTimeInterval(ctx context.Context, projectID int64) (*TimeInterval, error)
	ListTimeIntervals(ctx context.Context, query TimeIntervalQuery) ([]*TimeInterval, error)
	DeleteTimeInterval(ctx context.Context, id int64) error

	// Utility
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

const timeIntervalColumns = "id, project_id, start_ms, stop_ms, registered"

// New creates a new SQLite repository instance and migrates the schema
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	// A single connection keeps in-memory databases and pragmas consistent
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// CreateProject creates a new project. Names are unique regardless of case.
func (r *SQLiteRepository) CreateProject(ctx context.Context, project *Project) error {
	query := `INSERT INTO projects (name, description) VALUES (?, ?)`

	id, err := insert(ctx, r.db, query, project.Name, project.Description)
	if err != nil {
		if IsUniqueViolation(err) {
			return errors.NewConflictError("project", project.Name)
		}
		return err
	}

	project.ID = id
	return nil
}

// GetProject retrieves a project by ID
func (r *SQLiteRepository) GetProject(ctx context.Context, id int64) (*Project, error) {
	query := `SELECT id, name, description FROM projects WHERE id = ?`
	return queryOne(ctx, r.db, entityWithID("project", id), query, ScanProject, id)
}

// ListProjects retrieves all projects ordered by name
func (r *SQLiteRepository) ListProjects(ctx context.Context) ([]*Project, error) {
	return r.FindProjects(ctx, nil)
}

// FindProjects retrieves the projects matching criteria, all projects for nil criteria
func (r *SQLiteRepository) FindProjects(ctx context.Context, criteria *Criteria) ([]*Project, error) {
	selection, args := BuildCriteria(criteria)

	query := `SELECT id, name, description FROM projects`
	if selection != "" {
		query += " WHERE " + selection
	}
	query += " ORDER BY name COLLATE NOCASE ASC"

	return queryAll(ctx, r.db, "projects", query, ScanProjects, args...)
}

// DeleteProject deletes a project and, through the foreign key, its time intervals
func (r *SQLiteRepository) DeleteProject(ctx context.Context, id int64) error {
	query := `DELETE FROM projects WHERE id = ?`
	return execAffecting(ctx, r.db, entityWithID("project", id), query, id)
}

// CreateTimeInterval creates a new time interval
func (r *SQLiteRepository) CreateTimeInterval(ctx context.Context, interval *TimeInterval) error {
	query := `
	INSERT INTO time_intervals (project_id, start_ms, stop_ms, registered)
	VALUES (?, ?, ?, ?)`

	id, err := insert(ctx, r.db, query, interval.ProjectID, interval.StartMs, interval.StopMs, BoolForDB(interval.Registered))
	if err != nil {
		// at most one active interval per project is allowed by the index
		if IsUniqueViolation(err) {
			return errors.NewClockActivityError("the project is already clocked in").
				WithContext("project_id", interval.ProjectID)
		}
		return err
	}

	interval.ID = id
	return nil
}

// UpdateTimeInterval updates an existing time interval
func (r *SQLiteRepository) UpdateTimeInterval(ctx context.Context, interval *TimeInterval) error {
	query := `
	UPDATE time_intervals
	SET project_id = ?, start_ms = ?, stop_ms = ?, registered = ?
	WHERE id = ?`

	return execAffecting(ctx, r.db, entityWithID("time interval", interval.ID), query,
		interval.ProjectID, interval.StartMs, interval.StopMs, BoolForDB(interval.Registered), interval.ID)
}

// GetTimeInterval retrieves a time interval by ID
func (r *SQLiteRepository) GetTimeInterval(ctx context.Context, id int64) (*TimeInterval, error) {
	query := `SELECT ` + timeIntervalColumns + ` FROM time_intervals WHERE id = ?`
	return queryOne(ctx, r.db, entityWithID("time interval", id), query, ScanTimeInterval, id)
}

// GetActiveTimeInterval retrieves the latest interval of a project that has
// not been clocked out
func (r *SQLiteRepository) GetActiveTimeInterval(ctx context.Context, projectID int64) (*TimeInterval, error) {
	query := `
	SELECT ` + timeIntervalColumns + `
	FROM time_intervals
	WHERE project_id = ? AND stop_ms = 0
	ORDER BY start_ms DESC, id DESC
	LIMIT 1`

	active := entity{kind: "active time interval", key: fmt.Sprintf("project %d", projectID)}
	return queryOne(ctx, r.db, active, query, ScanTimeInterval, projectID)
}

// ListTimeIntervals retrieves time intervals, newest first
func (r *SQLiteRepository) ListTimeIntervals(ctx context.Context, opts TimeIntervalQuery) ([]*TimeInterval, error) {
	var conditions []string
	var args []interface{}

	if opts.ProjectID > 0 {
		conditions = append(conditions, "project_id = ?")
		args = append(args, opts.ProjectID)
	}
	if opts.StartFromMs > 0 {
		conditions = append(conditions, "start_ms >= ?")
		args = append(args, opts.StartFromMs)
	}
	if opts.StartBeforeMs > 0 {
		conditions = append(conditions, "start_ms < ?")
		args = append(args, opts.StartBeforeMs)
	}
	if opts.HideRegistered {
		conditions = append(conditions, "registered = 0")
	}

	query := `SELECT ` + timeIntervalColumns + ` FROM time_intervals`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY start_ms DESC, id DESC"

	if opts.Limit > 0 || opts.Offset > 0 {
		limit := opts.Limit
		if limit <= 0 {
			limit = -1
		}
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, opts.Offset)
	}

	return queryAll(ctx, r.db, "time intervals", query, ScanTimeIntervals, args...)
}

// DeleteTimeInterval deletes a time interval by ID
func (r *SQLiteRepository) DeleteTimeInterval(ctx context.Context, id int64) error {
	query := `DELETE FROM time_intervals WHERE id = ?`
	return execAffecting(ctx, r.db, entityWithID("time interval", id), query, id)
}
