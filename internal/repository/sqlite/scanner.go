package sqlite

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanTimeInterval scans a single time interval from a database row
func ScanTimeInterval(scanner Scanner) (*TimeInterval, error) {
	interval := &TimeInterval{}
	var registered int64

	err := scanner.Scan(
		&interval.ID,
		&interval.ProjectID,
		&interval.StartMs,
		&interval.StopMs,
		&registered,
	)
	if err != nil {
		return nil, err
	}

	interval.Registered = registered != 0
	return interval, nil
}

// ScanTimeIntervals scans multiple time intervals from database rows
func ScanTimeIntervals(rows Rows) ([]*TimeInterval, error) {
	intervals := []*TimeInterval{}
	for rows.Next() {
		interval, err := ScanTimeInterval(rows)
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, interval)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return intervals, nil
}

// ScanProject scans a single project from a database row
func ScanProject(scanner Scanner) (*Project, error) {
	project := &Project{}
	err := scanner.Scan(&project.ID, &project.Name, &project.Description)
	if err != nil {
		return nil, err
	}
	return project, nil
}

// ScanProjects scans multiple projects from database rows
func ScanProjects(rows Rows) ([]*Project, error) {
	projects := []*Project{}
	for rows.Next() {
		project, err := ScanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return projects, nil
}
