package sqlite

// Project is a row of the projects table
type Project struct {
	ID          int64
	Name        string
	Description string
}

// TimeInterval is a row of the time_intervals table.
// StopMs is zero while the interval is active.
type TimeInterval struct {
	ID         int64
	ProjectID  int64
	StartMs    int64
	StopMs     int64
	Registered bool
}

// IsActive reports whether the row has not been clocked out
func (ti TimeInterval) IsActive() bool {
	return ti.StopMs == 0
}

// TimeIntervalQuery filters ListTimeIntervals. Zero values disable a filter.
type TimeIntervalQuery struct {
	ProjectID      int64
	StartFromMs    int64
	StartBeforeMs  int64
	HideRegistered bool
	Offset         int
	Limit          int
}
