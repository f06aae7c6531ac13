package sqlite

import (
	"time"
)

// MillisForDB converts a time into the millisecond column representation
func MillisForDB(t time.Time) int64 {
	return t.UnixMilli()
}

// TimeFromDB converts a millisecond column value into a time in loc
func TimeFromDB(ms int64, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(ms).In(loc)
}

// StopForDB returns the stop_ms column value, where zero marks an active interval
func StopForDB(stop int64, ok bool) int64 {
	if !ok {
		return 0
	}
	return stop
}

// BoolForDB converts a flag to the INTEGER column representation
func BoolForDB(b bool) int {
	if b {
		return 1
	}
	return 0
}
