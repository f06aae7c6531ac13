package timesheet

import (
	"time"
	"unicode/utf8"

	"worker/internal/domain"
)

const clockFormat = "15:04"

// Group is one timesheet row: the intervals started on the same calendar day.
type Group struct {
	// ID is the number of whole days between the epoch and Date.
	ID int64
	// Date is midnight of the day in the grouping location.
	Date time.Time
	// Title reads like "Sun (Feb 28)".
	Title     string
	Intervals []domain.TimeInterval
}

// IsRegistered reports whether every interval of the day is registered.
func (g Group) IsRegistered() bool {
	for _, interval := range g.Intervals {
		if !interval.IsRegistered() {
			return false
		}
	}
	return true
}

// Accumulated sums the rounded time of the intervals, measuring active
// intervals up to nowMs.
func (g Group) Accumulated(nowMs int64) domain.HoursMinutes {
	times := make([]domain.HoursMinutes, len(g.Intervals))
	for i, interval := range g.Intervals {
		times[i] = interval.CalculatedTime(nowMs)
	}
	return domain.Accumulated(times)
}

func (g Group) TimeSummary(format domain.IntervalFormat, nowMs int64) string {
	return format.Format(g.Accumulated(nowMs))
}

// TimeSummaryWithDifference renders the accumulated time followed by the
// difference against goal, e.g. "9:07 (+1:07)" for an eight hour goal.
func (g Group) TimeSummaryWithDifference(format domain.IntervalFormat, goal domain.HoursMinutes, nowMs int64) string {
	accumulated := g.Accumulated(nowMs)
	return format.Format(accumulated) + domain.FormatDifference(format, accumulated.Minus(goal))
}

func (g Group) FirstLetterFromTitle() string {
	r, size := utf8.DecodeRuneInString(g.Title)
	if size == 0 {
		return ""
	}
	return string(r)
}

// ItemTitle renders "08:00 - 12:30" for an interval, or only the clock in
// time while it is active. Times use the location of the group.
func (g Group) ItemTitle(interval domain.TimeInterval) string {
	loc := g.Date.Location()

	title := time.UnixMilli(interval.Start()).In(loc).Format(clockFormat)
	if stop, ok := interval.Stop(); ok {
		title += " - " + time.UnixMilli(stop).In(loc).Format(clockFormat)
	}
	return title
}

// ItemSummary renders the rounded time of a single interval.
func (g Group) ItemSummary(interval domain.TimeInterval, format domain.IntervalFormat, nowMs int64) string {
	return format.Format(interval.CalculatedTime(nowMs))
}
