package domain

import (
	"fmt"
	"strings"
	"time"
)

// Period is the starting point of a project time summary
type Period int

const (
	PeriodDay Period = iota
	PeriodWeek
	PeriodMonth
)

// ParsePeriod resolves "day", "week" or "month"
func ParsePeriod(name string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "day":
		return PeriodDay, nil
	case "week":
		return PeriodWeek, nil
	case "month":
		return PeriodMonth, nil
	default:
		return PeriodDay, fmt.Errorf("unknown period %q", name)
	}
}

func (p Period) String() string {
	switch p {
	case PeriodWeek:
		return "week"
	case PeriodMonth:
		return "month"
	default:
		return "day"
	}
}

// Since returns midnight of the first day of the period containing t, in
// the location of t. Weeks start on Monday.
func (p Period) Since(t time.Time) time.Time {
	year, month, day := t.Date()
	switch p {
	case PeriodWeek:
		// days back to Monday, with Sunday as the last day of the week
		day -= (int(t.Weekday()) + 6) % 7
	case PeriodMonth:
		day = 1
	}
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
