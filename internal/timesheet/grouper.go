// Package timesheet groups time intervals into per-day timesheet rows.
package timesheet

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"worker/internal/domain"
	"worker/internal/locale"
)

const secondsPerDay = 86400

// Order is the direction in which days, and intervals within a day, are listed
type Order int

const (
	// NewestFirst lists the most recent day and interval first
	NewestFirst Order = iota
	// OldestFirst lists the earliest day and interval first
	OldestFirst
)

// ParseOrder resolves a configured order name
func ParseOrder(name string) (Order, error) {
	switch name {
	case "", "newest-first":
		return NewestFirst, nil
	case "oldest-first":
		return OldestFirst, nil
	default:
		return NewestFirst, fmt.Errorf("unknown group order %q", name)
	}
}

func (o Order) String() string {
	if o == OldestFirst {
		return "oldest-first"
	}
	return "newest-first"
}

// Option configures a Grouper
type Option func(*Grouper)

// WithLocation sets the location whose calendar days bucket the intervals
func WithLocation(loc *time.Location) Option {
	return func(g *Grouper) {
		if loc != nil {
			g.location = loc
		}
	}
}

// WithTranslator sets the translator for weekday and month names in titles
func WithTranslator(translator locale.Translator) Option {
	return func(g *Grouper) {
		if translator != nil {
			g.translator = translator
		}
	}
}

// WithOrder sets the listing direction
func WithOrder(order Order) Option {
	return func(g *Grouper) {
		g.order = order
	}
}

// Grouper buckets time intervals by the calendar day of their start.
// It holds no state between calls.
type Grouper struct {
	location   *time.Location
	translator locale.Translator
	order      Order
}

// NewGrouper creates a Grouper for the local time zone with English titles,
// listing the newest day first
func NewGrouper(opts ...Option) *Grouper {
	g := &Grouper{
		location:   time.Local,
		translator: locale.Default(),
		order:      NewestFirst,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Group partitions intervals into days. Every interval ends up in exactly
// one group, and the output only depends on the set of intervals, not on
// their order in the input.
func (g *Grouper) Group(intervals []domain.TimeInterval) []Group {
	byDay := make(map[int64]*Group)
	for _, interval := range intervals {
		date := g.startOfDay(interval.Start())
		id := daysSinceEpoch(date)

		group, ok := byDay[id]
		if !ok {
			group = &Group{
				ID:    id,
				Date:  date,
				Title: g.title(date),
			}
			byDay[id] = group
		}
		group.Intervals = append(group.Intervals, interval)
	}

	groups := make([]Group, 0, len(byDay))
	for _, group := range byDay {
		slices.SortFunc(group.Intervals, g.compareIntervals)
		groups = append(groups, *group)
	}

	slices.SortFunc(groups, func(a, b Group) int {
		return g.directed(cmp.Compare(a.ID, b.ID))
	})

	return groups
}

func (g *Grouper) startOfDay(ms int64) time.Time {
	t := time.UnixMilli(ms).In(g.location)
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, g.location)
}

// daysSinceEpoch counts whole days between 1970-01-01 and the calendar date,
// independent of the time zone offset of the date. Dividing the instant of
// local midnight instead would give one day less east of UTC.
func daysSinceEpoch(date time.Time) int64 {
	year, month, day := date.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay
}

func (g *Grouper) title(date time.Time) string {
	return fmt.Sprintf("%s (%s %d)",
		g.translator.WeekdayAbbreviated(date.Weekday()),
		g.translator.MonthAbbreviated(date.Month()),
		date.Day(),
	)
}

func (g *Grouper) directed(c int) int {
	if g.order == NewestFirst {
		return -c
	}
	return c
}

// compareIntervals orders by start, then stop with active intervals counted
// as the latest, then by id, project and registered flag so that equal
// starts still give a total order.
func (g *Grouper) compareIntervals(a, b domain.TimeInterval) int {
	return g.directed(chronological(a, b))
}

func chronological(a, b domain.TimeInterval) int {
	if c := cmp.Compare(a.Start(), b.Start()); c != 0 {
		return c
	}

	aStop, aStopped := a.Stop()
	bStop, bStopped := b.Stop()
	switch {
	case aStopped && !bStopped:
		return -1
	case !aStopped && bStopped:
		return 1
	}
	if c := cmp.Compare(aStop, bStop); c != 0 {
		return c
	}

	aID, aHasID := a.ID()
	bID, bHasID := b.ID()
	if c := compareBool(aHasID, bHasID); c != 0 {
		return c
	}
	if c := cmp.Compare(aID, bID); c != 0 {
		return c
	}

	if c := cmp.Compare(a.ProjectID(), b.ProjectID()); c != 0 {
		return c
	}
	return compareBool(a.IsRegistered(), b.IsRegistered())
}

// compareBool orders false before true
func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
