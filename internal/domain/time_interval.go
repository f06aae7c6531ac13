package domain

import (
	"worker/internal/errors"
)

// TimeInterval is one clock in/clock out span for a project.
//
// Values are immutable. Every TimeInterval is produced by
// TimeIntervalBuilder.Build, and transitions such as clocking out or
// registering return a new value built through the same path.
type TimeInterval struct {
	id         int64
	hasID      bool
	projectID  int64
	start      int64
	stop       int64
	hasStop    bool
	registered bool
}

// ID returns the persisted identifier, if any.
func (ti TimeInterval) ID() (int64, bool) {
	return ti.id, ti.hasID
}

func (ti TimeInterval) ProjectID() int64 {
	return ti.projectID
}

// Start returns the clock in instant in milliseconds since the epoch.
func (ti TimeInterval) Start() int64 {
	return ti.start
}

// Stop returns the clock out instant, absent while the interval is active.
func (ti TimeInterval) Stop() (int64, bool) {
	return ti.stop, ti.hasStop
}

func (ti TimeInterval) IsRegistered() bool {
	return ti.registered
}

// IsActive reports whether the interval has not been clocked out.
func (ti TimeInterval) IsActive() bool {
	return !ti.hasStop
}

// Time returns the clocked time in milliseconds, or zero while active.
func (ti TimeInterval) Time() int64 {
	if ti.IsActive() {
		return 0
	}
	return ti.stop - ti.start
}

// Interval returns the elapsed milliseconds, measuring active intervals up
// to nowMs. The result is never negative.
func (ti TimeInterval) Interval(nowMs int64) int64 {
	stop := ti.stop
	if ti.IsActive() {
		stop = nowMs
	}

	if interval := stop - ti.start; interval > 0 {
		return interval
	}
	return 0
}

// CalculatedTime returns the rounded elapsed time up to nowMs.
func (ti TimeInterval) CalculatedTime(nowMs int64) HoursMinutes {
	return CalculateHoursMinutes(ti.Interval(nowMs))
}

// ClockOutAt returns the interval clocked out at stopMs. The registered
// flag is carried over.
func (ti TimeInterval) ClockOutAt(stopMs int64) (TimeInterval, error) {
	builder := ti.toBuilder().Stop(stopMs)
	if ti.registered {
		builder.Register()
	}
	return builder.Build()
}

// MarkRegistered returns the interval marked as registered. Active
// intervals cannot be registered.
func (ti TimeInterval) MarkRegistered() (TimeInterval, error) {
	if ti.registered {
		return ti, nil
	}
	return ti.toBuilder().Register().Build()
}

// UnmarkRegistered returns the interval with the registered flag cleared.
func (ti TimeInterval) UnmarkRegistered() (TimeInterval, error) {
	if !ti.registered {
		return ti, nil
	}
	return ti.toBuilder().Build()
}

// WithID returns the interval with the identifier assigned by storage.
func (ti TimeInterval) WithID(id int64) (TimeInterval, error) {
	builder := ti.toBuilder().ID(id)
	if ti.registered {
		builder.Register()
	}
	return builder.Build()
}

// toBuilder copies everything except the registered flag.
func (ti TimeInterval) toBuilder() *TimeIntervalBuilder {
	builder := NewTimeIntervalBuilder(ti.projectID).Start(ti.start)
	if ti.hasID {
		builder.ID(ti.id)
	}
	if ti.hasStop {
		builder.Stop(ti.stop)
	}
	return builder
}

// TimeIntervalBuilder collects the fields of a TimeInterval and validates
// them in Build.
type TimeIntervalBuilder struct {
	projectID  int64
	id         int64
	hasID      bool
	start      int64
	stop       int64
	hasStop    bool
	registered bool
}

func NewTimeIntervalBuilder(projectID int64) *TimeIntervalBuilder {
	return &TimeIntervalBuilder{projectID: projectID}
}

func (b *TimeIntervalBuilder) ID(id int64) *TimeIntervalBuilder {
	b.id = id
	b.hasID = true
	return b
}

func (b *TimeIntervalBuilder) Start(ms int64) *TimeIntervalBuilder {
	b.start = ms
	return b
}

func (b *TimeIntervalBuilder) Stop(ms int64) *TimeIntervalBuilder {
	b.stop = ms
	b.hasStop = true
	return b
}

// Register requests the interval to be marked as registered.
func (b *TimeIntervalBuilder) Register() *TimeIntervalBuilder {
	b.registered = true
	return b
}

// Build validates the collected fields and returns the interval.
//
// It fails with an invalid input error for a non-positive start, with
// errors.ErrClockOutBeforeClockIn when the stop precedes the start and with
// errors.ErrClockActivity when an active interval is registered.
func (b *TimeIntervalBuilder) Build() (TimeInterval, error) {
	if b.start <= 0 {
		return TimeInterval{}, errors.NewInvalidInputError("start", b.start, "must be a positive timestamp")
	}

	if b.hasStop && b.stop < b.start {
		return TimeInterval{}, errors.NewClockOutBeforeClockInError(b.start, b.stop)
	}

	if b.registered && !b.hasStop {
		return TimeInterval{}, errors.NewClockActivityError("an active time interval cannot be registered")
	}

	return TimeInterval{
		id:         b.id,
		hasID:      b.hasID,
		projectID:  b.projectID,
		start:      b.start,
		stop:       b.stop,
		hasStop:    b.hasStop,
		registered: b.registered,
	}, nil
}
