package services

import (
	"context"
	"time"

	"worker/internal/domain"
	"worker/internal/errors"
	"worker/internal/logging"
	"worker/internal/repository/sqlite"
	"worker/internal/validation"
)

// timeServiceImpl implements the TimeService interface
type timeServiceImpl struct {
	repo      sqlite.Repository
	mapper    *domain.Mapper
	validator *validation.ProjectValidator
	log       *logging.Logger
}

// NewTimeService creates a new TimeService instance
func NewTimeService(repo sqlite.Repository, validator *validation.ProjectValidator) TimeService {
	if validator == nil {
		validator = validation.NewProjectValidator()
	}
	return &timeServiceImpl{
		repo:      repo,
		mapper:    domain.NewMapper(),
		validator: validator,
		log:       logging.Named("time"),
	}
}

// activeInterval returns the active interval of a project, ok is false when
// the project is clocked out
func (t *timeServiceImpl) activeInterval(ctx context.Context, projectID int64) (domain.TimeInterval, bool, error) {
	row, err := t.repo.GetActiveTimeInterval(ctx, projectID)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return domain.TimeInterval{}, false, nil
		}
		return domain.TimeInterval{}, false, err
	}

	interval, err := t.mapper.TimeInterval.FromDatabase(*row)
	if err != nil {
		return domain.TimeInterval{}, false, err
	}
	return interval, true, nil
}

func (t *timeServiceImpl) getInterval(ctx context.Context, id int64) (domain.TimeInterval, error) {
	if err := t.validator.ValidateID("interval_id", id); err != nil {
		return domain.TimeInterval{}, err
	}

	row, err := t.repo.GetTimeInterval(ctx, id)
	if err != nil {
		return domain.TimeInterval{}, err
	}
	return t.mapper.TimeInterval.FromDatabase(*row)
}

func (t *timeServiceImpl) update(ctx context.Context, interval domain.TimeInterval) error {
	row := t.mapper.TimeInterval.ToDatabase(interval)
	return t.repo.UpdateTimeInterval(ctx, &row)
}

// ClockIn starts a new interval for a project at the given instant
func (t *timeServiceImpl) ClockIn(ctx context.Context, projectID int64, at time.Time) (domain.TimeInterval, error) {
	if err := t.validator.ValidateID("project_id", projectID); err != nil {
		return domain.TimeInterval{}, err
	}
	if _, err := t.repo.GetProject(ctx, projectID); err != nil {
		return domain.TimeInterval{}, err
	}

	if _, active, err := t.activeInterval(ctx, projectID); err != nil {
		return domain.TimeInterval{}, err
	} else if active {
		return domain.TimeInterval{}, errors.NewClockActivityError("the project is already clocked in").
			WithContext("project_id", projectID)
	}

	interval, err := domain.NewTimeIntervalBuilder(projectID).
		Start(sqlite.MillisForDB(at)).
		Build()
	if err != nil {
		return domain.TimeInterval{}, err
	}

	row := t.mapper.TimeInterval.ToDatabase(interval)
	if err := t.repo.CreateTimeInterval(ctx, &row); err != nil {
		return domain.TimeInterval{}, err
	}

	t.log.Debug().Int64("project_id", projectID).Int64("interval_id", row.ID).Time("at", at).Msg("clocked in")
	return interval.WithID(row.ID)
}

// ClockOut stops the active interval of a project at the given instant
func (t *timeServiceImpl) ClockOut(ctx context.Context, projectID int64, at time.Time) (domain.TimeInterval, error) {
	if err := t.validator.ValidateID("project_id", projectID); err != nil {
		return domain.TimeInterval{}, err
	}

	interval, active, err := t.activeInterval(ctx, projectID)
	if err != nil {
		return domain.TimeInterval{}, err
	}
	if !active {
		return domain.TimeInterval{}, errors.NewClockActivityError("the project is not clocked in").
			WithContext("project_id", projectID)
	}

	stopped, err := interval.ClockOutAt(sqlite.MillisForDB(at))
	if err != nil {
		return domain.TimeInterval{}, err
	}

	if err := t.update(ctx, stopped); err != nil {
		return domain.TimeInterval{}, err
	}

	id, _ := stopped.ID()
	t.log.Debug().Int64("project_id", projectID).Int64("interval_id", id).Time("at", at).Msg("clocked out")
	return stopped, nil
}

// GetActiveTimeInterval returns the active interval of a project, ok is
// false when the project is clocked out
func (t *timeServiceImpl) GetActiveTimeInterval(ctx context.Context, projectID int64) (domain.TimeInterval, bool, error) {
	if err := t.validator.ValidateID("project_id", projectID); err != nil {
		return domain.TimeInterval{}, false, err
	}
	return t.activeInterval(ctx, projectID)
}

// GetTimeInterval retrieves a time interval by its ID
func (t *timeServiceImpl) GetTimeInterval(ctx context.Context, id int64) (domain.TimeInterval, error) {
	return t.getInterval(ctx, id)
}

// MarkRegistered flags a stopped interval as registered
func (t *timeServiceImpl) MarkRegistered(ctx context.Context, id int64) (domain.TimeInterval, error) {
	interval, err := t.getInterval(ctx, id)
	if err != nil {
		return domain.TimeInterval{}, err
	}
	if interval.IsRegistered() {
		return interval, nil
	}

	registered, err := interval.MarkRegistered()
	if err != nil {
		return domain.TimeInterval{}, err
	}
	if err := t.update(ctx, registered); err != nil {
		return domain.TimeInterval{}, err
	}

	t.log.Debug().Int64("interval_id", id).Msg("interval registered")
	return registered, nil
}

// UnmarkRegistered clears the registered flag of an interval
func (t *timeServiceImpl) UnmarkRegistered(ctx context.Context, id int64) (domain.TimeInterval, error) {
	interval, err := t.getInterval(ctx, id)
	if err != nil {
		return domain.TimeInterval{}, err
	}
	if !interval.IsRegistered() {
		return interval, nil
	}

	unregistered, err := interval.UnmarkRegistered()
	if err != nil {
		return domain.TimeInterval{}, err
	}
	if err := t.update(ctx, unregistered); err != nil {
		return domain.TimeInterval{}, err
	}

	t.log.Debug().Int64("interval_id", id).Msg("interval unregistered")
	return unregistered, nil
}

// RemoveTimeInterval deletes a time interval
func (t *timeServiceImpl) RemoveTimeInterval(ctx context.Context, id int64) error {
	if err := t.validator.ValidateID("interval_id", id); err != nil {
		return err
	}

	if err := t.repo.DeleteTimeInterval(ctx, id); err != nil {
		return err
	}

	t.log.Debug().Int64("interval_id", id).Msg("interval removed")
	return nil
}

// TimeSince sums the intervals started since the beginning of period,
// measuring an active interval up to now
func (t *timeServiceImpl) TimeSince(ctx context.Context, projectID int64, period domain.Period, now time.Time) (domain.HoursMinutes, error) {
	if err := t.validator.ValidateID("project_id", projectID); err != nil {
		return domain.HoursMinutes{}, err
	}

	rows, err := t.repo.ListTimeIntervals(ctx, sqlite.TimeIntervalQuery{
		ProjectID:   projectID,
		StartFromMs: sqlite.MillisForDB(period.Since(now)),
	})
	if err != nil {
		return domain.HoursMinutes{}, err
	}

	intervals, err := t.mapper.TimeInterval.FromDatabaseSlice(rows)
	if err != nil {
		return domain.HoursMinutes{}, err
	}

	nowMs := now.UnixMilli()
	var total int64
	for _, interval := range intervals {
		total += interval.Interval(nowMs)
	}
	return domain.CalculateHoursMinutes(total), nil
}
