package services

import (
	"context"
	"time"

	"worker/internal/domain"
	"worker/internal/errors"
	"worker/internal/logging"
	"worker/internal/repository/sqlite"
	"worker/internal/timesheet"
	"worker/internal/validation"
)

// timesheetServiceImpl implements the TimesheetService interface
type timesheetServiceImpl struct {
	repo      sqlite.Repository
	mapper    *domain.Mapper
	validator *validation.ProjectValidator
	grouper   *timesheet.Grouper
	clock     Clock
	log       *logging.Logger
}

// NewTimesheetService creates a new TimesheetService instance. A nil clock
// uses time.Now.
func NewTimesheetService(repo sqlite.Repository, grouper *timesheet.Grouper, clock Clock) TimesheetService {
	if grouper == nil {
		grouper = timesheet.NewGrouper()
	}
	if clock == nil {
		clock = time.Now
	}
	return &timesheetServiceImpl{
		repo:      repo,
		mapper:    domain.NewMapper(),
		validator: validation.NewProjectValidator(),
		grouper:   grouper,
		clock:     clock,
		log:       logging.Named("timesheet"),
	}
}

// GetTimesheet groups the intervals of a project by day and returns the
// requested page of days
func (s *timesheetServiceImpl) GetTimesheet(ctx context.Context, projectID int64, query TimesheetQuery) (*Timesheet, error) {
	if err := s.validator.ValidateID("project_id", projectID); err != nil {
		return nil, err
	}
	if query.Offset < 0 {
		return nil, errors.NewInvalidInputError("offset", query.Offset, "must not be negative")
	}
	if query.Limit < 0 {
		return nil, errors.NewInvalidInputError("limit", query.Limit, "must not be negative")
	}

	projectRow, err := s.repo.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ListTimeIntervals(ctx, sqlite.TimeIntervalQuery{
		ProjectID:      projectID,
		HideRegistered: query.HideRegistered,
	})
	if err != nil {
		return nil, err
	}

	intervals, err := s.mapper.TimeInterval.FromDatabaseSlice(rows)
	if err != nil {
		return nil, err
	}

	days, hasMore := paginate(s.grouper.Group(intervals), query.Offset, query.Limit)

	s.log.Debug().
		Int64("project_id", projectID).
		Int("intervals", len(intervals)).
		Int("days", len(days)).
		Msg("timesheet built")

	return &Timesheet{
		Project: s.mapper.Project.FromDatabase(*projectRow),
		Days:    days,
		NowMs:   s.clock().UnixMilli(),
		HasMore: hasMore,
	}, nil
}

func paginate(groups []timesheet.Group, offset, limit int) ([]timesheet.Group, bool) {
	if offset >= len(groups) {
		return []timesheet.Group{}, false
	}
	groups = groups[offset:]

	if limit == 0 || limit >= len(groups) {
		return groups, false
	}
	return groups[:limit], true
}
