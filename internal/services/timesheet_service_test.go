package services

import (
	"context"
	"testing"
	"time"

	"worker/internal/config"
	"worker/internal/domain"
	"worker/internal/errors"
	"worker/internal/timesheet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dates(days []timesheet.Group) []time.Time {
	result := make([]time.Time, len(days))
	for i, day := range days {
		result[i] = day.Date
	}
	return result
}

func seedTimesheet(t *testing.T) (*ServiceContainer, int64) {
	t.Helper()

	services, repo := setupServices(t)
	projectID := seedProject(t, repo, "Worker")
	otherID := seedProject(t, repo, "Other")

	seedInterval(t, repo, projectID, utc(time.February, 29, 8, 0), utc(time.February, 29, 12, 0), true)
	seedInterval(t, repo, projectID, utc(time.March, 1, 8, 0), utc(time.March, 1, 12, 0), true)
	seedInterval(t, repo, projectID, utc(time.March, 1, 13, 0), utc(time.March, 1, 17, 0), false)
	seedInterval(t, repo, projectID, utc(time.March, 2, 13, 0), time.Time{}, false)
	seedInterval(t, repo, otherID, utc(time.February, 28, 8, 0), utc(time.February, 28, 9, 0), false)

	return services, projectID
}

func TestGetTimesheet(t *testing.T) {
	services, projectID := seedTimesheet(t)

	sheet, err := services.TimesheetService.GetTimesheet(context.Background(), projectID, TimesheetQuery{})
	require.NoError(t, err)

	assert.Equal(t, "Worker", sheet.Project.Name)
	assert.Equal(t, now.UnixMilli(), sheet.NowMs)
	assert.False(t, sheet.HasMore)
	assert.Equal(t, []time.Time{
		utc(time.March, 2, 0, 0),
		utc(time.March, 1, 0, 0),
		utc(time.February, 29, 0, 0),
	}, dates(sheet.Days))

	assert.Len(t, sheet.Days[1].Intervals, 2)
	assert.False(t, sheet.Days[1].IsRegistered())
	assert.True(t, sheet.Days[2].IsRegistered())

	// the active interval is measured up to the clock
	assert.Equal(t, "1.50", sheet.Days[0].TimeSummary(domain.FractionIntervalFormat{}, sheet.NowMs))
}

func TestGetTimesheet_Pagination(t *testing.T) {
	services, projectID := seedTimesheet(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		query    TimesheetQuery
		expected []time.Time
		hasMore  bool
	}{
		{
			name:     "first page",
			query:    TimesheetQuery{Limit: 2},
			expected: []time.Time{utc(time.March, 2, 0, 0), utc(time.March, 1, 0, 0)},
			hasMore:  true,
		},
		{
			name:     "last page",
			query:    TimesheetQuery{Offset: 2, Limit: 2},
			expected: []time.Time{utc(time.February, 29, 0, 0)},
			hasMore:  false,
		},
		{
			name:     "exact page",
			query:    TimesheetQuery{Offset: 1, Limit: 2},
			expected: []time.Time{utc(time.March, 1, 0, 0), utc(time.February, 29, 0, 0)},
			hasMore:  false,
		},
		{
			name:     "past the end",
			query:    TimesheetQuery{Offset: 5},
			expected: []time.Time{},
			hasMore:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet, err := services.TimesheetService.GetTimesheet(ctx, projectID, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, dates(sheet.Days))
			assert.Equal(t, tt.hasMore, sheet.HasMore)
		})
	}
}

func TestGetTimesheet_HideRegistered(t *testing.T) {
	services, projectID := seedTimesheet(t)

	sheet, err := services.TimesheetService.GetTimesheet(context.Background(), projectID, TimesheetQuery{HideRegistered: true})
	require.NoError(t, err)

	assert.Equal(t, []time.Time{utc(time.March, 2, 0, 0), utc(time.March, 1, 0, 0)}, dates(sheet.Days))
	assert.Len(t, sheet.Days[1].Intervals, 1)
}

func TestGetTimesheet_Errors(t *testing.T) {
	services, projectID := seedTimesheet(t)
	ctx := context.Background()

	_, err := services.TimesheetService.GetTimesheet(ctx, projectID, TimesheetQuery{Offset: -1})
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))

	_, err = services.TimesheetService.GetTimesheet(ctx, projectID, TimesheetQuery{Limit: -1})
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))

	_, err = services.TimesheetService.GetTimesheet(ctx, 99, TimesheetQuery{})
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestGetTimesheet_OldestFirst(t *testing.T) {
	_, repo := setupServices(t)
	projectID := seedProject(t, repo, "Worker")
	seedInterval(t, repo, projectID, utc(time.March, 1, 8, 0), utc(time.March, 1, 9, 0), false)
	seedInterval(t, repo, projectID, utc(time.March, 2, 8, 0), utc(time.March, 2, 9, 0), false)

	cfg := config.NewConfig()
	cfg.Time.Location = "UTC"
	cfg.Display.GroupOrder = "oldest-first"
	grouper, err := NewGrouperFromConfig(cfg)
	require.NoError(t, err)

	service := NewTimesheetService(repo, grouper, fixedClock)
	sheet, err := service.GetTimesheet(context.Background(), projectID, TimesheetQuery{Limit: 1})
	require.NoError(t, err)

	assert.Equal(t, []time.Time{utc(time.March, 1, 0, 0)}, dates(sheet.Days))
	assert.True(t, sheet.HasMore)
}

func TestPaginate(t *testing.T) {
	groups := []timesheet.Group{{ID: 3}, {ID: 2}, {ID: 1}}

	page, more := paginate(groups, 0, 0)
	assert.Len(t, page, 3)
	assert.False(t, more)

	page, more = paginate(groups, 1, 1)
	assert.Equal(t, []timesheet.Group{{ID: 2}}, page)
	assert.True(t, more)

	page, more = paginate(nil, 0, 10)
	assert.NotNil(t, page)
	assert.Empty(t, page)
	assert.False(t, more)
}
