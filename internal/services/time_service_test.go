package services

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"worker/internal/domain"
	"worker/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockIn(t *testing.T) {
	services, repo := setupServices(t)
	ctx := context.Background()
	projectID := seedProject(t, repo, "Worker")

	interval, err := services.TimeService.ClockIn(ctx, projectID, utc(time.March, 2, 8, 0))
	require.NoError(t, err)

	id, ok := interval.ID()
	assert.True(t, ok)
	assert.Greater(t, id, int64(0))
	assert.True(t, interval.IsActive())
	assert.Equal(t, utc(time.March, 2, 8, 0).UnixMilli(), interval.Start())

	active, ok, err := services.TimeService.GetActiveTimeInterval(ctx, projectID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, interval, active)
}

func TestClockIn_AlreadyClockedIn(t *testing.T) {
	services, repo := setupServices(t)
	ctx := context.Background()
	projectID := seedProject(t, repo, "Worker")

	_, err := services.TimeService.ClockIn(ctx, projectID, utc(time.March, 2, 8, 0))
	require.NoError(t, err)

	_, err = services.TimeService.ClockIn(ctx, projectID, utc(time.March, 2, 9, 0))
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrClockActivity))
	assert.Equal(t, "the project is already clocked in", errors.GetUserMessage(err))
}

func TestClockIn_UnknownProject(t *testing.T) {
	services, _ := setupServices(t)

	_, err := services.TimeService.ClockIn(context.Background(), 7, now)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestClockOut(t *testing.T) {
	services, repo := setupServices(t)
	ctx := context.Background()
	projectID := seedProject(t, repo, "Worker")

	_, err := services.TimeService.ClockIn(ctx, projectID, utc(time.March, 2, 8, 0))
	require.NoError(t, err)

	interval, err := services.TimeService.ClockOut(ctx, projectID, utc(time.March, 2, 12, 30))
	require.NoError(t, err)
	assert.False(t, interval.IsActive())
	assert.Equal(t, int64(4*time.Hour/time.Millisecond+30*time.Minute/time.Millisecond), interval.Time())

	_, ok, err := services.TimeService.GetActiveTimeInterval(ctx, projectID)
	require.NoError(t, err)
	assert.False(t, ok)

	id, _ := interval.ID()
	stored, err := services.TimeService.GetTimeInterval(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, interval, stored)
}

func TestClockOut_NotClockedIn(t *testing.T) {
	services, repo := setupServices(t)
	projectID := seedProject(t, repo, "Worker")

	_, err := services.TimeService.ClockOut(context.Background(), projectID, now)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrClockActivity))
}

func TestClockOut_BeforeClockIn(t *testing.T) {
	services, repo := setupServices(t)
	ctx := context.Background()
	projectID := seedProject(t, repo, "Worker")

	_, err := services.TimeService.ClockIn(ctx, projectID, utc(time.March, 2, 8, 0))
	require.NoError(t, err)

	_, err = services.TimeService.ClockOut(ctx, projectID, utc(time.March, 2, 7, 0))
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrClockOutBeforeClockIn))

	_, ok, err := services.TimeService.GetActiveTimeInterval(ctx, projectID)
	require.NoError(t, err)
	assert.True(t, ok, "a rejected clock out leaves the interval active")
}

func TestMarkRegistered(t *testing.T) {
	services, repo := setupServices(t)
	ctx := context.Background()
	projectID := seedProject(t, repo, "Worker")
	id := seedInterval(t, repo, projectID, utc(time.March, 1, 8, 0), utc(time.March, 1, 10, 0), false)

	interval, err := services.TimeService.MarkRegistered(ctx, id)
	require.NoError(t, err)
	assert.True(t, interval.IsRegistered())

	again, err := services.TimeService.MarkRegistered(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, interval, again)

	interval, err = services.TimeService.UnmarkRegistered(ctx, id)
	require.NoError(t, err)
	assert.False(t, interval.IsRegistered())

	stored, err := services.TimeService.GetTimeInterval(ctx, id)
	require.NoError(t, err)
	assert.False(t, stored.IsRegistered())
}

func TestMarkRegistered_ActiveInterval(t *testing.T) {
	services, repo := setupServices(t)
	ctx := context.Background()
	projectID := seedProject(t, repo, "Worker")

	interval, err := services.TimeService.ClockIn(ctx, projectID, utc(time.March, 2, 8, 0))
	require.NoError(t, err)
	id, _ := interval.ID()

	_, err = services.TimeService.MarkRegistered(ctx, id)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrClockActivity))

	stored, err := services.TimeService.GetTimeInterval(ctx, id)
	require.NoError(t, err)
	assert.False(t, stored.IsRegistered())
}

func TestRemoveTimeInterval(t *testing.T) {
	services, repo := setupServices(t)
	ctx := context.Background()
	projectID := seedProject(t, repo, "Worker")
	id := seedInterval(t, repo, projectID, utc(time.March, 1, 8, 0), utc(time.March, 1, 10, 0), false)

	require.NoError(t, services.TimeService.RemoveTimeInterval(ctx, id))

	_, err := services.TimeService.GetTimeInterval(ctx, id)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

	err = services.TimeService.RemoveTimeInterval(ctx, id)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

	err = services.TimeService.RemoveTimeInterval(ctx, -1)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
}

func TestTimeSince(t *testing.T) {
	services, repo := setupServices(t)
	projectID := seedProject(t, repo, "Worker")
	otherID := seedProject(t, repo, "Other")

	// now is Wednesday March 2, the week started Monday February 29
	seedInterval(t, repo, projectID, utc(time.February, 20, 8, 0), utc(time.February, 20, 16, 0), true)
	seedInterval(t, repo, projectID, utc(time.February, 29, 8, 0), utc(time.February, 29, 10, 0), false)
	seedInterval(t, repo, projectID, utc(time.March, 1, 9, 0), utc(time.March, 1, 9, 30), false)
	seedInterval(t, repo, projectID, utc(time.March, 2, 13, 0), time.Time{}, false)
	seedInterval(t, repo, otherID, utc(time.March, 2, 8, 0), utc(time.March, 2, 12, 0), false)

	tests := []struct {
		period   domain.Period
		expected domain.HoursMinutes
	}{
		{domain.PeriodDay, domain.HoursMinutes{Hours: 1, Minutes: 30}},
		{domain.PeriodWeek, domain.HoursMinutes{Hours: 4, Minutes: 0}},
		{domain.PeriodMonth, domain.HoursMinutes{Hours: 2, Minutes: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.period.String(), func(t *testing.T) {
			total, err := services.TimeService.TimeSince(context.Background(), projectID, tt.period, now)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, total)
		})
	}
}

func TestTimeSince_NoIntervals(t *testing.T) {
	services, repo := setupServices(t)
	projectID := seedProject(t, repo, "Worker")

	total, err := services.TimeService.TimeSince(context.Background(), projectID, domain.PeriodDay, now)
	require.NoError(t, err)
	assert.True(t, total.IsEmpty())
}
