package services

import (
	"context"
	"testing"
	"time"

	"worker/internal/config"
	"worker/internal/repository/sqlite"

	"github.com/stretchr/testify/require"
)

// now is a Wednesday afternoon, used as the fixed clock of the tests
var now = time.Date(2016, time.March, 2, 14, 30, 0, 0, time.UTC)

func fixedClock() time.Time {
	return now
}

func setupServices(t *testing.T) (*ServiceContainer, *sqlite.SQLiteRepository) {
	t.Helper()

	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	cfg := config.NewConfig()
	cfg.Time.Location = "UTC"

	container, err := NewServiceContainer(repo, cfg, fixedClock)
	require.NoError(t, err)
	return container, repo
}

func seedProject(t *testing.T, repo *sqlite.SQLiteRepository, name string) int64 {
	t.Helper()

	project := &sqlite.Project{Name: name}
	require.NoError(t, repo.CreateProject(context.Background(), project))
	return project.ID
}

// seedInterval stores an interval directly, a zero stop leaves it active
func seedInterval(t *testing.T, repo *sqlite.SQLiteRepository, projectID int64, start, stop time.Time, registered bool) int64 {
	t.Helper()

	row := &sqlite.TimeInterval{
		ProjectID:  projectID,
		StartMs:    start.UnixMilli(),
		Registered: registered,
	}
	if !stop.IsZero() {
		row.StopMs = stop.UnixMilli()
	}
	require.NoError(t, repo.CreateTimeInterval(context.Background(), row))
	return row.ID
}

func utc(month time.Month, day, hour, minute int) time.Time {
	return time.Date(2016, month, day, hour, minute, 0, 0, time.UTC)
}
