package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		input    string
		expected Period
	}{
		{"day", PeriodDay},
		{"Week", PeriodWeek},
		{" month ", PeriodMonth},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			period, err := ParsePeriod(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, period)
			assert.Equal(t, period, mustParsePeriod(t, period.String()))
		})
	}

	_, err := ParsePeriod("year")
	assert.Error(t, err)
}

func mustParsePeriod(t *testing.T, name string) Period {
	t.Helper()
	period, err := ParsePeriod(name)
	require.NoError(t, err)
	return period
}

func TestPeriod_Since(t *testing.T) {
	// Wednesday
	now := time.Date(2016, time.March, 2, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		period   Period
		now      time.Time
		expected time.Time
	}{
		{"day", PeriodDay, now, time.Date(2016, time.March, 2, 0, 0, 0, 0, time.UTC)},
		{"week crossing month", PeriodWeek, now, time.Date(2016, time.February, 29, 0, 0, 0, 0, time.UTC)},
		{"week on monday", PeriodWeek, time.Date(2016, time.February, 29, 9, 0, 0, 0, time.UTC), time.Date(2016, time.February, 29, 0, 0, 0, 0, time.UTC)},
		{"week on sunday", PeriodWeek, time.Date(2016, time.February, 28, 23, 0, 0, 0, time.UTC), time.Date(2016, time.February, 22, 0, 0, 0, 0, time.UTC)},
		{"month", PeriodMonth, now, time.Date(2016, time.March, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.period.Since(tt.now))
		})
	}
}
