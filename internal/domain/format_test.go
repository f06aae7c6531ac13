package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntervalFormats(t *testing.T) {
	tests := []struct {
		value    HoursMinutes
		fraction string
		digital  string
		compact  string
	}{
		{HoursMinutes{}, "0.00", "0:00", "0m"},
		{HoursMinutes{Minutes: 5}, "0.08", "0:05", "5m"},
		{HoursMinutes{Hours: 8, Minutes: 15}, "8.25", "8:15", "8h 15m"},
		{HoursMinutes{Hours: 9, Minutes: 7}, "9.12", "9:07", "9h 7m"},
		{HoursMinutes{Hours: 8, Minutes: 46}, "8.77", "8:46", "8h 46m"},
		{HoursMinutes{Hours: 7, Minutes: 52}, "7.87", "7:52", "7h 52m"},
		{HoursMinutes{Hours: 56, Minutes: 25}, "56.42", "56:25", "56h 25m"},
	}

	for _, tt := range tests {
		t.Run(tt.digital, func(t *testing.T) {
			assert.Equal(t, tt.fraction, FractionIntervalFormat{}.Format(tt.value))
			assert.Equal(t, tt.digital, DigitalIntervalFormat{}.Format(tt.value))
			assert.Equal(t, tt.compact, CompactIntervalFormat{}.Format(tt.value))
		})
	}
}

func TestFormatDifference(t *testing.T) {
	tests := []struct {
		name     string
		format   IntervalFormat
		diff     TimeDifference
		expected string
	}{
		{"empty", FractionIntervalFormat{}, TimeDifference{}, ""},
		{"positive fraction", FractionIntervalFormat{}, TimeDifference{Hours: 1, Minutes: 7}, " (+1.12)"},
		{"negative fraction", FractionIntervalFormat{}, TimeDifference{Minutes: 8, Negative: true}, " (-0.13)"},
		{"positive digital", DigitalIntervalFormat{}, TimeDifference{Minutes: 46}, " (+0:46)"},
		{"negative digital", DigitalIntervalFormat{}, TimeDifference{Hours: 7, Negative: true}, " (-7:00)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDifference(tt.format, tt.diff))
		})
	}
}

func TestIntervalFormatByName(t *testing.T) {
	tests := []struct {
		name     string
		expected IntervalFormat
	}{
		{"fraction", FractionIntervalFormat{}},
		{"Digital", DigitalIntervalFormat{}},
		{" compact ", CompactIntervalFormat{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := IntervalFormatByName(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}

	_, err := IntervalFormatByName("roman")
	assert.Error(t, err)
}
