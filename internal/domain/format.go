package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// IntervalFormat renders an amount of time for display.
type IntervalFormat interface {
	Format(hm HoursMinutes) string
}

// Names accepted by IntervalFormatByName.
const (
	FormatFraction = "fraction"
	FormatDigital  = "digital"
	FormatCompact  = "compact"
)

var minutesPerHour = decimal.NewFromInt(minutesInHour)

// FractionIntervalFormat renders fractional hours, e.g. "8.25" for 8h 15m.
type FractionIntervalFormat struct{}

func (FractionIntervalFormat) Format(hm HoursMinutes) string {
	fraction := decimal.NewFromInt(hm.Minutes).Div(minutesPerHour)
	return decimal.NewFromInt(hm.Hours).Add(fraction).StringFixed(2)
}

// DigitalIntervalFormat renders hours and zero padded minutes, e.g. "8:05".
type DigitalIntervalFormat struct{}

func (DigitalIntervalFormat) Format(hm HoursMinutes) string {
	return fmt.Sprintf("%d:%02d", hm.Hours, hm.Minutes)
}

// CompactIntervalFormat renders "5h 12m", dropping the hours when zero.
type CompactIntervalFormat struct{}

func (CompactIntervalFormat) Format(hm HoursMinutes) string {
	if hm.Hours == 0 {
		return fmt.Sprintf("%dm", hm.Minutes)
	}
	return fmt.Sprintf("%dh %dm", hm.Hours, hm.Minutes)
}

// IntervalFormatByName resolves one of the configured format names.
func IntervalFormatByName(name string) (IntervalFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case FormatFraction:
		return FractionIntervalFormat{}, nil
	case FormatDigital:
		return DigitalIntervalFormat{}, nil
	case FormatCompact:
		return CompactIntervalFormat{}, nil
	default:
		return nil, fmt.Errorf("unknown interval format %q", name)
	}
}

// FormatDifference renders a difference as a parenthesised suffix,
// " (+1:07)" or " (-0:08)", and an empty string when there is none.
func FormatDifference(format IntervalFormat, diff TimeDifference) string {
	if diff.IsEmpty() {
		return ""
	}

	sign := "+"
	if diff.Negative {
		sign = "-"
	}
	return fmt.Sprintf(" (%s%s)", sign, format.Format(diff.Magnitude()))
}
