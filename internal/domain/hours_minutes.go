package domain

import "fmt"

const (
	millisecondsInSecond = 1000
	secondsInMinute      = 60
	minutesInHour        = 60
	secondsInHour        = 3600
	secondsInDay         = 86400
	hoursInDay           = 24
)

// HoursMinutes is a rounded amount of worked time.
// Hours are unbounded, minutes are always within [0, 59].
type HoursMinutes struct {
	Hours   int64
	Minutes int64
}

// CalculateHoursMinutes converts elapsed milliseconds into hours and minutes.
// Seconds within the last minute are rounded half up. Full days are folded
// back into the hour count.
//
// The input must not be negative; callers clamp before calling.
func CalculateHoursMinutes(milliseconds int64) HoursMinutes {
	if milliseconds < 0 {
		panic(fmt.Sprintf("domain: negative milliseconds %d", milliseconds))
	}

	seconds := milliseconds / millisecondsInSecond

	minutes := (seconds / secondsInMinute) % minutesInHour
	if seconds%secondsInMinute >= 30 {
		minutes++
	}

	hours := (seconds/secondsInHour)%hoursInDay + hoursInDay*(seconds/secondsInDay)

	if minutes == minutesInHour {
		minutes = 0
		hours++
	}

	return HoursMinutes{Hours: hours, Minutes: minutes}
}

// IsEmpty reports whether no time has been accumulated.
func (hm HoursMinutes) IsEmpty() bool {
	return hm.Hours == 0 && hm.Minutes == 0
}

// Milliseconds returns the whole-minute value in milliseconds.
func (hm HoursMinutes) Milliseconds() int64 {
	return (hm.Hours*minutesInHour + hm.Minutes) * secondsInMinute * millisecondsInSecond
}

// Add sums two values, carrying overflowing minutes into hours.
func (hm HoursMinutes) Add(other HoursMinutes) HoursMinutes {
	hours := hm.Hours + other.Hours
	minutes := hm.Minutes + other.Minutes

	if minutes >= minutesInHour {
		hours += minutes / minutesInHour
		minutes %= minutesInHour
	}

	return HoursMinutes{Hours: hours, Minutes: minutes}
}

// Minus returns the signed difference between hm and other.
func (hm HoursMinutes) Minus(other HoursMinutes) TimeDifference {
	milliseconds := hm.Milliseconds() - other.Milliseconds()

	negative := milliseconds < 0
	if negative {
		milliseconds = -milliseconds
	}

	seconds := milliseconds / millisecondsInSecond
	return TimeDifference{
		Hours:    seconds / secondsInHour,
		Minutes:  (seconds / secondsInMinute) % minutesInHour,
		Negative: negative,
	}
}

func (hm HoursMinutes) String() string {
	return fmt.Sprintf("%dh%02dm", hm.Hours, hm.Minutes)
}

// Accumulated folds the values with Add.
func Accumulated(values []HoursMinutes) HoursMinutes {
	var total HoursMinutes
	for _, value := range values {
		total = total.Add(value)
	}
	return total
}

// TimeDifference is a signed amount of time, e.g. worked time against a goal.
// Hours and Minutes hold the magnitude.
type TimeDifference struct {
	Hours    int64
	Minutes  int64
	Negative bool
}

// IsEmpty reports whether the difference is zero.
func (d TimeDifference) IsEmpty() bool {
	return d.Hours == 0 && d.Minutes == 0
}

// Magnitude returns the absolute difference.
func (d TimeDifference) Magnitude() HoursMinutes {
	return HoursMinutes{Hours: d.Hours, Minutes: d.Minutes}
}
