package common

import "time"

var (
	// MinDateTime is the earliest instant a DateTime column can hold.
	MinDateTime = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
	// MaxDateTime is the latest instant a DateTime column can hold, the last nanosecond of year 9999.
	MaxDateTime = time.Date(9999, time.December, 31, 23, 59, 59, 999999999, time.UTC)
)

// DateTimeInRange returns true if t fits in a DateTime column.
func DateTimeInRange(t time.Time) bool {
	return !t.Before(MinDateTime) && !t.After(MaxDateTime)
}
