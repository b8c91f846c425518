// Package timeutil holds the minute-granular time arithmetic shared by
// showtime scheduling and booking checks.
package timeutil

import "time"

// AddMinutes returns start shifted forward by the given number of minutes.
func AddMinutes(start time.Time, minutes int) time.Time {
	return start.Add(time.Duration(minutes) * time.Minute)
}

// MinutesBetween returns end minus start in whole minutes. The result is
// negative when end precedes start.
func MinutesBetween(start, end time.Time) int {
	return int(end.Sub(start) / time.Minute)
}

// IsPast reports whether t is before the wall clock at call time.
func IsPast(t time.Time) bool {
	return t.Before(time.Now())
}

// DurationMatches reports whether the interval [start, end) is exactly
// minutes long. A one-minute mismatch fails.
func DurationMatches(start, end time.Time, minutes int) bool {
	return MinutesBetween(start, end) == minutes
}
