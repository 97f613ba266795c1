package utils

import "fmt"

const secondsPerDay = 24 * 60 * 60

// SecondsToClock renders seconds since midnight as HH:MM, wrapping past midnight.
func SecondsToClock(seconds int) string {
	s := seconds % secondsPerDay
	if s < 0 {
		s += secondsPerDay
	}
	return fmt.Sprintf("%02d:%02d", s/3600, (s%3600)/60)
}

// MinutesToSeconds converts a minutes-since-midnight value for the optimizer.
func MinutesToSeconds(minutes int) int {
	return minutes * 60
}
