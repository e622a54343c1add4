package timer

import "fmt"

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600

	// MaxHourField is the two-digit ceiling of the hour field.
	MaxHourField = 99
	// MaxMinuteField is the ceiling of the minute field.
	MaxMinuteField = 59
	// MaxSecondField is the ceiling of the second field.
	MaxSecondField = 59

	// MaxSeconds is the largest value any counter can hold (99:59:59).
	MaxSeconds = MaxHourField*secondsPerHour + MaxMinuteField*secondsPerMinute + MaxSecondField
)

// Format renders a seconds count as zero-padded HH:MM:SS.
// Negative values render as 00:00:00.
func Format(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}

	hours := totalSeconds / secondsPerHour
	minutes := (totalSeconds % secondsPerHour) / secondsPerMinute
	seconds := totalSeconds % secondsPerMinute

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// clamp bounds a seconds count to [0, MaxSeconds].
func clamp(seconds int) int {
	switch {
	case seconds < 0:
		return 0
	case seconds > MaxSeconds:
		return MaxSeconds
	default:
		return seconds
	}
}
