package timer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Fields is the limit as the user edits it: three clamped numeric fields.
type Fields struct {
	Hours   int `json:"hours"   yaml:"hours"`
	Minutes int `json:"minutes" yaml:"minutes"`
	Seconds int `json:"seconds" yaml:"seconds"`
}

// errBadClock is returned when a clock string has too many parts.
var errBadClock = errors.New("expected HH:MM:SS, MM:SS or SS")

// FieldsFrom decomposes a seconds count into fields, bounded by MaxSeconds.
func FieldsFrom(totalSeconds int) Fields {
	totalSeconds = clamp(totalSeconds)

	return Fields{
		Hours:   totalSeconds / secondsPerHour,
		Minutes: (totalSeconds % secondsPerHour) / secondsPerMinute,
		Seconds: totalSeconds % secondsPerMinute,
	}
}

// Total returns the duration the fields describe, in seconds.
func (f Fields) Total() int {
	return f.Hours*secondsPerHour + f.Minutes*secondsPerMinute + f.Seconds
}

// Clamped bounds every field to its valid range.
func (f Fields) Clamped() Fields {
	return Fields{
		Hours:   clampField(f.Hours, MaxHourField),
		Minutes: clampField(f.Minutes, MaxMinuteField),
		Seconds: clampField(f.Seconds, MaxSecondField),
	}
}

// String renders the fields as HH:MM:SS.
func (f Fields) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", f.Hours, f.Minutes, f.Seconds)
}

// ParseField sanitizes raw keyboard input for one field: non-digits are
// stripped, empty input means 0 and the value is clamped to [0, maxValue].
func ParseField(raw string, maxValue int) int {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) && r <= unicode.MaxASCII {
			return r
		}

		return -1
	}, raw)

	if digits == "" {
		return 0
	}

	value, err := strconv.Atoi(digits)
	if err != nil {
		// Only overflow gets here.
		return maxValue
	}

	return clampField(value, maxValue)
}

// ParseClock parses "HH:MM:SS", "MM:SS" or "SS" into clamped fields.
func ParseClock(raw string) (Fields, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) > 3 {
		return Fields{}, fmt.Errorf("parse %q: %w", raw, errBadClock)
	}

	values := make([]int, 3)
	offset := 3 - len(parts)

	for i, part := range parts {
		part = strings.TrimSpace(part)

		value, err := strconv.Atoi(part)
		if err != nil || value < 0 {
			return Fields{}, fmt.Errorf("parse %q: %w", raw, errBadClock)
		}

		values[offset+i] = value
	}

	fields := Fields{
		Hours:   values[0],
		Minutes: values[1],
		Seconds: values[2],
	}

	return fields.Clamped(), nil
}

func clampField(value, maxValue int) int {
	return max(0, min(value, maxValue))
}
