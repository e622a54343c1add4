package timer

import (
	"errors"
	"fmt"
	"strings"
)

// State is the lifecycle stage of the countdown.
type State int

const (
	// StateIdle waits for a limit and a start command.
	StateIdle State = iota
	// StateRunning counts the remaining seconds down.
	StateRunning
	// StatePaused keeps the remaining seconds frozen.
	StatePaused
	// StateFinished counts seconds since the countdown reached zero.
	StateFinished
)

// ErrUnknownState is returned when a state name cannot be parsed.
var ErrUnknownState = errors.New("unknown timer state")

//nolint:gochecknoglobals // Lookup table for text encoding.
var stateNames = map[State]string{
	StateIdle:     "IDLE",
	StateRunning:  "RUNNING",
	StatePaused:   "PAUSED",
	StateFinished: "FINISHED",
}

// String returns the upper-case state name.
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}

	return fmt.Sprintf("State(%d)", int(s))
}

// ParseState converts a state name (case-insensitive) to State.
func ParseState(name string) (State, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for state, stateName := range stateNames {
		if stateName == name {
			return state, nil
		}
	}

	return StateIdle, fmt.Errorf("%q: %w", name, ErrUnknownState)
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	parsed, err := ParseState(string(text))
	if err != nil {
		return err
	}

	*s = parsed

	return nil
}

// Ticking reports whether the tick driver is active in this state.
func (s State) Ticking() bool {
	return s == StateRunning || s == StateFinished
}

// Ringing reports whether the alarm driver is active in this state.
func (s State) Ringing() bool {
	return s == StateFinished
}
