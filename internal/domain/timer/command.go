package timer

import (
	"errors"
	"fmt"
	"strings"
)

// Action names an operation of the state machine.
type Action int

const (
	// ActionStart starts a countdown from IDLE or resumes a paused one.
	ActionStart Action = iota + 1
	// ActionPause freezes a running countdown. It is ignored in any other
	// state, so a remote pause cannot turn IDLE or FINISHED into PAUSED.
	ActionPause
	// ActionStop returns to IDLE keeping the configured limit.
	ActionStop
	// ActionReset returns to IDLE and clears the configured limit.
	ActionReset
	// ActionAcknowledge dismisses a finished countdown.
	ActionAcknowledge
	// ActionAddTime adds Command.Delta seconds; in FINISHED it snoozes.
	ActionAddTime
	// ActionSetLimit replaces the configured limit while IDLE.
	ActionSetLimit
	// ActionTick is the periodic one-second step fed by the tick driver.
	ActionTick
)

// ErrUnknownAction is returned when an action name cannot be parsed.
var ErrUnknownAction = errors.New("unknown timer action")

//nolint:gochecknoglobals // Lookup table for text encoding.
var actionNames = map[Action]string{
	ActionStart:       "start",
	ActionPause:       "pause",
	ActionStop:        "stop",
	ActionReset:       "reset",
	ActionAcknowledge: "acknowledge",
	ActionAddTime:     "add",
	ActionSetLimit:    "set",
	ActionTick:        "tick",
}

// String returns the lower-case action name.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}

	return fmt.Sprintf("Action(%d)", int(a))
}

// ParseAction converts an action name to Action. "ack" and "resume" are accepted as aliases.
func ParseAction(name string) (Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "ack", "dismiss":
		return ActionAcknowledge, nil
	case "resume":
		return ActionStart, nil
	}

	for action, actionName := range actionNames {
		if actionName == name {
			return action, nil
		}
	}

	return 0, fmt.Errorf("%q: %w", name, ErrUnknownAction)
}

// Command is a request to mutate the session.
type Command struct {
	// Action selects the operation.
	Action Action
	// Delta is the number of seconds for ActionAddTime, may be negative.
	Delta int
	// Limit carries the new fields for ActionSetLimit.
	Limit Fields
	// Actor is who issued the command; nil for local input.
	Actor *Actor
}

// Transition reports the state before and after a command.
type Transition struct {
	From State
	To   State
}

// Changed reports whether the command moved the session to another state.
func (t Transition) Changed() bool {
	return t.From != t.To
}
