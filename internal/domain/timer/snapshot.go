package timer

// Snapshot is the read-only view handed to presentation surfaces.
type Snapshot struct {
	// State is the current lifecycle stage.
	State State `json:"state"`
	// Display is the text shown in the digit display; "+HH:MM:SS" while finished.
	Display string `json:"display"`
	// Limit is the configured limit as fields.
	Limit Fields `json:"limit"`
	// LimitSeconds is Limit in seconds.
	LimitSeconds int `json:"limit_seconds"`
	// Remaining is the seconds left in the active countdown.
	Remaining int `json:"remaining"`
	// Elapsed is the seconds counted since the countdown finished.
	Elapsed int `json:"elapsed"`
	// Shown is the seconds value the clock face shows.
	Shown int `json:"shown"`
}
