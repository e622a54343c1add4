package timer

// Actor identifies who issued a command through a remote surface.
type Actor struct {
	// Hostname is the machine the command came from.
	Hostname string
	// Username is the system user who issued the command.
	Username string
}

// Clone returns a deep copy of the actor.
func (a *Actor) Clone() *Actor {
	if a == nil {
		return nil
	}

	cloned := *a

	return &cloned
}

// String renders the actor as username@hostname.
func (a *Actor) String() string {
	if a == nil {
		return "local"
	}

	return a.Username + "@" + a.Hostname
}
