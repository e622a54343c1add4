package timer

// Session is the single mutable countdown. The zero value is not usable;
// call NewSession.
type Session struct {
	limit     Fields
	remaining int
	elapsed   int
	state     State
}

// NewSession creates an IDLE session with every counter at zero.
func NewSession() *Session {
	return &Session{state: StateIdle}
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Apply runs one command and reports the resulting transition.
// Commands that make no sense in the current state are silent no-ops.
func (s *Session) Apply(cmd Command) Transition {
	from := s.state

	switch cmd.Action {
	case ActionStart:
		s.startOrResume()
	case ActionPause:
		s.pause()
	case ActionStop:
		s.stop()
	case ActionReset:
		s.stop()
		s.limit = Fields{}
	case ActionAcknowledge:
		s.acknowledge()
	case ActionAddTime:
		s.addTime(cmd.Delta)
	case ActionSetLimit:
		s.setLimit(cmd.Limit)
	case ActionTick:
		s.tick()
	}

	return Transition{From: from, To: s.state}
}

// Snapshot returns a read-only view of the session.
func (s *Session) Snapshot() Snapshot {
	snapshot := Snapshot{
		State:        s.state,
		Limit:        s.limit,
		LimitSeconds: s.limit.Total(),
		Remaining:    s.remaining,
		Elapsed:      s.elapsed,
	}

	switch s.state {
	case StateFinished:
		snapshot.Shown = s.elapsed
		snapshot.Display = "+" + Format(s.elapsed)
	case StateIdle:
		snapshot.Shown = snapshot.LimitSeconds
		snapshot.Display = Format(snapshot.LimitSeconds)
	case StateRunning, StatePaused:
		snapshot.Shown = s.remaining
		snapshot.Display = Format(s.remaining)
	}

	return snapshot
}

func (s *Session) startOrResume() {
	switch s.state {
	case StateIdle:
		limit := s.limit.Total()
		if limit <= 0 {
			return
		}

		s.remaining = clamp(limit)
		s.state = StateRunning
	case StatePaused:
		s.state = StateRunning
	case StateRunning, StateFinished:
	}
}

func (s *Session) pause() {
	if s.state == StateRunning {
		s.state = StatePaused
	}
}

func (s *Session) stop() {
	s.state = StateIdle
	s.remaining = 0
	s.elapsed = 0
}

func (s *Session) acknowledge() {
	if s.state != StateFinished {
		return
	}

	s.state = StateIdle
	s.elapsed = 0
}

func (s *Session) addTime(delta int) {
	// Counters never exceed MaxSeconds, so a bounded delta cannot overflow.
	delta = max(-MaxSeconds, min(delta, MaxSeconds))

	switch s.state {
	case StateFinished:
		// Snooze: a fresh countdown of delta, not added to anything.
		s.elapsed = 0
		s.remaining = clamp(delta)
		s.state = StateRunning
	case StateRunning, StatePaused:
		// Reaching zero here does not finish; only tick does.
		s.remaining = clamp(s.remaining + delta)
	case StateIdle:
		s.limit = FieldsFrom(s.limit.Total() + delta)
	}
}

func (s *Session) setLimit(limit Fields) {
	if s.state != StateIdle {
		return
	}

	s.limit = limit.Clamped()
}

func (s *Session) tick() {
	switch s.state {
	case StateRunning:
		if s.remaining <= 1 {
			s.remaining = 0
			s.state = StateFinished

			return
		}

		s.remaining--
	case StateFinished:
		s.elapsed = clamp(s.elapsed + 1)
	case StateIdle, StatePaused:
	}
}
