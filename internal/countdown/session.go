// Package countdown owns the per-card expiry timer. One Session exists per
// rendered deal; navigating away destroys it and a fresh mount gets a fresh
// session seeded from the deal's time-left field.
package countdown

// State of a session. Expired is terminal: the only exit is destroying the
// session when the card unmounts.
type State int

const (
	Active State = iota
	Expired
)

func (s State) String() string {
	if s == Expired {
		return "expired"
	}
	return "active"
}

// Session is the live countdown for one rendered deal. It holds no timer of
// its own; the owner delivers one Tick per elapsed wall-clock second and
// stops delivering when the card unmounts. Generation tagging for dropping
// stale ticks after a remount lives with the owner, not here.
type Session struct {
	remaining int
	state     State
}

// NewSession seeds a session from the deal's time-left attribute. A deal
// that arrives already at zero starts Expired and never ticks.
func NewSession(timeLeftSeconds int) *Session {
	if timeLeftSeconds <= 0 {
		return &Session{remaining: 0, state: Expired}
	}
	return &Session{remaining: timeLeftSeconds, state: Active}
}

// Remaining returns the seconds left, clamped to 0 once expired.
func (s *Session) Remaining() int { return s.remaining }

// State returns the session state.
func (s *Session) State() State { return s.state }

// Expired reports whether the terminal state has been reached.
func (s *Session) Expired() bool { return s.state == Expired }

// Tick consumes one elapsed second. The Active->Expired transition fires
// exactly once, when a tick would bring the counter to zero or below; after
// that Tick is a no-op. Returns true on the tick that expired the session.
func (s *Session) Tick() bool {
	if s.state == Expired {
		return false
	}
	if s.remaining <= 1 {
		s.remaining = 0
		s.state = Expired
		return true
	}
	s.remaining--
	return false
}
