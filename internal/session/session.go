package session

// State is the power state of an edit session
type State int

const (
	Disabled State = iota
	Enabled
)

func (s State) String() string {
	if s == Enabled {
		return "ON"
	}
	return "OFF"
}

// EditSession gates whether bindings and profiles may be mutated.
// It starts Disabled and is switched with an explicit target state.
type EditSession struct {
	state     State
	listeners []func(State)
}

// NewEditSession creates a session in the Disabled state
func NewEditSession() *EditSession {
	return &EditSession{state: Disabled}
}

// State returns the current power state
func (s *EditSession) State() State {
	return s.state
}

// Enabled reports whether editing is permitted at all
func (s *EditSession) Enabled() bool {
	return s.state == Enabled
}

// TogglePower sets the state to on/off. It reports whether the state
// changed; setting the current state again is a no-op.
func (s *EditSession) TogglePower(on bool) bool {
	target := Disabled
	if on {
		target = Enabled
	}

	if target == s.state {
		return false
	}

	s.state = target
	for _, fn := range s.listeners {
		fn(target)
	}
	return true
}

// OnChange registers fn to be called after every actual state change
func (s *EditSession) OnChange(fn func(State)) {
	s.listeners = append(s.listeners, fn)
}
