package statemachine

// State is a runtime lifecycle state.
type State string

const (
	Starting State = "STARTING"
	Ready    State = "READY"
	Degraded State = "DEGRADED"
	Draining State = "DRAINING"
	Stopping State = "STOPPING"
)

// String implements fmt.Stringer.
func (s State) String() string {
	return string(s)
}

// transitions lists the allowed targets for every source state.
// Stopping is terminal.
var transitions = map[State][]State{
	Starting: {Ready, Stopping},
	Ready:    {Degraded, Draining, Stopping},
	Degraded: {Ready, Draining, Stopping},
	Draining: {Stopping},
	Stopping: {},
}

// Allowed reports whether the table permits moving from one state to another.
// Self transitions are never allowed.
func Allowed(from, to State) bool {
	if from == to {
		return false
	}
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Targets returns the states reachable from s in one step.
func Targets(s State) []State {
	out := make([]State, len(transitions[s]))
	copy(out, transitions[s])
	return out
}
