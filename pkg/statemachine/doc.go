// Package statemachine implements the five-state lifecycle that gates request
// acceptance in the runtime.
//
// The lifecycle is a fixed table:
//
//	STARTING -> READY, STOPPING
//	READY    -> DEGRADED, DRAINING, STOPPING
//	DEGRADED -> READY, DRAINING, STOPPING
//	DRAINING -> STOPPING
//	STOPPING -> (terminal)
//
// A transition to the current state is rejected rather than treated as an
// idempotent success. Rejected transitions leave both the state and the
// history untouched.
//
// # Usage
//
//	sm := statemachine.New(statemachine.WithLogger(log))
//	sm.Transition(statemachine.Ready)    // true
//	sm.Transition(statemachine.Ready)    // false, no-op transitions are invalid
//	sm.CanAcceptRequests()               // true
//
// # Error Handling
//
// TransitionE returns the reason for a rejection:
//
//	if err := sm.TransitionE(statemachine.Draining); statemachine.IsInvalidTransitionError(err) {
//		// already draining or stopping
//	}
//
// # Concurrency
//
// Manager guards its state and history with a RWMutex. History keeps the last
// 100 successful transitions internally and exposes the most recent 10.
package statemachine
