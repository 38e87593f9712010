package statemachine

import (
	"log/slog"
	"time"
)

// Option configures a Manager during construction.
type Option func(*Manager)

// WithLogger sets the logger used to report transitions. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithClock overrides the time source used to stamp history records.
// Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithInitialState starts the manager in s instead of Starting.
// Unknown states are ignored.
func WithInitialState(s State) Option {
	return func(m *Manager) {
		if _, ok := transitions[s]; ok {
			m.current = s
		}
	}
}
