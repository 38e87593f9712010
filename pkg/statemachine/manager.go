package statemachine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/reqkit/pkg/logger"
)

const (
	historyCapacity = 100
	historyExposed  = 10
)

// Record is one successful transition.
type Record struct {
	From State
	To   State
	At   time.Time
}

// Manager owns the runtime lifecycle state and gates request acceptance.
// It is safe for concurrent use.
type Manager struct {
	mu      sync.RWMutex
	current State
	history []Record
	now     func() time.Time
	logger  *slog.Logger
}

// New creates a Manager in the Starting state.
func New(opts ...Option) *Manager {
	m := &Manager{
		current: Starting,
		history: make([]Record, 0, historyCapacity),
		now:     time.Now,
		logger:  logger.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Current returns the current state.
func (m *Manager) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Transition moves to target if the table allows it and reports whether the
// state changed. Rejected transitions leave state and history untouched.
func (m *Manager) Transition(target State) bool {
	return m.TransitionE(target) == nil
}

// TransitionE is like Transition but returns the reason for a rejection.
func (m *Manager) TransitionE(target State) error {
	if _, ok := transitions[target]; !ok {
		return ErrUnknownState
	}

	m.mu.Lock()
	from := m.current
	if !Allowed(from, target) {
		m.mu.Unlock()
		m.logger.Warn("state transition rejected",
			slog.String("from", string(from)),
			logger.State(string(target)),
		)
		return NewInvalidTransitionError(from, target)
	}

	m.current = target
	if len(m.history) == historyCapacity {
		// shift in place; capacity stays fixed
		copy(m.history, m.history[1:])
		m.history = m.history[:historyCapacity-1]
	}
	m.history = append(m.history, Record{From: from, To: target, At: m.now()})
	m.mu.Unlock()

	m.logger.Debug("state transition",
		slog.String("from", string(from)),
		logger.State(string(target)),
	)
	return nil
}

// CanAcceptRequests is true only in Ready and Degraded.
func (m *Manager) CanAcceptRequests() bool {
	s := m.Current()
	return s == Ready || s == Degraded
}

// IsReady is true only in Ready.
func (m *Manager) IsReady() bool {
	return m.Current() == Ready
}

// IsAlive is true in every state except Stopping.
func (m *Manager) IsAlive() bool {
	return m.Current() != Stopping
}

// History returns up to the last 10 transitions, oldest first.
func (m *Manager) History() []Record {
	m.mu.RLock()
	defer m.mu.RUnlock()

	start := max(len(m.history)-historyExposed, 0)
	out := make([]Record, len(m.history)-start)
	copy(out, m.history[start:])
	return out
}
