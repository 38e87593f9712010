package statemachine_test

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reqkit/pkg/statemachine"
)

var allStates = []statemachine.State{
	statemachine.Starting,
	statemachine.Ready,
	statemachine.Degraded,
	statemachine.Draining,
	statemachine.Stopping,
}

func TestTransitionTable(t *testing.T) {
	t.Parallel()

	allowed := map[statemachine.State][]statemachine.State{
		statemachine.Starting: {statemachine.Ready, statemachine.Stopping},
		statemachine.Ready:    {statemachine.Degraded, statemachine.Draining, statemachine.Stopping},
		statemachine.Degraded: {statemachine.Ready, statemachine.Draining, statemachine.Stopping},
		statemachine.Draining: {statemachine.Stopping},
		statemachine.Stopping: {},
	}

	for _, from := range allStates {
		for _, to := range allStates {
			want := false
			for _, s := range allowed[from] {
				if s == to {
					want = true
				}
			}

			sm := statemachine.New(statemachine.WithInitialState(from))
			got := sm.Transition(to)
			assert.Equal(t, want, got, "%s -> %s", from, to)
			if want {
				assert.Equal(t, to, sm.Current())
				assert.Len(t, sm.History(), 1)
			} else {
				assert.Equal(t, from, sm.Current())
				assert.Empty(t, sm.History())
			}
		}
	}
}

func TestSelfTransitionRejected(t *testing.T) {
	t.Parallel()

	for _, s := range allStates {
		sm := statemachine.New(statemachine.WithInitialState(s))
		assert.False(t, sm.Transition(s), "self transition from %s", s)
		assert.Empty(t, sm.History())

		err := sm.TransitionE(s)
		require.Error(t, err)
		assert.True(t, statemachine.IsInvalidTransitionError(err))
	}
}

func TestStoppingIsTerminal(t *testing.T) {
	t.Parallel()

	sm := statemachine.New(statemachine.WithInitialState(statemachine.Stopping))
	for _, s := range allStates {
		assert.False(t, sm.Transition(s))
	}
	assert.Empty(t, statemachine.Targets(statemachine.Stopping))
}

func TestScenario(t *testing.T) {
	t.Parallel()

	sm := statemachine.New()
	require.Equal(t, statemachine.Starting, sm.Current())

	assert.True(t, sm.Transition(statemachine.Ready))
	assert.False(t, sm.Transition(statemachine.Ready))
	assert.True(t, sm.Transition(statemachine.Stopping))
	assert.False(t, sm.Transition(statemachine.Draining))

	h := sm.History()
	require.Len(t, h, 2)
	assert.Equal(t, statemachine.Starting, h[0].From)
	assert.Equal(t, statemachine.Ready, h[0].To)
	assert.Equal(t, statemachine.Stopping, h[1].To)
}

func TestPredicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state  statemachine.State
		accept bool
		ready  bool
		alive  bool
	}{
		{statemachine.Starting, false, false, true},
		{statemachine.Ready, true, true, true},
		{statemachine.Degraded, true, false, true},
		{statemachine.Draining, false, false, true},
		{statemachine.Stopping, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			t.Parallel()
			sm := statemachine.New(statemachine.WithInitialState(tt.state))
			assert.Equal(t, tt.accept, sm.CanAcceptRequests())
			assert.Equal(t, tt.ready, sm.IsReady())
			assert.Equal(t, tt.alive, sm.IsAlive())
		})
	}
}

func TestHistoryBounded(t *testing.T) {
	t.Parallel()

	var tick int64
	clock := func() time.Time {
		tick++
		return time.Unix(tick, 0)
	}
	sm := statemachine.New(statemachine.WithInitialState(statemachine.Ready), statemachine.WithClock(clock))

	for range 150 {
		require.True(t, sm.Transition(statemachine.Degraded))
		require.True(t, sm.Transition(statemachine.Ready))
	}

	h := sm.History()
	require.Len(t, h, 10)
	assert.Equal(t, time.Unix(300, 0), h[9].At)
	assert.Equal(t, time.Unix(291, 0), h[0].At)
	assert.Equal(t, statemachine.Ready, h[9].To)
}

func TestUnknownState(t *testing.T) {
	t.Parallel()

	sm := statemachine.New()
	err := sm.TransitionE(statemachine.State("PAUSED"))
	assert.ErrorIs(t, err, statemachine.ErrUnknownState)
	assert.Equal(t, statemachine.Starting, sm.Current())

	sm = statemachine.New(statemachine.WithInitialState(statemachine.State("PAUSED")))
	assert.Equal(t, statemachine.Starting, sm.Current())
}

func TestConcurrentTransitions(t *testing.T) {
	t.Parallel()

	sm := statemachine.New(statemachine.WithInitialState(statemachine.Ready))

	var wg sync.WaitGroup
	results := make(chan bool, 20)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- sm.Transition(statemachine.Draining)
		}()
	}
	wg.Wait()
	close(results)

	wins := 0
	for ok := range results {
		if ok {
			wins++
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, statemachine.Draining, sm.Current())
}

func TestTransitionLogLevels(t *testing.T) {
	t.Parallel()

	newManager := func(level slog.Level) (*statemachine.Manager, *bytes.Buffer) {
		var buf bytes.Buffer
		l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level}))
		return statemachine.New(statemachine.WithLogger(l)), &buf
	}

	t.Run("success is quiet at info", func(t *testing.T) {
		t.Parallel()
		m, buf := newManager(slog.LevelInfo)
		require.True(t, m.Transition(statemachine.Ready))
		assert.Empty(t, buf.String())
	})

	t.Run("success logs at debug", func(t *testing.T) {
		t.Parallel()
		m, buf := newManager(slog.LevelDebug)
		require.True(t, m.Transition(statemachine.Ready))
		assert.Contains(t, buf.String(), "level=DEBUG")
		assert.Contains(t, buf.String(), "state transition")
	})

	t.Run("rejection warns", func(t *testing.T) {
		t.Parallel()
		m, buf := newManager(slog.LevelInfo)
		require.False(t, m.Transition(statemachine.Draining))
		assert.Contains(t, buf.String(), "level=WARN")
		assert.Contains(t, buf.String(), "state transition rejected")
	})
}
