package telemetry

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// lagProbe measures how late a ticker fires compared to its schedule.
// The goroutine is best-effort monitoring and is cancelled via stop.
type lagProbe struct {
	interval time.Duration
	lagNanos atomic.Int64

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

func newLagProbe(interval time.Duration) *lagProbe {
	return &lagProbe{interval: interval}
}

// start launches the probe. Calling start on a running probe is a no-op.
func (p *lagProbe) start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running || p.interval <= 0 {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.running = true

	go p.loop(ctx, p.done)
}

func (p *lagProbe) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	expected := time.Now().Add(p.interval)
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			lag := now.Sub(expected)
			if lag < 0 {
				lag = 0
			}
			p.lagNanos.Store(int64(lag))
			expected = now.Add(p.interval)
		}
	}
}

// stop cancels the probe and waits for the goroutine to exit.
// Safe to call repeatedly and on a probe that was never started.
func (p *lagProbe) stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	cancel, done := p.cancel, p.done
	p.mu.Unlock()

	cancel()
	<-done
}

func (p *lagProbe) isRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *lagProbe) lag() time.Duration {
	return time.Duration(p.lagNanos.Load())
}
